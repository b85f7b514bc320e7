package persistence

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	gerrors "github.com/go-faster/errors"
	"github.com/jackc/pgx/v5"

	"github.com/pulseworks/worktrack/modules/projects/domain/aggregates/project"
	"github.com/pulseworks/worktrack/pkg/composables"
)

const projectColumns = `
	id, name, description, priority, platform, stage, start_date, planned_end_date,
	sprint_start_date, sprint_end_date, uat_release_date, go_live_date,
	on_track_status, man_days, created_at, updated_at`

func itoa(n int) string {
	return strconv.Itoa(n)
}

type ProjectRepository struct{}

func NewProjectRepository() project.Repository {
	return &ProjectRepository{}
}

func scanProject(row pgx.Row) (project.Project, error) {
	var (
		id              int64
		name            string
		description     string
		priority        string
		platform        string
		stage           string
		startDate       *time.Time
		plannedEndDate  *time.Time
		sprintStartDate *time.Time
		sprintEndDate   *time.Time
		uatReleaseDate  *time.Time
		goLiveDate      *time.Time
		onTrackStatus   string
		manDays         int
		createdAt       time.Time
		updatedAt       time.Time
	)
	if err := row.Scan(
		&id, &name, &description, &priority, &platform, &stage, &startDate, &plannedEndDate,
		&sprintStartDate, &sprintEndDate, &uatReleaseDate, &goLiveDate,
		&onTrackStatus, &manDays, &createdAt, &updatedAt,
	); err != nil {
		return project.Project{}, err
	}
	parsedStage, ok := project.ParseStage(stage)
	if !ok {
		parsedStage = project.StageBRSDiscussion
	}
	return project.Hydrate(
		id, name, description, priority, platform, parsedStage,
		startDate, plannedEndDate, sprintStartDate, sprintEndDate,
		uatReleaseDate, goLiveDate, onTrackStatus, manDays, createdAt, updatedAt,
	), nil
}

func scanProjects(rows pgx.Rows) ([]project.Project, error) {
	out := make([]project.Project, 0)
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *ProjectRepository) Count(ctx context.Context) (int64, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return 0, err
	}
	var count int64
	if err := tx.QueryRow(ctx, `SELECT COUNT(*) FROM projects`).Scan(&count); err != nil {
		return 0, gerrors.Wrap(err, "counting projects")
	}
	return count, nil
}

func (r *ProjectRepository) GetAll(ctx context.Context) ([]project.Project, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}
	rows, err := tx.Query(ctx, `SELECT`+projectColumns+` FROM projects ORDER BY id`)
	if err != nil {
		return nil, gerrors.Wrap(err, "listing projects")
	}
	defer rows.Close()
	return scanProjects(rows)
}

func (r *ProjectRepository) GetPaginated(ctx context.Context, params *project.FindParams) ([]project.Project, error) {
	if params == nil {
		params = &project.FindParams{}
	}
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}

	limit := params.Limit
	if limit <= 0 {
		limit = 20
	}
	offset := params.Offset
	if offset < 0 {
		offset = 0
	}

	where := []string{"1=1"}
	args := []any{}
	if params.Stage != "" {
		args = append(args, string(params.Stage))
		where = append(where, "stage = $"+itoa(len(args)))
	}
	if params.Priority != "" {
		args = append(args, params.Priority)
		where = append(where, "priority = $"+itoa(len(args)))
	}
	if params.OnTrackStatus != "" {
		args = append(args, params.OnTrackStatus)
		where = append(where, "on_track_status = $"+itoa(len(args)))
	}
	if q := strings.TrimSpace(params.Q); q != "" {
		args = append(args, "%"+strings.ToLower(q)+"%")
		where = append(where, "LOWER(name) LIKE $"+itoa(len(args)))
	}
	args = append(args, limit)
	limitPos := itoa(len(args))
	args = append(args, offset)
	offsetPos := itoa(len(args))

	query := `SELECT` + projectColumns + ` FROM projects WHERE ` +
		strings.Join(where, " AND ") +
		` ORDER BY id LIMIT $` + limitPos + ` OFFSET $` + offsetPos

	rows, err := tx.Query(ctx, query, args...)
	if err != nil {
		return nil, gerrors.Wrap(err, "listing projects paginated")
	}
	defer rows.Close()
	return scanProjects(rows)
}

func (r *ProjectRepository) GetByID(ctx context.Context, id int64) (project.Project, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return project.Project{}, err
	}
	row := tx.QueryRow(ctx, `SELECT`+projectColumns+` FROM projects WHERE id = $1`, id)
	p, err := scanProject(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return project.Project{}, project.ErrNotFound
		}
		return project.Project{}, gerrors.Wrap(err, "fetching project")
	}
	return p, nil
}

func (r *ProjectRepository) Create(ctx context.Context, data project.Project) (project.Project, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return project.Project{}, err
	}
	row := tx.QueryRow(ctx, `
		INSERT INTO projects
			(name, description, priority, platform, stage, start_date, planned_end_date,
			 sprint_start_date, sprint_end_date, uat_release_date, go_live_date,
			 on_track_status, man_days)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING`+projectColumns,
		data.Name(), data.Description(), data.Priority(), data.Platform(), string(data.Stage()),
		data.StartDate(), data.PlannedEndDate(), data.SprintStartDate(), data.SprintEndDate(),
		data.UATReleaseDate(), data.GoLiveDate(), data.OnTrackStatus(), data.ManDays(),
	)
	created, err := scanProject(row)
	if err != nil {
		return project.Project{}, gerrors.Wrap(err, "creating project")
	}
	return created, nil
}

func (r *ProjectRepository) Update(ctx context.Context, data project.Project) error {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return err
	}
	tag, err := tx.Exec(ctx, `
		UPDATE projects
		SET name = $1, description = $2, priority = $3, platform = $4, stage = $5,
		    start_date = $6, planned_end_date = $7, sprint_start_date = $8,
		    sprint_end_date = $9, uat_release_date = $10, go_live_date = $11,
		    on_track_status = $12, man_days = $13, updated_at = NOW()
		WHERE id = $14`,
		data.Name(), data.Description(), data.Priority(), data.Platform(), string(data.Stage()),
		data.StartDate(), data.PlannedEndDate(), data.SprintStartDate(), data.SprintEndDate(),
		data.UATReleaseDate(), data.GoLiveDate(), data.OnTrackStatus(), data.ManDays(), data.ID(),
	)
	if err != nil {
		return gerrors.Wrap(err, "updating project")
	}
	if tag.RowsAffected() == 0 {
		return project.ErrNotFound
	}
	return nil
}

func (r *ProjectRepository) Delete(ctx context.Context, id int64) error {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return err
	}
	tag, err := tx.Exec(ctx, `DELETE FROM projects WHERE id = $1`, id)
	if err != nil {
		return gerrors.Wrap(err, "deleting project")
	}
	if tag.RowsAffected() == 0 {
		return project.ErrNotFound
	}
	return nil
}
