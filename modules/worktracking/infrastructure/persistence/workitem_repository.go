package persistence

import (
	"context"
	"errors"
	"strings"
	"time"

	gerrors "github.com/go-faster/errors"
	"github.com/jackc/pgx/v5"

	"github.com/pulseworks/worktrack/modules/worktracking/domain/aggregates/workitem"
	"github.com/pulseworks/worktrack/pkg/composables"
)

const workItemColumns = `
	id, assigned_employee_id, manager_id, title, description, priority, status,
	workload_hours, due_date, completed_at, created_at, updated_at`

const componentColumns = `
	id, task_id, live_issue_id, component_type, complexity, item_count,
	hours_per_item, total_hours, status, completed_at, file_required, file_type,
	created_at, updated_at`

type WorkItemRepository struct{}

func NewWorkItemRepository() workitem.Repository {
	return &WorkItemRepository{}
}

func (r *WorkItemRepository) Count(ctx context.Context, kind workitem.Kind) (int64, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return 0, err
	}
	var count int64
	if err := tx.QueryRow(ctx, `SELECT COUNT(*) FROM `+tableFor(kind)).Scan(&count); err != nil {
		return 0, gerrors.Wrap(err, "counting work items")
	}
	return count, nil
}

func (r *WorkItemRepository) GetPaginated(ctx context.Context, kind workitem.Kind, params *workitem.FindParams) ([]workitem.WorkItem, error) {
	if params == nil {
		params = &workitem.FindParams{}
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
	if len(params.AssigneeIDs) > 0 {
		args = append(args, params.AssigneeIDs)
		where = append(where, "assigned_employee_id = ANY($"+itoa(len(args))+")")
	}
	if params.Status != "" {
		args = append(args, string(params.Status))
		where = append(where, "status = $"+itoa(len(args)))
	}
	if q := strings.TrimSpace(params.Q); q != "" {
		args = append(args, "%"+strings.ToLower(q)+"%")
		where = append(where, "LOWER(title) LIKE $"+itoa(len(args)))
	}
	args = append(args, limit)
	limitPos := itoa(len(args))
	args = append(args, offset)
	offsetPos := itoa(len(args))

	query := `SELECT` + workItemColumns + ` FROM ` + tableFor(kind) + ` WHERE ` +
		strings.Join(where, " AND ") +
		` ORDER BY id LIMIT $` + limitPos + ` OFFSET $` + offsetPos

	rows, err := tx.Query(ctx, query, args...)
	if err != nil {
		return nil, gerrors.Wrap(err, "listing work items")
	}
	defer rows.Close()
	items, err := scanWorkItems(rows, kind)
	if err != nil {
		return nil, err
	}

	out := make([]workitem.WorkItem, 0, len(items))
	for _, item := range items {
		components, err := r.ComponentsOf(ctx, kind, item.ID())
		if err != nil {
			return nil, err
		}
		out = append(out, item.WithComponents(components))
	}
	return out, nil
}

func (r *WorkItemRepository) GetByID(ctx context.Context, kind workitem.Kind, id int64) (workitem.WorkItem, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return workitem.WorkItem{}, err
	}
	row := tx.QueryRow(ctx, `SELECT`+workItemColumns+` FROM `+tableFor(kind)+` WHERE id = $1`, id)
	item, err := scanWorkItem(row, kind)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return workitem.WorkItem{}, workitem.ErrNotFound
		}
		return workitem.WorkItem{}, gerrors.Wrap(err, "fetching work item")
	}
	components, err := r.ComponentsOf(ctx, kind, id)
	if err != nil {
		return workitem.WorkItem{}, err
	}
	return item.WithComponents(components), nil
}

func (r *WorkItemRepository) Create(ctx context.Context, data workitem.WorkItem) (workitem.WorkItem, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return workitem.WorkItem{}, err
	}
	row := tx.QueryRow(ctx, `
		INSERT INTO `+tableFor(data.Kind())+`
			(assigned_employee_id, manager_id, title, description, priority, status, workload_hours, due_date, completed_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING`+workItemColumns,
		data.AssignedEmployeeID(), data.ManagerID(), data.Title(), data.Description(), data.Priority(),
		string(data.Status()), data.WorkloadHours(), data.DueDate(), data.CompletedAt(),
	)
	created, err := scanWorkItem(row, data.Kind())
	if err != nil {
		return workitem.WorkItem{}, gerrors.Wrap(err, "creating work item")
	}
	components, err := r.ReplaceComponents(ctx, data.Kind(), created.ID(), data.Components())
	if err != nil {
		return workitem.WorkItem{}, err
	}
	return created.WithComponents(components), nil
}

func (r *WorkItemRepository) Update(ctx context.Context, data workitem.WorkItem) error {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return err
	}
	tag, err := tx.Exec(ctx, `
		UPDATE `+tableFor(data.Kind())+`
		SET assigned_employee_id = $1, manager_id = $2, title = $3, description = $4,
		    priority = $5, due_date = $6, updated_at = NOW()
		WHERE id = $7`,
		data.AssignedEmployeeID(), data.ManagerID(), data.Title(), data.Description(),
		data.Priority(), data.DueDate(), data.ID(),
	)
	if err != nil {
		return gerrors.Wrap(err, "updating work item")
	}
	if tag.RowsAffected() == 0 {
		return workitem.ErrNotFound
	}
	return nil
}

func (r *WorkItemRepository) UpdateStatus(ctx context.Context, kind workitem.Kind, id int64, status workitem.Status, workloadHours float64, completedAt *time.Time) error {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return err
	}
	tag, err := tx.Exec(ctx, `
		UPDATE `+tableFor(kind)+`
		SET status = $1, workload_hours = $2, completed_at = $3, updated_at = NOW()
		WHERE id = $4`,
		string(status), workloadHours, completedAt, id,
	)
	if err != nil {
		return gerrors.Wrap(err, "updating work item status")
	}
	if tag.RowsAffected() == 0 {
		return workitem.ErrNotFound
	}
	return nil
}

func (r *WorkItemRepository) Delete(ctx context.Context, kind workitem.Kind, id int64) error {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return err
	}
	tag, err := tx.Exec(ctx, `DELETE FROM `+tableFor(kind)+` WHERE id = $1`, id)
	if err != nil {
		return gerrors.Wrap(err, "deleting work item")
	}
	if tag.RowsAffected() == 0 {
		return workitem.ErrNotFound
	}
	return nil
}

func (r *WorkItemRepository) ReplaceComponents(ctx context.Context, kind workitem.Kind, workItemID int64, components []workitem.Component) ([]workitem.Component, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}
	parentColumn := parentColumnFor(kind)
	if _, err := tx.Exec(ctx, `DELETE FROM work_components WHERE `+parentColumn+` = $1`, workItemID); err != nil {
		return nil, gerrors.Wrap(err, "clearing components")
	}
	out := make([]workitem.Component, 0, len(components))
	for _, c := range components {
		row := tx.QueryRow(ctx, `
			INSERT INTO work_components
				(`+parentColumn+`, component_type, complexity, item_count, hours_per_item,
				 total_hours, status, completed_at, file_required, file_type)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
			RETURNING`+componentColumns,
			workItemID, c.ComponentType(), c.Complexity(), c.Count(), c.HoursPerItem(),
			c.TotalHours(), string(c.Status()), c.CompletedAt(), c.FileRequired(), c.FileType(),
		)
		created, err := scanComponent(row)
		if err != nil {
			return nil, gerrors.Wrap(err, "inserting component")
		}
		out = append(out, created)
	}
	return out, nil
}

func (r *WorkItemRepository) GetComponent(ctx context.Context, componentID int64) (workitem.Component, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return workitem.Component{}, err
	}
	row := tx.QueryRow(ctx, `SELECT`+componentColumns+` FROM work_components WHERE id = $1`, componentID)
	c, err := scanComponent(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return workitem.Component{}, workitem.ErrComponentNotFound
		}
		return workitem.Component{}, gerrors.Wrap(err, "fetching component")
	}
	return c, nil
}

// GetComponentForUpdate takes a row lock so concurrent mutations of the same
// component serialize for the rest of the transaction.
func (r *WorkItemRepository) GetComponentForUpdate(ctx context.Context, componentID int64) (workitem.Component, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return workitem.Component{}, err
	}
	row := tx.QueryRow(ctx, `SELECT`+componentColumns+` FROM work_components WHERE id = $1 FOR UPDATE`, componentID)
	c, err := scanComponent(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return workitem.Component{}, workitem.ErrComponentNotFound
		}
		return workitem.Component{}, gerrors.Wrap(err, "fetching component")
	}
	return c, nil
}

func (r *WorkItemRepository) UpdateComponent(ctx context.Context, data workitem.Component) error {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return err
	}
	tag, err := tx.Exec(ctx, `
		UPDATE work_components
		SET status = $1, completed_at = $2, updated_at = NOW()
		WHERE id = $3`,
		string(data.Status()), data.CompletedAt(), data.ID(),
	)
	if err != nil {
		return gerrors.Wrap(err, "updating component")
	}
	if tag.RowsAffected() == 0 {
		return workitem.ErrComponentNotFound
	}
	return nil
}

func (r *WorkItemRepository) ComponentsOf(ctx context.Context, kind workitem.Kind, workItemID int64) ([]workitem.Component, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}
	rows, err := tx.Query(ctx,
		`SELECT`+componentColumns+` FROM work_components WHERE `+parentColumnFor(kind)+` = $1 ORDER BY id`,
		workItemID,
	)
	if err != nil {
		return nil, gerrors.Wrap(err, "listing components")
	}
	defer rows.Close()
	return scanComponents(rows)
}
