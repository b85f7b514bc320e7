package persistence

import (
	"context"
	"time"

	gerrors "github.com/go-faster/errors"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/pulseworks/worktrack/modules/projects/domain/aggregates/project"
	"github.com/pulseworks/worktrack/pkg/composables"
)

const changeEntryColumns = `
	id, project_id, actor_id, field, old_value, new_value, created_at`

type ChangeLogRepository struct{}

func NewChangeLogRepository() project.ChangeLogRepository {
	return &ChangeLogRepository{}
}

func scanChangeEntry(row pgx.Row) (project.ChangeEntry, error) {
	var (
		id        uuid.UUID
		projectID int64
		actorID   int64
		field     string
		oldValue  string
		newValue  string
		createdAt time.Time
	)
	if err := row.Scan(&id, &projectID, &actorID, &field, &oldValue, &newValue, &createdAt); err != nil {
		return project.ChangeEntry{}, err
	}
	return project.HydrateChangeEntry(id, projectID, actorID, field, oldValue, newValue, createdAt), nil
}

func (r *ChangeLogRepository) ListByProject(ctx context.Context, projectID int64) ([]project.ChangeEntry, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}
	rows, err := tx.Query(ctx, `
		SELECT`+changeEntryColumns+`
		FROM project_change_logs
		WHERE project_id = $1
		ORDER BY created_at, id`, projectID)
	if err != nil {
		return nil, gerrors.Wrap(err, "listing project change log")
	}
	defer rows.Close()
	out := make([]project.ChangeEntry, 0)
	for rows.Next() {
		entry, err := scanChangeEntry(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, entry)
	}
	return out, rows.Err()
}

func (r *ChangeLogRepository) Append(ctx context.Context, entries []project.ChangeEntry) error {
	if len(entries) == 0 {
		return nil
	}
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return err
	}
	for _, entry := range entries {
		if _, err := tx.Exec(ctx, `
			INSERT INTO project_change_logs (id, project_id, actor_id, field, old_value, new_value)
			VALUES ($1, $2, $3, $4, $5, $6)`,
			entry.ID(), entry.ProjectID(), entry.ActorID(), entry.Field(), entry.OldValue(), entry.NewValue(),
		); err != nil {
			return gerrors.Wrap(err, "appending change log entry")
		}
	}
	return nil
}
