package persistence

import (
	"context"
	"errors"

	gerrors "github.com/go-faster/errors"
	"github.com/jackc/pgx/v5"

	"github.com/pulseworks/worktrack/modules/worktracking/domain/aggregates/workitem"
	"github.com/pulseworks/worktrack/pkg/composables"
)

const workLogColumns = `
	id, component_id, employee_id, hours_logged, logged_on, notes, created_at`

type WorkLogRepository struct{}

func NewWorkLogRepository() workitem.WorklogRepository {
	return &WorkLogRepository{}
}

func (r *WorkLogRepository) GetByID(ctx context.Context, id int64) (workitem.WorkLog, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return workitem.WorkLog{}, err
	}
	row := tx.QueryRow(ctx, `SELECT`+workLogColumns+` FROM work_logs WHERE id = $1`, id)
	l, err := scanWorkLog(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return workitem.WorkLog{}, workitem.ErrWorklogNotFound
		}
		return workitem.WorkLog{}, gerrors.Wrap(err, "fetching worklog")
	}
	return l, nil
}

func (r *WorkLogRepository) ListByComponent(ctx context.Context, componentID int64) ([]workitem.WorkLog, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}
	rows, err := tx.Query(ctx, `SELECT`+workLogColumns+` FROM work_logs WHERE component_id = $1 ORDER BY id`, componentID)
	if err != nil {
		return nil, gerrors.Wrap(err, "listing worklogs")
	}
	defer rows.Close()
	return scanWorkLogs(rows)
}

func (r *WorkLogRepository) SumByComponent(ctx context.Context, componentID int64) (float64, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return 0, err
	}
	var sum float64
	if err := tx.QueryRow(ctx,
		`SELECT COALESCE(SUM(hours_logged), 0) FROM work_logs WHERE component_id = $1`,
		componentID,
	).Scan(&sum); err != nil {
		return 0, gerrors.Wrap(err, "summing worklogs")
	}
	return sum, nil
}

func (r *WorkLogRepository) Create(ctx context.Context, data workitem.WorkLog) (workitem.WorkLog, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return workitem.WorkLog{}, err
	}
	row := tx.QueryRow(ctx, `
		INSERT INTO work_logs (component_id, employee_id, hours_logged, logged_on, notes)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING`+workLogColumns,
		data.ComponentID(), data.EmployeeID(), data.Hours(), data.LoggedOn(), data.Notes(),
	)
	created, err := scanWorkLog(row)
	if err != nil {
		return workitem.WorkLog{}, gerrors.Wrap(err, "creating worklog")
	}
	return created, nil
}

func (r *WorkLogRepository) Update(ctx context.Context, data workitem.WorkLog) error {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return err
	}
	tag, err := tx.Exec(ctx, `
		UPDATE work_logs
		SET hours_logged = $1, logged_on = $2, notes = $3
		WHERE id = $4`,
		data.Hours(), data.LoggedOn(), data.Notes(), data.ID(),
	)
	if err != nil {
		return gerrors.Wrap(err, "updating worklog")
	}
	if tag.RowsAffected() == 0 {
		return workitem.ErrWorklogNotFound
	}
	return nil
}

func (r *WorkLogRepository) Delete(ctx context.Context, id int64) error {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return err
	}
	tag, err := tx.Exec(ctx, `DELETE FROM work_logs WHERE id = $1`, id)
	if err != nil {
		return gerrors.Wrap(err, "deleting worklog")
	}
	if tag.RowsAffected() == 0 {
		return workitem.ErrWorklogNotFound
	}
	return nil
}

func (r *WorkLogRepository) DeleteByComponent(ctx context.Context, componentID int64) (int64, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return 0, err
	}
	tag, err := tx.Exec(ctx, `DELETE FROM work_logs WHERE component_id = $1`, componentID)
	if err != nil {
		return 0, gerrors.Wrap(err, "deleting component worklogs")
	}
	return tag.RowsAffected(), nil
}
