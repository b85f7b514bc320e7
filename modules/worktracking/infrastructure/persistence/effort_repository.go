package persistence

import (
	"context"
	"errors"
	"time"

	gerrors "github.com/go-faster/errors"
	"github.com/jackc/pgx/v5"

	"github.com/pulseworks/worktrack/modules/worktracking/domain/effort"
	"github.com/pulseworks/worktrack/pkg/composables"
)

const effortColumns = `
	id, component_type, hours_by_complexity, created_at, updated_at`

type EffortRepository struct{}

func NewEffortRepository() effort.Repository {
	return &EffortRepository{}
}

func scanMapping(row pgx.Row) (effort.Mapping, error) {
	var (
		id            int64
		componentType string
		hours         map[string]float64
		createdAt     time.Time
		updatedAt     time.Time
	)
	if err := row.Scan(&id, &componentType, &hours, &createdAt, &updatedAt); err != nil {
		return effort.Mapping{}, err
	}
	return effort.HydrateMapping(id, componentType, hours, createdAt, updatedAt), nil
}

func (r *EffortRepository) GetAll(ctx context.Context) ([]effort.Mapping, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}
	rows, err := tx.Query(ctx, `SELECT`+effortColumns+` FROM effort_mappings ORDER BY component_type`)
	if err != nil {
		return nil, gerrors.Wrap(err, "listing effort mappings")
	}
	defer rows.Close()

	out := make([]effort.Mapping, 0)
	for rows.Next() {
		m, err := scanMapping(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

func (r *EffortRepository) GetByType(ctx context.Context, componentType string) (effort.Mapping, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return effort.Mapping{}, err
	}
	row := tx.QueryRow(ctx, `SELECT`+effortColumns+` FROM effort_mappings WHERE component_type = $1`, componentType)
	m, err := scanMapping(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return effort.Mapping{}, effort.ErrTypeNotFound
		}
		return effort.Mapping{}, gerrors.Wrap(err, "fetching effort mapping")
	}
	return m, nil
}

func (r *EffortRepository) Create(ctx context.Context, data effort.Mapping) (effort.Mapping, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return effort.Mapping{}, err
	}
	row := tx.QueryRow(ctx, `
		INSERT INTO effort_mappings (component_type, hours_by_complexity)
		VALUES ($1, $2)
		RETURNING`+effortColumns,
		data.ComponentType(), data.Hours(),
	)
	created, err := scanMapping(row)
	if err != nil {
		return effort.Mapping{}, gerrors.Wrap(err, "creating effort mapping")
	}
	return created, nil
}

func (r *EffortRepository) Update(ctx context.Context, data effort.Mapping) error {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return err
	}
	tag, err := tx.Exec(ctx, `
		UPDATE effort_mappings
		SET component_type = $1, hours_by_complexity = $2, updated_at = NOW()
		WHERE id = $3`,
		data.ComponentType(), data.Hours(), data.ID(),
	)
	if err != nil {
		return gerrors.Wrap(err, "updating effort mapping")
	}
	if tag.RowsAffected() == 0 {
		return effort.ErrTypeNotFound
	}
	return nil
}

func (r *EffortRepository) Delete(ctx context.Context, id int64) error {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return err
	}
	tag, err := tx.Exec(ctx, `DELETE FROM effort_mappings WHERE id = $1`, id)
	if err != nil {
		return gerrors.Wrap(err, "deleting effort mapping")
	}
	if tag.RowsAffected() == 0 {
		return effort.ErrTypeNotFound
	}
	return nil
}
