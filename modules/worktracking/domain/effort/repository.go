package effort

import (
	"context"

	"github.com/pulseworks/worktrack/pkg/serrors"
)

var (
	ErrTypeNotFound = serrors.NewError("EFFORT_TYPE_NOT_FOUND", "effort mapping not found", "Effort.Errors.NotFound")
	ErrTypeExists   = serrors.NewError("EFFORT_TYPE_EXISTS", "effort mapping for this component type already exists", "Effort.Errors.Exists")
)

type Repository interface {
	GetAll(ctx context.Context) ([]Mapping, error)
	GetByType(ctx context.Context, componentType string) (Mapping, error)
	Create(ctx context.Context, data Mapping) (Mapping, error)
	Update(ctx context.Context, data Mapping) error
	Delete(ctx context.Context, id int64) error
}
