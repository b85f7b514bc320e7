package employee

import (
	"context"

	"github.com/pulseworks/worktrack/pkg/serrors"
)

var ErrNotFound = serrors.NewError("EMPLOYEE_NOT_FOUND", "employee not found", "Directory.Errors.NotFound")

type FindParams struct {
	Limit           int
	Offset          int
	Q               string
	Role            Role
	ApplicationName string
}

type Repository interface {
	Count(ctx context.Context) (int64, error)
	GetAll(ctx context.Context) ([]Employee, error)
	GetPaginated(ctx context.Context, params *FindParams) ([]Employee, error)
	GetByID(ctx context.Context, id int64) (Employee, error)
	Create(ctx context.Context, data Employee) (Employee, error)
	Update(ctx context.Context, data Employee) error
	// DetachReports nulls out reportsTo on every employee pointing at the
	// given id. Used before delete; subordinates are never cascaded.
	DetachReports(ctx context.Context, id int64) error
	Delete(ctx context.Context, id int64) error
}
