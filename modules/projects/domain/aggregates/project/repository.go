package project

import (
	"context"

	"github.com/pulseworks/worktrack/pkg/serrors"
)

var ErrNotFound = serrors.NewError("PROJECT_NOT_FOUND", "project not found", "Projects.Errors.NotFound")

type FindParams struct {
	Limit         int
	Offset        int
	Stage         Stage
	Priority      string
	OnTrackStatus string
	Q             string
}

type Repository interface {
	Count(ctx context.Context) (int64, error)
	GetAll(ctx context.Context) ([]Project, error)
	GetPaginated(ctx context.Context, params *FindParams) ([]Project, error)
	GetByID(ctx context.Context, id int64) (Project, error)
	Create(ctx context.Context, data Project) (Project, error)
	Update(ctx context.Context, data Project) error
	Delete(ctx context.Context, id int64) error
}

type ChangeLogRepository interface {
	ListByProject(ctx context.Context, projectID int64) ([]ChangeEntry, error)
	Append(ctx context.Context, entries []ChangeEntry) error
}
