package workitem

import (
	"context"
	"time"

	"github.com/pulseworks/worktrack/pkg/serrors"
)

var (
	ErrNotFound          = serrors.NewError("WORKITEM_NOT_FOUND", "work item not found", "Worktracking.Errors.NotFound")
	ErrComponentNotFound = serrors.NewError("COMPONENT_NOT_FOUND", "component not found", "Worktracking.Errors.ComponentNotFound")
	ErrWorklogNotFound   = serrors.NewError("WORKLOG_NOT_FOUND", "worklog not found", "Worktracking.Errors.WorklogNotFound")
)

type FindParams struct {
	Limit       int
	Offset      int
	AssigneeIDs []int64
	Status      Status
	Q           string
}

type Repository interface {
	Count(ctx context.Context, kind Kind) (int64, error)
	GetPaginated(ctx context.Context, kind Kind, params *FindParams) ([]WorkItem, error)
	GetByID(ctx context.Context, kind Kind, id int64) (WorkItem, error)
	Create(ctx context.Context, data WorkItem) (WorkItem, error)
	Update(ctx context.Context, data WorkItem) error
	// UpdateStatus persists the rollup result on the parent row.
	UpdateStatus(ctx context.Context, kind Kind, id int64, status Status, workloadHours float64, completedAt *time.Time) error
	Delete(ctx context.Context, kind Kind, id int64) error

	// ReplaceComponents swaps the full component set of a work item.
	// Worklogs of removed components go with them.
	ReplaceComponents(ctx context.Context, kind Kind, workItemID int64, components []Component) ([]Component, error)
	GetComponent(ctx context.Context, componentID int64) (Component, error)
	// GetComponentForUpdate locks the component row for the rest of the
	// transaction; concurrent mutations of the same component serialize here.
	GetComponentForUpdate(ctx context.Context, componentID int64) (Component, error)
	UpdateComponent(ctx context.Context, data Component) error
	ComponentsOf(ctx context.Context, kind Kind, workItemID int64) ([]Component, error)
}

type NoteRepository interface {
	ListByWorkItem(ctx context.Context, kind Kind, workItemID int64) ([]Note, error)
	Create(ctx context.Context, data Note) (Note, error)
}

type WorklogRepository interface {
	GetByID(ctx context.Context, id int64) (WorkLog, error)
	ListByComponent(ctx context.Context, componentID int64) ([]WorkLog, error)
	SumByComponent(ctx context.Context, componentID int64) (float64, error)
	Create(ctx context.Context, data WorkLog) (WorkLog, error)
	Update(ctx context.Context, data WorkLog) error
	Delete(ctx context.Context, id int64) error
	DeleteByComponent(ctx context.Context, componentID int64) (int64, error)
}
