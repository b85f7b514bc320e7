package services

import (
	"context"
	"time"

	directoryservices "github.com/pulseworks/worktrack/modules/directory/services"
	"github.com/pulseworks/worktrack/modules/worktracking/domain/aggregates/workitem"
	"github.com/pulseworks/worktrack/pkg/composables"
	"github.com/pulseworks/worktrack/pkg/eventbus"
	"github.com/pulseworks/worktrack/pkg/metrics"
)

// WorklogService is the manual side of the ledger: explicit create, edit and
// delete of hour entries, each one atomic with the component status update
// and the parent rollup.
type WorklogService struct {
	repo       workitem.Repository
	logs       workitem.WorklogRepository
	items      *WorkItemService
	visibility *directoryservices.VisibilityService
	publisher  eventbus.EventBus
}

func NewWorklogService(
	repo workitem.Repository,
	logs workitem.WorklogRepository,
	items *WorkItemService,
	visibility *directoryservices.VisibilityService,
	publisher eventbus.EventBus,
) *WorklogService {
	return &WorklogService{
		repo:       repo,
		logs:       logs,
		items:      items,
		visibility: visibility,
		publisher:  publisher,
	}
}

// ListByComponent returns a component's entries, gated by the caller's
// visibility of the parent item's assignee.
func (s *WorklogService) ListByComponent(ctx context.Context, caller composables.Caller, componentID int64) ([]workitem.WorkLog, error) {
	return composables.InTxResult(ctx, func(txCtx context.Context) ([]workitem.WorkLog, error) {
		comp, err := s.repo.GetComponent(txCtx, componentID)
		if err != nil {
			return nil, err
		}
		parent, err := s.repo.GetByID(txCtx, comp.Kind(), comp.WorkItemID())
		if err != nil {
			return nil, err
		}
		if err := s.visibility.Authorize(txCtx, caller, parent.AssignedEmployeeID(), directoryservices.Scope{}); err != nil {
			return nil, err
		}
		return s.logs.ListByComponent(txCtx, componentID)
	})
}

// Record appends a new hour entry. Hours must be positive and must not push
// the component past capacity; a log that lands exactly on capacity
// auto-completes the component.
func (s *WorklogService) Record(ctx context.Context, caller composables.Caller, componentID int64, data *workitem.RecordWorklogDTO) (workitem.WorkLog, error) {
	log, err := composables.InTxResult(ctx, func(txCtx context.Context) (workitem.WorkLog, error) {
		comp, err := s.repo.GetComponentForUpdate(txCtx, componentID)
		if err != nil {
			return workitem.WorkLog{}, err
		}
		if err := s.visibility.Authorize(txCtx, caller, data.EmployeeID, directoryservices.Scope{}); err != nil {
			return workitem.WorkLog{}, err
		}
		if comp.Status().InCompletedFamily() {
			return workitem.WorkLog{}, workitem.ErrComponentLocked
		}

		logged, err := s.logs.SumByComponent(txCtx, componentID)
		if err != nil {
			return workitem.WorkLog{}, err
		}
		if err := workitem.ValidateNewLog(comp.TotalHours(), logged, data.Hours); err != nil {
			return workitem.WorkLog{}, err
		}

		entry := workitem.NewWorkLog(componentID, data.EmployeeID, data.Hours, *data.Date, data.Notes)
		created, err := s.logs.Create(txCtx, entry)
		if err != nil {
			return workitem.WorkLog{}, err
		}

		newSum := logged + data.Hours
		switch {
		case newSum >= comp.TotalHours() && comp.TotalHours() > 0:
			// Filling the component to capacity completes it.
			now := time.Now()
			comp = comp.WithStatus(workitem.StatusLive, &now)
		case comp.Status() == workitem.StatusPending:
			comp = comp.WithStatus(workitem.StatusUnderDevelopment, nil)
		}
		if err := s.repo.UpdateComponent(txCtx, comp); err != nil {
			return workitem.WorkLog{}, err
		}
		if _, err := s.items.reroll(txCtx, comp.Kind(), comp.WorkItemID()); err != nil {
			return workitem.WorkLog{}, err
		}
		return created, nil
	})
	s.count("record", err)
	return log, err
}

// Edit rewrites an existing entry. Logs on a completed component are
// immutable, and an edit may never complete the component implicitly.
func (s *WorklogService) Edit(ctx context.Context, caller composables.Caller, logID int64, data *workitem.EditWorklogDTO) (workitem.WorkLog, error) {
	log, err := composables.InTxResult(ctx, func(txCtx context.Context) (workitem.WorkLog, error) {
		existing, err := s.logs.GetByID(txCtx, logID)
		if err != nil {
			return workitem.WorkLog{}, err
		}
		comp, err := s.repo.GetComponentForUpdate(txCtx, existing.ComponentID())
		if err != nil {
			return workitem.WorkLog{}, err
		}
		if err := s.visibility.Authorize(txCtx, caller, existing.EmployeeID(), directoryservices.Scope{}); err != nil {
			return workitem.WorkLog{}, err
		}
		if comp.Status().InCompletedFamily() {
			return workitem.WorkLog{}, workitem.ErrComponentLocked
		}

		logged, err := s.logs.SumByComponent(txCtx, existing.ComponentID())
		if err != nil {
			return workitem.WorkLog{}, err
		}
		sumExcluding := logged - existing.Hours()
		if err := workitem.ValidateEditedLog(comp.TotalHours(), sumExcluding, data.Hours); err != nil {
			return workitem.WorkLog{}, err
		}

		updated := existing.WithEntry(data.Hours, *data.Date, data.Notes)
		if err := s.logs.Update(txCtx, updated); err != nil {
			return workitem.WorkLog{}, err
		}

		comp = comp.WithStatus(workitem.StatusFromLogged(comp.TotalHours(), sumExcluding+data.Hours), nil)
		if err := s.repo.UpdateComponent(txCtx, comp); err != nil {
			return workitem.WorkLog{}, err
		}
		if _, err := s.items.reroll(txCtx, comp.Kind(), comp.WorkItemID()); err != nil {
			return workitem.WorkLog{}, err
		}
		return updated, nil
	})
	s.count("edit", err)
	return log, err
}

// Delete removes an entry and re-derives the component status from whatever
// hours remain logged.
func (s *WorklogService) Delete(ctx context.Context, caller composables.Caller, logID int64) (ComponentStatusResult, error) {
	res, err := composables.InTxResult(ctx, func(txCtx context.Context) (ComponentStatusResult, error) {
		existing, err := s.logs.GetByID(txCtx, logID)
		if err != nil {
			return ComponentStatusResult{}, err
		}
		comp, err := s.repo.GetComponentForUpdate(txCtx, existing.ComponentID())
		if err != nil {
			return ComponentStatusResult{}, err
		}
		if err := s.visibility.Authorize(txCtx, caller, existing.EmployeeID(), directoryservices.Scope{}); err != nil {
			return ComponentStatusResult{}, err
		}

		if err := s.logs.Delete(txCtx, logID); err != nil {
			return ComponentStatusResult{}, err
		}
		remaining, err := s.logs.SumByComponent(txCtx, existing.ComponentID())
		if err != nil {
			return ComponentStatusResult{}, err
		}

		status := workitem.StatusFromLogged(comp.TotalHours(), remaining)
		var completedAt *time.Time
		if status == workitem.StatusCompleted {
			now := time.Now()
			completedAt = &now
			if comp.CompletedAt() != nil {
				completedAt = comp.CompletedAt()
			}
		}
		comp = comp.WithStatus(status, completedAt)
		if err := s.repo.UpdateComponent(txCtx, comp); err != nil {
			return ComponentStatusResult{}, err
		}
		parent, err := s.items.reroll(txCtx, comp.Kind(), comp.WorkItemID())
		if err != nil {
			return ComponentStatusResult{}, err
		}
		return ComponentStatusResult{Component: comp, Parent: parent}, nil
	})
	s.count("delete", err)
	return res, err
}

func (s *WorklogService) count(operation string, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "rejected"
	}
	metrics.WorklogMutations.WithLabelValues(operation, outcome).Inc()
}
