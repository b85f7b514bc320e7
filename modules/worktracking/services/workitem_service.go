package services

import (
	"context"
	"time"

	"github.com/pulseworks/worktrack/modules/directory/domain/aggregates/employee"
	directoryservices "github.com/pulseworks/worktrack/modules/directory/services"
	"github.com/pulseworks/worktrack/modules/worktracking/domain/aggregates/workitem"
	"github.com/pulseworks/worktrack/modules/worktracking/domain/effort"
	"github.com/pulseworks/worktrack/pkg/composables"
	"github.com/pulseworks/worktrack/pkg/eventbus"
	"github.com/pulseworks/worktrack/pkg/metrics"
	"github.com/pulseworks/worktrack/pkg/serrors"
)

var errUnknownStatus = serrors.NewError(
	"VALIDATION_FAILED",
	"unknown component status",
	"Worktracking.Errors.UnknownStatus",
)

// ComponentStatusResult is what a component mutation hands back: the new
// component state and the parent after its rollup.
type ComponentStatusResult struct {
	Component workitem.Component
	Parent    workitem.WorkItem
}

// EmployeeLookup is the slice of the directory this module needs: the
// assignee's record, for manager denormalization on work items.
type EmployeeLookup interface {
	GetByID(ctx context.Context, id int64) (employee.Employee, error)
}

// WorkItemService owns the work item lifecycle: visibility-checked CRUD,
// effort pricing on create/update, and the component status state machine
// with its worklog reconciliation.
type WorkItemService struct {
	repo       workitem.Repository
	logs       workitem.WorklogRepository
	notes      workitem.NoteRepository
	effort     *EffortTableService
	visibility *directoryservices.VisibilityService
	employees  EmployeeLookup
	publisher  eventbus.EventBus
}

func NewWorkItemService(
	repo workitem.Repository,
	logs workitem.WorklogRepository,
	notes workitem.NoteRepository,
	effortTables *EffortTableService,
	visibility *directoryservices.VisibilityService,
	employees EmployeeLookup,
	publisher eventbus.EventBus,
) *WorkItemService {
	return &WorkItemService{
		repo:       repo,
		logs:       logs,
		notes:      notes,
		effort:     effortTables,
		visibility: visibility,
		employees:  employees,
		publisher:  publisher,
	}
}

func (s *WorkItemService) Count(ctx context.Context, kind workitem.Kind) (int64, error) {
	return composables.InTxResult(ctx, func(txCtx context.Context) (int64, error) {
		return s.repo.Count(txCtx, kind)
	})
}

// List returns the work items whose assignee falls inside the caller's
// visible set, further narrowed by the scope filters.
func (s *WorkItemService) List(
	ctx context.Context,
	caller composables.Caller,
	kind workitem.Kind,
	scope directoryservices.Scope,
	params *workitem.FindParams,
) ([]workitem.WorkItem, error) {
	return composables.InTxResult(ctx, func(txCtx context.Context) ([]workitem.WorkItem, error) {
		visible, err := s.visibility.ResolveVisibleSet(txCtx, caller, scope)
		if err != nil {
			return nil, err
		}
		if params == nil {
			params = &workitem.FindParams{}
		}
		params.AssigneeIDs = visible.Slice()
		if len(params.AssigneeIDs) == 0 {
			return []workitem.WorkItem{}, nil
		}
		return s.repo.GetPaginated(txCtx, kind, params)
	})
}

func (s *WorkItemService) GetByID(ctx context.Context, caller composables.Caller, kind workitem.Kind, id int64) (workitem.WorkItem, error) {
	return composables.InTxResult(ctx, func(txCtx context.Context) (workitem.WorkItem, error) {
		item, err := s.repo.GetByID(txCtx, kind, id)
		if err != nil {
			return workitem.WorkItem{}, err
		}
		if err := s.visibility.Authorize(txCtx, caller, item.AssignedEmployeeID(), directoryservices.Scope{}); err != nil {
			return workitem.WorkItem{}, err
		}
		return item, nil
	})
}

func (s *WorkItemService) Create(ctx context.Context, caller composables.Caller, kind workitem.Kind, data *workitem.CreateDTO) (workitem.WorkItem, error) {
	return composables.InTxResult(ctx, func(txCtx context.Context) (workitem.WorkItem, error) {
		if err := s.visibility.Authorize(txCtx, caller, data.AssignedEmployeeID, directoryservices.Scope{}); err != nil {
			return workitem.WorkItem{}, err
		}
		assignee, err := s.employees.GetByID(txCtx, data.AssignedEmployeeID)
		if err != nil {
			return workitem.WorkItem{}, err
		}

		tbl, err := s.effort.Snapshot(txCtx)
		if err != nil {
			return workitem.WorkItem{}, err
		}
		priced := effort.Price(workitem.Specs(data.Components), tbl)

		components := make([]workitem.Component, 0, len(priced))
		for _, p := range priced {
			components = append(components, workitem.NewComponent(p))
		}
		entity := data.ToEntity(kind).
			WithAssignee(assignee.ID(), assignee.ManagerID()).
			WithComponents(components).
			WithWorkloadHours(effort.WorkloadHours(priced))
		if data.Status != "" {
			status, ok := workitem.ParseStatus(data.Status)
			if !ok {
				return workitem.WorkItem{}, errUnknownStatus
			}
			var completedAt *time.Time
			if status.InCompletedFamily() {
				now := time.Now()
				completedAt = &now
			}
			entity = entity.WithStatus(status, completedAt)
		}

		created, err := s.repo.Create(txCtx, entity)
		if err != nil {
			return workitem.WorkItem{}, err
		}
		for _, body := range data.Notes {
			if _, err := s.notes.Create(txCtx, workitem.NewNote(kind, created.ID(), caller.ID, body)); err != nil {
				return workitem.WorkItem{}, err
			}
		}
		s.publisher.Publish(workitem.NewCreatedEvent(created))
		return created, nil
	})
}

// ListNotes returns an item's notes, oldest first, gated by visibility of the
// assignee.
func (s *WorkItemService) ListNotes(ctx context.Context, caller composables.Caller, kind workitem.Kind, id int64) ([]workitem.Note, error) {
	return composables.InTxResult(ctx, func(txCtx context.Context) ([]workitem.Note, error) {
		item, err := s.repo.GetByID(txCtx, kind, id)
		if err != nil {
			return nil, err
		}
		if err := s.visibility.Authorize(txCtx, caller, item.AssignedEmployeeID(), directoryservices.Scope{}); err != nil {
			return nil, err
		}
		return s.notes.ListByWorkItem(txCtx, kind, id)
	})
}

// AddNote appends a note authored by the caller.
func (s *WorkItemService) AddNote(ctx context.Context, caller composables.Caller, kind workitem.Kind, id int64, data *workitem.AddNoteDTO) (workitem.Note, error) {
	return composables.InTxResult(ctx, func(txCtx context.Context) (workitem.Note, error) {
		item, err := s.repo.GetByID(txCtx, kind, id)
		if err != nil {
			return workitem.Note{}, err
		}
		if err := s.visibility.Authorize(txCtx, caller, item.AssignedEmployeeID(), directoryservices.Scope{}); err != nil {
			return workitem.Note{}, err
		}
		return s.notes.Create(txCtx, workitem.NewNote(kind, id, caller.ID, data.Body))
	})
}

func (s *WorkItemService) Update(ctx context.Context, caller composables.Caller, kind workitem.Kind, id int64, data *workitem.UpdateDTO) (workitem.WorkItem, error) {
	return composables.InTxResult(ctx, func(txCtx context.Context) (workitem.WorkItem, error) {
		existing, err := s.repo.GetByID(txCtx, kind, id)
		if err != nil {
			return workitem.WorkItem{}, err
		}
		if err := s.visibility.Authorize(txCtx, caller, existing.AssignedEmployeeID(), directoryservices.Scope{}); err != nil {
			return workitem.WorkItem{}, err
		}
		if data.AssignedEmployeeID != existing.AssignedEmployeeID() {
			if err := s.visibility.Authorize(txCtx, caller, data.AssignedEmployeeID, directoryservices.Scope{}); err != nil {
				return workitem.WorkItem{}, err
			}
		}
		assignee, err := s.employees.GetByID(txCtx, data.AssignedEmployeeID)
		if err != nil {
			return workitem.WorkItem{}, err
		}

		// Omitted fields keep their current values.
		description := existing.Description()
		if data.Description != "" {
			description = data.Description
		}
		dueDate := existing.DueDate()
		if data.DueDate != nil {
			dueDate = data.DueDate
		}

		entity := existing.
			WithAssignee(assignee.ID(), assignee.ManagerID()).
			WithDetails(data.Title, description, data.Priority, dueDate)
		if err := s.repo.Update(txCtx, entity); err != nil {
			return workitem.WorkItem{}, err
		}

		// A new component set wipes the old one, worklogs included, and is
		// repriced against the current table.
		if data.Components != nil {
			tbl, err := s.effort.Snapshot(txCtx)
			if err != nil {
				return workitem.WorkItem{}, err
			}
			priced := effort.Price(workitem.Specs(*data.Components), tbl)
			components := make([]workitem.Component, 0, len(priced))
			for _, p := range priced {
				components = append(components, workitem.NewComponent(p))
			}
			if _, err := s.repo.ReplaceComponents(txCtx, kind, id, components); err != nil {
				return workitem.WorkItem{}, err
			}
		}

		parent, err := s.reroll(txCtx, kind, id)
		if err != nil {
			return workitem.WorkItem{}, err
		}
		s.publisher.Publish(workitem.NewUpdatedEvent(parent))
		return parent, nil
	})
}

func (s *WorkItemService) Delete(ctx context.Context, caller composables.Caller, kind workitem.Kind, id int64) (workitem.WorkItem, error) {
	return composables.InTxResult(ctx, func(txCtx context.Context) (workitem.WorkItem, error) {
		existing, err := s.repo.GetByID(txCtx, kind, id)
		if err != nil {
			return workitem.WorkItem{}, err
		}
		if err := s.visibility.Authorize(txCtx, caller, existing.AssignedEmployeeID(), directoryservices.Scope{}); err != nil {
			return workitem.WorkItem{}, err
		}
		if err := s.repo.Delete(txCtx, kind, id); err != nil {
			return workitem.WorkItem{}, err
		}
		s.publisher.Publish(workitem.NewDeletedEvent(existing))
		return existing, nil
	})
}

// ApplyComponentStatus moves one component to a new status and reconciles its
// worklog ledger: entering the completed family tops the logs up to capacity,
// leaving it wipes them. The parent is rerolled in the same transaction.
func (s *WorkItemService) ApplyComponentStatus(ctx context.Context, caller composables.Caller, componentID int64, rawStatus string) (ComponentStatusResult, error) {
	return composables.InTxResult(ctx, func(txCtx context.Context) (ComponentStatusResult, error) {
		newStatus, ok := workitem.ParseComponentStatus(rawStatus)
		if !ok {
			return ComponentStatusResult{}, errUnknownStatus
		}

		comp, err := s.repo.GetComponentForUpdate(txCtx, componentID)
		if err != nil {
			return ComponentStatusResult{}, err
		}
		parent, err := s.repo.GetByID(txCtx, comp.Kind(), comp.WorkItemID())
		if err != nil {
			return ComponentStatusResult{}, err
		}
		if err := s.visibility.Authorize(txCtx, caller, parent.AssignedEmployeeID(), directoryservices.Scope{}); err != nil {
			return ComponentStatusResult{}, err
		}

		wasCompleted := comp.Status().InCompletedFamily()
		nowCompleted := newStatus.InCompletedFamily()
		now := time.Now()

		switch {
		case nowCompleted && !wasCompleted:
			// Top the ledger up to capacity so logged hours always equal
			// totalHours once a component is done.
			logged, err := s.logs.SumByComponent(txCtx, componentID)
			if err != nil {
				return ComponentStatusResult{}, err
			}
			if remaining := comp.TotalHours() - logged; remaining > 0 {
				entry := workitem.NewWorkLog(componentID, parent.AssignedEmployeeID(), remaining, now, "Auto-logged on completion")
				if _, err := s.logs.Create(txCtx, entry); err != nil {
					return ComponentStatusResult{}, err
				}
			}
			comp = comp.WithStatus(newStatus, &now)
		case !nowCompleted && wasCompleted:
			// Reopen: logged history does not survive a completion cycle.
			if _, err := s.logs.DeleteByComponent(txCtx, componentID); err != nil {
				return ComponentStatusResult{}, err
			}
			comp = comp.WithStatus(newStatus, nil)
		case nowCompleted:
			comp = comp.WithStatus(newStatus, comp.CompletedAt())
		default:
			comp = comp.WithStatus(newStatus, nil)
		}

		if err := s.repo.UpdateComponent(txCtx, comp); err != nil {
			return ComponentStatusResult{}, err
		}
		parent, err = s.reroll(txCtx, comp.Kind(), comp.WorkItemID())
		if err != nil {
			return ComponentStatusResult{}, err
		}
		return ComponentStatusResult{Component: comp, Parent: parent}, nil
	})
}

// reroll recomputes and persists the parent's derived status and workload
// from its current components. Always called inside the mutation's
// transaction so the parent can never be observed out of step.
func (s *WorkItemService) reroll(ctx context.Context, kind workitem.Kind, workItemID int64) (workitem.WorkItem, error) {
	components, err := s.repo.ComponentsOf(ctx, kind, workItemID)
	if err != nil {
		return workitem.WorkItem{}, err
	}

	snapshots := make([]workitem.ComponentSnapshot, 0, len(components))
	var workload float64
	for _, c := range components {
		snapshots = append(snapshots, workitem.ComponentSnapshot{Status: c.Status(), CompletedAt: c.CompletedAt()})
		workload += c.TotalHours()
	}
	status, completedAt := workitem.Rollup(snapshots)

	if err := s.repo.UpdateStatus(ctx, kind, workItemID, status, workload, completedAt); err != nil {
		return workitem.WorkItem{}, err
	}
	metrics.RollupRecomputations.WithLabelValues(string(status)).Inc()
	s.publisher.Publish(workitem.NewRolledUpEvent(kind, workItemID, status))

	parent, err := s.repo.GetByID(ctx, kind, workItemID)
	if err != nil {
		return workitem.WorkItem{}, err
	}
	return parent, nil
}
