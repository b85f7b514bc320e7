package services

import (
	"context"
	"time"

	"github.com/pulseworks/worktrack/modules/projects/domain/aggregates/project"
	"github.com/pulseworks/worktrack/modules/projects/domain/schedule"
	"github.com/pulseworks/worktrack/pkg/composables"
	"github.com/pulseworks/worktrack/pkg/eventbus"
)

// Analytics is a counts-by-dimension summary over all projects.
type Analytics struct {
	Total      int64            `json:"total"`
	ByStage    map[string]int64 `json:"byStage"`
	ByPriority map[string]int64 `json:"byPriority"`
	ByOnTrack  map[string]int64 `json:"byOnTrack"`
}

// ProjectService owns the project lifecycle. Every read and edit runs the
// schedule derivation, and edits additionally append field-level change-log
// rows in the same transaction.
type ProjectService struct {
	repo      project.Repository
	changes   project.ChangeLogRepository
	publisher eventbus.EventBus
	clock     func() time.Time
}

func NewProjectService(repo project.Repository, changes project.ChangeLogRepository, publisher eventbus.EventBus) *ProjectService {
	return &ProjectService{
		repo:      repo,
		changes:   changes,
		publisher: publisher,
		clock:     time.Now,
	}
}

func (s *ProjectService) Count(ctx context.Context) (int64, error) {
	return composables.InTxResult(ctx, func(txCtx context.Context) (int64, error) {
		return s.repo.Count(txCtx)
	})
}

func (s *ProjectService) Create(ctx context.Context, caller composables.Caller, data *project.CreateDTO) (project.Project, error) {
	return composables.InTxResult(ctx, func(txCtx context.Context) (project.Project, error) {
		entity := data.ToEntity()
		today := s.clock()
		if entity.StartDate() == nil {
			start := today
			entity = entity.WithDates(&start, entity.PlannedEndDate())
		}
		entity = applyDerived(entity, schedule.Derive(entity, today))

		created, err := s.repo.Create(txCtx, entity)
		if err != nil {
			return project.Project{}, err
		}
		s.publisher.Publish(project.NewCreatedEvent(created))
		return created, nil
	})
}

// GetByID loads the project and reconciles its derived schedule fields,
// persisting them when they have drifted (e.g. the on-track status flipping
// overnight).
func (s *ProjectService) GetByID(ctx context.Context, id int64) (project.Project, error) {
	return composables.InTxResult(ctx, func(txCtx context.Context) (project.Project, error) {
		p, err := s.repo.GetByID(txCtx, id)
		if err != nil {
			return project.Project{}, err
		}
		return s.reconcile(txCtx, p)
	})
}

func (s *ProjectService) List(ctx context.Context, params *project.FindParams) ([]project.Project, error) {
	return composables.InTxResult(ctx, func(txCtx context.Context) ([]project.Project, error) {
		items, err := s.repo.GetPaginated(txCtx, params)
		if err != nil {
			return nil, err
		}
		out := make([]project.Project, 0, len(items))
		for _, p := range items {
			reconciled, err := s.reconcile(txCtx, p)
			if err != nil {
				return nil, err
			}
			out = append(out, reconciled)
		}
		return out, nil
	})
}

func (s *ProjectService) Update(ctx context.Context, caller composables.Caller, id int64, data *project.UpdateDTO) (project.Project, error) {
	return composables.InTxResult(ctx, func(txCtx context.Context) (project.Project, error) {
		existing, err := s.repo.GetByID(txCtx, id)
		if err != nil {
			return project.Project{}, err
		}

		// Omitted fields keep their current values.
		description := existing.Description()
		if data.Description != "" {
			description = data.Description
		}
		platform := existing.Platform()
		if data.Platform != "" {
			platform = data.Platform
		}
		startDate := existing.StartDate()
		if data.StartDate != nil {
			startDate = data.StartDate
		}
		plannedEnd := existing.PlannedEndDate()
		if data.PlannedEndDate != nil {
			plannedEnd = data.PlannedEndDate
		}

		updated := existing.
			WithDetails(data.Name, description, data.Priority, platform).
			WithDates(startDate, plannedEnd)
		stageChanged := false
		if data.Stage != "" {
			stage, ok := project.ParseStage(data.Stage)
			if ok && stage != existing.Stage() {
				updated = updated.WithStage(stage)
				stageChanged = true
			}
		}

		entries := diffEntries(existing, updated, caller.ID)
		if stageChanged && data.Remarks != "" {
			entries = append(entries, project.NewChangeEntry(id, caller.ID, "remarks", "", data.Remarks))
		}

		updated = applyDerived(updated, schedule.Derive(updated, s.clock()))
		if err := s.repo.Update(txCtx, updated); err != nil {
			return project.Project{}, err
		}
		if len(entries) > 0 {
			if err := s.changes.Append(txCtx, entries); err != nil {
				return project.Project{}, err
			}
		}

		final, err := s.repo.GetByID(txCtx, id)
		if err != nil {
			return project.Project{}, err
		}
		if stageChanged {
			s.publisher.Publish(project.NewStageChangedEvent(id, existing.Stage(), final.Stage()))
		}
		s.publisher.Publish(project.NewUpdatedEvent(final))
		return final, nil
	})
}

func (s *ProjectService) Delete(ctx context.Context, caller composables.Caller, id int64) (project.Project, error) {
	return composables.InTxResult(ctx, func(txCtx context.Context) (project.Project, error) {
		existing, err := s.repo.GetByID(txCtx, id)
		if err != nil {
			return project.Project{}, err
		}
		if err := s.repo.Delete(txCtx, id); err != nil {
			return project.Project{}, err
		}
		s.publisher.Publish(project.NewDeletedEvent(existing))
		return existing, nil
	})
}

func (s *ProjectService) ChangeLog(ctx context.Context, projectID int64) ([]project.ChangeEntry, error) {
	return composables.InTxResult(ctx, func(txCtx context.Context) ([]project.ChangeEntry, error) {
		if _, err := s.repo.GetByID(txCtx, projectID); err != nil {
			return nil, err
		}
		return s.changes.ListByProject(txCtx, projectID)
	})
}

func (s *ProjectService) Summary(ctx context.Context) (Analytics, error) {
	return composables.InTxResult(ctx, func(txCtx context.Context) (Analytics, error) {
		items, err := s.repo.GetAll(txCtx)
		if err != nil {
			return Analytics{}, err
		}
		out := Analytics{
			Total:      int64(len(items)),
			ByStage:    map[string]int64{},
			ByPriority: map[string]int64{},
			ByOnTrack:  map[string]int64{},
		}
		for _, p := range items {
			out.ByStage[string(p.Stage())]++
			out.ByPriority[p.Priority()]++
			out.ByOnTrack[p.OnTrackStatus()]++
		}
		return out, nil
	})
}

func (s *ProjectService) reconcile(ctx context.Context, p project.Project) (project.Project, error) {
	derived := schedule.Derive(p, s.clock())
	if derived.Equal(p) {
		return p, nil
	}
	updated := applyDerived(p, derived)
	if err := s.repo.Update(ctx, updated); err != nil {
		return project.Project{}, err
	}
	return updated, nil
}

func applyDerived(p project.Project, d schedule.Derived) project.Project {
	return p.WithSchedule(d.SprintStartDate, d.SprintEndDate, d.UATReleaseDate, d.GoLiveDate, d.OnTrackStatus, d.ManDays)
}

// diffEntries produces one ledger row per changed caller-editable field.
func diffEntries(before, after project.Project, actorID int64) []project.ChangeEntry {
	entries := []project.ChangeEntry{}
	add := func(field, oldValue, newValue string) {
		if oldValue != newValue {
			entries = append(entries, project.NewChangeEntry(before.ID(), actorID, field, oldValue, newValue))
		}
	}
	add("name", before.Name(), after.Name())
	add("description", before.Description(), after.Description())
	add("priority", before.Priority(), after.Priority())
	add("platform", before.Platform(), after.Platform())
	add("stage", string(before.Stage()), string(after.Stage()))
	add("startDate", fmtDate(before.StartDate()), fmtDate(after.StartDate()))
	add("plannedEndDate", fmtDate(before.PlannedEndDate()), fmtDate(after.PlannedEndDate()))
	return entries
}

func fmtDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format("2006-01-02")
}
