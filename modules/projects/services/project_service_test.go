package services

import (
	"context"
	"errors"
	"io"
	"sort"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	"github.com/pulseworks/worktrack/modules/projects/domain/aggregates/project"
	"github.com/pulseworks/worktrack/pkg/composables"
	"github.com/pulseworks/worktrack/pkg/eventbus"
	"github.com/pulseworks/worktrack/pkg/testutils"
)

type memProjectRepo struct {
	projects map[int64]project.Project
	lastID   int64
}

func newMemProjectRepo() *memProjectRepo {
	return &memProjectRepo{projects: map[int64]project.Project{}}
}

func (r *memProjectRepo) Count(ctx context.Context) (int64, error) {
	return int64(len(r.projects)), nil
}

func (r *memProjectRepo) GetAll(ctx context.Context) ([]project.Project, error) {
	out := make([]project.Project, 0, len(r.projects))
	for _, p := range r.projects {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID() < out[j].ID() })
	return out, nil
}

func (r *memProjectRepo) GetPaginated(ctx context.Context, params *project.FindParams) ([]project.Project, error) {
	all, _ := r.GetAll(ctx)
	if params == nil {
		return all, nil
	}
	out := []project.Project{}
	for _, p := range all {
		if params.Stage != "" && p.Stage() != params.Stage {
			continue
		}
		if params.Priority != "" && p.Priority() != params.Priority {
			continue
		}
		if params.OnTrackStatus != "" && p.OnTrackStatus() != params.OnTrackStatus {
			continue
		}
		out = append(out, p)
	}
	return out, nil
}

func (r *memProjectRepo) GetByID(ctx context.Context, id int64) (project.Project, error) {
	p, ok := r.projects[id]
	if !ok {
		return project.Project{}, project.ErrNotFound
	}
	return p, nil
}

func (r *memProjectRepo) Create(ctx context.Context, data project.Project) (project.Project, error) {
	r.lastID++
	now := time.Now()
	p := project.Hydrate(
		r.lastID, data.Name(), data.Description(), data.Priority(), data.Platform(),
		data.Stage(), data.StartDate(), data.PlannedEndDate(),
		data.SprintStartDate(), data.SprintEndDate(), data.UATReleaseDate(), data.GoLiveDate(),
		data.OnTrackStatus(), data.ManDays(), now, now,
	)
	r.projects[p.ID()] = p
	return p, nil
}

func (r *memProjectRepo) Update(ctx context.Context, data project.Project) error {
	if _, ok := r.projects[data.ID()]; !ok {
		return project.ErrNotFound
	}
	r.projects[data.ID()] = data
	return nil
}

func (r *memProjectRepo) Delete(ctx context.Context, id int64) error {
	if _, ok := r.projects[id]; !ok {
		return project.ErrNotFound
	}
	delete(r.projects, id)
	return nil
}

type memChangeRepo struct {
	entries []project.ChangeEntry
}

func (r *memChangeRepo) ListByProject(ctx context.Context, projectID int64) ([]project.ChangeEntry, error) {
	out := []project.ChangeEntry{}
	for _, e := range r.entries {
		if e.ProjectID() == projectID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (r *memChangeRepo) Append(ctx context.Context, entries []project.ChangeEntry) error {
	r.entries = append(r.entries, entries...)
	return nil
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func dp(t time.Time) *time.Time { return &t }

func newService(t *testing.T, today time.Time) (*ProjectService, *memProjectRepo, *memChangeRepo) {
	t.Helper()
	log := logrus.New()
	log.SetOutput(io.Discard)
	repo := newMemProjectRepo()
	changes := &memChangeRepo{}
	svc := NewProjectService(repo, changes, eventbus.NewEventPublisher(log))
	svc.clock = func() time.Time { return today }
	return svc, repo, changes
}

func ctx() context.Context {
	return testutils.WithNopTx(context.Background())
}

func caller() composables.Caller { return composables.Caller{ID: 7} }

func TestProjectService_CreateDefaults(t *testing.T) {
	today := day(2026, 3, 2)
	svc, _, _ := newService(t, today)

	created, err := svc.Create(ctx(), caller(), &project.CreateDTO{
		Name:           "Atlas rollout",
		PlannedEndDate: dp(day(2026, 3, 13)),
	})
	require.NoError(t, err)
	require.Equal(t, project.StageBRSDiscussion, created.Stage())
	require.NotNil(t, created.StartDate())
	require.True(t, created.StartDate().Equal(today), "start date defaults to today")
	require.Equal(t, project.OnTrack, created.OnTrackStatus())
	require.Equal(t, 10, created.ManDays())
	require.Nil(t, created.SprintStartDate())
}

func TestProjectService_UpdateDrivesScheduleThroughStages(t *testing.T) {
	today := day(2026, 3, 2)
	svc, _, _ := newService(t, today)

	created, err := svc.Create(ctx(), caller(), &project.CreateDTO{Name: "Atlas rollout"})
	require.NoError(t, err)

	// Reaching development stamps the sprint start.
	updated, err := svc.Update(ctx(), caller(), created.ID(), &project.UpdateDTO{
		Name:      "Atlas rollout",
		StartDate: created.StartDate(),
		Stage:     "Under_Development",
	})
	require.NoError(t, err)
	require.NotNil(t, updated.SprintStartDate())
	require.Nil(t, updated.SprintEndDate())

	// Leaving development stamps the sprint end.
	svc.clock = func() time.Time { return day(2026, 3, 9) }
	updated, err = svc.Update(ctx(), caller(), created.ID(), &project.UpdateDTO{
		Name:      "Atlas rollout",
		StartDate: created.StartDate(),
		Stage:     "Under_QA",
	})
	require.NoError(t, err)
	require.True(t, updated.SprintStartDate().Equal(today))
	require.True(t, updated.SprintEndDate().Equal(day(2026, 3, 9)))

	// Rolling back clears both sprint dates.
	updated, err = svc.Update(ctx(), caller(), created.ID(), &project.UpdateDTO{
		Name:      "Atlas rollout",
		StartDate: created.StartDate(),
		Stage:     "BRS_Discussion",
	})
	require.NoError(t, err)
	require.Nil(t, updated.SprintStartDate())
	require.Nil(t, updated.SprintEndDate())
}

func TestProjectService_UpdateAppendsChangeLogRows(t *testing.T) {
	svc, _, changes := newService(t, day(2026, 3, 2))

	created, err := svc.Create(ctx(), caller(), &project.CreateDTO{Name: "Atlas rollout", Priority: "High"})
	require.NoError(t, err)

	_, err = svc.Update(ctx(), caller(), created.ID(), &project.UpdateDTO{
		Name:      "Atlas rollout v2",
		Priority:  "Low",
		Stage:     "Under_Development",
		StartDate: created.StartDate(),
		Remarks:   "kickoff approved",
	})
	require.NoError(t, err)

	entries, err := svc.ChangeLog(ctx(), created.ID())
	require.NoError(t, err)

	byField := map[string]project.ChangeEntry{}
	for _, e := range entries {
		byField[e.Field()] = e
	}
	require.Len(t, entries, 4)
	require.Equal(t, "Atlas rollout", byField["name"].OldValue())
	require.Equal(t, "Atlas rollout v2", byField["name"].NewValue())
	require.Equal(t, "High", byField["priority"].OldValue())
	require.Equal(t, "BRS_Discussion", byField["stage"].OldValue())
	require.Equal(t, "Under_Development", byField["stage"].NewValue())
	require.Equal(t, "kickoff approved", byField["remarks"].NewValue())
	require.Equal(t, int64(7), byField["stage"].ActorID())

	// An update changing nothing appends nothing.
	before := len(changes.entries)
	_, err = svc.Update(ctx(), caller(), created.ID(), &project.UpdateDTO{
		Name:      "Atlas rollout v2",
		Priority:  "Low",
		StartDate: created.StartDate(),
	})
	require.NoError(t, err)
	require.Len(t, changes.entries, before)
}

func TestProjectService_UpdateKeepsOmittedFields(t *testing.T) {
	svc, _, changes := newService(t, day(2026, 3, 2))

	created, err := svc.Create(ctx(), caller(), &project.CreateDTO{
		Name:           "Atlas rollout",
		Description:    "west region cutover",
		Platform:       "Web",
		StartDate:      dp(day(2026, 3, 2)),
		PlannedEndDate: dp(day(2026, 3, 13)),
	})
	require.NoError(t, err)
	require.Equal(t, 10, created.ManDays())

	updated, err := svc.Update(ctx(), caller(), created.ID(), &project.UpdateDTO{
		Name: "Atlas rollout v2",
	})
	require.NoError(t, err)
	require.Equal(t, "west region cutover", updated.Description())
	require.Equal(t, "Web", updated.Platform())
	require.NotNil(t, updated.StartDate())
	require.True(t, updated.StartDate().Equal(day(2026, 3, 2)))
	require.NotNil(t, updated.PlannedEndDate())
	require.True(t, updated.PlannedEndDate().Equal(day(2026, 3, 13)))
	require.Equal(t, 10, updated.ManDays())

	require.Len(t, changes.entries, 1)
	require.Equal(t, "name", changes.entries[0].Field())
}

func TestProjectService_GetByIDPersistsDriftedSchedule(t *testing.T) {
	svc, repo, _ := newService(t, day(2026, 3, 2))

	created, err := svc.Create(ctx(), caller(), &project.CreateDTO{
		Name:           "Atlas rollout",
		PlannedEndDate: dp(day(2026, 3, 6)),
	})
	require.NoError(t, err)
	require.Equal(t, project.OnTrack, created.OnTrackStatus())

	// A week later the planned end has passed; a plain read flips and
	// persists the on-track status.
	svc.clock = func() time.Time { return day(2026, 3, 9) }
	got, err := svc.GetByID(ctx(), created.ID())
	require.NoError(t, err)
	require.Equal(t, project.Delayed, got.OnTrackStatus())

	stored, err := repo.GetByID(ctx(), created.ID())
	require.NoError(t, err)
	require.Equal(t, project.Delayed, stored.OnTrackStatus())
}

func TestProjectService_SummaryCounts(t *testing.T) {
	svc, _, _ := newService(t, day(2026, 3, 2))

	for _, name := range []string{"a", "b"} {
		_, err := svc.Create(ctx(), caller(), &project.CreateDTO{Name: name, Priority: "High"})
		require.NoError(t, err)
	}
	created, err := svc.Create(ctx(), caller(), &project.CreateDTO{Name: "c"})
	require.NoError(t, err)
	_, err = svc.Update(ctx(), caller(), created.ID(), &project.UpdateDTO{Name: "c", Stage: "Under_Development"})
	require.NoError(t, err)

	summary, err := svc.Summary(ctx())
	require.NoError(t, err)
	require.Equal(t, int64(3), summary.Total)
	require.Equal(t, int64(2), summary.ByStage["BRS_Discussion"])
	require.Equal(t, int64(1), summary.ByStage["Under_Development"])
	require.Equal(t, int64(2), summary.ByPriority["High"])
}

func TestProjectService_DeleteAndNotFound(t *testing.T) {
	svc, _, _ := newService(t, day(2026, 3, 2))

	created, err := svc.Create(ctx(), caller(), &project.CreateDTO{Name: "doomed"})
	require.NoError(t, err)

	_, err = svc.Delete(ctx(), caller(), created.ID())
	require.NoError(t, err)

	_, err = svc.GetByID(ctx(), created.ID())
	require.True(t, errors.Is(err, project.ErrNotFound))
}
