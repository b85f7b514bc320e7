package services

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/pulseworks/worktrack/modules/worktracking/domain/aggregates/workitem"
)

func TestWorklogService_RecordPartialMovesComponentIntoDevelopment(t *testing.T) {
	f := newFixture(t)
	item := createTask(t, f)
	compID := item.Components()[0].ID()

	log, err := f.worklogs.Record(ctx(), head(), compID, &workitem.RecordWorklogDTO{
		EmployeeID: 2,
		Hours:      6,
		Date:       datePtr(time.Now()),
		Notes:      "api plumbing",
	})
	require.NoError(t, err)
	require.Equal(t, float64(6), log.Hours())

	comp, err := f.items.repo.GetComponentForUpdate(ctx(), compID)
	require.NoError(t, err)
	require.Equal(t, workitem.StatusUnderDevelopment, comp.Status())

	parent, err := f.items.GetByID(ctx(), head(), workitem.KindTask, item.ID())
	require.NoError(t, err)
	require.Equal(t, workitem.StatusWIP, parent.Status())
}

func TestWorklogService_RecordExactFillCompletesComponent(t *testing.T) {
	f := newFixture(t)
	item := createTask(t, f)
	compID := item.Components()[0].ID()

	_, err := f.worklogs.Record(ctx(), head(), compID, &workitem.RecordWorklogDTO{
		EmployeeID: 2,
		Hours:      15,
		Date:       datePtr(time.Now()),
	})
	require.NoError(t, err)

	comp, err := f.items.repo.GetComponentForUpdate(ctx(), compID)
	require.NoError(t, err)
	require.Equal(t, workitem.StatusLive, comp.Status())
	require.NotNil(t, comp.CompletedAt())

	parent, err := f.items.GetByID(ctx(), head(), workitem.KindTask, item.ID())
	require.NoError(t, err)
	require.Equal(t, workitem.StatusCompleted, parent.Status())
}

func TestWorklogService_RecordRejectsBadHours(t *testing.T) {
	f := newFixture(t)
	item := createTask(t, f)
	compID := item.Components()[0].ID()

	_, err := f.worklogs.Record(ctx(), head(), compID, &workitem.RecordWorklogDTO{
		EmployeeID: 2,
		Hours:      -1,
		Date:       datePtr(time.Now()),
	})
	require.True(t, errors.Is(err, workitem.ErrInvalidHours))

	_, err = f.worklogs.Record(ctx(), head(), compID, &workitem.RecordWorklogDTO{
		EmployeeID: 2,
		Hours:      16,
		Date:       datePtr(time.Now()),
	})
	require.True(t, errors.Is(err, workitem.ErrCapacityExceeded))
}

func TestWorklogService_RecordOnCompletedComponentIsLocked(t *testing.T) {
	f := newFixture(t)
	item := createTask(t, f)
	compID := item.Components()[0].ID()

	_, err := f.items.ApplyComponentStatus(ctx(), head(), compID, "Live")
	require.NoError(t, err)

	_, err = f.worklogs.Record(ctx(), head(), compID, &workitem.RecordWorklogDTO{
		EmployeeID: 2,
		Hours:      1,
		Date:       datePtr(time.Now()),
	})
	require.True(t, errors.Is(err, workitem.ErrComponentLocked))
}

func TestWorklogService_EditEnforcesBoundaryRules(t *testing.T) {
	f := newFixture(t)
	item := createTask(t, f)
	compID := item.Components()[0].ID()

	log, err := f.worklogs.Record(ctx(), head(), compID, &workitem.RecordWorklogDTO{
		EmployeeID: 2,
		Hours:      5,
		Date:       datePtr(time.Now()),
	})
	require.NoError(t, err)
	_, err = f.worklogs.Record(ctx(), head(), compID, &workitem.RecordWorklogDTO{
		EmployeeID: 2,
		Hours:      5,
		Date:       datePtr(time.Now()),
	})
	require.NoError(t, err)

	// 5 (other) + 11 > 15
	_, err = f.worklogs.Edit(ctx(), head(), log.ID(), &workitem.EditWorklogDTO{
		Hours: 11,
		Date:  datePtr(time.Now()),
	})
	require.True(t, errors.Is(err, workitem.ErrCapacityExceeded))

	// 5 (other) + 10 == 15: completion must be an explicit transition.
	_, err = f.worklogs.Edit(ctx(), head(), log.ID(), &workitem.EditWorklogDTO{
		Hours: 10,
		Date:  datePtr(time.Now()),
	})
	require.True(t, errors.Is(err, workitem.ErrMustUseStatusTransition))

	updated, err := f.worklogs.Edit(ctx(), head(), log.ID(), &workitem.EditWorklogDTO{
		Hours: 7,
		Date:  datePtr(time.Now()),
		Notes: "corrected",
	})
	require.NoError(t, err)
	require.Equal(t, float64(7), updated.Hours())

	comp, err := f.items.repo.GetComponentForUpdate(ctx(), compID)
	require.NoError(t, err)
	require.Equal(t, workitem.StatusUnderDevelopment, comp.Status())
}

func TestWorklogService_EditOnCompletedComponentIsLocked(t *testing.T) {
	f := newFixture(t)
	item := createTask(t, f)
	compID := item.Components()[0].ID()

	log, err := f.worklogs.Record(ctx(), head(), compID, &workitem.RecordWorklogDTO{
		EmployeeID: 2,
		Hours:      5,
		Date:       datePtr(time.Now()),
	})
	require.NoError(t, err)

	_, err = f.items.ApplyComponentStatus(ctx(), head(), compID, "Live")
	require.NoError(t, err)

	_, err = f.worklogs.Edit(ctx(), head(), log.ID(), &workitem.EditWorklogDTO{
		Hours: 3,
		Date:  datePtr(time.Now()),
	})
	require.True(t, errors.Is(err, workitem.ErrComponentLocked))
}

func TestWorklogService_DeleteRederivesComponentStatus(t *testing.T) {
	f := newFixture(t)
	item := createTask(t, f)
	compID := item.Components()[0].ID()

	first, err := f.worklogs.Record(ctx(), head(), compID, &workitem.RecordWorklogDTO{
		EmployeeID: 2,
		Hours:      5,
		Date:       datePtr(time.Now()),
	})
	require.NoError(t, err)
	second, err := f.worklogs.Record(ctx(), head(), compID, &workitem.RecordWorklogDTO{
		EmployeeID: 2,
		Hours:      4,
		Date:       datePtr(time.Now()),
	})
	require.NoError(t, err)

	res, err := f.worklogs.Delete(ctx(), head(), second.ID())
	require.NoError(t, err)
	require.Equal(t, workitem.StatusUnderDevelopment, res.Component.Status())
	require.Equal(t, workitem.StatusWIP, res.Parent.Status())

	res, err = f.worklogs.Delete(ctx(), head(), first.ID())
	require.NoError(t, err)
	require.Equal(t, workitem.StatusPending, res.Component.Status())
	require.Equal(t, workitem.StatusPending, res.Parent.Status())
}

func TestWorklogService_DeleteUnknownLog(t *testing.T) {
	f := newFixture(t)

	_, err := f.worklogs.Delete(ctx(), head(), 12345)
	require.True(t, errors.Is(err, workitem.ErrWorklogNotFound))
}
