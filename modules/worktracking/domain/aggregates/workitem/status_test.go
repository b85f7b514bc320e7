package workitem

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func tp(t time.Time) *time.Time { return &t }

func TestRollup_AllCompletedTakesLatestCompletedAt(t *testing.T) {
	early := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	late := time.Date(2026, 3, 5, 10, 0, 0, 0, time.UTC)

	status, completedAt := Rollup([]ComponentSnapshot{
		{Status: StatusLive, CompletedAt: tp(early)},
		{Status: StatusCompleted, CompletedAt: tp(late)},
		{Status: StatusPreprodSignoff, CompletedAt: tp(early)},
	})

	require.Equal(t, StatusCompleted, status)
	require.NotNil(t, completedAt)
	require.True(t, completedAt.Equal(late))
}

func TestRollup_AnyWIPWins(t *testing.T) {
	status, completedAt := Rollup([]ComponentSnapshot{
		{Status: StatusLive, CompletedAt: tp(time.Now())},
		{Status: StatusUnderQA},
		{Status: StatusHold},
	})

	require.Equal(t, StatusWIP, status)
	require.Nil(t, completedAt)
}

func TestRollup_HoldBeatsPendingAndDropped(t *testing.T) {
	status, _ := Rollup([]ComponentSnapshot{
		{Status: StatusHold},
		{Status: StatusPending},
		{Status: StatusDropped},
	})
	require.Equal(t, StatusHold, status)
}

func TestRollup_AllDropped(t *testing.T) {
	status, _ := Rollup([]ComponentSnapshot{
		{Status: StatusDropped},
		{Status: StatusDropped},
	})
	require.Equal(t, StatusDropped, status)
}

func TestRollup_MixedDroppedAndPendingIsPending(t *testing.T) {
	status, _ := Rollup([]ComponentSnapshot{
		{Status: StatusDropped},
		{Status: StatusPending},
	})
	require.Equal(t, StatusPending, status)
}

func TestRollup_NoChildrenIsPending(t *testing.T) {
	status, completedAt := Rollup(nil)
	require.Equal(t, StatusPending, status)
	require.Nil(t, completedAt)
}

func TestRollup_Idempotent(t *testing.T) {
	children := []ComponentSnapshot{
		{Status: StatusLive, CompletedAt: tp(time.Date(2026, 3, 5, 0, 0, 0, 0, time.UTC))},
		{Status: StatusUnderDevelopment},
	}

	first, firstAt := Rollup(children)
	second, secondAt := Rollup(children)
	require.Equal(t, first, second)
	require.Equal(t, firstAt, secondAt)
}

func TestParseComponentStatus(t *testing.T) {
	s, ok := ParseComponentStatus("Under_Preprod")
	require.True(t, ok)
	require.Equal(t, StatusUnderPreprod, s)

	_, ok = ParseComponentStatus("WIP")
	require.False(t, ok, "the parent-level marker is not a component status")

	_, ok = ParseComponentStatus("Donezo")
	require.False(t, ok)
}

func TestStatusFamilies(t *testing.T) {
	require.True(t, StatusUATSignoff.InWIPFamily())
	require.True(t, StatusUnderPreprod.InWIPFamily())
	require.False(t, StatusLive.InWIPFamily())

	require.True(t, StatusLive.InCompletedFamily())
	require.True(t, StatusPreprodSignoff.InCompletedFamily())
	require.False(t, StatusHold.InCompletedFamily())
}

func TestStatusFromLogged(t *testing.T) {
	require.Equal(t, StatusPending, StatusFromLogged(15, 0))
	require.Equal(t, StatusUnderDevelopment, StatusFromLogged(15, 10))
	require.Equal(t, StatusCompleted, StatusFromLogged(15, 15))
}
