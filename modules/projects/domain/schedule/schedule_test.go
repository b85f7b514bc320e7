package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/pulseworks/worktrack/modules/projects/domain/aggregates/project"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func dp(t time.Time) *time.Time { return &t }

func projectAt(stage project.Stage) project.Project {
	return project.New("Atlas rollout", "", "High", "web", nil, nil).WithStage(stage)
}

func TestDerive_SprintLifecycle(t *testing.T) {
	// Monday.
	today := day(2026, 3, 2)

	// Entering development sets the sprint start and clears the end.
	p := projectAt(project.StageUnderDevelopment)
	d := Derive(p, today)
	require.NotNil(t, d.SprintStartDate)
	require.True(t, d.SprintStartDate.Equal(today))
	require.Nil(t, d.SprintEndDate)

	// Leaving development stamps the sprint end; the start survives.
	later := day(2026, 3, 9)
	p = applyDerived(p, d).WithStage(project.StageUnderQA)
	d = Derive(p, later)
	require.True(t, d.SprintStartDate.Equal(today))
	require.NotNil(t, d.SprintEndDate)
	require.True(t, d.SprintEndDate.Equal(later))

	// Rolling back before development clears both.
	p = applyDerived(p, d).WithStage(project.StageBRSDiscussion)
	d = Derive(p, later)
	require.Nil(t, d.SprintStartDate)
	require.Nil(t, d.SprintEndDate)
}

func TestDerive_RollbackToDevelopmentKeepsSprintDates(t *testing.T) {
	started := day(2026, 3, 2)
	ended := day(2026, 3, 9)

	p := projectAt(project.StageUnderDevelopment)
	p = applyDerived(p, Derive(p, started)).WithStage(project.StageUnderQA)
	p = applyDerived(p, Derive(p, ended)).WithStage(project.StageUnderDevelopment)

	d := Derive(p, day(2026, 3, 16))
	require.True(t, d.SprintStartDate.Equal(started), "re-entering development does not restart the sprint")
	require.NotNil(t, d.SprintEndDate)
	require.True(t, d.SprintEndDate.Equal(ended))
}

func TestDerive_MilestoneDatesAreForwardSafe(t *testing.T) {
	signedOff := day(2026, 4, 6)
	p := projectAt(project.StageUATSignoff)
	d := Derive(p, signedOff)
	require.True(t, d.UATReleaseDate.Equal(signedOff))
	require.Nil(t, d.GoLiveDate)

	// Progressing to Live keeps the UAT date and stamps go-live.
	launched := day(2026, 4, 20)
	p = applyDerived(p, d).WithStage(project.StageLive)
	d = Derive(p, launched)
	require.True(t, d.UATReleaseDate.Equal(signedOff), "already-set milestone is preserved")
	require.True(t, d.GoLiveDate.Equal(launched))

	// Rollback before UAT signoff clears both milestones.
	p = applyDerived(p, d).WithStage(project.StageUnderUAT)
	d = Derive(p, launched)
	require.Nil(t, d.UATReleaseDate)
	require.Nil(t, d.GoLiveDate)
	require.NotNil(t, d.SprintStartDate, "sprint dates belong to an earlier milestone and stay")
}

func TestDerive_AbsorbingStagesFreezeDates(t *testing.T) {
	today := day(2026, 3, 2)
	p := projectAt(project.StageUnderDevelopment)
	p = applyDerived(p, Derive(p, today))

	d := Derive(p.WithStage(project.StageHold), day(2026, 5, 1))
	require.True(t, d.SprintStartDate.Equal(today), "Hold keeps the sprint start")
	require.Nil(t, d.SprintEndDate)
}

func TestDerive_Idempotent(t *testing.T) {
	today := day(2026, 3, 2)
	p := projectAt(project.StageUnderQA).
		WithDates(dp(day(2026, 2, 2)), dp(day(2026, 3, 31)))

	first := Derive(p, today)
	applied := applyDerived(p, first)
	second := Derive(applied, today)
	require.Equal(t, first, second)
	require.True(t, second.Equal(applied))
}

func TestDerive_OnTrackStatus(t *testing.T) {
	start := dp(day(2026, 3, 2))
	endFriday := dp(day(2026, 3, 6))

	p := projectAt(project.StageUnderDevelopment).WithDates(start, endFriday)

	d := Derive(p, day(2026, 3, 4))
	require.Equal(t, project.OnTrack, d.OnTrackStatus)

	d = Derive(p, day(2026, 3, 9))
	require.Equal(t, project.Delayed, d.OnTrackStatus)

	noEnd := projectAt(project.StageUnderDevelopment)
	require.Equal(t, project.OnTrack, Derive(noEnd, day(2026, 3, 9)).OnTrackStatus)
}

func TestDerive_ManDays(t *testing.T) {
	p := projectAt(project.StageBRSDiscussion).
		WithDates(dp(day(2026, 3, 2)), dp(day(2026, 3, 13)))

	d := Derive(p, day(2026, 3, 2))
	require.Equal(t, 10, d.ManDays, "two full working weeks")
}

func TestBusinessDays(t *testing.T) {
	mon := day(2026, 3, 2)
	fri := day(2026, 3, 6)
	sun := day(2026, 3, 8)

	require.Equal(t, 5, BusinessDays(&mon, &fri))
	require.Equal(t, 5, BusinessDays(&mon, &sun), "weekend days do not count")
	require.Equal(t, 1, BusinessDays(&mon, &mon))
	require.Equal(t, 0, BusinessDays(&fri, &mon), "inverted range")
	require.Equal(t, 0, BusinessDays(nil, &fri))
	require.Equal(t, 0, BusinessDays(&mon, nil))

	sat := day(2026, 3, 7)
	require.Equal(t, 0, BusinessDays(&sat, &sun))
}

func applyDerived(p project.Project, d Derived) project.Project {
	return p.WithSchedule(d.SprintStartDate, d.SprintEndDate, d.UATReleaseDate, d.GoLiveDate, d.OnTrackStatus, d.ManDays)
}
