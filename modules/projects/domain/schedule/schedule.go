package schedule

import (
	"time"

	"github.com/pulseworks/worktrack/modules/projects/domain/aggregates/project"
)

// Derived is the automaton's full output: the value every schedule field
// should hold given the project's stage and dates on a given day. Applying it
// twice yields the same result, which is what lets the service run it on
// every read and edit.
type Derived struct {
	SprintStartDate *time.Time
	SprintEndDate   *time.Time
	UATReleaseDate  *time.Time
	GoLiveDate      *time.Time
	OnTrackStatus   string
	ManDays         int
}

// Derive recomputes the schedule fields. Milestone dates are forward-safe:
// set to today the first time the stage is reached, preserved on further
// progress, cleared when the project is rolled back before the milestone.
// The absorbing states (Hold, Dropped) freeze the dates as they are.
func Derive(p project.Project, today time.Time) Derived {
	d := Derived{
		SprintStartDate: p.SprintStartDate(),
		SprintEndDate:   p.SprintEndDate(),
		UATReleaseDate:  p.UATReleaseDate(),
		GoLiveDate:      p.GoLiveDate(),
		OnTrackStatus:   onTrack(p.PlannedEndDate(), today),
		ManDays:         BusinessDays(p.StartDate(), p.PlannedEndDate()),
	}

	stage := p.Stage()
	if stage.Absorbing() {
		return d
	}

	switch {
	case stage == project.StageUnderDevelopment:
		// Only a fresh sprint stamps the start and clears the end; rolling
		// back into development keeps an already-stamped sprint intact.
		if p.SprintStartDate() == nil {
			d.SprintStartDate = firstSet(p.SprintStartDate(), today)
			d.SprintEndDate = nil
		}
	case stage.ReachedOrPast(project.StageUnderDevelopment):
		d.SprintStartDate = firstSet(p.SprintStartDate(), today)
		d.SprintEndDate = firstSet(p.SprintEndDate(), today)
	default:
		d.SprintStartDate = nil
		d.SprintEndDate = nil
	}

	if stage.ReachedOrPast(project.StageUATSignoff) {
		d.UATReleaseDate = firstSet(p.UATReleaseDate(), today)
	} else {
		d.UATReleaseDate = nil
	}

	if stage.ReachedOrPast(project.StageLive) {
		d.GoLiveDate = firstSet(p.GoLiveDate(), today)
	} else {
		d.GoLiveDate = nil
	}

	return d
}

// Equal reports whether applying the derivation to the project would change
// nothing, letting reads skip the write-back.
func (d Derived) Equal(p project.Project) bool {
	return sameDay(d.SprintStartDate, p.SprintStartDate()) &&
		sameDay(d.SprintEndDate, p.SprintEndDate()) &&
		sameDay(d.UATReleaseDate, p.UATReleaseDate()) &&
		sameDay(d.GoLiveDate, p.GoLiveDate()) &&
		d.OnTrackStatus == p.OnTrackStatus() &&
		d.ManDays == p.ManDays()
}

// BusinessDays counts weekdays (Mon-Fri) between the two dates, inclusive.
// Missing or inverted ranges count zero.
func BusinessDays(start, end *time.Time) int {
	if start == nil || end == nil {
		return 0
	}
	from := dateOnly(*start)
	to := dateOnly(*end)
	if from.After(to) {
		return 0
	}
	days := 0
	for d := from; !d.After(to); d = d.AddDate(0, 0, 1) {
		if wd := d.Weekday(); wd != time.Saturday && wd != time.Sunday {
			days++
		}
	}
	return days
}

func onTrack(plannedEnd *time.Time, today time.Time) string {
	if plannedEnd == nil {
		return project.OnTrack
	}
	if BusinessDays(&today, plannedEnd) <= 0 {
		return project.Delayed
	}
	return project.OnTrack
}

func firstSet(existing *time.Time, today time.Time) *time.Time {
	if existing != nil {
		return existing
	}
	t := dateOnly(today)
	return &t
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func sameDay(a, b *time.Time) bool {
	if a == nil || b == nil {
		return a == b
	}
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
