package workitem

import "time"

// Status is shared by work items and their components. Components move
// through the named sub-stages; the parent work item only ever holds one of
// Pending, WIP, Completed, Hold, Dropped, derived by Rollup.
type Status string

const (
	StatusPending          Status = "Pending"
	StatusUnderDevelopment Status = "Under_Development"
	StatusUnderQA          Status = "Under_QA"
	StatusUnderUAT         Status = "Under_UAT"
	StatusUATSignoff       Status = "UAT_Signoff"
	StatusUnderPreprod     Status = "Under_Preprod"
	StatusLive             Status = "Live"
	StatusPreprodSignoff   Status = "Preprod_Signoff"
	StatusCompleted        Status = "Completed"
	StatusHold             Status = "Hold"
	StatusDropped          Status = "Dropped"

	// StatusWIP is the parent-level marker for "some component is in flight".
	StatusWIP Status = "WIP"
)

var wipFamily = map[Status]struct{}{
	StatusUnderDevelopment: {},
	StatusUnderQA:          {},
	StatusUnderUAT:         {},
	StatusUATSignoff:       {},
	StatusUnderPreprod:     {},
}

var completedFamily = map[Status]struct{}{
	StatusLive:           {},
	StatusPreprodSignoff: {},
	StatusCompleted:      {},
}

var componentStatuses = map[Status]struct{}{
	StatusPending:          {},
	StatusUnderDevelopment: {},
	StatusUnderQA:          {},
	StatusUnderUAT:         {},
	StatusUATSignoff:       {},
	StatusUnderPreprod:     {},
	StatusLive:             {},
	StatusPreprodSignoff:   {},
	StatusCompleted:        {},
	StatusHold:             {},
	StatusDropped:          {},
}

// ParseComponentStatus accepts any recognized component status value. There
// is no ordering constraint between sub-stages; any recognized target is a
// legal transition.
func ParseComponentStatus(raw string) (Status, bool) {
	s := Status(raw)
	_, ok := componentStatuses[s]
	return s, ok
}

// ParseStatus accepts any status a parent work item can carry, which is the
// component set plus the rollup-only WIP marker.
func ParseStatus(raw string) (Status, bool) {
	if s := Status(raw); s == StatusWIP {
		return s, true
	}
	return ParseComponentStatus(raw)
}

func (s Status) InWIPFamily() bool {
	_, ok := wipFamily[s]
	return ok
}

func (s Status) InCompletedFamily() bool {
	_, ok := completedFamily[s]
	return ok
}

// ComponentSnapshot is the slice of component state the rollup needs.
type ComponentSnapshot struct {
	Status      Status
	CompletedAt *time.Time
}

// Rollup derives the parent work item's status from its components. Pure and
// idempotent: the result depends only on the multiset of child statuses.
//
//   - all children completed   -> Completed, completedAt = latest child
//   - any child in WIP family  -> WIP
//   - any child on Hold        -> Hold
//   - all children Dropped     -> Dropped
//   - otherwise                -> Pending
//
// completedAt is nil for anything but Completed.
func Rollup(children []ComponentSnapshot) (Status, *time.Time) {
	if len(children) == 0 {
		return StatusPending, nil
	}

	allCompleted := true
	allDropped := true
	anyWIP := false
	anyHold := false
	var latest *time.Time

	for _, c := range children {
		if c.Status.InCompletedFamily() {
			if c.CompletedAt != nil && (latest == nil || c.CompletedAt.After(*latest)) {
				t := *c.CompletedAt
				latest = &t
			}
		} else {
			allCompleted = false
		}
		if c.Status != StatusDropped {
			allDropped = false
		}
		if c.Status.InWIPFamily() {
			anyWIP = true
		}
		if c.Status == StatusHold {
			anyHold = true
		}
	}

	switch {
	case allCompleted:
		return StatusCompleted, latest
	case anyWIP:
		return StatusWIP, nil
	case anyHold:
		return StatusHold, nil
	case allDropped:
		return StatusDropped, nil
	default:
		return StatusPending, nil
	}
}

// StatusFromLogged is the heuristic used after a worklog delete or edit:
// component state is re-derived from how much of its capacity is logged.
func StatusFromLogged(total, logged float64) Status {
	switch {
	case logged <= 0:
		return StatusPending
	case logged < total:
		return StatusUnderDevelopment
	default:
		return StatusCompleted
	}
}
