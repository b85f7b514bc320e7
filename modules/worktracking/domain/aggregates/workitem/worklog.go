package workitem

import (
	"strings"
	"time"

	"github.com/pulseworks/worktrack/pkg/serrors"
)

var (
	ErrCapacityExceeded = serrors.NewError(
		"WORKLOG_CAPACITY_EXCEEDED",
		"logged hours would exceed the component's total capacity",
		"Worktracking.Errors.CapacityExceeded",
	)
	ErrComponentLocked = serrors.NewError(
		"COMPONENT_LOCKED",
		"worklogs on a completed component cannot be changed",
		"Worktracking.Errors.ComponentLocked",
	)
	ErrMustUseStatusTransition = serrors.NewError(
		"WORKLOG_EXPLICIT_COMPLETION_REQUIRED",
		"an edit may not complete a component; use a status transition",
		"Worktracking.Errors.MustUseStatusTransition",
	)
	ErrInvalidHours = serrors.NewError(
		"VALIDATION_FAILED",
		"logged hours must be greater than zero",
		"Worktracking.Errors.InvalidHours",
	)
)

// WorkLog is one append-only hours entry against a component.
type WorkLog struct {
	id          int64
	componentID int64
	employeeID  int64
	hours       float64
	loggedOn    time.Time
	notes       string
	createdAt   time.Time
}

func NewWorkLog(componentID, employeeID int64, hours float64, loggedOn time.Time, notes string) WorkLog {
	return WorkLog{
		componentID: componentID,
		employeeID:  employeeID,
		hours:       hours,
		loggedOn:    loggedOn,
		notes:       strings.TrimSpace(notes),
	}
}

func HydrateWorkLog(id, componentID, employeeID int64, hours float64, loggedOn time.Time, notes string, createdAt time.Time) WorkLog {
	return WorkLog{
		id:          id,
		componentID: componentID,
		employeeID:  employeeID,
		hours:       hours,
		loggedOn:    loggedOn,
		notes:       notes,
		createdAt:   createdAt,
	}
}

func (l WorkLog) ID() int64           { return l.id }
func (l WorkLog) ComponentID() int64  { return l.componentID }
func (l WorkLog) EmployeeID() int64   { return l.employeeID }
func (l WorkLog) Hours() float64      { return l.hours }
func (l WorkLog) LoggedOn() time.Time { return l.loggedOn }
func (l WorkLog) Notes() string       { return l.notes }
func (l WorkLog) CreatedAt() time.Time { return l.createdAt }

func (l WorkLog) WithEntry(hours float64, loggedOn time.Time, notes string) WorkLog {
	l.hours = hours
	l.loggedOn = loggedOn
	l.notes = strings.TrimSpace(notes)
	return l
}

// ValidateNewLog enforces the create rules: positive hours and the capacity
// invariant. Landing exactly on total capacity is allowed here; it is the
// edit path that must reject it.
func ValidateNewLog(totalHours, alreadyLogged, hours float64) error {
	if hours <= 0 {
		return ErrInvalidHours
	}
	if alreadyLogged+hours > totalHours {
		return ErrCapacityExceeded
	}
	return nil
}

// ValidateEditedLog enforces the edit rules against the sum of the other
// logs. Completion must stay an explicit status transition, so an edit that
// lands exactly on total capacity is rejected with its own error.
func ValidateEditedLog(totalHours, sumExcludingThis, newHours float64) error {
	if newHours <= 0 {
		return ErrInvalidHours
	}
	if sumExcludingThis+newHours > totalHours {
		return ErrCapacityExceeded
	}
	if sumExcludingThis+newHours == totalHours {
		return ErrMustUseStatusTransition
	}
	return nil
}
