package workitem

import (
	"strings"
	"time"
)

// Kind discriminates the two work item flavors. They share one shape but are
// persisted in separate tables.
type Kind string

const (
	KindTask      Kind = "task"
	KindLiveIssue Kind = "live_issue"
)

func ParseKind(raw string) (Kind, bool) {
	switch Kind(strings.ToLower(strings.TrimSpace(raw))) {
	case KindTask:
		return KindTask, true
	case KindLiveIssue:
		return KindLiveIssue, true
	}
	return "", false
}

// WorkItem is a task or live issue owned by exactly one assigned employee.
// workloadHours and status are derived from the components; they are persisted
// for querying but never authoritative.
type WorkItem struct {
	id                 int64
	kind               Kind
	assignedEmployeeID int64
	managerID          *int64
	title              string
	description        string
	priority           string
	status             Status
	workloadHours      float64
	dueDate            *time.Time
	completedAt        *time.Time
	components         []Component
	createdAt          time.Time
	updatedAt          time.Time
}

func New(
	kind Kind,
	assignedEmployeeID int64,
	title string,
	description string,
	priority string,
	dueDate *time.Time,
) WorkItem {
	if priority == "" {
		priority = "Medium"
	}
	return WorkItem{
		kind:               kind,
		assignedEmployeeID: assignedEmployeeID,
		title:              strings.TrimSpace(title),
		description:        strings.TrimSpace(description),
		priority:           priority,
		status:             StatusPending,
		dueDate:            dueDate,
	}
}

func Hydrate(
	id int64,
	kind Kind,
	assignedEmployeeID int64,
	managerID *int64,
	title string,
	description string,
	priority string,
	status Status,
	workloadHours float64,
	dueDate *time.Time,
	completedAt *time.Time,
	createdAt time.Time,
	updatedAt time.Time,
) WorkItem {
	return WorkItem{
		id:                 id,
		kind:               kind,
		assignedEmployeeID: assignedEmployeeID,
		managerID:          managerID,
		title:              title,
		description:        description,
		priority:           priority,
		status:             status,
		workloadHours:      workloadHours,
		dueDate:            dueDate,
		completedAt:        completedAt,
		createdAt:          createdAt,
		updatedAt:          updatedAt,
	}
}

func (w WorkItem) ID() int64                 { return w.id }
func (w WorkItem) Kind() Kind                { return w.kind }
func (w WorkItem) AssignedEmployeeID() int64 { return w.assignedEmployeeID }
func (w WorkItem) ManagerID() *int64         { return w.managerID }
func (w WorkItem) Title() string             { return w.title }
func (w WorkItem) Description() string       { return w.description }
func (w WorkItem) Priority() string          { return w.priority }
func (w WorkItem) Status() Status            { return w.status }
func (w WorkItem) WorkloadHours() float64    { return w.workloadHours }
func (w WorkItem) DueDate() *time.Time       { return w.dueDate }
func (w WorkItem) CompletedAt() *time.Time   { return w.completedAt }
func (w WorkItem) Components() []Component   { return w.components }
func (w WorkItem) CreatedAt() time.Time      { return w.createdAt }
func (w WorkItem) UpdatedAt() time.Time      { return w.updatedAt }

func (w WorkItem) WithComponents(components []Component) WorkItem {
	w.components = components
	return w
}

func (w WorkItem) WithWorkloadHours(hours float64) WorkItem {
	w.workloadHours = hours
	return w
}

func (w WorkItem) WithStatus(status Status, completedAt *time.Time) WorkItem {
	w.status = status
	w.completedAt = completedAt
	return w
}

// WithAssignee reassigns the item and refreshes the denormalized manager id
// alongside it.
func (w WorkItem) WithAssignee(employeeID int64, managerID *int64) WorkItem {
	w.assignedEmployeeID = employeeID
	w.managerID = managerID
	return w
}

func (w WorkItem) WithDetails(title, description, priority string, dueDate *time.Time) WorkItem {
	w.title = strings.TrimSpace(title)
	w.description = strings.TrimSpace(description)
	if priority != "" {
		w.priority = priority
	}
	w.dueDate = dueDate
	return w
}

// Snapshots projects the loaded components into the rollup input.
func (w WorkItem) Snapshots() []ComponentSnapshot {
	out := make([]ComponentSnapshot, 0, len(w.components))
	for _, c := range w.components {
		out = append(out, ComponentSnapshot{Status: c.Status(), CompletedAt: c.CompletedAt()})
	}
	return out
}
