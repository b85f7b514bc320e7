package workitem

import (
	"time"

	"github.com/pulseworks/worktrack/modules/worktracking/domain/effort"
)

// Component is an exclusively-owned slice of a work item's scope. totalHours
// is its worklog capacity; the ledger invariant is sum(logs) <= totalHours.
type Component struct {
	id            int64
	workItemID    int64
	kind          Kind
	componentType string
	complexity    string
	count         int
	hoursPerItem  float64
	totalHours    float64
	status        Status
	completedAt   *time.Time
	fileRequired  bool
	fileType      string
	createdAt     time.Time
	updatedAt     time.Time
}

// NewComponent builds a fresh Pending component from a priced spec.
func NewComponent(priced effort.PricedComponent) Component {
	return Component{
		componentType: priced.Type,
		complexity:    priced.Complexity,
		count:         priced.Count,
		hoursPerItem:  priced.HoursPerItem,
		totalHours:    priced.TotalHours,
		status:        StatusPending,
		fileRequired:  priced.FileRequired,
		fileType:      priced.FileType,
	}
}

func HydrateComponent(
	id int64,
	workItemID int64,
	kind Kind,
	componentType string,
	complexity string,
	count int,
	hoursPerItem float64,
	totalHours float64,
	status Status,
	completedAt *time.Time,
	fileRequired bool,
	fileType string,
	createdAt time.Time,
	updatedAt time.Time,
) Component {
	return Component{
		id:            id,
		workItemID:    workItemID,
		kind:          kind,
		componentType: componentType,
		complexity:    complexity,
		count:         count,
		hoursPerItem:  hoursPerItem,
		totalHours:    totalHours,
		status:        status,
		completedAt:   completedAt,
		fileRequired:  fileRequired,
		fileType:      fileType,
		createdAt:     createdAt,
		updatedAt:     updatedAt,
	}
}

func (c Component) ID() int64              { return c.id }
func (c Component) WorkItemID() int64      { return c.workItemID }
func (c Component) Kind() Kind             { return c.kind }
func (c Component) ComponentType() string  { return c.componentType }
func (c Component) Complexity() string     { return c.complexity }
func (c Component) Count() int             { return c.count }
func (c Component) HoursPerItem() float64  { return c.hoursPerItem }
func (c Component) TotalHours() float64    { return c.totalHours }
func (c Component) Status() Status         { return c.status }
func (c Component) CompletedAt() *time.Time { return c.completedAt }
func (c Component) FileRequired() bool     { return c.fileRequired }
func (c Component) FileType() string       { return c.fileType }
func (c Component) CreatedAt() time.Time   { return c.createdAt }
func (c Component) UpdatedAt() time.Time   { return c.updatedAt }

func (c Component) WithStatus(status Status, completedAt *time.Time) Component {
	c.status = status
	c.completedAt = completedAt
	return c
}
