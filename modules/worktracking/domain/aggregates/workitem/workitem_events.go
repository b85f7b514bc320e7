package workitem

import "time"

type CreatedEvent struct {
	Result    WorkItem
	Timestamp time.Time
}

type UpdatedEvent struct {
	Result    WorkItem
	Timestamp time.Time
}

type DeletedEvent struct {
	Result    WorkItem
	Timestamp time.Time
}

// RolledUpEvent fires whenever a component mutation changes (or re-confirms)
// the parent's derived status.
type RolledUpEvent struct {
	Kind       Kind
	WorkItemID int64
	Status     Status
	Timestamp  time.Time
}

func NewCreatedEvent(result WorkItem) *CreatedEvent {
	return &CreatedEvent{Result: result, Timestamp: time.Now()}
}

func NewUpdatedEvent(result WorkItem) *UpdatedEvent {
	return &UpdatedEvent{Result: result, Timestamp: time.Now()}
}

func NewDeletedEvent(result WorkItem) *DeletedEvent {
	return &DeletedEvent{Result: result, Timestamp: time.Now()}
}

func NewRolledUpEvent(kind Kind, workItemID int64, status Status) *RolledUpEvent {
	return &RolledUpEvent{Kind: kind, WorkItemID: workItemID, Status: status, Timestamp: time.Now()}
}
