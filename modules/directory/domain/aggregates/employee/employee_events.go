package employee

import "time"

type CreatedEvent struct {
	Result    Employee
	Timestamp time.Time
}

type UpdatedEvent struct {
	Result    Employee
	Timestamp time.Time
}

type DeletedEvent struct {
	Result    Employee
	Timestamp time.Time
}

func NewCreatedEvent(result Employee) *CreatedEvent {
	return &CreatedEvent{Result: result, Timestamp: time.Now()}
}

func NewUpdatedEvent(result Employee) *UpdatedEvent {
	return &UpdatedEvent{Result: result, Timestamp: time.Now()}
}

func NewDeletedEvent(result Employee) *DeletedEvent {
	return &DeletedEvent{Result: result, Timestamp: time.Now()}
}
