package project

import "time"

type CreatedEvent struct {
	Result    Project
	Timestamp time.Time
}

type UpdatedEvent struct {
	Result    Project
	Timestamp time.Time
}

type DeletedEvent struct {
	Result    Project
	Timestamp time.Time
}

type StageChangedEvent struct {
	ProjectID int64
	From      Stage
	To        Stage
	Timestamp time.Time
}

func NewCreatedEvent(result Project) *CreatedEvent {
	return &CreatedEvent{Result: result, Timestamp: time.Now()}
}

func NewUpdatedEvent(result Project) *UpdatedEvent {
	return &UpdatedEvent{Result: result, Timestamp: time.Now()}
}

func NewDeletedEvent(result Project) *DeletedEvent {
	return &DeletedEvent{Result: result, Timestamp: time.Now()}
}

func NewStageChangedEvent(projectID int64, from, to Stage) *StageChangedEvent {
	return &StageChangedEvent{ProjectID: projectID, From: from, To: to, Timestamp: time.Now()}
}
