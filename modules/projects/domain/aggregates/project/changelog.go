package project

import (
	"time"

	"github.com/google/uuid"
)

// ChangeEntry is one structured ledger row: a single field transition made by
// one actor at one instant. The project's change history is the append-only
// list of these rows, never a serialized blob.
type ChangeEntry struct {
	id        uuid.UUID
	projectID int64
	actorID   int64
	field     string
	oldValue  string
	newValue  string
	createdAt time.Time
}

func NewChangeEntry(projectID, actorID int64, field, oldValue, newValue string) ChangeEntry {
	return ChangeEntry{
		id:        uuid.New(),
		projectID: projectID,
		actorID:   actorID,
		field:     field,
		oldValue:  oldValue,
		newValue:  newValue,
	}
}

func HydrateChangeEntry(id uuid.UUID, projectID, actorID int64, field, oldValue, newValue string, createdAt time.Time) ChangeEntry {
	return ChangeEntry{
		id:        id,
		projectID: projectID,
		actorID:   actorID,
		field:     field,
		oldValue:  oldValue,
		newValue:  newValue,
		createdAt: createdAt,
	}
}

func (c ChangeEntry) ID() uuid.UUID        { return c.id }
func (c ChangeEntry) ProjectID() int64     { return c.projectID }
func (c ChangeEntry) ActorID() int64       { return c.actorID }
func (c ChangeEntry) Field() string        { return c.field }
func (c ChangeEntry) OldValue() string     { return c.oldValue }
func (c ChangeEntry) NewValue() string     { return c.newValue }
func (c ChangeEntry) CreatedAt() time.Time { return c.createdAt }
