package workitem

import (
	"strings"
	"time"
)

// Note is a free-form remark attached to a work item, kept forever and
// removed only when the item itself goes.
type Note struct {
	id         int64
	kind       Kind
	workItemID int64
	authorID   int64
	body       string
	createdAt  time.Time
}

func NewNote(kind Kind, workItemID, authorID int64, body string) Note {
	return Note{
		kind:       kind,
		workItemID: workItemID,
		authorID:   authorID,
		body:       strings.TrimSpace(body),
	}
}

func HydrateNote(id int64, kind Kind, workItemID, authorID int64, body string, createdAt time.Time) Note {
	return Note{
		id:         id,
		kind:       kind,
		workItemID: workItemID,
		authorID:   authorID,
		body:       body,
		createdAt:  createdAt,
	}
}

func (n Note) ID() int64            { return n.id }
func (n Note) Kind() Kind           { return n.kind }
func (n Note) WorkItemID() int64    { return n.workItemID }
func (n Note) AuthorID() int64      { return n.authorID }
func (n Note) Body() string         { return n.body }
func (n Note) CreatedAt() time.Time { return n.createdAt }
