package persistence

import (
	"context"

	gerrors "github.com/go-faster/errors"

	"github.com/pulseworks/worktrack/modules/worktracking/domain/aggregates/workitem"
	"github.com/pulseworks/worktrack/pkg/composables"
)

const noteColumns = `
	id, task_id, live_issue_id, author_id, body, created_at`

type NoteRepository struct{}

func NewNoteRepository() workitem.NoteRepository {
	return &NoteRepository{}
}

func (r *NoteRepository) ListByWorkItem(ctx context.Context, kind workitem.Kind, workItemID int64) ([]workitem.Note, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}
	rows, err := tx.Query(ctx,
		`SELECT`+noteColumns+` FROM work_item_notes WHERE `+parentColumnFor(kind)+` = $1 ORDER BY id`,
		workItemID,
	)
	if err != nil {
		return nil, gerrors.Wrap(err, "listing notes")
	}
	defer rows.Close()
	return scanNotes(rows)
}

func (r *NoteRepository) Create(ctx context.Context, data workitem.Note) (workitem.Note, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return workitem.Note{}, err
	}
	row := tx.QueryRow(ctx, `
		INSERT INTO work_item_notes (`+parentColumnFor(data.Kind())+`, author_id, body)
		VALUES ($1, $2, $3)
		RETURNING`+noteColumns,
		data.WorkItemID(), data.AuthorID(), data.Body(),
	)
	created, err := scanNote(row)
	if err != nil {
		return workitem.Note{}, gerrors.Wrap(err, "creating note")
	}
	return created, nil
}
