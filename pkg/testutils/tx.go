package testutils

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/pulseworks/worktrack/pkg/composables"
)

// WithNopTx puts a no-op transaction into the context so transactional
// services can be exercised against in-memory repositories.
func WithNopTx(ctx context.Context) context.Context {
	return composables.WithTx(ctx, NopTx{})
}

// NopTx satisfies pgx.Tx without touching a database. Query methods panic:
// unit tests are expected to stub repositories, not SQL.
type NopTx struct{}

func (NopTx) Begin(ctx context.Context) (pgx.Tx, error) { return NopTx{}, nil }
func (NopTx) Commit(ctx context.Context) error          { return nil }
func (NopTx) Rollback(ctx context.Context) error        { return nil }

func (NopTx) CopyFrom(ctx context.Context, tableName pgx.Identifier, columnNames []string, rowSrc pgx.CopyFromSource) (int64, error) {
	panic("testutils: CopyFrom called on NopTx")
}

func (NopTx) SendBatch(ctx context.Context, b *pgx.Batch) pgx.BatchResults {
	panic("testutils: SendBatch called on NopTx")
}

func (NopTx) LargeObjects() pgx.LargeObjects {
	panic("testutils: LargeObjects called on NopTx")
}

func (NopTx) Prepare(ctx context.Context, name, sql string) (*pgconn.StatementDescription, error) {
	panic("testutils: Prepare called on NopTx")
}

func (NopTx) Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error) {
	panic("testutils: Exec called on NopTx")
}

func (NopTx) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	panic("testutils: Query called on NopTx")
}

func (NopTx) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	panic("testutils: QueryRow called on NopTx")
}

func (NopTx) Conn() *pgx.Conn {
	panic("testutils: Conn called on NopTx")
}
