package repository

import (
	"context"
	"database/sql"
)

// Tx is the transaction handle the ...Tx methods operate on.  *sql.Tx
// satisfies it.  Services hold this interface rather than *sql.Tx so
// workflow tests can drive the check-then-insert sequence with a stub
// transaction.
type Tx interface {
	Commit() error
	Rollback() error
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}
