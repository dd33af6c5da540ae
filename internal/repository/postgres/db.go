package postgres

import (
	"context"
	"database/sql"
)

// Querier is an interface satisfied by both *sql.DB and *sql.Tx.
type Querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

// rowScanner is satisfied by *sql.Row and *sql.Rows so single-row and
// multi-row reads share one scan function.
type rowScanner interface {
	Scan(dest ...any) error
}

// Ensure interfaces are satisfied.
var (
	_ Querier    = (*sql.DB)(nil)
	_ Querier    = (*sql.Tx)(nil)
	_ rowScanner = (*sql.Row)(nil)
	_ rowScanner = (*sql.Rows)(nil)
)
