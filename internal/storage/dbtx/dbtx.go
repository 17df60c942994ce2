// Package dbtx defines the query surfaces repositories are written against, so the same
// repository code runs on a connection pool or inside a transaction.
package dbtx

import (
	"context"
	"database/sql"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// satisfied by *sql.DB, *sql.Conn and *sql.Tx
type SQL interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// satisfied by *pgxpool.Pool, *pgx.Conn and pgx.Tx
type Pgx interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// SQLite columns hold timestamps as unix microseconds, the same precision as TIMESTAMPTZ
func ToMicros(t time.Time) int64 {
	return t.UTC().UnixMicro()
}

func FromMicros(us int64) time.Time {
	return time.UnixMicro(us).UTC()
}

// converts a nullable microsecond column
func FromNullMicros(us sql.NullInt64) *time.Time {
	if !us.Valid {
		return nil
	}

	t := FromMicros(us.Int64)
	return &t
}

// rounds t up to a whole microsecond. A stored time s satisfies s >= t exactly when
// s >= CeilMicro(t), so bounds are rounded this way before they reach the database.
func CeilMicro(t time.Time) time.Time {
	truncated := t.Truncate(time.Microsecond)
	if truncated.Equal(t) {
		return t
	}

	return truncated.Add(time.Microsecond)
}
