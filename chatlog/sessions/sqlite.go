package sessions

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Zarathale/ZaraSprite/chatlog"
	"github.com/Zarathale/ZaraSprite/internal/storage/dbtx"
)

type sqliteRepository struct {
	db dbtx.SQL
}

func NewSQLiteRepository(db dbtx.SQL) Repository {
	return &sqliteRepository{db: db}
}

type scanner interface {
	Scan(dest ...any) error
}

func scanSQLiteSession(row scanner) (*Session, error) {
	var (
		s         Session
		startTime int64
		endTime   sql.NullInt64
	)

	if err := row.Scan(&s.ID, &s.Username, &startTime, &endTime, &s.IsArchived); err != nil {
		return nil, err
	}

	s.StartTime = dbtx.FromMicros(startTime)
	s.EndTime = dbtx.FromNullMicros(endTime)

	return &s, nil
}

func (r *sqliteRepository) FindActive(ctx context.Context, username string, cutoff time.Time) (*Session, error) {
	s, err := scanSQLiteSession(r.db.QueryRowContext(ctx, sqliteFindActive, username, dbtx.ToMicros(dbtx.CeilMicro(cutoff))))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}

	if err != nil {
		return nil, chatlog.StorageError("find active session", err)
	}

	return s, nil
}

func (r *sqliteRepository) Create(ctx context.Context, username string, startTime time.Time) (*Session, error) {
	var id int64

	err := r.db.QueryRowContext(ctx, sqliteCreate, username, dbtx.ToMicros(startTime)).Scan(&id)
	if err != nil {
		return nil, chatlog.StorageError("create session", err)
	}

	return &Session{
		ID:        id,
		Username:  username,
		StartTime: dbtx.FromMicros(dbtx.ToMicros(startTime)),
	}, nil
}

func (r *sqliteRepository) Get(ctx context.Context, sessionID int64) (*Session, error) {
	s, err := scanSQLiteSession(r.db.QueryRowContext(ctx, sqliteGet, sessionID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("session %d: %w", sessionID, chatlog.ErrNotFound)
	}

	if err != nil {
		return nil, chatlog.StorageError("get session", err)
	}

	return s, nil
}

func (r *sqliteRepository) ListByUsername(ctx context.Context, username string, limit int) ([]*Session, error) {
	rows, err := r.db.QueryContext(ctx, sqliteListByUsername, username, limit)
	if err != nil {
		return nil, chatlog.StorageError("list sessions", err)
	}

	defer rows.Close()
	var sessions []*Session

	for rows.Next() {
		s, err := scanSQLiteSession(rows)
		if err != nil {
			return nil, chatlog.StorageError("scan session", err)
		}
		sessions = append(sessions, s)
	}

	if err := rows.Err(); err != nil {
		return nil, chatlog.StorageError("list sessions", err)
	}

	return sessions, nil
}

func (r *sqliteRepository) ArchiveStartedBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := r.db.ExecContext(ctx, sqliteArchiveStartedBefore, dbtx.ToMicros(dbtx.CeilMicro(cutoff)))
	if err != nil {
		return 0, chatlog.StorageError("archive sessions", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return 0, chatlog.StorageError("archive sessions", err)
	}

	return n, nil
}
