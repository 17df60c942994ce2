package sessions

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Zarathale/ZaraSprite/chatlog"
	"github.com/Zarathale/ZaraSprite/internal/storage/dbtx"
	"github.com/jackc/pgx/v5"
)

type postgresRepository struct {
	db dbtx.Pgx
}

func NewPostgresRepository(db dbtx.Pgx) Repository {
	return &postgresRepository{db: db}
}

func scanPostgresSession(row pgx.Row) (*Session, error) {
	var s Session

	if err := row.Scan(&s.ID, &s.Username, &s.StartTime, &s.EndTime, &s.IsArchived); err != nil {
		return nil, err
	}

	s.StartTime = s.StartTime.UTC()
	if s.EndTime != nil {
		end := s.EndTime.UTC()
		s.EndTime = &end
	}

	return &s, nil
}

func (r *postgresRepository) FindActive(ctx context.Context, username string, cutoff time.Time) (*Session, error) {
	s, err := scanPostgresSession(r.db.QueryRow(ctx, postgresFindActive, username, dbtx.CeilMicro(cutoff).UTC()))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}

	if err != nil {
		return nil, chatlog.StorageError("find active session", err)
	}

	return s, nil
}

func (r *postgresRepository) Create(ctx context.Context, username string, startTime time.Time) (*Session, error) {
	var id int64

	if err := r.db.QueryRow(ctx, postgresCreate, username, startTime.UTC()).Scan(&id); err != nil {
		return nil, chatlog.StorageError("create session", err)
	}

	return &Session{
		ID:        id,
		Username:  username,
		StartTime: startTime.UTC(),
	}, nil
}

func (r *postgresRepository) Get(ctx context.Context, sessionID int64) (*Session, error) {
	s, err := scanPostgresSession(r.db.QueryRow(ctx, postgresGet, sessionID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("session %d: %w", sessionID, chatlog.ErrNotFound)
	}

	if err != nil {
		return nil, chatlog.StorageError("get session", err)
	}

	return s, nil
}

func (r *postgresRepository) ListByUsername(ctx context.Context, username string, limit int) ([]*Session, error) {
	rows, err := r.db.Query(ctx, postgresListByUsername, username, limit)
	if err != nil {
		return nil, chatlog.StorageError("list sessions", err)
	}

	defer rows.Close()
	var sessions []*Session

	for rows.Next() {
		s, err := scanPostgresSession(rows)
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

func (r *postgresRepository) ArchiveStartedBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	tag, err := r.db.Exec(ctx, postgresArchiveStartedBefore, dbtx.CeilMicro(cutoff).UTC())
	if err != nil {
		return 0, chatlog.StorageError("archive sessions", err)
	}

	return tag.RowsAffected(), nil
}
