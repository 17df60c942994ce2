package profiles

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

func (r *sqliteRepository) Upsert(ctx context.Context, username string, eventTime time.Time) error {
	us := dbtx.ToMicros(eventTime)

	if _, err := r.db.ExecContext(ctx, sqliteUpsert, username, us, us); err != nil {
		return chatlog.StorageError("upsert profile", err)
	}

	return nil
}

func (r *sqliteRepository) IncrementSessionCount(ctx context.Context, username string) error {
	res, err := r.db.ExecContext(ctx, sqliteIncrementSessionCount, username)
	if err != nil {
		return chatlog.StorageError("increment session count", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return chatlog.StorageError("increment session count", err)
	}

	if n == 0 {
		return fmt.Errorf("increment session count for %q: profile %w", username, chatlog.ErrNotFound)
	}

	return nil
}

func (r *sqliteRepository) Get(ctx context.Context, username string) (*Profile, error) {
	var (
		p                   Profile
		firstSeen, lastSeen int64
	)

	err := r.db.QueryRowContext(ctx, sqliteGet, username).Scan(
		&p.Username,
		&firstSeen,
		&lastSeen,
		&p.SessionCount,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("profile %q: %w", username, chatlog.ErrNotFound)
	}

	if err != nil {
		return nil, chatlog.StorageError("get profile", err)
	}

	p.FirstSeen = dbtx.FromMicros(firstSeen)
	p.LastSeen = dbtx.FromMicros(lastSeen)

	return &p, nil
}
