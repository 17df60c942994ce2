package profiles

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

func (r *postgresRepository) Upsert(ctx context.Context, username string, eventTime time.Time) error {
	if _, err := r.db.Exec(ctx, postgresUpsert, username, eventTime.UTC()); err != nil {
		return chatlog.StorageError("upsert profile", err)
	}

	return nil
}

func (r *postgresRepository) IncrementSessionCount(ctx context.Context, username string) error {
	tag, err := r.db.Exec(ctx, postgresIncrementSessionCount, username)
	if err != nil {
		return chatlog.StorageError("increment session count", err)
	}

	if tag.RowsAffected() == 0 {
		return fmt.Errorf("increment session count for %q: profile %w", username, chatlog.ErrNotFound)
	}

	return nil
}

func (r *postgresRepository) Get(ctx context.Context, username string) (*Profile, error) {
	var p Profile

	err := r.db.QueryRow(ctx, postgresGet, username).Scan(
		&p.Username,
		&p.FirstSeen,
		&p.LastSeen,
		&p.SessionCount,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("profile %q: %w", username, chatlog.ErrNotFound)
	}

	if err != nil {
		return nil, chatlog.StorageError("get profile", err)
	}

	p.FirstSeen = p.FirstSeen.UTC()
	p.LastSeen = p.LastSeen.UTC()

	return &p, nil
}
