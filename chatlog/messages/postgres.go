package messages

import (
	"context"
	"errors"
	"fmt"

	"github.com/Zarathale/ZaraSprite/chatlog"
	"github.com/Zarathale/ZaraSprite/internal/storage/dbtx"
	"github.com/jackc/pgx/v5/pgconn"
)

// postgres SQLSTATE for foreign_key_violation
const pgForeignKeyViolation = "23503"

type postgresRepository struct {
	db dbtx.Pgx
}

func NewPostgresRepository(db dbtx.Pgx) Repository {
	return &postgresRepository{db: db}
}

func (r *postgresRepository) Insert(ctx context.Context, msg *Message) (int64, error) {
	if _, err := r.db.Exec(ctx, postgresInsertLock, postgresInsertLockKey); err != nil {
		return 0, chatlog.StorageError("lock message sequence", err)
	}

	var id int64

	err := r.db.QueryRow(ctx, postgresInsert,
		msg.Username,
		msg.Text,
		msg.Timestamp.UTC(),
		msg.SessionID,
	).Scan(&id)

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgForeignKeyViolation {
		return 0, fmt.Errorf("%w: session %d does not exist", chatlog.ErrForeignKeyViolation, msg.SessionID)
	}

	if err != nil {
		return 0, chatlog.StorageError("insert message", err)
	}

	return id, nil
}

func (r *postgresRepository) ListSince(ctx context.Context, cursor int64, limit int) ([]*Message, error) {
	rows, err := r.db.Query(ctx, postgresListSince, cursor, limit)
	if err != nil {
		return nil, chatlog.StorageError("list messages", err)
	}

	defer rows.Close()
	var messages []*Message

	for rows.Next() {
		var m Message

		if err := rows.Scan(&m.ID, &m.Username, &m.Text, &m.Timestamp, &m.SessionID); err != nil {
			return nil, chatlog.StorageError("scan message", err)
		}

		m.Timestamp = m.Timestamp.UTC()
		messages = append(messages, &m)
	}

	if err := rows.Err(); err != nil {
		return nil, chatlog.StorageError("list messages", err)
	}

	return messages, nil
}
