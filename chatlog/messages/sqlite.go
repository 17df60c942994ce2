package messages

import (
	"context"
	"errors"
	"fmt"

	"github.com/Zarathale/ZaraSprite/chatlog"
	"github.com/Zarathale/ZaraSprite/internal/storage/dbtx"
	msqlite "modernc.org/sqlite"
	sqlite3lib "modernc.org/sqlite/lib"
)

type sqliteRepository struct {
	db dbtx.SQL
}

func NewSQLiteRepository(db dbtx.SQL) Repository {
	return &sqliteRepository{db: db}
}

func (r *sqliteRepository) Insert(ctx context.Context, msg *Message) (int64, error) {
	var id int64

	err := r.db.QueryRowContext(ctx, sqliteInsert,
		msg.Username,
		msg.Text,
		dbtx.ToMicros(msg.Timestamp),
		msg.SessionID,
	).Scan(&id)

	if isSQLiteForeignKeyError(err) {
		return 0, fmt.Errorf("%w: session %d does not exist", chatlog.ErrForeignKeyViolation, msg.SessionID)
	}

	if err != nil {
		return 0, chatlog.StorageError("insert message", err)
	}

	return id, nil
}

func (r *sqliteRepository) ListSince(ctx context.Context, cursor int64, limit int) ([]*Message, error) {
	rows, err := r.db.QueryContext(ctx, sqliteListSince, cursor, limit)
	if err != nil {
		return nil, chatlog.StorageError("list messages", err)
	}

	defer rows.Close()
	var messages []*Message

	for rows.Next() {
		var (
			m  Message
			ts int64
		)

		if err := rows.Scan(&m.ID, &m.Username, &m.Text, &ts, &m.SessionID); err != nil {
			return nil, chatlog.StorageError("scan message", err)
		}

		m.Timestamp = dbtx.FromMicros(ts)
		messages = append(messages, &m)
	}

	if err := rows.Err(); err != nil {
		return nil, chatlog.StorageError("list messages", err)
	}

	return messages, nil
}

func isSQLiteForeignKeyError(err error) bool {
	if err == nil {
		return false
	}

	var sqliteErr *msqlite.Error
	if errors.As(err, &sqliteErr) {
		return sqliteErr.Code() == sqlite3lib.SQLITE_CONSTRAINT_FOREIGNKEY
	}

	return false
}
