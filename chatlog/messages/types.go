package messages

import (
	"context"
	"time"
)

const (
	DefaultPageSize = 100
	MaxPageSize     = 500
)

// repository interface for message storage operations
type Repository interface {
	// inserts a new message row and returns its id; never updates existing rows
	Insert(ctx context.Context, msg *Message) (int64, error)

	// returns up to limit messages with id > cursor in ascending id order
	ListSince(ctx context.Context, cursor int64, limit int) ([]*Message, error)
}

// represents one ingested chat message
type Message struct {
	ID        int64     `json:"message_id"`
	Username  string    `json:"username"`
	Text      string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
	SessionID int64     `json:"session_id"`
}

// a batch of messages read after a cursor
type Page struct {
	Messages   []*Message `json:"messages"`
	NextCursor int64      `json:"next_cursor"`
}
