package sessions

import (
	"context"
	"time"
)

// repository interface for session storage operations
type Repository interface {
	// returns the most recently started non-archived session for username whose start
	// time is at or after cutoff, or nil when there is none
	FindActive(ctx context.Context, username string, cutoff time.Time) (*Session, error)

	// opens a new non-archived session starting at startTime
	Create(ctx context.Context, username string, startTime time.Time) (*Session, error)

	Get(ctx context.Context, sessionID int64) (*Session, error)
	ListByUsername(ctx context.Context, username string, limit int) ([]*Session, error)

	// archives every open session that started before cutoff, closing it at its last
	// message time, and returns how many were archived
	ArchiveStartedBefore(ctx context.Context, cutoff time.Time) (int64, error)
}

// represents a contiguous run of messages from one user
type Session struct {
	ID         int64      `json:"session_id"`
	Username   string     `json:"username"`
	StartTime  time.Time  `json:"start_time"`
	EndTime    *time.Time `json:"end_time,omitempty"`
	IsArchived bool       `json:"is_archived"`
}

// the result of resolving an event to a session
type Resolution struct {
	Session *Session
	Created bool
}
