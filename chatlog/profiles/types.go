package profiles

import (
	"context"
	"time"
)

// the durable per-username aggregate
type Repository interface {
	// creates the profile with first_seen = last_seen = eventTime, or only overwrites last_seen
	Upsert(ctx context.Context, username string, eventTime time.Time) error

	// bumps session_count by one; must be called once per newly opened session
	IncrementSessionCount(ctx context.Context, username string) error

	Get(ctx context.Context, username string) (*Profile, error)
}

// represents a chat user's aggregate state
type Profile struct {
	Username     string    `json:"username"`
	FirstSeen    time.Time `json:"first_seen"`
	LastSeen     time.Time `json:"last_seen"`
	SessionCount int64     `json:"session_count"`
}
