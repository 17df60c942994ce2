package sessions

import (
	"context"
	"fmt"
	"time"

	"github.com/Zarathale/ZaraSprite/chatlog"
)

// bumps a profile's session counter when a session is opened
type SessionCounter interface {
	IncrementSessionCount(ctx context.Context, username string) error
}

// decides which session an event belongs to. A resolver is bound to repositories from a
// single unit of work and is not safe for concurrent use on the same username; callers
// serialize per username.
type Resolver struct {
	repo    Repository
	counter SessionCounter
}

// returns a resolver over the given session repository and profile counter
func NewResolver(repo Repository, counter SessionCounter) *Resolver {
	return &Resolver{repo: repo, counter: counter}
}

// returns the active session for username at eventTime, or opens a new one.
//
// A session is active when it is not archived and its start time is at or after
// eventTime - window. The window is anchored to the session start, not to its latest
// message, so a session opened window-minus-epsilon ago still absorbs the event.
func (r *Resolver) ResolveOrCreate(
	ctx context.Context,
	username string,
	eventTime time.Time,
	window time.Duration,
) (*Resolution, error) {
	if err := chatlog.ValidateEventTime(eventTime); err != nil {
		return nil, err
	}

	if window <= 0 {
		return nil, fmt.Errorf("session timeout window must be positive, got %s", window)
	}

	active, err := r.repo.FindActive(ctx, username, eventTime.Add(-window))
	if err != nil {
		return nil, err
	}

	if active != nil {
		return &Resolution{Session: active}, nil
	}

	created, err := r.repo.Create(ctx, username, eventTime)
	if err != nil {
		return nil, err
	}

	if err := r.counter.IncrementSessionCount(ctx, username); err != nil {
		return nil, err
	}

	return &Resolution{Session: created, Created: true}, nil
}
