package messages

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Zarathale/ZaraSprite/chatlog"
	"github.com/Zarathale/ZaraSprite/chatlog/sessions"
)

// looks up a session by id
type SessionLookup interface {
	Get(ctx context.Context, sessionID int64) (*sessions.Session, error)
}

// appends messages bound to an already resolved session
type Recorder struct {
	repo     Repository
	sessions SessionLookup
}

func NewRecorder(repo Repository, lookup SessionLookup) *Recorder {
	return &Recorder{repo: repo, sessions: lookup}
}

// inserts a message row for sessionID and returns the new message id
func (r *Recorder) Append(
	ctx context.Context,
	username, text string,
	eventTime time.Time,
	sessionID int64,
) (int64, error) {
	if _, err := r.sessions.Get(ctx, sessionID); err != nil {
		if errors.Is(err, chatlog.ErrNotFound) {
			return 0, fmt.Errorf("%w: session %d does not exist", chatlog.ErrForeignKeyViolation, sessionID)
		}
		return 0, err
	}

	return r.repo.Insert(ctx, &Message{
		Username:  username,
		Text:      text,
		Timestamp: eventTime,
		SessionID: sessionID,
	})
}

// returns messages recorded after cursor. Polling with the returned NextCursor yields
// every message exactly once.
func RecentMessages(ctx context.Context, repo Repository, cursor int64, limit int) (*Page, error) {
	if cursor < 0 {
		cursor = 0
	}

	switch {
	case limit <= 0:
		limit = DefaultPageSize
	case limit > MaxPageSize:
		limit = MaxPageSize
	}

	msgs, err := repo.ListSince(ctx, cursor, limit)
	if err != nil {
		return nil, err
	}

	next := cursor
	if len(msgs) > 0 {
		next = msgs[len(msgs)-1].ID
	}

	if msgs == nil {
		msgs = []*Message{}
	}

	return &Page{Messages: msgs, NextCursor: next}, nil
}
