// Package ingest is the single entry point that turns chat events into profile, session
// and message rows.
package ingest

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Zarathale/ZaraSprite/chatlog"
	"github.com/Zarathale/ZaraSprite/chatlog/messages"
	"github.com/Zarathale/ZaraSprite/chatlog/sessions"
	"github.com/Zarathale/ZaraSprite/internal/keylock"
	"github.com/Zarathale/ZaraSprite/internal/logger"
	"github.com/Zarathale/ZaraSprite/internal/storage"
)

const DefaultSessionTimeout = 20 * time.Minute

// event times are kept at the precision both storage backends persist
const TimePrecision = time.Microsecond

// orchestrates profile upsert, session resolution and message recording as one unit of
// work per event. Events for the same username are processed one at a time; different
// usernames proceed in parallel.
type Coordinator struct {
	store  storage.Store
	locks  *keylock.Table
	window time.Duration
}

// creates a coordinator over store; a non-positive window falls back to the default
func NewCoordinator(store storage.Store, window time.Duration) *Coordinator {
	if window <= 0 {
		window = DefaultSessionTimeout
	}

	return &Coordinator{
		store:  store,
		locks:  keylock.New(),
		window: window,
	}
}

func (c *Coordinator) SessionTimeout() time.Duration {
	return c.window
}

// records ev and returns the session it was assigned to. On error nothing is committed,
// so storage failures are safe to retry.
//
// A username or text made only of whitespace counts as empty and is rejected. The
// timestamp is truncated to TimePrecision before the session window is evaluated, so the
// comparison sees the same instant that ends up stored.
func (c *Coordinator) Ingest(ctx context.Context, ev Event) (*Result, error) {
	if strings.TrimSpace(ev.Username) == "" {
		return nil, fmt.Errorf("%w: username is required", chatlog.ErrInvalidPayload)
	}

	if strings.TrimSpace(ev.Text) == "" {
		return nil, fmt.Errorf("%w: message is required", chatlog.ErrInvalidPayload)
	}

	if err := chatlog.ValidateEventTime(ev.Timestamp); err != nil {
		return nil, err
	}

	ev.Timestamp = ev.Timestamp.Truncate(TimePrecision)
	log := logger.FromContext(ctx)

	unlock := c.locks.Lock(ev.Username)
	defer unlock()

	var result Result

	err := c.store.InTx(ctx, func(tx storage.Repositories) error {
		profiles := tx.Profiles()
		sessionRepo := tx.Sessions()

		if err := profiles.Upsert(ctx, ev.Username, ev.Timestamp); err != nil {
			return err
		}

		resolution, err := sessions.NewResolver(sessionRepo, profiles).
			ResolveOrCreate(ctx, ev.Username, ev.Timestamp, c.window)
		if err != nil {
			return err
		}

		messageID, err := messages.NewRecorder(tx.Messages(), sessionRepo).
			Append(ctx, ev.Username, ev.Text, ev.Timestamp, resolution.Session.ID)
		if err != nil {
			return err
		}

		result = Result{
			SessionID:  resolution.Session.ID,
			MessageID:  messageID,
			NewSession: resolution.Created,
		}

		return nil
	})

	if err != nil {
		if errors.Is(err, chatlog.ErrForeignKeyViolation) {
			log.Error("message referenced a missing session, ingestion ordering is broken",
				"username", ev.Username,
				"error", err,
			)
		}
		return nil, err
	}

	if result.NewSession {
		log.Debug("opened chat session", "username", ev.Username, "session_id", result.SessionID)
	}

	return &result, nil
}
