package trigger

import (
	"context"
	"fmt"
	"time"

	"github.com/Zarathale/ZaraSprite/internal/llm"
	"github.com/Zarathale/ZaraSprite/internal/logger"
	"github.com/cenkalti/backoff/v5"
)

const (
	defaultBatchSize = 100
	maxAttempts      = 3
)

// polls the chat log and answers trigger messages
type Worker struct {
	source    Source
	responder llm.Responder
	replier   Replier
	cursors   CursorStore
	interval  time.Duration
	batchSize int

	// overridable in tests to avoid real sleeps between retries
	newBackOff func() backoff.BackOff
}

func NewWorker(source Source, responder llm.Responder, replier Replier, cursors CursorStore, interval time.Duration, batchSize int) *Worker {
	if batchSize <= 0 {
		batchSize = defaultBatchSize
	}

	return &Worker{
		source:    source,
		responder: responder,
		replier:   replier,
		cursors:   cursors,
		interval:  interval,
		batchSize: batchSize,
		newBackOff: func() backoff.BackOff {
			return backoff.NewExponentialBackOff()
		},
	}
}

// polls until ctx is cancelled
func (w *Worker) Run(ctx context.Context) error {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		if _, err := w.RunOnce(ctx); err != nil {
			logger.ErrorErr(err, "trigger poll failed")
		}

		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
	}
}

// moves the cursor to the newest message without answering anything, so a consumer
// that starts without a persisted cursor does not reply to old history
func (w *Worker) SkipBacklog(ctx context.Context) (int64, error) {
	cursor, err := w.cursors.Load(ctx)
	if err != nil {
		return 0, err
	}

	start := cursor
	for {
		page, err := w.source.Fetch(ctx, cursor, w.batchSize)
		if err != nil {
			return cursor, err
		}
		if len(page.Messages) == 0 || page.NextCursor <= cursor {
			break
		}
		cursor = page.NextCursor
	}

	if cursor > start {
		if err := w.cursors.Save(ctx, cursor); err != nil {
			return cursor, err
		}
	}

	return cursor, nil
}

// processes one batch and advances the cursor past it, returning the number of replies sent.
// a message whose reply cannot be produced or delivered is logged and skipped. The cursor
// is saved after every trigger message, so a cancelled batch resumes after the last one
// handled.
func (w *Worker) RunOnce(ctx context.Context) (int, error) {
	cursor, err := w.cursors.Load(ctx)
	if err != nil {
		return 0, err
	}

	page, err := w.source.Fetch(ctx, cursor, w.batchSize)
	if err != nil {
		return 0, err
	}

	replied := 0

	for _, msg := range page.Messages {
		prompt, ok := Match(msg.Text)
		if !ok {
			continue
		}

		log := logger.With("message_id", msg.ID, "username", msg.Username, "session_id", msg.SessionID)

		if err := w.answer(ctx, msg.Username, prompt); err != nil {
			if ctx.Err() != nil {
				return replied, ctx.Err()
			}
			log.Error("failed to answer trigger message", "error", err)
		} else {
			log.Info("answered trigger message")
			replied++
		}

		if err := w.cursors.Save(ctx, msg.ID); err != nil {
			return replied, err
		}
	}

	if page.NextCursor > cursor {
		if err := w.cursors.Save(ctx, page.NextCursor); err != nil {
			return replied, err
		}
	}

	return replied, nil
}

func (w *Worker) answer(ctx context.Context, player, prompt string) error {
	reply, err := backoff.Retry(ctx, func() (string, error) {
		return w.responder.Respond(ctx, prompt)
	}, backoff.WithBackOff(w.newBackOff()), backoff.WithMaxTries(maxAttempts))
	if err != nil {
		return fmt.Errorf("generate reply: %w", err)
	}

	_, err = backoff.Retry(ctx, func() (struct{}, error) {
		return struct{}{}, w.replier.Send(ctx, player, reply)
	}, backoff.WithBackOff(w.newBackOff()), backoff.WithMaxTries(maxAttempts))
	if err != nil {
		return fmt.Errorf("deliver reply: %w", err)
	}

	return nil
}
