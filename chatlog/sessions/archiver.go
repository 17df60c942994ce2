package sessions

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/Zarathale/ZaraSprite/internal/logger"
	rcron "github.com/robfig/cron/v3"
)

// periodically closes sessions that started long enough ago that no new event can still
// fall inside their window
type Archiver struct {
	repo         Repository
	archiveAfter time.Duration
	schedule     string
	now          func() time.Time

	mu   sync.Mutex
	cron *rcron.Cron
}

// creates a new archiver; schedule uses robfig/cron syntax, including "@every 10m"
func NewArchiver(repo Repository, archiveAfter time.Duration, schedule string) *Archiver {
	return &Archiver{
		repo:         repo,
		archiveAfter: archiveAfter,
		schedule:     schedule,
		now:          time.Now,
	}
}

// registers the archive job and starts the scheduler; it stops when ctx is done
func (a *Archiver) Start(ctx context.Context) error {
	c := rcron.New()

	_, err := c.AddFunc(a.schedule, func() {
		runCtx, cancel := context.WithTimeout(ctx, time.Minute)
		defer cancel()

		if _, err := a.RunOnce(runCtx); err != nil {
			logger.ErrorErr(err, "failed to archive stale sessions")
		}
	})
	if err != nil {
		return fmt.Errorf("invalid archive schedule %q: %w", a.schedule, err)
	}

	a.mu.Lock()
	a.cron = c
	a.mu.Unlock()

	c.Start()

	logger.Info("starting session archiver",
		"schedule", a.schedule,
		"archive_after", a.archiveAfter,
	)

	go func() {
		<-ctx.Done()
		a.Stop()
	}()

	return nil
}

// stops the scheduler and waits for a running job to finish
func (a *Archiver) Stop() {
	a.mu.Lock()
	c := a.cron
	a.cron = nil
	a.mu.Unlock()

	if c == nil {
		return
	}

	<-c.Stop().Done()
	logger.Info("session archiver stopped")
}

// archives every open session that started more than archiveAfter ago
func (a *Archiver) RunOnce(ctx context.Context) (int64, error) {
	cutoff := a.now().Add(-a.archiveAfter)

	n, err := a.repo.ArchiveStartedBefore(ctx, cutoff)
	if err != nil {
		return 0, err
	}

	if n > 0 {
		logger.Info("archived stale sessions", "count", n, "cutoff", cutoff)
	}

	return n, nil
}
