package sessions

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestArchiver_RunOnce(t *testing.T) {
	repo := &fakeRepo{sessions: []*Session{
		{ID: 1, Username: "Zara", StartTime: t0},
		{ID: 2, Username: "Zara", StartTime: t0.Add(23 * time.Hour)},
		{ID: 3, Username: "Bex", StartTime: t0.Add(-time.Hour), IsArchived: true},
	}}

	a := NewArchiver(repo, 24*time.Hour, "@every 10m")
	a.now = func() time.Time { return t0.Add(24*time.Hour + time.Minute) }

	n, err := a.RunOnce(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
	assert.True(t, repo.sessions[0].IsArchived)
	assert.False(t, repo.sessions[1].IsArchived)
}

func TestArchiver_StartRejectsBadSchedule(t *testing.T) {
	a := NewArchiver(&fakeRepo{}, time.Hour, "not a schedule")
	assert.Error(t, a.Start(context.Background()))
}

func TestArchiver_StartAndStop(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	a := NewArchiver(&fakeRepo{}, time.Hour, "@every 1h")
	require.NoError(t, a.Start(ctx))

	a.Stop()
	// stopping twice is harmless
	a.Stop()
}
