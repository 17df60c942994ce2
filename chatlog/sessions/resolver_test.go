package sessions

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Zarathale/ZaraSprite/chatlog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var t0 = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

// in-memory Repository with the same active-session rule as the SQL backends
type fakeRepo struct {
	sessions  []*Session
	nextID    int64
	createErr error
	cutoffs   []time.Time
}

func (f *fakeRepo) FindActive(_ context.Context, username string, cutoff time.Time) (*Session, error) {
	f.cutoffs = append(f.cutoffs, cutoff)

	var best *Session
	for _, s := range f.sessions {
		if s.Username != username || s.IsArchived || s.StartTime.Before(cutoff) {
			continue
		}
		if best == nil || s.StartTime.After(best.StartTime) ||
			(s.StartTime.Equal(best.StartTime) && s.ID > best.ID) {
			best = s
		}
	}
	return best, nil
}

func (f *fakeRepo) Create(_ context.Context, username string, startTime time.Time) (*Session, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	f.nextID++
	s := &Session{ID: f.nextID, Username: username, StartTime: startTime}
	f.sessions = append(f.sessions, s)
	return s, nil
}

func (f *fakeRepo) Get(_ context.Context, id int64) (*Session, error) {
	for _, s := range f.sessions {
		if s.ID == id {
			return s, nil
		}
	}
	return nil, chatlog.ErrNotFound
}

func (f *fakeRepo) ListByUsername(context.Context, string, int) ([]*Session, error) {
	return f.sessions, nil
}

func (f *fakeRepo) ArchiveStartedBefore(_ context.Context, cutoff time.Time) (int64, error) {
	var n int64
	for _, s := range f.sessions {
		if !s.IsArchived && s.StartTime.Before(cutoff) {
			s.IsArchived = true
			n++
		}
	}
	return n, nil
}

type fakeCounter struct {
	counts map[string]int
	err    error
}

func (f *fakeCounter) IncrementSessionCount(_ context.Context, username string) error {
	if f.err != nil {
		return f.err
	}
	if f.counts == nil {
		f.counts = map[string]int{}
	}
	f.counts[username]++
	return nil
}

func TestResolveOrCreate(t *testing.T) {
	ctx := context.Background()
	repo := &fakeRepo{}
	counter := &fakeCounter{}
	r := NewResolver(repo, counter)
	window := 20 * time.Minute

	first, err := r.ResolveOrCreate(ctx, "Zara", t0, window)
	require.NoError(t, err)
	assert.True(t, first.Created)
	assert.Equal(t, 1, counter.counts["Zara"])

	inside, err := r.ResolveOrCreate(ctx, "Zara", t0.Add(window), window)
	require.NoError(t, err)
	assert.False(t, inside.Created)
	assert.Equal(t, first.Session.ID, inside.Session.ID)
	assert.Equal(t, t0, repo.cutoffs[len(repo.cutoffs)-1])

	outside, err := r.ResolveOrCreate(ctx, "Zara", t0.Add(window+time.Millisecond), window)
	require.NoError(t, err)
	assert.True(t, outside.Created)
	assert.NotEqual(t, first.Session.ID, outside.Session.ID)
	assert.Equal(t, 2, counter.counts["Zara"])
}

func TestResolveOrCreate_LateEventJoinsLaterSession(t *testing.T) {
	ctx := context.Background()
	repo := &fakeRepo{}
	r := NewResolver(repo, &fakeCounter{})

	later, err := r.ResolveOrCreate(ctx, "Zara", t0.Add(10*time.Minute), 20*time.Minute)
	require.NoError(t, err)

	// an event stamped before the session start still matches, only the lower bound applies
	early, err := r.ResolveOrCreate(ctx, "Zara", t0, 20*time.Minute)
	require.NoError(t, err)
	assert.False(t, early.Created)
	assert.Equal(t, later.Session.ID, early.Session.ID)
}

func TestResolveOrCreate_SkipsArchived(t *testing.T) {
	repo := &fakeRepo{sessions: []*Session{{ID: 1, Username: "Zara", StartTime: t0, IsArchived: true}}, nextID: 1}
	r := NewResolver(repo, &fakeCounter{})

	res, err := r.ResolveOrCreate(context.Background(), "Zara", t0.Add(time.Minute), 20*time.Minute)
	require.NoError(t, err)
	assert.True(t, res.Created)
	assert.Equal(t, int64(2), res.Session.ID)
}

func TestResolveOrCreate_Errors(t *testing.T) {
	ctx := context.Background()

	_, err := NewResolver(&fakeRepo{}, &fakeCounter{}).ResolveOrCreate(ctx, "Zara", time.Time{}, time.Minute)
	assert.ErrorIs(t, err, chatlog.ErrInvalidTimestamp)

	_, err = NewResolver(&fakeRepo{}, &fakeCounter{}).ResolveOrCreate(ctx, "Zara", t0, 0)
	assert.Error(t, err)

	boom := chatlog.StorageError("create session", errors.New("locked"))
	_, err = NewResolver(&fakeRepo{createErr: boom}, &fakeCounter{}).ResolveOrCreate(ctx, "Zara", t0, time.Minute)
	assert.ErrorIs(t, err, chatlog.ErrStorage)

	_, err = NewResolver(&fakeRepo{}, &fakeCounter{err: chatlog.ErrNotFound}).ResolveOrCreate(ctx, "Zara", t0, time.Minute)
	assert.ErrorIs(t, err, chatlog.ErrNotFound)
}
