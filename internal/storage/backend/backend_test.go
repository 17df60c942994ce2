package backend

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKindOf(t *testing.T) {
	assert.Equal(t, KindPostgres, KindOf("postgres://u:p@localhost/chat"))
	assert.Equal(t, KindPostgres, KindOf("  PostgreSQL://localhost/chat"))
	assert.Equal(t, KindSQLite, KindOf("data/chatlog.db"))
	assert.Equal(t, KindSQLite, KindOf("/var/lib/zarasprite/chatlog.db"))
}

func TestOpen_SQLite(t *testing.T) {
	store, err := Open(context.Background(), filepath.Join(t.TempDir(), "chatlog.db"))
	require.NoError(t, err)
	defer store.Close() //nolint:errcheck

	assert.NoError(t, store.Ping(context.Background()))
}
