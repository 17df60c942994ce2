package messages

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	chatmessages "github.com/Zarathale/ZaraSprite/chatlog/messages"
	"github.com/Zarathale/ZaraSprite/internal/ingest"
	"github.com/Zarathale/ZaraSprite/internal/storage/sqlite"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setup(t *testing.T, texts ...string) *gin.Engine {
	t.Helper()

	store, err := sqlite.Open(context.Background(), filepath.Join(t.TempDir(), "chatlog.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	c := ingest.NewCoordinator(store, 20*time.Minute)
	t0 := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	for i, text := range texts {
		_, err := c.Ingest(context.Background(), ingest.Event{
			Username: "Zara", Text: text, Timestamp: t0.Add(time.Duration(i) * time.Second),
		})
		require.NoError(t, err)
	}

	gin.SetMode(gin.TestMode)
	router := gin.New()
	RegisterRoutes(router.Group("/api/v1"), store.Messages())
	return router
}

func get(router *gin.Engine, url string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, url, nil))
	return w
}

func TestRecentMessagesHandler_Pages(t *testing.T) {
	router := setup(t, "one", "two", "three")

	w := get(router, "/api/v1/messages?limit=2")
	require.Equal(t, http.StatusOK, w.Code)

	var page chatmessages.Page
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &page))
	require.Len(t, page.Messages, 2)
	assert.Equal(t, "one", page.Messages[0].Text)
	assert.Equal(t, "two", page.Messages[1].Text)

	w = get(router, "/api/v1/messages?since="+jsonInt(page.NextCursor))
	require.Equal(t, http.StatusOK, w.Code)

	var rest chatmessages.Page
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &rest))
	require.Len(t, rest.Messages, 1)
	assert.Equal(t, "three", rest.Messages[0].Text)
}

func TestRecentMessagesHandler_EmptyListIsArray(t *testing.T) {
	w := get(setup(t), "/api/v1/messages")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"messages":[],"next_cursor":0}`, w.Body.String())
}

func TestRecentMessagesHandler_BadQuery(t *testing.T) {
	router := setup(t)

	for _, url := range []string{
		"/api/v1/messages?since=abc",
		"/api/v1/messages?since=-1",
		"/api/v1/messages?limit=ten",
	} {
		w := get(router, url)
		assert.Equal(t, http.StatusBadRequest, w.Code, url)
	}
}

func jsonInt(n int64) string {
	b, _ := json.Marshal(n)
	return string(b)
}
