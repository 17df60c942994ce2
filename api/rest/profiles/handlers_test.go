package profiles

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	chatprofiles "github.com/Zarathale/ZaraSprite/chatlog/profiles"
	"github.com/Zarathale/ZaraSprite/internal/ingest"
	"github.com/Zarathale/ZaraSprite/internal/storage/sqlite"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupRouter(t *testing.T) *gin.Engine {
	t.Helper()

	store, err := sqlite.Open(context.Background(), filepath.Join(t.TempDir(), "chatlog.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	c := ingest.NewCoordinator(store, 20*time.Minute)
	t0 := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	for _, offset := range []time.Duration{0, 5 * time.Minute, time.Hour} {
		_, err := c.Ingest(context.Background(), ingest.Event{Username: "Zara", Text: "hi", Timestamp: t0.Add(offset)})
		require.NoError(t, err)
	}

	gin.SetMode(gin.TestMode)
	router := gin.New()
	RegisterRoutes(router.Group("/api/v1"), store.Profiles(), store.Sessions())
	return router
}

func get(router *gin.Engine, url string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, url, nil))
	return w
}

func TestGetProfileHandler(t *testing.T) {
	router := setupRouter(t)

	w := get(router, "/api/v1/profiles/Zara")
	require.Equal(t, http.StatusOK, w.Code)

	var p chatprofiles.Profile
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &p))
	assert.Equal(t, "Zara", p.Username)
	assert.Equal(t, int64(2), p.SessionCount)

	w = get(router, "/api/v1/profiles/Nobody")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestListSessionsHandler(t *testing.T) {
	router := setupRouter(t)

	w := get(router, "/api/v1/profiles/Zara/sessions")
	require.Equal(t, http.StatusOK, w.Code)

	var resp SessionsResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Sessions, 2)
	assert.True(t, resp.Sessions[0].StartTime.After(resp.Sessions[1].StartTime))

	w = get(router, "/api/v1/profiles/Zara/sessions?limit=1")
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Len(t, resp.Sessions, 1)

	assert.Equal(t, http.StatusBadRequest, get(router, "/api/v1/profiles/Zara/sessions?limit=0").Code)
	assert.Equal(t, http.StatusNotFound, get(router, "/api/v1/profiles/Nobody/sessions").Code)
}
