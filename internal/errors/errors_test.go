package errors

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Zarathale/ZaraSprite/chatlog"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRespond(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"invalid payload", fmt.Errorf("%w: username is required", chatlog.ErrInvalidPayload), http.StatusBadRequest, CodeInvalidPayload},
		{"invalid timestamp", chatlog.ErrInvalidTimestamp, http.StatusBadRequest, CodeInvalidTimestamp},
		{"not found", fmt.Errorf("profile %q: %w", "Zara", chatlog.ErrNotFound), http.StatusNotFound, CodeNotFound},
		{"foreign key", chatlog.ErrForeignKeyViolation, http.StatusInternalServerError, CodeForeignKeyViolation},
		{"storage", chatlog.StorageError("commit", fmt.Errorf("disk I/O error")), http.StatusInternalServerError, CodeStorageError},
		{"unknown", fmt.Errorf("something else"), http.StatusInternalServerError, CodeServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest(http.MethodPost, "/receive", nil)

			Respond(c, tt.err)

			assert.Equal(t, tt.wantStatus, w.Code)

			var resp ErrorResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.Equal(t, tt.wantCode, resp.Error)
			assert.NotEmpty(t, resp.Message)
		})
	}
}

func TestTooManyRequests(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	TooManyRequests(c, "")

	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Contains(t, w.Body.String(), CodeTooManyRequests)
}
