package chat

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/Zarathale/ZaraSprite/chatlog"
	"github.com/Zarathale/ZaraSprite/internal/errors"
	"github.com/Zarathale/ZaraSprite/internal/ingest"
	"github.com/gin-gonic/gin"
)

// IngestHandler records a chat message and replies with the session it joined
func IngestHandler(ingester Ingester, now func() time.Time) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req IngestRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			errors.ValidationError(c, err)
			return
		}

		eventTime, err := parseTimestamp(req.Timestamp, now)
		if err != nil {
			errors.Respond(c, err)
			return
		}

		result, err := ingester.Ingest(c.Request.Context(), ingest.Event{
			Username:  req.Username,
			Text:      req.Message,
			Timestamp: eventTime,
		})
		if err != nil {
			errors.Respond(c, err)
			return
		}

		c.JSON(http.StatusOK, IngestResponse{
			Status:    "received",
			SessionID: result.SessionID,
		})
	}
}

func parseTimestamp(raw string, now func() time.Time) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return now().UTC(), nil
	}

	t, err := time.Parse(time.RFC3339Nano, raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q is not RFC 3339", chatlog.ErrInvalidTimestamp, raw)
	}

	return t.UTC(), nil
}
