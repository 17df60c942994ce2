package chat

import (
	"context"

	"github.com/Zarathale/ZaraSprite/internal/ingest"
)

// records one chat event
type Ingester interface {
	Ingest(ctx context.Context, ev ingest.Event) (*ingest.Result, error)
}

// the payload the game server plugin posts for each private message
type IngestRequest struct {
	Username string `json:"username"`
	Message  string `json:"message"`

	// RFC 3339; the server's receive time is used when empty
	Timestamp string `json:"timestamp,omitempty"`
}

type IngestResponse struct {
	Status    string `json:"status"`
	SessionID int64  `json:"session_id"`
}
