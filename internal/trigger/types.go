package trigger

import (
	"context"

	"github.com/Zarathale/ZaraSprite/chatlog/messages"
)

// reads recorded messages after a cursor
type Source interface {
	Fetch(ctx context.Context, cursor int64, limit int) (*messages.Page, error)
}

// delivers a reply to a player in game
type Replier interface {
	Send(ctx context.Context, player, message string) error
}

// persists the id of the last processed message
type CursorStore interface {
	Load(ctx context.Context) (int64, error)
	Save(ctx context.Context, cursor int64) error
}

type botMessage struct {
	Player  string `json:"player"`
	Message string `json:"message"`
}
