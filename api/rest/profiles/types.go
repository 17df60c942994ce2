package profiles

import "github.com/Zarathale/ZaraSprite/chatlog/sessions"

const (
	defaultSessionLimit = 50
	maxSessionLimit     = 500
)

type SessionsResponse struct {
	Username string              `json:"username"`
	Sessions []*sessions.Session `json:"sessions"`
}
