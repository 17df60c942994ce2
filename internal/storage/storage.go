// Package storage defines the handle the chat session core is given at construction.
package storage

import (
	"context"

	"github.com/Zarathale/ZaraSprite/chatlog/messages"
	"github.com/Zarathale/ZaraSprite/chatlog/profiles"
	"github.com/Zarathale/ZaraSprite/chatlog/sessions"
)

// the three entity repositories, bound either to the store or to one transaction
type Repositories interface {
	Profiles() profiles.Repository
	Sessions() sessions.Repository
	Messages() messages.Repository
}

// a durable chat log backend
type Store interface {
	Repositories

	// runs fn in a single transaction; any error from fn rolls back every write it made
	InTx(ctx context.Context, fn func(tx Repositories) error) error

	Ping(ctx context.Context) error
	Close() error
}
