// Package backend selects a chat log store from a storage location.
package backend

import (
	"context"
	"strings"

	"github.com/Zarathale/ZaraSprite/internal/storage"
	"github.com/Zarathale/ZaraSprite/internal/storage/postgres"
	"github.com/Zarathale/ZaraSprite/internal/storage/sqlite"
)

type Kind string

const (
	KindSQLite   Kind = "sqlite"
	KindPostgres Kind = "postgres"
)

// reports which backend a storage location refers to: postgres:// and postgresql://
// URLs select PostgreSQL, anything else is a SQLite file path
func KindOf(location string) Kind {
	lower := strings.ToLower(strings.TrimSpace(location))

	if strings.HasPrefix(lower, "postgres://") || strings.HasPrefix(lower, "postgresql://") {
		return KindPostgres
	}

	return KindSQLite
}

// opens the store for location
func Open(ctx context.Context, location string) (storage.Store, error) {
	if KindOf(location) == KindPostgres {
		store, err := postgres.Open(ctx, location)
		if err != nil {
			return nil, err
		}
		return store, nil
	}

	store, err := sqlite.Open(ctx, location)
	if err != nil {
		return nil, err
	}

	return store, nil
}
