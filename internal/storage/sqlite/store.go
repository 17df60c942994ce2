// Package sqlite provides the default SQLite-backed chat log store.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/Zarathale/ZaraSprite/chatlog"
	"github.com/Zarathale/ZaraSprite/chatlog/messages"
	"github.com/Zarathale/ZaraSprite/chatlog/profiles"
	"github.com/Zarathale/ZaraSprite/chatlog/sessions"
	"github.com/Zarathale/ZaraSprite/internal/storage"
	"github.com/Zarathale/ZaraSprite/internal/storage/dbtx"
	"github.com/Zarathale/ZaraSprite/internal/storage/sqlite/migrations"
	_ "modernc.org/sqlite"
)

const dsnPragmas = "?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)&_pragma=synchronous(NORMAL)"

// persists the chat log in a single SQLite file
type Store struct {
	db *sql.DB
}

// opens (creating if needed) the database at path and applies migrations
func Open(ctx context.Context, path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}

	cleanPath := filepath.Clean(path)
	if dir := filepath.Dir(cleanPath); dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return nil, fmt.Errorf("create storage dir: %w", err)
		}
	}

	db, err := sql.Open("sqlite", cleanPath+dsnPragmas)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	// sqlite has a single writer; one connection keeps transactions from failing with
	// SQLITE_BUSY when a read lock has to be upgraded
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}

	if err := applyMigrations(ctx, db, migrations.FS); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &Store{db: db}, nil
}

func (s *Store) Profiles() profiles.Repository { return profiles.NewSQLiteRepository(s.db) }
func (s *Store) Sessions() sessions.Repository { return sessions.NewSQLiteRepository(s.db) }
func (s *Store) Messages() messages.Repository { return messages.NewSQLiteRepository(s.db) }

func (s *Store) InTx(ctx context.Context, fn func(tx storage.Repositories) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return chatlog.StorageError("begin transaction", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	if err := fn(txRepositories{tx: tx}); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return chatlog.StorageError("commit transaction", err)
	}

	return nil
}

func (s *Store) Ping(ctx context.Context) error {
	if err := s.db.PingContext(ctx); err != nil {
		return chatlog.StorageError("ping", err)
	}

	return nil
}

func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}

	return s.db.Close()
}

type txRepositories struct {
	tx dbtx.SQL
}

func (t txRepositories) Profiles() profiles.Repository { return profiles.NewSQLiteRepository(t.tx) }
func (t txRepositories) Sessions() sessions.Repository { return sessions.NewSQLiteRepository(t.tx) }
func (t txRepositories) Messages() messages.Repository { return messages.NewSQLiteRepository(t.tx) }
