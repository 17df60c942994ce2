// Package postgres provides a PostgreSQL-backed chat log store.
package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/Zarathale/ZaraSprite/chatlog"
	"github.com/Zarathale/ZaraSprite/chatlog/messages"
	"github.com/Zarathale/ZaraSprite/chatlog/profiles"
	"github.com/Zarathale/ZaraSprite/chatlog/sessions"
	"github.com/Zarathale/ZaraSprite/internal/storage"
	"github.com/Zarathale/ZaraSprite/internal/storage/dbtx"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const createTablesSQL = `
	CREATE TABLE IF NOT EXISTS player_profiles (
		username TEXT PRIMARY KEY,
		first_seen TIMESTAMP WITH TIME ZONE NOT NULL,
		last_seen TIMESTAMP WITH TIME ZONE NOT NULL,
		session_count BIGINT NOT NULL DEFAULT 0
	);

	CREATE TABLE IF NOT EXISTS sessions (
		session_id BIGSERIAL PRIMARY KEY,
		username TEXT NOT NULL REFERENCES player_profiles (username),
		start_time TIMESTAMP WITH TIME ZONE NOT NULL,
		end_time TIMESTAMP WITH TIME ZONE,
		is_archived BOOLEAN NOT NULL DEFAULT FALSE
	);
	CREATE INDEX IF NOT EXISTS idx_sessions_username_active ON sessions (username, is_archived, start_time);

	CREATE TABLE IF NOT EXISTS messages (
		message_id BIGSERIAL PRIMARY KEY,
		username TEXT NOT NULL,
		message TEXT NOT NULL,
		timestamp TIMESTAMP WITH TIME ZONE NOT NULL,
		session_id BIGINT NOT NULL REFERENCES sessions (session_id)
	);
	CREATE INDEX IF NOT EXISTS idx_messages_session_id ON messages (session_id);
`

// persists the chat log in PostgreSQL
type Store struct {
	pool *pgxpool.Pool
}

// connects to connString, verifies the connection and creates missing tables
func Open(ctx context.Context, connString string) (*Store, error) {
	poolConfig, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, fmt.Errorf("failed to parse database config: %w", err)
	}

	poolConfig.MaxConns = 10
	poolConfig.MinConns = 1
	poolConfig.MaxConnLifetime = 30 * time.Minute
	poolConfig.MaxConnIdleTime = 5 * time.Minute
	poolConfig.HealthCheckPeriod = 1 * time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	s := &Store{pool: pool}

	if err := s.Initialize(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	return s, nil
}

// creates the required tables if they don't exist
func (s *Store) Initialize(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, createTablesSQL)
	return err
}

func (s *Store) Profiles() profiles.Repository { return profiles.NewPostgresRepository(s.pool) }
func (s *Store) Sessions() sessions.Repository { return sessions.NewPostgresRepository(s.pool) }
func (s *Store) Messages() messages.Repository { return messages.NewPostgresRepository(s.pool) }

func (s *Store) InTx(ctx context.Context, fn func(tx storage.Repositories) error) error {
	tx, err := s.pool.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.ReadCommitted})
	if err != nil {
		return chatlog.StorageError("begin transaction", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck // no-op after commit

	if err := fn(txRepositories{tx: tx}); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return chatlog.StorageError("commit transaction", err)
	}

	return nil
}

func (s *Store) Ping(ctx context.Context) error {
	if err := s.pool.Ping(ctx); err != nil {
		return chatlog.StorageError("ping", err)
	}

	return nil
}

func (s *Store) Close() error {
	s.pool.Close()
	return nil
}

type txRepositories struct {
	tx dbtx.Pgx
}

func (t txRepositories) Profiles() profiles.Repository { return profiles.NewPostgresRepository(t.tx) }
func (t txRepositories) Sessions() sessions.Repository { return sessions.NewPostgresRepository(t.tx) }
func (t txRepositories) Messages() messages.Repository { return messages.NewPostgresRepository(t.tx) }
