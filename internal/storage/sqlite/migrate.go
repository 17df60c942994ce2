package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"sort"
	"strings"
	"time"
)

const migrationTable = "schema_migrations"

const (
	markerUp   = "-- +migrate Up"
	markerDown = "-- +migrate Down"
)

// applies each embedded *.sql file at most once, recording it in schema_migrations
func applyMigrations(ctx context.Context, db *sql.DB, migrationFS fs.FS) error {
	entries, err := fs.ReadDir(migrationFS, ".")
	if err != nil {
		return fmt.Errorf("read migrations dir: %w", err)
	}

	var files []string
	for _, entry := range entries {
		if !entry.IsDir() && strings.HasSuffix(entry.Name(), ".sql") {
			files = append(files, entry.Name())
		}
	}
	sort.Strings(files)

	createSQL := `CREATE TABLE IF NOT EXISTS ` + migrationTable + ` (
		name TEXT PRIMARY KEY,
		applied_at INTEGER NOT NULL
	)`
	if _, err := db.ExecContext(ctx, createSQL); err != nil {
		return fmt.Errorf("ensure migration table: %w", err)
	}

	for _, file := range files {
		applied, err := isApplied(ctx, db, file)
		if err != nil {
			return fmt.Errorf("check migration %s: %w", file, err)
		}

		if applied {
			continue
		}

		content, err := fs.ReadFile(migrationFS, file)
		if err != nil {
			return fmt.Errorf("read migration %s: %w", file, err)
		}

		if err := applyMigration(ctx, db, file, upSection(string(content))); err != nil {
			return err
		}
	}

	return nil
}

func applyMigration(ctx context.Context, db *sql.DB, name, upSQL string) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin migration %s: %w", name, err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	if strings.TrimSpace(upSQL) != "" {
		if _, err := tx.ExecContext(ctx, upSQL); err != nil {
			return fmt.Errorf("exec migration %s: %w", name, err)
		}
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO `+migrationTable+` (name, applied_at) VALUES (?, ?)`,
		name,
		time.Now().UTC().UnixMilli(),
	)
	if err != nil {
		return fmt.Errorf("record migration %s: %w", name, err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit migration %s: %w", name, err)
	}

	return nil
}

// returns the SQL between the Up and Down markers, or the whole file without markers
func upSection(content string) string {
	upIdx := strings.Index(content, markerUp)
	if upIdx == -1 {
		return content
	}

	rest := content[upIdx+len(markerUp):]
	if downIdx := strings.Index(rest, markerDown); downIdx != -1 {
		return rest[:downIdx]
	}

	return rest
}

func isApplied(ctx context.Context, db *sql.DB, name string) (bool, error) {
	var found int

	err := db.QueryRowContext(ctx, `SELECT 1 FROM `+migrationTable+` WHERE name = ?`, name).Scan(&found)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}

	if err != nil {
		return false, err
	}

	return true, nil
}
