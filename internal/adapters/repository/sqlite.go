package repository

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/jmoiron/sqlx"

	"github.com/comitanigiacomo/kanso-habits/internal/core/domain"

	_ "modernc.org/sqlite"
)

const sqliteDriver = "sqlite"

func init() {
	sqlx.BindDriver(sqliteDriver, sqlx.QUESTION)
}

var schema = []string{
	`CREATE TABLE IF NOT EXISTS habits (
		id         TEXT PRIMARY KEY,
		name       TEXT NOT NULL,
		color      TEXT NOT NULL DEFAULT '',
		created_at INTEGER NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS completions (
		id         TEXT PRIMARY KEY,
		habit_id   TEXT NOT NULL REFERENCES habits(id) ON DELETE CASCADE,
		date       TEXT NOT NULL,
		created_at INTEGER NOT NULL,
		UNIQUE (habit_id, date)
	)`,
	`CREATE INDEX IF NOT EXISTS idx_completions_habit_date ON completions (habit_id, date)`,
}

// OpenSQLite opens (creating if needed) the database file and applies the schema.
func OpenSQLite(ctx context.Context, path string) (*sqlx.DB, error) {
	dsn := fmt.Sprintf("file:%s?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)", filepath.ToSlash(path))

	db, err := sqlx.Open(sqliteDriver, dsn)
	if err != nil {
		return nil, fmt.Errorf("sqlite: open %s: %w", path, err)
	}

	// A single connection serializes writers, which Toggle relies on.
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("sqlite: ping %s: %w", path, err)
	}

	if err := Migrate(ctx, db); err != nil {
		db.Close()
		return nil, err
	}

	return db, nil
}

// Migrate applies the schema and records domain.CurrentVersion in user_version.
func Migrate(ctx context.Context, db *sqlx.DB) error {
	var version int
	if err := db.GetContext(ctx, &version, "PRAGMA user_version"); err != nil {
		return fmt.Errorf("sqlite: read user_version: %w", err)
	}

	if version > domain.CurrentVersion {
		return fmt.Errorf("sqlite: %w: v%d (max v%d)", domain.ErrUnsupportedVersion, version, domain.CurrentVersion)
	}

	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("sqlite: apply schema: %w", err)
		}
	}

	if version < domain.CurrentVersion {
		if _, err := db.ExecContext(ctx, fmt.Sprintf("PRAGMA user_version = %d", domain.CurrentVersion)); err != nil {
			return fmt.Errorf("sqlite: set user_version: %w", err)
		}
	}

	return nil
}
