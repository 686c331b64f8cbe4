package migrate

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/pressly/goose/v3"
)

// DefaultDir is where the SQL migrations live relative to the repo root.
const DefaultDir = "pkg/migrate/migrations"

// Run executes a goose command against the provided connection.
func Run(ctx context.Context, db *sql.DB, dir string, command string, args ...string) error {
	if db == nil {
		return fmt.Errorf("db is required")
	}
	if dir == "" {
		return fmt.Errorf("dir is required")
	}

	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("set goose dialect: %w", err)
	}

	if err := goose.RunContext(ctx, command, db, dir, args...); err != nil {
		return fmt.Errorf("goose %s: %w", command, err)
	}
	return nil
}

// Up migrates the schema to the latest version.
func Up(ctx context.Context, db *sql.DB, dir string) error {
	return Run(ctx, db, dir, "up")
}
