package store

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"
)

//go:embed migrations.sql
var migrationSQL string

//go:embed seed.sql
var seedSQL string

// Migrate creates the schema. Every statement is idempotent.
func Migrate(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, migrationSQL); err != nil {
		return fmt.Errorf("apply migrations: %w", err)
	}
	return nil
}

// Seed loads the fixture rows (two categories, two cashiers, three products,
// two orders). Rows that already exist are left untouched.
func Seed(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, seedSQL); err != nil {
		return fmt.Errorf("apply seed data: %w", err)
	}
	return nil
}
