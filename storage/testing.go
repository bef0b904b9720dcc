package storage

import (
	"database/sql"
	"embed"
	"fmt"

	"github.com/clarawendel/artisan-market/storage/db"
	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite"
)

//go:embed migrations/*.sql
var testMigrations embed.FS

// NewTestDB creates an in-memory SQLite database for testing
func NewTestDB() (*sql.DB, *db.Queries, func(), error) {
	database, err := sql.Open("sqlite", ":memory:?_pragma=foreign_keys(1)")
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to open test database: %w", err)
	}

	goose.SetBaseFS(testMigrations)
	if err := goose.SetDialect("sqlite3"); err != nil {
		database.Close()
		return nil, nil, nil, fmt.Errorf("failed to set goose dialect: %w", err)
	}

	if err := goose.Up(database, "migrations"); err != nil {
		database.Close()
		return nil, nil, nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	queries := db.New(database)

	cleanup := func() {
		database.Close()
	}

	return database, queries, cleanup, nil
}

// WithTransaction executes a function within a transaction and rolls it back
// Useful for tests that need to ensure no side effects
func WithTransaction(database *sql.DB, fn func(*sql.Tx) error) error {
	tx, err := database.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	defer tx.Rollback() // Always rollback in tests

	if err := fn(tx); err != nil {
		return err
	}

	return nil
}
