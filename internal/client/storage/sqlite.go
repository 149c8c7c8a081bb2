// Package storage bootstraps the local SQLite database of the client and
// applies the embedded goose migrations.
package storage

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/stockkeeper/internal/client/migrations"
	"github.com/pressly/goose/v3"

	_ "modernc.org/sqlite"
)

const driverName = "sqlite"

// Open opens (creating when needed) the database at dsn and migrates it to the
// latest version. ":memory:" is accepted and pinned to a single connection so
// every caller sees the same in-memory database.
func Open(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open(driverName, dsn)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", dsn, err)
	}
	if dsn == ":memory:" {
		db.SetMaxOpenConns(1)
	}

	if err := RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

// RunMigrations applies all pending migrations. goose keeps its settings in
// package state, so concurrent calls are not supported.
func RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)
	goose.SetLogger(goose.NopLogger())

	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("goose dialect: %w", err)
	}
	if err := goose.UpContext(ctx, db, "."); err != nil {
		return fmt.Errorf("migrations up: %w", err)
	}
	return nil
}
