package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
)

// SchemaVersion is the on-disk schema version stamped into PRAGMA user_version.
// Bumping it drops and recreates every table on the next open.
const SchemaVersion = 3

// schema contains the SQL statements to set up the database schema.
// The items.user_id foreign key is declared but not enforced: the connection
// never turns on PRAGMA foreign_keys.
const schema = `
CREATE TABLE IF NOT EXISTS users (
    user_id INTEGER PRIMARY KEY AUTOINCREMENT,
    username TEXT UNIQUE,
    password TEXT,
    sms_enabled INTEGER DEFAULT 0,
    phone_number TEXT
);

CREATE TABLE IF NOT EXISTS items (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    name TEXT,
    quantity INTEGER,
    user_id INTEGER,
    FOREIGN KEY (user_id) REFERENCES users(user_id)
);
`

const dropSchema = `
DROP TABLE IF EXISTS users;
DROP TABLE IF EXISTS items;
`

// execer is satisfied by *sql.DB, *sql.Conn and *sql.Tx.
type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// EnsureSchema creates the users and items tables if they do not exist.
func EnsureSchema(ctx context.Context, db execer) error {
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	return nil
}

// Upgrade moves the database from oldVersion to newVersion.
// Schema upgrades are destructive: both tables are dropped and recreated,
// so every user and item is lost.
func Upgrade(ctx context.Context, db *sql.DB, oldVersion, newVersion int) error {
	slog.Warn("Destructive schema upgrade, dropping all data",
		"old_version", oldVersion,
		"new_version", newVersion,
	)

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, dropSchema); err != nil {
		return fmt.Errorf("failed to drop schema: %w", err)
	}
	if err := EnsureSchema(ctx, tx); err != nil {
		return err
	}
	if err := setUserVersion(ctx, tx, newVersion); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// Migrate brings the database to the target version.
// A fresh database (version 0) gets the schema created and stamped; any other
// mismatch goes through Upgrade.
func Migrate(ctx context.Context, db *sql.DB, target int) error {
	current, err := userVersion(ctx, db)
	if err != nil {
		return err
	}

	switch current {
	case 0:
		if err := EnsureSchema(ctx, db); err != nil {
			return err
		}
		return setUserVersion(ctx, db, target)
	case target:
		return EnsureSchema(ctx, db)
	default:
		return Upgrade(ctx, db, current, target)
	}
}

// runMigrations executes the schema setup for the current SchemaVersion.
func runMigrations(ctx context.Context, db *sql.DB) error {
	return Migrate(ctx, db, SchemaVersion)
}

func userVersion(ctx context.Context, db execer) (int, error) {
	var version int
	if err := db.QueryRowContext(ctx, "PRAGMA user_version").Scan(&version); err != nil {
		return 0, fmt.Errorf("failed to read schema version: %w", err)
	}
	return version, nil
}

func setUserVersion(ctx context.Context, db execer, version int) error {
	// PRAGMA arguments cannot be bound as parameters.
	if _, err := db.ExecContext(ctx, fmt.Sprintf("PRAGMA user_version = %d", version)); err != nil {
		return fmt.Errorf("failed to set schema version: %w", err)
	}
	return nil
}
