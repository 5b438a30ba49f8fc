// Package sqlite provides a SQLite-backed implementation of the storage.Store interface.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	moderncsqlite "modernc.org/sqlite" // Pure Go SQLite driver (no CGO)
	sqlite3 "modernc.org/sqlite/lib"

	"github.com/mmynk/stockkeeper/internal/auth"
	"github.com/mmynk/stockkeeper/internal/storage"
)

// Ensure SQLiteStore implements storage.Store
var _ storage.Store = (*SQLiteStore)(nil)

// busyTimeoutMS bounds how long a statement waits on SQLite's file lock.
const busyTimeoutMS = 5000

// SQLiteStore implements storage.Store using SQLite.
type SQLiteStore struct {
	db        *sql.DB
	passwords *auth.PasswordHasher

	mu    sync.RWMutex
	hooks []storage.ItemUpdateHook
}

// Option configures a SQLiteStore.
type Option func(*SQLiteStore)

// WithPasswordHasher overrides the bcrypt hasher used for user passwords.
func WithPasswordHasher(h *auth.PasswordHasher) Option {
	return func(s *SQLiteStore) {
		s.passwords = h
	}
}

// New creates a new SQLiteStore with the given database path.
// It creates the parent directories and runs migrations automatically.
func New(dbPath string, opts ...Option) (*SQLiteStore, error) {
	// Create parent directory if it doesn't exist
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	dsn := fmt.Sprintf("%s?_pragma=busy_timeout(%d)", dbPath, busyTimeoutMS)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Run migrations
	if err := runMigrations(context.Background(), db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	s := &SQLiteStore{
		db:        db,
		passwords: auth.NewPasswordHasher(0),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Close closes the database connection pool.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// Subscribe registers a hook that runs after every UpdateItem statement.
func (s *SQLiteStore) Subscribe(hook storage.ItemUpdateHook) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.hooks = append(s.hooks, hook)
}

// withConn checks out a single connection for the duration of fn and
// returns it to the pool on every path.
func (s *SQLiteStore) withConn(ctx context.Context, fn func(conn *sql.Conn) error) error {
	conn, err := s.db.Conn(ctx)
	if err != nil {
		return fmt.Errorf("failed to acquire connection: %w", err)
	}
	defer conn.Close()

	return fn(conn)
}

func (s *SQLiteStore) notifyItemUpdated(ctx context.Context, ev storage.ItemUpdated) {
	s.mu.RLock()
	hooks := make([]storage.ItemUpdateHook, len(s.hooks))
	copy(hooks, s.hooks)
	s.mu.RUnlock()

	for _, hook := range hooks {
		hook(ctx, ev)
	}
}

// isConstraintViolation reports whether err is a SQLite constraint failure
// (UNIQUE, NOT NULL, ...), regardless of the extended result code.
func isConstraintViolation(err error) bool {
	var sqliteErr *moderncsqlite.Error
	if !errors.As(err, &sqliteErr) {
		return false
	}
	return sqliteErr.Code()&0xff == sqlite3.SQLITE_CONSTRAINT
}
