package commands

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/mmynk/stockkeeper/internal/auth"
)

// ErrNotLoggedIn is returned when a command needs a session and none is stored.
var ErrNotLoggedIn = errors.New(`not logged in, run "stockctl login" first`)

// StoredSession is the last authenticated session, kept between runs.
type StoredSession struct {
	auth.Session
	Server string `json:"server"`
	Token  string `json:"token"`
}

// SessionFile persists a StoredSession as JSON.
type SessionFile struct {
	path string
}

// NewSessionFile returns a session file at path.
func NewSessionFile(path string) *SessionFile {
	return &SessionFile{path: path}
}

// DefaultSessionPath is ~/.stockkeeper/session.json.
func DefaultSessionPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".stockkeeper", "session.json")
	}
	return filepath.Join(home, ".stockkeeper", "session.json")
}

// Load reads the stored session, returning ErrNotLoggedIn if there is none.
func (f *SessionFile) Load() (StoredSession, error) {
	data, err := os.ReadFile(f.path)
	if errors.Is(err, os.ErrNotExist) {
		return StoredSession{}, ErrNotLoggedIn
	}
	if err != nil {
		return StoredSession{}, fmt.Errorf("read session file: %w", err)
	}

	var s StoredSession
	if err := json.Unmarshal(data, &s); err != nil {
		return StoredSession{}, fmt.Errorf("parse session file: %w", err)
	}
	if !s.Valid() || s.Token == "" {
		return StoredSession{}, ErrNotLoggedIn
	}
	return s, nil
}

// Save writes the session with owner-only permissions.
func (f *SessionFile) Save(s StoredSession) error {
	if err := os.MkdirAll(filepath.Dir(f.path), 0o700); err != nil {
		return fmt.Errorf("create session directory: %w", err)
	}

	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	if err := os.WriteFile(f.path, data, 0o600); err != nil {
		return fmt.Errorf("write session file: %w", err)
	}
	return nil
}

// Clear removes the stored session. A missing file is not an error.
func (f *SessionFile) Clear() error {
	if err := os.Remove(f.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove session file: %w", err)
	}
	return nil
}
