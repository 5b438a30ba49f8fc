package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/mmynk/stockkeeper/internal/models"
)

// RegisterUser inserts a new user unless the username is already taken.
// The existence check and the insert are separate statements; a concurrent
// duplicate that slips between them is caught by the UNIQUE constraint and
// reported the same way as the pre-check.
func (s *SQLiteStore) RegisterUser(ctx context.Context, username, password, phoneNumber string) (bool, error) {
	created := false
	err := s.withConn(ctx, func(conn *sql.Conn) error {
		// Check if the username already exists
		var existing int64
		err := conn.QueryRowContext(ctx,
			"SELECT user_id FROM users WHERE username = ?",
			username,
		).Scan(&existing)
		if err == nil {
			return nil
		}
		if !errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("failed to check username: %w", err)
		}

		// Hash only once the name is known to be free.
		hash, err := s.passwords.Hash(password)
		if err != nil {
			return err
		}

		_, err = conn.ExecContext(ctx,
			"INSERT INTO users (username, password, sms_enabled, phone_number) VALUES (?, ?, 0, ?)",
			username, hash, phoneNumber,
		)
		if isConstraintViolation(err) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to create user: %w", err)
		}

		created = true
		return nil
	})
	return created, err
}

// AuthenticateUser returns the ID of the user whose username and password
// both match, or models.NoUserID.
func (s *SQLiteStore) AuthenticateUser(ctx context.Context, username, password string) (int64, error) {
	userID := models.NoUserID
	var hash string

	err := s.withConn(ctx, func(conn *sql.Conn) error {
		err := conn.QueryRowContext(ctx,
			"SELECT user_id, password FROM users WHERE username = ?",
			username,
		).Scan(&userID, &hash)
		if errors.Is(err, sql.ErrNoRows) {
			userID = models.NoUserID
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to authenticate user: %w", err)
		}
		return nil
	})
	if err != nil {
		return models.NoUserID, err
	}

	if userID == models.NoUserID || !s.passwords.Matches(hash, password) {
		return models.NoUserID, nil
	}
	return userID, nil
}

// GetUser retrieves a user by their ID.
func (s *SQLiteStore) GetUser(ctx context.Context, userID int64) (*models.User, error) {
	var user *models.User

	err := s.withConn(ctx, func(conn *sql.Conn) error {
		var (
			u       models.User
			enabled sql.NullInt64
			phone   sql.NullString
		)
		err := conn.QueryRowContext(ctx,
			"SELECT user_id, username, password, sms_enabled, phone_number FROM users WHERE user_id = ?",
			userID,
		).Scan(&u.ID, &u.Username, &u.PasswordHash, &enabled, &phone)
		if errors.Is(err, sql.ErrNoRows) {
			return nil // User not found
		}
		if err != nil {
			return fmt.Errorf("failed to get user by ID: %w", err)
		}

		u.SMSEnabled = enabled.Int64 == 1
		u.PhoneNumber = phone.String
		user = &u
		return nil
	})
	return user, err
}

// GetUserPhoneNumber returns the user's phone number. The boolean is false
// when the user is missing or the column is NULL.
func (s *SQLiteStore) GetUserPhoneNumber(ctx context.Context, userID int64) (string, bool, error) {
	var phone sql.NullString
	found := false

	err := s.withConn(ctx, func(conn *sql.Conn) error {
		err := conn.QueryRowContext(ctx,
			"SELECT phone_number FROM users WHERE user_id = ?",
			userID,
		).Scan(&phone)
		if errors.Is(err, sql.ErrNoRows) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to get phone number: %w", err)
		}
		found = phone.Valid
		return nil
	})
	return phone.String, found, err
}

// UpdateSmsPreference stores the user's low-stock alert preference.
func (s *SQLiteStore) UpdateSmsPreference(ctx context.Context, userID int64, enabled bool) (bool, error) {
	value := 0
	if enabled {
		value = 1
	}

	var updated bool
	err := s.withConn(ctx, func(conn *sql.Conn) error {
		result, err := conn.ExecContext(ctx,
			"UPDATE users SET sms_enabled = ? WHERE user_id = ?",
			value, userID,
		)
		if err != nil {
			return fmt.Errorf("failed to update sms preference: %w", err)
		}
		updated, err = affected(result)
		return err
	})
	return updated, err
}

// GetSmsPreference returns the user's low-stock alert preference, false if
// the user does not exist.
func (s *SQLiteStore) GetSmsPreference(ctx context.Context, userID int64) (bool, error) {
	var enabled sql.NullInt64

	err := s.withConn(ctx, func(conn *sql.Conn) error {
		err := conn.QueryRowContext(ctx,
			"SELECT sms_enabled FROM users WHERE user_id = ?",
			userID,
		).Scan(&enabled)
		if errors.Is(err, sql.ErrNoRows) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to get sms preference: %w", err)
		}
		return nil
	})
	return enabled.Int64 == 1, err
}

// ClearUsersTable deletes every user. Items are left in place.
func (s *SQLiteStore) ClearUsersTable(ctx context.Context) error {
	return s.withConn(ctx, func(conn *sql.Conn) error {
		if _, err := conn.ExecContext(ctx, "DELETE FROM users"); err != nil {
			return fmt.Errorf("failed to clear users: %w", err)
		}
		return nil
	})
}

// ClearDatabase deletes every user and every item.
func (s *SQLiteStore) ClearDatabase(ctx context.Context) error {
	return s.withConn(ctx, func(conn *sql.Conn) error {
		tx, err := conn.BeginTx(ctx, nil)
		if err != nil {
			return fmt.Errorf("failed to begin transaction: %w", err)
		}
		defer tx.Rollback()

		if _, err := tx.ExecContext(ctx, "DELETE FROM users"); err != nil {
			return fmt.Errorf("failed to clear users: %w", err)
		}
		if _, err := tx.ExecContext(ctx, "DELETE FROM items"); err != nil {
			return fmt.Errorf("failed to clear items: %w", err)
		}

		if err := tx.Commit(); err != nil {
			return fmt.Errorf("failed to commit transaction: %w", err)
		}
		return nil
	})
}

// affected reports whether a statement touched at least one row.
func affected(result sql.Result) (bool, error) {
	n, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read rows affected: %w", err)
	}
	return n > 0, nil
}
