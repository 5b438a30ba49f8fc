// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"

	"github.com/mmynk/stockkeeper/internal/models"
)

// ItemUpdated describes an item write that was just executed.
// Updated is false when the statement matched no row.
type ItemUpdated struct {
	ItemID   int64
	UserID   int64
	Name     string
	Quantity int
	Updated  bool
}

// ItemUpdateHook is called after every UpdateItem statement, whether or not
// it matched a row. Hooks must not return errors to the writer; they run
// synchronously on the caller's goroutine.
type ItemUpdateHook func(ctx context.Context, ev ItemUpdated)

// Store defines the interface for user and inventory storage operations.
// This abstraction allows swapping storage backends without changing the
// inventory controller or the RPC layer.
//
// Boolean results follow a single convention: false with a nil error means
// nothing matched (or the username was taken); a non-nil error means the
// storage call itself failed.
type Store interface {
	// RegisterUser creates a user unless the username already exists.
	RegisterUser(ctx context.Context, username, password, phoneNumber string) (bool, error)

	// AuthenticateUser returns the user ID for an exact username/password
	// match, or models.NoUserID.
	AuthenticateUser(ctx context.Context, username, password string) (int64, error)

	// GetUser retrieves a user by ID. Returns nil if the user does not exist.
	GetUser(ctx context.Context, userID int64) (*models.User, error)

	// GetUserPhoneNumber returns the stored phone number. The boolean is false
	// when the user is missing or the column is NULL.
	GetUserPhoneNumber(ctx context.Context, userID int64) (string, bool, error)

	// UpdateSmsPreference reports whether a user row was updated.
	UpdateSmsPreference(ctx context.Context, userID int64, enabled bool) (bool, error)

	// GetSmsPreference returns false for unknown users.
	GetSmsPreference(ctx context.Context, userID int64) (bool, error)

	// InsertItem stores a new item for the user.
	InsertItem(ctx context.Context, name string, quantity int, userID int64) (bool, error)

	// GetAllItems returns the user's items in storage order.
	GetAllItems(ctx context.Context, userID int64) ([]models.Item, error)

	// UpdateItem rewrites name and quantity of an item owned by userID and
	// then runs the subscribed ItemUpdateHooks.
	UpdateItem(ctx context.Context, itemID int64, name string, quantity int, userID int64) (bool, error)

	// DeleteItem removes an item owned by userID.
	DeleteItem(ctx context.Context, itemID, userID int64) (bool, error)

	// ClearItemsForUser deletes every item owned by userID.
	ClearItemsForUser(ctx context.Context, userID int64) error

	// ClearUsersTable deletes every user.
	ClearUsersTable(ctx context.Context) error

	// ClearDatabase deletes every user and every item.
	ClearDatabase(ctx context.Context) error

	// Subscribe registers a hook run after each UpdateItem.
	Subscribe(hook ItemUpdateHook)

	// Close releases any resources held by the store.
	Close() error
}
