// Package inventory is the entry point clients use to reach storage.
// It rejects obviously invalid input and otherwise forwards calls unchanged.
package inventory

import (
	"context"
	"strings"

	"github.com/mmynk/stockkeeper/internal/models"
	"github.com/mmynk/stockkeeper/internal/storage"
)

// Controller validates requests and delegates them to a storage.Store.
type Controller struct {
	store storage.Store
}

// NewController creates a controller over the given store.
func NewController(store storage.Store) *Controller {
	return &Controller{store: store}
}

// Register creates an account. Username, password and phone number are
// trimmed and all required; the phone number must be exactly 10 digits.
// A taken username yields false with a nil error.
func (c *Controller) Register(ctx context.Context, username, password, phoneNumber string) (bool, error) {
	in := registrationInput{
		Username:    strings.TrimSpace(username),
		Password:    strings.TrimSpace(password),
		PhoneNumber: strings.TrimSpace(phoneNumber),
	}
	if err := check(in); err != nil {
		return false, err
	}
	return c.store.RegisterUser(ctx, in.Username, in.Password, in.PhoneNumber)
}

// Authenticate returns the matching user ID or models.NoUserID.
func (c *Controller) Authenticate(ctx context.Context, username, password string) (int64, error) {
	return c.store.AuthenticateUser(ctx, strings.TrimSpace(username), strings.TrimSpace(password))
}

// AddItem stores a new item. It fails closed, without touching storage,
// when the name is blank or the quantity is not positive.
func (c *Controller) AddItem(ctx context.Context, name string, quantity int, userID int64) (bool, error) {
	if err := check(newItemInput{Name: strings.TrimSpace(name), Quantity: quantity}); err != nil {
		return false, err
	}
	return c.store.InsertItem(ctx, name, quantity, userID)
}

// GetAllItems lists the user's items.
func (c *Controller) GetAllItems(ctx context.Context, userID int64) ([]models.Item, error) {
	return c.store.GetAllItems(ctx, userID)
}

// UpdateItem rewrites an item. Quantity is not re-validated here.
func (c *Controller) UpdateItem(ctx context.Context, itemID int64, name string, quantity int, userID int64) (bool, error) {
	return c.store.UpdateItem(ctx, itemID, name, quantity, userID)
}

// DeleteItem removes one of the user's items.
func (c *Controller) DeleteItem(ctx context.Context, itemID, userID int64) (bool, error) {
	return c.store.DeleteItem(ctx, itemID, userID)
}

// UpdateSmsPreference stores the user's alert preference.
func (c *Controller) UpdateSmsPreference(ctx context.Context, userID int64, enabled bool) (bool, error) {
	return c.store.UpdateSmsPreference(ctx, userID, enabled)
}

// SetSmsPreference is an alias for UpdateSmsPreference.
func (c *Controller) SetSmsPreference(ctx context.Context, userID int64, enabled bool) (bool, error) {
	return c.UpdateSmsPreference(ctx, userID, enabled)
}

// GetSmsPreference reads the user's alert preference.
func (c *Controller) GetSmsPreference(ctx context.Context, userID int64) (bool, error) {
	return c.store.GetSmsPreference(ctx, userID)
}

// GetUser returns the user record, or nil if it does not exist.
func (c *Controller) GetUser(ctx context.Context, userID int64) (*models.User, error) {
	return c.store.GetUser(ctx, userID)
}

// ClearItemsForUser deletes all of one user's items.
func (c *Controller) ClearItemsForUser(ctx context.Context, userID int64) error {
	return c.store.ClearItemsForUser(ctx, userID)
}

// ClearDatabase deletes every user and item.
func (c *Controller) ClearDatabase(ctx context.Context) error {
	return c.store.ClearDatabase(ctx)
}
