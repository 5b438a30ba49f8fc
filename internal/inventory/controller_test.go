package inventory

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmynk/stockkeeper/internal/models"
	"github.com/mmynk/stockkeeper/internal/storage"
)

// countingStore records which calls reached storage.
type countingStore struct {
	storage.Store
	calls []string
}

func (s *countingStore) RegisterUser(_ context.Context, username, password, phone string) (bool, error) {
	s.calls = append(s.calls, "RegisterUser:"+username+"/"+password+"/"+phone)
	return true, nil
}

func (s *countingStore) AuthenticateUser(_ context.Context, username, password string) (int64, error) {
	s.calls = append(s.calls, "AuthenticateUser:"+username+"/"+password)
	return models.NoUserID, nil
}

func (s *countingStore) InsertItem(_ context.Context, name string, _ int, _ int64) (bool, error) {
	s.calls = append(s.calls, "InsertItem:"+name)
	return true, nil
}

func (s *countingStore) UpdateItem(_ context.Context, _ int64, name string, _ int, _ int64) (bool, error) {
	s.calls = append(s.calls, "UpdateItem:"+name)
	return true, nil
}

func TestRegisterValidation(t *testing.T) {
	tests := []struct {
		name                      string
		username, password, phone string
	}{
		{"empty username", "", "pw", "5551234567"},
		{"blank username", "   ", "pw", "5551234567"},
		{"empty password", "alice", "", "5551234567"},
		{"empty phone", "alice", "pw", ""},
		{"short phone", "alice", "pw", "555123"},
		{"long phone", "alice", "pw", "55512345678"},
		{"non-digit phone", "alice", "pw", "555-123-45"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := &countingStore{}
			c := NewController(store)

			ok, err := c.Register(context.Background(), tt.username, tt.password, tt.phone)
			assert.False(t, ok)
			assert.True(t, errors.Is(err, ErrInvalidInput), "got %v", err)
			assert.Empty(t, store.calls, "storage must not be reached")
		})
	}
}

func TestRegisterTrimsInput(t *testing.T) {
	store := &countingStore{}
	c := NewController(store)

	ok, err := c.Register(context.Background(), "  alice ", " pw ", " 5551234567 ")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, []string{"RegisterUser:alice/pw/5551234567"}, store.calls)
}

func TestAuthenticateTrimsInput(t *testing.T) {
	store := &countingStore{}
	c := NewController(store)

	id, err := c.Authenticate(context.Background(), " alice ", " pw")
	require.NoError(t, err)
	assert.Equal(t, models.NoUserID, id)
	assert.Equal(t, []string{"AuthenticateUser:alice/pw"}, store.calls)
}

func TestAddItemValidation(t *testing.T) {
	tests := []struct {
		name     string
		item     string
		quantity int
		wantErr  bool
	}{
		{"valid", "Widget", 5, false},
		{"empty name", "", 5, true},
		{"blank name", "  ", 5, true},
		{"zero quantity", "Widget", 0, true},
		{"negative quantity", "Widget", -1, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := &countingStore{}
			c := NewController(store)

			ok, err := c.AddItem(context.Background(), tt.item, tt.quantity, 1)
			if tt.wantErr {
				assert.False(t, ok)
				assert.ErrorIs(t, err, ErrInvalidInput)
				assert.Empty(t, store.calls)
				return
			}
			require.NoError(t, err)
			assert.True(t, ok)
			assert.Equal(t, []string{"InsertItem:" + tt.item}, store.calls)
		})
	}
}

func TestUpdateItemIsNotValidated(t *testing.T) {
	store := &countingStore{}
	c := NewController(store)

	ok, err := c.UpdateItem(context.Background(), 1, "", -5, 1)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, []string{"UpdateItem:"}, store.calls)
}
