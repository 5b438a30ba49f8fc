package inventory_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/mmynk/stockkeeper/internal/auth"
	"github.com/mmynk/stockkeeper/internal/inventory"
	"github.com/mmynk/stockkeeper/internal/models"
	"github.com/mmynk/stockkeeper/internal/notify"
	"github.com/mmynk/stockkeeper/internal/storage/sqlite"
)

type outbox struct {
	phones []string
	bodies []string
}

func (o *outbox) Send(_ context.Context, phone, body string) error {
	o.phones = append(o.phones, phone)
	o.bodies = append(o.bodies, body)
	return nil
}

func TestInventoryLifecycle(t *testing.T) {
	ctx := context.Background()

	store, err := sqlite.New(filepath.Join(t.TempDir(), "inventory.db"),
		sqlite.WithPasswordHasher(auth.NewPasswordHasher(bcrypt.MinCost)))
	require.NoError(t, err)
	defer store.Close()

	sms := &outbox{}
	store.Subscribe(notify.NewTrigger(store, sms, nil).OnItemUpdated)
	c := inventory.NewController(store)

	ok, err := c.Register(ctx, "alice", "pw", "5551234567")
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = c.Register(ctx, "alice", "other", "5550000000")
	require.NoError(t, err)
	assert.False(t, ok, "duplicate username")

	userID, err := c.Authenticate(ctx, "alice", "pw")
	require.NoError(t, err)
	require.NotEqual(t, models.NoUserID, userID)

	ok, err = c.SetSmsPreference(ctx, userID, true)
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = c.AddItem(ctx, "Widget", 5, userID)
	require.NoError(t, err)
	require.True(t, ok)

	items, err := c.GetAllItems(ctx, userID)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Widget", items[0].Name)
	assert.Equal(t, 5, items[0].Quantity)

	// Quantity 5 -> 2 crosses the threshold.
	ok, err = c.UpdateItem(ctx, items[0].ID, "Widget", 2, userID)
	require.NoError(t, err)
	require.True(t, ok)

	assert.Equal(t, []string{"5551234567"}, sms.phones)
	assert.Equal(t, []string{"Attention, you are running low on Widget with a quantity of 2. Buy more!"}, sms.bodies)

	ok, err = c.DeleteItem(ctx, items[0].ID, userID)
	require.NoError(t, err)
	require.True(t, ok)

	items, err = c.GetAllItems(ctx, userID)
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestNoAlertWhenSmsDisabled(t *testing.T) {
	ctx := context.Background()

	store, err := sqlite.New(filepath.Join(t.TempDir(), "inventory.db"),
		sqlite.WithPasswordHasher(auth.NewPasswordHasher(bcrypt.MinCost)))
	require.NoError(t, err)
	defer store.Close()

	sms := &outbox{}
	store.Subscribe(notify.NewTrigger(store, sms, nil).OnItemUpdated)
	c := inventory.NewController(store)

	_, err = c.Register(ctx, "bob", "pw", "5559876543")
	require.NoError(t, err)
	userID, err := c.Authenticate(ctx, "bob", "pw")
	require.NoError(t, err)

	_, err = c.AddItem(ctx, "Gizmo", 5, userID)
	require.NoError(t, err)
	items, err := c.GetAllItems(ctx, userID)
	require.NoError(t, err)

	_, err = c.UpdateItem(ctx, items[0].ID, "Gizmo", 1, userID)
	require.NoError(t, err)
	assert.Empty(t, sms.bodies)

	enabled, err := c.GetSmsPreference(ctx, userID)
	require.NoError(t, err)
	assert.False(t, enabled)
}
