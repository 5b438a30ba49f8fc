package notify

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/mmynk/stockkeeper/internal/metrics"
	"github.com/mmynk/stockkeeper/internal/models"
	"github.com/mmynk/stockkeeper/internal/storage"
)

// LowStockThreshold is the quantity below which an update raises an alert.
const LowStockThreshold = 3

// UserLookup is the slice of the store the trigger needs.
type UserLookup interface {
	GetUser(ctx context.Context, userID int64) (*models.User, error)
}

// Trigger raises low-stock alerts after item updates.
type Trigger struct {
	users  UserLookup
	sender Sender
	logger *slog.Logger
}

// NewTrigger creates a trigger. A nil logger uses slog.Default().
func NewTrigger(users UserLookup, sender Sender, logger *slog.Logger) *Trigger {
	if logger == nil {
		logger = slog.Default()
	}
	return &Trigger{
		users:  users,
		sender: sender,
		logger: logger,
	}
}

// IsLowStock reports whether quantity is below LowStockThreshold.
func IsLowStock(quantity int) bool {
	return quantity < LowStockThreshold
}

// LowStockMessage renders the alert body for an item.
func LowStockMessage(itemName string, quantity int) string {
	return fmt.Sprintf("Attention, you are running low on %s with a quantity of %d. Buy more!", itemName, quantity)
}

// OnItemUpdated is a storage.ItemUpdateHook. It checks the written quantity
// regardless of which field changed or whether the update matched a row.
func (t *Trigger) OnItemUpdated(ctx context.Context, ev storage.ItemUpdated) {
	if !IsLowStock(ev.Quantity) {
		return
	}

	user, err := t.users.GetUser(ctx, ev.UserID)
	if err != nil {
		t.logger.Warn("Low-stock alert lookup failed", "user_id", ev.UserID, "item_id", ev.ItemID, "error", err)
		metrics.LowStockAlerts.WithLabelValues(metrics.AlertFailed).Inc()
		return
	}
	if !user.CanReceiveSMS() {
		t.logger.Debug("Low-stock alert skipped", "user_id", ev.UserID, "item_id", ev.ItemID)
		metrics.LowStockAlerts.WithLabelValues(metrics.AlertSkipped).Inc()
		return
	}

	body := LowStockMessage(ev.Name, ev.Quantity)
	if err := t.sender.Send(ctx, user.PhoneNumber, body); err != nil {
		t.logger.Warn("Low-stock alert send failed", "user_id", ev.UserID, "item_id", ev.ItemID, "error", err)
		metrics.LowStockAlerts.WithLabelValues(metrics.AlertFailed).Inc()
		return
	}

	t.logger.Info("Low-stock alert sent", "user_id", ev.UserID, "item_id", ev.ItemID, "quantity", ev.Quantity)
	metrics.LowStockAlerts.WithLabelValues(metrics.AlertSent).Inc()
}
