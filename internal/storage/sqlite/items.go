package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/mmynk/stockkeeper/internal/models"
	"github.com/mmynk/stockkeeper/internal/storage"
)

// InsertItem persists a new item for the given user.
func (s *SQLiteStore) InsertItem(ctx context.Context, name string, quantity int, userID int64) (bool, error) {
	var inserted bool
	err := s.withConn(ctx, func(conn *sql.Conn) error {
		result, err := conn.ExecContext(ctx,
			"INSERT INTO items (name, quantity, user_id) VALUES (?, ?, ?)",
			name, quantity, userID,
		)
		if err != nil {
			return fmt.Errorf("failed to insert item: %w", err)
		}
		inserted, err = affected(result)
		return err
	})
	return inserted, err
}

// GetAllItems retrieves every item owned by the user, in row order.
func (s *SQLiteStore) GetAllItems(ctx context.Context, userID int64) ([]models.Item, error) {
	items := []models.Item{}

	err := s.withConn(ctx, func(conn *sql.Conn) error {
		rows, err := conn.QueryContext(ctx,
			"SELECT id, name, quantity FROM items WHERE user_id = ?",
			userID,
		)
		if err != nil {
			return fmt.Errorf("failed to get items: %w", err)
		}
		defer rows.Close()

		for rows.Next() {
			var (
				item     models.Item
				name     sql.NullString
				quantity sql.NullInt64
			)
			if err := rows.Scan(&item.ID, &name, &quantity); err != nil {
				return fmt.Errorf("failed to scan item: %w", err)
			}
			item.Name = name.String
			item.Quantity = int(quantity.Int64)
			item.UserID = userID
			items = append(items, item)
		}
		if err := rows.Err(); err != nil {
			return fmt.Errorf("failed to iterate items: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return items, nil
}

// UpdateItem rewrites the name and quantity of an item owned by the user.
// Subscribed hooks run after the statement, even when it matched no row,
// and only after the connection has been released.
func (s *SQLiteStore) UpdateItem(ctx context.Context, itemID int64, name string, quantity int, userID int64) (bool, error) {
	var updated bool
	err := s.withConn(ctx, func(conn *sql.Conn) error {
		result, err := conn.ExecContext(ctx,
			"UPDATE items SET name = ?, quantity = ? WHERE id = ? AND user_id = ?",
			name, quantity, itemID, userID,
		)
		if err != nil {
			return fmt.Errorf("failed to update item: %w", err)
		}
		updated, err = affected(result)
		return err
	})
	if err != nil {
		return false, err
	}

	s.notifyItemUpdated(ctx, storage.ItemUpdated{
		ItemID:   itemID,
		UserID:   userID,
		Name:     name,
		Quantity: quantity,
		Updated:  updated,
	})
	return updated, nil
}

// DeleteItem removes an item, scoped to its owner.
func (s *SQLiteStore) DeleteItem(ctx context.Context, itemID, userID int64) (bool, error) {
	var deleted bool
	err := s.withConn(ctx, func(conn *sql.Conn) error {
		result, err := conn.ExecContext(ctx,
			"DELETE FROM items WHERE id = ? AND user_id = ?",
			itemID, userID,
		)
		if err != nil {
			return fmt.Errorf("failed to delete item: %w", err)
		}
		deleted, err = affected(result)
		return err
	})
	return deleted, err
}

// ClearItemsForUser deletes every item owned by the user.
func (s *SQLiteStore) ClearItemsForUser(ctx context.Context, userID int64) error {
	return s.withConn(ctx, func(conn *sql.Conn) error {
		if _, err := conn.ExecContext(ctx, "DELETE FROM items WHERE user_id = ?", userID); err != nil {
			return fmt.Errorf("failed to clear items: %w", err)
		}
		return nil
	})
}
