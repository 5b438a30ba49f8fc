package models

// Item represents a single inventory entry owned by a user.
type Item struct {
	// ID is the storage-assigned identifier for the item.
	ID int64

	// Name is the display name (e.g., "Widget", "Printer paper").
	Name string

	// Quantity is the number of units on hand.
	// Only creation requires a positive value; updates may store any integer.
	Quantity int

	// UserID is the owning user's ID.
	UserID int64
}
