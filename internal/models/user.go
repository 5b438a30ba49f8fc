package models

// NoUserID is returned in place of a user ID when no user matched,
// e.g. when authentication fails.
const NoUserID int64 = -1

// User represents a registered user account.
type User struct {
	// ID is the storage-assigned identifier for the user.
	ID int64

	// Username is the unique login name.
	Username string

	// PasswordHash is the bcrypt hash of the user's password.
	// The plaintext password is never stored.
	PasswordHash string

	// SMSEnabled is true when the user opted in to low-stock text alerts.
	SMSEnabled bool

	// PhoneNumber is where low-stock alerts are sent. Empty when unset.
	PhoneNumber string
}

// CanReceiveSMS reports whether alerts can be delivered to this user.
func (u *User) CanReceiveSMS() bool {
	return u != nil && u.SMSEnabled && u.PhoneNumber != ""
}
