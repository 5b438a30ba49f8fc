package auth

import "context"

// Session identifies the authenticated user for the duration of a request
// or, on the CLI, between runs.
type Session struct {
	UserID   int64  `json:"user_id"`
	Username string `json:"username"`
}

// Valid reports whether the session refers to a real user.
func (s Session) Valid() bool {
	return s.UserID > 0
}

type sessionKey struct{}

// WithSession returns a copy of ctx carrying the session.
func WithSession(ctx context.Context, s Session) context.Context {
	return context.WithValue(ctx, sessionKey{}, s)
}

// SessionFromContext extracts the session from ctx.
// The boolean is false when the request is unauthenticated.
func SessionFromContext(ctx context.Context) (Session, bool) {
	s, ok := ctx.Value(sessionKey{}).(Session)
	return s, ok && s.Valid()
}
