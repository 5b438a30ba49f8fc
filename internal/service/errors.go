package service

import (
	"context"
	"errors"

	"connectrpc.com/connect"

	"github.com/mmynk/stockkeeper/internal/auth"
	"github.com/mmynk/stockkeeper/internal/inventory"
)

var (
	errUsernameTaken = errors.New("username already exists")
	errBadLogin      = errors.New("invalid username or password")
	errItemNotFound  = errors.New("item not found")
	errItemNotAdded  = errors.New("item not added")
	errUserNotFound  = errors.New("user not found")
)

// toConnectError maps controller errors onto Connect codes.
func toConnectError(err error) error {
	switch {
	case errors.Is(err, inventory.ErrInvalidInput), errors.Is(err, auth.ErrPasswordTooLong):
		return connect.NewError(connect.CodeInvalidArgument, err)
	default:
		return connect.NewError(connect.CodeInternal, err)
	}
}

// requireSession returns the caller's session or an unauthenticated error.
func requireSession(ctx context.Context) (auth.Session, error) {
	session, ok := auth.SessionFromContext(ctx)
	if !ok {
		return auth.Session{}, connect.NewError(connect.CodeUnauthenticated, auth.ErrMissingToken)
	}
	return session, nil
}
