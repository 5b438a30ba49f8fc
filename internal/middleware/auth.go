package middleware

import (
	"context"
	"log/slog"
	"strings"

	"connectrpc.com/connect"

	"github.com/mmynk/stockkeeper/internal/auth"
	"github.com/mmynk/stockkeeper/internal/metrics"
)

// bearerToken extracts the token from an "Authorization: Bearer <token>" header.
func bearerToken(header string) (string, bool) {
	parts := strings.Split(header, " ")
	if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
		return "", false
	}
	return parts[1], true
}

// RequireAuth returns an interceptor that validates session tokens and
// requires authentication. The validated auth.Session is added to the
// request context. Rejected calls never reach the logging interceptor, so
// they are logged and counted here.
func RequireAuth(jwtManager *auth.JWTManager) connect.UnaryInterceptorFunc {
	return func(next connect.UnaryFunc) connect.UnaryFunc {
		return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
			authHeader := req.Header().Get("Authorization")
			if authHeader == "" {
				return nil, reject(req, auth.ErrMissingToken)
			}

			tokenString, ok := bearerToken(authHeader)
			if !ok {
				return nil, reject(req, auth.ErrInvalidToken)
			}

			session, err := jwtManager.Validate(tokenString)
			if err != nil {
				return nil, reject(req, err)
			}

			return next(auth.WithSession(ctx, session), req)
		}
	}
}

// reject logs and counts an unauthenticated call and returns its error.
func reject(req connect.AnyRequest, err error) error {
	procedure := req.Spec().Procedure
	metrics.RPCRequests.WithLabelValues(procedure, connect.CodeUnauthenticated.String()).Inc()
	slog.Warn("RPC rejected",
		"procedure", procedure,
		"code", connect.CodeUnauthenticated,
		"error", err,
	)
	return connect.NewError(connect.CodeUnauthenticated, err)
}

// OptionalAuth returns an interceptor that validates session tokens if
// present, but allows requests without authentication.
func OptionalAuth(jwtManager *auth.JWTManager) connect.UnaryInterceptorFunc {
	return func(next connect.UnaryFunc) connect.UnaryFunc {
		return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
			if tokenString, ok := bearerToken(req.Header().Get("Authorization")); ok {
				// Invalid tokens are ignored here; handlers decide.
				if session, err := jwtManager.Validate(tokenString); err == nil {
					ctx = auth.WithSession(ctx, session)
				}
			}

			return next(ctx, req)
		}
	}
}
