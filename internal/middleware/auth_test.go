package middleware

import (
	"context"
	"testing"
	"time"

	"connectrpc.com/connect"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmynk/stockkeeper/internal/auth"
	"github.com/mmynk/stockkeeper/internal/metrics"
)

func rejectedCount(t *testing.T) float64 {
	t.Helper()
	var m dto.Metric
	require.NoError(t, metrics.RPCRequests.WithLabelValues("", connect.CodeUnauthenticated.String()).Write(&m))
	return m.GetCounter().GetValue()
}

func TestBearerToken(t *testing.T) {
	tests := []struct {
		header string
		want   string
		ok     bool
	}{
		{"Bearer abc", "abc", true},
		{"", "", false},
		{"Bearer", "", false},
		{"Bearer ", "", false},
		{"Basic abc", "", false},
		{"bearer abc", "", false},
		{"Bearer abc def", "", false},
	}

	for _, tt := range tests {
		got, ok := bearerToken(tt.header)
		assert.Equal(t, tt.ok, ok, "header %q", tt.header)
		assert.Equal(t, tt.want, got, "header %q", tt.header)
	}
}

func TestInterceptors(t *testing.T) {
	jwtManager := auth.NewJWTManager("0123456789abcdef0123456789abcdef", time.Hour)
	token, err := jwtManager.Generate(auth.Session{UserID: 1, Username: "alice"})
	require.NoError(t, err)

	var seen auth.Session
	var seenOK bool
	next := connect.UnaryFunc(func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
		seen, seenOK = auth.SessionFromContext(ctx)
		return nil, nil
	})

	newReq := func(header string) connect.AnyRequest {
		req := connect.NewRequest(&struct{}{})
		if header != "" {
			req.Header().Set("Authorization", header)
		}
		return req
	}

	t.Run("RequireAuth accepts a valid token", func(t *testing.T) {
		seenOK = false
		_, err := RequireAuth(jwtManager)(next)(context.Background(), newReq("Bearer "+token))
		require.NoError(t, err)
		assert.True(t, seenOK)
		assert.Equal(t, int64(1), seen.UserID)
	})

	t.Run("RequireAuth rejects missing and bad tokens", func(t *testing.T) {
		before := rejectedCount(t)
		headers := []string{"", "Bearer nope", "Token " + token}
		for _, header := range headers {
			seenOK = false
			_, err := RequireAuth(jwtManager)(next)(context.Background(), newReq(header))
			assert.Equal(t, connect.CodeUnauthenticated, connect.CodeOf(err), "header %q", header)
			assert.False(t, seenOK, "handler must not run for header %q", header)
		}
		assert.Equal(t, float64(len(headers)), rejectedCount(t)-before, "every rejection is counted")
	})

	t.Run("OptionalAuth passes through without a session", func(t *testing.T) {
		seenOK = true
		_, err := OptionalAuth(jwtManager)(next)(context.Background(), newReq("Bearer nope"))
		require.NoError(t, err)
		assert.False(t, seenOK)
	})

	t.Run("OptionalAuth attaches a valid session", func(t *testing.T) {
		seenOK = false
		_, err := OptionalAuth(jwtManager)(next)(context.Background(), newReq("Bearer "+token))
		require.NoError(t, err)
		assert.True(t, seenOK)
	})
}
