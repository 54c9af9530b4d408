package middleware_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jsamuelsen11/crowdfund-escrow/internal/adapters/http/middleware"
)

// identities captures what the handler saw in its context.
type identities struct {
	requestID     string
	correlationID string
	caller        string
}

func serveIdentity(t *testing.T, headers map[string]string) (identities, *httptest.ResponseRecorder) {
	t.Helper()

	var got identities
	handler := http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		got = identities{
			requestID:     middleware.RequestIDFromContext(r.Context()),
			correlationID: middleware.CorrelationIDFromContext(r.Context()),
			caller:        middleware.CallerFromContext(r.Context()),
		}
	})
	chain := middleware.RequestID()(middleware.CorrelationID()(middleware.Caller()(handler)))

	req := httptest.NewRequest(http.MethodPost, "/api/v1/projects/0/withdraw", http.NoBody)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	chain.ServeHTTP(rec, req)
	return got, rec
}

func TestRequestID_GeneratedWhenMissing(t *testing.T) {
	t.Parallel()

	got, rec := serveIdentity(t, nil)

	_, err := uuid.Parse(got.requestID)
	require.NoError(t, err, "generated request ID is not a UUID")
	assert.Equal(t, got.requestID, rec.Header().Get(middleware.HeaderRequestID))
	assert.Equal(t, got.requestID, got.correlationID, "correlation ID falls back to request ID")
	assert.Equal(t, got.requestID, rec.Header().Get(middleware.HeaderCorrelationID))
}

func TestRequestID_ReusesIncoming(t *testing.T) {
	t.Parallel()

	got, rec := serveIdentity(t, map[string]string{
		middleware.HeaderRequestID:     "req-42",
		middleware.HeaderCorrelationID: "saga-7",
	})

	assert.Equal(t, "req-42", got.requestID)
	assert.Equal(t, "saga-7", got.correlationID)
	assert.Equal(t, "req-42", rec.Header().Get(middleware.HeaderRequestID))
	assert.Equal(t, "saga-7", rec.Header().Get(middleware.HeaderCorrelationID))
}

func TestRequestID_RejectsOversizedHeader(t *testing.T) {
	t.Parallel()

	got, _ := serveIdentity(t, map[string]string{middleware.HeaderRequestID: strings.Repeat("r", 129)})

	assert.NotEqual(t, strings.Repeat("r", 129), got.requestID)
	_, err := uuid.Parse(got.requestID)
	assert.NoError(t, err)
}

func TestCaller(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		header string
		want   string
	}{
		{name: "present", header: "alice", want: "alice"},
		{name: "trimmed", header: "  bob ", want: "bob"},
		{name: "missing", header: "", want: ""},
		{name: "blank", header: "   ", want: ""},
		{name: "too long", header: strings.Repeat("x", 129), want: ""},
		{name: "max length", header: strings.Repeat("y", 128), want: strings.Repeat("y", 128)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			headers := map[string]string{}
			if tt.header != "" {
				headers[middleware.HeaderAccountID] = tt.header
			}
			got, _ := serveIdentity(t, headers)

			assert.Equal(t, tt.want, got.caller)
		})
	}
}

func TestIdentityFromEmptyContext(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	assert.Empty(t, middleware.RequestIDFromContext(ctx))
	assert.Empty(t, middleware.CorrelationIDFromContext(ctx))
	assert.Empty(t, middleware.CallerFromContext(ctx))
}
