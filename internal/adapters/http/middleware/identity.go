package middleware

import (
	"context"
	"net/http"
	"strings"
	"unicode"

	"github.com/google/uuid"

	"github.com/jsamuelsen11/crowdfund-escrow/internal/platform/httpclient"
)

// Identity headers read from and echoed to clients.
const (
	HeaderRequestID     = "X-Request-ID"
	HeaderCorrelationID = "X-Correlation-ID"

	// HeaderAccountID carries the authenticated account of the caller. The
	// gateway in front of the service is responsible for setting it.
	HeaderAccountID = "X-Account-ID"
)

// maxIdentityLength bounds every identity header we accept.
const maxIdentityLength = 128

type identityKey int

const (
	requestIDKey identityKey = iota
	correlationIDKey
	callerKey
)

// WithRequestID stores id in ctx, including the copy the payout rail client
// forwards downstream.
func WithRequestID(ctx context.Context, id string) context.Context {
	return httpclient.Propagate(context.WithValue(ctx, requestIDKey, id), HeaderRequestID, id)
}

// RequestIDFromContext returns the request ID or "".
func RequestIDFromContext(ctx context.Context) string {
	return identity(ctx, requestIDKey)
}

// WithCorrelationID stores id in ctx, including the copy the payout rail
// client forwards downstream.
func WithCorrelationID(ctx context.Context, id string) context.Context {
	return httpclient.Propagate(context.WithValue(ctx, correlationIDKey, id), HeaderCorrelationID, id)
}

// CorrelationIDFromContext returns the correlation ID or "".
func CorrelationIDFromContext(ctx context.Context) string {
	return identity(ctx, correlationIDKey)
}

// WithCaller returns a new context carrying the caller account ID.
func WithCaller(ctx context.Context, caller string) context.Context {
	return context.WithValue(ctx, callerKey, caller)
}

// CallerFromContext returns the caller account ID, or "" for anonymous
// requests.
func CallerFromContext(ctx context.Context) string {
	return identity(ctx, callerKey)
}

// RequestID reuses a well-formed X-Request-ID or mints a UUID, stores it in
// the context and echoes it on the response.
func RequestID() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id, ok := headerIdentity(r, HeaderRequestID)
			if !ok {
				id = uuid.NewString()
			}
			w.Header().Set(HeaderRequestID, id)
			next.ServeHTTP(w, r.WithContext(WithRequestID(r.Context(), id)))
		})
	}
}

// CorrelationID reuses a well-formed X-Correlation-ID or falls back to the
// request ID, so it must run after RequestID.
func CorrelationID() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id, ok := headerIdentity(r, HeaderCorrelationID)
			if !ok {
				id = RequestIDFromContext(r.Context())
			}
			w.Header().Set(HeaderCorrelationID, id)
			next.ServeHTTP(w, r.WithContext(WithCorrelationID(r.Context(), id)))
		})
	}
}

// Caller stores the X-Account-ID account in the context. A missing or
// malformed header leaves the request anonymous; handlers that move funds
// reject anonymous requests themselves.
func Caller() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			caller, ok := headerIdentity(r, HeaderAccountID)
			if !ok {
				next.ServeHTTP(w, r)
				return
			}
			next.ServeHTTP(w, r.WithContext(WithCaller(r.Context(), caller)))
		})
	}
}

// headerIdentity returns the trimmed header value when it is non-empty, at
// most maxIdentityLength bytes and free of control characters.
func headerIdentity(r *http.Request, name string) (string, bool) {
	v := strings.TrimSpace(r.Header.Get(name))
	if v == "" || len(v) > maxIdentityLength || strings.ContainsFunc(v, unicode.IsControl) {
		return "", false
	}
	return v, true
}

func identity(ctx context.Context, key identityKey) string {
	v, _ := ctx.Value(key).(string)
	return v
}
