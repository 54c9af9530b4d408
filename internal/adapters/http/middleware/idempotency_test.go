package middleware_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/jsamuelsen11/crowdfund-escrow/internal/adapters/http/middleware"
	"github.com/jsamuelsen11/crowdfund-escrow/internal/adapters/storage/memory"
	"github.com/jsamuelsen11/crowdfund-escrow/internal/platform/clock"
	"github.com/jsamuelsen11/crowdfund-escrow/internal/ports"
)

// countingHandler writes status and an incrementing body.
func countingHandler(calls *atomic.Int32, status int) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		n := calls.Add(1)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(`{"call":` + string(rune('0'+n)) + `}`))
	})
}

func idempotentRequest(method, caller, key string) *http.Request {
	req := httptest.NewRequest(method, "/api/v1/projects/0/contributions", strings.NewReader(`{"amount":5}`))
	if caller != "" {
		req = req.WithContext(middleware.WithCaller(req.Context(), caller))
	}
	if key != "" {
		req.Header.Set(middleware.HeaderIdempotencyKey, key)
	}
	return req
}

func newIdempotencyStore() *memory.IdempotencyStore {
	return memory.NewIdempotencyStore(clock.NewManual(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)))
}

func TestIdempotency_ReplaysStoredResponse(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	handler := middleware.Idempotency(newIdempotencyStore(), time.Hour)(countingHandler(&calls, http.StatusCreated))

	first := httptest.NewRecorder()
	handler.ServeHTTP(first, idempotentRequest(http.MethodPost, "alice", "k1"))

	second := httptest.NewRecorder()
	handler.ServeHTTP(second, idempotentRequest(http.MethodPost, "alice", "k1"))

	if got := calls.Load(); got != 1 {
		t.Fatalf("handler calls = %d, want 1", got)
	}
	if second.Code != http.StatusCreated {
		t.Errorf("replay status = %d, want %d", second.Code, http.StatusCreated)
	}
	if second.Body.String() != first.Body.String() {
		t.Errorf("replay body = %q, want %q", second.Body.String(), first.Body.String())
	}
	if got := second.Header().Get(middleware.HeaderIdempotentReplayed); got != "true" {
		t.Errorf("Idempotent-Replayed = %q, want %q", got, "true")
	}
	if got := second.Header().Get("Content-Type"); got != "application/json" {
		t.Errorf("Content-Type = %q, want application/json", got)
	}
	if got := first.Header().Get(middleware.HeaderIdempotentReplayed); got != "" {
		t.Errorf("first response Idempotent-Replayed = %q, want empty", got)
	}
}

func TestIdempotency_KeyScopedByCaller(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	handler := middleware.Idempotency(newIdempotencyStore(), time.Hour)(countingHandler(&calls, http.StatusCreated))

	handler.ServeHTTP(httptest.NewRecorder(), idempotentRequest(http.MethodPost, "alice", "k1"))
	handler.ServeHTTP(httptest.NewRecorder(), idempotentRequest(http.MethodPost, "bob", "k1"))

	if got := calls.Load(); got != 2 {
		t.Errorf("handler calls = %d, want 2", got)
	}
}

func TestIdempotency_PassThrough(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		method string
		key    string
	}{
		{name: "no key", method: http.MethodPost, key: ""},
		{name: "get request", method: http.MethodGet, key: "k1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var calls atomic.Int32
			handler := middleware.Idempotency(newIdempotencyStore(), time.Hour)(countingHandler(&calls, http.StatusOK))

			handler.ServeHTTP(httptest.NewRecorder(), idempotentRequest(tt.method, "alice", tt.key))
			handler.ServeHTTP(httptest.NewRecorder(), idempotentRequest(tt.method, "alice", tt.key))

			if got := calls.Load(); got != 2 {
				t.Errorf("handler calls = %d, want 2", got)
			}
		})
	}
}

func TestIdempotency_ServerErrorReleasesKey(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	handler := middleware.Idempotency(newIdempotencyStore(), time.Hour)(countingHandler(&calls, http.StatusBadGateway))

	handler.ServeHTTP(httptest.NewRecorder(), idempotentRequest(http.MethodPost, "alice", "k1"))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, idempotentRequest(http.MethodPost, "alice", "k1"))

	if got := calls.Load(); got != 2 {
		t.Errorf("handler calls = %d, want 2", got)
	}
	if got := rec.Header().Get(middleware.HeaderIdempotentReplayed); got != "" {
		t.Errorf("Idempotent-Replayed = %q, want empty", got)
	}
}

func TestIdempotency_SettlesAfterRequestContextEnds(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		status    int
		wantCalls int32
		wantCode  int
	}{
		{name: "server error releases key", status: http.StatusGatewayTimeout, wantCalls: 2, wantCode: http.StatusGatewayTimeout},
		{name: "response is stored", status: http.StatusCreated, wantCalls: 1, wantCode: http.StatusCreated},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			ctx, cancel := context.WithCancel(context.Background())
			defer cancel()

			var calls atomic.Int32
			handler := middleware.Idempotency(newIdempotencyStore(), time.Hour)(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				// The first request's context ends before the handler
				// returns, as under the Timeout middleware.
				if calls.Add(1) == 1 {
					cancel()
				}
				w.WriteHeader(tt.status)
			}))

			first := idempotentRequest(http.MethodPost, "", "k1")
			handler.ServeHTTP(httptest.NewRecorder(), first.WithContext(middleware.WithCaller(ctx, "alice")))

			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, idempotentRequest(http.MethodPost, "alice", "k1"))

			if rec.Code == http.StatusConflict {
				t.Fatalf("retry got 409, reservation left in progress")
			}
			if rec.Code != tt.wantCode {
				t.Errorf("retry status = %d, want %d", rec.Code, tt.wantCode)
			}
			if got := calls.Load(); got != tt.wantCalls {
				t.Errorf("handler calls = %d, want %d", got, tt.wantCalls)
			}
		})
	}
}

func TestIdempotency_ClientErrorIsReplayed(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	handler := middleware.Idempotency(newIdempotencyStore(), time.Hour)(countingHandler(&calls, http.StatusConflict))

	handler.ServeHTTP(httptest.NewRecorder(), idempotentRequest(http.MethodPost, "alice", "k1"))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, idempotentRequest(http.MethodPost, "alice", "k1"))

	if got := calls.Load(); got != 1 {
		t.Errorf("handler calls = %d, want 1", got)
	}
	if rec.Code != http.StatusConflict {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusConflict)
	}
}

func TestIdempotency_InFlightDuplicateConflicts(t *testing.T) {
	t.Parallel()

	store := newIdempotencyStore()
	ok, err := store.Reserve(context.Background(), "alice:POST:/api/v1/projects/0/contributions:k1", time.Hour)
	if err != nil || !ok {
		t.Fatalf("Reserve = (%v, %v), want (true, nil)", ok, err)
	}

	var calls atomic.Int32
	handler := middleware.Idempotency(store, time.Hour)(countingHandler(&calls, http.StatusCreated))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, idempotentRequest(http.MethodPost, "alice", "k1"))

	if rec.Code != http.StatusConflict {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusConflict)
	}
	if got := calls.Load(); got != 0 {
		t.Errorf("handler calls = %d, want 0", got)
	}
}

func TestIdempotency_KeyTooLong(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	handler := middleware.Idempotency(newIdempotencyStore(), time.Hour)(countingHandler(&calls, http.StatusCreated))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, idempotentRequest(http.MethodPost, "alice", strings.Repeat("k", 256)))

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
	if got := calls.Load(); got != 0 {
		t.Errorf("handler calls = %d, want 0", got)
	}
}

type failingIdempotencyStore struct{}

func (failingIdempotencyStore) Reserve(context.Context, string, time.Duration) (bool, error) {
	return false, errors.New("connection refused")
}

func (failingIdempotencyStore) Lookup(context.Context, string) (*ports.StoredResponse, bool, error) {
	return nil, false, errors.New("connection refused")
}

func (failingIdempotencyStore) Complete(context.Context, string, ports.StoredResponse, time.Duration) error {
	return errors.New("connection refused")
}

func (failingIdempotencyStore) Release(context.Context, string) error {
	return errors.New("connection refused")
}

func TestIdempotency_StoreUnavailable(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	handler := middleware.Idempotency(failingIdempotencyStore{}, time.Hour)(countingHandler(&calls, http.StatusCreated))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, idempotentRequest(http.MethodPost, "alice", "k1"))

	if rec.Code != http.StatusBadGateway {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusBadGateway)
	}
	if got := calls.Load(); got != 0 {
		t.Errorf("handler calls = %d, want 0", got)
	}
}
