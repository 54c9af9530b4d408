package middleware

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/jsamuelsen11/crowdfund-escrow/internal/adapters/http/dto"
	"github.com/jsamuelsen11/crowdfund-escrow/internal/domain"
	"github.com/jsamuelsen11/crowdfund-escrow/internal/platform/logging"
	"github.com/jsamuelsen11/crowdfund-escrow/internal/ports"
)

// Idempotency headers.
const (
	HeaderIdempotencyKey     = "Idempotency-Key"
	HeaderIdempotentReplayed = "Idempotent-Replayed"
)

const maxIdempotencyKeyLength = 255

var (
	errIdempotencyInFlight = fmt.Errorf("request with this idempotency key is still in progress: %w", domain.ErrConflict)
	errIdempotencyStore    = fmt.Errorf("idempotency store: %w", domain.ErrUnavailable)
)

// Idempotency returns middleware that makes POST requests carrying an
// Idempotency-Key header safe to retry. The key is scoped by caller, method
// and path. The first request reserves the key and runs; its response is
// stored for ttl unless it is a 5xx, in which case the reservation is
// released. A retry replays the stored response with Idempotent-Replayed set.
// A duplicate that arrives while the first is still running gets a 409.
//
// Requests without the header, and non-POST requests, pass through.
func Idempotency(store ports.IdempotencyStore, ttl time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := strings.TrimSpace(r.Header.Get(HeaderIdempotencyKey))
			if r.Method != http.MethodPost || key == "" {
				next.ServeHTTP(w, r)
				return
			}
			if len(key) > maxIdempotencyKeyLength {
				dto.WriteErrorResponse(w, r, domain.NewValidationError("Idempotency-Key", "must be at most 255 characters"))
				return
			}

			ctx := r.Context()
			logger := logging.FromContext(ctx)
			scoped := scopeIdempotencyKey(CallerFromContext(ctx), r.Method, r.URL.Path, key)

			reserved, err := store.Reserve(ctx, scoped, ttl)
			if err != nil {
				logger.ErrorContext(ctx, "idempotency reserve failed", slog.Any("error", err))
				dto.WriteErrorResponse(w, r, errIdempotencyStore)
				return
			}
			if !reserved {
				replayStored(w, r, store, scoped)
				return
			}

			rec := newBodyRecorder(w)
			next.ServeHTTP(rec, r)

			// The request context may be done by now (timeout, client gone);
			// the reservation must still be settled.
			settleCtx := context.WithoutCancel(ctx)
			if rec.status >= http.StatusInternalServerError {
				if err := store.Release(settleCtx, scoped); err != nil {
					logger.WarnContext(ctx, "idempotency release failed", slog.Any("error", err))
				}
				return
			}

			resp := ports.StoredResponse{
				Status:      rec.status,
				ContentType: rec.Header().Get("Content-Type"),
				Body:        rec.bodyBytes(),
			}
			if err := store.Complete(settleCtx, scoped, resp, ttl); err != nil {
				logger.WarnContext(ctx, "idempotency complete failed", slog.Any("error", err))
			}
		})
	}
}

// replayStored writes the recorded response for key, or a 409 when the first
// request has not finished.
func replayStored(w http.ResponseWriter, r *http.Request, store ports.IdempotencyStore, key string) {
	ctx := r.Context()

	resp, found, err := store.Lookup(ctx, key)
	if err != nil {
		logging.FromContext(ctx).ErrorContext(ctx, "idempotency lookup failed", slog.Any("error", err))
		dto.WriteErrorResponse(w, r, errIdempotencyStore)
		return
	}
	if !found || resp == nil {
		dto.WriteErrorResponse(w, r, errIdempotencyInFlight)
		return
	}

	if resp.ContentType != "" {
		w.Header().Set("Content-Type", resp.ContentType)
	}
	w.Header().Set(HeaderIdempotentReplayed, "true")
	w.WriteHeader(resp.Status)
	_, _ = w.Write(resp.Body)
}

func scopeIdempotencyKey(caller, method, path, key string) string {
	return strings.Join([]string{caller, method, path, key}, ":")
}
