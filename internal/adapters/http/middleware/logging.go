package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/jsamuelsen11/crowdfund-escrow/internal/platform/logging"
)

// Logging attaches a request-scoped logger to the context and logs one line
// per completed request. The child logger carries request_id, correlation_id
// and caller so that ledger logs further down are tied to the request.
//
// Completion is logged at ERROR for 5xx, WARN for 4xx (which includes every
// funding rule rejection) and INFO otherwise. Request headers are logged at
// DEBUG with credentials redacted.
func Logging(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			child := requestLogger(r.Context(), logger)
			ctx := logging.WithLogger(r.Context(), child)

			if child.Enabled(ctx, slog.LevelDebug) {
				child.LogAttrs(ctx, slog.LevelDebug, "request received",
					slog.String("method", r.Method),
					slog.String("path", r.URL.Path),
					RedactHeaders(r.Header),
				)
			}

			rr := newResponseRecorder(w)
			r = r.WithContext(ctx)
			next.ServeHTTP(rr, r)

			attrs := []slog.Attr{
				slog.String("method", r.Method),
				slog.String("route", routeLabel(r)),
				slog.String("path", r.URL.Path),
				slog.Int("status", rr.status),
				slog.Int64("bytes", rr.size),
				slog.Duration("duration", time.Since(start)),
			}
			if rr.Header().Get(HeaderIdempotentReplayed) != "" {
				attrs = append(attrs, slog.Bool("replayed", true))
			}
			child.LogAttrs(ctx, completionLevel(rr.status), "request completed", attrs...)
		})
	}
}

func requestLogger(ctx context.Context, logger *slog.Logger) *slog.Logger {
	child := logger.With(
		slog.String("request_id", RequestIDFromContext(ctx)),
		slog.String("correlation_id", CorrelationIDFromContext(ctx)),
	)
	if caller := CallerFromContext(ctx); caller != "" {
		child = child.With(slog.String("caller", caller))
	}
	return child
}

func completionLevel(status int) slog.Level {
	switch {
	case status >= http.StatusInternalServerError:
		return slog.LevelError
	case status >= http.StatusBadRequest:
		return slog.LevelWarn
	default:
		return slog.LevelInfo
	}
}
