package appctx

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jsamuelsen11/crowdfund-escrow/internal/domain"
	"github.com/jsamuelsen11/crowdfund-escrow/internal/platform/logging"
)

// Commit executes all staged actions in insertion order. If an action fails,
// previously completed actions are rolled back in reverse order. Rollback
// errors are logged but do not affect the returned error, which wraps the
// failing action's error.
//
// After Commit returns the RequestContext is marked as committed and no
// further actions can be staged. Returns ErrAlreadyCommitted if called more
// than once.
func (rc *RequestContext) Commit(ctx context.Context) error {
	rc.queueMu.Lock()
	if rc.committed {
		rc.queueMu.Unlock()
		return ErrAlreadyCommitted
	}
	rc.committed = true
	items := rc.items
	rc.queueMu.Unlock()

	logger := logging.FromContext(ctx)

	for i, item := range items {
		logger.DebugContext(ctx, "executing action",
			slog.String("operation", "RequestContext.Commit"),
			slog.Int("step", i+1),
			slog.Int("total", len(items)),
			slog.String("action", item.Description()),
		)

		if err := item.Execute(ctx); err != nil {
			level := slog.LevelError
			if i == 0 && isRejection(err) {
				level = slog.LevelWarn
			}
			logger.Log(ctx, level, "action failed",
				slog.String("operation", "RequestContext.Commit"),
				slog.Int("failed_step", i+1),
				slog.String("action", item.Description()),
				slog.Any("error", err),
			)
			rollbackItems(ctx, items, i-1, logger)
			return fmt.Errorf("executing %s: %w", item.Description(), err)
		}
	}

	return nil
}

// isRejection reports whether err is an expected business outcome rather
// than an infrastructure failure.
func isRejection(err error) bool {
	return errors.Is(err, domain.ErrValidation) ||
		errors.Is(err, domain.ErrNotFound) ||
		errors.Is(err, domain.ErrConflict) ||
		errors.Is(err, domain.ErrForbidden)
}

// rollbackItems undoes items 0..upTo in reverse order. It detaches from
// ctx's cancellation: a transfer that failed because the request timed out
// must still have its ledger mutation compensated. Rollback errors are
// logged and do not stop the remaining rollbacks.
func rollbackItems(ctx context.Context, items []domain.Action, upTo int, logger *slog.Logger) {
	ctx = context.WithoutCancel(ctx)
	for i := upTo; i >= 0; i-- {
		item := items[i]

		logger.InfoContext(ctx, "rolling back action",
			slog.String("operation", "RequestContext.Commit"),
			slog.Int("step", i+1),
			slog.String("action", item.Description()),
		)

		if err := item.Rollback(ctx); err != nil {
			logger.ErrorContext(ctx, "rollback failed",
				slog.String("operation", "RequestContext.Commit"),
				slog.Int("step", i+1),
				slog.String("action", item.Description()),
				slog.Any("error", err),
			)
		}
	}
}
