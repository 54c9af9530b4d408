// Package health keeps the readiness checkers of the escrow service: the
// project store, the payout channel and, when enabled, the idempotency
// cache.
package health

import (
	"context"
	"slices"
	"sync"

	"github.com/jsamuelsen11/crowdfund-escrow/internal/app/fanout"
	"github.com/jsamuelsen11/crowdfund-escrow/internal/ports"
)

// maxConcurrentChecks bounds how many checkers run at once.
const maxConcurrentChecks = 8

var _ ports.HealthRegistry = (*Registry)(nil)

// Registry is safe for concurrent use. Checkers are keyed by name; a later
// registration under the same name replaces the earlier one in place.
type Registry struct {
	mu       sync.RWMutex
	checkers []ports.HealthChecker
}

// New returns an empty Registry.
func New() *Registry {
	return &Registry{}
}

// Register adds checker, replacing any checker with the same name.
func (r *Registry) Register(checker ports.HealthChecker) {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := slices.IndexFunc(r.checkers, func(c ports.HealthChecker) bool {
		return c.Name() == checker.Name()
	})
	if i >= 0 {
		r.checkers[i] = checker
		return
	}
	r.checkers = append(r.checkers, checker)
}

// CheckAll runs every checker through fanout and returns the outcome per
// name. A nil error means healthy; checkers not started before ctx ends
// report ctx.Err().
func (r *Registry) CheckAll(ctx context.Context) map[string]error {
	r.mu.RLock()
	checkers := slices.Clone(r.checkers)
	r.mu.RUnlock()

	outcomes := fanout.Run(ctx, maxConcurrentChecks, checkers,
		func(ctx context.Context, c ports.HealthChecker) (struct{}, error) {
			return struct{}{}, c.HealthCheck(ctx)
		})

	results := make(map[string]error, len(checkers))
	for i, c := range checkers {
		results[c.Name()] = outcomes[i].Err
	}
	return results
}
