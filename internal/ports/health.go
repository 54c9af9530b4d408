package ports

import "context"

// HealthChecker is a dependency the readiness probe asks about: the project
// store, the payout channel, the idempotency cache.
type HealthChecker interface {
	// Name keys the checker in readiness output, e.g. "project-store".
	Name() string

	// HealthCheck returns nil when the dependency can serve ledger calls.
	// It must give up when ctx ends.
	HealthCheck(ctx context.Context) error
}

// HealthRegistry runs the registered checkers for the readiness probe.
type HealthRegistry interface {
	Register(checker HealthChecker)

	// CheckAll returns one entry per checker name; nil means healthy.
	CheckAll(ctx context.Context) map[string]error
}
