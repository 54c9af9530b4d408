package domain

import "context"

// Action is one step of a settlement that can be undone. Withdraw and
// refund queue a ledger mutation followed by the payout transfer; if the
// transfer fails the mutation is rolled back.
type Action interface {
	Execute(ctx context.Context) error

	// Rollback undoes a successful Execute. It is never called for an
	// Action whose Execute failed, and ctx may outlive the request.
	Rollback(ctx context.Context) error

	// Description names the step in logs, e.g. "withdraw project 3".
	Description() string
}
