// Package appctx provides a request-scoped queue of compensatable actions for
// orchestration services.
//
// A settlement that touches more than one system (the project store and the
// payout channel) is expressed as an ordered list of domain.Action values.
// Commit runs them in order and, if one fails, rolls back the ones that
// already succeeded in reverse order:
//
//	rc := appctx.New(ctx)
//	rc.AddAction(settle, transfer) // mark withdrawn, then push funds out
//	err := rc.Commit(ctx)
package appctx

import (
	"context"
	"errors"
	"sync"

	"github.com/jsamuelsen11/crowdfund-escrow/internal/domain"
)

// ErrAlreadyCommitted is returned when AddAction or Commit is called on a
// RequestContext that has already been committed.
var ErrAlreadyCommitted = errors.New("appctx: request context already committed")

// ErrNilAction is returned when a nil Action is passed to AddAction.
var ErrNilAction = errors.New("appctx: nil action")

// RequestContext is a request-scoped context wrapper holding staged actions.
// Create a new instance for each service call.
type RequestContext struct {
	context.Context

	queueMu   sync.Mutex
	items     []domain.Action
	committed bool
}

// New creates a RequestContext wrapping the given context.Context.
func New(ctx context.Context) *RequestContext {
	return &RequestContext{Context: ctx}
}

// Len returns the number of staged actions.
func (rc *RequestContext) Len() int {
	rc.queueMu.Lock()
	defer rc.queueMu.Unlock()
	return len(rc.items)
}
