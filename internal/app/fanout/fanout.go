// Package fanout runs one function over many inputs with a cap on how many
// run at once. Results keep the input order. The readiness probe uses it to
// check the store, the payout channel and the idempotency cache together.
package fanout

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// Result is the outcome for one input: Value on success, Err otherwise.
type Result[R any] struct {
	Value R
	Err   error
}

// Run calls fn for every item with at most limit calls in flight and waits
// for all of them. A failing item never cancels the others. Items that have
// not started when ctx is done get ctx.Err() without calling fn; a call that
// already started is expected to watch ctx itself.
//
// A limit below 1 means one at a time. Run returns an empty non-nil slice
// for no items.
func Run[T, R any](ctx context.Context, limit int, items []T, fn func(context.Context, T) (R, error)) []Result[R] {
	results := make([]Result[R], len(items))
	if len(items) == 0 {
		return results
	}

	var g errgroup.Group
	g.SetLimit(max(limit, 1))

	for i, item := range items {
		if err := ctx.Err(); err != nil {
			results[i].Err = err
			continue
		}
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				results[i].Err = err
				return nil
			}
			v, err := fn(ctx, item)
			results[i] = Result[R]{Value: v, Err: err}
			return nil
		})
	}

	_ = g.Wait()
	return results
}
