package appctx

import (
	"slices"

	"github.com/jsamuelsen11/crowdfund-escrow/internal/domain"
)

// AddAction stages actions, in order, for Commit. Either every action is
// staged or none is: a nil entry yields ErrNilAction and a committed
// RequestContext yields ErrAlreadyCommitted.
func (rc *RequestContext) AddAction(actions ...domain.Action) error {
	if slices.Contains(actions, nil) {
		return ErrNilAction
	}

	rc.queueMu.Lock()
	defer rc.queueMu.Unlock()

	if rc.committed {
		return ErrAlreadyCommitted
	}
	rc.items = append(rc.items, actions...)
	return nil
}
