package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/jsamuelsen11/crowdfund-escrow/internal/domain"
	"github.com/jsamuelsen11/crowdfund-escrow/internal/domain/ledger"
	"github.com/jsamuelsen11/crowdfund-escrow/internal/ports"
)

var (
	_ domain.Action = (*settlementAction)(nil)
	_ domain.Action = (*transferAction)(nil)
)

// settlementAction persists the ledger mutation that guards a payout
// together with its release. Rollback reverts both when the channel rejected
// the payout; when inDoubt reports the payout may have gone out, it only
// parks the release for a later resend.
type settlementAction struct {
	description string
	apply       func(ctx context.Context) error
	revert      func(ctx context.Context) error
	park        func(ctx context.Context) error
	inDoubt     func() bool
}

func (a *settlementAction) Execute(ctx context.Context) error { return a.apply(ctx) }

// Rollback must land even when the request context is already canceled.
func (a *settlementAction) Rollback(ctx context.Context) error {
	ctx = context.WithoutCancel(ctx)
	if a.inDoubt != nil && a.inDoubt() {
		return a.park(ctx)
	}
	return a.revert(ctx)
}

func (a *settlementAction) Description() string { return a.description }

// transferAction sends the payout. A transfer cannot be recalled, so
// Rollback is a no-op; it only runs if a later step fails, and there is none.
type transferAction struct {
	client ports.PayoutClient
	payout *ports.Payout
	err    error
}

func (a *transferAction) Execute(ctx context.Context) error {
	err := a.client.Transfer(ctx, *a.payout)
	switch {
	case err == nil:
	case errors.Is(err, domain.ErrUnavailable):
		err = fmt.Errorf("payout %s: %w", a.payout.ID, err)
	default:
		err = fmt.Errorf("payout %s: %w: %w", a.payout.ID, domain.ErrUnavailable, err)
	}
	a.err = err
	return err
}

// inDoubt reports whether the transfer failed without a definite rejection,
// in which case the channel may have applied it.
func (a *transferAction) inDoubt() bool {
	return a.err != nil && !errors.Is(a.err, domain.ErrPayoutRejected)
}

func (a *transferAction) Rollback(context.Context) error { return nil }

func (a *transferAction) Description() string {
	return fmt.Sprintf("transfer %d to %s", a.payout.Amount, a.payout.Recipient)
}

func fillPayout(p *ports.Payout, r ledger.Release) {
	p.ID, p.Recipient, p.Amount = r.ID, r.Recipient, r.Amount
}

func releaseOf(p *ports.Payout) ledger.Release {
	return ledger.Release{ID: p.ID, Recipient: p.Recipient, Amount: p.Amount}
}
