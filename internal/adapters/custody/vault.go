// Package custody provides an in-process payout adapter. The vault credits
// released escrow to per-account balances and keeps a transfer journal, so a
// single node can run the full ledger without an external payout rail.
package custody

import (
	"context"
	"errors"
	"fmt"
	"math"
	"slices"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/jsamuelsen11/crowdfund-escrow/internal/domain"
	"github.com/jsamuelsen11/crowdfund-escrow/internal/ports"
)

var (
	_ ports.PayoutClient  = (*Vault)(nil)
	_ ports.HealthChecker = (*Vault)(nil)
)

// Vault is a thread-safe custody account book. Transfers are idempotent by
// payout ID.
type Vault struct {
	mu       sync.Mutex
	balances map[string]int64
	journal  []ports.Payout
	seen     map[string]struct{}
}

// NewVault returns an empty vault.
func NewVault() *Vault {
	return &Vault{
		balances: make(map[string]int64),
		seen:     make(map[string]struct{}),
	}
}

// Transfer credits p.Amount to p.Recipient. A payout without an ID is
// assigned one. Replaying an ID that was already credited is a no-op. The
// vault answers synchronously, so every failure is a definite rejection.
func (v *Vault) Transfer(ctx context.Context, p ports.Payout) error {
	if err := ctx.Err(); err != nil {
		return rejected(err)
	}
	if p.Amount <= 0 {
		return rejected(fmt.Errorf("amount %d is not positive", p.Amount))
	}
	if strings.TrimSpace(p.Recipient) == "" {
		return rejected(errors.New("missing recipient"))
	}
	if p.ID == "" {
		p.ID = uuid.NewString()
	}

	v.mu.Lock()
	defer v.mu.Unlock()

	if _, ok := v.seen[p.ID]; ok {
		return nil
	}
	if v.balances[p.Recipient] > math.MaxInt64-p.Amount {
		return rejected(fmt.Errorf("balance of %q would overflow", p.Recipient))
	}

	v.balances[p.Recipient] += p.Amount
	v.seen[p.ID] = struct{}{}
	v.journal = append(v.journal, p)
	return nil
}

func rejected(err error) error {
	return fmt.Errorf("custody: %w: %w: %w", domain.ErrUnavailable, domain.ErrPayoutRejected, err)
}

// Balance returns the total credited to account.
func (v *Vault) Balance(account string) int64 {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.balances[account]
}

// Journal returns the credited payouts in the order they were applied.
func (v *Vault) Journal() []ports.Payout {
	v.mu.Lock()
	defer v.mu.Unlock()
	return slices.Clone(v.journal)
}

// Name returns the identifier used for health registration.
func (v *Vault) Name() string {
	return "custody-vault"
}

// HealthCheck always succeeds while ctx is live; the vault has no
// external dependency.
func (v *Vault) HealthCheck(ctx context.Context) error {
	return ctx.Err()
}
