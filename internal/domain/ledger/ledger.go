// Package ledger holds the funding rules of a single project: how
// contributions accumulate and how the escrow is released by withdraw or
// refund. Functions here are pure with respect to I/O; they mutate the
// project and the Book they are handed and report the amount to pay out.
// Persisting those mutations atomically is the caller's concern.
package ledger

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/jsamuelsen11/crowdfund-escrow/internal/domain"
	"github.com/jsamuelsen11/crowdfund-escrow/internal/domain/project"
)

// Balances maps contributors to pledged amounts. A contributor with no
// entry has a balance of zero.
type Balances interface {
	Balance(contributor string) (int64, error)
	SetBalance(contributor string, amount int64) error
}

// Releases holds payouts from the moment their guarding mutation is stored
// until the payout channel confirms them.
type Releases interface {
	Held(id string) (Release, bool, error)
	Hold(r Release) error
	Clear(id string) error
}

// Book is one project's contribution ledger together with its held releases.
type Book interface {
	Balances
	Releases
}

// Release is escrow leaving a project. Its ID is fixed per settlement, so
// sending it again can never pay twice. InFlight is set while a payout
// attempt is outstanding; a parked release (InFlight false) is waiting to be
// sent again.
type Release struct {
	ID        string
	Recipient string
	Amount    int64
	InFlight  bool
}

// WithdrawalID is the release ID of a project's withdrawal.
func WithdrawalID(projectID int64) string {
	return "withdraw-" + strconv.FormatInt(projectID, 10)
}

// RefundID is the release ID of one contributor's refund.
func RefundID(projectID int64, contributor string) string {
	return "refund-" + strconv.FormatInt(projectID, 10) + "-" + contributor
}

// Entry is a single contributor's ledger entry.
type Entry struct {
	Contributor string
	Amount      int64
}

// ValidateAmount rejects non-positive contribution amounts.
func ValidateAmount(amount int64) error {
	if amount <= 0 {
		return domain.NewValidationError("amount", domain.MsgPositive)
	}
	return nil
}

// Contribute adds amount to the contributor's entry and the pledged total.
// It returns the contributor's new balance.
func Contribute(p *project.Project, book Balances, contributor string, amount int64, now time.Time) (int64, error) {
	if err := ValidateAmount(amount); err != nil {
		return 0, err
	}
	if strings.TrimSpace(contributor) == "" {
		return 0, domain.NewValidationError("contributor", domain.MsgRequired)
	}
	if p.StateAt(now) != project.StateOpen {
		return 0, domain.ErrFundingClosed
	}
	if p.PledgedAmount > math.MaxInt64-amount {
		return 0, domain.NewValidationError("amount", "would overflow the pledged total")
	}

	balance, err := book.Balance(contributor)
	if err != nil {
		return 0, fmt.Errorf("reading balance: %w", err)
	}
	balance += amount
	if err := book.SetBalance(contributor, balance); err != nil {
		return 0, fmt.Errorf("writing balance: %w", err)
	}
	p.PledgedAmount += amount
	return balance, nil
}

// Withdraw releases the escrow to the owner. The withdrawn flag is set here,
// before any transfer is issued, and the full pledged total is returned as
// the payout amount.
func Withdraw(p *project.Project, caller string, now time.Time) (int64, error) {
	if caller != p.Owner {
		return 0, domain.ErrUnauthorized
	}
	if now.Before(p.Deadline) {
		return 0, domain.ErrFundingStillOpen
	}
	if !p.GoalReached() {
		return 0, domain.ErrFundingGoalNotReached
	}
	if p.Withdrawn {
		return 0, domain.ErrAlreadyWithdrawn
	}

	p.Withdrawn = true
	return p.PledgedAmount, nil
}

// Refund zeroes the caller's entry and removes it from the pledged total,
// returning the amount to send back. The goal is checked before the deadline
// so that any caller on a successful project is rejected the same way.
func Refund(p *project.Project, book Balances, caller string, now time.Time) (int64, error) {
	if p.GoalReached() {
		return 0, domain.ErrFundingGoalWasReached
	}
	if now.Before(p.Deadline) {
		return 0, domain.ErrFundingStillOpen
	}

	balance, err := book.Balance(caller)
	if err != nil {
		return 0, fmt.Errorf("reading balance: %w", err)
	}
	if balance <= 0 {
		return 0, domain.ErrNoContribution
	}

	if err := book.SetBalance(caller, 0); err != nil {
		return 0, fmt.Errorf("writing balance: %w", err)
	}
	p.PledgedAmount -= balance
	return balance, nil
}

// SettleWithdraw applies Withdraw and holds the owner's release in flight.
// When the project is already withdrawn and its release is parked, that
// release is put back in flight and returned so the caller can send it
// again. A release still in flight leaves the call rejected.
func SettleWithdraw(p *project.Project, book Book, caller string, now time.Time) (Release, error) {
	id := WithdrawalID(p.ID)
	amount, err := Withdraw(p, caller, now)
	if errors.Is(err, domain.ErrAlreadyWithdrawn) {
		return heldOr(book, id, err)
	}
	if err != nil {
		return Release{}, err
	}
	return hold(book, Release{ID: id, Recipient: caller, Amount: amount, InFlight: true})
}

// SettleRefund applies Refund and holds the caller's release in flight. A
// caller whose entry is already zeroed gets a parked release back, as
// SettleWithdraw.
func SettleRefund(p *project.Project, book Book, caller string, now time.Time) (Release, error) {
	id := RefundID(p.ID, caller)
	amount, err := Refund(p, book, caller, now)
	if errors.Is(err, domain.ErrNoContribution) {
		return heldOr(book, id, err)
	}
	if err != nil {
		return Release{}, err
	}
	return hold(book, Release{ID: id, Recipient: caller, Amount: amount, InFlight: true})
}

// ParkRelease takes a held release out of flight after a payout attempt
// whose outcome is unknown.
func ParkRelease(book Releases, id string) error {
	r, ok, err := book.Held(id)
	if err != nil {
		return fmt.Errorf("reading release: %w", err)
	}
	if !ok {
		return fmt.Errorf("release %q is not held", id)
	}
	r.InFlight = false
	return book.Hold(r)
}

// UndoWithdraw reverses SettleWithdraw after the channel rejected the payout.
func UndoWithdraw(p *project.Project, book Releases) error {
	if !p.Withdrawn {
		return fmt.Errorf("project %d is not withdrawn", p.ID)
	}
	if err := book.Clear(WithdrawalID(p.ID)); err != nil {
		return fmt.Errorf("clearing release: %w", err)
	}
	p.Withdrawn = false
	return nil
}

// UndoRefund reverses SettleRefund after the channel rejected the payout.
func UndoRefund(p *project.Project, book Book, r Release) error {
	balance, err := book.Balance(r.Recipient)
	if err != nil {
		return fmt.Errorf("reading balance: %w", err)
	}
	if err := book.SetBalance(r.Recipient, balance+r.Amount); err != nil {
		return fmt.Errorf("writing balance: %w", err)
	}
	if err := book.Clear(r.ID); err != nil {
		return fmt.Errorf("clearing release: %w", err)
	}
	p.PledgedAmount += r.Amount
	return nil
}

func hold(book Releases, r Release) (Release, error) {
	if err := book.Hold(r); err != nil {
		return Release{}, fmt.Errorf("holding release: %w", err)
	}
	return r, nil
}

// heldOr puts the parked release id back in flight, or returns rejection
// if nothing is parked under id.
func heldOr(book Releases, id string, rejection error) (Release, error) {
	r, ok, err := book.Held(id)
	if err != nil {
		return Release{}, fmt.Errorf("reading release: %w", err)
	}
	if !ok || r.InFlight {
		return Release{}, rejection
	}
	r.InFlight = true
	return hold(book, r)
}
