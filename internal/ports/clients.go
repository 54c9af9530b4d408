package ports

import (
	"context"
	"time"
)

// PayoutKind distinguishes the two ways escrowed funds leave a project.
type PayoutKind string

const (
	PayoutWithdrawal PayoutKind = "withdrawal"
	PayoutRefund     PayoutKind = "refund"
)

// Payout is a single outbound transfer of escrowed funds.
type Payout struct {
	ID        string
	ProjectID int64
	Kind      PayoutKind
	Recipient string
	Amount    int64
}

// PayoutClient defines the client port for the value transfer channel.
// Implemented by the custody vault and the payout rail client; called by
// the application layer only after the guarding ledger mutation is stored.
type PayoutClient interface {
	// Transfer sends payout.Amount to payout.Recipient. Payout.ID is fixed per
	// settlement and resent unchanged after an unknown outcome, so the
	// channel must apply each ID at most once.
	// Returns domain.ErrUnavailable if the channel cannot complete the
	// transfer, additionally wrapping domain.ErrPayoutRejected when it
	// certainly did not apply it.
	Transfer(ctx context.Context, payout Payout) error
}

// Clock supplies the current time. The core reads it once per call.
type Clock interface {
	Now() time.Time
}
