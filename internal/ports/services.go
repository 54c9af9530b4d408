package ports

import (
	"context"
	"time"

	"github.com/jsamuelsen11/crowdfund-escrow/internal/domain/ledger"
	"github.com/jsamuelsen11/crowdfund-escrow/internal/domain/project"
)

// CrowdfundingService defines the service port for the project registry and
// its funding ledgers. Implemented by the application layer; called by
// inbound adapters (handlers). The caller argument is the authenticated
// account performing the operation.
type CrowdfundingService interface {
	// CreateProject registers a new project owned by caller and returns its
	// snapshot. IDs are assigned densely in creation order starting at 0.
	// Returns domain.ErrValidation if goal or duration is not positive.
	CreateProject(ctx context.Context, caller string, in CreateProjectInput) (*project.Snapshot, error)

	// ProjectCount returns the number of projects created so far.
	ProjectCount(ctx context.Context) (int64, error)

	// GetProject returns a snapshot of a project with its state evaluated now.
	// Returns domain.ErrNotFound if the project does not exist.
	GetProject(ctx context.Context, id int64) (*project.Snapshot, error)

	// ListProjects returns snapshots of all projects in creation order.
	ListProjects(ctx context.Context) ([]project.Snapshot, error)

	// GetContribution returns the contributor's current ledger entry (0 if none).
	// Returns domain.ErrNotFound if the project does not exist.
	GetContribution(ctx context.Context, id int64, contributor string) (int64, error)

	// ListContributions returns the non-zero ledger entries of a project.
	// Returns domain.ErrNotFound if the project does not exist.
	ListContributions(ctx context.Context, id int64) ([]ledger.Entry, error)

	// Contribute pledges amount from caller to the project.
	// Returns domain.ErrValidation for a non-positive amount,
	// domain.ErrNotFound for an unknown project and
	// domain.ErrFundingClosed once the deadline has been reached.
	Contribute(ctx context.Context, id int64, caller string, amount int64) (*ContributionReceipt, error)

	// Withdraw pays the full pledged total to the project owner.
	// Returns domain.ErrUnauthorized, domain.ErrFundingStillOpen,
	// domain.ErrFundingGoalNotReached or domain.ErrAlreadyWithdrawn, checked
	// in that order, and domain.ErrUnavailable if the payout fails.
	Withdraw(ctx context.Context, id int64, caller string) (*Payout, error)

	// Refund returns the caller's entry on a failed project.
	// Returns domain.ErrFundingGoalWasReached, domain.ErrFundingStillOpen or
	// domain.ErrNoContribution, checked in that order, and
	// domain.ErrUnavailable if the payout fails.
	Refund(ctx context.Context, id int64, caller string) (*Payout, error)
}

// CreateProjectInput carries the caller-supplied fields of a new project.
type CreateProjectInput struct {
	Title       string
	Description string
	Goal        int64
	Duration    time.Duration
}

// ContributionReceipt describes an accepted contribution.
type ContributionReceipt struct {
	ProjectID     int64
	Contributor   string
	Amount        int64
	Balance       int64
	PledgedAmount int64
}
