// Package app provides application services that orchestrate use cases by
// coordinating between domain logic and infrastructure through port interfaces.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"go.opentelemetry.io/otel/metric"

	appctx "github.com/jsamuelsen11/crowdfund-escrow/internal/app/context"
	"github.com/jsamuelsen11/crowdfund-escrow/internal/domain"
	"github.com/jsamuelsen11/crowdfund-escrow/internal/domain/ledger"
	"github.com/jsamuelsen11/crowdfund-escrow/internal/domain/project"
	"github.com/jsamuelsen11/crowdfund-escrow/internal/platform/telemetry"
	"github.com/jsamuelsen11/crowdfund-escrow/internal/ports"
)

// Compile-time check that CrowdfundingService implements ports.CrowdfundingService.
var _ ports.CrowdfundingService = (*CrowdfundingService)(nil)

// Ledger operation names used in logs and metrics.
const (
	opCreateProject = "CreateProject"
	opContribute    = "Contribute"
	opWithdraw      = "Withdraw"
	opRefund        = "Refund"
)

// CrowdfundingService implements ports.CrowdfundingService. Each call reads
// the clock once, applies the funding rules inside a single store update,
// and, for withdraw and refund, issues the payout only after that update is
// stored. Only a payout the channel rejected compensates the settlement.
type CrowdfundingService struct {
	store   ports.ProjectStore
	payouts ports.PayoutClient
	clock   ports.Clock
	metrics *telemetry.Metrics
	logger  *slog.Logger
}

// NewCrowdfundingService creates a CrowdfundingService. metrics may be nil,
// in which case metric recording is skipped. A nil logger discards output.
func NewCrowdfundingService(
	store ports.ProjectStore,
	payouts ports.PayoutClient,
	clock ports.Clock,
	metrics *telemetry.Metrics,
	logger *slog.Logger,
) *CrowdfundingService {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &CrowdfundingService{
		store:   store,
		payouts: payouts,
		clock:   clock,
		metrics: metrics,
		logger:  logger,
	}
}

// CreateProject registers a project owned by caller with deadline now+duration.
func (s *CrowdfundingService) CreateProject(ctx context.Context, caller string, in ports.CreateProjectInput) (*project.Snapshot, error) {
	now := s.clock.Now()
	s.logger.InfoContext(ctx, "creating project",
		slog.String("owner", caller),
		slog.Int64("goal", in.Goal),
		slog.Duration("duration", in.Duration),
	)

	p, err := project.New(caller, in.Title, in.Description, in.Goal, in.Duration, now)
	if err != nil {
		s.record(ctx, opCreateProject, err)
		return nil, err
	}

	created, err := s.store.Create(ctx, p)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to create project",
			slog.String("operation", opCreateProject),
			slog.Any("error", err),
		)
		s.record(ctx, opCreateProject, err)
		return nil, err
	}

	s.record(ctx, opCreateProject, nil)
	snap := created.SnapshotAt(now)
	return &snap, nil
}

// ProjectCount returns the number of projects created so far.
func (s *CrowdfundingService) ProjectCount(ctx context.Context) (int64, error) {
	n, err := s.store.Count(ctx)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to count projects",
			slog.String("operation", "ProjectCount"),
			slog.Any("error", err),
		)
		return 0, err
	}
	return n, nil
}

// GetProject returns a snapshot of the project with its state evaluated now.
func (s *CrowdfundingService) GetProject(ctx context.Context, id int64) (*project.Snapshot, error) {
	now := s.clock.Now()

	p, err := s.store.Get(ctx, id)
	if err != nil {
		s.logLookupError(ctx, "GetProject", id, err)
		return nil, err
	}

	snap := p.SnapshotAt(now)
	return &snap, nil
}

// ListProjects returns snapshots of all projects in creation order.
func (s *CrowdfundingService) ListProjects(ctx context.Context) ([]project.Snapshot, error) {
	now := s.clock.Now()

	projects, err := s.store.List(ctx)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to list projects",
			slog.String("operation", "ListProjects"),
			slog.Any("error", err),
		)
		return nil, err
	}

	snaps := make([]project.Snapshot, len(projects))
	for i := range projects {
		snaps[i] = projects[i].SnapshotAt(now)
	}
	return snaps, nil
}

// GetContribution returns the contributor's entry, zero if none.
func (s *CrowdfundingService) GetContribution(ctx context.Context, id int64, contributor string) (int64, error) {
	amount, err := s.store.Contribution(ctx, id, contributor)
	if err != nil {
		s.logLookupError(ctx, "GetContribution", id, err)
		return 0, err
	}
	return amount, nil
}

// ListContributions returns the project's non-zero entries.
func (s *CrowdfundingService) ListContributions(ctx context.Context, id int64) ([]ledger.Entry, error) {
	entries, err := s.store.Contributions(ctx, id)
	if err != nil {
		s.logLookupError(ctx, "ListContributions", id, err)
		return nil, err
	}
	return entries, nil
}

// Contribute pledges amount from caller. The amount is validated before the
// project is looked up.
func (s *CrowdfundingService) Contribute(ctx context.Context, id int64, caller string, amount int64) (*ports.ContributionReceipt, error) {
	if err := ledger.ValidateAmount(amount); err != nil {
		s.record(ctx, opContribute, err)
		return nil, err
	}
	now := s.clock.Now()

	s.logger.InfoContext(ctx, "contributing",
		slog.Int64("project_id", id),
		slog.String("contributor", caller),
		slog.Int64("amount", amount),
	)

	receipt := &ports.ContributionReceipt{ProjectID: id, Contributor: caller, Amount: amount}
	err := s.store.Update(ctx, id, func(p *project.Project, book ledger.Book) error {
		balance, err := ledger.Contribute(p, book, caller, amount, now)
		if err != nil {
			return err
		}
		receipt.Balance = balance
		receipt.PledgedAmount = p.PledgedAmount
		return nil
	})
	s.record(ctx, opContribute, err)
	if err != nil {
		s.logOutcome(ctx, opContribute, id, err)
		return nil, err
	}

	return receipt, nil
}

// Withdraw marks the project withdrawn and then pays the pledged total to
// the owner. If an earlier withdrawal's payout ended with an unknown
// outcome, that payout is sent again under its original ID.
func (s *CrowdfundingService) Withdraw(ctx context.Context, id int64, caller string) (*ports.Payout, error) {
	now := s.clock.Now()
	payout := &ports.Payout{ProjectID: id, Kind: ports.PayoutWithdrawal}

	settle := &settlementAction{
		description: fmt.Sprintf("withdraw project %d", id),
		apply: func(ctx context.Context) error {
			return s.store.Update(ctx, id, func(p *project.Project, book ledger.Book) error {
				r, err := ledger.SettleWithdraw(p, book, caller, now)
				fillPayout(payout, r)
				return err
			})
		},
		revert: func(ctx context.Context) error {
			return s.store.Update(ctx, id, func(p *project.Project, book ledger.Book) error {
				return ledger.UndoWithdraw(p, book)
			})
		},
		park: s.parkRelease(id, payout),
	}

	return s.settle(ctx, opWithdraw, payout, settle)
}

// Refund zeroes the caller's entry and then pays it back to the caller. A
// refund whose payout ended with an unknown outcome is sent again under its
// original ID.
func (s *CrowdfundingService) Refund(ctx context.Context, id int64, caller string) (*ports.Payout, error) {
	now := s.clock.Now()
	payout := &ports.Payout{ProjectID: id, Kind: ports.PayoutRefund}

	settle := &settlementAction{
		description: fmt.Sprintf("refund %s on project %d", caller, id),
		apply: func(ctx context.Context) error {
			return s.store.Update(ctx, id, func(p *project.Project, book ledger.Book) error {
				r, err := ledger.SettleRefund(p, book, caller, now)
				fillPayout(payout, r)
				return err
			})
		},
		revert: func(ctx context.Context) error {
			return s.store.Update(ctx, id, func(p *project.Project, book ledger.Book) error {
				return ledger.UndoRefund(p, book, releaseOf(payout))
			})
		},
		park: s.parkRelease(id, payout),
	}

	return s.settle(ctx, opRefund, payout, settle)
}

// settle stores the settlement with its release in flight and then
// transfers the payout, as one appctx commit. The settlement is rolled back
// only when the channel definitely rejected the payout; any other failure
// parks the release so the next withdraw or refund call resends it under the
// same ID. A sent payout's release is cleared afterwards.
func (s *CrowdfundingService) settle(ctx context.Context, op string, payout *ports.Payout, settle *settlementAction) (*ports.Payout, error) {
	s.logger.InfoContext(ctx, "settling",
		slog.String("operation", op),
		slog.Int64("project_id", payout.ProjectID),
	)

	transfer := &transferAction{client: s.payouts, payout: payout}
	settle.inDoubt = transfer.inDoubt

	rc := appctx.New(ctx)
	if err := rc.AddAction(settle, transfer); err != nil {
		return nil, err
	}

	err := rc.Commit(ctx)
	s.record(ctx, op, err)
	if err != nil {
		if transfer.inDoubt() {
			s.logger.WarnContext(ctx, "payout outcome unknown, release parked for resend",
				slog.String("operation", op),
				slog.Int64("project_id", payout.ProjectID),
				slog.String("payout_id", payout.ID),
				slog.Any("error", err),
			)
		}
		s.logOutcome(ctx, op, payout.ProjectID, err)
		return nil, unwrapCommit(err)
	}

	s.confirm(ctx, op, payout)
	if s.metrics != nil {
		s.metrics.PayoutAmount.Add(ctx, payout.Amount,
			metric.WithAttributes(telemetry.AttrPayoutKind.String(string(payout.Kind))),
		)
	}
	s.logger.InfoContext(ctx, "payout sent",
		slog.String("operation", op),
		slog.Int64("project_id", payout.ProjectID),
		slog.String("payout_id", payout.ID),
		slog.Int64("amount", payout.Amount),
	)
	return payout, nil
}

func (s *CrowdfundingService) parkRelease(id int64, payout *ports.Payout) func(context.Context) error {
	return func(ctx context.Context) error {
		return s.store.Update(ctx, id, func(_ *project.Project, book ledger.Book) error {
			return ledger.ParkRelease(book, payout.ID)
		})
	}
}

// confirm clears the release of a sent payout. If that fails the release
// stays in flight, which still rejects further calls for it.
func (s *CrowdfundingService) confirm(ctx context.Context, op string, payout *ports.Payout) {
	err := s.store.Update(context.WithoutCancel(ctx), payout.ProjectID, func(_ *project.Project, book ledger.Book) error {
		return book.Clear(payout.ID)
	})
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to clear held release",
			slog.String("operation", op),
			slog.Int64("project_id", payout.ProjectID),
			slog.String("payout_id", payout.ID),
			slog.Any("error", err),
		)
	}
}

// unwrapCommit strips the appctx step wrapper so callers see the ledger or
// payout error directly.
func unwrapCommit(err error) error {
	if inner := errors.Unwrap(err); inner != nil {
		return inner
	}
	return err
}

// logLookupError logs read failures. A missing project is expected and
// is not logged.
func (s *CrowdfundingService) logLookupError(ctx context.Context, op string, id int64, err error) {
	if errors.Is(err, domain.ErrNotFound) {
		return
	}
	s.logger.ErrorContext(ctx, "failed to read project",
		slog.String("operation", op),
		slog.Int64("id", id),
		slog.Any("error", err),
	)
}

// logOutcome logs a failed ledger call: business rejections at WARN,
// everything else at ERROR.
func (s *CrowdfundingService) logOutcome(ctx context.Context, op string, id int64, err error) {
	level := slog.LevelError
	msg := "ledger operation failed"
	if isRejection(err) {
		level = slog.LevelWarn
		msg = "ledger operation rejected"
	}
	s.logger.Log(ctx, level, msg,
		slog.String("operation", op),
		slog.Int64("project_id", id),
		slog.Any("error", err),
	)
}

// record counts a ledger operation by result. Safe with nil metrics.
func (s *CrowdfundingService) record(ctx context.Context, op string, err error) {
	if s.metrics == nil {
		return
	}
	result := "ok"
	switch {
	case err == nil:
	case isRejection(err):
		result = "rejected"
	default:
		result = "failed"
	}
	s.metrics.LedgerOperations.Add(ctx, 1, metric.WithAttributes(
		telemetry.AttrOperation.String(op),
		telemetry.AttrResult.String(result),
	))
}

func isRejection(err error) bool {
	return errors.Is(err, domain.ErrValidation) ||
		errors.Is(err, domain.ErrNotFound) ||
		errors.Is(err, domain.ErrConflict) ||
		errors.Is(err, domain.ErrForbidden)
}
