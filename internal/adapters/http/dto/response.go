// Package dto provides HTTP request/response data transfer objects and
// RFC 9457 Problem Details error responses for the inbound HTTP adapter layer.
package dto

import (
	"time"

	"github.com/jsamuelsen11/crowdfund-escrow/internal/domain/ledger"
	"github.com/jsamuelsen11/crowdfund-escrow/internal/domain/project"
	"github.com/jsamuelsen11/crowdfund-escrow/internal/ports"
)

// ProjectResponse represents a single project snapshot in HTTP responses.
type ProjectResponse struct {
	ID            int64  `json:"id"`
	Owner         string `json:"owner"`
	Title         string `json:"title"`
	Description   string `json:"description"`
	Goal          int64  `json:"goal"`
	PledgedAmount int64  `json:"pledged_amount"`
	Deadline      string `json:"deadline"`
	Withdrawn     bool   `json:"withdrawn"`
	State         string `json:"state"`
	CreatedAt     string `json:"created_at"`
	AsOf          string `json:"as_of"`
}

// ProjectListResponse represents a list of projects in HTTP responses.
type ProjectListResponse struct {
	Projects []ProjectResponse `json:"projects"`
	Count    int               `json:"count"`
}

// ProjectCountResponse is the body of the project count endpoint.
type ProjectCountResponse struct {
	Count int64 `json:"count"`
}

// ToProjectResponse converts a project snapshot to an HTTP response DTO.
func ToProjectResponse(s *project.Snapshot) ProjectResponse {
	return ProjectResponse{
		ID:            s.ID,
		Owner:         s.Owner,
		Title:         s.Title,
		Description:   s.Description,
		Goal:          s.Goal,
		PledgedAmount: s.PledgedAmount,
		Deadline:      s.Deadline.Format(time.RFC3339),
		Withdrawn:     s.Withdrawn,
		State:         s.State.String(),
		CreatedAt:     s.CreatedAt.Format(time.RFC3339),
		AsOf:          s.AsOf.Format(time.RFC3339),
	}
}

// ToProjectListResponse converts snapshots to an HTTP list response DTO.
func ToProjectListResponse(snapshots []project.Snapshot) ProjectListResponse {
	items := make([]ProjectResponse, len(snapshots))
	for i := range snapshots {
		items[i] = ToProjectResponse(&snapshots[i])
	}
	return ProjectListResponse{
		Projects: items,
		Count:    len(items),
	}
}

// ContributionResponse is a single ledger entry.
type ContributionResponse struct {
	ProjectID   int64  `json:"project_id"`
	Contributor string `json:"contributor"`
	Amount      int64  `json:"amount"`
}

// ContributionListResponse lists the non-zero entries of a project.
type ContributionListResponse struct {
	ProjectID     int64                  `json:"project_id"`
	Contributions []ContributionResponse `json:"contributions"`
	Count         int                    `json:"count"`
}

// ToContributionListResponse converts ledger entries to an HTTP response DTO.
func ToContributionListResponse(projectID int64, entries []ledger.Entry) ContributionListResponse {
	items := make([]ContributionResponse, len(entries))
	for i, e := range entries {
		items[i] = ContributionResponse{ProjectID: projectID, Contributor: e.Contributor, Amount: e.Amount}
	}
	return ContributionListResponse{ProjectID: projectID, Contributions: items, Count: len(items)}
}

// ContributionReceiptResponse acknowledges an accepted contribution.
type ContributionReceiptResponse struct {
	ProjectID     int64  `json:"project_id"`
	Contributor   string `json:"contributor"`
	Amount        int64  `json:"amount"`
	Balance       int64  `json:"balance"`
	PledgedAmount int64  `json:"pledged_amount"`
}

// ToContributionReceiptResponse converts a receipt to an HTTP response DTO.
func ToContributionReceiptResponse(r *ports.ContributionReceipt) ContributionReceiptResponse {
	return ContributionReceiptResponse{
		ProjectID:     r.ProjectID,
		Contributor:   r.Contributor,
		Amount:        r.Amount,
		Balance:       r.Balance,
		PledgedAmount: r.PledgedAmount,
	}
}

// PayoutResponse describes funds released by a withdraw or refund.
type PayoutResponse struct {
	ID        string `json:"id"`
	ProjectID int64  `json:"project_id"`
	Kind      string `json:"kind"`
	Recipient string `json:"recipient"`
	Amount    int64  `json:"amount"`
}

// ToPayoutResponse converts a payout to an HTTP response DTO.
func ToPayoutResponse(p *ports.Payout) PayoutResponse {
	return PayoutResponse{
		ID:        p.ID,
		ProjectID: p.ProjectID,
		Kind:      string(p.Kind),
		Recipient: p.Recipient,
		Amount:    p.Amount,
	}
}
