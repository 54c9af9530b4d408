// Package handlers provides HTTP request handlers for the service's API endpoints.
package handlers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/jsamuelsen11/crowdfund-escrow/internal/adapters/http/dto"
	"github.com/jsamuelsen11/crowdfund-escrow/internal/ports"
)

// ProjectHandler handles HTTP requests for the project registry and the
// per-project funding ledger.
type ProjectHandler struct {
	svc ports.CrowdfundingService
}

// NewProjectHandler creates a new ProjectHandler with the given service port.
func NewProjectHandler(svc ports.CrowdfundingService) *ProjectHandler {
	return &ProjectHandler{svc: svc}
}

// CreateProject handles POST /api/v1/projects. The caller becomes the owner.
func (h *ProjectHandler) CreateProject(w http.ResponseWriter, r *http.Request) {
	caller, ok := requireCaller(w, r)
	if !ok {
		return
	}

	var req dto.CreateProjectRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	created, err := h.svc.CreateProject(r.Context(), caller, req.ToInput())
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusCreated, dto.ToProjectResponse(created))
}

// ListProjects handles GET /api/v1/projects.
func (h *ProjectHandler) ListProjects(w http.ResponseWriter, r *http.Request) {
	snapshots, err := h.svc.ListProjects(r.Context())
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, dto.ToProjectListResponse(snapshots))
}

// CountProjects handles GET /api/v1/projects/count.
func (h *ProjectHandler) CountProjects(w http.ResponseWriter, r *http.Request) {
	count, err := h.svc.ProjectCount(r.Context())
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, dto.ProjectCountResponse{Count: count})
}

// GetProject handles GET /api/v1/projects/{id}.
func (h *ProjectHandler) GetProject(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r, "id")
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	snapshot, err := h.svc.GetProject(r.Context(), id)
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, dto.ToProjectResponse(snapshot))
}

// ListContributions handles GET /api/v1/projects/{id}/contributions.
func (h *ProjectHandler) ListContributions(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r, "id")
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	entries, err := h.svc.ListContributions(r.Context(), id)
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, dto.ToContributionListResponse(id, entries))
}

// GetContribution handles GET /api/v1/projects/{id}/contributions/{contributor}.
// An account that never contributed reads as zero.
func (h *ProjectHandler) GetContribution(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r, "id")
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}
	contributor := chi.URLParam(r, "contributor")

	amount, err := h.svc.GetContribution(r.Context(), id, contributor)
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, dto.ContributionResponse{
		ProjectID:   id,
		Contributor: contributor,
		Amount:      amount,
	})
}

// Contribute handles POST /api/v1/projects/{id}/contributions.
func (h *ProjectHandler) Contribute(w http.ResponseWriter, r *http.Request) {
	caller, ok := requireCaller(w, r)
	if !ok {
		return
	}

	id, err := parseID(r, "id")
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	var req dto.ContributeRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	receipt, err := h.svc.Contribute(r.Context(), id, caller, req.Amount)
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusCreated, dto.ToContributionReceiptResponse(receipt))
}

// Withdraw handles POST /api/v1/projects/{id}/withdraw.
func (h *ProjectHandler) Withdraw(w http.ResponseWriter, r *http.Request) {
	h.settle(w, r, h.svc.Withdraw)
}

// Refund handles POST /api/v1/projects/{id}/refund.
func (h *ProjectHandler) Refund(w http.ResponseWriter, r *http.Request) {
	h.settle(w, r, h.svc.Refund)
}

type settleFunc func(ctx context.Context, id int64, caller string) (*ports.Payout, error)

// settle runs a payout operation for the caller and writes the payout.
func (h *ProjectHandler) settle(w http.ResponseWriter, r *http.Request, fn settleFunc) {
	caller, ok := requireCaller(w, r)
	if !ok {
		return
	}

	id, err := parseID(r, "id")
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	payout, err := fn(r.Context(), id, caller)
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, dto.ToPayoutResponse(payout))
}
