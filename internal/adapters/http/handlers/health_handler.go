package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/jsamuelsen11/crowdfund-escrow/internal/platform/logging"
	"github.com/jsamuelsen11/crowdfund-escrow/internal/ports"
)

// readinessBudget caps one readiness probe. A dependency that does not answer
// in time counts as down.
const readinessBudget = 3 * time.Second

const (
	checkOK        = "ok"
	statusAlive    = "alive"
	statusReady    = "ready"
	statusDegraded = "degraded"
)

// HealthResponse is the body of both probe endpoints. Checks is omitted by
// the liveness probe.
type HealthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks,omitempty"`
}

// HealthHandler serves the liveness and readiness probes.
type HealthHandler struct {
	registry ports.HealthRegistry
}

// NewHealthHandler creates a HealthHandler backed by registry.
func NewHealthHandler(registry ports.HealthRegistry) *HealthHandler {
	return &HealthHandler{registry: registry}
}

// Liveness handles GET /health/live. The process answering is enough.
func (h *HealthHandler) Liveness(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, HealthResponse{Status: statusAlive})
}

// Readiness handles GET /health/ready. It answers 503 while the project
// store, the payout channel or the idempotency cache is unreachable, since
// ledger calls would fail with ErrUnavailable.
func (h *HealthHandler) Readiness(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), readinessBudget)
	defer cancel()

	results := h.registry.CheckAll(ctx)

	resp := HealthResponse{Status: statusReady, Checks: make(map[string]string, len(results))}
	code := http.StatusOK
	for name, err := range results {
		if err == nil {
			resp.Checks[name] = checkOK
			continue
		}
		resp.Checks[name] = err.Error()
		resp.Status = statusDegraded
		code = http.StatusServiceUnavailable
		logging.FromContext(r.Context()).WarnContext(r.Context(), "dependency not ready",
			slog.String("dependency", name),
			slog.Any("error", err),
		)
	}

	writeJSON(w, r, code, resp)
}
