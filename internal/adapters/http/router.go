// Package http is the inbound HTTP adapter of the escrow service: the chi
// router, the server lifecycle, handlers, DTOs and middleware.
package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/jsamuelsen11/crowdfund-escrow/internal/adapters/http/dto"
	"github.com/jsamuelsen11/crowdfund-escrow/internal/adapters/http/handlers"
)

// NewRouter registers the health and /api/v1 routes behind middlewares,
// which apply to every request in order. mutating wraps only the POST
// routes that create projects or move funds, normally the idempotency
// middleware; nil leaves them unwrapped. Unknown paths and methods answer
// with problem+json like every other error.
func NewRouter(
	projectHandler *handlers.ProjectHandler,
	healthHandler *handlers.HealthHandler,
	mutating func(http.Handler) http.Handler,
	middlewares ...func(http.Handler) http.Handler,
) http.Handler {
	r := chi.NewRouter()
	r.Use(middlewares...)
	r.NotFound(func(w http.ResponseWriter, req *http.Request) {
		dto.WriteProblem(w, req, dto.NewProblem(req, http.StatusNotFound, "no route for "+req.URL.Path))
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, req *http.Request) {
		dto.WriteProblem(w, req, dto.NewProblem(req, http.StatusMethodNotAllowed, req.Method+" is not supported on "+req.URL.Path))
	})

	r.Get("/health/live", healthHandler.Liveness)
	r.Get("/health/ready", healthHandler.Readiness)

	r.Route("/api/v1", func(r chi.Router) {
		// count is registered ahead of {id}.
		r.Get("/projects", projectHandler.ListProjects)
		r.Get("/projects/count", projectHandler.CountProjects)
		r.Get("/projects/{id}", projectHandler.GetProject)
		r.Get("/projects/{id}/contributions", projectHandler.ListContributions)
		r.Get("/projects/{id}/contributions/{contributor}", projectHandler.GetContribution)

		r.Group(func(r chi.Router) {
			if mutating != nil {
				r.Use(mutating)
			}
			r.Post("/projects", projectHandler.CreateProject)
			r.Post("/projects/{id}/contributions", projectHandler.Contribute)
			r.Post("/projects/{id}/withdraw", projectHandler.Withdraw)
			r.Post("/projects/{id}/refund", projectHandler.Refund)
		})
	})

	return r
}
