package http_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/mock"

	adapthttp "github.com/jsamuelsen11/crowdfund-escrow/internal/adapters/http"
	"github.com/jsamuelsen11/crowdfund-escrow/internal/adapters/http/handlers"
	"github.com/jsamuelsen11/crowdfund-escrow/internal/domain/project"
	"github.com/jsamuelsen11/crowdfund-escrow/mocks"
)

const mutatingHeader = "X-Mutating"

func markMutating(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set(mutatingHeader, "1")
		next.ServeHTTP(w, r)
	})
}

func newTestRouter(t *testing.T) (http.Handler, *mocks.MockCrowdfundingService) {
	t.Helper()
	svc := mocks.NewMockCrowdfundingService(t)
	registry := mocks.NewMockHealthRegistry(t)

	ph := handlers.NewProjectHandler(svc)
	hh := handlers.NewHealthHandler(registry)

	router := adapthttp.NewRouter(ph, hh, markMutating)
	return router, svc
}

func TestRouter_AllRoutesRegistered(t *testing.T) {
	t.Parallel()

	router, _ := newTestRouter(t)

	expectedRoutes := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/health/live"},
		{http.MethodGet, "/health/ready"},
		{http.MethodGet, "/api/v1/projects"},
		{http.MethodPost, "/api/v1/projects"},
		{http.MethodGet, "/api/v1/projects/count"},
		{http.MethodGet, "/api/v1/projects/{id}"},
		{http.MethodGet, "/api/v1/projects/{id}/contributions"},
		{http.MethodPost, "/api/v1/projects/{id}/contributions"},
		{http.MethodGet, "/api/v1/projects/{id}/contributions/{contributor}"},
		{http.MethodPost, "/api/v1/projects/{id}/withdraw"},
		{http.MethodPost, "/api/v1/projects/{id}/refund"},
	}

	chiRouter, ok := router.(*chi.Mux)
	if !ok {
		t.Fatal("router is not *chi.Mux")
	}

	registered := make(map[string]bool)
	err := chi.Walk(chiRouter, func(method, route string, _ http.Handler, _ ...func(http.Handler) http.Handler) error {
		registered[method+" "+route] = true
		return nil
	})
	if err != nil {
		t.Fatalf("chi.Walk error: %v", err)
	}

	for _, expected := range expectedRoutes {
		key := expected.method + " " + expected.path
		if !registered[key] {
			t.Errorf("route %s not registered", key)
		}
	}
}

func TestRouter_MiddlewareApplied(t *testing.T) {
	t.Parallel()

	svc := mocks.NewMockCrowdfundingService(t)
	registry := mocks.NewMockHealthRegistry(t)

	ph := handlers.NewProjectHandler(svc)
	hh := handlers.NewHealthHandler(registry)

	called := false
	testMW := func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			called = true
			next.ServeHTTP(w, r)
		})
	}

	router := adapthttp.NewRouter(ph, hh, nil, testMW)

	registry.EXPECT().CheckAll(mock.Anything).Return(map[string]error{})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/health/ready", nil)
	router.ServeHTTP(rec, req)

	if !called {
		t.Error("middleware was not called")
	}
}

func TestRouter_MutatingMiddlewareOnlyOnPosts(t *testing.T) {
	t.Parallel()

	router, svc := newTestRouter(t)

	svc.EXPECT().ProjectCount(mock.Anything).Return(int64(0), nil)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/projects/count", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("GET status = %d, want %d", rec.Code, http.StatusOK)
	}
	if rec.Header().Get(mutatingHeader) != "" {
		t.Error("mutating middleware ran on a GET route")
	}

	// No caller header: the handler rejects, but the middleware still wraps it.
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v1/projects/0/withdraw", nil))
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("POST status = %d, want %d", rec.Code, http.StatusUnauthorized)
	}
	if rec.Header().Get(mutatingHeader) != "1" {
		t.Error("mutating middleware did not run on a POST route")
	}
}

func TestRouter_IntegrationListProjects(t *testing.T) {
	t.Parallel()

	router, svc := newTestRouter(t)

	svc.EXPECT().ListProjects(mock.Anything).Return([]project.Snapshot{}, nil)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/projects", nil)
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusOK)
	}
}

func TestRouter_NotFoundReturns404(t *testing.T) {
	t.Parallel()

	router, _ := newTestRouter(t)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/nonexistent", nil)
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusNotFound)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/problem+json" {
		t.Errorf("Content-Type = %q, want application/problem+json", ct)
	}
}

func TestRouter_MethodNotAllowed(t *testing.T) {
	t.Parallel()

	router, _ := newTestRouter(t)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPut, "/api/v1/projects", nil)
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusMethodNotAllowed)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/problem+json" {
		t.Errorf("Content-Type = %q, want application/problem+json", ct)
	}
}
