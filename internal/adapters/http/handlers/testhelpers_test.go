package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/jsamuelsen11/crowdfund-escrow/internal/adapters/http/middleware"
	"github.com/jsamuelsen11/crowdfund-escrow/internal/domain/project"
)

const (
	testOwner       = "alice"
	testContributor = "bob"
)

var testTime = time.Date(2026, 2, 12, 15, 4, 5, 0, time.UTC)

func withChiParams(r *http.Request, params map[string]string) *http.Request {
	rctx := chi.NewRouteContext()
	for k, v := range params {
		rctx.URLParams.Add(k, v)
	}
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

func withCaller(r *http.Request, caller string) *http.Request {
	return r.WithContext(middleware.WithCaller(r.Context(), caller))
}

func validSnapshot() project.Snapshot {
	p := project.Project{
		ID:            0,
		Owner:         testOwner,
		Title:         "Solar roof",
		Description:   "Panels for the community hall",
		Goal:          10,
		Deadline:      testTime.Add(time.Hour),
		PledgedAmount: 4,
		CreatedAt:     testTime,
	}
	return p.SnapshotAt(testTime)
}

func jsonBody(t *testing.T, v any) *bytes.Buffer {
	t.Helper()
	buf := &bytes.Buffer{}
	if err := json.NewEncoder(buf).Encode(v); err != nil {
		t.Fatalf("failed to encode JSON body: %v", err)
	}
	return buf
}

func decodeJSON[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var result T
	if err := json.NewDecoder(rec.Body).Decode(&result); err != nil {
		t.Fatalf("failed to decode JSON response: %v", err)
	}
	return result
}

func requireStatus(t *testing.T, rec *httptest.ResponseRecorder, want int) {
	t.Helper()
	if rec.Code != want {
		t.Errorf("status = %d, want %d; body = %s", rec.Code, want, rec.Body.String())
	}
}
