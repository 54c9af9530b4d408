package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/jsamuelsen11/crowdfund-escrow/internal/adapters/http/dto"
	"github.com/jsamuelsen11/crowdfund-escrow/internal/adapters/http/middleware"
	"github.com/jsamuelsen11/crowdfund-escrow/internal/domain"
	"github.com/jsamuelsen11/crowdfund-escrow/internal/platform/logging"
)

// maxJSONBodyBytes caps request bodies. Create and contribute payloads are
// a few hundred bytes at most.
const maxJSONBodyBytes = 64 << 10

var errMissingCaller = fmt.Errorf("missing %s header: %w", middleware.HeaderAccountID, domain.ErrUnauthenticated)

// parseID reads a project id path parameter. Well-formed ids that name no
// project are left for the service to reject with not found.
func parseID(r *http.Request, param string) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, param), 10, 64)
	if err != nil {
		return 0, &domain.ValidationError{Fields: map[string]string{param: "must be a valid integer"}}
	}
	return id, nil
}

// requireCaller returns the account from X-Account-ID or answers 401.
func requireCaller(w http.ResponseWriter, r *http.Request) (string, bool) {
	caller := middleware.CallerFromContext(r.Context())
	if caller == "" {
		dto.WriteErrorResponse(w, r, errMissingCaller)
		return "", false
	}
	return caller, true
}

func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logging.FromContext(r.Context()).ErrorContext(r.Context(), "failed to encode response",
			slog.Int("status", status),
			slog.Any("error", err),
		)
	}
}

// validatable is implemented by request DTOs.
type validatable interface {
	Validate() error
}

// decodeAndValidate reads exactly one JSON object into dst and validates
// it. Unknown fields, trailing data and oversized bodies are rejected with
// 400 so a mistyped "ammount" cannot silently contribute zero.
func decodeAndValidate[T validatable](w http.ResponseWriter, r *http.Request, dst T) bool {
	if err := decodeStrict(http.MaxBytesReader(w, r.Body, maxJSONBodyBytes), dst); err != nil {
		dto.WriteErrorResponse(w, r, &domain.ValidationError{Fields: map[string]string{"body": err.Error()}})
		return false
	}
	if err := dst.Validate(); err != nil {
		dto.WriteErrorResponse(w, r, err)
		return false
	}
	return true
}

func decodeStrict(body io.Reader, dst any) error {
	dec := json.NewDecoder(body)
	dec.DisallowUnknownFields()

	if err := dec.Decode(dst); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return fmt.Errorf("must not exceed %d bytes", tooLarge.Limit)
		}
		return errors.New("invalid JSON")
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return errors.New("must contain a single JSON object")
	}
	return nil
}
