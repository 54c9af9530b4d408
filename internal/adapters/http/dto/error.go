package dto

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"maps"
	"net/http"
	"slices"

	"github.com/jsamuelsen11/crowdfund-escrow/internal/domain"
)

// ErrorResponse represents an RFC 9457 Problem Details response. Code is an
// extension member carrying the stable funding rule code, if any.
type ErrorResponse struct {
	Type     string        `json:"type"`
	Title    string        `json:"title"`
	Status   int           `json:"status"`
	Detail   string        `json:"detail,omitempty"`
	Instance string        `json:"instance,omitempty"`
	Code     string        `json:"code,omitempty"`
	Errors   []ErrorDetail `json:"errors,omitempty"`
}

// ErrorDetail represents a single field-level validation error within
// an ErrorResponse.
type ErrorDetail struct {
	Location string `json:"location"`
	Message  string `json:"message"`
	Value    any    `json:"value,omitempty"`
}

// NewErrorResponse builds the problem for err. Funding rule errors add
// their code and message; validation errors list the offending fields;
// anything unmapped becomes an opaque 500.
func NewErrorResponse(r *http.Request, err error) ErrorResponse {
	status := domainErrorToStatus(err)
	resp := NewProblem(r, status, err.Error())
	if status == http.StatusInternalServerError {
		resp.Detail = "internal server error"
	}

	var rerr *domain.RuleError
	if errors.As(err, &rerr) {
		resp.Code = rerr.Code
		resp.Detail = rerr.Message
	}

	var verr *domain.ValidationError
	if errors.As(err, &verr) {
		resp.Errors = validationFieldsToDetails(verr.Fields)
	}
	return resp
}

// NewProblem builds a bare problem for status, for responses that do not
// come from a domain error such as unknown routes.
func NewProblem(r *http.Request, status int, detail string) ErrorResponse {
	return ErrorResponse{
		Type:     "about:blank",
		Title:    http.StatusText(status),
		Status:   status,
		Detail:   detail,
		Instance: r.RequestURI,
	}
}

// WriteErrorResponse writes err as application/problem+json.
func WriteErrorResponse(w http.ResponseWriter, r *http.Request, err error) {
	WriteProblem(w, r, NewErrorResponse(r, err))
}

// WriteProblem writes resp with its status.
func WriteProblem(w http.ResponseWriter, r *http.Request, resp ErrorResponse) {
	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(resp.Status)

	if err := json.NewEncoder(w).Encode(resp); err != nil {
		slog.ErrorContext(r.Context(), "failed to encode problem response",
			slog.Int("status", resp.Status),
			slog.Any("error", err),
		)
	}
}

// domainErrorToStatus maps the domain categories onto statuses. A failed
// payout rail is the upstream's fault (502); a request that ran out of time
// is 504.
func domainErrorToStatus(err error) int {
	switch {
	case errors.Is(err, domain.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrUnauthenticated):
		return http.StatusUnauthorized
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, domain.ErrConflict):
		return http.StatusConflict
	case errors.Is(err, domain.ErrUnavailable):
		return http.StatusBadGateway
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}

// validationFieldsToDetails lists fields as body.<name> sorted by name.
func validationFieldsToDetails(fields map[string]string) []ErrorDetail {
	names := slices.Sorted(maps.Keys(fields))
	details := make([]ErrorDetail, 0, len(names))
	for _, name := range names {
		details = append(details, ErrorDetail{Location: "body." + name, Message: fields[name]})
	}
	return details
}
