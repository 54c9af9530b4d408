package dto

import (
	"time"

	"github.com/jsamuelsen11/crowdfund-escrow/internal/domain"
	"github.com/jsamuelsen11/crowdfund-escrow/internal/ports"
)

// maxDurationSeconds caps the funding period at roughly a century so the
// deadline always fits in a time.Duration.
const maxDurationSeconds = 100 * 365 * 24 * 60 * 60

// CreateProjectRequest represents the JSON body for creating a new project.
// Title and description are opaque and may be empty.
type CreateProjectRequest struct {
	Title           string `json:"title"`
	Description     string `json:"description"`
	Goal            int64  `json:"goal"`
	DurationSeconds int64  `json:"duration_seconds"`
}

// Validate checks that the goal and duration are positive.
// Returns a *domain.ValidationError if any checks fail.
func (r *CreateProjectRequest) Validate() error {
	fields := make(map[string]string)

	if r.Goal <= 0 {
		fields["goal"] = domain.MsgPositive
	}
	switch {
	case r.DurationSeconds <= 0:
		fields["duration_seconds"] = domain.MsgPositive
	case r.DurationSeconds > maxDurationSeconds:
		fields["duration_seconds"] = "is too large"
	}

	if len(fields) > 0 {
		return &domain.ValidationError{Fields: fields}
	}
	return nil
}

// ToInput converts the request to the service input.
func (r *CreateProjectRequest) ToInput() ports.CreateProjectInput {
	return ports.CreateProjectInput{
		Title:       r.Title,
		Description: r.Description,
		Goal:        r.Goal,
		Duration:    time.Duration(r.DurationSeconds) * time.Second,
	}
}

// ContributeRequest represents the JSON body for pledging funds to a project.
type ContributeRequest struct {
	Amount int64 `json:"amount"`
}

// Validate checks that the amount is positive.
func (r *ContributeRequest) Validate() error {
	if r.Amount <= 0 {
		return domain.NewValidationError("amount", domain.MsgPositive)
	}
	return nil
}
