package dto_test

import (
	"errors"
	"testing"
	"time"

	"github.com/jsamuelsen11/crowdfund-escrow/internal/adapters/http/dto"
	"github.com/jsamuelsen11/crowdfund-escrow/internal/domain"
)

// requireValidationField asserts err wraps ErrValidation and the resulting
// ValidationError contains the expected field key.
func requireValidationField(t *testing.T, err error, field string) {
	t.Helper()

	if err == nil {
		t.Fatal("Validate() = nil, want error")
	}
	if !errors.Is(err, domain.ErrValidation) {
		t.Errorf("errors.Is(err, ErrValidation) = false, got %v", err)
	}

	var verr *domain.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("errors.As(err, *ValidationError) = false, got %T", err)
	}
	if _, ok := verr.Fields[field]; !ok {
		t.Errorf("ValidationError.Fields missing key %q, got %v", field, verr.Fields)
	}
}

func TestCreateProjectRequest_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		req       dto.CreateProjectRequest
		wantErr   bool
		wantField string
	}{
		{
			name:    "valid request passes",
			req:     dto.CreateProjectRequest{Title: "Kiln", Description: "Solar", Goal: 10, DurationSeconds: 604800},
			wantErr: false,
		},
		{
			name:    "empty title and description pass",
			req:     dto.CreateProjectRequest{Goal: 1, DurationSeconds: 1},
			wantErr: false,
		},
		{
			name:      "zero goal fails",
			req:       dto.CreateProjectRequest{Goal: 0, DurationSeconds: 60},
			wantErr:   true,
			wantField: "goal",
		},
		{
			name:      "negative goal fails",
			req:       dto.CreateProjectRequest{Goal: -1, DurationSeconds: 60},
			wantErr:   true,
			wantField: "goal",
		},
		{
			name:      "zero duration fails",
			req:       dto.CreateProjectRequest{Goal: 10, DurationSeconds: 0},
			wantErr:   true,
			wantField: "duration_seconds",
		},
		{
			name:      "huge duration fails",
			req:       dto.CreateProjectRequest{Goal: 10, DurationSeconds: 1 << 40},
			wantErr:   true,
			wantField: "duration_seconds",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := tt.req.Validate()
			if !tt.wantErr {
				if err != nil {
					t.Errorf("Validate() = %v, want nil", err)
				}
				return
			}
			requireValidationField(t, err, tt.wantField)
		})
	}
}

func TestCreateProjectRequest_ToInput(t *testing.T) {
	t.Parallel()

	req := dto.CreateProjectRequest{Title: "t", Description: "d", Goal: 10, DurationSeconds: 7 * 24 * 60 * 60}
	in := req.ToInput()

	if in.Duration != 7*24*time.Hour {
		t.Errorf("Duration = %v, want %v", in.Duration, 7*24*time.Hour)
	}
	if in.Goal != 10 || in.Title != "t" || in.Description != "d" {
		t.Errorf("ToInput() = %+v, fields not copied", in)
	}
}

func TestContributeRequest_Validate(t *testing.T) {
	t.Parallel()

	if err := (&dto.ContributeRequest{Amount: 1}).Validate(); err != nil {
		t.Errorf("Validate() = %v, want nil", err)
	}
	requireValidationField(t, (&dto.ContributeRequest{Amount: 0}).Validate(), "amount")
	requireValidationField(t, (&dto.ContributeRequest{Amount: -3}).Validate(), "amount")
}
