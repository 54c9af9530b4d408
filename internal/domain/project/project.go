package project

import (
	"strings"
	"time"

	"github.com/jsamuelsen11/crowdfund-escrow/internal/domain"
)

// Project is a single fundraising campaign. Goal, Deadline, Owner, Title and
// Description never change after creation; PledgedAmount and Withdrawn are
// owned by the funding ledger.
type Project struct {
	ID            int64
	Owner         string
	Title         string
	Description   string
	Goal          int64
	Deadline      time.Time
	PledgedAmount int64
	Withdrawn     bool
	CreatedAt     time.Time
}

// New builds an unsaved project whose deadline is now+duration.
// Title and description are opaque and may be empty.
func New(owner, title, description string, goal int64, duration time.Duration, now time.Time) (*Project, error) {
	fields := make(map[string]string)
	if goal <= 0 {
		fields["goal"] = domain.MsgPositive
	}
	if duration <= 0 {
		fields["duration"] = domain.MsgPositive
	}
	if len(fields) > 0 {
		return nil, &domain.ValidationError{Fields: fields}
	}

	p := &Project{
		Owner:       owner,
		Title:       title,
		Description: description,
		Goal:        goal,
		Deadline:    now.Add(duration),
		CreatedAt:   now,
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return p, nil
}

// Validate checks business rules for the Project entity.
// Returns a *domain.ValidationError (wrapping domain.ErrValidation) with per-field details,
// or nil if all rules pass.
func (p *Project) Validate() error {
	fields := make(map[string]string)

	if strings.TrimSpace(p.Owner) == "" {
		fields["owner"] = domain.MsgRequired
	}
	if p.Goal <= 0 {
		fields["goal"] = domain.MsgPositive
	}
	if !p.Deadline.After(p.CreatedAt) {
		fields["deadline"] = "must be after creation time"
	}
	if p.PledgedAmount < 0 {
		fields["pledged_amount"] = "must not be negative"
	}

	if len(fields) > 0 {
		return &domain.ValidationError{Fields: fields}
	}
	return nil
}

// GoalReached reports whether the pledged total meets the goal.
func (p *Project) GoalReached() bool {
	return p.PledgedAmount >= p.Goal
}

// Snapshot is a read-only copy of a project with its state evaluated at AsOf.
type Snapshot struct {
	Project
	State State
	AsOf  time.Time
}

// SnapshotAt copies p and evaluates its state at now.
func (p *Project) SnapshotAt(now time.Time) Snapshot {
	return Snapshot{Project: *p, State: p.StateAt(now), AsOf: now}
}
