package project

import "time"

// State is the funding state of a project. It is never stored; it is derived
// from the deadline, the pledged total and the clock.
type State string

const (
	StateOpen             State = "open"
	StateClosedSuccessful State = "closed_successful"
	StateClosedFailed     State = "closed_failed"
)

// IsValid returns true if the state is one of the defined constants.
func (s State) IsValid() bool {
	switch s {
	case StateOpen, StateClosedSuccessful, StateClosedFailed:
		return true
	default:
		return false
	}
}

// String implements fmt.Stringer.
func (s State) String() string {
	return string(s)
}

// StateAt evaluates the project's state at now. The deadline instant itself
// is closed, and a pledged total equal to the goal is a success.
func (p *Project) StateAt(now time.Time) State {
	if now.Before(p.Deadline) {
		return StateOpen
	}
	if p.GoalReached() {
		return StateClosedSuccessful
	}
	return StateClosedFailed
}
