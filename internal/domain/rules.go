package domain

// RuleError is a rejected funding operation. Code is stable and safe to expose
// to API clients; Unwrap yields the category sentinel (ErrForbidden or
// ErrConflict) used for transport mapping.
type RuleError struct {
	Code     string
	Message  string
	category error
}

func (e *RuleError) Error() string {
	return e.Message
}

func (e *RuleError) Unwrap() error {
	return e.category
}

// Funding rule violations. Compare with errors.Is.
var (
	ErrUnauthorized = &RuleError{
		Code: "unauthorized", Message: "caller is not the project owner", category: ErrForbidden,
	}
	ErrFundingClosed = &RuleError{
		Code: "funding_closed", Message: "funding period has ended", category: ErrConflict,
	}
	ErrFundingStillOpen = &RuleError{
		Code: "funding_still_open", Message: "funding period has not ended", category: ErrConflict,
	}
	ErrFundingGoalNotReached = &RuleError{
		Code: "funding_goal_not_reached", Message: "funding goal not reached", category: ErrConflict,
	}
	ErrFundingGoalWasReached = &RuleError{
		Code: "funding_goal_was_reached", Message: "funding goal was reached", category: ErrConflict,
	}
	ErrAlreadyWithdrawn = &RuleError{
		Code: "already_withdrawn", Message: "funds already withdrawn", category: ErrConflict,
	}
	ErrNoContribution = &RuleError{
		Code: "no_contribution", Message: "no contribution to refund", category: ErrConflict,
	}
)
