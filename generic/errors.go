/*
errors.go - Centralized error types for the planning engine

PURPOSE:
  All error types in one place for consistency and discoverability.
  Callers outside this package should wrap these errors with additional
  context rather than inventing parallel ones.

ERROR CATEGORIES:
  1. Configuration errors - rejected at engine construction (fail fast)
  2. Solver errors - a reward function broke its contract mid-solve
  3. Capacity errors - the requested state space is too large to tabulate

USAGE:
  Callers classify with errors.Is / errors.As:

    if errors.Is(err, generic.ErrNegativeBudget) {
        ...
    }

    var rerr *generic.RewardError
    if errors.As(err, &rerr) {
        log.Printf("bad reward at day %d", rerr.Day)
    }

SEE ALSO:
  - engine.go: Single-party construction and solve errors
  - group.go: Multi-party construction and capacity errors
  - vacation/planner.go: Wraps these per strategy
*/
package generic

import (
	"errors"
	"fmt"
)

// =============================================================================
// SENTINEL ERRORS - Use with errors.Is()
// =============================================================================

var (
	// ErrInvalidYear is returned when a calendar cannot be built for the year.
	ErrInvalidYear = errors.New("invalid year")

	// ErrInvalidPeriod is returned when a period is malformed (end before start).
	ErrInvalidPeriod = errors.New("invalid period: end before start")

	// ErrNegativeBudget is returned when a PTO or floating budget is below zero.
	ErrNegativeBudget = errors.New("budget must be non-negative")

	// ErrNoParties is returned when the multi-party engine is given no groups.
	ErrNoParties = errors.New("at least one group is required")

	// ErrTooManyParties is returned when more groups than MaxParties are given.
	ErrTooManyParties = errors.New("too many groups")

	// ErrInvalidPolicy is returned for negative or over-long caps and gaps,
	// and for non-positive seasonal weights.
	ErrInvalidPolicy = errors.New("invalid policy")

	// ErrConflictingPolicy is returned when a date is both pinned and blacked
	// out, or when a month holds more pins than the monthly cap.
	ErrConflictingPolicy = errors.New("conflicting policy")

	// ErrInsufficientBudget is returned when pinned dates cost more than the budget.
	ErrInsufficientBudget = errors.New("pinned dates exceed budget")

	// ErrNonFiniteReward is returned when a reward function yields NaN or Inf.
	ErrNonFiniteReward = errors.New("reward function returned a non-finite value")

	// ErrStateSpaceTooLarge is returned when the multi-party budget vector
	// would produce more combinations than the engine is allowed to tabulate.
	ErrStateSpaceTooLarge = errors.New("state space too large")
)

// =============================================================================
// STRUCTURED ERRORS - Carry additional context
// =============================================================================

// BudgetError names the party and pool with an invalid budget.
type BudgetError struct {
	Party string // empty for single-party engines
	Pool  Pool
	Value int
}

func (e *BudgetError) Error() string {
	if e.Party == "" {
		return fmt.Sprintf("%s budget %d: %v", e.Pool, e.Value, ErrNegativeBudget)
	}
	return fmt.Sprintf("group %q: %s budget %d: %v", e.Party, e.Pool, e.Value, ErrNegativeBudget)
}

func (e *BudgetError) Unwrap() error {
	return ErrNegativeBudget
}

// PolicyError describes which constraint field is invalid and why.
type PolicyError struct {
	Field  string
	Reason string
	cause  error
}

func newPolicyError(field, reason string, cause error) *PolicyError {
	return &PolicyError{Field: field, Reason: reason, cause: cause}
}

func (e *PolicyError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

func (e *PolicyError) Unwrap() error {
	return e.cause
}

// RewardError records where a reward function produced a non-finite value.
type RewardError struct {
	Day    int
	Streak int
	Value  float64
}

func (e *RewardError) Error() string {
	return fmt.Sprintf("reward at day %d, streak %d is %v: %v", e.Day, e.Streak, e.Value, ErrNonFiniteReward)
}

func (e *RewardError) Unwrap() error {
	return ErrNonFiniteReward
}

// StateSpaceError reports the budget-combination count that was rejected.
type StateSpaceError struct {
	Combinations int
	Limit        int
}

func (e *StateSpaceError) Error() string {
	return fmt.Sprintf("%v: %d budget combinations exceeds limit %d", ErrStateSpaceTooLarge, e.Combinations, e.Limit)
}

func (e *StateSpaceError) Unwrap() error {
	return ErrStateSpaceTooLarge
}

// =============================================================================
// ERROR HELPERS
// =============================================================================

// IsConfigError returns true if the error is due to invalid caller input.
func IsConfigError(err error) bool {
	return errors.Is(err, ErrInvalidYear) ||
		errors.Is(err, ErrInvalidPeriod) ||
		errors.Is(err, ErrNegativeBudget) ||
		errors.Is(err, ErrNoParties) ||
		errors.Is(err, ErrTooManyParties) ||
		errors.Is(err, ErrInvalidPolicy) ||
		errors.Is(err, ErrConflictingPolicy) ||
		errors.Is(err, ErrInsufficientBudget) ||
		errors.Is(err, ErrStateSpaceTooLarge)
}
