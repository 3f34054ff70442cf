/*
policy.go - Optional allocation constraints for the single-party engine

PURPOSE:
  Describes the rules a person (or their employer) layers on top of the
  bare "maximize vacation" objective. Each rule is optional and they
  combine freely.

KEY CONCEPTS:
  - Pinned: Dates that must be taken off. Paid for up front, never contested
  - Blackout: Dates that can never be taken off
  - MaxBlockDays: Soft cap. Streak reward collapses past the cap
  - MinGapDays: Worked days required between spending streaks
  - MonthlyCap: Hard cap on spent days per calendar month
  - SeasonalWeights: Multiplicative reward per month

WHERE EACH RULE LIVES:
  Reward shaping (cheap, no extra state):
    MaxBlockDays, SeasonalWeights      -> Shape()
  Transition filtering (no extra state):
    Pinned, Blackout                    -> engine.go free/blocked flags
  Widened DP state (only when enabled):
    MinGapDays                          -> cooldown counter
    MonthlyCap                          -> per-month spent counter

EXAMPLE:
  c := generic.Constraints{
      PinnedDates:     []generic.TimePoint{generic.NewTimePoint(2025, 8, 15)},
      MaxBlockDays:    7,
      MonthlyCap:      3,
      SeasonalWeights: map[time.Month]decimal.Decimal{time.July: decimal.NewFromFloat(1.5)},
  }
*/
package generic

import (
	"fmt"
	"math"
	"time"

	"github.com/shopspring/decimal"
)

// =============================================================================
// CONSTRAINTS
// =============================================================================

// Constraints define limits on allocation. Zero values disable a rule.
type Constraints struct {
	PinnedDates     []TimePoint
	BlackoutDates   []TimePoint
	MaxBlockDays    int
	MinGapDays      int
	MonthlyCap      int
	SeasonalWeights map[time.Month]decimal.Decimal
}

// residualScale sizes the reward that survives past MaxBlockDays.
const residualScale = 0.1

// maxPolicyDays bounds the day-count rules; nothing longer than a leap year
// is meaningful.
const maxPolicyDays = 366

// IsZero reports whether no rule is enabled.
func (c Constraints) IsZero() bool {
	return len(c.PinnedDates) == 0 && len(c.BlackoutDates) == 0 &&
		c.MaxBlockDays == 0 && c.MinGapDays == 0 && c.MonthlyCap == 0 &&
		len(c.SeasonalWeights) == 0
}

// Validate checks the constraints in isolation; budget-dependent checks
// happen in NewEngine.
func (c Constraints) Validate() error {
	if c.MaxBlockDays < 0 {
		return newPolicyError("max_block_days", fmt.Sprintf("must be >= 0, got %d", c.MaxBlockDays), ErrInvalidPolicy)
	}
	if c.MinGapDays < 0 {
		return newPolicyError("min_gap_days", fmt.Sprintf("must be >= 0, got %d", c.MinGapDays), ErrInvalidPolicy)
	}
	if c.MonthlyCap < 0 {
		return newPolicyError("monthly_pto_cap", fmt.Sprintf("must be >= 0, got %d", c.MonthlyCap), ErrInvalidPolicy)
	}
	for field, v := range map[string]int{
		"max_block_days":  c.MaxBlockDays,
		"min_gap_days":    c.MinGapDays,
		"monthly_pto_cap": c.MonthlyCap,
	} {
		if v > maxPolicyDays {
			return newPolicyError(field, fmt.Sprintf("must be <= %d, got %d", maxPolicyDays, v), ErrInvalidPolicy)
		}
	}
	for m, w := range c.SeasonalWeights {
		if m < time.January || m > time.December {
			return newPolicyError("seasonal_weights", fmt.Sprintf("invalid month %d", m), ErrInvalidPolicy)
		}
		if !w.IsPositive() || !isFinite(w.InexactFloat64()) {
			return newPolicyError("seasonal_weights", fmt.Sprintf("%s weight must be positive, got %s", m, w), ErrInvalidPolicy)
		}
	}

	blackout := make(map[TimePoint]bool, len(c.BlackoutDates))
	for _, d := range c.BlackoutDates {
		blackout[d] = true
	}
	for _, d := range c.PinnedDates {
		if blackout[d] {
			return newPolicyError("pinned_dates", d.String(), ErrConflictingPolicy)
		}
	}
	return nil
}

// monthWeights flattens SeasonalWeights into a lookup indexed by month-1.
func (c Constraints) monthWeights() [12]float64 {
	var w [12]float64
	for i := range w {
		w[i] = 1
	}
	for m, d := range c.SeasonalWeights {
		w[m-1] = d.InexactFloat64()
	}
	return w
}

// MaxWeight is the largest seasonal factor, at least 1.
func (c Constraints) MaxWeight() float64 {
	best := 1.0
	for _, w := range c.monthWeights() {
		if w > best {
			best = w
		}
	}
	return best
}

// =============================================================================
// REWARD SHAPING
// =============================================================================

// shape wraps base with the block cap and seasonal weights. months maps a
// day index to its month index (0-11).
func (c Constraints) shape(base Reward, months []int8) Reward {
	if c.MaxBlockDays == 0 && len(c.SeasonalWeights) == 0 {
		return base
	}
	weights := c.monthWeights()
	maxBlock := c.MaxBlockDays
	return RewardFunc(func(day, streak int) float64 {
		v := base.Value(day, streak)
		if maxBlock > 0 && streak > maxBlock && v > 0 {
			v = residualScale * math.Log1p(float64(streak-maxBlock))
		}
		return v * weights[months[day]]
	})
}
