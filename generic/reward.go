package generic

import "math"

// =============================================================================
// REWARD - Per-day objective plugged into the solvers
// =============================================================================

// Reward scores an off-day. day is the day index, streak the 1-based
// position of that day within its current run of consecutive off-days.
//
// Rewarding streak position rather than raw day count makes a block of length
// L worth L(L+1)/2 under StreakReward, so the solver prefers fewer longer
// blocks and bridging falls out of a per-day decision.
type Reward interface {
	Value(day, streak int) float64
}

// RewardFunc adapts a plain function to Reward.
type RewardFunc func(day, streak int) float64

func (f RewardFunc) Value(day, streak int) float64 { return f(day, streak) }

// StreakReward is the identity reward: value(d, s) = s.
var StreakReward Reward = RewardFunc(func(_, streak int) float64 { return float64(streak) })

// WithinRange keeps inner's value for days in [lo, hi] and returns 0 elsewhere.
func WithinRange(inner Reward, lo, hi int) Reward {
	return RewardFunc(func(day, streak int) float64 {
		if day < lo || day > hi {
			return 0
		}
		return inner.Value(day, streak)
	})
}

// WithBonus adds bonus to every day in [lo, hi].
func WithBonus(inner Reward, lo, hi int, bonus float64) Reward {
	return RewardFunc(func(day, streak int) float64 {
		v := inner.Value(day, streak)
		if day >= lo && day <= hi {
			return v + bonus
		}
		return v
	})
}

func isFinite(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }

// DominantBonus returns a per-day bonus larger than the best score
// achievable anywhere else in a year of n days when no day is worth more
// than maxWeight times its streak position.
func DominantBonus(n int, maxWeight float64) (float64, error) {
	if maxWeight < 1 {
		maxWeight = 1
	}
	bonus := float64(n)*float64(n+1)/2*maxWeight + 1
	if !isFinite(bonus) {
		return 0, &RewardError{Day: -1, Streak: n, Value: bonus}
	}
	return bonus, nil
}
