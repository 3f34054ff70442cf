// Package vacation implements the planning strategies on top of the generic
// engines: bridge maximizing, longest single vacation, extended weekends and
// quarterly balance, for one person or a group.
package vacation

import (
	"fmt"
	"strings"

	"github.com/warp/vacation-planner/generic"
)

// =============================================================================
// STRATEGY KINDS
// =============================================================================

type StrategyKind string

const (
	StrategyBridges   StrategyKind = "bridges"
	StrategyLongest   StrategyKind = "longest"
	StrategyWeekends  StrategyKind = "weekends"
	StrategyQuarterly StrategyKind = "quarterly"
)

// Strategies lists every kind in the order GenerateAll runs them.
var Strategies = []StrategyKind{StrategyBridges, StrategyLongest, StrategyWeekends, StrategyQuarterly}

// ParseStrategy accepts a kind name, case-insensitively.
func ParseStrategy(s string) (StrategyKind, error) {
	k := StrategyKind(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Strategies {
		if k == known {
			return k, nil
		}
	}
	return "", fmt.Errorf("unknown strategy %q (want one of bridges, longest, weekends, quarterly)", s)
}

type strategyInfo struct {
	Name        string
	Description string
}

var singleInfo = map[StrategyKind]strategyInfo{
	StrategyBridges: {
		Name:        "Bridge Optimizer",
		Description: "Maximizes total vacation days by bridging gaps between weekends and holidays into long contiguous blocks.",
	},
	StrategyLongest: {
		Name:        "Longest Single Vacation",
		Description: "Concentrates PTO to create the single longest possible vacation block, with remaining days used for bridges elsewhere.",
	},
	StrategyWeekends: {
		Name:        "Extended Weekends",
		Description: "Spreads PTO across many 3-4 day weekends throughout the year for regular short getaways.",
	},
	StrategyQuarterly: {
		Name:        "Quarterly Balance",
		Description: "Distributes PTO across all four quarters for regular breaks year-round, with bridges optimized within each quarter.",
	},
}

var groupInfo = map[StrategyKind]strategyInfo{
	StrategyBridges: {
		Name:        "Bridge Optimizer (Multi-Group)",
		Description: "Maximizes shared vacation days by bridging gaps between weekends and holidays across all groups.",
	},
	StrategyLongest: {
		Name:        "Longest Shared Vacation",
		Description: "Concentrates PTO to create the single longest shared vacation block, with remaining days used for bridges elsewhere.",
	},
	StrategyWeekends: {
		Name:        "Extended Weekends (Multi-Group)",
		Description: "Spreads PTO across many 3-4 day shared weekends throughout the year for regular short getaways together.",
	},
	StrategyQuarterly: {
		Name:        "Quarterly Balance (Multi-Group)",
		Description: "Distributes shared PTO across all four quarters for regular breaks year-round, with bridges optimized within each quarter.",
	},
}

// =============================================================================
// REWARD PRESETS
// =============================================================================

// ShortBreakLength is the streak length past which ExtendedWeekendReward
// turns steeply negative.
const ShortBreakLength = 4

// ExtendedWeekendReward is s for s <= 4 and s - 10(s-4) beyond, so a fifth
// consecutive day is worth less than stopping.
var ExtendedWeekendReward generic.Reward = generic.RewardFunc(func(_, s int) float64 {
	if s <= ShortBreakLength {
		return float64(s)
	}
	return float64(s) - 10*float64(s-ShortBreakLength)
})

// =============================================================================
// ERRORS
// =============================================================================

// StrategyError wraps a failure of a single strategy.
type StrategyError struct {
	Strategy StrategyKind
	Err      error
}

func (e *StrategyError) Error() string {
	return fmt.Sprintf("strategy %s: %v", e.Strategy, e.Err)
}

func (e *StrategyError) Unwrap() error { return e.Err }
