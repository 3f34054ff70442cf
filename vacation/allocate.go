package vacation

import "sort"

// =============================================================================
// WINDOW SEARCH
// =============================================================================

// window is an inclusive day-index range. ok is false when no day fits.
type window struct {
	lo, hi int
	ok     bool
}

func (w window) Len() int {
	if !w.ok {
		return 0
	}
	return w.hi - w.lo + 1
}

// longestWindow finds the longest run of days whose cost fits every party's
// budget. cost(p, i) is what day i costs party p; a negative cost marks an
// impassable day. Ties go to the earliest window.
func longestWindow(n int, budgets []int, cost func(p, i int) int) window {
	var best window
	used := make([]int, len(budgets))
	left := 0

	over := func() bool {
		for p, u := range used {
			if u > budgets[p] {
				return true
			}
		}
		return false
	}

	for right := 0; right < n; right++ {
		blocked := false
		for p := range budgets {
			c := cost(p, right)
			if c < 0 {
				blocked = true
				break
			}
			used[p] += c
		}
		if blocked {
			for p := range used {
				used[p] = 0
			}
			left = right + 1
			continue
		}
		for left <= right && over() {
			for p := range budgets {
				used[p] -= cost(p, left)
			}
			left++
		}
		if left <= right && right-left+1 > best.Len() {
			best = window{lo: left, hi: right, ok: true}
		}
	}
	return best
}

// =============================================================================
// QUARTER SHARES
// =============================================================================

// quarterShares gives each quarter total/4 and hands the remainder to the
// quarters with the most holidays, earlier quarters first on ties.
func quarterShares(total int, holidays [4]int) [4]int {
	ranked := []int{0, 1, 2, 3}
	sort.SliceStable(ranked, func(a, b int) bool { return holidays[ranked[a]] > holidays[ranked[b]] })

	var shares [4]int
	for q := range shares {
		shares[q] = total / 4
	}
	for i := 0; i < total%4; i++ {
		shares[ranked[i]]++
	}
	return shares
}
