package generic

import "time"

// =============================================================================
// PERIOD - Inclusive date range
// =============================================================================

// Period is an inclusive [Start, End] range of days.
//
// Examples:
//   - Calendar year 2025: Jan 1 - Dec 31
//   - Q2 2025: Apr 1 - Jun 30
type Period struct {
	Start TimePoint
	End   TimePoint
}

// NewPeriod validates that End is not before Start.
func NewPeriod(start, end TimePoint) (Period, error) {
	if end.Before(start) {
		return Period{}, ErrInvalidPeriod
	}
	return Period{Start: start, End: end}, nil
}

// Contains returns true if the time point is within the period [Start, End]
func (p Period) Contains(t TimePoint) bool {
	return t.AfterOrEqual(p.Start) && t.BeforeOrEqual(p.End)
}

// Len is the number of days in the period.
func (p Period) Len() int { return DaysBetween(p.Start, p.End) + 1 }

// Days returns all days in the period as a slice of TimePoints.
func (p Period) Days() []TimePoint {
	days := make([]TimePoint, 0, p.Len())
	for current := p.Start; current.BeforeOrEqual(p.End); current = current.AddDays(1) {
		days = append(days, current)
	}
	return days
}

// String returns a string representation of the period.
func (p Period) String() string {
	return "[" + p.Start.String() + ", " + p.End.String() + "]"
}

// YearPeriod is Jan 1 - Dec 31 of year.
func YearPeriod(year int) Period {
	return Period{Start: StartOfYear(year), End: EndOfYear(year)}
}

// QuarterPeriods returns the four calendar quarters of year, in order.
func QuarterPeriods(year int) [4]Period {
	var qs [4]Period
	for q := 0; q < 4; q++ {
		first := time.Month(q*3 + 1)
		qs[q] = Period{Start: StartOfMonth(year, first), End: EndOfMonth(year, first+2)}
	}
	return qs
}
