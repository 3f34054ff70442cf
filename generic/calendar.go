package generic

import "fmt"

// =============================================================================
// CALENDAR - Per-day facts for one party and one year
// =============================================================================

// Calendar holds the dates of a year and parallel weekend/holiday flags.
// Index i is the offset from January 1. Built once, read-only afterwards.
type Calendar struct {
	Year         int
	Dates        []TimePoint
	IsWeekend    []bool
	IsHoliday    []bool
	IsNaturalOff []bool
}

// NewCalendar builds the calendar for year. Holidays outside the year are
// ignored.
func NewCalendar(year int, holidays []TimePoint) (*Calendar, error) {
	if year < 1 || year > 9999 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidYear, year)
	}

	hol := make(map[TimePoint]bool, len(holidays))
	for _, h := range holidays {
		hol[h] = true
	}

	dates := YearPeriod(year).Days()
	c := &Calendar{
		Year:         year,
		Dates:        dates,
		IsWeekend:    make([]bool, len(dates)),
		IsHoliday:    make([]bool, len(dates)),
		IsNaturalOff: make([]bool, len(dates)),
	}
	for i, d := range dates {
		c.IsWeekend[i] = d.IsWeekend()
		c.IsHoliday[i] = hol[d]
		c.IsNaturalOff[i] = c.IsWeekend[i] || c.IsHoliday[i]
	}
	return c, nil
}

func (c *Calendar) Len() int             { return len(c.Dates) }
func (c *Calendar) Date(i int) TimePoint { return c.Dates[i] }
func (c *Calendar) Period() Period       { return YearPeriod(c.Year) }
func (c *Calendar) Quarters() [4]Period  { return QuarterPeriods(c.Year) }

// Index maps a date to its day index.
func (c *Calendar) Index(t TimePoint) (int, bool) {
	if t.Year() != c.Year {
		return 0, false
	}
	return t.YearDay() - 1, true
}

// IndexRange returns the [lo, hi] day indices covered by p, clipped to the year.
func (c *Calendar) IndexRange(p Period) (lo, hi int) {
	lo, hi = 0, c.Len()-1
	if i, ok := c.Index(p.Start); ok {
		lo = i
	} else if p.Start.Year() > c.Year {
		return 1, 0
	}
	if i, ok := c.Index(p.End); ok {
		hi = i
	} else if p.End.Year() < c.Year {
		return 1, 0
	}
	return lo, hi
}

// Workdays counts days in the year that are not naturally off.
func (c *Calendar) Workdays() int {
	n := 0
	for _, off := range c.IsNaturalOff {
		if !off {
			n++
		}
	}
	return n
}

// HolidaysIn counts holiday days that fall inside p.
func (c *Calendar) HolidaysIn(p Period) int {
	n := 0
	lo, hi := c.IndexRange(p)
	for i := lo; i <= hi; i++ {
		if c.IsHoliday[i] {
			n++
		}
	}
	return n
}

// HolidayDates lists the holidays that matched a day of the year.
func (c *Calendar) HolidayDates() []TimePoint {
	var out []TimePoint
	for i, h := range c.IsHoliday {
		if h {
			out = append(out, c.Dates[i])
		}
	}
	return out
}
