package generic

import (
	"fmt"
	"sort"
	"time"
)

// =============================================================================
// TIME POINT - Day-granular calendar date (the planner never looks at hours)
// =============================================================================

// DateLayout is the only textual date format accepted at the boundaries.
const DateLayout = "2006-01-02"

type TimePoint struct {
	Time time.Time
}

// Constructors
func NewTimePoint(year int, month time.Month, day int) TimePoint {
	return TimePoint{Time: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// FromTime drops the clock and location of t and keeps its calendar date.
func FromTime(t time.Time) TimePoint { return NewTimePoint(t.Year(), t.Month(), t.Day()) }

// ParseTimePoint parses a YYYY-MM-DD date.
func ParseTimePoint(s string) (TimePoint, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return TimePoint{}, fmt.Errorf("invalid date %q (want YYYY-MM-DD): %w", s, err)
	}
	return FromTime(t), nil
}

// Comparison
func (tp TimePoint) Before(other TimePoint) bool        { return tp.Time.Before(other.Time) }
func (tp TimePoint) Equal(other TimePoint) bool         { return tp.Time.Equal(other.Time) }
func (tp TimePoint) After(other TimePoint) bool         { return tp.Time.After(other.Time) }
func (tp TimePoint) BeforeOrEqual(other TimePoint) bool { return !tp.After(other) }
func (tp TimePoint) AfterOrEqual(other TimePoint) bool  { return !tp.Before(other) }

// Arithmetic
func (tp TimePoint) AddDays(n int) TimePoint { return TimePoint{Time: tp.Time.AddDate(0, 0, n)} }

// Properties
func (tp TimePoint) Year() int             { return tp.Time.Year() }
func (tp TimePoint) Month() time.Month     { return tp.Time.Month() }
func (tp TimePoint) Day() int              { return tp.Time.Day() }
func (tp TimePoint) YearDay() int          { return tp.Time.YearDay() }
func (tp TimePoint) Weekday() time.Weekday { return tp.Time.Weekday() }
func (tp TimePoint) IsWeekend() bool       { wd := tp.Weekday(); return wd == time.Saturday || wd == time.Sunday }
func (tp TimePoint) IsWorkday() bool       { return !tp.IsWeekend() }
func (tp TimePoint) IsZero() bool          { return tp.Time.IsZero() }

// Quarter returns 1..4.
func (tp TimePoint) Quarter() int { return (int(tp.Month())-1)/3 + 1 }

func (tp TimePoint) String() string { return tp.Time.Format(DateLayout) }

// MarshalText renders the date as YYYY-MM-DD for JSON and YAML encoders.
func (tp TimePoint) MarshalText() ([]byte, error) { return []byte(tp.String()), nil }

func (tp *TimePoint) UnmarshalText(b []byte) error {
	parsed, err := ParseTimePoint(string(b))
	if err != nil {
		return err
	}
	*tp = parsed
	return nil
}

// =============================================================================
// HOLIDAYS
// =============================================================================

// Holiday is a named non-working date. Presets produce these; the engine only
// looks at the date.
type Holiday struct {
	Date TimePoint
	Name string
}

// HolidayDates strips the names off a holiday list.
func HolidayDates(hs []Holiday) []TimePoint {
	out := make([]TimePoint, len(hs))
	for i, h := range hs {
		out[i] = h.Date
	}
	return out
}

// SortTimePoints sorts in place, ascending.
func SortTimePoints(ts []TimePoint) {
	sort.Slice(ts, func(i, j int) bool { return ts[i].Before(ts[j]) })
}

// UniqueTimePoints returns a sorted copy of ts without duplicates.
func UniqueTimePoints(ts []TimePoint) []TimePoint {
	out := make([]TimePoint, 0, len(ts))
	seen := make(map[TimePoint]bool, len(ts))
	for _, t := range ts {
		if seen[t] {
			continue
		}
		seen[t] = true
		out = append(out, t)
	}
	SortTimePoints(out)
	return out
}

// =============================================================================
// TIME UTILITIES
// =============================================================================

func DaysBetween(from, to TimePoint) int                { return int(to.Time.Sub(from.Time).Hours() / 24) }
func StartOfYear(year int) TimePoint                    { return NewTimePoint(year, time.January, 1) }
func EndOfYear(year int) TimePoint                      { return NewTimePoint(year, time.December, 31) }
func DaysInYear(year int) int                           { return DaysBetween(StartOfYear(year), EndOfYear(year)) + 1 }
func StartOfMonth(year int, month time.Month) TimePoint { return NewTimePoint(year, month, 1) }
func EndOfMonth(year int, month time.Month) TimePoint {
	return FromTime(time.Date(year, month+1, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, -1))
}
