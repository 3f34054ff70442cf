package render

import (
	"fmt"
	"strings"
	"time"

	"github.com/warp/vacation-planner/generic"
)

// =============================================================================
// CALENDAR VIEW - Monday-first month grids
// =============================================================================

type mark byte

const (
	markPTO      mark = 'P'
	markFloating mark = 'F'
	markHoliday  mark = 'H'
)

// Calendar shows every month that has PTO, floating or holiday days.
// It returns "" when there is nothing to show.
func (r *Renderer) Calendar(year int, plan generic.Plan, holidays []generic.TimePoint) string {
	marks := markDates(plan.PTODates, plan.FloatingDates, holidays)
	return r.calendar(year, marks, "  Legend: P=PTO  F=Floating  H=Holiday")
}

// GroupCalendar is Calendar over the union of every party's dates.
func (r *Renderer) GroupCalendar(year int, plan generic.GroupPlan, groups []generic.HolidayGroup) string {
	var pto, floating, hols []generic.TimePoint
	for _, a := range plan.Allocations {
		pto = append(pto, a.PTODates...)
		floating = append(floating, a.FloatingDates...)
	}
	for _, g := range groups {
		hols = append(hols, g.Holidays...)
	}
	marks := markDates(pto, floating, hols)
	return r.calendar(year, marks, "  Legend: P=PTO  F=Floating  H=Holiday  (across all groups)")
}

// markDates gives PTO precedence over floating, and floating over holiday.
func markDates(pto, floating, holidays []generic.TimePoint) map[generic.TimePoint]mark {
	marks := make(map[generic.TimePoint]mark)
	for _, set := range []struct {
		dates []generic.TimePoint
		m     mark
	}{{holidays, markHoliday}, {floating, markFloating}, {pto, markPTO}} {
		for _, d := range set.dates {
			marks[d] = set.m
		}
	}
	return marks
}

func (r *Renderer) calendar(year int, marks map[generic.TimePoint]mark, legend string) string {
	var active [13]bool
	found := false
	for d := range marks {
		if d.Year() == year {
			active[d.Month()] = true
			found = true
		}
	}
	if !found {
		return ""
	}

	var b strings.Builder
	line(&b, "")
	line(&b, "  "+r.style(r.title, fmt.Sprintf("Calendar View %d", year)))
	line(&b, legend)
	line(&b, "")

	for m := time.January; m <= time.December; m++ {
		if !active[m] {
			continue
		}
		line(&b, "  "+r.style(r.label, fmt.Sprintf("%s %d", m, year)))
		line(&b, "  Mo  Tu  We  Th  Fr  Sa  Su")
		for _, row := range monthRows(year, m, marks) {
			line(&b, row)
		}
		line(&b, "")
	}
	return strings.TrimSuffix(b.String(), "\n")
}

// monthRows lays out one month, four columns per day, Monday first.
func monthRows(year int, month time.Month, marks map[generic.TimePoint]mark) []string {
	first := generic.StartOfMonth(year, month)
	last := generic.EndOfMonth(year, month)
	lead := (int(first.Weekday()) + 6) % 7

	var rows []string
	row := strings.Repeat("    ", lead)
	for d := first; !d.After(last); d = d.AddDays(1) {
		if m, ok := marks[d]; ok {
			row += fmt.Sprintf(" %2d%c", d.Day(), m)
		} else {
			row += fmt.Sprintf("  %2d", d.Day())
		}
		if d.Weekday() == time.Sunday {
			rows = append(rows, row)
			row = ""
		}
	}
	if strings.TrimSpace(row) != "" {
		rows = append(rows, row)
	}
	return rows
}
