package render_test

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warp/vacation-planner/generic"
	"github.com/warp/vacation-planner/render"
)

// =============================================================================
// TEST FIXTURES
// =============================================================================

func nov(day int) generic.TimePoint { return generic.NewTimePoint(2025, time.November, day) }

// thanksgivingPlan bridges Thanksgiving 2025 with one PTO day.
func thanksgivingPlan() generic.Plan {
	return generic.Plan{
		Name:        "Bridge Optimizer",
		Description: "Bridges gaps.",
		Blocks: []generic.VacationBlock{{
			Start: nov(27), End: nov(30), TotalDays: 4, PTODays: 1, Holidays: 1, WeekendDays: 2,
		}},
		PTODates: []generic.TimePoint{nov(28)},
	}
}

func groups() []generic.HolidayGroup {
	return []generic.HolidayGroup{
		{Name: "Alice", Holidays: []generic.TimePoint{nov(27)}, PTOBudget: 5, FloatingHolidays: 1},
		{Name: "Bob", Holidays: []generic.TimePoint{nov(27), nov(28)}, PTOBudget: 3},
	}
}

func groupPlan() generic.GroupPlan {
	return generic.GroupPlan{
		Name:        "Bridge Optimizer (Multi-Group)",
		Description: "Bridges gaps together.",
		Blocks: []generic.VacationBlock{{
			Start: nov(27), End: nov(30), TotalDays: 4, PTODays: 1, Holidays: 1, WeekendDays: 2,
		}},
		Allocations: []generic.GroupAllocation{
			{GroupName: "Alice", FloatingDates: []generic.TimePoint{nov(28)}},
			{GroupName: "Bob"},
		},
	}
}

// =============================================================================
// TEXT
// =============================================================================

func TestRenderer_Plan(t *testing.T) {
	out := render.NewRenderer(false).Plan(thanksgivingPlan(), generic.Budget{PTO: 10, Floating: 2})

	for _, want := range []string{
		strings.Repeat("=", render.Width),
		"  OPTION: Bridge Optimizer",
		"  PTO days used: 1 / 10 + 2 floating",
		"  Total vacation days: 4",
		"  Efficiency: 4.0x (vacation days per PTO day)",
		"   1. Thu, Nov 27 -> Sun, Nov 30  (4 days)",
		"      1 PTO + 1 holiday + 2 weekend",
		"    -> Friday, November 28, 2025",
	} {
		assert.Contains(t, out, want)
	}
	assert.NotContains(t, out, "Floating holiday(s)")
	assert.NotContains(t, out, "\x1b[", "plain renderer must not emit escapes")
}

func TestRenderer_PlanWithoutSpending(t *testing.T) {
	out := render.NewRenderer(false).Plan(generic.Plan{Name: "Empty"}, generic.Budget{})
	assert.Contains(t, out, "PTO days used: 0 / 0")
	assert.NotContains(t, out, "Efficiency")
}

func TestRenderer_HeaderAndFooter(t *testing.T) {
	r := render.NewRenderer(false)
	hs := []generic.Holiday{{Date: nov(27), Name: "Thanksgiving"}, {Date: nov(28)}}

	header := r.Header(2025, generic.Budget{PTO: 10}, hs)
	assert.Contains(t, header, "  PTO VACATION OPTIMIZER")
	assert.Contains(t, header, "  Company holidays:  2")
	assert.Contains(t, header, "     Thu, Nov 27  Thanksgiving")
	assert.Contains(t, header, "     Fri, Nov 28  Nov 28")

	assert.Contains(t, r.Footer(1), "Generated 1 vacation plan option.")
	assert.Contains(t, r.Footer(4), "Generated 4 vacation plan options.")
}

func TestRenderer_GroupPlan(t *testing.T) {
	r := render.NewRenderer(false)
	out := r.GroupPlan(groupPlan(), groups())

	assert.Contains(t, out, "    Alice: 1 / 5 + 1 floating PTO used")
	assert.Contains(t, out, "    Bob: 0 / 3 PTO used")
	assert.Contains(t, out, "  Total shared vacation days: 4")
	assert.Contains(t, out, "  Efficiency: 8.0x (shared vacation-days per PTO day)")
	assert.Contains(t, out, "1 PTO + 1 shared holiday + 2 weekend")
	assert.Contains(t, out, "  Days to request off - Bob:\n    (no PTO needed)")
	assert.Contains(t, out, "    Floating holiday(s):\n      -> Friday, November 28, 2025")

	header := r.GroupHeader(2025, groups())
	assert.Contains(t, header, "(Multi-Group)")
	assert.Contains(t, header, "    Bob: 3 PTO, 2 holidays")
}

// =============================================================================
// CALENDAR
// =============================================================================

func TestRenderer_Calendar(t *testing.T) {
	out := render.NewRenderer(false).Calendar(2025, thanksgivingPlan(), []generic.TimePoint{nov(27)})

	assert.Contains(t, out, "Calendar View 2025")
	assert.Contains(t, out, "Legend: P=PTO  F=Floating  H=Holiday")
	assert.Contains(t, out, "  November 2025\n  Mo  Tu  We  Th  Fr  Sa  Su\n")
	// November 2025 starts on a Saturday.
	assert.Contains(t, out, strings.Repeat("    ", 5)+"   1   2\n")
	assert.Contains(t, out, "  24  25  26 27H 28P  29  30")
	assert.NotContains(t, out, "October")
}

func TestRenderer_CalendarEmpty(t *testing.T) {
	assert.Empty(t, render.NewRenderer(false).Calendar(2025, generic.Plan{}, nil))
}

func TestRenderer_GroupCalendarMarksUnion(t *testing.T) {
	out := render.NewRenderer(false).GroupCalendar(2025, groupPlan(), groups())
	assert.Contains(t, out, "across all groups")
	// Alice's floating day outranks Bob's holiday on Nov 28.
	assert.Contains(t, out, " 27H 28F")
}

// =============================================================================
// JSON
// =============================================================================

func TestPlansDocument(t *testing.T) {
	doc := render.NewPlansDocument(2025, generic.Budget{PTO: 10, Floating: 2}, []generic.Plan{thanksgivingPlan()})

	var buf bytes.Buffer
	require.NoError(t, render.WriteJSON(&buf, doc))

	var got map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.EqualValues(t, 2025, got["year"])
	assert.EqualValues(t, 10, got["pto_budget"])
	assert.EqualValues(t, 2, got["floating_holidays"])

	plans := got["plans"].([]any)
	require.Len(t, plans, 1)
	plan := plans[0].(map[string]any)
	assert.Equal(t, []any{"2025-11-28"}, plan["pto_dates"])
	assert.Equal(t, []any{}, plan["floating_dates"])

	block := plan["blocks"].([]any)[0].(map[string]any)
	assert.Equal(t, "2025-11-27", block["start_date"])
	assert.Equal(t, "2025-11-30", block["end_date"])
	assert.EqualValues(t, 2, block["weekend_days"])

	summary := plan["summary"].(map[string]any)
	assert.EqualValues(t, 4, summary["total_vacation_days"])
	assert.EqualValues(t, 1, summary["total_pto_used"])
	assert.Equal(t, "4", summary["efficiency"])
}

func TestGroupPlansDocument(t *testing.T) {
	doc := render.NewGroupPlansDocument(2025, groups(), []generic.GroupPlan{groupPlan()})

	require.Len(t, doc.Groups, 2)
	assert.Equal(t, render.GroupJSON{Name: "Bob", PTOBudget: 3, HolidayCount: 2}, doc.Groups[1])

	require.Len(t, doc.Plans, 1)
	p := doc.Plans[0]
	require.Len(t, p.GroupAllocations, 2)
	assert.Equal(t, 1, p.GroupAllocations[0].TotalUsed)
	assert.Empty(t, p.GroupAllocations[1].PTODates)
	assert.NotNil(t, p.GroupAllocations[1].PTODates)
	assert.Equal(t, 4, p.Summary.TotalSharedVacationDays)
	assert.Equal(t, 1, p.Summary.TotalPTOAcrossGroups)
	assert.Equal(t, "8", p.Summary.Efficiency.String())
}
