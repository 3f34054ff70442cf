/*
Package render turns plans into terminal text and JSON documents.

OUTPUT:
  Header      banner with year, budgets and the holiday list
  Plan        one option: budget use, efficiency, blocks, dates to request
  Calendar    month grids marking P (PTO), F (floating) and H (holiday)
  Footer      closing banner with the number of options

  Group variants take the HolidayGroup list alongside the GroupPlan.

STYLING:
  Banners and titles go through lipgloss styles. A Renderer built with
  color off emits plain text, which is what the tests and piped output use.
*/
package render

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"github.com/warp/vacation-planner/generic"
)

// Width is the banner width in columns.
const Width = 64

const (
	shortDate = "Mon, Jan 02"
	longDate  = "Monday, January 02, 2006"
)

type Renderer struct {
	color  bool
	banner lipgloss.Style
	title  lipgloss.Style
	label  lipgloss.Style
}

// NewRenderer returns a renderer; with color false every style is skipped.
func NewRenderer(color bool) *Renderer {
	return &Renderer{
		color:  color,
		banner: lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
		title:  lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Bold(true),
		label:  lipgloss.NewStyle().Foreground(lipgloss.Color("86")),
	}
}

func (r *Renderer) style(s lipgloss.Style, text string) string {
	if !r.color {
		return text
	}
	return s.Render(text)
}

func (r *Renderer) rule() string { return r.style(r.banner, strings.Repeat("=", Width)) }

// =============================================================================
// SINGLE PARTY
// =============================================================================

// Header describes the inputs of a single-party run.
func (r *Renderer) Header(year int, budget generic.Budget, holidays []generic.Holiday) string {
	var b strings.Builder
	line(&b, r.rule())
	line(&b, "  "+r.style(r.title, "PTO VACATION OPTIMIZER"))
	line(&b, r.rule())
	line(&b, fmt.Sprintf("  Year:              %d", year))
	line(&b, fmt.Sprintf("  PTO budget:        %d days", budget.PTO))
	line(&b, fmt.Sprintf("  Floating holidays: %d", budget.Floating))
	line(&b, fmt.Sprintf("  Company holidays:  %d", len(holidays)))
	line(&b, "")
	for _, h := range holidays {
		name := h.Name
		if name == "" {
			name = h.Date.Time.Format("Jan 02")
		}
		line(&b, fmt.Sprintf("    %12s  %s", h.Date.Time.Format(shortDate), name))
	}
	return strings.TrimSuffix(b.String(), "\n")
}

// Plan renders one single-party option.
func (r *Renderer) Plan(plan generic.Plan, budget generic.Budget) string {
	var b strings.Builder
	r.optionHeader(&b, plan.Name, plan.Description)

	total, used := plan.TotalVacationDays(), plan.BudgetUsed()
	line(&b, fmt.Sprintf("  PTO days used: %d / %s", used, budgetLabel(budget)))
	line(&b, fmt.Sprintf("  Total vacation days: %d", total))
	if used > 0 {
		line(&b, fmt.Sprintf("  Efficiency: %sx (vacation days per PTO day)", oneDecimal(total, used)))
	}
	line(&b, "")

	r.blocks(&b, plan.Blocks, "holiday")

	line(&b, "  "+r.style(r.label, "Days to request off:"))
	for _, d := range plan.PTODates {
		line(&b, "    -> "+d.Time.Format(longDate))
	}
	if len(plan.FloatingDates) > 0 {
		line(&b, "")
		line(&b, "  "+r.style(r.label, "Floating holiday(s):"))
		for _, d := range plan.FloatingDates {
			line(&b, "    -> "+d.Time.Format(longDate))
		}
	}
	return strings.TrimSuffix(b.String(), "\n")
}

// Footer closes a run of n options.
func (r *Renderer) Footer(n int) string {
	var b strings.Builder
	line(&b, "")
	line(&b, r.rule())
	line(&b, fmt.Sprintf("  Generated %d vacation plan %s.", n, plural(n, "option", "options")))
	b.WriteString(r.rule())
	return b.String()
}

// =============================================================================
// MULTI PARTY
// =============================================================================

// GroupHeader describes the inputs of a multi-party run.
func (r *Renderer) GroupHeader(year int, groups []generic.HolidayGroup) string {
	var b strings.Builder
	line(&b, r.rule())
	line(&b, "  "+r.style(r.title, "PTO VACATION OPTIMIZER (Multi-Group)"))
	line(&b, r.rule())
	line(&b, fmt.Sprintf("  Year: %d", year))
	line(&b, fmt.Sprintf("  Groups: %d", len(groups)))
	line(&b, "")
	for _, g := range groups {
		line(&b, fmt.Sprintf("    %s: %s PTO, %d holidays", g.Name, budgetLabel(g.Budget()), len(g.Holidays)))
	}
	return strings.TrimSuffix(b.String(), "\n")
}

// GroupPlan renders one multi-party option.
func (r *Renderer) GroupPlan(plan generic.GroupPlan, groups []generic.HolidayGroup) string {
	var b strings.Builder
	r.optionHeader(&b, plan.Name, plan.Description)

	line(&b, "")
	line(&b, "  Groups:")
	for _, g := range groups {
		a, _ := plan.Allocation(g.Name)
		line(&b, fmt.Sprintf("    %s: %d / %s PTO used", g.Name, a.TotalUsed(), budgetLabel(g.Budget())))
	}

	total, used := plan.TotalSharedDays(), plan.BudgetUsed()
	line(&b, "")
	line(&b, fmt.Sprintf("  Total shared vacation days: %d", total))
	line(&b, fmt.Sprintf("  Total PTO spent (all groups): %d", used))
	if used > 0 {
		line(&b, fmt.Sprintf("  Efficiency: %sx (shared vacation-days per PTO day)", oneDecimal(total*len(groups), used)))
	}
	line(&b, "")

	r.blocks(&b, plan.Blocks, "shared holiday")

	for _, g := range groups {
		a, _ := plan.Allocation(g.Name)
		line(&b, "  "+r.style(r.label, "Days to request off - "+g.Name+":"))
		for _, d := range a.PTODates {
			line(&b, "    -> "+d.Time.Format(longDate))
		}
		if len(a.FloatingDates) > 0 {
			line(&b, "    Floating holiday(s):")
			for _, d := range a.FloatingDates {
				line(&b, "      -> "+d.Time.Format(longDate))
			}
		}
		if a.TotalUsed() == 0 {
			line(&b, "    (no PTO needed)")
		}
		line(&b, "")
	}
	return strings.TrimSuffix(b.String(), "\n")
}

// =============================================================================
// SHARED PIECES
// =============================================================================

func (r *Renderer) optionHeader(b *strings.Builder, name, description string) {
	line(b, "")
	line(b, r.rule())
	line(b, "  "+r.style(r.title, "OPTION: "+name))
	line(b, "  "+description)
	line(b, r.rule())
}

func (r *Renderer) blocks(b *strings.Builder, blocks []generic.VacationBlock, holidayWord string) {
	line(b, "  "+r.style(r.label, "Vacation Blocks:"))
	line(b, "  "+strings.Repeat("-", Width-4))
	for i, blk := range blocks {
		dr := blk.Start.Time.Format(shortDate)
		if !blk.Start.Equal(blk.End) {
			dr += " -> " + blk.End.Time.Format(shortDate)
		}
		line(b, fmt.Sprintf("  %2d. %s  (%d %s)", i+1, dr, blk.TotalDays, plural(blk.TotalDays, "day", "days")))
		line(b, "      "+blockParts(blk, holidayWord))
		line(b, "")
	}
}

func blockParts(blk generic.VacationBlock, holidayWord string) string {
	var parts []string
	if blk.PTODays > 0 {
		parts = append(parts, fmt.Sprintf("%d PTO", blk.PTODays))
	}
	if blk.Holidays > 0 {
		parts = append(parts, fmt.Sprintf("%d %s", blk.Holidays, plural(blk.Holidays, holidayWord, holidayWord+"s")))
	}
	if blk.WeekendDays > 0 {
		parts = append(parts, fmt.Sprintf("%d weekend", blk.WeekendDays))
	}
	return strings.Join(parts, " + ")
}

func budgetLabel(b generic.Budget) string {
	if b.Floating == 0 {
		return fmt.Sprint(b.PTO)
	}
	return fmt.Sprintf("%d + %d floating", b.PTO, b.Floating)
}

// oneDecimal formats num/den with one decimal place.
func oneDecimal(num, den int) string {
	return decimal.NewFromInt(int64(num)).DivRound(decimal.NewFromInt(int64(den)), 1).StringFixed(1)
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}

func line(b *strings.Builder, s string) {
	b.WriteString(s)
	b.WriteByte('\n')
}
