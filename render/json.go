package render

import (
	"encoding/json"
	"io"

	"github.com/shopspring/decimal"

	"github.com/warp/vacation-planner/generic"
)

// =============================================================================
// JSON DOCUMENTS
// =============================================================================

type BlockJSON struct {
	StartDate   generic.TimePoint `json:"start_date"`
	EndDate     generic.TimePoint `json:"end_date"`
	TotalDays   int               `json:"total_days"`
	PTODays     int               `json:"pto_days"`
	Holidays    int               `json:"holidays"`
	WeekendDays int               `json:"weekend_days"`
}

type SummaryJSON struct {
	TotalVacationDays int             `json:"total_vacation_days"`
	TotalPTOUsed      int             `json:"total_pto_used"`
	Efficiency        decimal.Decimal `json:"efficiency"`
}

type PlanJSON struct {
	Name          string              `json:"name"`
	Description   string              `json:"description"`
	PTODates      []generic.TimePoint `json:"pto_dates"`
	FloatingDates []generic.TimePoint `json:"floating_dates"`
	Blocks        []BlockJSON         `json:"blocks"`
	Summary       SummaryJSON         `json:"summary"`
}

// PlansDocument is the single-party output document.
type PlansDocument struct {
	Year             int        `json:"year"`
	PTOBudget        int        `json:"pto_budget"`
	FloatingHolidays int        `json:"floating_holidays"`
	Plans            []PlanJSON `json:"plans"`
}

type GroupJSON struct {
	Name             string `json:"name"`
	PTOBudget        int    `json:"pto_budget"`
	FloatingHolidays int    `json:"floating_holidays"`
	HolidayCount     int    `json:"holiday_count"`
}

type AllocationJSON struct {
	GroupName     string              `json:"group_name"`
	PTODates      []generic.TimePoint `json:"pto_dates"`
	FloatingDates []generic.TimePoint `json:"floating_dates"`
	TotalUsed     int                 `json:"total_used"`
}

type GroupSummaryJSON struct {
	TotalSharedVacationDays int             `json:"total_shared_vacation_days"`
	TotalPTOAcrossGroups    int             `json:"total_pto_across_groups"`
	Efficiency              decimal.Decimal `json:"efficiency"`
}

type GroupPlanJSON struct {
	Name             string           `json:"name"`
	Description      string           `json:"description"`
	Blocks           []BlockJSON      `json:"blocks"`
	GroupAllocations []AllocationJSON `json:"group_allocations"`
	Summary          GroupSummaryJSON `json:"summary"`
}

// GroupPlansDocument is the multi-party output document.
type GroupPlansDocument struct {
	Year   int             `json:"year"`
	Groups []GroupJSON     `json:"groups"`
	Plans  []GroupPlanJSON `json:"plans"`
}

// NewPlansDocument converts single-party plans.
func NewPlansDocument(year int, budget generic.Budget, plans []generic.Plan) PlansDocument {
	doc := PlansDocument{
		Year:             year,
		PTOBudget:        budget.PTO,
		FloatingHolidays: budget.Floating,
		Plans:            make([]PlanJSON, 0, len(plans)),
	}
	for _, p := range plans {
		doc.Plans = append(doc.Plans, PlanJSON{
			Name:          p.Name,
			Description:   p.Description,
			PTODates:      nonNil(p.PTODates),
			FloatingDates: nonNil(p.FloatingDates),
			Blocks:        blocksJSON(p.Blocks),
			Summary: SummaryJSON{
				TotalVacationDays: p.TotalVacationDays(),
				TotalPTOUsed:      p.BudgetUsed(),
				Efficiency:        p.Efficiency(),
			},
		})
	}
	return doc
}

// NewGroupPlansDocument converts multi-party plans.
func NewGroupPlansDocument(year int, groups []generic.HolidayGroup, plans []generic.GroupPlan) GroupPlansDocument {
	doc := GroupPlansDocument{
		Year:   year,
		Groups: make([]GroupJSON, 0, len(groups)),
		Plans:  make([]GroupPlanJSON, 0, len(plans)),
	}
	for _, g := range groups {
		doc.Groups = append(doc.Groups, GroupJSON{
			Name:             g.Name,
			PTOBudget:        g.PTOBudget,
			FloatingHolidays: g.FloatingHolidays,
			HolidayCount:     len(g.Holidays),
		})
	}
	for _, p := range plans {
		allocs := make([]AllocationJSON, 0, len(p.Allocations))
		for _, a := range p.Allocations {
			allocs = append(allocs, AllocationJSON{
				GroupName:     a.GroupName,
				PTODates:      nonNil(a.PTODates),
				FloatingDates: nonNil(a.FloatingDates),
				TotalUsed:     a.TotalUsed(),
			})
		}
		doc.Plans = append(doc.Plans, GroupPlanJSON{
			Name:             p.Name,
			Description:      p.Description,
			Blocks:           blocksJSON(p.Blocks),
			GroupAllocations: allocs,
			Summary: GroupSummaryJSON{
				TotalSharedVacationDays: p.TotalSharedDays(),
				TotalPTOAcrossGroups:    p.BudgetUsed(),
				Efficiency:              p.Efficiency(),
			},
		})
	}
	return doc
}

// WriteJSON writes v indented by two spaces, followed by a newline.
func WriteJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func blocksJSON(blocks []generic.VacationBlock) []BlockJSON {
	out := make([]BlockJSON, 0, len(blocks))
	for _, b := range blocks {
		out = append(out, BlockJSON{
			StartDate:   b.Start,
			EndDate:     b.End,
			TotalDays:   b.TotalDays,
			PTODays:     b.PTODays,
			Holidays:    b.Holidays,
			WeekendDays: b.WeekendDays,
		})
	}
	return out
}

// nonNil keeps empty date lists as [] instead of null.
func nonNil(ds []generic.TimePoint) []generic.TimePoint {
	if ds == nil {
		return []generic.TimePoint{}
	}
	return ds
}
