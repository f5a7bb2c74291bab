package assess

import (
	"fmt"
	"sort"
	"strconv"

	"customer_ops_assessment/pkg/core/refdata"
)

// Lever labels for roadmap items.
const (
	LeverProductivity = "Productivity"
	LeverOffshoring   = "Offshoring"
)

// BuildRoadmap ranks role-level productivity and offshoring actions into
// year one and buckets the company's AI use cases by their pre-tagged
// target year. It is a deterministic function of the function aggregates
// and the static catalog; it performs no independent estimation and never
// mutates the source estimates.
func BuildRoadmap(functions []*FunctionResult, useCases []refdata.UseCase, policy Policy) *Roadmap {
	year1 := policy.Years[0]
	prodItems := make([]LeverItem, 0)
	offshoreItems := make([]LeverItem, 0)

	for _, fn := range functions {
		for _, role := range fn.Roles {
			if role.EstimatedFTEs == nil || *role.EstimatedFTEs == 0 {
				continue
			}

			if prodFTEs := role.Productivity.OpportunityFTEs; prodFTEs > 0 {
				prodItems = append(prodItems, LeverItem{
					Role:        role.Role,
					Function:    fn.Function,
					FunctionKey: fn.FunctionKey,
					Lever:       LeverProductivity,
					Year:        year1,
					ImpactFTEs:  prodFTEs,
					Description: fmt.Sprintf("Rationalize %.1f FTEs (%.1f%% above median benchmark)",
						prodFTEs, role.PctVsBenchmark),
				})
			}

			gap := 0.0
			if role.Offshoring.GapFTEs != nil {
				gap = *role.Offshoring.GapFTEs
			}
			// Sub-scale gaps are noise, not roadmap items (strictly greater than).
			if gap > policy.RoadmapOffshoreMinFTEs {
				offshoreItems = append(offshoreItems, LeverItem{
					Role:        role.Role,
					Function:    fn.Function,
					FunctionKey: fn.FunctionKey,
					Lever:       LeverOffshoring,
					Year:        year1,
					ImpactFTEs:  gap,
					Description: fmt.Sprintf("Move %.1f FTEs offshore (%v%% -> %v%%)",
						gap, role.Offshoring.CurrentOffshorePct, role.Offshoring.BenchmarkOffshorePct),
				})
			}
		}
	}

	// Descending by impact; ties keep original iteration order.
	sort.SliceStable(prodItems, func(i, j int) bool {
		return prodItems[i].ImpactFTEs > prodItems[j].ImpactFTEs
	})
	sort.SliceStable(offshoreItems, func(i, j int) bool {
		return offshoreItems[i].ImpactFTEs > offshoreItems[j].ImpactFTEs
	})

	years := make(map[string]*YearPlan, len(policy.Years))
	for _, y := range policy.Years {
		years[strconv.Itoa(y)] = &YearPlan{
			Productivity: []LeverItem{},
			Offshoring:   []LeverItem{},
			AI:           []refdata.UseCase{},
		}
	}
	years[strconv.Itoa(year1)].Productivity = prodItems
	years[strconv.Itoa(year1)].Offshoring = offshoreItems

	for _, uc := range useCases {
		if plan, ok := years[strconv.Itoa(uc.Year)]; ok {
			plan.AI = append(plan.AI, uc)
		}
	}

	if useCases == nil {
		useCases = []refdata.UseCase{}
	}
	return &Roadmap{Years: years, AIUseCases: useCases}
}
