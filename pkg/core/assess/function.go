package assess

import (
	"customer_ops_assessment/pkg/core/refdata"
)

// FunctionInputs collects the reference documents scoped to one function.
type FunctionInputs struct {
	Key        string
	Benchmarks *refdata.FunctionBenchmarks
	Overrides  refdata.FunctionOverrides
	Horizons   []refdata.RoleHorizons
	Offshoring []refdata.RoleOffshoring
	Costs      map[string]refdata.RoleCost
	Commentary refdata.Commentary
}

// AssessFunction runs the role estimator over every benchmark role in the
// function and accumulates the function-level totals. A company-supplied
// estimated_total_ftes override takes precedence over the sum of role
// estimates (a zero override counts as absent).
func AssessFunction(in FunctionInputs, revenue100M float64, captureRate float64, policy Policy) *FunctionResult {
	horizonsByRole := make(map[string]refdata.RoleHorizons, len(in.Horizons))
	for _, h := range in.Horizons {
		horizonsByRole[h.Role] = h
	}
	offshoringByRole := make(map[string]refdata.RoleOffshoring, len(in.Offshoring))
	for _, o := range in.Offshoring {
		offshoringByRole[o.Role] = o
	}

	roles := make([]*RoleEstimate, 0, len(in.Benchmarks.Roles))
	var totalEstimated, totalAI, totalOffshoreGap, totalProductivity float64

	for _, bench := range in.Benchmarks.Roles {
		var override *refdata.RoleOverride
		if o, ok := in.Overrides.Roles[bench.Role]; ok {
			override = &o
		}
		role := EstimateRole(RoleInputs{
			Benchmark:  bench,
			Override:   override,
			Horizons:   horizonsByRole[bench.Role],
			Offshoring: offshoringByRole[bench.Role],
			Cost:       in.Costs[bench.Role],
		}, revenue100M, captureRate, policy)
		roles = append(roles, role)

		if role.EstimatedFTEs != nil && *role.EstimatedFTEs > 0 {
			totalEstimated += *role.EstimatedFTEs
		}
		if role.AI.ImpactFTEs != nil && *role.AI.ImpactFTEs > 0 {
			totalAI += *role.AI.ImpactFTEs
		}
		if role.Offshoring.GapFTEs != nil && *role.Offshoring.GapFTEs > 0 {
			totalOffshoreGap += *role.Offshoring.GapFTEs
		}
		totalProductivity += role.Productivity.OpportunityFTEs
	}

	var estimatedTotal *int
	switch {
	case in.Overrides.EstimatedTotalFTEs > 0:
		estimatedTotal = intPtr(roundInt(in.Overrides.EstimatedTotalFTEs))
	case totalEstimated > 0:
		estimatedTotal = intPtr(roundInt(totalEstimated))
	}

	return &FunctionResult{
		Function:              in.Benchmarks.Label,
		FunctionKey:           in.Key,
		TypicalPctOfHeadcount: in.Benchmarks.TypicalPctOfTotalHeadcount,
		EstimatedTotalFTEs:    estimatedTotal,
		EstimationNote:        in.Overrides.EstimationNote,
		Roles:                 roles,
		Summary: FunctionSummary{
			TotalAIAddressableFTEs: round1(totalAI),
			TotalOffshoreGapFTEs:   round1(totalOffshoreGap),
			TotalProductivityFTEs:  round1(totalProductivity),
		},
		Commentary: refdata.Commentary{
			Theme:          in.Commentary.Theme,
			Quotes:         nonNilQuotes(in.Commentary.Quotes),
			InsightSummary: in.Commentary.InsightSummary,
		},
	}
}

func nonNilQuotes(q []string) []string {
	if q == nil {
		return []string{}
	}
	return q
}
