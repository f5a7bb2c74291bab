package assess

import "strconv"

// ComputeDollarImpact converts role-level FTE opportunities into run-rate
// dollar projections for the three forecast years.
//
// Ramp structure per lever:
//   - Productivity: year 1 realizes ProductivityYear1Ramp of the full
//     run-rate; years 2 and 3 realize 100%.
//   - AI: no single ramp constant. Each year applies that year's adjusted
//     efficiency percentage to (estimated FTEs - productivity opportunity
//     FTEs), so the AI lever never re-counts headcount the productivity
//     lever already claimed.
//   - Offshoring: year 1 realizes OffshoringYear1Ramp; years 2 and 3 100%.
//     Only FTEs newly moved offshore generate savings.
func ComputeDollarImpact(functions []*FunctionResult, policy Policy) DollarImpact {
	type leverTotals struct {
		productivity int64
		ai           int64
		offshoring   int64
	}
	var y1, y2, y3 leverTotals

	for _, fn := range functions {
		for _, role := range fn.Roles {
			if role.EstimatedFTEs == nil || *role.EstimatedFTEs == 0 {
				continue
			}
			est := *role.EstimatedFTEs

			// Blended cost on the unrounded basis; the role's stored
			// blended_cost is the rounded presentation value.
			blended := blendedFTECost(role.Costs.OnshoreUSD, role.Costs.OffshoreUSD, role.CurrentOffshorePct)

			prodFTEs := role.Productivity.OpportunityFTEs
			prodFull := roundDollars(prodFTEs * blended)
			y1.productivity += roundDollars(float64(prodFull) * policy.ProductivityYear1Ramp)
			y2.productivity += prodFull
			y3.productivity += prodFull

			aiBase := est - prodFTEs
			y1.ai += roundDollars(aiBase * role.AI.EfficiencyPct2026 / 100 * blended)
			y2.ai += roundDollars(aiBase * role.AI.EfficiencyPct2027 / 100 * blended)
			y3.ai += roundDollars(aiBase * role.AI.EfficiencyPct2028 / 100 * blended)

			gapFTEs := 0.0
			if role.Offshoring.GapFTEs != nil {
				gapFTEs = *role.Offshoring.GapFTEs
			}
			savingsPerFTE := role.Costs.OnshoreUSD - role.Costs.OffshoreUSD
			offFull := roundDollars(gapFTEs * savingsPerFTE)
			y1.offshoring += roundDollars(float64(offFull) * policy.OffshoringYear1Ramp)
			y2.offshoring += offFull
			y3.offshoring += offFull
		}
	}

	impact := DollarImpact{}
	for i, totals := range []leverTotals{y1, y2, y3} {
		impact[strconv.Itoa(policy.Years[i])] = LeverImpact{
			Productivity: totals.productivity,
			AI:           totals.ai,
			Offshoring:   totals.offshoring,
			Total:        totals.productivity + totals.ai + totals.offshoring,
		}
	}
	return impact
}
