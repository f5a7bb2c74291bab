package assess

import "math"

// round1 rounds to one decimal. Rounding happens at every derived quantity,
// not only at final output, because later calculations consume the rounded
// intermediates.
func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

// roundDollars rounds a dollar amount to a whole unit.
func roundDollars(v float64) int64 {
	return int64(math.Round(v))
}

// roundInt rounds an FTE total to the nearest whole headcount.
func roundInt(v float64) int {
	return int(math.Round(v))
}

// blendedFTECost is the annual cost per FTE given today's offshore mix.
func blendedFTECost(onshoreUSD, offshoreUSD, offshorePct float64) float64 {
	onshoreShare := 1.0 - offshorePct/100.0
	offshoreShare := offshorePct / 100.0
	return onshoreUSD*onshoreShare + offshoreUSD*offshoreShare
}

func floatPtr(v float64) *float64 { return &v }

func intPtr(v int) *int { return &v }

func int64Ptr(v int64) *int64 { return &v }
