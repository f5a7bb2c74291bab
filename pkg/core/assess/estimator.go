package assess

import (
	"customer_ops_assessment/pkg/core/refdata"
)

// RoleInputs collects the reference entries for one role. A role present in
// the benchmark document but absent from the horizons, offshoring, or cost
// documents carries zero-value entries here, never an error.
type RoleInputs struct {
	Benchmark  refdata.RoleBenchmark
	Override   *refdata.RoleOverride // nil when the company supplies nothing
	Horizons   refdata.RoleHorizons
	Offshoring refdata.RoleOffshoring
	Cost       refdata.RoleCost
}

// resolveFTEs picks the headcount basis for a role: the company's
// job-indicator override when present, else the revenue benchmark. With no
// revenue and no override the estimate is unknown and every dependent
// figure stays nil/zero.
func resolveFTEs(override *refdata.RoleOverride, medianPer100M float64, revenue100M float64) FTEEstimate {
	if override != nil && override.EstimatedFTEs != nil {
		source := override.Source
		if source == "" {
			source = SourceJobIndicators
		}
		note := override.SourceNote
		if note == "" {
			note = "Estimated from job postings / public indicators."
		}
		return FTEEstimate{
			FTEs:   *override.EstimatedFTEs,
			Known:  true,
			Source: source,
			Note:   note,
		}
	}
	if revenue100M > 0 {
		return FTEEstimate{
			FTEs:   round1(medianPer100M * revenue100M),
			Known:  true,
			Source: SourceRevenueBenchmark,
			Note:   "Estimated from revenue-based benchmark",
		}
	}
	return FTEEstimate{Source: SourceRevenueBenchmark}
}

// EstimateRole runs the full per-role assessment: FTE estimation, benchmark
// deviation, productivity opportunity, AI-adjusted efficiency, offshoring
// gap, and blended cost. revenue100M is company revenue in $100M units
// (zero when unavailable); captureRate is the company-level productivity
// capture rate.
func EstimateRole(in RoleInputs, revenue100M float64, captureRate float64, policy Policy) *RoleEstimate {
	bench := in.Benchmark

	est := resolveFTEs(in.Override, bench.MedianFTEPer100M, revenue100M)

	var currentOffshorePct float64
	if in.Override != nil {
		currentOffshorePct = in.Override.CurrentOffshorePct
	}

	// Benchmark range scaled to this company's revenue.
	var benchLow, benchHigh, benchMedian *float64
	if revenue100M > 0 {
		benchLow = floatPtr(round1(bench.FTEPer100M[0] * revenue100M))
		benchHigh = floatPtr(round1(bench.FTEPer100M[1] * revenue100M))
		benchMedian = floatPtr(round1(bench.MedianFTEPer100M * revenue100M))
	}
	medianVal := 0.0
	if benchMedian != nil {
		medianVal = *benchMedian
	}

	// Signed deviation from the benchmark median.
	pctVsMedian := 0.0
	if est.Known && est.FTEs > 0 && medianVal > 0 {
		pctVsMedian = round1((est.FTEs - medianVal) / medianVal * 100)
	}

	// Productivity: only the excess above median is reclaimable, and only a
	// captureRate share of it.
	opportunityFTEs := 0.0
	if est.Known && est.FTEs > 0 && medianVal > 0 && est.FTEs > medianVal {
		opportunityFTEs = round1(captureRate * (est.FTEs - medianVal))
	}
	excessAboveMedian := 0.0
	if est.Known && est.FTEs > 0 && medianVal > 0 {
		excessAboveMedian = round1(est.FTEs - medianVal)
	}

	// AI: roles already well below benchmark are judged lean, so their
	// declared efficiency percentages are dampened.
	adjustment := 1.0
	if pctVsMedian <= policy.LeanThresholdPct {
		adjustment = policy.LeanDampeningFactor
	}
	hz := in.Horizons
	var impactFTEs *float64
	if est.Known && est.FTEs > 0 {
		impactFTEs = floatPtr(round1(est.FTEs * hz.TotalImpactPct / 100 * adjustment))
	}

	// Offshoring: gap vs benchmark mix, clamped at zero.
	gapPct := in.Offshoring.BenchmarkOffshorePct - currentOffshorePct
	if gapPct < 0 {
		gapPct = 0
	}
	var gapFTEs *float64
	if est.Known && est.FTEs > 0 {
		gapFTEs = floatPtr(round1(est.FTEs * gapPct / 100))
	}

	// Costs: blended on today's mix. Missing cost data falls back to fixed
	// defaults; an explicit zero in the cost document is kept as zero.
	onshoreUSD := policy.DefaultOnshoreUSD
	if in.Cost.OnshoreUSD != nil {
		onshoreUSD = *in.Cost.OnshoreUSD
	}
	offshoreUSD := policy.DefaultOffshoreUSD
	if in.Cost.OffshoreUSD != nil {
		offshoreUSD = *in.Cost.OffshoreUSD
	}
	blended := blendedFTECost(onshoreUSD, offshoreUSD, currentOffshorePct)

	offshoreRating := in.Offshoring.OffshoreRating
	if offshoreRating == "" {
		offshoreRating = "N/A"
	}

	role := &RoleEstimate{
		Role:               bench.Role,
		Short:              bench.Short,
		Description:        bench.Description,
		FTESource:          est.Source,
		FTESourceNote:      est.Note,
		CurrentOffshorePct: currentOffshorePct,
		BenchmarkRange:     [2]*float64{benchLow, benchHigh},
		BenchmarkMedian:    benchMedian,
		PctVsBenchmark:     pctVsMedian,
		Productivity: ProductivityEstimate{
			OpportunityFTEs:   opportunityFTEs,
			ExcessAboveMedian: excessAboveMedian,
			HasOpportunity:    opportunityFTEs > 0,
		},
		AI: AIEstimate{
			H1Automate:        hz.Horizons.H1Automate,
			H2AIAssisted:      hz.Horizons.H2AIAssisted,
			H3Agentic:         hz.Horizons.H3Agentic,
			TotalImpactPct:    hz.TotalImpactPct,
			EfficiencyPct2026: round1(hz.EfficiencyPct2026 * adjustment),
			EfficiencyPct2027: round1(hz.EfficiencyPct2027 * adjustment),
			EfficiencyPct2028: round1(hz.EfficiencyPct2028 * adjustment),
			AdjustmentFactor:  adjustment,
			ImpactFTEs:        impactFTEs,
		},
		Offshoring: OffshoringEstimate{
			Rating:               offshoreRating,
			Rationale:            in.Offshoring.Rationale,
			CurrentOffshorePct:   currentOffshorePct,
			BenchmarkOffshorePct: in.Offshoring.BenchmarkOffshorePct,
			GapPct:               gapPct,
			GapFTEs:              gapFTEs,
			Notes:                in.Offshoring.Notes,
		},
		Costs: CostEstimate{
			OnshoreUSD:  onshoreUSD,
			OffshoreUSD: offshoreUSD,
			BlendedCost: roundDollars(blended),
		},
	}
	if est.Known {
		role.EstimatedFTEs = floatPtr(est.FTEs)
	}
	return role
}
