package assess

// Policy isolates the model's tunable constants so the projection stays
// auditable and testable in isolation. Changing any ramp fraction changes
// every downstream dollar figure.
type Policy struct {
	// ProductivityYear1Ramp is the share of the productivity run-rate
	// realized in the first forecast year (full run-rate from year two).
	ProductivityYear1Ramp float64
	// OffshoringYear1Ramp is the first-year share of the offshoring run-rate.
	OffshoringYear1Ramp float64
	// LeanDampeningFactor scales AI efficiency for roles already running
	// lean (at or below LeanThresholdPct vs benchmark median).
	LeanDampeningFactor float64
	LeanThresholdPct    float64
	// RoadmapOffshoreMinFTEs filters sub-scale offshoring gaps out of the
	// roadmap; gaps must be strictly greater than this to be actionable.
	RoadmapOffshoreMinFTEs float64
	// Default annual cost per FTE when a role has no cost entry. Preserved
	// verbatim for reproducibility of existing baselines.
	DefaultOnshoreUSD  float64
	DefaultOffshoreUSD float64
	// Forecast years, earliest first.
	Years [3]int
}

// DefaultPolicy returns the baseline model constants.
func DefaultPolicy() Policy {
	return Policy{
		ProductivityYear1Ramp:  0.75,
		OffshoringYear1Ramp:    0.50,
		LeanDampeningFactor:    0.85,
		LeanThresholdPct:       -10.0,
		RoadmapOffshoreMinFTEs: 2.0,
		DefaultOnshoreUSD:      120000,
		DefaultOffshoreUSD:     38000,
		Years:                  [3]int{2026, 2027, 2028},
	}
}
