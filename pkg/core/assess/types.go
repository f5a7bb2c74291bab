// Package assess is the assessment computation engine. It turns immutable
// reference data into a per-company optimization assessment: role-level
// estimates, function aggregates, a three-year dollar-impact projection,
// and a prioritized roadmap. Everything here is pure in-memory arithmetic;
// all I/O happens before Run is called.
package assess

import "customer_ops_assessment/pkg/core/refdata"

// FTE estimate sources. Downstream code branches on the source tag, never
// on "is the value null".
const (
	SourceJobIndicators    = "job_indicators"
	SourceRevenueBenchmark = "revenue_benchmark"
)

// FTEEstimate is the dual-source role headcount estimate: either a
// company-specific override (job indicators) or a figure derived from the
// revenue benchmark. Known is false when neither basis exists.
type FTEEstimate struct {
	FTEs   float64
	Known  bool
	Source string
	Note   string
}

// CompanyFinancials is the normalized financial record for the assessed
// company. RevenuePerEmployee is nil when revenue or headcount is missing.
type CompanyFinancials struct {
	Name                 string   `json:"name"`
	Ticker               *string  `json:"ticker"`
	Ownership            string   `json:"ownership"`
	Industry             string   `json:"industry"`
	CliniciansOnPlatform *int     `json:"clinicians_on_platform"`
	RevenueUSD           int64    `json:"revenue_usd"`
	Employees            int      `json:"employees"`
	RevenuePerEmployee   *int64   `json:"revenue_per_employee"`
	IndiaEmployees       *int     `json:"india_employees"`
	IndiaLocations       []string `json:"india_locations"`
	USLocations          []string `json:"us_locations"`
}

// PeerFinancials is one row of the peer comparison.
type PeerFinancials struct {
	Name               string `json:"name"`
	RevenueUSD         int64  `json:"revenue_usd"`
	Employees          int    `json:"employees"`
	RevenuePerEmployee *int64 `json:"revenue_per_employee"`
	Note               string `json:"note"`
}

// ProductivityEstimate is the above-benchmark headcount lever for one role.
type ProductivityEstimate struct {
	OpportunityFTEs   float64 `json:"opportunity_ftes"`
	ExcessAboveMedian float64 `json:"excess_above_median"`
	HasOpportunity    bool    `json:"has_opportunity"`
}

// AIEstimate is the AI efficiency lever for one role. The per-year
// percentages are already dampened for lean roles; ImpactFTEs is nil when
// the role has no estimated headcount.
type AIEstimate struct {
	H1Automate        refdata.Horizon `json:"h1_automate"`
	H2AIAssisted      refdata.Horizon `json:"h2_ai_assisted"`
	H3Agentic         refdata.Horizon `json:"h3_agentic"`
	TotalImpactPct    float64         `json:"total_impact_pct"`
	EfficiencyPct2026 float64         `json:"efficiency_pct_2026"`
	EfficiencyPct2027 float64         `json:"efficiency_pct_2027"`
	EfficiencyPct2028 float64         `json:"efficiency_pct_2028"`
	AdjustmentFactor  float64         `json:"ai_adjustment_factor"`
	ImpactFTEs        *float64        `json:"impact_ftes"`
}

// OffshoringEstimate is the offshore-mix lever for one role. Negative gaps
// clamp to zero; the model never recommends reshoring.
type OffshoringEstimate struct {
	Rating               string   `json:"rating"`
	Rationale            string   `json:"rationale"`
	CurrentOffshorePct   float64  `json:"current_offshore_pct"`
	BenchmarkOffshorePct float64  `json:"benchmark_offshore_pct"`
	GapPct               float64  `json:"gap_pct"`
	GapFTEs              *float64 `json:"gap_ftes"`
	Notes                string   `json:"notes"`
}

// CostEstimate is the role's cost basis. BlendedCost reflects the current
// offshore mix (today's cost base), not the benchmark mix.
type CostEstimate struct {
	OnshoreUSD  float64 `json:"onshore_usd"`
	OffshoreUSD float64 `json:"offshore_usd"`
	BlendedCost int64   `json:"blended_cost"`
}

// RoleEstimate is the full per-role assessment. Derived fields that depend
// on an unknown FTE count are nil or zero, never errors.
type RoleEstimate struct {
	Role               string               `json:"role"`
	Short              string               `json:"short"`
	Description        string               `json:"description"`
	EstimatedFTEs      *float64             `json:"estimated_ftes"`
	FTESource          string               `json:"fte_source"`
	FTESourceNote      string               `json:"fte_source_note"`
	CurrentOffshorePct float64              `json:"current_offshore_pct"`
	BenchmarkRange     [2]*float64          `json:"benchmark_range"`
	BenchmarkMedian    *float64             `json:"benchmark_median"`
	PctVsBenchmark     float64              `json:"pct_vs_benchmark"`
	Productivity       ProductivityEstimate `json:"productivity"`
	AI                 AIEstimate           `json:"ai"`
	Offshoring         OffshoringEstimate   `json:"offshoring"`
	Costs              CostEstimate         `json:"costs"`
}

// FunctionSummary sums the three levers across a function's roles.
type FunctionSummary struct {
	TotalAIAddressableFTEs float64 `json:"total_ai_addressable_ftes"`
	TotalOffshoreGapFTEs   float64 `json:"total_offshore_gap_ftes"`
	TotalProductivityFTEs  float64 `json:"total_productivity_ftes"`
}

// FunctionResult aggregates one function. EstimatedTotalFTEs honors a
// company-level override, so it need not equal the sum of role estimates.
type FunctionResult struct {
	Function              string             `json:"function"`
	FunctionKey           string             `json:"function_key"`
	TypicalPctOfHeadcount string             `json:"typical_pct_of_headcount"`
	EstimatedTotalFTEs    *int               `json:"estimated_total_ftes"`
	EstimationNote        string             `json:"estimation_note"`
	Roles                 []*RoleEstimate    `json:"roles"`
	Summary               FunctionSummary    `json:"summary"`
	Commentary            refdata.Commentary `json:"commentary"`
}

// LeverImpact is one year's dollar breakdown. Total is always the sum of
// the three levers.
type LeverImpact struct {
	Productivity int64 `json:"productivity"`
	AI           int64 `json:"ai"`
	Offshoring   int64 `json:"offshoring"`
	Total        int64 `json:"total"`
}

// DollarImpact maps forecast year ("2026"..."2028") to its breakdown.
type DollarImpact map[string]LeverImpact

// LeverItem is a role-level roadmap action (productivity or offshoring).
type LeverItem struct {
	Role        string  `json:"role"`
	Function    string  `json:"function"`
	FunctionKey string  `json:"function_key"`
	Lever       string  `json:"lever"`
	Year        int     `json:"year"`
	ImpactFTEs  float64 `json:"impact_ftes"`
	Description string  `json:"description"`
}

// YearPlan buckets roadmap items for a single year.
type YearPlan struct {
	Productivity []LeverItem       `json:"productivity"`
	Offshoring   []LeverItem       `json:"offshoring"`
	AI           []refdata.UseCase `json:"ai"`
}

// Roadmap is the prioritized action list: lever items in year one, AI use
// cases bucketed by their pre-tagged target year.
type Roadmap struct {
	Years      map[string]*YearPlan `json:"years"`
	AIUseCases []refdata.UseCase    `json:"ai_use_cases"`
}

// Summary holds the top-level totals across all assessed functions.
type Summary struct {
	TotalCustomerOpsFTEs   int      `json:"total_customer_ops_ftes"`
	TotalAIAddressableFTEs int      `json:"total_ai_addressable_ftes"`
	TotalOffshoreGapFTEs   int      `json:"total_offshore_gap_ftes"`
	TotalProductivityFTEs  int      `json:"total_productivity_ftes"`
	AIPctOfTotal           *float64 `json:"ai_pct_of_total"`
	OffshoreGapPctOfTotal  *float64 `json:"offshore_gap_pct_of_total"`
	ProductivityPctOfTotal *float64 `json:"productivity_pct_of_total"`
}

// AssessmentResult is the sole externally consumed artifact, produced fresh
// on every run and never mutated after construction.
type AssessmentResult struct {
	Company        CompanyFinancials `json:"company"`
	PeerFinancials []PeerFinancials  `json:"peer_financials"`
	Functions      []*FunctionResult `json:"functions"`
	Summary        Summary           `json:"summary"`
	DollarImpact   DollarImpact      `json:"dollar_impact"`
	Roadmap        *Roadmap          `json:"roadmap"`
}
