// Package refdata loads the static per-company reference tables that drive
// the customer operations assessment: role benchmarks, AI impact horizons,
// offshoring targets, role costs, company-specific role overrides, function
// commentary, and the AI use-case catalog.
package refdata

// Function keys used across every reference document.
const (
	FuncProfessionalServices = "professional_services"
	FuncCustomerSuccess      = "customer_success"
	FuncCustomerSupport      = "customer_support"
)

// RoleBenchmark is one role's industry benchmark, expressed as FTEs per
// $100M revenue (low/high range plus median).
type RoleBenchmark struct {
	Role             string     `json:"role"`
	Short            string     `json:"short"`
	Description      string     `json:"description"`
	FTEPer100M       [2]float64 `json:"fte_per_100m"` // [low, high]
	MedianFTEPer100M float64    `json:"median_fte_per_100m"`
}

// FunctionBenchmarks groups the role benchmarks for one function.
type FunctionBenchmarks struct {
	Label                      string          `json:"label"`
	TypicalPctOfTotalHeadcount string          `json:"typical_pct_of_total_headcount"`
	Roles                      []RoleBenchmark `json:"roles"`
}

// BenchmarkDoc is keyed by function key.
type BenchmarkDoc map[string]*FunctionBenchmarks

// Horizon describes one AI-maturity stage for a role.
type Horizon struct {
	ImpactPct float64 `json:"impact_pct"`
	Summary   string  `json:"summary,omitempty"`
}

// Horizons holds the three AI-maturity stages (automate / AI-assisted / agentic).
type Horizons struct {
	H1Automate   Horizon `json:"h1_automate"`
	H2AIAssisted Horizon `json:"h2_ai_assisted"`
	H3Agentic    Horizon `json:"h3_agentic"`
}

// RoleHorizons declares a role's AI efficiency forecast. The per-year
// percentages are the undamped inputs; the estimator applies the lean-role
// adjustment before they reach any output.
type RoleHorizons struct {
	Role              string   `json:"role"`
	Horizons          Horizons `json:"horizons"`
	TotalImpactPct    float64  `json:"total_impact_pct"`
	EfficiencyPct2026 float64  `json:"efficiency_pct_2026"`
	EfficiencyPct2027 float64  `json:"efficiency_pct_2027"`
	EfficiencyPct2028 float64  `json:"efficiency_pct_2028"`
}

// HorizonsDoc is keyed by function key.
type HorizonsDoc map[string][]RoleHorizons

// RoleOffshoring declares a role's benchmark offshore mix.
type RoleOffshoring struct {
	Role                 string  `json:"role"`
	OffshoreRating       string  `json:"offshore_rating"`
	Rationale            string  `json:"rationale"`
	BenchmarkOffshorePct float64 `json:"benchmark_offshore_pct"`
	Notes                string  `json:"notes"`
}

// OffshoringDoc is keyed by function key.
type OffshoringDoc map[string][]RoleOffshoring

// RoleCost holds annual fully-loaded cost per FTE by location. Pointer
// fields keep an explicit zero distinct from an absent entry; only absent
// values fall back to the policy defaults.
type RoleCost struct {
	OnshoreUSD  *float64 `json:"onshore_usd"`
	OffshoreUSD *float64 `json:"offshore_usd"`
}

// CostsDoc is keyed by function key, then role name.
type CostsDoc map[string]map[string]RoleCost

// CompanyMetadata is the normalized financial block carried in the company
// overrides document.
type CompanyMetadata struct {
	Company              string   `json:"company"`
	Ownership            string   `json:"ownership"`
	Industry             string   `json:"industry"`
	RevenueUSD           int64    `json:"revenue_usd"`
	TotalEmployees       int      `json:"total_employees"`
	CliniciansOnPlatform *int     `json:"clinicians_on_platform,omitempty"`
	IndiaEmployees       *int     `json:"india_employees,omitempty"`
	IndiaLocations       []string `json:"india_locations,omitempty"`
	USLocations          []string `json:"us_locations,omitempty"`
}

// RoleOverride is a company-specific job-indicator estimate for one role.
// A nil EstimatedFTEs means the override only pins the offshore mix.
type RoleOverride struct {
	EstimatedFTEs      *float64 `json:"estimated_ftes"`
	Source             string   `json:"source,omitempty"`
	SourceNote         string   `json:"source_note,omitempty"`
	CurrentOffshorePct float64  `json:"current_offshore_pct,omitempty"`
}

// FunctionOverrides carries company-supplied figures for one function.
type FunctionOverrides struct {
	EstimatedTotalFTEs float64                 `json:"estimated_total_ftes,omitempty"`
	EstimationNote     string                  `json:"estimation_note,omitempty"`
	Roles              map[string]RoleOverride `json:"roles,omitempty"`
}

// OverridesDoc is the company roles document: financial metadata plus
// job-indicator overrides keyed by function key.
type OverridesDoc struct {
	Metadata  CompanyMetadata              `json:"metadata"`
	Functions map[string]FunctionOverrides `json:"functions"`
}

// Commentary is qualitative context attached to a function result.
type Commentary struct {
	Theme          string   `json:"theme"`
	Quotes         []string `json:"quotes"`
	InsightSummary string   `json:"insight_summary"`
}

// CommentaryDoc is keyed by function key.
type CommentaryDoc map[string]Commentary

// UseCase is one named AI initiative from the company's catalog. The
// roadmap builder buckets these by Year; it never recomputes their impact.
type UseCase struct {
	ID                           string   `json:"id"`
	Name                         string   `json:"name"`
	Description                  string   `json:"description"`
	Mechanism                    string   `json:"mechanism"`
	Year                         int      `json:"year"`
	Half                         string   `json:"half"`
	Category                     string   `json:"category"`
	Horizon                      string   `json:"horizon"`
	ImpactedRoles                []string `json:"impacted_roles"`
	ImpactedFunctions            []string `json:"impacted_functions"`
	EstimatedTicketDeflectionPct *float64 `json:"estimated_ticket_deflection_pct"`
	EstimatedFTEImpact           float64  `json:"estimated_fte_impact"`
}

// UseCasesDoc is the flat catalog for one company.
type UseCasesDoc struct {
	UseCases []UseCase `json:"use_cases"`
}
