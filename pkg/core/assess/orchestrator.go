package assess

import (
	"fmt"

	"customer_ops_assessment/pkg/core/config"
	"customer_ops_assessment/pkg/core/refdata"
)

// Run executes the full assessment for one company. All reference documents
// are loaded up front (strict read-then-compute); any missing or malformed
// document fails the whole invocation with a configuration error. The result
// is built fresh and is safe to serialize immediately.
func Run(cfg config.CompanyConfig, store *refdata.Store, policy Policy) (*AssessmentResult, error) {
	// ----------------------------------------------------------------
	// Read phase: every document resolves before any computation.
	// ----------------------------------------------------------------
	overrides, err := store.LoadOverrides(cfg.RolesFile)
	if err != nil {
		return nil, err
	}
	benchmarks, err := store.LoadBenchmarks(cfg.BenchmarksFile)
	if err != nil {
		return nil, err
	}
	horizons, err := store.LoadHorizons(cfg.AIHorizonsFile)
	if err != nil {
		return nil, err
	}
	offshoring, err := store.LoadOffshoring(cfg.OffshoringFile)
	if err != nil {
		return nil, err
	}
	costs, err := store.LoadCosts(cfg.RoleCostsFile)
	if err != nil {
		return nil, err
	}
	commentary, err := store.LoadCommentary(cfg.CommentaryFile)
	if err != nil {
		return nil, err
	}
	var useCases []refdata.UseCase
	if cfg.UseCasesFile != "" {
		useCases, err = store.LoadUseCases(cfg.UseCasesFile)
		if err != nil {
			return nil, err
		}
	}

	// ----------------------------------------------------------------
	// Compute phase: pure arithmetic over the loaded documents.
	// ----------------------------------------------------------------
	company := ResolveCompanyFinancials(overrides.Metadata)
	revenue100M := 0.0
	if company.RevenueUSD > 0 {
		revenue100M = float64(company.RevenueUSD) / 100_000_000
	}
	peers := BuildPeerComparison(cfg.Peers)

	functions := make([]*FunctionResult, 0, len(cfg.FuncKeys))
	for _, key := range cfg.FuncKeys {
		funcBench, ok := benchmarks[key]
		if !ok || funcBench == nil {
			return nil, &refdata.ConfigError{
				Resource: cfg.BenchmarksFile,
				Err:      fmt.Errorf("no benchmark entry for function %q", key),
			}
		}
		functions = append(functions, AssessFunction(FunctionInputs{
			Key:        key,
			Benchmarks: funcBench,
			Overrides:  overrides.Functions[key],
			Horizons:   horizons[key],
			Offshoring: offshoring[key],
			Costs:      costs[key],
			Commentary: commentary[key],
		}, revenue100M, cfg.ProductivityCaptureRate, policy))
	}

	var totalEst, totalAI, totalOffshoreGap, totalProductivity float64
	for _, fn := range functions {
		if fn.EstimatedTotalFTEs != nil {
			totalEst += float64(*fn.EstimatedTotalFTEs)
		}
		totalAI += fn.Summary.TotalAIAddressableFTEs
		totalOffshoreGap += fn.Summary.TotalOffshoreGapFTEs
		totalProductivity += fn.Summary.TotalProductivityFTEs
	}

	summary := Summary{
		TotalCustomerOpsFTEs:   roundInt(totalEst),
		TotalAIAddressableFTEs: roundInt(totalAI),
		TotalOffshoreGapFTEs:   roundInt(totalOffshoreGap),
		TotalProductivityFTEs:  roundInt(totalProductivity),
	}
	if totalEst > 0 {
		summary.AIPctOfTotal = floatPtr(round1(totalAI / totalEst * 100))
		summary.OffshoreGapPctOfTotal = floatPtr(round1(totalOffshoreGap / totalEst * 100))
		summary.ProductivityPctOfTotal = floatPtr(round1(totalProductivity / totalEst * 100))
	}

	return &AssessmentResult{
		Company:        company,
		PeerFinancials: peers,
		Functions:      functions,
		Summary:        summary,
		DollarImpact:   ComputeDollarImpact(functions, policy),
		Roadmap:        BuildRoadmap(functions, useCases, policy),
	}, nil
}
