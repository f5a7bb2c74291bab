package assess

import (
	"math"

	"customer_ops_assessment/pkg/core/config"
	"customer_ops_assessment/pkg/core/refdata"
)

// ResolveCompanyFinancials normalizes the company metadata block into the
// financial record carried on the assessment result.
func ResolveCompanyFinancials(meta refdata.CompanyMetadata) CompanyFinancials {
	return CompanyFinancials{
		Name:                 meta.Company,
		Ticker:               nil,
		Ownership:            meta.Ownership,
		Industry:             meta.Industry,
		CliniciansOnPlatform: meta.CliniciansOnPlatform,
		RevenueUSD:           meta.RevenueUSD,
		Employees:            meta.TotalEmployees,
		RevenuePerEmployee:   revenuePerEmployee(meta.RevenueUSD, meta.TotalEmployees),
		IndiaEmployees:       meta.IndiaEmployees,
		IndiaLocations:       emptyIfNil(meta.IndiaLocations),
		USLocations:          emptyIfNil(meta.USLocations),
	}
}

// BuildPeerComparison computes revenue-per-employee for each configured peer
// under the same null-guard as the company itself.
func BuildPeerComparison(peers []config.Peer) []PeerFinancials {
	out := make([]PeerFinancials, 0, len(peers))
	for _, p := range peers {
		out = append(out, PeerFinancials{
			Name:               p.Name,
			RevenueUSD:         p.RevenueUSD,
			Employees:          p.Employees,
			RevenuePerEmployee: revenuePerEmployee(p.RevenueUSD, p.Employees),
			Note:               p.Note,
		})
	}
	return out
}

func revenuePerEmployee(revenueUSD int64, employees int) *int64 {
	if revenueUSD <= 0 || employees <= 0 {
		return nil
	}
	return int64Ptr(int64(math.Round(float64(revenueUSD) / float64(employees))))
}

func emptyIfNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
