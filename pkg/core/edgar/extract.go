package edgar

import (
	"fmt"
	"log"
	"math"
	"sort"
	"strings"
)

// Revenue and cost-of-revenue tags vary by filer; each is checked and
// the most recent annual value across all tags wins.
var revenueTags = []string{
	"Revenues",
	"RevenueFromContractWithCustomerExcludingAssessedTax",
	"RevenueFromContractWithCustomerIncludingAssessedTax",
	"SalesRevenueNet",
	"SalesRevenueGoodsAndServicesNet",
	"SalesRevenueServicesNet",
}

var cogsTags = []string{
	"CostOfRevenue",
	"CostOfGoodsAndServicesSold",
	"CostOfGoodsSold",
	"CostOfServices",
	"CostOfGoodsAndServiceExcludingDepreciationDepletionAndAmortization",
	"CostOfRevenueExcludingDepreciationAndAmortization",
}

// CompanyFinancials is the comparison slice of a filer's latest 10-K.
type CompanyFinancials struct {
	Name       string   `json:"name"`
	RevenueUSD *int64   `json:"revenue_usd"`
	CogsUSD    *int64   `json:"cogs_usd"`
	CogsPct    *float64 `json:"cogs_pct"`
}

type datedValue struct {
	end string
	val int64
}

// annualLatest returns the most recent annual (10-K or FY) value of
// one series, or nil.
func annualLatest(values []FactValue) *datedValue {
	var annual []FactValue
	for _, v := range values {
		if v.Form == "10-K" || v.FP == "FY" {
			annual = append(annual, v)
		}
	}
	if len(annual) == 0 {
		return nil
	}
	sort.SliceStable(annual, func(i, j int) bool { return annual[i].End > annual[j].End })
	if annual[0].Val == nil {
		return nil
	}
	return &datedValue{end: annual[0].End, val: int64(*annual[0].Val)}
}

func latestAcrossTags(facts *CompanyFacts, taxonomy string, tags []string) *int64 {
	series, ok := facts.Facts[taxonomy]
	if !ok {
		return nil
	}
	var candidates []datedValue
	for _, tag := range tags {
		fact, ok := series[tag]
		if !ok {
			continue
		}
		if latest := annualLatest(fact.Units["USD"]); latest != nil {
			candidates = append(candidates, *latest)
		}
	}
	if len(candidates) == 0 {
		return nil
	}
	sort.SliceStable(candidates, func(i, j int) bool { return candidates[i].end > candidates[j].end })
	v := candidates[0].val
	return &v
}

// LatestRevenueUSD extracts the latest annual revenue from company facts.
func LatestRevenueUSD(facts *CompanyFacts) *int64 {
	return latestAcrossTags(facts, "us-gaap", revenueTags)
}

// LatestCOGSUSD extracts the latest annual cost of revenue from company facts.
func LatestCOGSUSD(facts *CompanyFacts) *int64 {
	return latestAcrossTags(facts, "us-gaap", cogsTags)
}

// EmployeeCount extracts the latest dei:NumberOfEmployees value, if reported.
func EmployeeCount(facts *CompanyFacts) *int {
	dei, ok := facts.Facts["dei"]
	if !ok {
		return nil
	}
	fact, ok := dei["NumberOfEmployees"]
	if !ok {
		return nil
	}
	for unit, values := range fact.Units {
		if unit == "USD" {
			continue
		}
		latest := annualLatest(values)
		if latest == nil {
			// Some filers report without form/fp metadata.
			all := append([]FactValue(nil), values...)
			sort.SliceStable(all, func(i, j int) bool { return all[i].End > all[j].End })
			if len(all) > 0 && all[0].Val != nil {
				n := int(*all[0].Val)
				return &n
			}
			continue
		}
		n := int(latest.val)
		return &n
	}
	return nil
}

// GetCompanyFinancials returns revenue, COGS and COGS % for a company
// from its latest 10-K. Missing data yields nil fields, never an error.
func (c *Client) GetCompanyFinancials(cik string, companyName string) CompanyFinancials {
	facts, err := c.FetchCompanyFacts(cik)
	if err != nil {
		log.Printf("[EDGAR] %v", err)
	}
	subs, err := c.FetchSubmissions(cik)
	if err != nil {
		log.Printf("[EDGAR] %v", err)
	}

	name := companyName
	if name == "" && subs != nil {
		name = strings.TrimSpace(subs.Name)
	}
	if name == "" && facts != nil {
		name = facts.EntityName
	}
	if name == "" {
		name = "Unknown"
	}

	fin := CompanyFinancials{Name: name}
	if facts != nil {
		fin.RevenueUSD = LatestRevenueUSD(facts)
		fin.CogsUSD = LatestCOGSUSD(facts)
	}
	if fin.RevenueUSD != nil && fin.CogsUSD != nil && *fin.RevenueUSD > 0 {
		pct := math.Round(float64(*fin.CogsUSD)/float64(*fin.RevenueUSD)*1000) / 10
		fin.CogsPct = &pct
	}
	return fin
}

// PublicSummary builds a text summary of the company's public SEC data
// (revenue, employees) for use as agent context.
func (c *Client) PublicSummary(cik string, companyName string) string {
	facts, err := c.FetchCompanyFacts(cik)
	if err != nil {
		log.Printf("[EDGAR] %v", err)
	}
	subs, err := c.FetchSubmissions(cik)
	if err != nil {
		log.Printf("[EDGAR] %v", err)
	}

	name := companyName
	if name == "" && facts != nil {
		name = facts.EntityName
	}
	if name == "" && subs != nil {
		name = strings.TrimSpace(subs.Name)
	}
	if name == "" {
		name = "Unknown"
	}

	lines := []string{
		"Company: " + name,
		"SEC CIK: " + PadCIK(cik),
		"",
	}

	var revenue *int64
	if facts != nil {
		revenue = LatestRevenueUSD(facts)
		if emp := EmployeeCount(facts); emp != nil {
			lines = append(lines, fmt.Sprintf("Employees (from latest 10-K): %d", *emp), "")
		}
	}
	if revenue != nil {
		lines = append(lines, fmt.Sprintf("Latest annual revenue (USD): $%.0fM (from SEC filings)", float64(*revenue)/1_000_000))
	} else {
		lines = append(lines, "Latest annual revenue: not found in SEC company facts (company may use different reporting).")
	}
	lines = append(lines, "",
		"(Use this scale and any employee/revenue data above to benchmark customer-facing functions and estimate optimization potential. If revenue or headcount is missing, state assumptions.)")
	return strings.Join(lines, "\n")
}
