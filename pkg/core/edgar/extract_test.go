package edgar

import "testing"

func fv(end string, val float64, form, fp string) FactValue {
	return FactValue{End: end, Val: &val, Form: form, FP: fp}
}

func factsWith(gaap map[string]FactSeries) *CompanyFacts {
	return &CompanyFacts{
		EntityName: "Acme Health Inc",
		Facts:      map[string]map[string]FactSeries{"us-gaap": gaap},
	}
}

func TestLatestRevenuePicksMostRecentAnnual(t *testing.T) {
	facts := factsWith(map[string]FactSeries{
		"Revenues": {Units: map[string][]FactValue{"USD": {
			fv("2022-12-31", 1800000000, "10-K", "FY"),
			fv("2023-12-31", 2000000000, "10-K", "FY"),
			fv("2024-03-31", 550000000, "10-Q", "Q1"), // quarterly, ignored
		}}},
	})

	rev := LatestRevenueUSD(facts)
	if rev == nil || *rev != 2000000000 {
		t.Errorf("expected 2000000000, got %v", rev)
	}
}

func TestLatestRevenueSpansTags(t *testing.T) {
	// Filers switch tags across years; the newest annual across all
	// recognized tags wins.
	facts := factsWith(map[string]FactSeries{
		"Revenues": {Units: map[string][]FactValue{"USD": {
			fv("2021-12-31", 1500000000, "10-K", "FY"),
		}}},
		"RevenueFromContractWithCustomerExcludingAssessedTax": {Units: map[string][]FactValue{"USD": {
			fv("2023-12-31", 2300000000, "10-K", "FY"),
		}}},
	})

	rev := LatestRevenueUSD(facts)
	if rev == nil || *rev != 2300000000 {
		t.Errorf("expected the newer cross-tag value, got %v", rev)
	}
}

func TestLatestRevenueAcceptsFYWithoutTenK(t *testing.T) {
	facts := factsWith(map[string]FactSeries{
		"Revenues": {Units: map[string][]FactValue{"USD": {
			fv("2023-12-31", 900000000, "10-K/A", "FY"),
		}}},
	})

	rev := LatestRevenueUSD(facts)
	if rev == nil || *rev != 900000000 {
		t.Errorf("FY values from amended filings should qualify, got %v", rev)
	}
}

func TestLatestRevenueNilWhenNoAnnual(t *testing.T) {
	facts := factsWith(map[string]FactSeries{
		"Revenues": {Units: map[string][]FactValue{"USD": {
			fv("2024-03-31", 550000000, "10-Q", "Q1"),
		}}},
	})
	if rev := LatestRevenueUSD(facts); rev != nil {
		t.Errorf("quarterly-only series should yield nil, got %v", *rev)
	}
	if rev := LatestRevenueUSD(factsWith(nil)); rev != nil {
		t.Errorf("empty facts should yield nil, got %v", *rev)
	}
}

func TestLatestCOGS(t *testing.T) {
	facts := factsWith(map[string]FactSeries{
		"CostOfRevenue": {Units: map[string][]FactValue{"USD": {
			fv("2023-12-31", 800000000, "10-K", "FY"),
		}}},
	})
	cogs := LatestCOGSUSD(facts)
	if cogs == nil || *cogs != 800000000 {
		t.Errorf("expected 800000000, got %v", cogs)
	}
}

func TestEmployeeCountSkipsUSDUnit(t *testing.T) {
	facts := &CompanyFacts{Facts: map[string]map[string]FactSeries{
		"dei": {"NumberOfEmployees": {Units: map[string][]FactValue{
			"USD":  {fv("2023-12-31", 99, "10-K", "FY")}, // bad unit, skipped
			"pure": {fv("2023-12-31", 7700, "10-K", "FY")},
		}}},
	}}

	emp := EmployeeCount(facts)
	if emp == nil || *emp != 7700 {
		t.Errorf("expected 7700 employees, got %v", emp)
	}
}

func TestEmployeeCountFallsBackWithoutFormMetadata(t *testing.T) {
	facts := &CompanyFacts{Facts: map[string]map[string]FactSeries{
		"dei": {"NumberOfEmployees": {Units: map[string][]FactValue{
			"pure": {
				fv("2022-12-31", 7000, "", ""),
				fv("2023-12-31", 7700, "", ""),
			},
		}}},
	}}

	emp := EmployeeCount(facts)
	if emp == nil || *emp != 7700 {
		t.Errorf("expected latest value 7700, got %v", emp)
	}
}

func TestEmployeeCountNilWhenUnreported(t *testing.T) {
	if emp := EmployeeCount(factsWith(nil)); emp != nil {
		t.Errorf("expected nil, got %v", *emp)
	}
}

func TestPadCIK(t *testing.T) {
	cases := []struct{ in, want string }{
		{"1131096", "0001131096"},
		{"0001131096", "0001131096"},
		{" 320193 ", "0000320193"},
	}
	for _, tc := range cases {
		if got := PadCIK(tc.in); got != tc.want {
			t.Errorf("PadCIK(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
