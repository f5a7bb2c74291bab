// Package edgar fetches public company data from SEC EDGAR (company
// facts and submissions). SEC requires a descriptive User-Agent; the
// data is assessment context only and never feeds the core engine.
package edgar

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const (
	// Required User-Agent per SEC guidelines
	UserAgent = "CustomerOpsOptimizer/1.0 (assessment tool; contact via your-org)"

	defaultDataBaseURL    = "https://data.sec.gov"
	defaultArchiveBaseURL = "https://www.sec.gov"
)

// FactValue is one reported datapoint inside a company-facts series.
type FactValue struct {
	End  string   `json:"end"`
	Val  *float64 `json:"val"`
	Form string   `json:"form"`
	FP   string   `json:"fp"`
}

// FactSeries groups datapoints by unit ("USD", "pure", ...).
type FactSeries struct {
	Units map[string][]FactValue `json:"units"`
}

// CompanyFacts is the XBRL company-facts document, keyed by taxonomy
// ("us-gaap", "dei") then tag.
type CompanyFacts struct {
	EntityName string                           `json:"entityName"`
	Facts      map[string]map[string]FactSeries `json:"facts"`
}

// RecentFilings holds the parallel arrays of the submissions feed.
type RecentFilings struct {
	AccessionNumber []string `json:"accessionNumber"`
	FilingDate      []string `json:"filingDate"`
	ReportDate      []string `json:"reportDate"`
	Form            []string `json:"form"`
	PrimaryDocument []string `json:"primaryDocument"`
}

// Submissions is the filings metadata document for one company.
type Submissions struct {
	CIK     string `json:"cik"`
	Name    string `json:"name"`
	Filings struct {
		Recent RecentFilings `json:"recent"`
	} `json:"filings"`
}

// Client handles SEC EDGAR API requests. Base URLs are configurable
// for tests.
type Client struct {
	DataBaseURL    string
	ArchiveBaseURL string
	httpClient     *http.Client
}

// NewClient creates a SEC EDGAR client with the 15s timeout the SEC
// fair-access guidance suggests staying well inside.
func NewClient() *Client {
	return &Client{
		DataBaseURL:    defaultDataBaseURL,
		ArchiveBaseURL: defaultArchiveBaseURL,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

// PadCIK returns the 10-digit, zero-padded CIK string.
func PadCIK(cik string) string {
	cik = strings.TrimLeft(strings.TrimSpace(cik), "0")
	return fmt.Sprintf("%010s", cik)
}

// FetchCompanyFacts retrieves the XBRL company facts document.
func (c *Client) FetchCompanyFacts(cik string) (*CompanyFacts, error) {
	url := fmt.Sprintf("%s/api/xbrl/companyfacts/CIK%s.json", c.DataBaseURL, PadCIK(cik))

	body, err := c.fetch(url, "application/json")
	if err != nil {
		return nil, fmt.Errorf("company facts fetch failed for CIK %s: %w", cik, err)
	}

	var facts CompanyFacts
	if err := json.Unmarshal(body, &facts); err != nil {
		return nil, fmt.Errorf("company facts parse failed for CIK %s: %w", cik, err)
	}
	return &facts, nil
}

// FetchSubmissions retrieves the filings metadata document.
func (c *Client) FetchSubmissions(cik string) (*Submissions, error) {
	url := fmt.Sprintf("%s/submissions/CIK%s.json", c.DataBaseURL, PadCIK(cik))

	body, err := c.fetch(url, "application/json")
	if err != nil {
		return nil, fmt.Errorf("submissions fetch failed for CIK %s: %w", cik, err)
	}

	var subs Submissions
	if err := json.Unmarshal(body, &subs); err != nil {
		return nil, fmt.Errorf("submissions parse failed for CIK %s: %w", cik, err)
	}
	return &subs, nil
}

func (c *Client) fetch(url string, accept string) ([]byte, error) {
	req, err := http.NewRequest("GET", url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	// SEC requires User-Agent header
	req.Header.Set("User-Agent", UserAgent)
	req.Header.Set("Accept", accept)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("SEC request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("SEC returned status %d", resp.StatusCode)
	}

	return io.ReadAll(resp.Body)
}
