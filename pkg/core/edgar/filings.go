package edgar

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// FilingRef identifies one filing well enough to fetch its documents.
type FilingRef struct {
	AccessionNumber string
	FilingDate      string
	ReportDate      string
	PrimaryDocument string
}

// LatestTenK scans the submissions feed for the most recent 10-K.
func LatestTenK(subs *Submissions) (*FilingRef, error) {
	recent := subs.Filings.Recent
	for i, form := range recent.Form {
		if form != "10-K" {
			continue
		}
		// Parallel arrays in the feed can arrive truncated.
		if i >= len(recent.AccessionNumber) {
			continue
		}
		ref := &FilingRef{AccessionNumber: recent.AccessionNumber[i]}
		if i < len(recent.FilingDate) {
			ref.FilingDate = recent.FilingDate[i]
		}
		if i < len(recent.ReportDate) {
			ref.ReportDate = recent.ReportDate[i]
		}
		if i < len(recent.PrimaryDocument) {
			ref.PrimaryDocument = recent.PrimaryDocument[i]
		}
		return ref, nil
	}
	return nil, fmt.Errorf("no 10-K in recent submissions for %s", subs.Name)
}

// PrimaryDocumentURL resolves the URL of a filing's primary document.
// When the submissions feed names it the URL is built directly;
// otherwise the filing index page is parsed to find it.
func (c *Client) PrimaryDocumentURL(cik string, ref *FilingRef) (string, error) {
	cikTrim := strings.TrimLeft(PadCIK(cik), "0")
	accession := strings.ReplaceAll(ref.AccessionNumber, "-", "")
	base := fmt.Sprintf("%s/Archives/edgar/data/%s/%s", c.ArchiveBaseURL, cikTrim, accession)

	if ref.PrimaryDocument != "" {
		return base + "/" + ref.PrimaryDocument, nil
	}

	body, err := c.fetch(base+"/", "text/html")
	if err != nil {
		return "", fmt.Errorf("filing index fetch failed: %w", err)
	}
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("filing index parse failed: %w", err)
	}

	// The index lists every document in the filing; the primary 10-K is
	// the first .htm that is not the index page itself.
	var primary string
	doc.Find("table a").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		href, ok := s.Attr("href")
		if !ok {
			return true
		}
		name := href[strings.LastIndex(href, "/")+1:]
		if !strings.HasSuffix(name, ".htm") || strings.Contains(name, "-index") {
			return true
		}
		primary = name
		return false
	})
	if primary == "" {
		return "", fmt.Errorf("no primary document found in filing index for %s", ref.AccessionNumber)
	}
	return base + "/" + primary, nil
}
