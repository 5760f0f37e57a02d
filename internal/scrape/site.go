package scrape

import (
	"fmt"

	"github.com/PuerkitoBio/goquery"

	"github.com/jonathan/outreach-agent/internal/fetch"
	"github.com/jonathan/outreach-agent/internal/sites"
	"github.com/jonathan/outreach-agent/internal/types"
)

// StrategySite is the strategy id for site-specific selector extraction.
const StrategySite = "site-selectors"

// siteStrategy targets the known DOM structure of a recognized job board
// using the selector registry.
type siteStrategy struct{}

func (s *siteStrategy) ID() string { return StrategySite }

func (s *siteStrategy) Extract(doc *goquery.Document, page *fetch.Page) (types.JobRecord, string) {
	var rec types.JobRecord

	if doc == nil {
		return rec, "page HTML did not parse"
	}
	if !sites.HasSelectors(page.Profile) {
		return rec, fmt.Sprintf("no site-specific selectors for profile %q", page.Profile)
	}

	rules := sites.Selectors(page.Profile)
	rec.Title = firstText(doc, rules.Title, minTitleLength)
	rec.Company = firstText(doc, rules.Company, minCompanyLength)

	diagnostic := fmt.Sprintf("profile %s: title=%t company=%t", page.Profile, rec.Title != "", rec.Company != "")
	return rec, diagnostic
}
