package scrape

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/jonathan/outreach-agent/internal/fetch"
	"github.com/jonathan/outreach-agent/internal/types"
)

// StrategyGeneric is the strategy id for generic heuristic selectors.
const StrategyGeneric = "generic-selectors"

const (
	minTitleLength       = 4
	minCompanyLength     = 3
	minDescriptionLength = 200
)

// genericTitleSelectors match title markup patterns common across boards
// and company career pages, most specific first.
var genericTitleSelectors = []string{
	`h1[class*="job-title"]`,
	`h1[class*="jobtitle"]`,
	`h1[class*="title"]`,
	`[data-testid="job-title"]`,
	`.job-title`,
	`.posting-headline h2`,
	`h1`,
}

// genericCompanySelectors match company-name markup patterns.
var genericCompanySelectors = []string{
	`[data-testid="company"]`,
	`[class*="company-name"]`,
	`[class*="companyName"]`,
	`[class*="employer"]`,
	`a[href*="/company/"]`,
	`a[href*="/employer/"]`,
	`[class*="company"]`,
}

// genericDescriptionSelectors is the description ladder, ordered by
// specificity. A match only counts when the block is long enough and
// mentions job vocabulary, so a matched sidebar never wins.
var genericDescriptionSelectors = []string{
	`[class*="job-description"]`,
	`[data-testid="job-description"]`,
	`[data-testid="description"]`,
	`[class*="description"]`,
	`[class*="job-details"]`,
	`[class*="details"]`,
	`[class*="requirements"]`,
	`[class*="responsibilities"]`,
	`[class*="content"]`,
	`main`,
	`article`,
	`[role="main"]`,
}

// jobVocabulary marks a text block as plausibly being a job description.
var jobVocabulary = []string{
	"requirements", "responsibilities", "experience", "skills",
	"qualifications", "duties", "role", "position",
}

// genericStrategy applies class/attribute name heuristics that hold across
// most job boards and career pages.
type genericStrategy struct{}

func (s *genericStrategy) ID() string { return StrategyGeneric }

func (s *genericStrategy) Extract(doc *goquery.Document, _ *fetch.Page) (types.JobRecord, string) {
	var rec types.JobRecord
	if doc == nil {
		return rec, "page HTML did not parse"
	}

	rec.Title = firstText(doc, genericTitleSelectors, minTitleLength)
	rec.Company = firstText(doc, genericCompanySelectors, minCompanyLength)

	diagnostic := fmt.Sprintf("generic selectors: title=%t company=%t", rec.Title != "", rec.Company != "")
	return rec, diagnostic
}

// genericDescription runs the description ladder, then falls back to the
// largest text block in the body.
func genericDescription(doc *goquery.Document) string {
	for _, selector := range genericDescriptionSelectors {
		var found string
		doc.Find(selector).EachWithBreak(func(_ int, sel *goquery.Selection) bool {
			text := cleanBlock(sel.Text())
			if len(text) >= minDescriptionLength && mentionsJobVocabulary(text) {
				found = text
				return false
			}
			return true
		})
		if found != "" {
			return found
		}
	}

	// Largest substantial block wins when no selector produced a
	// convincing description.
	var best string
	doc.Find("div, section, article, main").Each(func(_ int, sel *goquery.Selection) {
		text := cleanBlock(sel.Text())
		if len(text) > 300 && len(text) > len(best) {
			best = text
		}
	})
	if best != "" {
		return best
	}

	return cleanBlock(doc.Find("body").Text())
}

func mentionsJobVocabulary(text string) bool {
	lower := strings.ToLower(text)
	for _, word := range jobVocabulary {
		if strings.Contains(lower, word) {
			return true
		}
	}
	return false
}
