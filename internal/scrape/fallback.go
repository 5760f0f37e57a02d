package scrape

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/jonathan/outreach-agent/internal/fetch"
	"github.com/jonathan/outreach-agent/internal/types"
)

// StrategyFallback is the strategy id for the page-title/URL-slug fallback.
const StrategyFallback = "title-url-fallback"

// boardSuffixRe strips trailing board branding from document titles, e.g.
// "Software Engineer at Acme | LinkedIn".
var boardSuffixRe = regexp.MustCompile(`\s*[-|–]\s*(LinkedIn|Indeed(\.com)?|Glassdoor|Monster(\.com)?|CareerBuilder|ZipRecruiter|Dice(\.com)?|Wellfound|AngelList|Stack Overflow|Remote\.co|We Work Remotely|FlexJobs).*$`)

// slugStopWords are URL path segments that never name a company.
var slugStopWords = map[string]bool{
	"jobs": true, "job": true, "careers": true, "career": true,
	"view": true, "viewjob": true, "company": true, "companies": true,
	"posting": true, "postings": true, "openings": true, "en": true,
}

// fallbackStrategy is the last resort: best-guess title/company from the
// document title and URL path when structured markup yielded nothing. Fields
// it contributes are tagged heuristic so the normalizer can downgrade the
// record's confidence.
type fallbackStrategy struct{}

func (s *fallbackStrategy) ID() string { return StrategyFallback }

func (s *fallbackStrategy) Extract(doc *goquery.Document, page *fetch.Page) (types.JobRecord, string) {
	rec := types.JobRecord{Confidence: types.ConfidenceHeuristic}

	pageTitle := ""
	if doc != nil {
		pageTitle = collapseInline(doc.Find("title").First().Text())
	}

	title, company := splitPageTitle(pageTitle)
	rec.Title = title
	rec.Company = company

	if rec.Company == "" {
		rec.Company = companyFromURL(page.URL)
	}

	diagnostic := fmt.Sprintf("page title %q: title=%t company=%t", pageTitle, rec.Title != "", rec.Company != "")
	return rec, diagnostic
}

// splitPageTitle parses patterns like "Software Engineer at Acme",
// "Software Engineer - Acme" or "Acme | Software Engineer" out of a
// document title, after stripping board branding.
func splitPageTitle(pageTitle string) (title, company string) {
	cleaned := strings.TrimSpace(boardSuffixRe.ReplaceAllString(pageTitle, ""))
	if cleaned == "" {
		return "", ""
	}

	if idx := strings.Index(cleaned, " at "); idx > 0 {
		return strings.TrimSpace(cleaned[:idx]), strings.TrimSpace(cleaned[idx+len(" at "):])
	}

	for _, sep := range []string{" - ", " – ", " | "} {
		if idx := strings.Index(cleaned, sep); idx > 0 {
			left := strings.TrimSpace(cleaned[:idx])
			right := strings.TrimSpace(cleaned[idx+len(sep):])
			// Which side is the title? The longer side usually is.
			if len(left) >= len(right) {
				return left, right
			}
			return right, left
		}
	}

	if len(cleaned) >= minTitleLength {
		return cleaned, ""
	}
	return "", ""
}

// companyFromURL guesses a company name from URL path segments, skipping
// board vocabulary and numeric ids.
func companyFromURL(rawURL string) string {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}

	for _, part := range strings.Split(parsed.Path, "/") {
		part = strings.TrimSpace(part)
		if part == "" || slugStopWords[strings.ToLower(part)] || isMostlyNumeric(part) {
			continue
		}
		return titleCaseSlug(part)
	}
	return ""
}

func isMostlyNumeric(s string) bool {
	digits := 0
	for _, r := range s {
		if r >= '0' && r <= '9' {
			digits++
		}
	}
	return digits*2 > len(s)
}

// titleCaseSlug converts "acme-corp" to "Acme Corp".
func titleCaseSlug(slug string) string {
	words := strings.FieldsFunc(slug, func(r rune) bool { return r == '-' || r == '_' })
	for i, word := range words {
		if word == "" {
			continue
		}
		words[i] = strings.ToUpper(word[:1]) + word[1:]
	}
	return strings.Join(words, " ")
}
