// Package scrape extracts structured job fields from fetched pages through
// an ordered chain of strategies: site-specific selectors, generic heuristic
// selectors, then a page-title/URL fallback.
package scrape

import (
	"fmt"

	"github.com/PuerkitoBio/goquery"

	"github.com/jonathan/outreach-agent/internal/fetch"
	"github.com/jonathan/outreach-agent/internal/normalize"
	"github.com/jonathan/outreach-agent/internal/sites"
	"github.com/jonathan/outreach-agent/internal/types"
)

// Attempt records one strategy's output, successful or not. Attempts are
// never mutated after creation; the chain keeps the ordered sequence so a
// caller can inspect why full extraction failed.
type Attempt struct {
	StrategyID string          `json:"strategy_id"`
	Succeeded  bool            `json:"succeeded"`
	Fields     types.JobRecord `json:"fields"`
	Diagnostic string          `json:"diagnostic"`
}

// Outcome is the result of running the chain over one page.
type Outcome struct {
	// Attempts holds one entry per strategy actually run, in order.
	Attempts []Attempt
	// Record is the merged partial record (first-non-empty-wins per field).
	// It may be empty; the caller decides whether to fall back to manual
	// text entry.
	Record types.JobRecord
	// Text is the extracted job description free text, suitable for the
	// structured extraction adapter. Empty when no strategy found a
	// plausible description block.
	Text string
}

// Complete reports whether the merged record satisfied the completeness
// predicate and the chain short-circuited.
func (o *Outcome) Complete(predicate CompletenessPredicate) bool {
	return predicate(o.Record)
}

// CompletenessPredicate decides when the merged record is good enough to
// stop trying further strategies.
type CompletenessPredicate func(types.JobRecord) bool

// TitleAndCompany is the default completeness predicate.
func TitleAndCompany(rec types.JobRecord) bool {
	return rec.Usable()
}

// Strategy is one extraction approach. Extract receives a parsed document
// (nil if the HTML did not parse) and the raw page, and returns whatever
// partial fields it found plus a human-readable diagnostic.
type Strategy interface {
	ID() string
	Extract(doc *goquery.Document, page *fetch.Page) (types.JobRecord, string)
}

// Chain runs strategies in fixed priority order with early exit on the
// completeness predicate.
type Chain struct {
	strategies []Strategy
	predicate  CompletenessPredicate
}

// NewChain builds the default chain: site selectors, generic selectors,
// title/URL fallback.
func NewChain() *Chain {
	return &Chain{
		strategies: []Strategy{
			&siteStrategy{},
			&genericStrategy{},
			&fallbackStrategy{},
		},
		predicate: TitleAndCompany,
	}
}

// WithPredicate overrides the completeness predicate.
func (c *Chain) WithPredicate(p CompletenessPredicate) *Chain {
	c.predicate = p
	return c
}

// Extract runs the chain over a fetched page. It never fails: an
// unparseable page simply produces empty attempts and an empty record.
func (c *Chain) Extract(page *fetch.Page) *Outcome {
	doc := parseDocument(page.HTML)

	outcome := &Outcome{}
	for _, strategy := range c.strategies {
		fields, diagnostic := strategy.Extract(doc, page)
		attempt := Attempt{
			StrategyID: strategy.ID(),
			Succeeded:  !fields.IsEmpty(),
			Fields:     fields,
			Diagnostic: diagnostic,
		}
		outcome.Attempts = append(outcome.Attempts, attempt)
		outcome.Record = normalize.Merge(outcome.Record, fields)

		if c.predicate(outcome.Record) {
			break
		}
	}

	if doc != nil {
		outcome.Text = extractDescription(doc, page.Profile)
	}
	return outcome
}

// ExhaustedError is returned by callers (not the chain itself) when no
// strategy yielded any usable field; it carries the full diagnostic trail.
type ExhaustedError struct {
	URL      string
	Attempts []Attempt
}

func (e *ExhaustedError) Error() string {
	return fmt.Sprintf("extraction exhausted for %s after %d strategies", e.URL, len(e.Attempts))
}

// extractDescription pulls the job description text using the site's
// registered selectors first, then the generic ladder.
func extractDescription(doc *goquery.Document, profile sites.Profile) string {
	if rules := sites.Selectors(profile); len(rules.Description) > 0 {
		if text := blockText(doc, rules.Description, minDescriptionLength); text != "" {
			return text
		}
	}
	return genericDescription(doc)
}
