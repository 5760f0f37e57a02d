// Package pipeline orchestrates the full acquisition flow: classify the
// source, fetch, run the scrape chain, structure the text, merge, and check
// the result against the outreach history.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/jonathan/outreach-agent/internal/extract"
	"github.com/jonathan/outreach-agent/internal/fetch"
	"github.com/jonathan/outreach-agent/internal/normalize"
	"github.com/jonathan/outreach-agent/internal/scrape"
	"github.com/jonathan/outreach-agent/internal/sites"
	"github.com/jonathan/outreach-agent/internal/tracker"
	"github.com/jonathan/outreach-agent/internal/types"
)

// ErrRecordNotUsable is returned by MarkSent when the record lacks the title
// or company the history log keys on.
var ErrRecordNotUsable = errors.New("record is missing title or company")

// ErrEmptyText is returned by Run when a manual source carries no posting
// text. This is a user input error, not a pipeline degradation.
var ErrEmptyText = errors.New("posting text is empty")

// Runner wires the pipeline stages together. Zero-value optional fields are
// skipped: a nil Structurer disables LLM extraction, a nil Tracker disables
// duplicate checking.
type Runner struct {
	Fetcher    *fetch.Fetcher
	Chain      *scrape.Chain
	Structurer extract.Structurer
	Tracker    *tracker.Tracker

	UseBrowser     bool
	BrowserTimeout time.Duration
	Verbose        bool
}

// Result is the outcome of one pipeline run. A Result with
// NeedsManualInput set means the URL could not be fetched and the caller
// should offer manual text entry; it is not a failure of the run itself.
type Result struct {
	Record   types.JobRecord
	Attempts []scrape.Attempt
	Text     string
	Verdict  types.DuplicateVerdict

	// Warnings collects non-fatal degradations: fetch retry fallbacks,
	// adapter exhaustion, store degradation.
	Warnings []string

	// NeedsManualInput signals that a URL source could not be fetched.
	NeedsManualInput bool
	// FetchError holds the typed fetch failure when NeedsManualInput is set.
	FetchError error
}

// Run executes the pipeline for one source.
func (r *Runner) Run(ctx context.Context, source types.JobSource) (*Result, error) {
	result := &Result{}

	var scraped types.JobRecord
	text := ""

	switch source.Kind {
	case types.SourceURL:
		page, ok := r.acquire(ctx, source.URL, result)
		if !ok {
			return result, nil
		}
		outcome := r.scrapePage(ctx, page, result)
		scraped = outcome.Record
		text = outcome.Text
		result.Attempts = outcome.Attempts
	case types.SourceManual:
		if strings.TrimSpace(source.Text) == "" {
			return nil, ErrEmptyText
		}
		text = source.Text
	default:
		return nil, fmt.Errorf("unknown source kind %q", source.Kind)
	}
	result.Text = text

	structured := r.structure(ctx, text, result)

	record := normalize.Merge(scraped, structured)
	record.Source = source
	result.Record = record

	if r.Tracker != nil && record.Usable() {
		verdict, err := r.Tracker.Check(ctx, record, time.Now())
		if err != nil {
			result.Warnings = append(result.Warnings, fmt.Sprintf("duplicate check unavailable: %v", err))
		} else {
			result.Verdict = verdict
		}
		if r.Tracker.Degraded() {
			result.Warnings = append(result.Warnings, "outreach history degraded to in-memory storage; records from this session will not persist")
		}
	}

	return result, nil
}

// acquire fetches the URL, falling back to a browser render when the static
// page is too thin. A hard fetch failure flips the result into
// needs-manual-input instead of failing the run.
func (r *Runner) acquire(ctx context.Context, rawURL string, result *Result) (*fetch.Page, bool) {
	profile := sites.Classify(rawURL)
	if profile == sites.ProfileInvalid {
		result.NeedsManualInput = true
		result.FetchError = &fetch.Error{Kind: fetch.KindInvalidURL, URL: rawURL, Message: "not a valid posting URL"}
		result.Warnings = append(result.Warnings, fmt.Sprintf("invalid URL %q; paste the posting text instead", rawURL))
		return nil, false
	}

	if !sites.IsJobPath(profile, rawURL) {
		result.Warnings = append(result.Warnings, "URL does not look like an individual posting page; extraction may find a search or company page instead")
	}

	page, err := r.Fetcher.Fetch(ctx, rawURL, profile)
	if err != nil {
		if page == nil {
			result.NeedsManualInput = true
			result.FetchError = err
			result.Warnings = append(result.Warnings, fmt.Sprintf("fetch failed (%s); paste the posting text instead", fetch.KindOf(err)))
			return nil, false
		}
		// Blocked or non-200 pages still carry HTML worth scraping.
		result.Warnings = append(result.Warnings, fmt.Sprintf("fetch degraded (%s); extraction may be partial", fetch.KindOf(err)))
	}
	return page, true
}

// scrapePage runs the strategy chain, rendering with the browser when the
// static HTML yields too little text.
func (r *Runner) scrapePage(ctx context.Context, page *fetch.Page, result *Result) *scrape.Outcome {
	outcome := r.Chain.Extract(page)

	if r.UseBrowser && fetch.ShouldUseBrowser(outcome.Text) {
		timeout := r.BrowserTimeout
		if timeout == 0 {
			timeout = 30 * time.Second
		}
		html, err := fetch.RenderWithBrowser(ctx, page.URL, timeout, r.Verbose)
		if err != nil {
			result.Warnings = append(result.Warnings, fmt.Sprintf("browser rendering failed: %v", err))
			return outcome
		}
		rendered := *page
		rendered.HTML = html
		if r.Verbose {
			log.Printf("[VERBOSE] re-running extraction on browser-rendered page")
		}
		outcome = r.Chain.Extract(&rendered)
	}

	return outcome
}

// structure runs the LLM adapter over the posting text. Exhaustion is a
// warning, not a failure: the scraped record still flows through.
func (r *Runner) structure(ctx context.Context, text string, result *Result) types.JobRecord {
	if r.Structurer == nil || strings.TrimSpace(text) == "" {
		return types.JobRecord{}
	}

	rec, err := r.Structurer.Structure(ctx, text)
	if err != nil {
		result.Warnings = append(result.Warnings, fmt.Sprintf("structured extraction unavailable (%s); using scraped fields only", extract.KindOf(err)))
		return types.JobRecord{}
	}
	return rec
}

// RunAll executes the pipeline for each source with bounded concurrency.
// Per-host politeness is enforced by the Fetcher's shared limiter, so two
// postings on the same board never race.
func (r *Runner) RunAll(ctx context.Context, sources []types.JobSource, concurrency int) ([]*Result, error) {
	if concurrency <= 0 {
		concurrency = 4
	}

	results := make([]*Result, len(sources))
	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(concurrency)

	for i, source := range sources {
		i, source := i, source
		group.Go(func() error {
			result, err := r.Run(groupCtx, source)
			if err != nil {
				return err
			}
			results[i] = result
			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// MarkSent appends an outreach record for the job. The record id is minted
// here; a store persistence failure degrades the tracker rather than
// failing the workflow.
func (r *Runner) MarkSent(ctx context.Context, rec types.JobRecord, status types.OutreachStatus) (types.OutreachRecord, error) {
	if !rec.Usable() {
		return types.OutreachRecord{}, ErrRecordNotUsable
	}
	if r.Tracker == nil {
		return types.OutreachRecord{}, errors.New("no outreach tracker configured")
	}

	entry := types.OutreachRecord{
		ID:         uuid.New(),
		CompanyKey: tracker.NormalizeKey(rec.Company),
		JobKey:     tracker.NormalizeKey(rec.Title),
		SentAt:     time.Now().UTC(),
		Status:     status,
	}

	if err := r.Tracker.Record(ctx, entry); err != nil {
		return types.OutreachRecord{}, err
	}
	return entry, nil
}
