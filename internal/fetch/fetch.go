// Package fetch retrieves job posting pages over HTTP with browser-like
// headers, per-host rate limiting, and typed recoverable failures.
package fetch

import (
	"context"
	"errors"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/jonathan/outreach-agent/internal/sites"
)

// DefaultTimeout is the default HTTP request timeout.
const DefaultTimeout = 15 * time.Second

// DefaultUserAgent mimics a desktop Chrome browser. Job boards serve empty
// shells or block pages to obvious bot user agents.
const DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0.0.0 Safari/537.36"

// blockMarkers are body substrings that indicate an anti-bot interstitial
// rather than real content.
var blockMarkers = []string{
	"captcha",
	"cf-challenge",
	"challenge-platform",
	"are you a human",
	"unusual traffic",
	"access denied",
	"request blocked",
}

// Page holds the raw result of fetching a posting URL.
type Page struct {
	URL         string
	Profile     sites.Profile
	HTML        string
	ContentType string
	StatusCode  int
	FetchedAt   time.Time
}

// Options configures a Fetcher.
type Options struct {
	Timeout   time.Duration
	UserAgent string
	Headers   map[string]string
}

// DefaultOptions returns sensible defaults for fetching.
func DefaultOptions() *Options {
	return &Options{
		Timeout:   DefaultTimeout,
		UserAgent: DefaultUserAgent,
	}
}

// Fetcher performs rate-limited HTTP fetches of job posting pages. The
// HostLimiter is shared process-wide; construct one Fetcher per
// configuration, not per request.
type Fetcher struct {
	client  *http.Client
	limiter *HostLimiter
	opts    *Options
}

// NewFetcher creates a Fetcher using the given shared limiter. A nil limiter
// or options fall back to defaults.
func NewFetcher(limiter *HostLimiter, opts *Options) *Fetcher {
	if opts == nil {
		opts = DefaultOptions()
	}
	if opts.Timeout == 0 {
		opts.Timeout = DefaultTimeout
	}
	if opts.UserAgent == "" {
		opts.UserAgent = DefaultUserAgent
	}
	if limiter == nil {
		limiter = NewHostLimiter(0.5, 1)
	}
	return &Fetcher{
		client:  &http.Client{Timeout: opts.Timeout},
		limiter: limiter,
		opts:    opts,
	}
}

// Fetch retrieves the page at urlStr. All failures come back as *Error with
// a Kind the caller can branch on; none are fatal.
func (f *Fetcher) Fetch(ctx context.Context, urlStr string, profile sites.Profile) (*Page, error) {
	parsed, err := url.Parse(urlStr)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return nil, &Error{Kind: KindInvalidURL, URL: urlStr, Message: "not an absolute URL", Cause: err}
	}

	if err := f.limiter.Wait(ctx, urlStr); err != nil {
		return nil, &Error{Kind: KindTimeout, URL: urlStr, Message: "cancelled waiting for rate limiter", Cause: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, urlStr, nil)
	if err != nil {
		return nil, &Error{Kind: KindInvalidURL, URL: urlStr, Message: "failed to build request", Cause: err}
	}
	req.Header.Set("User-Agent", f.opts.UserAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml")
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")
	for key, value := range f.opts.Headers {
		req.Header.Set(key, value)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, classifyTransportError(urlStr, err)
	}
	defer func() { _ = resp.Body.Close() }()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &Error{Kind: KindConnectionRefused, URL: urlStr, Message: "failed to read response body", Cause: err}
	}

	page := &Page{
		URL:         urlStr,
		Profile:     profile,
		HTML:        string(bodyBytes),
		ContentType: resp.Header.Get("Content-Type"),
		StatusCode:  resp.StatusCode,
		FetchedAt:   time.Now(),
	}

	if resp.StatusCode != http.StatusOK {
		if looksBlocked(resp.StatusCode, page.HTML) {
			return page, &Error{Kind: KindBlocked, URL: urlStr, StatusCode: resp.StatusCode,
				Message: "anti-bot response detected"}
		}
		return page, &Error{Kind: KindHTTPStatus, URL: urlStr, StatusCode: resp.StatusCode,
			Message: http.StatusText(resp.StatusCode)}
	}

	// Some boards return 200 with a challenge page.
	if looksBlocked(resp.StatusCode, page.HTML) {
		return page, &Error{Kind: KindBlocked, URL: urlStr, StatusCode: resp.StatusCode,
			Message: "anti-bot response detected"}
	}

	return page, nil
}

// classifyTransportError maps client errors onto fetch error kinds.
func classifyTransportError(urlStr string, err error) *Error {
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return &Error{Kind: KindTimeout, URL: urlStr, Message: "request timed out", Cause: err}
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return &Error{Kind: KindTimeout, URL: urlStr, Message: "request timed out", Cause: err}
	}
	return &Error{Kind: KindConnectionRefused, URL: urlStr, Message: "request failed", Cause: err}
}

// looksBlocked applies anti-bot heuristics: 403/429 status, or a body that
// is mostly a challenge page.
func looksBlocked(statusCode int, html string) bool {
	lower := strings.ToLower(html)

	if statusCode == http.StatusForbidden || statusCode == http.StatusTooManyRequests {
		for _, marker := range blockMarkers {
			if strings.Contains(lower, marker) {
				return true
			}
		}
		// A bare 403 with a tiny body is almost always a block, not a page.
		return len(strings.TrimSpace(html)) < 2048
	}

	if statusCode == http.StatusOK && len(lower) < 4096 {
		for _, marker := range blockMarkers {
			if strings.Contains(lower, marker) {
				return true
			}
		}
	}
	return false
}
