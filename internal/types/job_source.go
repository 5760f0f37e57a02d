// Package types provides type definitions for structured data used throughout the outreach-agent system.
//
//nolint:revive // types is a standard Go package name pattern
package types

// SourceKind identifies how a job posting entered the pipeline.
type SourceKind string

const (
	// SourceManual is free-form text pasted by the user
	SourceManual SourceKind = "manual"
	// SourceURL is a job posting fetched from a URL
	SourceURL SourceKind = "url"
)

// JobSource is the immutable input to one pipeline run: either raw pasted
// text or a URL to fetch. Exactly one of Text/URL is populated.
type JobSource struct {
	Kind SourceKind `json:"kind"`
	Text string     `json:"text,omitempty"`
	URL  string     `json:"url,omitempty"`
}

// ManualSource creates a JobSource from pasted job description text.
func ManualSource(text string) JobSource {
	return JobSource{Kind: SourceManual, Text: text}
}

// URLSource creates a JobSource from a job posting URL.
func URLSource(url string) JobSource {
	return JobSource{Kind: SourceURL, URL: url}
}
