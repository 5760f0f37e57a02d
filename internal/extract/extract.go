// Package extract turns free-form job posting text into a structured
// JobRecord through an LLM, validating the model's JSON against a schema
// before trusting it.
package extract

import (
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"strings"

	"github.com/xeipuuv/gojsonschema"
	"google.golang.org/api/googleapi"

	"github.com/jonathan/outreach-agent/internal/llm"
	"github.com/jonathan/outreach-agent/internal/types"
)

//go:embed job_record.schema.json
var jobRecordSchemaJSON string

// Structurer converts posting text into a structured record. Implementations
// must be safe for concurrent use.
type Structurer interface {
	Structure(ctx context.Context, text string) (types.JobRecord, error)
}

// Adapter is the LLM-backed Structurer. It builds the extraction prompt,
// calls the model, validates the response against the job posting schema and
// retries per its RetryPolicy.
type Adapter struct {
	client llm.Client
	tier   llm.ModelTier
	policy RetryPolicy
	schema *gojsonschema.Schema
}

// Option configures an Adapter.
type Option func(*Adapter)

// WithTier overrides the default model tier.
func WithTier(tier llm.ModelTier) Option {
	return func(a *Adapter) { a.tier = tier }
}

// WithRetryPolicy overrides the default retry policy.
func WithRetryPolicy(policy RetryPolicy) Option {
	return func(a *Adapter) { a.policy = policy }
}

// NewAdapter builds an Adapter over an LLM client.
func NewAdapter(client llm.Client, opts ...Option) (*Adapter, error) {
	schema, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(jobRecordSchemaJSON))
	if err != nil {
		return nil, fmt.Errorf("failed to compile job record schema: %w", err)
	}

	adapter := &Adapter{
		client: client,
		tier:   llm.TierStandard,
		policy: DefaultRetryPolicy(),
		schema: schema,
	}
	for _, opt := range opts {
		opt(adapter)
	}
	return adapter, nil
}

// Structure extracts a structured record from posting text. Timeouts retry
// with backoff, a malformed response retries once with a stricter prompt,
// and quota errors fail immediately.
func (a *Adapter) Structure(ctx context.Context, text string) (types.JobRecord, error) {
	if strings.TrimSpace(text) == "" {
		return types.JobRecord{}, &Error{Kind: KindMalformedResponse, Message: "no input text to extract from"}
	}

	schema := llm.JobPostingSchema()
	timeoutRetries := 0
	malformedRetries := 0

	for {
		rec, err := a.attempt(ctx, schema, text)
		if err == nil {
			return rec, nil
		}

		switch KindOf(err) {
		case KindTimeout:
			if timeoutRetries >= a.policy.TimeoutRetries {
				return types.JobRecord{}, err
			}
			timeoutRetries++
			if sleepErr := sleepContext(ctx, a.policy.backoffFor(timeoutRetries)); sleepErr != nil {
				return types.JobRecord{}, err
			}
		case KindMalformedResponse:
			if malformedRetries >= a.policy.MalformedRetries {
				return types.JobRecord{}, err
			}
			malformedRetries++
			schema = llm.StrictJobPostingSchema()
		default:
			return types.JobRecord{}, err
		}
	}
}

func (a *Adapter) attempt(ctx context.Context, schema llm.ExtractionSchema, text string) (types.JobRecord, error) {
	prompt := llm.BuildExtractionPrompt(schema, text)

	raw, err := a.client.GenerateJSON(ctx, prompt, a.tier)
	if err != nil {
		return types.JobRecord{}, classifyClientError(err)
	}

	return a.decode(raw)
}

// decode validates the model's JSON against the job posting schema, then
// unmarshals it into a record.
func (a *Adapter) decode(raw string) (types.JobRecord, error) {
	result, err := a.schema.Validate(gojsonschema.NewStringLoader(raw))
	if err != nil {
		return types.JobRecord{}, &Error{Kind: KindMalformedResponse, Message: "response is not valid JSON", Cause: err}
	}
	if !result.Valid() {
		return types.JobRecord{}, &Error{
			Kind:    KindMalformedResponse,
			Message: fmt.Sprintf("response violates schema: %s", formatSchemaErrors(result)),
		}
	}

	var rec types.JobRecord
	if err := json.Unmarshal([]byte(raw), &rec); err != nil {
		return types.JobRecord{}, &Error{Kind: KindMalformedResponse, Message: "failed to decode response", Cause: err}
	}

	tidyRecord(&rec)
	return rec, nil
}

func formatSchemaErrors(result *gojsonschema.Result) string {
	parts := make([]string, 0, len(result.Errors()))
	for _, desc := range result.Errors() {
		parts = append(parts, desc.String())
	}
	return strings.Join(parts, "; ")
}

// tidyRecord trims scalar fields and drops blank list entries.
func tidyRecord(rec *types.JobRecord) {
	rec.Title = strings.TrimSpace(rec.Title)
	rec.Company = strings.TrimSpace(rec.Company)
	rec.Location = strings.TrimSpace(rec.Location)
	rec.JobType = strings.TrimSpace(rec.JobType)
	rec.ExperienceLevel = strings.TrimSpace(rec.ExperienceLevel)
	rec.SalaryRange = strings.TrimSpace(rec.SalaryRange)
	rec.Industry = strings.TrimSpace(rec.Industry)
	rec.RemotePolicy = strings.TrimSpace(rec.RemotePolicy)

	rec.RequiredSkills = tidyList(rec.RequiredSkills)
	rec.PreferredSkills = tidyList(rec.PreferredSkills)
	rec.Responsibilities = tidyList(rec.Responsibilities)
	rec.Qualifications = tidyList(rec.Qualifications)
	rec.Benefits = tidyList(rec.Benefits)
}

func tidyList(items []string) []string {
	out := items[:0]
	for _, item := range items {
		if trimmed := strings.TrimSpace(item); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// classifyClientError maps provider errors onto extraction error kinds.
func classifyClientError(err error) error {
	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		if apiErr.Code == 429 {
			return &Error{Kind: KindQuotaExceeded, Message: "provider quota exceeded", Cause: err}
		}
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return &Error{Kind: KindTimeout, Message: "provider call timed out", Cause: err}
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return &Error{Kind: KindTimeout, Message: "provider call timed out", Cause: err}
	}

	msg := strings.ToLower(err.Error())
	if strings.Contains(msg, "quota") || strings.Contains(msg, "resource has been exhausted") || strings.Contains(msg, "resource_exhausted") {
		return &Error{Kind: KindQuotaExceeded, Message: "provider quota exceeded", Cause: err}
	}

	return &Error{Kind: KindUnavailable, Message: "provider call failed", Cause: err}
}
