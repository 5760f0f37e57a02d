package extract

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/outreach-agent/internal/llm"
)

// stubClient scripts GenerateJSON responses in order. A nil error with a
// payload simulates a model reply; responses past the script repeat the last
// entry.
type stubClient struct {
	responses []stubResponse
	prompts   []string
	calls     int
}

type stubResponse struct {
	payload string
	err     error
}

func (s *stubClient) GenerateJSON(_ context.Context, prompt string, _ llm.ModelTier) (string, error) {
	s.prompts = append(s.prompts, prompt)
	idx := s.calls
	if idx >= len(s.responses) {
		idx = len(s.responses) - 1
	}
	s.calls++
	resp := s.responses[idx]
	return resp.payload, resp.err
}

func (s *stubClient) Close() error { return nil }

func fastPolicy() RetryPolicy {
	return RetryPolicy{TimeoutRetries: 2, MalformedRetries: 1, Backoff: time.Millisecond}
}

const validPayload = `{
	"title": "Backend Engineer",
	"company": "Acme",
	"location": "Berlin",
	"job_type": "Full-time",
	"required_skills": ["Go", "PostgreSQL"],
	"responsibilities": ["Build services"],
	"qualifications": ["3+ years experience"],
	"salary_range": null,
	"benefits": null
}`

func TestAdapter_Structure(t *testing.T) {
	client := &stubClient{responses: []stubResponse{{payload: validPayload}}}
	adapter, err := NewAdapter(client, WithRetryPolicy(fastPolicy()))
	require.NoError(t, err)

	rec, err := adapter.Structure(context.Background(), "posting text")
	require.NoError(t, err)

	assert.Equal(t, "Backend Engineer", rec.Title)
	assert.Equal(t, "Acme", rec.Company)
	assert.Equal(t, []string{"Go", "PostgreSQL"}, rec.RequiredSkills)
	assert.Empty(t, rec.SalaryRange)
	assert.Equal(t, 1, client.calls)
}

func TestAdapter_MalformedRetriesOnceWithStricterPrompt(t *testing.T) {
	client := &stubClient{responses: []stubResponse{
		{payload: `{"title": "Engineer", "required_skills": "Go"}`}, // wrong shape
		{payload: validPayload},
	}}
	adapter, err := NewAdapter(client, WithRetryPolicy(fastPolicy()))
	require.NoError(t, err)

	rec, err := adapter.Structure(context.Background(), "posting text")
	require.NoError(t, err)
	assert.Equal(t, "Backend Engineer", rec.Title)

	require.Equal(t, 2, client.calls)
	assert.NotContains(t, client.prompts[0], "The previous response was not valid JSON")
	assert.Contains(t, client.prompts[1], "The previous response was not valid JSON")
}

func TestAdapter_MalformedGivesUpAfterRetry(t *testing.T) {
	client := &stubClient{responses: []stubResponse{{payload: "not json at all"}}}
	adapter, err := NewAdapter(client, WithRetryPolicy(fastPolicy()))
	require.NoError(t, err)

	_, err = adapter.Structure(context.Background(), "posting text")
	require.Error(t, err)
	assert.Equal(t, KindMalformedResponse, KindOf(err))
	assert.Equal(t, 2, client.calls)
}

func TestAdapter_TimeoutRetriesWithBackoff(t *testing.T) {
	client := &stubClient{responses: []stubResponse{
		{err: context.DeadlineExceeded},
		{err: context.DeadlineExceeded},
		{payload: validPayload},
	}}
	adapter, err := NewAdapter(client, WithRetryPolicy(fastPolicy()))
	require.NoError(t, err)

	rec, err := adapter.Structure(context.Background(), "posting text")
	require.NoError(t, err)
	assert.Equal(t, "Acme", rec.Company)
	assert.Equal(t, 3, client.calls)
}

func TestAdapter_TimeoutExhaustsRetries(t *testing.T) {
	client := &stubClient{responses: []stubResponse{{err: context.DeadlineExceeded}}}
	adapter, err := NewAdapter(client, WithRetryPolicy(fastPolicy()))
	require.NoError(t, err)

	_, err = adapter.Structure(context.Background(), "posting text")
	require.Error(t, err)
	assert.Equal(t, KindTimeout, KindOf(err))
	assert.Equal(t, 3, client.calls) // initial attempt + 2 retries
}

func TestAdapter_QuotaNeverRetries(t *testing.T) {
	client := &stubClient{responses: []stubResponse{{err: quotaError{}}}}
	adapter, err := NewAdapter(client, WithRetryPolicy(fastPolicy()))
	require.NoError(t, err)

	_, err = adapter.Structure(context.Background(), "posting text")
	require.Error(t, err)
	assert.Equal(t, KindQuotaExceeded, KindOf(err))
	assert.Equal(t, 1, client.calls)
}

type quotaError struct{}

func (quotaError) Error() string { return "rpc error: resource has been exhausted (quota)" }

func TestAdapter_CancelledContextStopsRetrying(t *testing.T) {
	client := &stubClient{responses: []stubResponse{{err: context.DeadlineExceeded}}}
	adapter, err := NewAdapter(client, WithRetryPolicy(RetryPolicy{
		TimeoutRetries:   2,
		MalformedRetries: 1,
		Backoff:          time.Hour,
	}))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	start := time.Now()
	_, err = adapter.Structure(ctx, "posting text")
	require.Error(t, err)
	assert.Less(t, time.Since(start), time.Second)
}

func TestAdapter_EmptyInput(t *testing.T) {
	client := &stubClient{responses: []stubResponse{{payload: validPayload}}}
	adapter, err := NewAdapter(client)
	require.NoError(t, err)

	_, err = adapter.Structure(context.Background(), "   \n ")
	require.Error(t, err)
	assert.Equal(t, KindMalformedResponse, KindOf(err))
	assert.Equal(t, 0, client.calls)
}

func TestClassifyClientError(t *testing.T) {
	assert.Equal(t, KindTimeout, KindOf(classifyClientError(context.DeadlineExceeded)))
	assert.Equal(t, KindQuotaExceeded, KindOf(classifyClientError(quotaError{})))
	assert.Equal(t, KindUnavailable, KindOf(classifyClientError(assert.AnError)))
}

func TestAdapter_TrimsWhitespaceFromFields(t *testing.T) {
	raw := strings.ReplaceAll(validPayload, "Backend Engineer", "  Backend Engineer  ")
	client := &stubClient{responses: []stubResponse{{payload: raw}}}
	adapter, err := NewAdapter(client)
	require.NoError(t, err)

	out, err := adapter.Structure(context.Background(), "posting text")
	require.NoError(t, err)
	assert.Equal(t, "Backend Engineer", out.Title)
}
