package scrape

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/outreach-agent/internal/fetch"
	"github.com/jonathan/outreach-agent/internal/sites"
	"github.com/jonathan/outreach-agent/internal/types"
)

func pageFor(url string, html string) *fetch.Page {
	return &fetch.Page{
		URL:     url,
		Profile: sites.Classify(url),
		HTML:    html,
	}
}

const linkedinHTML = `<!DOCTYPE html>
<html><head><title>Backend Engineer at Acme Corp | LinkedIn</title></head>
<body>
<h1 class="top-card-layout__title">Backend Engineer</h1>
<a class="topcard__org-name-link" href="/company/acme">Acme Corp</a>
<div class="description__text">
We are hiring a backend engineer to build our platform services.
Responsibilities include designing APIs and operating production systems.
Requirements: 3+ years of experience with Go, strong skills in PostgreSQL,
and familiarity with container orchestration. Duties also cover on-call
rotation and mentoring. This position reports to the VP of Engineering.
</div>
</body></html>`

func TestChain_SiteSelectorsShortCircuit(t *testing.T) {
	chain := NewChain()
	outcome := chain.Extract(pageFor("https://www.linkedin.com/jobs/view/12345", linkedinHTML))

	require.Len(t, outcome.Attempts, 1)
	assert.Equal(t, StrategySite, outcome.Attempts[0].StrategyID)
	assert.True(t, outcome.Attempts[0].Succeeded)

	assert.Equal(t, "Backend Engineer", outcome.Record.Title)
	assert.Equal(t, "Acme Corp", outcome.Record.Company)
	assert.True(t, outcome.Complete(TitleAndCompany))
	assert.Contains(t, outcome.Text, "Responsibilities include designing APIs")
}

const genericHTML = `<!DOCTYPE html>
<html><head><title>Platform Engineer - Initech</title></head>
<body>
<h1 class="job-title">Platform Engineer</h1>
<span class="company-name">Initech</span>
<div class="job-description">
The role covers building and running our deployment platform. Requirements
include production experience with distributed systems, strong debugging
skills, and three or more years operating cloud infrastructure. Duties span
incident response, capacity planning, and cross-team design reviews for a
position at the center of our engineering organization.
</div>
</body></html>`

func TestChain_GenericSelectorsOnUnknownSite(t *testing.T) {
	chain := NewChain()
	outcome := chain.Extract(pageFor("https://careers.initech.example/jobs/platform-engineer", genericHTML))

	require.Len(t, outcome.Attempts, 2)
	assert.Equal(t, StrategySite, outcome.Attempts[0].StrategyID)
	assert.False(t, outcome.Attempts[0].Succeeded)
	assert.Equal(t, StrategyGeneric, outcome.Attempts[1].StrategyID)
	assert.True(t, outcome.Attempts[1].Succeeded)

	assert.Equal(t, "Platform Engineer", outcome.Record.Title)
	assert.Equal(t, "Initech", outcome.Record.Company)
	assert.NotEqual(t, types.ConfidenceHeuristic, outcome.Record.Confidence)
	assert.Contains(t, outcome.Text, "incident response")
}

func TestChain_TitleOnlyPageFallsBackToHeuristic(t *testing.T) {
	html := `<html><head><title>Software Engineer at Acme</title></head><body></body></html>`

	chain := NewChain()
	outcome := chain.Extract(pageFor("https://acme.example/openings/1", html))

	require.Len(t, outcome.Attempts, 3)
	assert.Equal(t, StrategyFallback, outcome.Attempts[2].StrategyID)

	assert.Equal(t, "Software Engineer", outcome.Record.Title)
	assert.Equal(t, "Acme", outcome.Record.Company)
	assert.Equal(t, types.ConfidenceHeuristic, outcome.Record.Confidence)
}

func TestChain_EmptyPageExhaustsWithoutError(t *testing.T) {
	chain := NewChain()
	outcome := chain.Extract(pageFor("https://example.com/", "<html><body></body></html>"))

	require.Len(t, outcome.Attempts, 3)
	for _, attempt := range outcome.Attempts {
		assert.NotEmpty(t, attempt.Diagnostic)
	}
	assert.False(t, outcome.Complete(TitleAndCompany))
	assert.True(t, outcome.Record.Title == "" || outcome.Record.Company == "")
}

func TestChain_CustomPredicate(t *testing.T) {
	requireLocation := func(rec types.JobRecord) bool {
		return rec.Usable() && rec.Location != ""
	}

	chain := NewChain().WithPredicate(requireLocation)
	outcome := chain.Extract(pageFor("https://www.linkedin.com/jobs/view/12345", linkedinHTML))

	// Location never appears, so every strategy runs.
	assert.Len(t, outcome.Attempts, 3)
}

func TestExhaustedError_Message(t *testing.T) {
	err := &ExhaustedError{
		URL:      "https://example.com/jobs/1",
		Attempts: []Attempt{{StrategyID: StrategySite}, {StrategyID: StrategyGeneric}},
	}
	assert.Contains(t, err.Error(), "https://example.com/jobs/1")
	assert.Contains(t, err.Error(), "2 strategies")
}

func TestSplitPageTitle(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		title   string
		company string
	}{
		{"at pattern", "Software Engineer at Acme", "Software Engineer", "Acme"},
		{"board suffix stripped", "Data Scientist at Hooli | LinkedIn", "Data Scientist", "Hooli"},
		{"dash longer side is title", "Senior Backend Engineer - Acme", "Senior Backend Engineer", "Acme"},
		{"dash company first", "Acme - Senior Backend Engineer", "Senior Backend Engineer", "Acme"},
		{"bare title", "Site Reliability Engineer", "Site Reliability Engineer", ""},
		{"too short", "Hi", "", ""},
		{"empty", "", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			title, company := splitPageTitle(tt.in)
			assert.Equal(t, tt.title, title)
			assert.Equal(t, tt.company, company)
		})
	}
}

func TestCompanyFromURL(t *testing.T) {
	tests := []struct {
		url  string
		want string
	}{
		{"https://boards.example.com/jobs/acme-corp/12345", "Acme Corp"},
		{"https://example.com/careers/view/9001", ""},
		{"https://example.com/company/hooli/jobs/2", "Hooli"},
		{"not a url at all ://", ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, companyFromURL(tt.url))
	}
}

func TestGenericDescription_RejectsShortSidebar(t *testing.T) {
	html := `<html><body>
<div class="description">Apply now</div>
<div class="content">
This engineering position carries broad responsibilities across our stack.
Requirements include several years of professional experience, strong
communication skills, and the duties listed below. Qualifications: a degree
or equivalent practical background, plus demonstrated ownership of systems
running in production at meaningful scale.
</div>
</body></html>`

	doc := parseDocument(html)
	text := genericDescription(doc)
	assert.Contains(t, text, "broad responsibilities")
	assert.NotEqual(t, "Apply now", text)
}

func TestParseDocument_RemovesNoise(t *testing.T) {
	html := `<html><body><nav>Menu</nav><h1>Real Title Here</h1><script>var x=1;</script></body></html>`

	doc := parseDocument(html)
	require.NotNil(t, doc)
	body := doc.Find("body").Text()
	assert.Contains(t, body, "Real Title Here")
	assert.NotContains(t, body, "Menu")
	assert.NotContains(t, body, "var x=1")
}
