package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jonathan/outreach-agent/internal/types"
)

func TestMerge_ScalarFirstNonEmptyWins(t *testing.T) {
	a := types.JobRecord{Title: "Backend Engineer", Location: ""}
	b := types.JobRecord{Title: "Ignored Title", Company: "Acme", Location: "Berlin"}
	c := types.JobRecord{Location: "Ignored Location"}

	merged := Merge(a, b, c)
	assert.Equal(t, "Backend Engineer", merged.Title)
	assert.Equal(t, "Acme", merged.Company)
	assert.Equal(t, "Berlin", merged.Location)
}

func TestMerge_ListUnionPreservesOrderAndDedupes(t *testing.T) {
	a := types.JobRecord{RequiredSkills: []string{"Go", "PostgreSQL"}}
	b := types.JobRecord{RequiredSkills: []string{"go", "Kubernetes", "postgresql", "  Go  "}}

	merged := Merge(a, b)
	assert.Equal(t, []string{"Go", "PostgreSQL", "Kubernetes"}, merged.RequiredSkills)
}

func TestMerge_Idempotent(t *testing.T) {
	parts := []types.JobRecord{
		{Title: "Backend Engineer", Company: "Acme", RequiredSkills: []string{"Go"}},
		{Location: "Remote", RequiredSkills: []string{"Docker", "go"}},
	}

	once := Merge(parts...)
	twice := Merge(once)
	assert.Equal(t, once, twice)
}

func TestMerge_HeuristicCoreDowngradesConfidence(t *testing.T) {
	scraped := types.JobRecord{Location: "Remote"}
	fallback := types.JobRecord{
		Title:      "Software Engineer",
		Company:    "Acme",
		Confidence: types.ConfidenceHeuristic,
	}

	merged := Merge(scraped, fallback)
	assert.Equal(t, types.ConfidenceHeuristic, merged.Confidence)
}

func TestMerge_HeuristicOptionalFieldsDoNotDowngrade(t *testing.T) {
	scraped := types.JobRecord{Title: "Software Engineer", Company: "Acme"}
	fallback := types.JobRecord{
		Title:      "Other Title",
		Company:    "Other Co",
		Confidence: types.ConfidenceHeuristic,
	}

	// Fallback lost on both core fields, so it contributed nothing.
	merged := Merge(scraped, fallback)
	assert.Equal(t, types.ConfidencePartial, merged.Confidence)
}

func TestMerge_FullConfidence(t *testing.T) {
	rec := types.JobRecord{
		Title:            "Backend Engineer",
		Company:          "Acme",
		Location:         "Berlin",
		JobType:          "Full-time",
		RequiredSkills:   []string{"Go"},
		Responsibilities: []string{"Build services"},
		Qualifications:   []string{"3+ years experience"},
	}

	merged := Merge(rec)
	assert.Equal(t, types.ConfidenceFull, merged.Confidence)
}

func TestMerge_IncompleteSurfacedNotDropped(t *testing.T) {
	rec := types.JobRecord{Title: "Backend Engineer"} // no company

	merged := Merge(rec)
	assert.Equal(t, types.ConfidenceIncomplete, merged.Confidence)
	assert.Equal(t, "Backend Engineer", merged.Title)
	assert.False(t, merged.Usable())
}

func TestMerge_SourcePreserved(t *testing.T) {
	withSource := types.JobRecord{Source: types.URLSource("https://example.com/jobs/1")}
	other := types.JobRecord{Title: "X", Company: "Y"}

	merged := Merge(withSource, other)
	assert.Equal(t, types.SourceURL, merged.Source.Kind)
	assert.Equal(t, "https://example.com/jobs/1", merged.Source.URL)
}

func TestKey(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"  Acme   Corp  ", "acme corp"},
		{"ACME", "acme"},
		{"Backend\tEngineer", "backend engineer"},
		{"backend  engineer", "backend engineer"},
		{"", ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Key(tt.in))
	}
}
