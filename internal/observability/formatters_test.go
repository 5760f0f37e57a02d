package observability

import (
	"bytes"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"

	"github.com/jonathan/outreach-agent/internal/scrape"
	"github.com/jonathan/outreach-agent/internal/tracker"
	"github.com/jonathan/outreach-agent/internal/types"
)

func TestPrintJobRecord(t *testing.T) {
	var buf bytes.Buffer
	printer := NewPrinter(&buf)

	printer.PrintJobRecord(&types.JobRecord{
		Title:          "Backend Engineer",
		Company:        "Acme",
		Confidence:     types.ConfidencePartial,
		RequiredSkills: []string{"Go", "PostgreSQL", "Docker", "Kubernetes", "Terraform", "Kafka"},
	})

	out := buf.String()
	assert.Contains(t, out, "Backend Engineer")
	assert.Contains(t, out, "Acme")
	assert.Contains(t, out, "partial")
	assert.Contains(t, out, "... and 1 more")
}

func TestPrintJobRecord_Nil(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).PrintJobRecord(nil)
	assert.Empty(t, buf.String())
}

func TestPrintVerdict(t *testing.T) {
	var buf bytes.Buffer
	printer := NewPrinter(&buf)

	remaining := 20 * 24 * time.Hour
	printer.PrintVerdict(&types.DuplicateVerdict{
		IsDuplicate: true,
		MatchingRecord: &types.OutreachRecord{
			SentAt: time.Date(2026, 3, 5, 0, 0, 0, 0, time.UTC),
			Status: types.StatusSent,
		},
		CooldownRemaining: &remaining,
	})

	out := buf.String()
	assert.Contains(t, out, "Already contacted")
	assert.Contains(t, out, "2026-03-05")
	assert.Contains(t, out, "20 days")
}

func TestPrintAttempts(t *testing.T) {
	var buf bytes.Buffer
	printer := NewPrinter(&buf)

	printer.PrintAttempts([]scrape.Attempt{
		{StrategyID: scrape.StrategySite, Succeeded: false, Diagnostic: "no site-specific selectors"},
		{StrategyID: scrape.StrategyGeneric, Succeeded: true, Diagnostic: "title=true company=true"},
	})

	out := buf.String()
	assert.Contains(t, out, "1. site-selectors [no fields]")
	assert.Contains(t, out, "2. generic-selectors [extracted]")
}

func TestPrintJobRecord_TruncatesMultibyteLinesCleanly(t *testing.T) {
	var buf bytes.Buffer
	printer := NewPrinter(&buf)

	printer.PrintJobRecord(&types.JobRecord{
		Title:   "Ingénieur Logiciel Sénior — Plateforme de Données et Infrastructure Cloud",
		Company: "Société Générale de Développement Évolutif",
	})

	out := buf.String()
	assert.True(t, utf8.ValidString(out))
	assert.NotContains(t, out, "�")
	assert.Contains(t, out, "...")
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		n        int
		expected string
	}{
		{"short string untouched", "acme", 20, "acme"},
		{"ascii truncated with ellipsis", "abcdefghij", 8, "abcde..."},
		{"multibyte runes kept whole", "société générale", 10, "société..."},
		{"tiny budget", "abcdef", 2, "ab"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := truncate(tt.input, tt.n)
			assert.Equal(t, tt.expected, got)
			assert.True(t, utf8.ValidString(got))
		})
	}
}

func TestPrintStatistics(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).PrintStatistics(tracker.Statistics{
		Total:              4,
		CompaniesContacted: 3,
		RecentCount:        2,
		SuccessRate:        0.25,
	})

	out := buf.String()
	assert.Contains(t, out, "Total outreach:      4")
	assert.Contains(t, out, "25%")
}
