// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/outreach-agent/internal/scrape"
	"github.com/jonathan/outreach-agent/internal/tracker"
	"github.com/jonathan/outreach-agent/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	lines := strings.Split(content, "\n")
	for _, line := range lines {
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, truncate(line, boxWidth-4))
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintJobRecord outputs a human-readable summary of an extracted job record.
func (p *Printer) PrintJobRecord(rec *types.JobRecord) {
	if rec == nil {
		return
	}

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Company:    %s\n", orDash(rec.Company)))
	sb.WriteString(fmt.Sprintf("Title:      %s\n", orDash(rec.Title)))
	sb.WriteString(fmt.Sprintf("Location:   %s\n", orDash(rec.Location)))
	sb.WriteString(fmt.Sprintf("Type:       %s\n", orDash(rec.JobType)))
	sb.WriteString(fmt.Sprintf("Confidence: %s\n", rec.Confidence))

	if len(rec.RequiredSkills) > 0 {
		sb.WriteString("\nRequired Skills:\n")
		count := min(len(rec.RequiredSkills), maxItemsToShow)
		for i := 0; i < count; i++ {
			sb.WriteString(fmt.Sprintf("  • %s\n", rec.RequiredSkills[i]))
		}
		if len(rec.RequiredSkills) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(rec.RequiredSkills)-maxItemsToShow))
		}
	}

	if len(rec.Responsibilities) > 0 {
		sb.WriteString("\nResponsibilities:\n")
		count := min(len(rec.Responsibilities), 3)
		for i := 0; i < count; i++ {
			sb.WriteString(fmt.Sprintf("  • %s\n", rec.Responsibilities[i]))
		}
		if len(rec.Responsibilities) > 3 {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(rec.Responsibilities)-3))
		}
	}

	p.printBox("EXTRACTED JOB RECORD", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintVerdict outputs the duplicate check result.
func (p *Printer) PrintVerdict(verdict *types.DuplicateVerdict) {
	if verdict == nil {
		return
	}

	var sb strings.Builder
	if !verdict.IsDuplicate {
		sb.WriteString("No recent outreach to this company for this role.")
	} else {
		sb.WriteString("Already contacted about this role.\n")
		if verdict.MatchingRecord != nil {
			sb.WriteString(fmt.Sprintf("Last contact: %s (%s)\n",
				verdict.MatchingRecord.SentAt.Format("2006-01-02"),
				verdict.MatchingRecord.Status))
		}
		if verdict.CooldownRemaining != nil {
			days := int(verdict.CooldownRemaining.Hours() / 24)
			sb.WriteString(fmt.Sprintf("Cooldown remaining: %d days", days))
		}
	}

	p.printBox("DUPLICATE CHECK", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintAttempts outputs the scrape strategy trail for debugging extraction.
func (p *Printer) PrintAttempts(attempts []scrape.Attempt) {
	if len(attempts) == 0 {
		return
	}

	var sb strings.Builder
	for i, attempt := range attempts {
		status := "no fields"
		if attempt.Succeeded {
			status = "extracted"
		}
		sb.WriteString(fmt.Sprintf("%d. %s [%s]\n", i+1, attempt.StrategyID, status))
		if attempt.Diagnostic != "" {
			sb.WriteString(fmt.Sprintf("   %s\n", attempt.Diagnostic))
		}
	}

	p.printBox("EXTRACTION ATTEMPTS", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintStatistics outputs the outreach history summary.
func (p *Printer) PrintStatistics(stats tracker.Statistics) {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Total outreach:      %d\n", stats.Total))
	sb.WriteString(fmt.Sprintf("Companies contacted: %d\n", stats.CompaniesContacted))
	sb.WriteString(fmt.Sprintf("Last 30 days:        %d\n", stats.RecentCount))
	sb.WriteString(fmt.Sprintf("Success rate:        %.0f%%", stats.SuccessRate*100))

	p.printBox("OUTREACH STATISTICS", sb.String())
}

// PrintRecent outputs recent outreach records, newest first.
func (p *Printer) PrintRecent(records []types.OutreachRecord, days int) {
	var sb strings.Builder
	if len(records) == 0 {
		sb.WriteString(fmt.Sprintf("No outreach in the last %d days.", days))
	} else {
		for _, rec := range records {
			sb.WriteString(fmt.Sprintf("%s  %-20s %s (%s)\n",
				rec.SentAt.Format("2006-01-02"),
				truncate(rec.CompanyKey, 20),
				truncate(rec.JobKey, 24),
				rec.Status))
		}
	}

	p.printBox(fmt.Sprintf("OUTREACH — LAST %d DAYS", days), strings.TrimSuffix(sb.String(), "\n"))
}

func orDash(s string) string {
	if s == "" {
		return "—"
	}
	return s
}

// truncate shortens s to at most n characters. It counts runes, not bytes,
// so lines holding multibyte characters are never cut mid-rune.
func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	if n <= 3 {
		return string(runes[:n])
	}
	return string(runes[:n-3]) + "..."
}
