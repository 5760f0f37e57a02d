package normalize

import (
	"strings"

	"github.com/jonathan/outreach-agent/internal/types"
)

// Merge combines partial records left to right into one canonical record.
// Scalar fields: first non-empty value wins. List fields: union preserving
// order of first occurrence, case-insensitive duplicate removal. The merge
// is deterministic and idempotent: Merge(Merge(parts...)) == Merge(parts...).
//
// A part tagged ConfidenceHeuristic (the title/URL fallback strategy)
// that contributes title or company downgrades the merged record to
// heuristic confidence.
func Merge(parts ...types.JobRecord) types.JobRecord {
	var out types.JobRecord
	heuristicCore := false

	for _, part := range parts {
		fromFallback := part.Confidence == types.ConfidenceHeuristic

		if out.Title == "" && strings.TrimSpace(part.Title) != "" {
			out.Title = strings.TrimSpace(part.Title)
			heuristicCore = heuristicCore || fromFallback
		}
		if out.Company == "" && strings.TrimSpace(part.Company) != "" {
			out.Company = strings.TrimSpace(part.Company)
			heuristicCore = heuristicCore || fromFallback
		}
		out.Location = firstNonEmpty(out.Location, part.Location)
		out.JobType = firstNonEmpty(out.JobType, part.JobType)
		out.ExperienceLevel = firstNonEmpty(out.ExperienceLevel, part.ExperienceLevel)
		out.SalaryRange = firstNonEmpty(out.SalaryRange, part.SalaryRange)
		out.Industry = firstNonEmpty(out.Industry, part.Industry)
		out.RemotePolicy = firstNonEmpty(out.RemotePolicy, part.RemotePolicy)

		out.RequiredSkills = unionLists(out.RequiredSkills, part.RequiredSkills)
		out.PreferredSkills = unionLists(out.PreferredSkills, part.PreferredSkills)
		out.Responsibilities = unionLists(out.Responsibilities, part.Responsibilities)
		out.Qualifications = unionLists(out.Qualifications, part.Qualifications)
		out.Benefits = unionLists(out.Benefits, part.Benefits)

		if out.Source.Kind == "" && part.Source.Kind != "" {
			out.Source = part.Source
		}
	}

	out.Confidence = computeConfidence(&out, heuristicCore)
	return out
}

// computeConfidence classifies the merged record:
//
//	incomplete — missing title or company; unusable for the duplicate guard
//	heuristic  — title or company came from the title/URL fallback
//	full       — every field group populated by a non-fallback source
//	partial    — title/company present but optional groups missing
//
// Field groups for "full": core (title, company), details (location and
// job type), skills (required skills), narrative (responsibilities and
// qualifications).
func computeConfidence(rec *types.JobRecord, heuristicCore bool) types.Confidence {
	if !rec.Usable() {
		return types.ConfidenceIncomplete
	}
	if heuristicCore {
		return types.ConfidenceHeuristic
	}
	if rec.Location != "" && rec.JobType != "" &&
		len(rec.RequiredSkills) > 0 &&
		len(rec.Responsibilities) > 0 && len(rec.Qualifications) > 0 {
		return types.ConfidenceFull
	}
	return types.ConfidencePartial
}

func firstNonEmpty(current, candidate string) string {
	if current != "" {
		return current
	}
	return strings.TrimSpace(candidate)
}

// unionLists appends items from extra that are not already present,
// comparing case-insensitively on trimmed values.
func unionLists(current, extra []string) []string {
	if len(extra) == 0 {
		return current
	}

	seen := make(map[string]bool, len(current))
	for _, item := range current {
		seen[Key(item)] = true
	}

	out := current
	for _, item := range extra {
		trimmed := strings.TrimSpace(item)
		if trimmed == "" {
			continue
		}
		key := Key(trimmed)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, trimmed)
	}
	return out
}
