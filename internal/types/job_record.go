package types

import "strings"

// Confidence describes how much of a JobRecord came from structured
// extraction versus heuristic fallbacks.
type Confidence string

const (
	// ConfidenceFull means every field group was populated by a non-fallback source
	ConfidenceFull Confidence = "full"
	// ConfidencePartial means title and company are present but optional groups are missing
	ConfidencePartial Confidence = "partial"
	// ConfidenceHeuristic means the page-title/URL fallback contributed title or company
	ConfidenceHeuristic Confidence = "heuristic"
	// ConfidenceIncomplete means the record is missing title or company and is
	// not usable for duplicate checking; it is surfaced, never dropped
	ConfidenceIncomplete Confidence = "incomplete"
)

// JobRecord is the canonical structured representation of a job posting.
// Partial records produced by individual scrape strategies use the same
// shape; the normalizer merges them into the final record.
type JobRecord struct {
	Title            string   `json:"title"`
	Company          string   `json:"company"`
	Location         string   `json:"location,omitempty"`
	JobType          string   `json:"job_type,omitempty"`
	ExperienceLevel  string   `json:"experience_level,omitempty"`
	RequiredSkills   []string `json:"required_skills,omitempty"`
	PreferredSkills  []string `json:"preferred_skills,omitempty"`
	Responsibilities []string `json:"responsibilities,omitempty"`
	Qualifications   []string `json:"qualifications,omitempty"`
	Benefits         []string `json:"benefits,omitempty"`
	SalaryRange      string   `json:"salary_range,omitempty"`
	Industry         string   `json:"industry,omitempty"`
	RemotePolicy     string   `json:"remote_policy,omitempty"`

	Source     JobSource  `json:"source"`
	Confidence Confidence `json:"extraction_confidence"`
}

// Usable reports whether the record carries the minimum field set
// (title and company) required by the duplicate guard.
func (r *JobRecord) Usable() bool {
	return strings.TrimSpace(r.Title) != "" && strings.TrimSpace(r.Company) != ""
}

// IsEmpty reports whether no field at all was extracted.
func (r *JobRecord) IsEmpty() bool {
	return r.Title == "" && r.Company == "" && r.Location == "" &&
		r.JobType == "" && r.ExperienceLevel == "" &&
		len(r.RequiredSkills) == 0 && len(r.PreferredSkills) == 0 &&
		len(r.Responsibilities) == 0 && len(r.Qualifications) == 0 &&
		len(r.Benefits) == 0 && r.SalaryRange == "" && r.Industry == "" &&
		r.RemotePolicy == ""
}
