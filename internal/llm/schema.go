// Package llm - schema.go provides generic LLM-based structured extraction.
package llm

import (
	"fmt"
	"strings"
)

// ExtractionSchema defines the structure for LLM-based content extraction.
// It provides a reusable way to define what information to extract from text.
type ExtractionSchema struct {
	Name        string        // Schema name (e.g., "JobPosting")
	Description string        // System prompt preamble describing the extraction task
	Fields      []SchemaField // Expected output fields
}

// SchemaField defines a single field in the extraction output.
type SchemaField struct {
	Name        string // JSON field name
	Type        string // Type hint: "string", "[]string"
	Description string // Description for the LLM
	Required    bool   // Whether this field is required
}

// BuildExtractionPrompt constructs the LLM prompt from schema and input text.
func BuildExtractionPrompt(schema ExtractionSchema, inputText string) string {
	var sb strings.Builder

	// System description
	sb.WriteString(schema.Description)
	sb.WriteString("\n\n")

	// Output schema
	sb.WriteString("Return ONLY valid JSON matching this exact structure:\n{\n")
	for i, field := range schema.Fields {
		typeHint := field.Type
		if typeHint == "" {
			typeHint = "string"
		}
		requiredHint := ""
		if field.Required {
			requiredHint = " (required)"
		}
		sb.WriteString(fmt.Sprintf("  \"%s\": %s%s", field.Name, typeHint, requiredHint))
		if field.Description != "" {
			sb.WriteString(fmt.Sprintf(" // %s", field.Description))
		}
		if i < len(schema.Fields)-1 {
			sb.WriteString(",")
		}
		sb.WriteString("\n")
	}
	sb.WriteString("}\n\n")

	// Instructions
	sb.WriteString("IMPORTANT:\n")
	sb.WriteString("- Extract information directly from the text, do not invent or summarize.\n")
	sb.WriteString("- Use null for any field the text does not mention.\n")
	sb.WriteString("- Return ONLY the JSON object, no markdown, no explanation, no code blocks.\n\n")

	// Input text
	sb.WriteString("Input text:\n\"\"\"\n")
	sb.WriteString(inputText)
	sb.WriteString("\n\"\"\"\n")

	return sb.String()
}

// --- Predefined Schemas ---

// JobPostingSchema returns the extraction schema for job postings.
func JobPostingSchema() ExtractionSchema {
	return ExtractionSchema{
		Name: "JobPosting",
		Description: `You are an expert job posting parser. COPY TEXT VERBATIM - do not paraphrase, summarize, or reword.
Your task is to extract and categorize information from a raw job posting.
IMPORTANT: Preserve the exact wording from the original text.
EXCLUDE: Application form fields, EEO statements, legal disclaimers, generic "About Company" boilerplate.`,
		Fields: []SchemaField{
			{Name: "title", Type: "\"string\"", Description: "Exact job title as posted", Required: true},
			{Name: "company", Type: "\"string\"", Description: "Hiring company name", Required: true},
			{Name: "location", Type: "\"string\"", Description: "Job location (city, state/country, or Remote)"},
			{Name: "job_type", Type: "\"string\"", Description: "Full-time, Part-time, Contract, Internship"},
			{Name: "experience_level", Type: "\"string\"", Description: "Entry, Mid, Senior, Staff, etc."},
			{Name: "required_skills", Type: "[\"string\"]", Description: "Must-have technical skills, copied verbatim"},
			{Name: "preferred_skills", Type: "[\"string\"]", Description: "Nice-to-have skills, copied verbatim"},
			{Name: "responsibilities", Type: "[\"string\"]", Description: "Job duties, each copied verbatim"},
			{Name: "qualifications", Type: "[\"string\"]", Description: "Required qualifications, each copied verbatim"},
			{Name: "benefits", Type: "[\"string\"]", Description: "Compensation and benefits mentioned"},
			{Name: "salary_range", Type: "\"string\"", Description: "Salary or pay range if stated"},
			{Name: "industry", Type: "\"string\"", Description: "Company industry or sector"},
			{Name: "remote_policy", Type: "\"string\"", Description: "Remote, Hybrid, or On-site"},
		},
	}
}

// StrictJobPostingSchema is JobPostingSchema with a harder preamble. It is
// used on retry after the model returned malformed JSON.
func StrictJobPostingSchema() ExtractionSchema {
	schema := JobPostingSchema()
	schema.Description += `
The previous response was not valid JSON. Respond with a single well-formed
JSON object and NOTHING else: no markdown fences, no commentary, no trailing
commas.`
	return schema
}
