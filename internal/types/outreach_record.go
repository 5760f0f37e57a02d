package types

import (
	"time"

	"github.com/google/uuid"
)

// OutreachStatus is the terminal status of one outreach attempt.
// A record is write-once: status never transitions after append; a later
// attempt to the same company/job creates a new record instead.
type OutreachStatus string

const (
	// StatusSent means the email was handed to the transport
	StatusSent OutreachStatus = "sent"
	// StatusMarkedSent means the user recorded an outreach made outside the tool
	StatusMarkedSent OutreachStatus = "marked_sent"
	// StatusFailed means the send attempt failed
	StatusFailed OutreachStatus = "failed"

	// Delivery statuses appear in logs imported from older trackers and are
	// counted toward the success rate; the pipeline itself never writes them.

	// StatusDelivered means the transport confirmed delivery
	StatusDelivered OutreachStatus = "delivered"
	// StatusOpened means the recipient opened the email
	StatusOpened OutreachStatus = "opened"
	// StatusReplied means the recipient replied
	StatusReplied OutreachStatus = "replied"
)

// Successful reports whether the status counts as a positive outcome.
func (s OutreachStatus) Successful() bool {
	return s == StatusDelivered || s == StatusOpened || s == StatusReplied
}

// OutreachRecord is one append-only entry in the send-history log.
// CompanyKey and JobKey are normalized (lowercase, trimmed, collapsed
// whitespace) so the duplicate guard compares like with like.
type OutreachRecord struct {
	ID         uuid.UUID      `json:"id"`
	CompanyKey string         `json:"company_key"`
	JobKey     string         `json:"job_key"`
	SentAt     time.Time      `json:"sent_at"`
	Status     OutreachStatus `json:"status"`
}

// DuplicateVerdict is the advisory result of a duplicate check. It never
// blocks a send; the caller decides what to do with it.
type DuplicateVerdict struct {
	IsDuplicate       bool            `json:"is_duplicate"`
	MatchingRecord    *OutreachRecord `json:"matching_record,omitempty"`
	CooldownRemaining *time.Duration  `json:"cooldown_remaining,omitempty"`
}
