package tracker

import (
	"time"

	"github.com/jonathan/outreach-agent/internal/normalize"
	"github.com/jonathan/outreach-agent/internal/types"
)

// DefaultCooldown is how long after contacting a company about a role the
// guard flags a repeat as a duplicate.
const DefaultCooldown = 30 * 24 * time.Hour

// NormalizeKey converts a company or title to its comparison form. Two
// postings that differ only in case or whitespace must produce the same key.
func NormalizeKey(s string) string {
	return normalize.Key(s)
}

// Guard answers duplicate checks over a history snapshot. The verdict is
// advisory: the guard never blocks a send.
type Guard struct {
	// Window is the cooldown period; a match older than this is not a
	// duplicate.
	Window time.Duration
}

// NewGuard returns a guard with the given cooldown window; zero or negative
// means the default.
func NewGuard(window time.Duration) Guard {
	if window <= 0 {
		window = DefaultCooldown
	}
	return Guard{Window: window}
}

// Check is a pure function of the record, the snapshot and the clock. It
// returns the most recent matching record inside the cooldown window, with
// the time remaining until the cooldown expires.
func (g Guard) Check(rec types.JobRecord, snapshot []types.OutreachRecord, now time.Time) types.DuplicateVerdict {
	if !rec.Usable() {
		return types.DuplicateVerdict{}
	}

	companyKey := NormalizeKey(rec.Company)
	jobKey := NormalizeKey(rec.Title)

	var latest *types.OutreachRecord
	for i := range snapshot {
		entry := &snapshot[i]
		if entry.CompanyKey != companyKey || entry.JobKey != jobKey {
			continue
		}
		if now.Sub(entry.SentAt) >= g.Window {
			continue
		}
		if latest == nil || entry.SentAt.After(latest.SentAt) {
			latest = entry
		}
	}

	if latest == nil {
		return types.DuplicateVerdict{}
	}

	match := *latest
	remaining := g.Window - now.Sub(match.SentAt)
	return types.DuplicateVerdict{
		IsDuplicate:       true,
		MatchingRecord:    &match,
		CooldownRemaining: &remaining,
	}
}
