package tracker

import (
	"context"
	"log"
	"sort"
	"sync"
	"time"

	"github.com/jonathan/outreach-agent/internal/types"
)

// Tracker combines a record store with the duplicate guard. When the
// persistent store fails it degrades to an in-memory fallback so the
// workflow keeps going; the caller surfaces the data-loss warning.
type Tracker struct {
	guard   Guard
	verbose bool

	mu       sync.Mutex
	store    Store
	fallback *MemoryStore
	degraded bool
}

// NewTracker wraps a store with a guard using the given cooldown window.
func NewTracker(store Store, cooldown time.Duration, verbose bool) *Tracker {
	return &Tracker{
		guard:    NewGuard(cooldown),
		verbose:  verbose,
		store:    store,
		fallback: NewMemoryStore(),
	}
}

// Degraded reports whether the tracker has fallen back to in-memory storage.
func (t *Tracker) Degraded() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.degraded
}

// Check runs the duplicate guard against the current history.
func (t *Tracker) Check(ctx context.Context, rec types.JobRecord, now time.Time) (types.DuplicateVerdict, error) {
	snapshot, err := t.snapshot(ctx)
	if err != nil {
		return types.DuplicateVerdict{}, err
	}
	return t.guard.Check(rec, snapshot, now), nil
}

// Record appends an outreach record. A write conflict is returned to the
// caller; a persistence failure flips the tracker into degraded mode and the
// record lands in the in-memory fallback instead.
func (t *Tracker) Record(ctx context.Context, rec types.OutreachRecord) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.degraded {
		return t.fallback.Append(ctx, rec)
	}

	err := t.store.Append(ctx, rec)
	if err == nil {
		return nil
	}
	if StoreErrorKindOf(err) == KindWriteConflict {
		return err
	}

	if t.verbose {
		log.Printf("[VERBOSE] store append failed, degrading to in-memory fallback: %v", err)
	}
	t.degraded = true
	return t.fallback.Append(ctx, rec)
}

// Statistics summarizes the outreach history.
type Statistics struct {
	Total              int     `json:"total"`
	CompaniesContacted int     `json:"companies_contacted"`
	RecentCount        int     `json:"recent_count"`
	SuccessRate        float64 `json:"success_rate"`
}

// Statistics computes totals, unique companies, the count over the last 30
// days and the success rate across delivery statuses.
func (t *Tracker) Statistics(ctx context.Context) (Statistics, error) {
	snapshot, err := t.snapshot(ctx)
	if err != nil {
		return Statistics{}, err
	}

	stats := Statistics{Total: len(snapshot)}
	companies := make(map[string]bool)
	successful := 0
	cutoff := time.Now().Add(-30 * 24 * time.Hour)

	for _, rec := range snapshot {
		companies[rec.CompanyKey] = true
		if rec.Status.Successful() {
			successful++
		}
		if rec.SentAt.After(cutoff) {
			stats.RecentCount++
		}
	}

	stats.CompaniesContacted = len(companies)
	if stats.Total > 0 {
		stats.SuccessRate = float64(successful) / float64(stats.Total)
	}
	return stats, nil
}

// Recent returns records from the last N days, newest first.
func (t *Tracker) Recent(ctx context.Context, days int) ([]types.OutreachRecord, error) {
	snapshot, err := t.snapshot(ctx)
	if err != nil {
		return nil, err
	}

	cutoff := time.Now().AddDate(0, 0, -days)
	var recent []types.OutreachRecord
	for _, rec := range snapshot {
		if rec.SentAt.After(cutoff) {
			recent = append(recent, rec)
		}
	}

	sort.Slice(recent, func(i, j int) bool {
		return recent[i].SentAt.After(recent[j].SentAt)
	})
	return recent, nil
}

// Close releases the underlying store.
func (t *Tracker) Close() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.store.Close()
}

// snapshot reads the full history, including anything in the fallback when
// degraded.
func (t *Tracker) snapshot(ctx context.Context) ([]types.OutreachRecord, error) {
	t.mu.Lock()
	degraded := t.degraded
	store := t.store
	t.mu.Unlock()

	records, err := store.Snapshot(ctx)
	if err != nil {
		if !degraded {
			t.mu.Lock()
			t.degraded = true
			degraded = true
			t.mu.Unlock()
			if t.verbose {
				log.Printf("[VERBOSE] store snapshot failed, degrading to in-memory fallback: %v", err)
			}
		}
		records = nil
	}

	if degraded {
		extra, _ := t.fallback.Snapshot(ctx)
		records = append(records, extra...)
	}
	return records, nil
}
