package tracker

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/jonathan/outreach-agent/internal/types"
)

// MemoryStore keeps records in memory. It backs tests and serves as the
// degraded fallback when the persistent store fails mid-session; anything
// recorded here is lost on exit.
type MemoryStore struct {
	mu      sync.RWMutex
	records []types.OutreachRecord
	ids     map[uuid.UUID]bool
}

// NewMemoryStore returns an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{ids: make(map[uuid.UUID]bool)}
}

// Append adds a record, enforcing write-once ids.
func (s *MemoryStore) Append(_ context.Context, rec types.OutreachRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.ids[rec.ID] {
		return &StoreError{Kind: KindWriteConflict, Message: fmt.Sprintf("record %s already appended", rec.ID)}
	}
	s.ids[rec.ID] = true
	s.records = append(s.records, rec)
	return nil
}

// Snapshot returns a copy of all records.
func (s *MemoryStore) Snapshot(_ context.Context) ([]types.OutreachRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]types.OutreachRecord, len(s.records))
	copy(out, s.records)
	return out, nil
}

// Close is a no-op.
func (s *MemoryStore) Close() error { return nil }
