package tracker

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/gofrs/flock"
	"github.com/google/uuid"

	"github.com/jonathan/outreach-agent/internal/types"
)

// FileStore is the default record store: an append-only JSON-lines log, one
// record per line. A sidecar flock gives cross-process exclusivity for
// writers; readers in other processes see at worst a half-written trailing
// line, which Snapshot skips.
type FileStore struct {
	path string
	lock *flock.Flock

	mu  sync.Mutex
	ids map[uuid.UUID]bool
}

// NewFileStore opens (creating if needed) the log at path and acquires the
// writer lock. The existing log is read once to seed the write-once id set.
func NewFileStore(path string) (*FileStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, &StoreError{Kind: KindPersistenceFailure, Message: "failed to create storage directory", Cause: err}
	}

	lock := flock.New(path + ".lock")
	locked, err := lock.TryLock()
	if err != nil {
		return nil, &StoreError{Kind: KindPersistenceFailure, Message: "failed to acquire store lock", Cause: err}
	}
	if !locked {
		return nil, &StoreError{Kind: KindPersistenceFailure, Message: fmt.Sprintf("store %s is locked by another process", path)}
	}

	store := &FileStore{
		path: path,
		lock: lock,
		ids:  make(map[uuid.UUID]bool),
	}

	existing, err := store.Snapshot(context.Background())
	if err != nil {
		_ = lock.Unlock()
		return nil, err
	}
	for _, rec := range existing {
		store.ids[rec.ID] = true
	}

	return store, nil
}

// Append writes one record as a JSON line and fsyncs before returning.
// Appending an id that already exists in the log is a write conflict.
func (s *FileStore) Append(_ context.Context, rec types.OutreachRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.ids[rec.ID] {
		return &StoreError{Kind: KindWriteConflict, Message: fmt.Sprintf("record %s already appended", rec.ID)}
	}

	line, err := json.Marshal(rec)
	if err != nil {
		return &StoreError{Kind: KindPersistenceFailure, Message: "failed to encode record", Cause: err}
	}
	line = append(line, '\n')

	file, err := os.OpenFile(s.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return &StoreError{Kind: KindPersistenceFailure, Message: "failed to open store", Cause: err}
	}
	defer file.Close()

	if _, err := file.Write(line); err != nil {
		return &StoreError{Kind: KindPersistenceFailure, Message: "failed to append record", Cause: err}
	}
	if err := file.Sync(); err != nil {
		return &StoreError{Kind: KindPersistenceFailure, Message: "failed to sync store", Cause: err}
	}

	s.ids[rec.ID] = true
	return nil
}

// Snapshot reads the whole log. A line that fails to parse at the end of the
// file is treated as a half-written append and skipped; a corrupt line in
// the middle is a persistence failure.
func (s *FileStore) Snapshot(_ context.Context) ([]types.OutreachRecord, error) {
	file, err := os.Open(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, &StoreError{Kind: KindPersistenceFailure, Message: "failed to open store", Cause: err}
	}
	defer file.Close()

	var records []types.OutreachRecord
	var pendingErr error

	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		if pendingErr != nil {
			// The unparsable line was not the trailing one.
			return nil, pendingErr
		}

		var rec types.OutreachRecord
		if err := json.Unmarshal(line, &rec); err != nil {
			pendingErr = &StoreError{Kind: KindPersistenceFailure, Message: "corrupt record in store", Cause: err}
			continue
		}
		records = append(records, rec)
	}
	if err := scanner.Err(); err != nil {
		return nil, &StoreError{Kind: KindPersistenceFailure, Message: "failed to read store", Cause: err}
	}

	return records, nil
}

// Close releases the writer lock.
func (s *FileStore) Close() error {
	return s.lock.Unlock()
}
