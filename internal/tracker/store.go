// Package tracker persists the outreach history and answers duplicate
// checks against it.
package tracker

import (
	"context"
	"errors"
	"fmt"

	"github.com/jonathan/outreach-agent/internal/types"
)

// StoreErrorKind classifies store failures.
type StoreErrorKind string

const (
	// KindWriteConflict means a record with the same id was already
	// appended. Records are write-once; the caller must mint a new id.
	KindWriteConflict StoreErrorKind = "write_conflict"
	// KindPersistenceFailure means the storage medium failed. The tracker
	// degrades to its in-memory fallback on this kind.
	KindPersistenceFailure StoreErrorKind = "persistence_failure"
)

// StoreError describes a record store failure.
type StoreError struct {
	Kind    StoreErrorKind
	Message string
	Cause   error
}

func (e *StoreError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("tracker: %s: %s: %v", e.Kind, e.Message, e.Cause)
	}
	return fmt.Sprintf("tracker: %s: %s", e.Kind, e.Message)
}

func (e *StoreError) Unwrap() error {
	return e.Cause
}

// StoreErrorKindOf returns the kind of a store error, or persistence failure
// when the error is not a *StoreError.
func StoreErrorKindOf(err error) StoreErrorKind {
	var se *StoreError
	if errors.As(err, &se) {
		return se.Kind
	}
	return KindPersistenceFailure
}

// Store is the append-only outreach record log. Records are immutable once
// appended; Snapshot returns a copy safe for the caller to hold.
type Store interface {
	Append(ctx context.Context, rec types.OutreachRecord) error
	Snapshot(ctx context.Context) ([]types.OutreachRecord, error)
	Close() error
}
