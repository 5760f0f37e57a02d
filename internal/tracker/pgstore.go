package tracker

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jonathan/outreach-agent/internal/types"
)

// PGStore persists outreach records in PostgreSQL. It is selected when a
// database URL is configured; the FileStore remains the default.
type PGStore struct {
	pool *pgxpool.Pool
}

// NewPGStore establishes a connection pool and ensures the records table
// exists.
func NewPGStore(ctx context.Context, databaseURL string) (*PGStore, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, &StoreError{Kind: KindPersistenceFailure, Message: "failed to connect to database", Cause: err}
	}

	// Verify connection
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, &StoreError{Kind: KindPersistenceFailure, Message: "failed to ping database", Cause: err}
	}

	store := &PGStore{pool: pool}
	if err := store.ensureSchema(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	return store, nil
}

func (s *PGStore) ensureSchema(ctx context.Context) error {
	_, err := s.pool.Exec(ctx,
		`CREATE TABLE IF NOT EXISTS outreach_records (
			id UUID PRIMARY KEY,
			company_key TEXT NOT NULL,
			job_key TEXT NOT NULL,
			sent_at TIMESTAMPTZ NOT NULL,
			status TEXT NOT NULL
		)`)
	if err != nil {
		return &StoreError{Kind: KindPersistenceFailure, Message: "failed to ensure schema", Cause: err}
	}
	_, err = s.pool.Exec(ctx,
		`CREATE INDEX IF NOT EXISTS outreach_records_keys_idx
		 ON outreach_records (company_key, job_key, sent_at DESC)`)
	if err != nil {
		return &StoreError{Kind: KindPersistenceFailure, Message: "failed to ensure index", Cause: err}
	}
	return nil
}

// Append inserts one record. A primary key violation maps to a write
// conflict, matching the write-once semantics of the other stores.
func (s *PGStore) Append(ctx context.Context, rec types.OutreachRecord) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO outreach_records (id, company_key, job_key, sent_at, status)
		 VALUES ($1, $2, $3, $4, $5)`,
		rec.ID, rec.CompanyKey, rec.JobKey, rec.SentAt, rec.Status,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return &StoreError{Kind: KindWriteConflict, Message: fmt.Sprintf("record %s already appended", rec.ID), Cause: err}
		}
		return &StoreError{Kind: KindPersistenceFailure, Message: "failed to append record", Cause: err}
	}
	return nil
}

// Snapshot reads all records, oldest first.
func (s *PGStore) Snapshot(ctx context.Context) ([]types.OutreachRecord, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, company_key, job_key, sent_at, status
		 FROM outreach_records ORDER BY sent_at ASC`)
	if err != nil {
		return nil, &StoreError{Kind: KindPersistenceFailure, Message: "failed to query records", Cause: err}
	}
	defer rows.Close()

	var records []types.OutreachRecord
	for rows.Next() {
		var rec types.OutreachRecord
		if err := rows.Scan(&rec.ID, &rec.CompanyKey, &rec.JobKey, &rec.SentAt, &rec.Status); err != nil {
			return nil, &StoreError{Kind: KindPersistenceFailure, Message: "failed to scan record", Cause: err}
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, &StoreError{Kind: KindPersistenceFailure, Message: "failed to read records", Cause: err}
	}
	return records, nil
}

// Close closes the connection pool.
func (s *PGStore) Close() error {
	if s.pool != nil {
		s.pool.Close()
	}
	return nil
}
