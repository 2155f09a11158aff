// Package cache provides a SQLite-backed key/value store whose freshness is
// decided at read time.
//
// Rows carry only the instant they were written. Each reader passes the
// maximum age it tolerates, so call sites with different staleness budgets
// share one table.
package cache

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/vmunix/bingeworthy/internal/metrics"
)

// Store persists JSON values under string keys.
type Store struct {
	db      *sql.DB
	now     func() time.Time
	log     *slog.Logger
	metrics *metrics.Metrics
}

// Option configures a Store.
type Option func(*Store)

// WithClock overrides time.Now (for testing).
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		s.now = now
	}
}

// WithLogger sets a logger for read failures.
func WithLogger(log *slog.Logger) Option {
	return func(s *Store) {
		s.log = log
	}
}

// WithMetrics records lookups on m.
func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Store) {
		s.metrics = m
	}
}

// New creates a store on a database migrated with the cache table.
func New(db *sql.DB, opts ...Option) *Store {
	s := &Store{db: db, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Get decodes the value stored under key into dst if it was written less than
// expiry ago. Missing, stale, unreadable and undecodable entries all report false.
func (s *Store) Get(ctx context.Context, key string, expiry time.Duration, dst any) bool {
	data, result := s.lookup(ctx, key, expiry)
	if result != metrics.LookupHit {
		s.metrics.CacheLookup(result)
		return false
	}

	if err := json.Unmarshal(data, dst); err != nil {
		if s.log != nil {
			s.log.Warn("failed to unmarshal cached value", "key", key, "error", err)
		}
		s.metrics.CacheLookup(metrics.LookupError)
		return false
	}
	s.metrics.CacheLookup(metrics.LookupHit)
	return true
}

// GetRaw returns the stored JSON for key under the same freshness rule as Get.
func (s *Store) GetRaw(ctx context.Context, key string, expiry time.Duration) ([]byte, bool) {
	data, result := s.lookup(ctx, key, expiry)
	s.metrics.CacheLookup(result)
	if result != metrics.LookupHit {
		return nil, false
	}
	return data, true
}

func (s *Store) lookup(ctx context.Context, key string, expiry time.Duration) ([]byte, string) {
	var value string
	var writtenAt int64

	err := s.db.QueryRowContext(ctx,
		"SELECT value, timestamp FROM cache WHERE key = ?", key,
	).Scan(&value, &writtenAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, metrics.LookupMiss
	}
	if err != nil {
		if s.log != nil {
			s.log.Warn("cache read failed", "key", key, "error", err)
		}
		return nil, metrics.LookupError
	}

	// Stale rows stay in place; Prune removes them in bulk.
	if s.now().Sub(time.UnixMilli(writtenAt)) >= expiry {
		return nil, metrics.LookupStale
	}
	if value == "" || value == "null" {
		return nil, metrics.LookupMiss
	}
	return []byte(value), metrics.LookupHit
}

// Set marshals value and replaces any entry under key, stamping it with the
// current time. The replace is a single statement, so readers see either the
// old row or the new one.
func (s *Store) Set(ctx context.Context, key string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("cache set %q: marshal: %w", key, err)
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO cache (key, value, timestamp)
		 VALUES (?, ?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value, timestamp = excluded.timestamp`,
		key, string(data), s.now().UnixMilli(),
	)
	if err != nil {
		return fmt.Errorf("cache set %q: %w", key, err)
	}
	return nil
}

// Delete removes a cached value.
func (s *Store) Delete(ctx context.Context, key string) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM cache WHERE key = ?", key)
	if err != nil {
		return fmt.Errorf("cache delete: %w", err)
	}
	return nil
}

// Clear removes every entry and returns how many were removed.
func (s *Store) Clear(ctx context.Context) (int64, error) {
	result, err := s.db.ExecContext(ctx, "DELETE FROM cache")
	if err != nil {
		return 0, fmt.Errorf("cache clear: %w", err)
	}
	return result.RowsAffected()
}

// Prune removes entries written more than olderThan ago.
// Returns the number of entries removed.
func (s *Store) Prune(ctx context.Context, olderThan time.Duration) (int64, error) {
	cutoff := s.now().Add(-olderThan).UnixMilli()
	result, err := s.db.ExecContext(ctx, "DELETE FROM cache WHERE timestamp < ?", cutoff)
	if err != nil {
		return 0, fmt.Errorf("cache prune: %w", err)
	}
	return result.RowsAffected()
}
