// Package settings stores the admin-editable UI configuration: which search
// filters and card fields the frontend shows.
package settings

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"maps"

	"github.com/vmunix/bingeworthy/internal/cache"
)

// CacheKey is the store key of the current settings.
const CacheKey = "app_settings"

// ErrInvalid is returned when an update omits a field group.
var ErrInvalid = errors.New("search_fields and card_fields are required")

// Settings is the single settings row.
type Settings struct {
	ID           int64           `json:"id"`
	SearchFields map[string]bool `json:"search_fields"`
	CardFields   map[string]bool `json:"card_fields"`
}

// DefaultSearchFields enables every search filter.
var DefaultSearchFields = map[string]bool{
	"platforms": true,
	"genres":    true,
	"actors":    true,
	"language":  true,
	"country":   true,
}

// DefaultCardFields shows everything but the cast.
var DefaultCardFields = map[string]bool{
	"title":    true,
	"rating":   true,
	"summary":  true,
	"platform": true,
	"actors":   false,
	"year":     true,
}

// Store reads and writes settings through the cache.
type Store struct {
	db    *sql.DB
	cache *cache.Store
	log   *slog.Logger
}

// New creates a settings store.
func New(db *sql.DB, c *cache.Store, log *slog.Logger) *Store {
	return &Store{db: db, cache: c, log: log}
}

// Get returns the current settings, creating the default row when the table
// is empty.
func (s *Store) Get(ctx context.Context) (*Settings, error) {
	var cached Settings
	if s.cache.Get(ctx, CacheKey, cache.SettingsTTL, &cached) {
		return &cached, nil
	}

	st, err := s.load(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		st, err = s.insert(ctx, maps.Clone(DefaultSearchFields), maps.Clone(DefaultCardFields))
	}
	if err != nil {
		return nil, err
	}

	if err := s.cache.Set(ctx, CacheKey, st); err != nil {
		if s.log != nil {
			s.log.Warn("failed to cache settings", "error", err)
		}
	}
	return st, nil
}

// Update replaces both field groups and drops the cached copy.
func (s *Store) Update(ctx context.Context, searchFields, cardFields map[string]bool) error {
	if searchFields == nil || cardFields == nil {
		return ErrInvalid
	}

	current, err := s.load(ctx)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		if _, err := s.insert(ctx, searchFields, cardFields); err != nil {
			return err
		}
	case err != nil:
		return err
	default:
		search, card, err := encode(searchFields, cardFields)
		if err != nil {
			return err
		}
		if _, err := s.db.ExecContext(ctx,
			"UPDATE settings SET search_fields = ?, card_fields = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?",
			search, card, current.ID,
		); err != nil {
			return fmt.Errorf("update settings: %w", err)
		}
	}

	// The row is already written; a stale cached copy expires with SettingsTTL.
	if err := s.cache.Delete(ctx, CacheKey); err != nil && s.log != nil {
		s.log.Warn("failed to invalidate settings cache", "error", err)
	}
	if s.log != nil {
		s.log.Info("settings updated")
	}
	return nil
}

func (s *Store) load(ctx context.Context) (*Settings, error) {
	var st Settings
	var search, card string
	err := s.db.QueryRowContext(ctx,
		"SELECT id, search_fields, card_fields FROM settings ORDER BY id LIMIT 1",
	).Scan(&st.ID, &search, &card)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("load settings: %w", err)
	}
	if err := json.Unmarshal([]byte(search), &st.SearchFields); err != nil {
		return nil, fmt.Errorf("decode search_fields: %w", err)
	}
	if err := json.Unmarshal([]byte(card), &st.CardFields); err != nil {
		return nil, fmt.Errorf("decode card_fields: %w", err)
	}
	return &st, nil
}

func (s *Store) insert(ctx context.Context, searchFields, cardFields map[string]bool) (*Settings, error) {
	search, card, err := encode(searchFields, cardFields)
	if err != nil {
		return nil, err
	}
	res, err := s.db.ExecContext(ctx,
		"INSERT INTO settings (search_fields, card_fields) VALUES (?, ?)", search, card,
	)
	if err != nil {
		return nil, fmt.Errorf("insert settings: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("get last insert id: %w", err)
	}
	return &Settings{ID: id, SearchFields: searchFields, CardFields: cardFields}, nil
}

func encode(searchFields, cardFields map[string]bool) (string, string, error) {
	search, err := json.Marshal(searchFields)
	if err != nil {
		return "", "", fmt.Errorf("encode search_fields: %w", err)
	}
	card, err := json.Marshal(cardFields)
	if err != nil {
		return "", "", fmt.Errorf("encode card_fields: %w", err)
	}
	return string(search), string(card), nil
}
