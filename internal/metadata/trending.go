package metadata

import (
	"context"
	"fmt"

	"github.com/vmunix/bingeworthy/internal/cache"
)

// Trending returns this week's trending titles, cached for an hour.
func (s *Service) Trending(ctx context.Context) (*Trending, error) {
	if !s.catalog.IsConfigured() {
		return nil, ErrNotConfigured
	}

	var items []TrendingItem
	if s.store.Get(ctx, TrendingKey, cache.TrendingTTL, &items) && len(items) > 0 {
		return &Trending{Results: items, Source: SourceCache}, nil
	}

	page, err := s.catalog.Trending(ctx, "")
	if err != nil {
		return nil, fmt.Errorf("%w: trending: %w", ErrUpstream, err)
	}

	results := page.Results
	if len(results) > MaxItemsPerPage {
		results = results[:MaxItemsPerPage]
	}
	items = make([]TrendingItem, 0, len(results))
	for _, r := range results {
		items = append(items, TrendingItem{
			ID:     r.ID,
			Title:  r.DisplayTitle(),
			Year:   r.Year(),
			Poster: strPtr(r.PosterURL()),
		})
	}

	if err := s.store.Set(ctx, TrendingKey, items); err != nil {
		if s.log != nil {
			s.log.Warn("failed to cache trending", "error", err)
		}
	}
	return &Trending{Results: items}, nil
}
