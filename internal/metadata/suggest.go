package metadata

import (
	"context"
	"slices"

	"github.com/vmunix/bingeworthy/internal/ai"
	"github.com/vmunix/bingeworthy/internal/cache"
)

// Suggest returns quick search suggestions for a partial query. Catalog
// titles are preferred; generated suggestions are used only when the catalog
// offers none. The final list is cached even when empty.
func (s *Service) Suggest(ctx context.Context, query string) Suggestions {
	key := SuggestKey(query)

	var cached []string
	if s.store.Get(ctx, key, cache.SuggestTTL, &cached) && len(cached) > 0 {
		return Suggestions{Source: SourceCache, Suggestions: cached}
	}

	suggestions := s.catalogSuggestions(ctx, query)
	if len(suggestions) == 0 && s.textgen != nil && s.textgen.IsConfigured() {
		suggestions = s.generatedSuggestions(ctx, query)
	}
	if suggestions == nil {
		suggestions = []string{}
	}

	if err := s.store.Set(ctx, key, suggestions); err != nil {
		if s.log != nil {
			s.log.Warn("failed to cache suggestions", "query", query, "error", err)
		}
	}

	source := SourceNone
	if len(suggestions) > 0 {
		source = SourceTMDB
	}
	return Suggestions{Source: source, Suggestions: suggestions}
}

func (s *Service) catalogSuggestions(ctx context.Context, query string) []string {
	if !s.catalog.IsConfigured() {
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, suggestTimeout)
	defer cancel()

	page, err := s.catalog.SearchMulti(ctx, query, 1, "")
	if err != nil {
		if s.log != nil {
			s.log.Warn("suggest search failed", "query", query, "error", err)
		}
		return nil
	}

	items := page.Results
	if len(items) > maxTMDBSuggestion {
		items = items[:maxTMDBSuggestion]
	}
	// Only exact repeats are dropped: "The Thing" and "Thing" are different works.
	names := make([]string, 0, len(items))
	for _, item := range items {
		if t := item.DisplayTitle(); t != "" && !slices.Contains(names, t) {
			names = append(names, t)
		}
	}
	return names
}

func (s *Service) generatedSuggestions(ctx context.Context, query string) []string {
	key := LLMSuggestKey(query)

	var cached []string
	if s.store.Get(ctx, key, cache.LLMSuggestTTL, &cached) && len(cached) > 0 {
		return cached
	}

	suggestions, err := ai.Suggest(ctx, s.textgen, query)
	if err != nil {
		if s.log != nil {
			s.log.Warn("text generation failed", "query", query, "error", err)
		}
		return nil
	}
	if len(suggestions) > 0 {
		if err := s.store.Set(ctx, key, suggestions); err != nil {
			if s.log != nil {
				s.log.Warn("failed to cache generated suggestions", "query", query, "error", err)
			}
		}
	}
	return suggestions
}
