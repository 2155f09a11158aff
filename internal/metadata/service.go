package metadata

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/sourcegraph/conc/pool"

	"github.com/vmunix/bingeworthy/internal/ai"
	"github.com/vmunix/bingeworthy/internal/cache"
	"github.com/vmunix/bingeworthy/internal/omdb"
	"github.com/vmunix/bingeworthy/internal/rating"
	"github.com/vmunix/bingeworthy/internal/tmdb"
	"github.com/vmunix/bingeworthy/pkg/titles"
)

const (
	// MaxItemsPerPage caps how many catalog items one page enriches.
	MaxItemsPerPage = 100
	// DefaultWorkers is the enrichment pool size.
	DefaultWorkers = 4
	// DefaultRegion is the provider region when neither query nor config sets one.
	DefaultRegion = "US"

	suggestTimeout    = 6 * time.Second
	maxTMDBSuggestion = 8
)

// Service assembles and caches enriched records.
type Service struct {
	catalog Catalog
	ratings Ratings
	textgen ai.Provider
	store   *cache.Store
	log     *slog.Logger
	workers int
	region  string
}

// Option configures a Service.
type Option func(*Service)

// WithTextGenerator enables generated suggestions when the catalog has none.
func WithTextGenerator(p ai.Provider) Option {
	return func(s *Service) {
		s.textgen = p
	}
}

// WithLogger sets the logger.
func WithLogger(log *slog.Logger) Option {
	return func(s *Service) {
		s.log = log
	}
}

// WithWorkers sets how many items of a page are enriched at once.
func WithWorkers(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.workers = n
		}
	}
}

// WithRegion sets the default provider region.
func WithRegion(region string) Option {
	return func(s *Service) {
		if region != "" {
			s.region = region
		}
	}
}

// NewService creates a new enrichment service.
func NewService(catalog Catalog, ratings Ratings, store *cache.Store, opts ...Option) *Service {
	s := &Service{
		catalog: catalog,
		ratings: ratings,
		store:   store,
		workers: DefaultWorkers,
		region:  DefaultRegion,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Search runs a catalog search and enriches every item of the returned page.
// Results are sorted by aggregated rating, highest first; pagination counters
// are passed through from the catalog.
func (s *Service) Search(ctx context.Context, q SearchQuery) (*SearchPage, error) {
	if !s.catalog.IsConfigured() || !s.ratings.IsConfigured() {
		return nil, ErrNotConfigured
	}

	page := max(q.Page, 1)
	tp, err := s.catalog.SearchMulti(ctx, q.Query, page, q.Language)
	if err != nil {
		return nil, fmt.Errorf("%w: search: %w", ErrUpstream, err)
	}

	items := tp.Results
	if len(items) > MaxItemsPerPage {
		items = items[:MaxItemsPerPage]
	}
	region := q.Country
	if region == "" {
		region = s.region
	}

	records := make([]Record, len(items))
	p := pool.New().WithMaxGoroutines(s.workers)
	for i, item := range items {
		p.Go(func() {
			records[i] = s.enrich(ctx, item, region)
		})
	}
	p.Wait()

	if q.Platform != "" {
		records = filterPlatform(records, q.Platform)
	}
	rating.SortDescending(records, func(r Record) *float64 { return r.AggregatedRating })

	out := &SearchPage{
		Page:         page,
		TotalPages:   1,
		TotalResults: len(records),
		Results:      records,
	}
	if tp.Page != nil {
		out.Page = *tp.Page
	}
	if tp.TotalPages != nil {
		out.TotalPages = *tp.TotalPages
	}
	if tp.TotalResults != nil {
		out.TotalResults = *tp.TotalResults
	}

	if s.log != nil {
		s.log.Debug("search complete", "query", q.Query, "page", out.Page, "results", len(records))
	}
	return out, nil
}

// Detail returns the enriched record for one title.
func (s *Service) Detail(ctx context.Context, mediaType string, id int64, region string) (*Record, error) {
	if !s.catalog.IsConfigured() || !s.ratings.IsConfigured() {
		return nil, ErrNotConfigured
	}

	var rec Record
	if s.store.Get(ctx, DetailKey(mediaType, id), cache.MovieDetailTTL, &rec) {
		return &rec, nil
	}

	item, err := s.catalog.Detail(ctx, mediaType, id)
	if errors.Is(err, tmdb.ErrNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: detail: %w", ErrUpstream, err)
	}
	if region == "" {
		region = s.region
	}

	rec = s.enrich(ctx, *item, region)
	return &rec, nil
}

// enrich returns the cached record for item or assembles and caches a new one.
func (s *Service) enrich(ctx context.Context, item tmdb.Result, region string) Record {
	key := DetailKey(item.Kind(), item.ID)

	var rec Record
	if s.store.Get(ctx, key, cache.MovieDetailTTL, &rec) {
		if s.log != nil {
			s.log.Debug("cache hit for record", "key", key)
		}
		return rec
	}

	rec = s.assemble(ctx, item, region)
	if err := s.store.Set(ctx, key, rec); err != nil {
		if s.log != nil {
			s.log.Warn("failed to cache record", "key", key, "error", err)
		}
	}
	return rec
}

func (s *Service) assemble(ctx context.Context, item tmdb.Result, region string) Record {
	title, year := item.DisplayTitle(), item.Year()

	var imdb, rt, plot string
	if t := s.lookupRatings(ctx, title, year); t != nil {
		imdb = t.Rating(omdb.SourceIMDB)
		rt = t.Rating(omdb.SourceRottenTomatoes)
		plot = t.Summary()
	}

	agg := rating.Aggregate(item.VoteAverage, imdb, rt)
	providers := s.Providers(ctx, item.Kind(), item.ID, region)

	summary := plot
	if summary == "" {
		summary = item.Overview
	}

	return Record{
		ID:                   item.ID,
		MediaType:            item.Kind(),
		Title:                title,
		Year:                 year,
		Summary:              summary,
		Poster:               strPtr(item.PosterURL()),
		IMDBRating:           strPtr(imdb),
		RottenTomatoesRating: strPtr(rt),
		TMDBVoteAverage:      item.VoteAverage,
		AggregatedRating:     agg.Aggregated,
		RatingsBreakdown:     agg.Breakdown,
		Platforms:            providers.Providers,
		ProviderLink:         providers.Link,
	}
}

// lookupRatings returns the ratings record for title, or nil when the source
// fails or answers for a different work.
func (s *Service) lookupRatings(ctx context.Context, title, year string) *omdb.Title {
	t, err := s.ratings.Lookup(ctx, title, year)
	if err != nil {
		if s.log != nil {
			s.log.Warn("ratings lookup failed", "title", title, "year", year, "error", err)
		}
		return nil
	}
	if t.Title != "" && titles.Match(title, t.Title) == titles.ConfidenceNone {
		if s.log != nil {
			s.log.Debug("ignoring ratings for different title", "want", title, "got", t.Title)
		}
		return nil
	}
	return t
}

// Providers returns where a title can be watched in region. Results are cached
// for a day; failures yield an empty list and are not cached.
func (s *Service) Providers(ctx context.Context, mediaType string, id int64, region string) ProviderInfo {
	if region == "" {
		region = s.region
	}
	key := ProvidersKey(mediaType, id, region)

	var info ProviderInfo
	if s.store.Get(ctx, key, cache.ProvidersTTL, &info) {
		return info
	}

	empty := ProviderInfo{Providers: []string{}}
	if !s.catalog.IsConfigured() {
		return empty
	}

	wp, err := s.catalog.WatchProviders(ctx, mediaType, id)
	if err != nil {
		if s.log != nil {
			s.log.Warn("provider lookup failed", "media_type", mediaType, "id", id, "error", err)
		}
		return empty
	}

	rp := wp.Results[region]
	info = ProviderInfo{Providers: rp.Names(), Link: strPtr(rp.Link)}
	if err := s.store.Set(ctx, key, info); err != nil {
		if s.log != nil {
			s.log.Warn("failed to cache providers", "key", key, "error", err)
		}
	}
	return info
}

func filterPlatform(records []Record, platform string) []Record {
	out := records[:0]
	for _, r := range records {
		for _, p := range r.Platforms {
			if strings.EqualFold(p, platform) {
				out = append(out, r)
				break
			}
		}
	}
	return out
}
