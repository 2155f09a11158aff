// Package metadata enriches catalog search results with ratings and
// availability from secondary sources, caching every assembled record.
package metadata

import (
	"context"
	"errors"

	"github.com/vmunix/bingeworthy/internal/omdb"
	"github.com/vmunix/bingeworthy/internal/rating"
	"github.com/vmunix/bingeworthy/internal/tmdb"
)

//go:generate mockgen -destination=mocks/sources.go -package=mocks . Catalog,Ratings
//go:generate mockgen -destination=mocks/textgen.go -package=mocks github.com/vmunix/bingeworthy/internal/ai Provider

var (
	// ErrNotConfigured is returned before any remote call when a required
	// API key is missing.
	ErrNotConfigured = errors.New("catalog or ratings API key missing")
	// ErrUpstream wraps failures of the authoritative catalog source.
	ErrUpstream = errors.New("catalog API error")
	// ErrNotFound is returned when the catalog has no such title.
	ErrNotFound = errors.New("title not found")
)

// Catalog is the authoritative source of titles and availability.
type Catalog interface {
	IsConfigured() bool
	SearchMulti(ctx context.Context, query string, page int, language string) (*tmdb.Page, error)
	Trending(ctx context.Context, language string) (*tmdb.Page, error)
	WatchProviders(ctx context.Context, mediaType string, id int64) (*tmdb.WatchProviders, error)
	Detail(ctx context.Context, mediaType string, id int64) (*tmdb.Result, error)
}

// Ratings supplies secondary ratings and plot summaries.
type Ratings interface {
	IsConfigured() bool
	Lookup(ctx context.Context, title, year string) (*omdb.Title, error)
}

// Record is a catalog item merged with its ratings and availability.
type Record struct {
	ID                   int64                     `json:"id"`
	MediaType            string                    `json:"media_type"`
	Title                string                    `json:"title"`
	Year                 string                    `json:"year"`
	Summary              string                    `json:"summary"`
	Poster               *string                   `json:"poster"`
	IMDBRating           *string                   `json:"imdb_rating"`
	RottenTomatoesRating *string                   `json:"rotten_tomatoes_rating"`
	TMDBVoteAverage      *float64                  `json:"tmdb_vote_average"`
	AggregatedRating     *float64                  `json:"aggregated_rating"`
	RatingsBreakdown     map[rating.Source]float64 `json:"ratings_breakdown"`
	Platforms            []string                  `json:"platforms"`
	ProviderLink         *string                   `json:"provider_link"`
}

// SearchQuery holds the inputs of a search.
type SearchQuery struct {
	Query    string
	Platform string // case-insensitive filter on Record.Platforms
	Genre    string // accepted for API compatibility; search/multi cannot filter by genre
	Language string // forwarded to the catalog; empty means en-US
	Country  string // provider region; empty means the configured default
	Page     int
}

// SearchPage is one page of enriched results.
type SearchPage struct {
	Page         int      `json:"page"`
	TotalPages   int      `json:"total_pages"`
	TotalResults int      `json:"total_results"`
	Results      []Record `json:"results"`
}

// ProviderInfo is the availability of one title in one region.
type ProviderInfo struct {
	Providers []string `json:"providers"`
	Link      *string  `json:"link"`
}

// Suggestions is the answer to an autosuggest query.
type Suggestions struct {
	Source      string   `json:"source"`
	Suggestions []string `json:"suggestions"`
}

// Suggestion sources.
const (
	SourceCache = "cache"
	SourceTMDB  = "tmdb"
	SourceNone  = "none"
)

// TrendingItem is a lightweight card for the recommendations list.
type TrendingItem struct {
	ID     int64   `json:"id"`
	Title  string  `json:"title"`
	Year   string  `json:"year"`
	Poster *string `json:"poster"`
}

// Trending is the weekly recommendations list. Source is "cache" when served
// from the store and empty otherwise.
type Trending struct {
	Results []TrendingItem `json:"results"`
	Source  string         `json:"source,omitempty"`
}

func strPtr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
