package tmdb

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/vmunix/bingeworthy/internal/metrics"
)

const defaultBaseURL = "https://api.themoviedb.org"

// Per-call timeouts.
const (
	SearchTimeout    = 15 * time.Second
	ProvidersTimeout = 10 * time.Second
	DetailTimeout    = 10 * time.Second
	TrendingTimeout  = 15 * time.Second
)

const defaultLanguage = "en-US"

// ErrNotFound is returned when a title doesn't exist in TMDB.
var ErrNotFound = errors.New("title not found")

// StatusError reports a non-200 answer.
type StatusError struct {
	Status string
	Code   int
}

func (e *StatusError) Error() string {
	return "TMDB API error: " + e.Status
}

// Client is a TMDB API client.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
	metrics    *metrics.Metrics
	language   string
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL sets a custom base URL (for testing).
func WithBaseURL(url string) Option {
	return func(c *Client) {
		c.baseURL = url
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithMetrics counts outbound calls on m.
func WithMetrics(m *metrics.Metrics) Option {
	return func(c *Client) {
		c.metrics = m
	}
}

// WithLanguage sets the language used when a call does not name one.
func WithLanguage(lang string) Option {
	return func(c *Client) {
		if lang != "" {
			c.language = lang
		}
	}
}

// NewClient creates a new TMDB client.
func NewClient(apiKey string, opts ...Option) *Client {
	c := &Client{
		apiKey:     apiKey,
		baseURL:    defaultBaseURL,
		httpClient: &http.Client{},
		language:   defaultLanguage,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// IsConfigured reports whether an API key is set.
func (c *Client) IsConfigured() bool {
	return c != nil && c.apiKey != ""
}

// SearchMulti searches movies, shows and people in one call. An empty
// language means the client default (en-US unless set with WithLanguage).
func (c *Client) SearchMulti(ctx context.Context, query string, page int, language string) (*Page, error) {
	if language == "" {
		language = c.language
	}
	if page < 1 {
		page = 1
	}
	params := url.Values{}
	params.Set("query", query)
	params.Set("language", language)
	params.Set("include_adult", "false")
	params.Set("page", strconv.Itoa(page))

	var p Page
	if err := c.get(ctx, "/3/search/multi", params, SearchTimeout, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// Trending returns the first page of this week's trending titles.
func (c *Client) Trending(ctx context.Context, language string) (*Page, error) {
	if language == "" {
		language = c.language
	}
	params := url.Values{}
	params.Set("language", language)
	params.Set("page", "1")

	var p Page
	if err := c.get(ctx, "/3/trending/all/week", params, TrendingTimeout, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// WatchProviders fetches availability for a title. Anything other than
// MediaMovie is looked up as a show.
func (c *Client) WatchProviders(ctx context.Context, mediaType string, id int64) (*WatchProviders, error) {
	var wp WatchProviders
	path := fmt.Sprintf("/3/%s/%d/watch/providers", pathKind(mediaType), id)
	if err := c.get(ctx, path, nil, ProvidersTimeout, &wp); err != nil {
		return nil, err
	}
	return &wp, nil
}

// GetMovie fetches movie metadata by TMDB ID.
func (c *Client) GetMovie(ctx context.Context, tmdbID int64) (*Movie, error) {
	var m Movie
	if err := c.get(ctx, fmt.Sprintf("/3/movie/%d", tmdbID), nil, DetailTimeout, &m); err != nil {
		return nil, err
	}
	return &m, nil
}

// GetShow fetches series metadata by TMDB ID.
func (c *Client) GetShow(ctx context.Context, tmdbID int64) (*Show, error) {
	var s Show
	if err := c.get(ctx, fmt.Sprintf("/3/tv/%d", tmdbID), nil, DetailTimeout, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

// Detail fetches a movie or show and returns it in search result shape.
func (c *Client) Detail(ctx context.Context, mediaType string, id int64) (*Result, error) {
	if pathKind(mediaType) == MediaMovie {
		m, err := c.GetMovie(ctx, id)
		if err != nil {
			return nil, err
		}
		r := m.AsResult()
		return &r, nil
	}
	s, err := c.GetShow(ctx, id)
	if err != nil {
		return nil, err
	}
	r := s.AsResult()
	return &r, nil
}

func pathKind(mediaType string) string {
	if mediaType == MediaMovie {
		return MediaMovie
	}
	return MediaTV
}

func (c *Client) get(ctx context.Context, path string, params url.Values, timeout time.Duration, dst any) (err error) {
	defer func() { c.metrics.Upstream("tmdb", err) }()

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	if params == nil {
		params = url.Values{}
	}
	params.Set("api_key", c.apiKey)

	// Build request
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path+"?"+params.Encode(), nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	// Execute
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	// Handle errors
	if resp.StatusCode == http.StatusNotFound {
		return ErrNotFound
	}
	if resp.StatusCode != http.StatusOK {
		return &StatusError{Status: resp.Status, Code: resp.StatusCode}
	}

	// Decode
	if err := json.NewDecoder(resp.Body).Decode(dst); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
