// Package omdb provides a client for the Open Movie Database ratings API.
package omdb

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/vmunix/bingeworthy/internal/metrics"
)

const defaultBaseURL = "https://www.omdbapi.com"

// LookupTimeout bounds a single title lookup.
const LookupTimeout = 10 * time.Second

// Rating sources as OMDb names them.
const (
	SourceIMDB           = "Internet Movie Database"
	SourceRottenTomatoes = "Rotten Tomatoes"
	SourceMetacritic     = "Metacritic"
)

// ErrNotFound is returned when OMDb answers Response "False".
var ErrNotFound = errors.New("title not found")

// Rating is one entry of the Ratings array.
type Rating struct {
	Source string `json:"Source"`
	Value  string `json:"Value"`
}

// Title is the subset of an OMDb title record the service reads.
type Title struct {
	Title    string   `json:"Title"`
	Year     string   `json:"Year"`
	Plot     string   `json:"Plot"`
	IMDBID   string   `json:"imdbID"`
	Ratings  []Rating `json:"Ratings"`
	Response string   `json:"Response"`
	Error    string   `json:"Error,omitempty"`
}

// Rating returns the value reported by source, or "" when absent.
func (t *Title) Rating(source string) string {
	for _, r := range t.Ratings {
		if r.Source == source {
			return r.Value
		}
	}
	return ""
}

// Summary returns Plot unless it is empty or "N/A".
func (t *Title) Summary() string {
	if t.Plot == "" || t.Plot == "N/A" {
		return ""
	}
	return t.Plot
}

// Client is an OMDb API client.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
	metrics    *metrics.Metrics
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL sets a custom base URL (for testing).
func WithBaseURL(url string) Option {
	return func(c *Client) {
		c.baseURL = strings.TrimRight(url, "/")
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

// NewClient creates a new OMDb client.
func NewClient(apiKey string, opts ...Option) *Client {
	c := &Client{
		apiKey:     apiKey,
		baseURL:    defaultBaseURL,
		httpClient: &http.Client{},
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

// Lookup fetches a title by name and optional year.
func (c *Client) Lookup(ctx context.Context, title, year string) (_ *Title, err error) {
	defer func() { c.metrics.Upstream("omdb", err) }()

	ctx, cancel := context.WithTimeout(ctx, LookupTimeout)
	defer cancel()

	params := url.Values{}
	params.Set("apikey", c.apiKey)
	params.Set("t", title)
	if year != "" {
		params.Set("y", year)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("OMDb API error: %s", resp.Status)
	}

	var t Title
	if err := json.NewDecoder(resp.Body).Decode(&t); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	if strings.EqualFold(t.Response, "False") {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, t.Error)
	}
	return &t, nil
}
