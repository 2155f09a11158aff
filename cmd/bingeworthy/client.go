package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

// APIError is a non-2xx response from the server.
type APIError struct {
	Status  int
	Code    string
	Message string
}

func (e *APIError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("server error %d (%s): %s", e.Status, e.Code, e.Message)
	}
	return fmt.Sprintf("server error %d: %s", e.Status, e.Message)
}

// Client wraps HTTP calls to the bingeworthy server.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

// NewClient creates a new API client. token may be empty for public endpoints.
func NewClient(serverURL, token string) *Client {
	return &Client{
		baseURL: serverURL,
		token:   token,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

func (c *Client) do(method, path string, body io.Reader, contentType string, result any) error {
	req, err := http.NewRequest(method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("request creation failed: %w", err)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeError(resp)
	}
	if result == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(result)
}

func decodeError(resp *http.Response) error {
	raw, _ := io.ReadAll(resp.Body)
	apiErr := &APIError{Status: resp.StatusCode, Message: string(bytes.TrimSpace(raw))}
	var body struct {
		Error string `json:"error"`
		Code  string `json:"code"`
	}
	if json.Unmarshal(raw, &body) == nil && body.Error != "" {
		apiErr.Message = body.Error
		apiErr.Code = body.Code
	}
	return apiErr
}

func (c *Client) get(path string, result any) error {
	return c.do(http.MethodGet, path, nil, "", result)
}

func (c *Client) sendJSON(method, path string, body, result any) error {
	jsonBody, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("marshal error: %w", err)
	}
	return c.do(method, path, bytes.NewReader(jsonBody), "application/json", result)
}

// Response types mirror the server's JSON.

type Title struct {
	ID                   int64              `json:"id"`
	MediaType            string             `json:"media_type"`
	Title                string             `json:"title"`
	Year                 string             `json:"year"`
	Summary              string             `json:"summary"`
	Poster               *string            `json:"poster"`
	IMDBRating           *string            `json:"imdb_rating"`
	RottenTomatoesRating *string            `json:"rotten_tomatoes_rating"`
	TMDBVoteAverage      *float64           `json:"tmdb_vote_average"`
	AggregatedRating     *float64           `json:"aggregated_rating"`
	RatingsBreakdown     map[string]float64 `json:"ratings_breakdown"`
	Platforms            []string           `json:"platforms"`
	ProviderLink         *string            `json:"provider_link"`
}

type SearchResponse struct {
	Page         int     `json:"page"`
	TotalPages   int     `json:"total_pages"`
	TotalResults int     `json:"total_results"`
	Results      []Title `json:"results"`
}

type SuggestResponse struct {
	Source      string   `json:"source"`
	Suggestions []string `json:"suggestions"`
}

type TrendingItem struct {
	ID     int64   `json:"id"`
	Title  string  `json:"title"`
	Year   string  `json:"year"`
	Poster *string `json:"poster"`
}

type TrendingResponse struct {
	Results []TrendingItem `json:"results"`
	Source  string         `json:"source,omitempty"`
}

type SettingsResponse struct {
	ID           int64           `json:"id"`
	SearchFields map[string]bool `json:"search_fields"`
	CardFields   map[string]bool `json:"card_fields"`
}

type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

type MessageResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

type ClearCacheResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	Deleted int64  `json:"deleted"`
}

type StatusResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
}

// SearchOptions narrows a search.
type SearchOptions struct {
	Platform string
	Language string
	Country  string
	Page     int
}

// API methods

func (c *Client) Status() (*StatusResponse, error) {
	var resp StatusResponse
	if err := c.get("/api/v1/status", &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) Search(query string, opts SearchOptions) (*SearchResponse, error) {
	params := url.Values{}
	params.Set("query", query)
	if opts.Platform != "" {
		params.Set("platform", opts.Platform)
	}
	if opts.Language != "" {
		params.Set("language", opts.Language)
	}
	if opts.Country != "" {
		params.Set("country", opts.Country)
	}
	if opts.Page > 1 {
		params.Set("page", strconv.Itoa(opts.Page))
	}

	var resp SearchResponse
	if err := c.get("/api/v1/search?"+params.Encode(), &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) Suggest(query string) (*SuggestResponse, error) {
	var resp SuggestResponse
	if err := c.get("/api/v1/suggest?query="+url.QueryEscape(query), &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) Trending() (*TrendingResponse, error) {
	var resp TrendingResponse
	if err := c.get("/api/v1/recommendations", &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) Title(mediaType string, id int64, region string) (*Title, error) {
	path := fmt.Sprintf("/api/v1/titles/%s/%d", url.PathEscape(mediaType), id)
	if region != "" {
		path += "?region=" + url.QueryEscape(region)
	}
	var resp Title
	if err := c.get(path, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) Settings() (*SettingsResponse, error) {
	var resp SettingsResponse
	if err := c.get("/api/v1/settings", &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Login exchanges credentials for a bearer token.
func (c *Client) Login(username, password string) (*TokenResponse, error) {
	form := url.Values{}
	form.Set("username", username)
	form.Set("password", password)

	var resp TokenResponse
	err := c.do(http.MethodPost, "/api/v1/admin/token",
		bytes.NewBufferString(form.Encode()), "application/x-www-form-urlencoded", &resp)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) UpdateSettings(search, card map[string]bool) (*MessageResponse, error) {
	var resp MessageResponse
	body := map[string]map[string]bool{"search_fields": search, "card_fields": card}
	if err := c.sendJSON(http.MethodPut, "/api/v1/admin/settings", body, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) ClearCache() (*ClearCacheResponse, error) {
	var resp ClearCacheResponse
	if err := c.do(http.MethodPost, "/api/v1/admin/clear_cache", nil, "", &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) Register(username, password string) (*MessageResponse, error) {
	var resp MessageResponse
	body := map[string]string{"username": username, "password": password}
	if err := c.sendJSON(http.MethodPost, "/api/v1/admin/register", body, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// isUnauthorized reports whether err is a 401 from the server.
func isUnauthorized(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Status == http.StatusUnauthorized
}
