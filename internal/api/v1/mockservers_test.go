package v1

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"testing"

	"github.com/vmunix/bingeworthy/internal/omdb"
	"github.com/vmunix/bingeworthy/internal/tmdb"
)

// TMDBMock provides a configurable fake TMDB v3 API.
type TMDBMock struct {
	t *testing.T

	// Configuration
	Results   []tmdb.Result                   // search/multi and trending page
	Providers map[int64]tmdb.RegionProviders // keyed by title id, served under region US
	Status    int                             // non-zero forces every answer to this status

	// Tracking
	mu       sync.Mutex
	requests []string
}

// NewTMDBMock creates a new fake TMDB server description.
func NewTMDBMock(t *testing.T) *TMDBMock {
	t.Helper()
	return &TMDBMock{t: t, Providers: map[int64]tmdb.RegionProviders{}}
}

// WithResults sets the items of every search and trending page.
func (m *TMDBMock) WithResults(results ...tmdb.Result) *TMDBMock {
	m.Results = results
	return m
}

// WithProviders sets the US availability of one title.
func (m *TMDBMock) WithProviders(id int64, rp tmdb.RegionProviders) *TMDBMock {
	m.Providers[id] = rp
	return m
}

// WithStatus makes every endpoint fail with code.
func (m *TMDBMock) WithStatus(code int) *TMDBMock {
	m.Status = code
	return m
}

// Requests returns the paths requested so far.
func (m *TMDBMock) Requests() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.requests...)
}

// Count returns how many requests hit paths starting with prefix.
func (m *TMDBMock) Count(prefix string) int {
	n := 0
	for _, p := range m.Requests() {
		if strings.HasPrefix(p, prefix) {
			n++
		}
	}
	return n
}

// Build creates the httptest.Server.
func (m *TMDBMock) Build() *httptest.Server {
	m.t.Helper()

	mux := http.NewServeMux()
	page := func(w http.ResponseWriter, _ *http.Request) {
		one, total := 1, len(m.Results)
		writeMockJSON(w, tmdb.Page{Page: &one, TotalPages: &one, TotalResults: &total, Results: m.Results})
	}
	mux.HandleFunc("GET /3/search/multi", page)
	mux.HandleFunc("GET /3/trending/all/week", page)
	mux.HandleFunc("GET /3/{kind}/{id}", func(w http.ResponseWriter, r *http.Request) {
		id, _ := strconv.ParseInt(r.PathValue("id"), 10, 64)
		for _, res := range m.Results {
			if res.ID != id {
				continue
			}
			if r.PathValue("kind") == tmdb.MediaMovie {
				writeMockJSON(w, tmdb.Movie{ID: res.ID, Title: res.Title, Overview: res.Overview,
					ReleaseDate: res.ReleaseDate, PosterPath: res.PosterPath, VoteAverage: res.VoteAverage})
				return
			}
			writeMockJSON(w, tmdb.Show{ID: res.ID, Name: res.Name, Overview: res.Overview,
				FirstAirDate: res.FirstAirDate, PosterPath: res.PosterPath, VoteAverage: res.VoteAverage})
			return
		}
		http.Error(w, `{"status_message":"The resource you requested could not be found."}`, http.StatusNotFound)
	})
	mux.HandleFunc("GET /3/{kind}/{id}/watch/providers", func(w http.ResponseWriter, r *http.Request) {
		id, _ := strconv.ParseInt(r.PathValue("id"), 10, 64)
		wp := tmdb.WatchProviders{ID: id, Results: map[string]tmdb.RegionProviders{}}
		if rp, ok := m.Providers[id]; ok {
			wp.Results["US"] = rp
		}
		writeMockJSON(w, wp)
	})

	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		m.mu.Lock()
		m.requests = append(m.requests, r.URL.Path)
		m.mu.Unlock()

		if r.URL.Query().Get("api_key") == "" {
			http.Error(w, `{"status_message":"Invalid API key"}`, http.StatusUnauthorized)
			return
		}
		if m.Status != 0 {
			w.WriteHeader(m.Status)
			return
		}
		mux.ServeHTTP(w, r)
	}))
}

// OMDBMock provides a fake OMDb API answering title lookups.
type OMDBMock struct {
	t      *testing.T
	Titles map[string]omdb.Title // keyed by lower-cased title
}

// NewOMDBMock creates a new fake OMDb server description.
func NewOMDBMock(t *testing.T) *OMDBMock {
	t.Helper()
	return &OMDBMock{t: t, Titles: map[string]omdb.Title{}}
}

// WithTitle registers a title with IMDb and Rotten Tomatoes ratings.
func (m *OMDBMock) WithTitle(title, year, imdbRating, rtRating string) *OMDBMock {
	m.Titles[strings.ToLower(title)] = omdb.Title{
		Title:    title,
		Year:     year,
		Plot:     "Plot of " + title + ".",
		Response: "True",
		Ratings: []omdb.Rating{
			{Source: omdb.SourceIMDB, Value: imdbRating},
			{Source: omdb.SourceRottenTomatoes, Value: rtRating},
		},
	}
	return m
}

// Build creates the httptest.Server.
func (m *OMDBMock) Build() *httptest.Server {
	m.t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		title, ok := m.Titles[strings.ToLower(r.URL.Query().Get("t"))]
		if !ok {
			writeMockJSON(w, omdb.Title{Response: "False", Error: "Movie not found!"})
			return
		}
		writeMockJSON(w, title)
	}))
}

func writeMockJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}
