package tmdb

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vmunix/bingeworthy/internal/metrics"
)

func TestClient_SearchMulti(t *testing.T) {
	// Mock TMDB API
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/3/search/multi", r.URL.Path)
		q := r.URL.Query()
		assert.Equal(t, "test-key", q.Get("api_key"))
		assert.Equal(t, "fight club", q.Get("query"))
		assert.Equal(t, "en-US", q.Get("language"))
		assert.Equal(t, "false", q.Get("include_adult"))
		assert.Equal(t, "2", q.Get("page"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"page": 2, "total_pages": 7, "total_results": 130,
			"results": [
				{"id": 550, "media_type": "movie", "title": "Fight Club", "release_date": "1999-10-15",
				 "poster_path": "/pB8.jpg", "overview": "Insomnia.", "vote_average": 8.4},
				{"id": 1396, "media_type": "tv", "name": "Breaking Bad", "first_air_date": "2008-01-20"}
			]}`))
	}))
	defer server.Close()

	client := NewClient("test-key", WithBaseURL(server.URL))

	page, err := client.SearchMulti(context.Background(), "fight club", 2, "")
	require.NoError(t, err)
	require.NotNil(t, page.Page)
	assert.Equal(t, 2, *page.Page)
	assert.Equal(t, 7, *page.TotalPages)
	assert.Equal(t, 130, *page.TotalResults)
	require.Len(t, page.Results, 2)

	movie := page.Results[0]
	assert.Equal(t, "Fight Club", movie.DisplayTitle())
	assert.Equal(t, "1999", movie.Year())
	assert.Equal(t, MediaMovie, movie.Kind())
	assert.Equal(t, "https://image.tmdb.org/t/p/w500/pB8.jpg", movie.PosterURL())
	require.NotNil(t, movie.VoteAverage)
	assert.Equal(t, 8.4, *movie.VoteAverage)

	show := page.Results[1]
	assert.Equal(t, "Breaking Bad", show.DisplayTitle())
	assert.Equal(t, "2008", show.Year())
	assert.Equal(t, MediaTV, show.Kind())
	assert.Empty(t, show.PosterURL())
	assert.Nil(t, show.VoteAverage)
}

func TestClient_SearchMulti_MissingCounters(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"results": []}`))
	}))
	defer server.Close()

	client := NewClient("test-key", WithBaseURL(server.URL))

	page, err := client.SearchMulti(context.Background(), "x", 1, "fr-FR")
	require.NoError(t, err)
	assert.Nil(t, page.Page)
	assert.Nil(t, page.TotalPages)
	assert.Nil(t, page.TotalResults)
	assert.Empty(t, page.Results)
}

func TestClient_SearchMulti_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	client := NewClient("bad-key", WithBaseURL(server.URL))

	page, err := client.SearchMulti(context.Background(), "x", 1, "")
	assert.Nil(t, page)
	var se *StatusError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, http.StatusUnauthorized, se.Code)
}

func TestClient_SearchMulti_BadBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<html>`))
	}))
	defer server.Close()

	client := NewClient("test-key", WithBaseURL(server.URL))

	_, err := client.SearchMulti(context.Background(), "x", 1, "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode response")
}

func TestClient_SearchMulti_ContextDeadline(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	defer server.Close()

	client := NewClient("test-key", WithBaseURL(server.URL))

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := client.SearchMulti(ctx, "x", 1, "")
	require.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestClient_WatchProviders(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/3/tv/1396/watch/providers", r.URL.Path)
		assert.Equal(t, "test-key", r.URL.Query().Get("api_key"))
		_, _ = w.Write([]byte(`{"id": 1396, "results": {"US": {
			"link": "https://www.themoviedb.org/tv/1396/watch?locale=US",
			"flatrate": [{"provider_id": 8, "provider_name": "Netflix"}],
			"rent": [{"provider_id": 2, "provider_name": "Apple TV"}, {"provider_id": 8, "provider_name": "Netflix"}],
			"buy": [{"provider_id": 3, "provider_name": "Google Play Movies"}, {"provider_id": 2, "provider_name": "Apple TV"}]
		}}}`))
	}))
	defer server.Close()

	client := NewClient("test-key", WithBaseURL(server.URL))

	wp, err := client.WatchProviders(context.Background(), MediaTV, 1396)
	require.NoError(t, err)
	us, ok := wp.Results["US"]
	require.True(t, ok)
	assert.Equal(t, "https://www.themoviedb.org/tv/1396/watch?locale=US", us.Link)
	assert.Equal(t, []string{"Netflix", "Apple TV", "Google Play Movies"}, us.Names())
}

func TestClient_WatchProviders_PersonUsesTVPath(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/3/tv/31/watch/providers", r.URL.Path)
		_, _ = w.Write([]byte(`{"id": 31, "results": {}}`))
	}))
	defer server.Close()

	client := NewClient("test-key", WithBaseURL(server.URL))

	wp, err := client.WatchProviders(context.Background(), MediaPerson, 31)
	require.NoError(t, err)
	assert.Empty(t, wp.Results)
}

func TestRegionProviders_Names(t *testing.T) {
	rp := RegionProviders{
		Flatrate: []Provider{{Name: "Hulu"}},
		Rent:     []Provider{{Name: ""}, {Name: "Amazon Video"}},
		Buy:      []Provider{{Name: "Amazon Video"}, {Name: "Vudu"}},
		Ads:      []Provider{{Name: "Tubi"}, {Name: "Hulu"}},
	}
	assert.Equal(t, []string{"Hulu", "Amazon Video", "Vudu", "Tubi"}, rp.Names())

	var empty RegionProviders
	assert.NotNil(t, empty.Names())
	assert.Empty(t, empty.Names())
}

func TestClient_Trending(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/3/trending/all/week", r.URL.Path)
		assert.Equal(t, "1", r.URL.Query().Get("page"))
		resp := Page{Results: []Result{{ID: 1, Title: "Dune: Part Two", ReleaseDate: "2024-02-27"}}}
		_ = json.NewEncoder(w).Encode(resp)
	}))
	defer server.Close()

	client := NewClient("test-key", WithBaseURL(server.URL))

	page, err := client.Trending(context.Background(), "")
	require.NoError(t, err)
	require.Len(t, page.Results, 1)
	assert.Equal(t, "2024", page.Results[0].Year())
}

func TestClient_WithLanguage(t *testing.T) {
	var got []string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = append(got, r.URL.Query().Get("language"))
		_, _ = w.Write([]byte(`{"results": []}`))
	}))
	defer server.Close()

	client := NewClient("test-key", WithBaseURL(server.URL), WithLanguage("de-DE"))

	_, err := client.Trending(context.Background(), "")
	require.NoError(t, err)
	_, err = client.SearchMulti(context.Background(), "dark", 1, "")
	require.NoError(t, err)
	_, err = client.SearchMulti(context.Background(), "dark", 1, "fr-FR")
	require.NoError(t, err)

	assert.Equal(t, []string{"de-DE", "de-DE", "fr-FR"}, got)
}

func TestClient_GetMovie(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/3/movie/550", r.URL.Path)
		assert.Equal(t, "test-key", r.URL.Query().Get("api_key"))

		vote := 8.4
		resp := Movie{
			ID:          550,
			Title:       "Fight Club",
			Overview:    "A ticking-time-bomb insomniac...",
			ReleaseDate: "1999-10-15",
			PosterPath:  "/pB8BM7pdSp6B6Ih7QZ4DrQ3PmJK.jpg",
			VoteAverage: &vote,
			Runtime:     139,
			Genres:      []Genre{{ID: 18, Name: "Drama"}},
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(resp)
	}))
	defer server.Close()

	client := NewClient("test-key", WithBaseURL(server.URL))

	movie, err := client.GetMovie(context.Background(), 550)
	require.NoError(t, err)
	assert.Equal(t, int64(550), movie.ID)
	assert.Equal(t, "Fight Club", movie.Title)
	assert.Equal(t, 139, movie.Runtime)

	r, err := client.Detail(context.Background(), MediaMovie, 550)
	require.NoError(t, err)
	assert.Equal(t, MediaMovie, r.Kind())
	assert.Equal(t, "1999", r.Year())
}

func TestClient_Detail_Show(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/3/tv/1396", r.URL.Path)
		_, _ = w.Write([]byte(`{"id": 1396, "name": "Breaking Bad", "first_air_date": "2008-01-20"}`))
	}))
	defer server.Close()

	client := NewClient("test-key", WithBaseURL(server.URL))

	r, err := client.Detail(context.Background(), MediaTV, 1396)
	require.NoError(t, err)
	assert.Equal(t, "Breaking Bad", r.DisplayTitle())
	assert.Equal(t, MediaTV, r.Kind())
}

func TestClient_GetMovie_NotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"status_code":34,"status_message":"The resource you requested could not be found."}`))
	}))
	defer server.Close()

	client := NewClient("test-key", WithBaseURL(server.URL))

	movie, err := client.GetMovie(context.Background(), 99999999)
	assert.Nil(t, movie)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestClient_IsConfigured(t *testing.T) {
	assert.True(t, NewClient("k").IsConfigured())
	assert.False(t, NewClient("").IsConfigured())

	var nilClient *Client
	assert.False(t, nilClient.IsConfigured())
}

func TestClient_RecordsMetrics(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/3/movie/1" {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		_, _ = w.Write([]byte(`{"results": []}`))
	}))
	defer server.Close()

	m := metrics.New()
	client := NewClient("test-key", WithBaseURL(server.URL), WithMetrics(m))

	_, err := client.SearchMulti(context.Background(), "x", 1, "")
	require.NoError(t, err)
	_, err = client.GetMovie(context.Background(), 1)
	require.Error(t, err)

	count, err := testutil.GatherAndCount(m.Registry(), "bingeworthy_upstream_requests_total")
	require.NoError(t, err)
	assert.Equal(t, 2, count, "one series each for ok and error")
}
