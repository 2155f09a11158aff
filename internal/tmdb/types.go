// Package tmdb provides a client for The Movie Database API.
package tmdb

// Media types reported by search/multi and trending.
const (
	MediaMovie  = "movie"
	MediaTV     = "tv"
	MediaPerson = "person"
)

// ImageBaseURL is the prefix for w500 poster paths.
const ImageBaseURL = "https://image.tmdb.org/t/p/w500"

// Result is one item of a search/multi or trending page. Movies carry Title
// and ReleaseDate; shows carry Name and FirstAirDate.
type Result struct {
	ID           int64    `json:"id"`
	MediaType    string   `json:"media_type,omitempty"`
	Title        string   `json:"title,omitempty"`
	Name         string   `json:"name,omitempty"`
	ReleaseDate  string   `json:"release_date,omitempty"`   // "2024-03-01"
	FirstAirDate string   `json:"first_air_date,omitempty"` // "2008-01-20"
	Overview     string   `json:"overview,omitempty"`
	PosterPath   string   `json:"poster_path,omitempty"` // "/abc123.jpg"
	VoteAverage  *float64 `json:"vote_average,omitempty"`
}

// DisplayTitle returns Title, falling back to Name.
func (r *Result) DisplayTitle() string {
	if r.Title != "" {
		return r.Title
	}
	return r.Name
}

// Year returns the first four characters of the release or first-air date.
func (r *Result) Year() string {
	d := r.ReleaseDate
	if d == "" {
		d = r.FirstAirDate
	}
	if len(d) < 4 {
		return d
	}
	return d[:4]
}

// Kind returns MediaType, inferring movie when a Title is present and tv otherwise.
func (r *Result) Kind() string {
	if r.MediaType != "" {
		return r.MediaType
	}
	if r.Title != "" {
		return MediaMovie
	}
	return MediaTV
}

// PosterURL returns the full w500 poster URL, or "" when there is no poster.
func (r *Result) PosterURL() string {
	if r.PosterPath == "" {
		return ""
	}
	return ImageBaseURL + r.PosterPath
}

// Page is a paginated list of results. The counters are nil when TMDB
// omitted them.
type Page struct {
	Page         *int     `json:"page"`
	TotalPages   *int     `json:"total_pages"`
	TotalResults *int     `json:"total_results"`
	Results      []Result `json:"results"`
}

// Provider is a streaming, rental or purchase offer.
type Provider struct {
	ID       int64  `json:"provider_id"`
	Name     string `json:"provider_name"`
	LogoPath string `json:"logo_path,omitempty"`
}

// RegionProviders lists the offers for one country.
type RegionProviders struct {
	Link     string     `json:"link"`
	Flatrate []Provider `json:"flatrate"`
	Rent     []Provider `json:"rent"`
	Buy      []Provider `json:"buy"`
	Ads      []Provider `json:"ads"`
}

// Names returns provider names across flatrate, rent, buy and ads in that
// order, keeping the first occurrence of each.
func (rp *RegionProviders) Names() []string {
	names := []string{}
	seen := make(map[string]bool)
	for _, group := range [][]Provider{rp.Flatrate, rp.Rent, rp.Buy, rp.Ads} {
		for _, p := range group {
			if p.Name == "" || seen[p.Name] {
				continue
			}
			seen[p.Name] = true
			names = append(names, p.Name)
		}
	}
	return names
}

// WatchProviders maps ISO 3166-1 country codes to offers.
type WatchProviders struct {
	ID      int64                      `json:"id"`
	Results map[string]RegionProviders `json:"results"`
}

// Movie represents TMDB movie metadata.
type Movie struct {
	ID          int64    `json:"id"`
	IMDBID      string   `json:"imdb_id,omitempty"` // e.g., "tt0133093"
	Title       string   `json:"title"`
	Overview    string   `json:"overview"`
	ReleaseDate string   `json:"release_date"`
	PosterPath  string   `json:"poster_path"`
	VoteAverage *float64 `json:"vote_average"`
	Runtime     int      `json:"runtime"` // minutes
	Genres      []Genre  `json:"genres"`
}

// Show represents TMDB TV series metadata.
type Show struct {
	ID           int64    `json:"id"`
	Name         string   `json:"name"`
	Overview     string   `json:"overview"`
	FirstAirDate string   `json:"first_air_date"`
	PosterPath   string   `json:"poster_path"`
	VoteAverage  *float64 `json:"vote_average"`
	Genres       []Genre  `json:"genres"`
}

// Genre represents a movie genre.
type Genre struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// AsResult converts movie detail into the search result shape.
func (m *Movie) AsResult() Result {
	return Result{
		ID:          m.ID,
		MediaType:   MediaMovie,
		Title:       m.Title,
		ReleaseDate: m.ReleaseDate,
		Overview:    m.Overview,
		PosterPath:  m.PosterPath,
		VoteAverage: m.VoteAverage,
	}
}

// AsResult converts show detail into the search result shape.
func (s *Show) AsResult() Result {
	return Result{
		ID:           s.ID,
		MediaType:    MediaTV,
		Name:         s.Name,
		FirstAirDate: s.FirstAirDate,
		Overview:     s.Overview,
		PosterPath:   s.PosterPath,
		VoteAverage:  s.VoteAverage,
	}
}
