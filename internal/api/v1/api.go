// Package v1 implements the native REST API.
package v1

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"golang.org/x/time/rate"

	"github.com/vmunix/bingeworthy/internal/metadata"
	"github.com/vmunix/bingeworthy/internal/tmdb"
)

// MinSuggestQueryLen is the shortest query /suggest answers.
const MinSuggestQueryLen = 2

// Config holds API server configuration.
type Config struct {
	Version        string
	AllowedOrigins []string

	// LoginRate and LoginBurst bound token requests per client IP.
	LoginRate  rate.Limit
	LoginBurst int
}

// Server is the v1 API server.
type Server struct {
	deps  ServerDeps
	cfg   Config
	log   *slog.Logger
	login *ipRateLimiter
}

// New creates a new v1 API server.
func New(deps ServerDeps, cfg Config) (*Server, error) {
	if err := deps.Validate(); err != nil {
		return nil, err
	}
	if cfg.LoginRate == 0 {
		cfg.LoginRate = rate.Limit(5.0 / 60) // 5 per minute
	}
	if cfg.LoginBurst == 0 {
		cfg.LoginBurst = 5
	}
	if cfg.Version == "" {
		cfg.Version = "dev"
	}
	log := deps.Logger
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &Server{
		deps:  deps,
		cfg:   cfg,
		log:   log,
		login: newIPRateLimiter(cfg.LoginRate, cfg.LoginBurst),
	}, nil
}

// RegisterRoutes registers API routes on the given mux.
func (s *Server) RegisterRoutes(mux *http.ServeMux) {
	// Discovery
	mux.HandleFunc("GET /api/v1/search", s.search)
	mux.HandleFunc("GET /api/v1/suggest", s.suggest)
	mux.HandleFunc("GET /api/v1/recommendations", s.recommendations)
	mux.HandleFunc("GET /api/v1/titles/{media_type}/{id}", s.getTitle)
	mux.HandleFunc("GET /api/v1/settings", s.getSettings)

	// Admin
	mux.HandleFunc("POST /api/v1/admin/token", s.rateLimited(s.issueToken))
	mux.HandleFunc("GET /api/v1/admin/settings", s.requireAdmin(s.getSettings))
	mux.HandleFunc("PUT /api/v1/admin/settings", s.requireAdmin(s.updateSettings))
	mux.HandleFunc("POST /api/v1/admin/clear_cache", s.requireAdmin(s.clearCache))
	mux.HandleFunc("POST /api/v1/admin/register", s.requireAdmin(s.register))

	// System
	mux.HandleFunc("GET /api/v1/status", s.getStatus)
	if s.deps.Metrics != nil {
		mux.Handle("GET /metrics", s.deps.Metrics.Handler())
	}
}

// Handler returns all routes wrapped in the CORS middleware.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	s.RegisterRoutes(mux)
	return s.cors(mux)
}

// Error response
type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

func writeError(w http.ResponseWriter, code int, errCode, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(errorResponse{Error: message, Code: errCode})
}

func writeJSON(w http.ResponseWriter, code int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(data)
}

// pathID extracts an integer ID from the URL path.
func pathID(r *http.Request, name string) (int64, error) {
	idStr := r.PathValue(name)
	if idStr == "" {
		return 0, fmt.Errorf("missing path parameter: %s", name)
	}
	return strconv.ParseInt(idStr, 10, 64)
}

// queryInt extracts an optional integer from query string.
func queryInt(r *http.Request, name string, defaultVal int) int {
	val := r.URL.Query().Get(name)
	if val == "" {
		return defaultVal
	}
	i, err := strconv.Atoi(val)
	if err != nil {
		return defaultVal
	}
	return i
}

// writeCatalogError maps orchestrator errors to status codes.
func (s *Server) writeCatalogError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, metadata.ErrNotConfigured):
		writeError(w, http.StatusInternalServerError, "NOT_CONFIGURED", err.Error())
	case errors.Is(err, metadata.ErrNotFound):
		writeError(w, http.StatusNotFound, "NOT_FOUND", "Title not found")
	case errors.Is(err, metadata.ErrUpstream):
		writeError(w, http.StatusBadGateway, "UPSTREAM_ERROR", metadata.ErrUpstream.Error())
	default:
		s.log.Error("request failed", "error", err)
		writeError(w, http.StatusInternalServerError, "INTERNAL_ERROR", err.Error())
	}
}

func (s *Server) search(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	query := strings.TrimSpace(q.Get("query"))
	if query == "" {
		writeError(w, http.StatusBadRequest, "INVALID_QUERY", "query is required")
		return
	}

	page, err := s.deps.Catalog.Search(r.Context(), metadata.SearchQuery{
		Query:    query,
		Platform: q.Get("platform"),
		Genre:    q.Get("genre"),
		Language: q.Get("language"),
		Country:  strings.ToUpper(q.Get("country")),
		Page:     max(queryInt(r, "page", 1), 1),
	})
	if err != nil {
		s.writeCatalogError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, page)
}

func (s *Server) suggest(w http.ResponseWriter, r *http.Request) {
	query := strings.TrimSpace(r.URL.Query().Get("query"))
	if len([]rune(query)) < MinSuggestQueryLen {
		writeError(w, http.StatusBadRequest, "INVALID_QUERY",
			fmt.Sprintf("query must be at least %d characters", MinSuggestQueryLen))
		return
	}
	writeJSON(w, http.StatusOK, s.deps.Catalog.Suggest(r.Context(), query))
}

func (s *Server) recommendations(w http.ResponseWriter, r *http.Request) {
	trending, err := s.deps.Catalog.Trending(r.Context())
	if err != nil {
		s.writeCatalogError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, trending)
}

func (s *Server) getTitle(w http.ResponseWriter, r *http.Request) {
	mediaType := r.PathValue("media_type")
	if mediaType != tmdb.MediaMovie && mediaType != tmdb.MediaTV {
		writeError(w, http.StatusBadRequest, "INVALID_MEDIA_TYPE", "media_type must be movie or tv")
		return
	}
	id, err := pathID(r, "id")
	if err != nil || id <= 0 {
		writeError(w, http.StatusBadRequest, "INVALID_ID", "id must be a positive integer")
		return
	}

	rec, err := s.deps.Catalog.Detail(r.Context(), mediaType, id, strings.ToUpper(r.URL.Query().Get("region")))
	if err != nil {
		s.writeCatalogError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

func (s *Server) getSettings(w http.ResponseWriter, r *http.Request) {
	st, err := s.deps.Settings.Get(r.Context())
	if err != nil {
		s.log.Error("load settings failed", "error", err)
		writeError(w, http.StatusInternalServerError, "DB_ERROR", err.Error())
		return
	}
	writeJSON(w, http.StatusOK, st)
}

func (s *Server) getStatus(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, serverStatus{Status: "ok", Version: s.cfg.Version})
}
