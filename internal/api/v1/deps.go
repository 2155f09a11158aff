package v1

import (
	"context"
	"errors"
	"log/slog"

	"github.com/vmunix/bingeworthy/internal/auth"
	"github.com/vmunix/bingeworthy/internal/metadata"
	"github.com/vmunix/bingeworthy/internal/metrics"
	"github.com/vmunix/bingeworthy/internal/settings"
)

// ErrMissingDependency is returned when a required dependency is nil.
var ErrMissingDependency = errors.New("missing required dependency")

// Catalog answers the public read endpoints.
type Catalog interface {
	Search(ctx context.Context, q metadata.SearchQuery) (*metadata.SearchPage, error)
	Detail(ctx context.Context, mediaType string, id int64, region string) (*metadata.Record, error)
	Suggest(ctx context.Context, query string) metadata.Suggestions
	Trending(ctx context.Context) (*metadata.Trending, error)
}

// Authenticator issues and checks admin tokens.
type Authenticator interface {
	Login(ctx context.Context, username, password string) (string, error)
	VerifyToken(ctx context.Context, token string) (*auth.User, error)
	Register(ctx context.Context, username, password string) (*auth.User, error)
}

// SettingsStore reads and replaces the UI settings.
type SettingsStore interface {
	Get(ctx context.Context) (*settings.Settings, error)
	Update(ctx context.Context, searchFields, cardFields map[string]bool) error
}

// CacheClearer empties the response cache.
type CacheClearer interface {
	Clear(ctx context.Context) (int64, error)
}

// ServerDeps contains all dependencies for the API server.
// Required dependencies must be non-nil; optional dependencies may be nil.
type ServerDeps struct {
	// Required dependencies
	Catalog  Catalog
	Auth     Authenticator
	Settings SettingsStore
	Cache    CacheClearer

	// Optional dependencies
	Metrics *metrics.Metrics // serves /metrics when set
	Logger  *slog.Logger
}

// Validate checks that all required dependencies are provided.
func (d ServerDeps) Validate() error {
	switch {
	case d.Catalog == nil:
		return errors.Join(ErrMissingDependency, errors.New("catalog is required"))
	case d.Auth == nil:
		return errors.Join(ErrMissingDependency, errors.New("auth is required"))
	case d.Settings == nil:
		return errors.Join(ErrMissingDependency, errors.New("settings store is required"))
	case d.Cache == nil:
		return errors.Join(ErrMissingDependency, errors.New("cache is required"))
	}
	return nil
}
