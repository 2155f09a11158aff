// internal/config/validate_test.go
package config

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func minimalConfig() *Config {
	return &Config{
		Database: DatabaseConfig{Path: ":memory:"},
		Auth:     AuthConfig{SecretKey: "s3cret"},
	}
}

func TestValidate_MinimalValid(t *testing.T) {
	errs := minimalConfig().Validate()
	assert.Empty(t, errs, "expected no errors for minimal valid config")
}

func TestValidate_MissingSecret(t *testing.T) {
	cfg := minimalConfig()
	cfg.Auth.SecretKey = ""
	errs := cfg.Validate()
	assert.True(t, containsError(errs, "auth.secret_key"), "expected secret error, got %v", errs)
}

func TestValidate_InvalidPort(t *testing.T) {
	cfg := minimalConfig()
	cfg.Server.Port = 99999
	errs := cfg.Validate()
	assert.True(t, containsError(errs, "server.port"), "expected port error, got %v", errs)
}

func TestValidate_InvalidLogLevel(t *testing.T) {
	cfg := minimalConfig()
	cfg.Server.LogLevel = "verbose"
	errs := cfg.Validate()
	assert.True(t, containsError(errs, "log_level"), "expected log_level error, got %v", errs)
}

func TestValidate_InvalidLogFormat(t *testing.T) {
	cfg := minimalConfig()
	cfg.Server.LogFormat = "xml"
	errs := cfg.Validate()
	assert.True(t, containsErrorBoth(errs, "log_format", "xml"), "expected log_format error, got %v", errs)
}

func TestValidate_Region(t *testing.T) {
	for _, region := range []string{"usa", "us", "U"} {
		cfg := minimalConfig()
		cfg.TMDB.Region = region
		errs := cfg.Validate()
		assert.True(t, containsError(errs, "tmdb.region"), "expected region error for %q, got %v", region, errs)
	}

	cfg := minimalConfig()
	cfg.TMDB.Region = "GB"
	assert.Empty(t, cfg.Validate())
}

func TestValidate_NegativeValues(t *testing.T) {
	cfg := minimalConfig()
	cfg.Auth.TokenTTL = -time.Minute
	cfg.Cache.PruneInterval = -time.Hour
	cfg.Enrich.Workers = -1
	cfg.Log.MaxBackups = -2

	errs := cfg.Validate()
	assert.True(t, containsError(errs, "auth.token_ttl"), "got %v", errs)
	assert.True(t, containsError(errs, "cache.prune_interval"), "got %v", errs)
	assert.True(t, containsError(errs, "enrich.workers"), "got %v", errs)
	assert.True(t, containsError(errs, "log: rotation"), "got %v", errs)
}

func TestValidate_EmptyCORSOrigin(t *testing.T) {
	cfg := minimalConfig()
	cfg.CORS.AllowedOrigins = []string{"http://localhost:3000", " "}
	errs := cfg.Validate()
	assert.True(t, containsError(errs, "cors.allowed_origins[1]"), "got %v", errs)
}

func TestValidate_MultipleErrors(t *testing.T) {
	cfg := &Config{Server: ServerConfig{Port: -1, LogLevel: "loud"}}
	errs := cfg.Validate()
	assert.GreaterOrEqual(t, len(errs), 4, "expected port, log level, database and secret errors, got %v", errs)
}

func containsError(errs []string, substr string) bool {
	for _, e := range errs {
		if strings.Contains(e, substr) {
			return true
		}
	}
	return false
}

func containsErrorBoth(errs []string, a, b string) bool {
	for _, e := range errs {
		if strings.Contains(e, a) && strings.Contains(e, b) {
			return true
		}
	}
	return false
}
