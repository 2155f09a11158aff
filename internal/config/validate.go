// internal/config/validate.go
package config

import (
	"fmt"
	"strings"
)

var validLogLevels = map[string]bool{
	"debug": true, "info": true, "warn": true, "error": true, "": true,
}

var validLogFormats = map[string]bool{
	"text": true, "json": true, "": true,
}

// Validate checks the configuration for errors.
// Returns a slice of error messages (empty if valid).
func (c *Config) Validate() []string {
	var errs []string

	// Server validation
	if c.Server.Port != 0 && (c.Server.Port < 1 || c.Server.Port > 65535) {
		errs = append(errs, fmt.Sprintf("server.port: must be between 1 and 65535, got %d", c.Server.Port))
	}
	if !validLogLevels[c.Server.LogLevel] {
		errs = append(errs, fmt.Sprintf("server.log_level: must be one of debug, info, warn, error; got %q", c.Server.LogLevel))
	}
	if !validLogFormats[c.Server.LogFormat] {
		errs = append(errs, fmt.Sprintf("server.log_format: must be one of text, json; got %q", c.Server.LogFormat))
	}

	if c.Log.MaxSizeMB < 0 || c.Log.MaxBackups < 0 || c.Log.MaxAgeDays < 0 {
		errs = append(errs, "log: rotation limits must not be negative")
	}

	if c.Database.Path == "" {
		errs = append(errs, "database.path: required")
	}

	// Provider regions are ISO 3166-1 alpha-2 codes
	if r := c.TMDB.Region; r != "" && (len(r) != 2 || strings.ToUpper(r) != r) {
		errs = append(errs, fmt.Sprintf("tmdb.region: must be a two-letter uppercase country code, got %q", r))
	}

	// Auth validation
	if c.Auth.SecretKey == "" {
		errs = append(errs, "auth.secret_key: required")
	}
	if c.Auth.TokenTTL < 0 {
		errs = append(errs, fmt.Sprintf("auth.token_ttl: must be positive, got %s", c.Auth.TokenTTL))
	}

	if c.Cache.PruneInterval < 0 {
		errs = append(errs, fmt.Sprintf("cache.prune_interval: must be positive, got %s", c.Cache.PruneInterval))
	}
	if c.Enrich.Workers < 0 {
		errs = append(errs, fmt.Sprintf("enrich.workers: must be positive, got %d", c.Enrich.Workers))
	}

	for i, origin := range c.CORS.AllowedOrigins {
		if strings.TrimSpace(origin) == "" {
			errs = append(errs, fmt.Sprintf("cors.allowed_origins[%d]: must not be empty", i))
		}
	}

	return errs
}
