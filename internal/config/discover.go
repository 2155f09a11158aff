package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// DefaultDatabasePath is used when neither the file nor DATABASE_PATH names one.
const DefaultDatabasePath = "./data/bingeworthy.db"

// EnvConfigPath overrides discovery when set.
const EnvConfigPath = "BINGEWORTHY_CONFIG"

// ErrNotFound means no candidate config file exists.
var ErrNotFound = errors.New("config not found")

// DefaultPath returns $XDG_CONFIG_HOME/bingeworthy/config.toml, where
// `bingeworthy init` writes by default.
func DefaultPath() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "config.toml"
		}
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, "bingeworthy", "config.toml")
}

// DataDirPath returns config.toml beside the database file. Container
// deployments mount one volume for both, so the daemon finds its config
// wherever DATABASE_PATH points.
func DataDirPath() string {
	dbPath := os.Getenv("DATABASE_PATH")
	if dbPath == "" {
		dbPath = DefaultDatabasePath
	}
	return filepath.Join(filepath.Dir(dbPath), "config.toml")
}

// SearchPaths lists the candidates Discover checks, in order, without
// duplicates.
func SearchPaths() []string {
	candidates := []string{
		"config.toml",
		DataDirPath(),
		DefaultPath(),
		"/etc/bingeworthy/config.toml",
	}
	seen := make(map[string]bool, len(candidates))
	paths := candidates[:0]
	for _, p := range candidates {
		p = filepath.Clean(p)
		if seen[p] {
			continue
		}
		seen[p] = true
		paths = append(paths, p)
	}
	return paths
}

// Discover returns the config file to load: $BINGEWORTHY_CONFIG when set
// (it must exist), otherwise the first existing entry of SearchPaths.
func Discover() (string, error) {
	if envPath := os.Getenv(EnvConfigPath); envPath != "" {
		if _, err := os.Stat(envPath); err != nil {
			return "", fmt.Errorf("%s=%s: %w", EnvConfigPath, envPath, err)
		}
		return envPath, nil
	}

	paths := SearchPaths()
	for _, p := range paths {
		if info, err := os.Stat(p); err == nil && !info.IsDir() {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w, checked: %s", ErrNotFound, strings.Join(paths, ", "))
}
