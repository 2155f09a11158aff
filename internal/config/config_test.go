package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfig_AllSections(t *testing.T) {
	t.Setenv("TEST_TMDB_KEY", "tmdb-key")
	cfgPath := writeConfig(t, `
[server]
host = "127.0.0.1"
port = 9000
log_level = "debug"
log_format = "json"

[database]
path = "/var/lib/bingeworthy/db.sqlite"

[tmdb]
api_key = "${TEST_TMDB_KEY}"
base_url = "http://tmdb.local"
region = "GB"
language = "en-GB"

[omdb]
api_key = "omdb-key"
base_url = "http://omdb.local"

[textgen]
api_token = "hf-token"
model = "distilgpt2"

[auth]
secret_key = "abc"
default_admin_user = "root"
default_admin_password = "toor"

[enrich]
workers = 8

[cors]
allowed_origins = ["https://bingeworthy.example", "http://localhost:3000"]
`)

	cfg, err := Load(cfgPath)
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1:9000", cfg.Addr())
	assert.Equal(t, "debug", cfg.Server.LogLevel)
	assert.Equal(t, "json", cfg.Server.LogFormat)
	assert.Equal(t, "/var/lib/bingeworthy/db.sqlite", cfg.Database.Path)
	assert.Equal(t, TMDBConfig{APIKey: "tmdb-key", BaseURL: "http://tmdb.local", Region: "GB", Language: "en-GB"}, cfg.TMDB)
	assert.Equal(t, OMDBConfig{APIKey: "omdb-key", BaseURL: "http://omdb.local"}, cfg.OMDB)
	assert.Equal(t, "hf-token", cfg.TextGen.APIToken)
	assert.Equal(t, "distilgpt2", cfg.TextGen.Model)
	assert.Equal(t, "root", cfg.Auth.DefaultAdminUser)
	assert.Equal(t, "toor", cfg.Auth.DefaultAdminPassword)
	assert.Equal(t, 8, cfg.Enrich.Workers)
	assert.Equal(t, []string{"https://bingeworthy.example", "http://localhost:3000"}, cfg.CORS.AllowedOrigins)
}

func TestConfig_OptionalCredentialsStayEmpty(t *testing.T) {
	cfgPath := writeConfig(t, `
[tmdb]
api_key = "${BINGEWORTHY_UNSET_TMDB_KEY:-}"

[auth]
secret_key = "abc"
`)

	cfg, err := Load(cfgPath)
	require.NoError(t, err)
	assert.Empty(t, cfg.TMDB.APIKey)
	assert.Empty(t, cfg.OMDB.APIKey)
	assert.Empty(t, cfg.TextGen.APIToken)
}
