package cache

import "time"

// Expiry windows used by readers.
const (
	MovieDetailTTL = 24 * time.Hour
	ProvidersTTL   = 24 * time.Hour
	LLMSuggestTTL  = 24 * time.Hour
	SuggestTTL     = 6 * time.Hour
	TrendingTTL    = time.Hour
	SettingsTTL    = 15 * time.Minute

	// LongestTTL is the largest window any reader uses; rows older than this
	// can never be served and are safe to prune.
	LongestTTL = 24 * time.Hour
)
