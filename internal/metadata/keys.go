package metadata

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/vmunix/bingeworthy/pkg/titles"
)

// TrendingKey holds the weekly trending list.
const TrendingKey = "trending_week"

// DetailKey is the store key of an assembled record.
func DetailKey(mediaType string, id int64) string {
	return fmt.Sprintf("movie_detail_%s_%d", mediaType, id)
}

// ProvidersKey is the store key of a title's availability in region.
func ProvidersKey(mediaType string, id int64, region string) string {
	return fmt.Sprintf("providers_%s_%d_%s", mediaType, id, region)
}

// SuggestKey is the store key of the final suggestion list for query.
func SuggestKey(query string) string {
	return "suggest_" + hashHex(titles.NormalizeQuery(query))
}

// LLMSuggestKey is the store key of generated suggestions for query.
func LLMSuggestKey(query string) string {
	return "llm_suggest_" + hashHex(strings.ToLower(query))
}

func hashHex(s string) string {
	sum := sha256.Sum256([]byte(s))
	return hex.EncodeToString(sum[:])
}
