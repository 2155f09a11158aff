// Package ai provides text-generation backends used to suggest searches when
// the catalog has nothing to offer.
package ai

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// ErrNotConfigured is returned by providers without credentials.
var ErrNotConfigured = errors.New("text generation not configured")

// Provider is a text-generation backend.
type Provider interface {
	// Generate completes prompt and returns the generated text.
	Generate(ctx context.Context, prompt string) (string, error)
	// IsConfigured reports whether the provider can be called.
	IsConfigured() bool
}

// Parameters tune a generation request.
type Parameters struct {
	MaxNewTokens int     `json:"max_new_tokens"`
	Temperature  float64 `json:"temperature"`
}

// DefaultParameters keep suggestions short.
var DefaultParameters = Parameters{MaxNewTokens: 50, Temperature: 0.7}

// MaxSuggestions caps how many suggestions are kept from generated text.
const MaxSuggestions = 6

// SuggestPrompt builds the prompt asking for search suggestions.
func SuggestPrompt(query string) string {
	return fmt.Sprintf("Give %d short streaming search suggestions for: '%s' (comma separated).", MaxSuggestions, query)
}

// ParseSuggestions turns generated text into at most limit suggestions. The
// echoed prompt is removed and literal "\n" sequences count as separators.
func ParseSuggestions(generated, prompt string, limit int) []string {
	text := strings.TrimSpace(strings.ReplaceAll(generated, prompt, ""))
	text = strings.ReplaceAll(text, `\n`, ",")

	out := []string{}
	for _, part := range strings.Split(text, ",") {
		if len(out) == limit {
			break
		}
		if s := strings.TrimSpace(part); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// Suggest asks p for search suggestions. A nil or unconfigured provider
// returns no suggestions and no error.
func Suggest(ctx context.Context, p Provider, query string) ([]string, error) {
	if p == nil || !p.IsConfigured() {
		return nil, nil
	}
	prompt := SuggestPrompt(query)
	generated, err := p.Generate(ctx, prompt)
	if err != nil {
		return nil, err
	}
	return ParseSuggestions(generated, prompt, MaxSuggestions), nil
}
