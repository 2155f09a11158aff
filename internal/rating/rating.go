// Package rating normalizes heterogeneous rating formats onto a 0-100 scale
// and combines them into a weighted composite score.
package rating

import (
	"math"
	"sort"
	"strconv"
	"strings"
)

// Source names a rating provider.
type Source string

const (
	SourceTMDB           Source = "tmdb" // community vote average, 0-10
	SourceIMDB           Source = "imdb" // "7.4/10"
	SourceRottenTomatoes Source = "rt"   // "95%"
)

// Weights are the fixed contribution of each source to the composite.
var Weights = map[Source]float64{
	SourceTMDB:           0.2,
	SourceIMDB:           0.5,
	SourceRottenTomatoes: 0.3,
}

// Result is a composite score with the per-source values it was built from.
type Result struct {
	// Aggregated is nil when no source supplied a usable value.
	Aggregated *float64 `json:"aggregated"`
	// Breakdown holds only the sources that contributed.
	Breakdown map[Source]float64 `json:"breakdown"`
}

// NormalizePrimary scales a 0-10 score to 0-100.
func NormalizePrimary(score *float64) *float64 {
	if score == nil {
		return nil
	}
	v := *score * 10
	return &v
}

// NormalizeRatio parses the numerator of an "X/10" string and scales it to 0-100.
// Empty or malformed input yields nil.
func NormalizeRatio(text string) *float64 {
	if text == "" {
		return nil
	}
	numerator, _, _ := strings.Cut(text, "/")
	v, err := strconv.ParseFloat(strings.TrimSpace(numerator), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	v *= 10
	return &v
}

// NormalizePercent parses an "NN%" string. Empty or malformed input yields nil.
func NormalizePercent(text string) *float64 {
	if text == "" {
		return nil
	}
	s := strings.TrimSpace(strings.ReplaceAll(text, "%", ""))
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}

// Aggregate combines the TMDB vote average, the IMDb ratio string and the
// Rotten Tomatoes percent string. Missing sources are left out and the
// remaining weights renormalized, so partial coverage does not drag the score
// toward zero.
func Aggregate(tmdbScore *float64, imdb, rottenTomatoes string) Result {
	res := Result{Breakdown: make(map[Source]float64, 3)}

	var weightedSum, totalWeight float64
	add := func(src Source, v *float64) {
		if v == nil {
			return
		}
		weightedSum += *v * Weights[src]
		totalWeight += Weights[src]
		res.Breakdown[src] = *v
	}
	add(SourceTMDB, NormalizePrimary(tmdbScore))
	add(SourceIMDB, NormalizeRatio(imdb))
	add(SourceRottenTomatoes, NormalizePercent(rottenTomatoes))

	if totalWeight > 0 {
		agg := round1(weightedSum / totalWeight)
		res.Aggregated = &agg
	}
	return res
}

// round1 rounds to one decimal place, halves away from zero.
func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

// SortDescending stably orders items by score, highest first. A nil score
// sorts as 0.
func SortDescending[T any](items []T, score func(T) *float64) {
	value := func(t T) float64 {
		if s := score(t); s != nil {
			return *s
		}
		return 0
	}
	sort.SliceStable(items, func(i, j int) bool {
		return value(items[i]) > value(items[j])
	})
}
