package titles

import (
	"regexp"

	"github.com/hbollon/go-edlib"
)

// numberRegex extracts sequence numbers from titles (e.g., "2", "3")
var numberRegex = regexp.MustCompile(`\b(\d+)\b`)

// Confidence is how sure a fuzzy match is.
type Confidence int

const (
	ConfidenceNone   Confidence = iota // Score < 0.70
	ConfidenceLow                      // Score >= 0.70
	ConfidenceMedium                   // Score >= 0.85
	ConfidenceHigh                     // Score >= 0.95
)

func (c Confidence) String() string {
	switch c {
	case ConfidenceHigh:
		return "high"
	case ConfidenceMedium:
		return "medium"
	case ConfidenceLow:
		return "low"
	default:
		return "none"
	}
}

// Similarity scores two titles between 0 and 1 using Jaro-Winkler on their
// cleaned forms, adjusted when sequel numbers agree or disagree.
func Similarity(a, b string) float64 {
	ca, cb := Clean(a), Clean(b)
	if ca == cb {
		return 1
	}
	score := float64(edlib.JaroWinklerSimilarity(ca, cb))
	return adjustScoreForNumbers(score, numberRegex.FindAllString(ca, -1), numberRegex.FindAllString(cb, -1))
}

// Match grades how well got matches want.
func Match(want, got string) Confidence {
	score := Similarity(want, got)
	switch {
	case score >= 0.95:
		return ConfidenceHigh
	case score >= 0.85:
		return ConfidenceMedium
	case score >= 0.70:
		return ConfidenceLow
	default:
		return ConfidenceNone
	}
}

// adjustScoreForNumbers rewards matching sequel numbers and penalizes
// mismatched or missing ones.
func adjustScoreForNumbers(score float64, wantNums, gotNums []string) float64 {
	if len(wantNums) == 0 {
		return score
	}
	if len(gotNums) == 0 {
		return score * 0.85
	}

	gotSet := make(map[string]bool, len(gotNums))
	for _, n := range gotNums {
		gotSet[n] = true
	}
	for _, n := range wantNums {
		if gotSet[n] {
			return min(score*1.05, 1.0)
		}
	}
	return score * 0.90
}
