package formatting

import (
	"regexp"
	"strconv"
)

// Patterns checked in order when recovering a score from prose.
// The first match wins: "8.5/10", "score: 7", "rated 6.5 out of 10".
var scorePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(\d+(?:\.\d+)?)\s*/\s*10`),
	regexp.MustCompile(`(?i)score[^\d]{0,10}(\d+(?:\.\d+)?)`),
	regexp.MustCompile(`(?i)(\d+(?:\.\d+)?)\s+out\s+of\s+10`),
}

// ExtractScore recovers a numeric quality score from unstructured text.
// Returns the first recognizable score clamped to [0, 10], or false when
// no score-like pattern is present.
func ExtractScore(content string) (float64, bool) {
	for _, pattern := range scorePatterns {
		matches := pattern.FindStringSubmatch(content)
		if len(matches) < 2 {
			continue
		}

		score, err := strconv.ParseFloat(matches[1], 64)
		if err != nil {
			continue
		}

		return ClampScore(score), true
	}

	return 0, false
}

// ClampScore bounds a score to the [0, 10] scale.
func ClampScore(score float64) float64 {
	if score < 0 {
		return 0
	}
	if score > 10 {
		return 10
	}
	return score
}
