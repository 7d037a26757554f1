package match

import "fmt"

// MinSimilarity is the lowest score Closest accepts as a suggestion.
const MinSimilarity = 0.6

// Closest returns the candidate most similar to name. Ties keep the earlier
// candidate. It reports false when no candidate reaches MinSimilarity.
func Closest(name string, candidates []string) (string, bool) {
	best, bestScore := "", 0.0

	for _, c := range candidates {
		if score := Similarity(name, c); score > bestScore {
			best, bestScore = c, score
		}
	}

	if bestScore < MinSimilarity {
		return "", false
	}

	return best, true
}

// Hint renders a " (did you mean X?)" suffix for error messages, or an empty
// string when nothing is close enough.
func Hint(name string, candidates []string) string {
	c, ok := Closest(name, candidates)
	if !ok {
		return ""
	}

	return fmt.Sprintf(" (did you mean %q?)", c)
}
