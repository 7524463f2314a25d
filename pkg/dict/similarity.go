package dict

import (
	"github.com/pmezard/go-difflib/difflib"
)

// Ratio returns the orthographic similarity of a and b in [0, 1]: twice the
// number of characters in matching blocks divided by the total length, with
// blocks found by longest-matching-block alignment. Two empty strings are 1.
func Ratio(a, b string) float64 {
	return difflib.NewMatcher(chars(a), chars(b)).Ratio()
}

// BestMatch returns the candidate with the highest Ratio to word. The first
// candidate wins ties. It returns "", 0 for no candidates.
func BestMatch(word string, candidates []string) (string, float64) {
	best, bestRatio := "", -1.0
	for _, c := range candidates {
		if r := Ratio(word, c); r > bestRatio {
			best, bestRatio = c, r
		}
	}
	if bestRatio < 0 {
		return "", 0
	}
	return best, bestRatio
}

func chars(s string) []string {
	out := make([]string, 0, len(s))
	for _, r := range s {
		out = append(out, string(r))
	}
	return out
}
