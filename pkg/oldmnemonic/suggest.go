package oldmnemonic

import (
	"math"

	"github.com/agnivade/levenshtein"
)

// MaxTypoDistance is the largest edit distance offered as a suggestion.
const MaxTypoDistance = 2

// SuggestWord returns the closest word in wl to input, or "" when nothing is
// within MaxTypoDistance.
func SuggestWord(wl *WordList, input string) string {
	minDist := math.MaxInt
	var suggestion string

	for _, word := range wl.words {
		dist := levenshtein.ComputeDistance(input, word)
		if dist == 0 {
			return word
		}
		if dist < minDist {
			minDist = dist
			suggestion = word
		}
	}

	if minDist <= MaxTypoDistance {
		return suggestion
	}
	return ""
}
