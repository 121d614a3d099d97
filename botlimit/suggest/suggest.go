// Package suggest finds the closest known name for a mistyped one.
package suggest

import (
	"strings"

	"github.com/agnivade/levenshtein"
)

// maxDistance bounds how far a typo may be from a candidate.
const maxDistance = 2

// Closest returns the candidate closest to got, or "" when none is close enough.
// Comparison ignores case.
func Closest(got string, candidates []string) string {
	best, bestDist := "", maxDistance+1
	lower := strings.ToLower(got)
	for _, c := range candidates {
		d := levenshtein.ComputeDistance(lower, strings.ToLower(c))
		if d < bestDist {
			best, bestDist = c, d
		}
	}
	return best
}
