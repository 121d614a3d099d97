package limit

import (
	"github.com/clipperhouse/uax29/v2/graphemes"
)

// GraphemeLength returns the number of user-perceived characters in s,
// segmented per Unicode UAX #29. Multi code point emoji and combining
// sequences count once.
func GraphemeLength(s string) int {
	if s == "" {
		return 0
	}

	var n int
	iter := graphemes.FromString(s)
	for iter.Next() {
		n++
	}
	return n
}

// TruncateGraphemes returns the prefix of s holding at most n grapheme clusters.
// A cluster is never split. When s already fits, s itself is returned.
func TruncateGraphemes(s string, n int) string {
	if n <= 0 {
		return ""
	}

	var count, end int
	iter := graphemes.FromString(s)
	for iter.Next() {
		if count == n {
			return s[:end]
		}
		end += len(iter.Value())
		count++
	}
	return s
}
