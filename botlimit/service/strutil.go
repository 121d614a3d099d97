package service

import "github.com/go-harden/botlimit/botlimit/limit"

// preview ensures the returned string is at most maxLen characters, cutting
// on character boundaries and adding a "..." suffix if necessary.
func preview(str string, maxLen int) string {
	if maxLen < 3 || limit.GraphemeLength(str) <= maxLen {
		return str
	}
	return limit.TruncateGraphemes(str, maxLen-3) + "..."
}
