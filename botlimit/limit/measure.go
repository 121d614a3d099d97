package limit

import (
	"unicode/utf8"

	"github.com/rivo/uniseg"
)

// Measurement describes the size of a string under each unit of measure.
// Limits apply to Graphemes.
type Measurement struct {
	Graphemes int
	Runes     int
	Bytes     int
	Width     int
}

// Measure computes every count for s.
func Measure(s string) Measurement {
	return Measurement{
		Graphemes: GraphemeLength(s),
		Runes:     utf8.RuneCountInString(s),
		Bytes:     len(s),
		Width:     uniseg.StringWidth(s),
	}
}
