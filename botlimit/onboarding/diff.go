package onboarding

import (
	"fmt"
	"io"
	"strings"

	"github.com/clipperhouse/uax29/v2/graphemes"
	"github.com/pmezard/go-difflib/difflib"

	"github.com/go-harden/botlimit/botlimit/cliutil"
	"github.com/go-harden/botlimit/botlimit/limit"
)

// printDiff lists each field changed by truncation with the removed part highlighted.
func printDiff(w io.Writer, before, after limit.OnboardingContent) {
	var changed, unchanged int
	printField := func(path, a, b string) {
		if a == b {
			unchanged++
			return
		}
		changed++
		hlA, hlB := inlineHighlight(a, b)
		_, _ = fmt.Fprintf(w, "%s %s %s\n", cliutil.Warning("~"), cliutil.Bold(path),
			cliutil.Muted(fmt.Sprintf("(%d → %d characters)", limit.GraphemeLength(a), limit.GraphemeLength(b))))
		_, _ = fmt.Fprintf(w, "  %s %s\n", cliutil.Error("-"), hlA)
		_, _ = fmt.Fprintf(w, "  %s %s\n", cliutil.Success("+"), hlB)
	}

	printField("prologue", before.Prologue, after.Prologue)
	for i, q := range after.SuggestedQuestions {
		printField(fmt.Sprintf("suggested_questions[%d] (%s)", i, q.ID), before.SuggestedQuestions[i].Content, q.Content)
	}

	if changed == 0 {
		_, _ = fmt.Fprintln(w, "Content is within limits, nothing to truncate.")
	} else if unchanged > 0 {
		_, _ = fmt.Fprintln(w, cliutil.Muted(fmt.Sprintf("(%d unchanged)", unchanged)))
	}
}

// splitGraphemes splits a string into per-character slices for SequenceMatcher.
func splitGraphemes(s string) []string {
	var out []string
	iter := graphemes.FromString(s)
	for iter.Next() {
		out = append(out, iter.Value())
	}
	return out
}

// inlineHighlight computes a character-level diff between a and b, returning
// strings with changed segments wrapped in BoldRed (removals) and BoldGreen (additions).
func inlineHighlight(a, b string) (string, string) {
	seqA := splitGraphemes(a)
	seqB := splitGraphemes(b)

	m := difflib.NewMatcher(seqA, seqB)
	var outA, outB strings.Builder
	for _, op := range m.GetOpCodes() {
		chunkA := strings.Join(seqA[op.I1:op.I2], "")
		chunkB := strings.Join(seqB[op.J1:op.J2], "")

		switch op.Tag {
		case 'e': // equal
			outA.WriteString(chunkA)
			outB.WriteString(chunkB)
		case 'r': // replace
			outA.WriteString(cliutil.BoldRed(chunkA))
			outB.WriteString(cliutil.BoldGreen(chunkB))
		case 'd': // delete (only in A)
			outA.WriteString(cliutil.BoldRed(chunkA))
		case 'i': // insert (only in B)
			outB.WriteString(cliutil.BoldGreen(chunkB))
		}
	}
	return outA.String(), outB.String()
}
