package slice

import (
	"fmt"
	"io"

	"github.com/go-harden/botlimit/botlimit/cliutil"
	"github.com/go-harden/botlimit/botlimit/limit"
)

func run(out, errOut io.Writer, svc *limit.Service, field limit.Field, input string, raw, showCut bool) error {
	result := svc.TruncateByFieldLimit(input, field)

	if raw {
		_, _ = fmt.Fprint(out, result)
	} else {
		_, _ = fmt.Fprintln(out, result)
	}

	if showCut && len(result) < len(input) {
		tail := input[len(result):]
		_, _ = fmt.Fprintf(errOut, "%s %d characters: %s\n",
			cliutil.Warning("cut"), limit.GraphemeLength(tail), cliutil.Muted(tail))
	}
	return nil
}
