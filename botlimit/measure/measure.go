package measure

import (
	"fmt"
	"io"

	"github.com/go-harden/botlimit/botlimit/cli"
	"github.com/go-harden/botlimit/botlimit/cliutil"
	"github.com/go-harden/botlimit/botlimit/limit"
)

func run(w io.Writer, input, field, configPath string) error {
	c := limit.Measure(input)
	_, _ = fmt.Fprintf(w, "characters: %d\n", c.Graphemes)
	_, _ = fmt.Fprintf(w, "runes:      %d\n", c.Runes)
	_, _ = fmt.Fprintf(w, "bytes:      %d\n", c.Bytes)
	_, _ = fmt.Fprintf(w, "width:      %d\n", c.Width)

	if field == "" {
		return nil
	}

	f, err := limit.ParseField(field)
	if err != nil {
		return err
	}
	svc, _, err := cli.LoadService(configPath)
	if err != nil {
		return err
	}

	if max, ok := svc.Limit(f); ok {
		_, _ = fmt.Fprintf(w, "%s: %s\n", f, cliutil.FormatRemaining(c.Graphemes, max))
	} else {
		_, _ = fmt.Fprintf(w, "%s: unlimited\n", f)
	}
	return nil
}
