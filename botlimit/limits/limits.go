package limits

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/go-harden/botlimit/botlimit/cli"
	"github.com/go-harden/botlimit/botlimit/limit"
)

func run(w io.Writer, configPath, field string) error {
	svc, _, err := cli.LoadService(configPath)
	if err != nil {
		return err
	}

	if field != "" {
		f, err := limit.ParseField(field)
		if err != nil {
			return err
		}
		_, _ = fmt.Fprintln(w, formatLimit(svc, f))
		return nil
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(tw, "FIELD\tLIMIT")
	for _, f := range limit.Fields() {
		_, _ = fmt.Fprintf(tw, "%s\t%s\n", f, formatLimit(svc, f))
	}
	return tw.Flush()
}

func formatLimit(svc *limit.Service, f limit.Field) string {
	if max, ok := svc.Limit(f); ok {
		return fmt.Sprint(max)
	}
	return "unlimited"
}
