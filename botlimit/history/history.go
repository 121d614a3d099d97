package history

import (
	"context"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/go-harden/botlimit/botlimit/cliutil"
	"github.com/go-harden/botlimit/botlimit/limit"
	"github.com/go-harden/botlimit/botlimit/mcpclient"
)

const resultPreviewLen = 40

func run(ctx context.Context, w io.Writer, c *mcpclient.Client, session string, n int) error {
	resp, err := c.HistoryList(ctx, mcpclient.HistoryListOpts{SessionID: session, Limit: n})
	if err != nil {
		return err
	}
	if len(resp.Entries) == 0 {
		_, _ = fmt.Fprintln(w, cliutil.Muted("no truncations recorded"))
		return nil
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(tw, "ID\tTIME\tFIELD\tCUT\tRESULT")
	for _, e := range resp.Entries {
		field := e.Field
		if e.Ref != "" {
			field += " " + e.Ref
		}
		_, _ = fmt.Fprintf(tw, "%s\t%s\t%s\t%d->%d\t%s\n",
			cliutil.ID(e.ID), e.At.Local().Format("15:04:05"), field, e.OriginalLength, e.Limit, oneLine(e.Result))
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	if resp.Total > len(resp.Entries) {
		_, _ = fmt.Fprintln(w, cliutil.Muted(fmt.Sprintf("showing %d of %d", len(resp.Entries), resp.Total)))
	}
	return nil
}

func runClear(ctx context.Context, w io.Writer, c *mcpclient.Client, opts mcpclient.HistoryClearOpts) error {
	resp, err := c.HistoryClear(ctx, opts)
	if err != nil {
		return err
	}
	if opts.ID != "" {
		_, _ = fmt.Fprintf(w, "%s %s\n", cliutil.Success("removed"), cliutil.ID(opts.ID))
		return nil
	}
	_, _ = fmt.Fprintf(w, "%s %d entries\n", cliutil.Success("removed"), resp.Removed)
	return nil
}

// oneLine flattens s for table output and bounds it to resultPreviewLen characters.
func oneLine(s string) string {
	s = strings.Join(strings.Fields(s), " ")
	if limit.GraphemeLength(s) > resultPreviewLen {
		return limit.TruncateGraphemes(s, resultPreviewLen-3) + "..."
	}
	return s
}
