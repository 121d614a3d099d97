package history

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/pflag"

	"github.com/go-harden/botlimit/botlimit/config"
	"github.com/go-harden/botlimit/botlimit/mcpclient"
)

// Parse handles the "botlimit history" command.
func Parse(args []string) error {
	fs := pflag.NewFlagSet("history", pflag.ContinueOnError)
	fs.SetInterspersed(true)
	var url, session, id, configPath string
	var limit int
	var clear bool
	var timeout time.Duration

	fs.StringVar(&url, "url", "", "service MCP endpoint (default: from config listen_addr)")
	fs.StringVar(&session, "session", "", "only entries of this MCP session")
	fs.IntVarP(&limit, "limit", "n", 20, "maximum entries to show (0 for all)")
	fs.BoolVar(&clear, "clear", false, "remove entries instead of listing them")
	fs.StringVar(&id, "id", "", "with --clear, remove only this entry")
	fs.DurationVar(&timeout, "timeout", 10*time.Second, "request timeout")
	fs.StringVar(&configPath, "config", config.DefaultPath("."), "config file path")

	fs.Usage = func() {
		_, _ = fmt.Fprint(os.Stderr, `Usage: botlimit history [options]

Show the truncations recorded by a running botlimit service, newest first.

Options:
`)
		fs.PrintDefaults()
		_, _ = fmt.Fprint(os.Stderr, `
Examples:
  botlimit history
  botlimit history --session 3f2a... -n 5
  botlimit history --clear
  botlimit history --clear --id tr_...
`)
	}

	if err := fs.Parse(args); err != nil {
		return err
	}
	if limit < 0 {
		return errors.New("--limit must not be negative")
	}
	if id != "" && !clear {
		return errors.New("--id requires --clear")
	}

	if url == "" {
		cfg, err := config.LoadOrDefaultConfig(configPath)
		if err != nil {
			return err
		}
		url = "http://" + cfg.GetService().ListenAddr + config.MCPPath
	}

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	c, err := mcpclient.Connect(ctx, url)
	if err != nil {
		return fmt.Errorf("%w (is botlimit --service running?)", err)
	}
	defer func() { _ = c.Close() }()

	if clear {
		return runClear(ctx, os.Stdout, c, mcpclient.HistoryClearOpts{ID: id, SessionID: session})
	}
	return run(ctx, os.Stdout, c, session, limit)
}
