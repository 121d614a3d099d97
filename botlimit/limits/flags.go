package limits

import (
	"fmt"
	"os"

	"github.com/spf13/pflag"

	"github.com/go-harden/botlimit/botlimit/config"
)

// Parse handles the "botlimit limit" command.
func Parse(args []string) error {
	fs := pflag.NewFlagSet("limit", pflag.ContinueOnError)
	fs.SetInterspersed(true)
	var configPath string
	fs.StringVar(&configPath, "config", config.DefaultPath("."), "config file path")

	fs.Usage = func() {
		_, _ = fmt.Fprint(os.Stderr, `Usage: botlimit limit [field] [options]

Show the maximum length of a field, or of every field when none is given.
Lengths count user-perceived characters.

Options:
`)
		fs.PrintDefaults()
		_, _ = fmt.Fprint(os.Stderr, `
Examples:
  botlimit limit
  botlimit limit botName
`)
	}

	if err := fs.Parse(args); err != nil {
		return err
	}

	var field string
	if posArgs := fs.Args(); len(posArgs) > 0 {
		field = posArgs[0]
	}
	return run(os.Stdout, configPath, field)
}
