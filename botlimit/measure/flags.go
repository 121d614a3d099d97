package measure

import (
	"fmt"
	"os"

	"github.com/spf13/pflag"

	"github.com/go-harden/botlimit/botlimit/cli"
	"github.com/go-harden/botlimit/botlimit/config"
)

// Parse handles the "botlimit measure" command.
func Parse(args []string) error {
	fs := pflag.NewFlagSet("measure", pflag.ContinueOnError)
	fs.SetInterspersed(true)
	var file, field, configPath string

	fs.StringVarP(&file, "file", "f", "", "read input from file (- for stdin)")
	fs.StringVar(&field, "field", "", "also report usage against this field's limit")
	fs.StringVar(&configPath, "config", config.DefaultPath("."), "config file path")

	fs.Usage = func() {
		_, _ = fmt.Fprint(os.Stderr, `Usage: botlimit measure [options] [string]

Count user-perceived characters (grapheme clusters), code points, bytes and
terminal display width of the input.

Options:
`)
		fs.PrintDefaults()
		_, _ = fmt.Fprint(os.Stderr, `
Examples:
  botlimit measure "hi😊"
  botlimit measure --field botName "My Bot"
  echo -n "data" | botlimit measure -f -
`)
	}

	if err := fs.Parse(args); err != nil {
		return err
	}

	input, err := cli.ReadInput(file, fs.Args(), os.Stdin)
	if err != nil {
		return err
	}
	return run(os.Stdout, input, field, configPath)
}
