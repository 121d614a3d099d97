package slice

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/pflag"

	"github.com/go-harden/botlimit/botlimit/cli"
	"github.com/go-harden/botlimit/botlimit/config"
	"github.com/go-harden/botlimit/botlimit/limit"
)

// Parse handles the "botlimit slice" command.
func Parse(args []string) error {
	fs := pflag.NewFlagSet("slice", pflag.ContinueOnError)
	fs.SetInterspersed(true)
	var raw, showCut bool
	var file, configPath string

	fs.StringVarP(&file, "file", "f", "", "read input from file (- for stdin)")
	fs.BoolVar(&raw, "raw", false, "output without trailing newline")
	fs.BoolVar(&showCut, "show-cut", false, "print the removed tail to stderr")
	fs.StringVar(&configPath, "config", config.DefaultPath("."), "config file path")

	fs.Usage = func() {
		_, _ = fmt.Fprint(os.Stderr, `Usage: botlimit slice <field> [options] [string]

Truncate the input to the field's limit. Never splits a user-perceived
character; input within the limit is printed unchanged.

Options:
`)
		fs.PrintDefaults()
		_, _ = fmt.Fprint(os.Stderr, `
Examples:
  botlimit slice botName "A very long bot name indeed"
  botlimit slice onboarding -f prologue.txt --raw
`)
	}

	if err := fs.Parse(args); err != nil {
		return err
	}

	posArgs := fs.Args()
	if len(posArgs) < 1 {
		fs.Usage()
		return errors.New("field required: botlimit slice <field> [string]")
	}
	field, err := limit.ParseField(posArgs[0])
	if err != nil {
		return err
	}

	input, err := cli.ReadInput(file, posArgs[1:], os.Stdin)
	if err != nil {
		return err
	}

	svc, _, err := cli.LoadService(configPath)
	if err != nil {
		return err
	}
	return run(os.Stdout, os.Stderr, svc, field, input, raw, showCut)
}
