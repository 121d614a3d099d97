package initialize

import (
	"fmt"
	"os"

	"github.com/spf13/pflag"
)

func Parse(args []string) error {
	fs := pflag.NewFlagSet("init", pflag.ContinueOnError)
	var reset, force bool
	fs.BoolVar(&reset, "reset", false, "clear all state and reinitialize")
	fs.BoolVar(&force, "force", false, "overwrite an existing config with defaults")

	fs.Usage = func() {
		fmt.Fprint(os.Stderr, `Usage: botlimit init [options]

Initialize the working directory: writes .botlimit/config.json with the
default field limits and a LIMITS.md guide describing them.

Options:
`)
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return err
	}

	wd, err := os.Getwd()
	if err != nil {
		return err
	}
	return run(wd, reset, force, os.Stdout)
}
