package onboarding

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"

	"github.com/go-harden/botlimit/botlimit/cli"
	"github.com/go-harden/botlimit/botlimit/config"
)

// Parse handles the "botlimit onboarding" command.
func Parse(args []string) error {
	fs := pflag.NewFlagSet("onboarding", pflag.ContinueOnError)
	fs.SetInterspersed(true)
	var file, format, configPath string
	var check, showDiff bool

	fs.StringVarP(&file, "file", "f", "-", "read the document from file (- for stdin)")
	fs.StringVar(&format, "format", "", "input format: json or yaml (default: from file extension, else json)")
	fs.BoolVar(&check, "check", false, "validate only; report fields over their limit")
	fs.BoolVar(&showDiff, "diff", false, "show what truncation removes instead of the result")
	fs.StringVar(&configPath, "config", config.DefaultPath("."), "config file path")

	fs.Usage = func() {
		_, _ = fmt.Fprint(os.Stderr, `Usage: botlimit onboarding [options]

Truncate an onboarding document (prologue and suggested questions) to the
onboarding and onboardingSuggestion limits and print it as JSON.

Document shape:
  {"prologue": "...",
   "suggested_questions": [{"id": "1", "content": "...", "highlight": true}],
   "suggested_questions_show_mode": 0}

Options:
`)
		fs.PrintDefaults()
		_, _ = fmt.Fprint(os.Stderr, `
Examples:
  botlimit onboarding -f onboarding.json
  botlimit onboarding -f onboarding.yaml --check
  botlimit onboarding -f onboarding.json --diff
`)
	}

	if err := fs.Parse(args); err != nil {
		return err
	}

	if check && showDiff {
		return errors.New("--check and --diff cannot be combined")
	}
	m := modeTruncate
	if check {
		m = modeCheck
	} else if showDiff {
		m = modeDiff
	}

	if format == "" {
		format = formatFromPath(file)
	}
	switch format {
	case formatJSON, formatYAML:
	default:
		return cli.UnknownSubcommandError("format", format, []string{formatJSON, formatYAML})
	}

	input, err := cli.ReadInput(file, nil, os.Stdin)
	if err != nil {
		return err
	}
	svc, _, err := cli.LoadService(configPath)
	if err != nil {
		return err
	}
	return run(os.Stdout, svc, []byte(input), format, m)
}

func formatFromPath(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return formatYAML
	}
	return formatJSON
}
