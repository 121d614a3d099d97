package service

import (
	"fmt"
	"os"

	"github.com/spf13/pflag"
)

// DaemonFlags configures service mode.
type DaemonFlags struct {
	WorkDir    string
	ConfigPath string
	ListenAddr string
	Stdio      bool
	LogLevel   string
}

// ParseDaemonFlags parses the arguments following --service. BOTLIMIT_CONFIG
// and BOTLIMIT_LISTEN provide defaults for --config and --listen.
func ParseDaemonFlags(args []string) (DaemonFlags, error) {
	fs := pflag.NewFlagSet("service", pflag.ContinueOnError)
	var flags DaemonFlags

	fs.StringVar(&flags.WorkDir, "workdir", ".", "working directory holding .botlimit/")
	fs.StringVar(&flags.ConfigPath, "config", os.Getenv("BOTLIMIT_CONFIG"), "config file path (default: <workdir>/.botlimit/config.json)")
	fs.StringVar(&flags.ListenAddr, "listen", os.Getenv("BOTLIMIT_LISTEN"), "HTTP listen address (default: from config)")
	fs.BoolVar(&flags.Stdio, "stdio", false, "serve MCP over stdin/stdout instead of HTTP")
	fs.StringVar(&flags.LogLevel, "log-level", "info", "log level: debug, info, warn, error")

	fs.Usage = func() {
		_, _ = fmt.Fprint(os.Stderr, `Usage: botlimit --service [options]

Run the MCP service exposing limit_get, text_measure, text_truncate,
onboarding_truncate, history_list and history_clear. Config changes are
applied without a restart.

Options:
`)
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return flags, err
	}
	return flags, nil
}
