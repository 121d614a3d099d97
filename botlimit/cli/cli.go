// Package cli holds helpers shared by the botlimit subcommands.
package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/go-harden/botlimit/botlimit/config"
	"github.com/go-harden/botlimit/botlimit/limit"
	"github.com/go-harden/botlimit/botlimit/suggest"
)

// UnknownSubcommandError builds the error for an unrecognized command.
// group is the parent command ("" for the top level).
func UnknownSubcommandError(group, got string, valid []string) error {
	prefix := "unknown command"
	if group != "" {
		prefix = "unknown " + group + " command"
	}
	msg := fmt.Sprintf("%s %q", prefix, got)
	if s := suggest.Closest(got, valid); s != "" {
		msg += fmt.Sprintf(", did you mean %q?", s)
	}
	return errors.New(msg + " (valid: " + strings.Join(valid, ", ") + ")")
}

// ReadInput returns the command input from file ("-" for stdin) or, when no
// file is given, the remaining positional arguments joined by spaces.
func ReadInput(file string, args []string, stdin io.Reader) (string, error) {
	if file != "" {
		var data []byte
		var err error
		if file == "-" {
			data, err = io.ReadAll(stdin)
		} else {
			data, err = os.ReadFile(file)
		}
		if err != nil {
			return "", fmt.Errorf("reading input: %w", err)
		}
		return string(data), nil
	} else if len(args) > 0 {
		return strings.Join(args, " "), nil
	}
	return "", errors.New("input required: provide string argument or use -f")
}

// LoadService loads the config at path (defaults when missing) and builds a
// limit service over it.
func LoadService(path string) (*limit.Service, *config.Config, error) {
	cfg, err := config.LoadOrDefaultConfig(path)
	if err != nil {
		return nil, nil, err
	}
	return limit.NewService(cfg.GetLimits), cfg, nil
}
