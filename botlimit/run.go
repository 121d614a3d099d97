package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/pflag"

	"github.com/go-harden/botlimit/botlimit/cli"
	"github.com/go-harden/botlimit/botlimit/config"
	"github.com/go-harden/botlimit/botlimit/history"
	"github.com/go-harden/botlimit/botlimit/initialize"
	"github.com/go-harden/botlimit/botlimit/limits"
	"github.com/go-harden/botlimit/botlimit/measure"
	"github.com/go-harden/botlimit/botlimit/onboarding"
	"github.com/go-harden/botlimit/botlimit/slice"
)

type command struct {
	name    string
	summary string
	run     func(args []string) error
}

var commands = []command{
	{"init", "create .botlimit/config.json and the limits guide", initialize.Parse},
	{"limit", "show field limits", limits.Parse},
	{"measure", "count the characters of a string", measure.Parse},
	{"slice", "truncate a string to a field limit", slice.Parse},
	{"onboarding", "truncate or check onboarding content", onboarding.Parse},
	{"history", "show truncations recorded by the service", history.Parse},
}

// Run executes a botlimit command and returns the process exit code.
func Run(args []string) int {
	return run(args, os.Stdout, os.Stderr)
}

func run(args []string, stdout, stderr io.Writer) int {
	if len(args) == 0 {
		printUsage(stderr)
		return 1
	}

	name := args[0]
	switch name {
	case "help", "-h", "--help":
		printUsage(stdout)
		return 0
	case "version", "--version":
		_, _ = fmt.Fprintln(stdout, config.VersionString())
		return 0
	}

	for _, c := range commands {
		if c.name != name {
			continue
		}
		err := c.run(args[1:])
		if errors.Is(err, pflag.ErrHelp) {
			return 0
		} else if err != nil {
			_, _ = fmt.Fprintf(stderr, "Error: %v\n", err)
			return 1
		}
		return 0
	}

	_, _ = fmt.Fprintf(stderr, "Error: %v\n", cli.UnknownSubcommandError("", name, commandNames()))
	return 1
}

func commandNames() []string {
	names := make([]string, 0, len(commands)+2)
	for _, c := range commands {
		names = append(names, c.name)
	}
	return append(names, "version", "help")
}

func printUsage(w io.Writer) {
	_, _ = fmt.Fprint(w, "Usage: botlimit <command> [options]\n\nCommands:\n")
	for _, c := range commands {
		_, _ = fmt.Fprintf(w, "  %-12s %s\n", c.name, c.summary)
	}
	_, _ = fmt.Fprintf(w, "  %-12s %s\n", "version", "print the version")
	_, _ = fmt.Fprintf(w, "  %-12s %s\n", "help", "show this help")
	_, _ = fmt.Fprint(w, `
Service mode:
  botlimit --service [--workdir DIR] [--listen ADDR] [--stdio]

Run "botlimit <command> --help" for command options.
`)
}
