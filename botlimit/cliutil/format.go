// Package cliutil provides terminal formatting for CLI output.
// Color is disabled automatically when stdout is not a terminal.
package cliutil

import (
	"strconv"

	"github.com/fatih/color"
)

var (
	bold      = color.New(color.Bold).SprintFunc()
	muted     = color.New(color.FgHiBlack).SprintFunc()
	success   = color.New(color.FgGreen).SprintFunc()
	errorC    = color.New(color.FgRed).SprintFunc()
	warning   = color.New(color.FgYellow).SprintFunc()
	id        = color.New(color.FgCyan).SprintFunc()
	boldRed   = color.New(color.Bold, color.FgRed).SprintFunc()
	boldGreen = color.New(color.Bold, color.FgGreen).SprintFunc()
)

func Bold(s string) string      { return bold(s) }
func Muted(s string) string     { return muted(s) }
func Success(s string) string   { return success(s) }
func Error(s string) string     { return errorC(s) }
func Warning(s string) string   { return warning(s) }
func ID(s string) string        { return id(s) }
func BoldRed(s string) string   { return boldRed(s) }
func BoldGreen(s string) string { return boldGreen(s) }

// FormatRemaining renders "used/limit" colored by how close used is to limit.
func FormatRemaining(used, max int) string {
	s := strconv.Itoa(used) + "/" + strconv.Itoa(max)
	switch {
	case used > max:
		return Error(s)
	case used*10 >= max*9:
		return Warning(s)
	default:
		return Success(s)
	}
}
