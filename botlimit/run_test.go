package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/go-harden/botlimit/botlimit/config"
)

func TestRun(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		args       []string
		wantCode   int
		wantStdout string
		wantStderr string
	}{
		{"no_args", nil, 1, "", "Usage: botlimit"},
		{"help", []string{"help"}, 0, "Commands:", ""},
		{"help_flag", []string{"--help"}, 0, "onboarding", ""},
		{"version", []string{"version"}, 0, config.VersionString(), ""},
		{"unknown_suggests", []string{"mesure"}, 1, "", `did you mean "measure"?`},
		{"unknown_lists_valid", []string{"zzzzzzzz"}, 1, "", "(valid: init, limit, measure, slice, onboarding, history, version, help)"},
		{"command_error", []string{"limit", "botNam", "--config", "/nonexistent/config.json"}, 1, "", `did you mean "botName"?`},
		{"command_help", []string{"limit", "--help"}, 0, "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var stdout, stderr bytes.Buffer
			code := run(tt.args, &stdout, &stderr)

			assert.Equal(t, tt.wantCode, code)
			assert.Contains(t, stdout.String(), tt.wantStdout)
			assert.Contains(t, stderr.String(), tt.wantStderr)
		})
	}
}
