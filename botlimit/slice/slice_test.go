package slice

import (
	"bytes"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-harden/botlimit/botlimit/limit"
)

func TestRun(t *testing.T) {
	color.NoColor = true
	svc := limit.NewService(func() limit.Limits {
		return limit.Limits{BotName: 10}
	})

	tests := []struct {
		name    string
		field   limit.Field
		input   string
		raw     bool
		showCut bool
		wantOut string
		wantErr string
	}{
		{name: "under_limit", field: limit.BotName, input: "hello", wantOut: "hello\n"},
		{name: "over_limit", field: limit.BotName, input: "12345678901234567890", wantOut: "1234567890\n"},
		{name: "emoji_boundary", field: limit.BotName, input: "hello😊world", wantOut: "hello😊worl\n"},
		{name: "raw", field: limit.BotName, input: "12345678901", raw: true, wantOut: "1234567890"},
		{name: "unlimited", field: limit.ProjectName, input: "no limit configured here", wantOut: "no limit configured here\n"},
		{
			name: "show_cut", field: limit.BotName, input: "1234567890😊😊", showCut: true,
			wantOut: "1234567890\n", wantErr: "cut 2 characters: 😊😊\n",
		},
		{name: "show_cut_nothing_cut", field: limit.BotName, input: "short", showCut: true, wantOut: "short\n"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var out, errOut bytes.Buffer
			require.NoError(t, run(&out, &errOut, svc, tc.field, tc.input, tc.raw, tc.showCut))
			assert.Equal(t, tc.wantOut, out.String())
			assert.Equal(t, tc.wantErr, errOut.String())
		})
	}
}
