package suggest

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClosest(t *testing.T) {
	t.Parallel()

	candidates := []string{"init", "limit", "measure", "slice"}
	tests := []struct {
		name string
		got  string
		want string
	}{
		{"exact", "slice", "slice"},
		{"one_typo", "slcie", "slice"},
		{"case_insensitive", "MEASURE", "measure"},
		{"too_far", "onboarding", ""},
		{"empty", "", ""},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Closest(tc.got, candidates))
		})
	}
}
