package ids

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerate(t *testing.T) {
	t.Parallel()

	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		id := Generate("tr_")
		assert.True(t, strings.HasPrefix(id, "tr_"))
		assert.Len(t, id, len("tr_")+idLength)
		assert.False(t, seen[id])
		seen[id] = true
	}
}
