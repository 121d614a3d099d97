// Package ids generates short identifiers for service records.
package ids

import (
	"strings"

	"github.com/google/uuid"
)

const idLength = 10

// Generate returns a new random identifier with the given prefix.
func Generate(prefix string) string {
	return prefix + strings.ReplaceAll(uuid.NewString(), "-", "")[:idLength]
}
