package records

import (
	"strings"

	"github.com/google/uuid"
)

const idLength = 7

// NewID returns a short random lowercase alphanumeric token.
func NewID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:idLength]
}
