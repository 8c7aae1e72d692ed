package utils

import (
	"strings"

	"github.com/google/uuid"
)

// NewReferenceCode mints the human-facing booking reference, e.g.
// "BK-9F31C2A4". Uniqueness is backed by the column's unique index;
// eight hex chars of a v4 UUID keep collisions out of practical reach.
func NewReferenceCode() string {
	id := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", ""))
	return "BK-" + id[:8]
}
