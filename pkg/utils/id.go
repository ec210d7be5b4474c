package utils

import (
	"strings"

	"github.com/google/uuid"
)

// NewID returns a fresh UUID string. Dashboard and widget ids were
// timestamp+random in the original client; collisions there were merely
// improbable, here they are ruled out.
func NewID() string {
	return uuid.NewString()
}

// NewSlug returns an opaque 8-character token for public dashboard links.
func NewSlug() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
}
