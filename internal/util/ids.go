package util

import (
	gonanoid "github.com/matoous/go-nanoid/v2"
)

// NewPublicID generates a 21-character URL-safe nanoid used as the public
// identifier for boards.
func NewPublicID() (string, error) {
	return gonanoid.New()
}
