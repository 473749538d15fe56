// Package security provides identifier generation and JWT utilities
package security

import (
	"github.com/oklog/ulid/v2"
)

// GenerateULID generates a new ULID string. Used for lead, subscriber, and
// event IDs; lexicographic order matches creation order.
func GenerateULID() string {
	return ulid.Make().String()
}
