package utils

import (
	"github.com/google/uuid"
)

var newUUIDv7 = uuid.NewV7

// NewDocumentID returns a time-ordered identifier for store documents (registration
// requests, locations, identity uids). Falls back to a random v4 when v7 fails.
func NewDocumentID() string {
	id, err := newUUIDv7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}
