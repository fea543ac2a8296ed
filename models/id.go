package models

import "github.com/google/uuid"

// NewID returns a random identifier for a new entity.
func NewID() string {
	return uuid.NewString()
}

// NewUserID returns the short "U"-prefixed id given to registered accounts.
func NewUserID() string {
	return "U" + uuid.NewString()[:8]
}
