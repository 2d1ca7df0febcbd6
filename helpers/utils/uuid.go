package utils

import "github.com/google/uuid"

// GenerateUUID returns a random v4 UUID for job identifiers.
func GenerateUUID() string {
	return uuid.NewString()
}
