package random

import "github.com/google/uuid"

// GenerateUUID returns a random (v4) UUID string for jobs and snapshots.
func GenerateUUID() string {
	return uuid.NewString()
}
