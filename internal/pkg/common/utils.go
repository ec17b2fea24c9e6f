package common

import (
	"github.com/google/uuid"
)

// GenerateUUID returns a new request identifier.
func GenerateUUID() string {
	return uuid.New().String()
}
