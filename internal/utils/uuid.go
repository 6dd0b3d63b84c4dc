package utils

import (
	"github.com/google/uuid"
)

// NewRunID generates the identifier that tags one benchmark run. It is
// carried into logs and report metadata so separate runs can be told apart.
func NewRunID() string {
	return uuid.New().String()
}

// IsValidRunID checks if a string is a valid run identifier
func IsValidRunID(u string) bool {
	_, err := uuid.Parse(u)
	return err == nil
}
