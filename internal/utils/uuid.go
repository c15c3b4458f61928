package utils

import "github.com/google/uuid"

// UUIDGenerator issues time-ordered ids for users and vault records.
type UUIDGenerator struct {
}

func NewUUIDGenerator() *UUIDGenerator {
	return &UUIDGenerator{}
}

// Generate returns a UUIDv7, falling back to a random UUIDv4 if the clock
// source fails.
func (g *UUIDGenerator) Generate() string {
	v7, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}

	return v7.String()
}

// IsValidUUID reports whether s parses as a UUID. Handlers use it to reject
// malformed ids before they reach storage.
func IsValidUUID(s string) bool {
	_, err := uuid.Parse(s)
	return err == nil
}
