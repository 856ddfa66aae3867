package utils

import "github.com/google/uuid"

// UUIDGenerator issues identifiers for new records. IDs are UUIDv7 so that
// index order roughly follows insertion order; v4 is the fallback when the
// monotonic source fails.
type UUIDGenerator struct{}

func NewUUIDGenerator() *UUIDGenerator {
	return &UUIDGenerator{}
}

func (g *UUIDGenerator) Generate() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}
