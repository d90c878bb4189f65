package utils

import "github.com/google/uuid"

// UUIDGenerator produces identifiers for users and tasks.
// UUIDv7 values sort by creation time, which keeps index inserts local.
type UUIDGenerator struct {
}

func NewUUIDGenerator() *UUIDGenerator {
	return &UUIDGenerator{}
}

func (g *UUIDGenerator) Generate() string {
	v7, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}

	return v7.String()
}
