package utils

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// DefaultPasswordHashCost is used when no explicit bcrypt cost is configured.
const DefaultPasswordHashCost = bcrypt.DefaultCost

// HashPassword returns a salted bcrypt digest of password.
// Every call uses a fresh salt, so hashing the same input twice yields
// different digests that both verify.
//
// cost outside [bcrypt.MinCost, bcrypt.MaxCost] falls back to
// DefaultPasswordHashCost.
func HashPassword(password string, cost int) (string, error) {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = DefaultPasswordHashCost
	}

	digest, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", fmt.Errorf("error hashing password: %w", err)
	}

	return string(digest), nil
}

// CheckPassword reports whether password matches digest.
// Malformed digests never match.
func CheckPassword(password, digest string) bool {
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(password)) == nil
}
