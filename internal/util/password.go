package util

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// bcrypt only consumes the first 72 bytes of input. Passwords longer
// than that are truncated on both the hash and verify paths, so longer
// inputs still round-trip consistently.
const maxPasswordBytes = 72

// HashPassword hashes a plaintext password with bcrypt. The salt is
// generated per call and embedded in the returned digest, so identical
// passwords produce different hashes. A cost outside bcrypt's valid
// range falls back to the library default.
func HashPassword(password string, cost int) (string, error) {
	if password == "" {
		return "", fmt.Errorf("password is empty")
	}
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	hash, err := bcrypt.GenerateFromPassword(truncate(password), cost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

// CheckPassword verifies a plaintext password against a stored bcrypt
// digest. The comparison is constant time, and a malformed digest (for
// example from a corrupted record) reports false rather than an error.
func CheckPassword(password, stored string) bool {
	if password == "" || stored == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(stored), truncate(password)) == nil
}

func truncate(password string) []byte {
	b := []byte(password)
	if len(b) > maxPasswordBytes {
		b = b[:maxPasswordBytes]
	}
	return b
}
