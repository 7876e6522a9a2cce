// Package crypto holds the server's password-hashing primitives. Profiles
// store only bcrypt hashes; the plaintext never crosses this package's
// boundary.
package crypto

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// PasswordHasher derives and verifies bcrypt password hashes. The cost is
// fixed at construction so every hash produced by one instance is comparable
// in work factor.
type PasswordHasher struct {
	cost int
}

// NewPasswordHasher returns a hasher at the bcrypt default cost.
func NewPasswordHasher() *PasswordHasher {
	return &PasswordHasher{cost: bcrypt.DefaultCost}
}

// Hash derives a bcrypt hash from a plaintext password. An empty password is
// rejected before any hashing work happens.
func (h *PasswordHasher) Hash(password string) (string, error) {
	if password == "" {
		return "", errors.New("empty password")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", fmt.Errorf("error hashing password: %w", err)
	}

	return string(hash), nil
}

// Verify compares a stored bcrypt hash against a candidate password. It
// returns true only on an exact match; any bcrypt error (including a
// malformed stored hash) counts as a mismatch.
func (h *PasswordHasher) Verify(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
