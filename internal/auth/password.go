package auth

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"go.pilab.hu/ssoadmin/services"
)

// BcryptPasswordHasher implements services.PasswordHasher with bcrypt.
// Every hash carries its own random salt, so hashing the same password
// twice yields distinct digests while verification stays deterministic.
type BcryptPasswordHasher struct {
	cost int
}

// NewBcryptPasswordHasher creates a hasher with the given cost factor.
// A non-positive cost falls back to bcrypt.DefaultCost.
func NewBcryptPasswordHasher(cost int) *BcryptPasswordHasher {
	if cost <= 0 {
		cost = bcrypt.DefaultCost
	}
	return &BcryptPasswordHasher{cost: cost}
}

// Hash derives a salted bcrypt digest of password.
func (h *BcryptPasswordHasher) Hash(password string) (string, error) {
	digest, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", fmt.Errorf("bcrypt hash generation failed: %w", err)
	}
	return string(digest), nil
}

// Verify compares a stored bcrypt digest with a plaintext candidate.
// Returns nil on match, bcrypt.ErrMismatchedHashAndPassword otherwise.
func (h *BcryptPasswordHasher) Verify(hashedPassword, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password))
}

var _ services.PasswordHasher = (*BcryptPasswordHasher)(nil)
