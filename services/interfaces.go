package services

// PasswordHasher abstracts one-way credential hashing. Implementations
// must salt every hash; see internal/auth for the bcrypt implementation.
type PasswordHasher interface {
	// Hash derives an opaque digest of password.
	Hash(password string) (string, error)

	// Verify compares a stored digest with a plaintext candidate and
	// returns nil only on match.
	Verify(hashedPassword, password string) error
}
