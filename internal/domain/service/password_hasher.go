// Package service defines interfaces for core, stateless domain logic.
// These services encapsulate business rules that don't naturally fit within a single entity.
package service

// MaxPasswordBytes is the bcrypt input limit; longer passwords are truncated before hashing.
const MaxPasswordBytes = 72

// PasswordHasher defines the interface for password hashing and verification.
// This abstracts the underlying hashing algorithm (e.g., bcrypt), keeping the domain pure.
type PasswordHasher interface {
	// Hash generates a salted, self-describing hash from a plaintext password.
	Hash(password string) (string, error)

	// Check compares a plaintext password with a hash. It never panics and
	// returns false for malformed hashes.
	Check(password, hash string) bool

	// ValidatePasswordStrength applies the configured password policy.
	ValidatePasswordStrength(password string) error
}
