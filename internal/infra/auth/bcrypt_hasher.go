// Package auth provides concrete implementations for authentication-related domain services.
package auth

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/guesssays/med-platform/config"
	domainerrors "github.com/guesssays/med-platform/internal/domain/errors"
	"github.com/guesssays/med-platform/internal/domain/service"
	"github.com/guesssays/med-platform/internal/errors"

	"golang.org/x/crypto/bcrypt"
)

// bcryptHasher is a concrete implementation of the PasswordHasher interface using bcrypt.
type bcryptHasher struct {
	cost     int
	strength config.PasswordStrengthConfig
}

// NewBcryptHasher is the constructor for bcryptHasher.
// It returns the implementation as a service.PasswordHasher interface.
func NewBcryptHasher(cfg *config.Config) service.PasswordHasher {
	cost := bcrypt.DefaultCost
	if cfg.Auth != nil && cfg.Auth.BcryptCost > 0 {
		cost = cfg.Auth.BcryptCost
	}

	var strength config.PasswordStrengthConfig
	if cfg.PasswordStrength != nil {
		strength = *cfg.PasswordStrength
	}

	return &bcryptHasher{cost: cost, strength: strength}
}

// Hash generates a salted hash from a plaintext password using bcrypt.
// Input beyond MaxPasswordBytes is ignored by bcrypt, so it is cut off here.
func (h *bcryptHasher) Hash(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword(truncatePassword(password), h.cost)
	if err != nil {
		return "", errors.Wrap(err, "failed to hash password")
	}

	return string(hash), nil
}

// Check compares a plaintext password with a bcrypt hash.
func (h *bcryptHasher) Check(password, hash string) bool {
	if hash == "" {
		return false
	}

	// err is nil only if the password and hash match; malformed hashes are errors too.
	return bcrypt.CompareHashAndPassword([]byte(hash), truncatePassword(password)) == nil
}

// ValidatePasswordStrength applies the configured policy and lists every unmet rule.
func (h *bcryptHasher) ValidatePasswordStrength(password string) error {
	var problems []string

	length := utf8.RuneCountInString(password)
	if h.strength.MinLength > 0 && length < h.strength.MinLength {
		problems = append(problems, fmt.Sprintf("at least %d characters", h.strength.MinLength))
	}
	if h.strength.MaxLength > 0 && length > h.strength.MaxLength {
		problems = append(problems, fmt.Sprintf("at most %d characters", h.strength.MaxLength))
	}

	var hasUpper, hasLower, hasDigit, hasSpecial bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsDigit(r):
			hasDigit = true
		case unicode.IsPunct(r) || unicode.IsSymbol(r):
			hasSpecial = true
		}
	}

	if h.strength.RequireUppercase && !hasUpper {
		problems = append(problems, "an upper-case letter")
	}
	if h.strength.RequireLowercase && !hasLower {
		problems = append(problems, "a lower-case letter")
	}
	if h.strength.RequireNumbers && !hasDigit {
		problems = append(problems, "a digit")
	}
	if h.strength.RequireSpecial && !hasSpecial {
		problems = append(problems, "a special character")
	}

	if len(problems) > 0 {
		return domainerrors.ErrPasswordStrength.WithDetails("password must contain " + strings.Join(problems, ", "))
	}

	return nil
}

func truncatePassword(password string) []byte {
	b := []byte(password)
	if len(b) > service.MaxPasswordBytes {
		return b[:service.MaxPasswordBytes]
	}

	return b
}
