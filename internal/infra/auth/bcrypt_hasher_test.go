package auth

import (
	"strings"
	"testing"

	"github.com/guesssays/med-platform/config"
	domainerrors "github.com/guesssays/med-platform/internal/domain/errors"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newTestHasher(strength config.PasswordStrengthConfig) *bcryptHasher {
	return NewBcryptHasher(&config.Config{
		Auth:             &config.AuthConfig{BcryptCost: bcrypt.MinCost},
		PasswordStrength: &strength,
	}).(*bcryptHasher)
}

func TestBcryptHasher_Hash(t *testing.T) {
	hasher := newTestHasher(config.PasswordStrengthConfig{})

	password := "StrongPass123!"
	hash, err := hasher.Hash(password)
	require.NoError(t, err)
	assert.NotEmpty(t, hash)
	assert.NotEqual(t, password, hash)
	assert.True(t, strings.HasPrefix(hash, "$2a$"), "hash embeds algorithm and cost")

	cost, err := bcrypt.Cost([]byte(hash))
	require.NoError(t, err)
	assert.Equal(t, bcrypt.MinCost, cost)

	other, err := hasher.Hash(password)
	require.NoError(t, err)
	assert.NotEqual(t, hash, other, "salts differ per hash")
}

func TestBcryptHasher_DefaultCost(t *testing.T) {
	hasher := NewBcryptHasher(&config.Config{}).(*bcryptHasher)
	assert.Equal(t, bcrypt.DefaultCost, hasher.cost)
}

func TestBcryptHasher_Check(t *testing.T) {
	hasher := newTestHasher(config.PasswordStrengthConfig{})
	password := "StrongPass123!"

	hash, err := hasher.Hash(password)
	require.NoError(t, err)

	assert.True(t, hasher.Check(password, hash))
	assert.False(t, hasher.Check("WrongPassword123!", hash))
	assert.False(t, hasher.Check("", hash))
	assert.False(t, hasher.Check(password, "invalid_hash"))
	assert.False(t, hasher.Check(password, ""))
}

func TestBcryptHasher_LongPasswordsAreTruncated(t *testing.T) {
	hasher := newTestHasher(config.PasswordStrengthConfig{})
	long := strings.Repeat("a", 100)

	hash, err := hasher.Hash(long)
	require.NoError(t, err, "passwords beyond 72 bytes must not fail")

	assert.True(t, hasher.Check(long, hash))
	assert.True(t, hasher.Check(strings.Repeat("a", 72)+"different-tail", hash))
	assert.False(t, hasher.Check(strings.Repeat("a", 71), hash))
}

func TestBcryptHasher_ValidatePasswordStrength(t *testing.T) {
	hasher := newTestHasher(config.PasswordStrengthConfig{
		MinLength:        8,
		MaxLength:        72,
		RequireUppercase: true,
		RequireLowercase: true,
		RequireNumbers:   true,
		RequireSpecial:   true,
	})

	validPasswords := []string{
		"StrongPass123!",
		"MySecure@Pass1",
		"Complex#Secret9",
		"Valid$Phrase2024",
	}
	for _, password := range validPasswords {
		assert.NoError(t, hasher.ValidatePasswordStrength(password), "Expected no error for valid password: %s", password)
	}

	weakPasswords := []string{
		"Ab1!",                     // Too short
		"PASSWORD123!",             // No lowercase
		"password123!",             // No uppercase
		"PasswordABC!",             // No numbers
		"Password123",              // No special characters
		strings.Repeat("Aa1!", 19), // Too long
	}
	for _, password := range weakPasswords {
		err := hasher.ValidatePasswordStrength(password)
		require.Error(t, err, "Expected error for weak password: %s", password)
		assert.True(t, errors.Is(err, domainerrors.ErrPasswordStrength))
	}
}

func TestBcryptHasher_ValidatePasswordStrengthDetails(t *testing.T) {
	hasher := newTestHasher(config.PasswordStrengthConfig{MinLength: 8, RequireNumbers: true})

	err := hasher.ValidatePasswordStrength("short")
	require.Error(t, err)

	var appErr *domainerrors.BaseError
	require.True(t, errors.As(err, &appErr))
	assert.Contains(t, appErr.Details(), "at least 8 characters")
	assert.Contains(t, appErr.Details(), "a digit")
}
