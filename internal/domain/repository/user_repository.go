// Package repository defines the interfaces for the persistence layer.
// These interfaces act as a contract between the domain/application layers and the infrastructure layer.
package repository

import (
	"context"

	"github.com/guesssays/med-platform/internal/domain/entity"
	"github.com/guesssays/med-platform/internal/errors"
)

// Domain-specific errors for user persistence.
var (
	// ErrUserNotFound is returned when a user is not found.
	ErrUserNotFound = errors.New("user not found")
	// ErrUserAlreadyExists is returned when the email is already registered.
	ErrUserAlreadyExists = errors.New("user already exists")
)

// UserRepository defines the standard operations for user persistence.
// The application layer will depend on this interface, not the concrete implementation.
type UserRepository interface {
	// FindByID retrieves a single user by their unique ID.
	FindByID(ctx context.Context, id uint) (*entity.User, error)

	// FindByEmail retrieves a single user by their exact email address.
	FindByEmail(ctx context.Context, email string) (*entity.User, error)

	// Create persists a new user. Returns ErrUserAlreadyExists on a duplicate email.
	Create(ctx context.Context, user *entity.User) error

	// UpdatePasswordHash overwrites the stored password hash.
	UpdatePasswordHash(ctx context.Context, id uint, passwordHash string) error

	// UpdateRole changes the role of an existing user.
	UpdateRole(ctx context.Context, id uint, role entity.Role) error
}
