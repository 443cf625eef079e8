// Package usecase contains the application-specific business rules.
// It orchestrates the domain layer to perform tasks.
package usecase

import (
	"context"

	"github.com/guesssays/med-platform/internal/domain/entity"
)

// --- Input DTOs ---

// CredentialsInput carries the email/password pair for register and login.
type CredentialsInput struct {
	Email    string
	Password string
	Client   entity.ClientMetadata
}

// RefreshInput carries the refresh token presented for rotation.
type RefreshInput struct {
	RefreshToken string
	Client       entity.ClientMetadata
}

// LogoutInput selects between single-session and all-session logout.
type LogoutInput struct {
	RefreshToken string
	AllSessions  bool
}

// ResetPasswordInput carries a reset token and the replacement password.
type ResetPasswordInput struct {
	ResetToken  string
	NewPassword string
}

// ChangePasswordInput is submitted by an authenticated user.
type ChangePasswordInput struct {
	User            *entity.User
	CurrentPassword string
	NewPassword     string
}

// --- Output DTOs ---

// Logout scopes reported back to the client.
const (
	LogoutScopeNone   = ""
	LogoutScopeSingle = "single"
	LogoutScopeAll    = "all"
)

// LogoutOutput reports which sessions were revoked.
type LogoutOutput struct {
	Revoked string
}

// AuthUsecase defines the credential lifecycle: issuance, rotation and revocation.
type AuthUsecase interface {
	Register(ctx context.Context, input *CredentialsInput) (*entity.TokenPair, error)
	Login(ctx context.Context, input *CredentialsInput) (*entity.TokenPair, error)
	Refresh(ctx context.Context, input *RefreshInput) (*entity.TokenPair, error)
	Logout(ctx context.Context, input *LogoutInput) (*LogoutOutput, error)
	ForgotPassword(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, input *ResetPasswordInput) error
	ChangePassword(ctx context.Context, input *ChangePasswordInput) error
}
