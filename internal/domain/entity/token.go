package entity

import "time"

// TokenType tags refresh and reset tokens. Access tokens carry no type.
type TokenType string

const (
	TokenTypeAccess  TokenType = ""
	TokenTypeRefresh TokenType = "refresh"
	TokenTypeReset   TokenType = "reset"
)

// RefreshToken is one ledger row for an issued refresh credential.
// Rows are never deleted; they are flipped to revoked.
type RefreshToken struct {
	ID        uint
	UserID    uint
	JTI       string
	CreatedAt time.Time
	ExpiresAt time.Time
	Revoked   bool
	UserAgent string
	IP        string
}

// IsActive reports whether the token may still be exchanged at now.
func (t *RefreshToken) IsActive(now time.Time) bool {
	return !t.Revoked && now.Before(t.ExpiresAt)
}

// PasswordResetToken is a single-use reset credential.
type PasswordResetToken struct {
	ID        uint
	UserID    uint
	JTI       string
	CreatedAt time.Time
	ExpiresAt time.Time
	Used      bool
}

// IsUsable reports whether the token can still be consumed at now.
func (t *PasswordResetToken) IsUsable(now time.Time) bool {
	return !t.Used && now.Before(t.ExpiresAt)
}

// ClientMetadata is audit information captured when a refresh token is issued.
type ClientMetadata struct {
	UserAgent string
	IP        string
}

// TokenPair is the credential pair handed to clients on register, login and refresh.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
	TokenType    string
}
