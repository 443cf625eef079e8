package service

import (
	"time"

	"github.com/guesssays/med-platform/internal/domain/entity"
	"github.com/guesssays/med-platform/internal/errors"
)

// ErrInvalidToken is returned by Decode for malformed, tampered or expired tokens.
var ErrInvalidToken = errors.New("invalid token")

// TokenClaims is the decoded claim set of any token the codec issued.
type TokenClaims struct {
	Subject   string
	Type      entity.TokenType
	JTI       string
	ExpiresAt time.Time
}

// IssuedToken is a signed token together with its ledger identifiers.
type IssuedToken struct {
	Token     string
	JTI       string
	ExpiresAt time.Time
}

// TokenCodec encodes and decodes signed, expiring tokens.
type TokenCodec interface {
	// IssueAccess creates a short-lived token carrying only sub and exp.
	IssueAccess(subject string) (string, error)

	// IssueRefresh creates a refresh token with a fresh jti.
	IssueRefresh(subject string) (*IssuedToken, error)

	// IssueReset creates a password-reset token with a fresh jti.
	IssueReset(subject string) (*IssuedToken, error)

	// Decode verifies signature and expiry. Every failure is ErrInvalidToken.
	Decode(token string) (*TokenClaims, error)

	// ExtractJTI returns the jti of a valid token, or "" on any failure.
	// Flows that also need the subject call Decode instead.
	ExtractJTI(token string) string
}
