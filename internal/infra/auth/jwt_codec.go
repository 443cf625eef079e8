package auth

import (
	"time"

	"github.com/guesssays/med-platform/config"
	"github.com/guesssays/med-platform/internal/domain/entity"
	"github.com/guesssays/med-platform/internal/domain/service"
	"github.com/guesssays/med-platform/internal/errors"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// jwtClaims is the wire claim set. Access tokens leave Type and ID empty so that
// only sub and exp are serialized.
type jwtClaims struct {
	Type string `json:"type,omitempty"`
	jwt.RegisteredClaims
}

// jwtCodec is a concrete implementation of the TokenCodec interface using the JWT standard.
type jwtCodec struct {
	secret     []byte
	method     jwt.SigningMethod
	accessTTL  time.Duration
	refreshTTL time.Duration
	resetTTL   time.Duration
	now        func() time.Time
}

// NewJWTCodec is the constructor for jwtCodec.
// All tokens share one symmetric secret and the configured HMAC algorithm.
func NewJWTCodec(cfg *config.Config) (service.TokenCodec, error) {
	if cfg.Auth == nil {
		return nil, errors.New("auth config must be provided")
	}

	return newJWTCodec(cfg.Auth.JWT, time.Now)
}

func newJWTCodec(cfg config.JWTConfig, now func() time.Time) (*jwtCodec, error) {
	if cfg.Secret == "" {
		return nil, errors.New("jwt secret must be provided")
	}

	method := jwt.GetSigningMethod(cfg.Algorithm)
	if _, ok := method.(*jwt.SigningMethodHMAC); !ok {
		return nil, errors.Errorf("unsupported jwt algorithm %q", cfg.Algorithm)
	}

	return &jwtCodec{
		secret:     []byte(cfg.Secret),
		method:     method,
		accessTTL:  cfg.AccessTTL,
		refreshTTL: cfg.RefreshTTL,
		resetTTL:   cfg.ResetTTL,
		now:        now,
	}, nil
}

// IssueAccess creates a short-lived token with only the sub and exp claims.
func (c *jwtCodec) IssueAccess(subject string) (string, error) {
	expiresAt := c.now().Add(c.accessTTL)

	return c.sign(jwtClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	})
}

func (c *jwtCodec) IssueRefresh(subject string) (*service.IssuedToken, error) {
	return c.issueTracked(subject, entity.TokenTypeRefresh, c.refreshTTL)
}

func (c *jwtCodec) IssueReset(subject string) (*service.IssuedToken, error) {
	return c.issueTracked(subject, entity.TokenTypeReset, c.resetTTL)
}

// issueTracked mints a typed token with a fresh jti for the ledger.
func (c *jwtCodec) issueTracked(subject string, tokenType entity.TokenType, ttl time.Duration) (*service.IssuedToken, error) {
	jti := uuid.NewString()
	// NumericDate has second precision; the ledger stores the same instant the token carries.
	expiresAt := c.now().Add(ttl).Truncate(time.Second)

	token, err := c.sign(jwtClaims{
		Type: string(tokenType),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			ID:        jti,
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	})
	if err != nil {
		return nil, err
	}

	return &service.IssuedToken{Token: token, JTI: jti, ExpiresAt: expiresAt}, nil
}

func (c *jwtCodec) sign(claims jwtClaims) (string, error) {
	signed, err := jwt.NewWithClaims(c.method, claims).SignedString(c.secret)
	if err != nil {
		return "", errors.Wrap(err, "failed to sign token")
	}

	return signed, nil
}

// Decode verifies the signature, algorithm and expiry. Library errors never escape.
func (c *jwtCodec) Decode(token string) (*service.TokenClaims, error) {
	claims := &jwtClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims,
		func(*jwt.Token) (any, error) {
			return c.secret, nil
		},
		jwt.WithValidMethods([]string{c.method.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(c.now),
	)
	if err != nil || !parsed.Valid {
		return nil, service.ErrInvalidToken
	}

	decoded := &service.TokenClaims{
		Subject: claims.Subject,
		Type:    entity.TokenType(claims.Type),
		JTI:     claims.ID,
	}
	if claims.ExpiresAt != nil {
		decoded.ExpiresAt = claims.ExpiresAt.Time
	}

	return decoded, nil
}

// ExtractJTI is Decode reduced to the jti, with every failure mapped to "".
func (c *jwtCodec) ExtractJTI(token string) string {
	claims, err := c.Decode(token)
	if err != nil {
		return ""
	}

	return claims.JTI
}
