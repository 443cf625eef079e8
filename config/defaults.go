package config

import (
	"net"
	"strings"
	"time"

	"github.com/pkg/errors"
)

const (
	DefaultAccessTTL  = 60 * time.Minute
	DefaultRefreshTTL = 7 * 24 * time.Hour
	DefaultResetTTL   = 30 * time.Minute

	defaultAlgorithm       = "HS256"
	defaultBcryptCost      = 12
	defaultMinPasswordLen  = 8
	defaultMaxPasswordLen  = 72
	defaultRateLimit       = 10
	defaultRateLimitWindow = time.Minute
	defaultRateLimitPrefix = "ratelimit:"
	defaultPubSubProvider  = "log"
	defaultQRCodeSize      = 256
	defaultQRCodeLevel     = "M"
	defaultBucketURL       = "mem://"
	defaultMaxMediaSize    = 10 << 20
	defaultMetricsPath     = "/metrics"
	defaultServiceName     = "med-platform"
	minimumJWTSecretLength = 16
)

// applyDefaults fills optional sections so that downstream constructors never see nil.
func applyDefaults(cfg *Config) {
	if cfg.Env.ServiceName == "" {
		cfg.Env.ServiceName = defaultServiceName
	}

	if cfg.Auth == nil {
		cfg.Auth = &AuthConfig{}
	}
	if cfg.Auth.JWT.Algorithm == "" {
		cfg.Auth.JWT.Algorithm = defaultAlgorithm
	}
	cfg.Auth.JWT.Algorithm = strings.ToUpper(cfg.Auth.JWT.Algorithm)
	if cfg.Auth.JWT.AccessTTL == 0 {
		cfg.Auth.JWT.AccessTTL = DefaultAccessTTL
	}
	if cfg.Auth.JWT.RefreshTTL == 0 {
		cfg.Auth.JWT.RefreshTTL = DefaultRefreshTTL
	}
	if cfg.Auth.JWT.ResetTTL == 0 {
		cfg.Auth.JWT.ResetTTL = DefaultResetTTL
	}
	if cfg.Auth.BcryptCost == 0 {
		cfg.Auth.BcryptCost = defaultBcryptCost
	}

	if cfg.PasswordStrength == nil {
		cfg.PasswordStrength = &PasswordStrengthConfig{}
	}
	if cfg.PasswordStrength.MinLength == 0 {
		cfg.PasswordStrength.MinLength = defaultMinPasswordLen
	}
	if cfg.PasswordStrength.MaxLength == 0 {
		cfg.PasswordStrength.MaxLength = defaultMaxPasswordLen
	}

	if cfg.RateLimit == nil {
		cfg.RateLimit = &RateLimitConfig{}
	}
	if cfg.RateLimit.Limit == 0 {
		cfg.RateLimit.Limit = defaultRateLimit
	}
	if cfg.RateLimit.Window == 0 {
		cfg.RateLimit.Window = defaultRateLimitWindow
	}
	if cfg.RateLimit.KeyPrefix == "" {
		cfg.RateLimit.KeyPrefix = defaultRateLimitPrefix
	}

	if cfg.PubSub == nil {
		cfg.PubSub = &PubSubConfig{}
	}
	if cfg.PubSub.Provider == "" {
		cfg.PubSub.Provider = defaultPubSubProvider
	}

	if cfg.QRCode == nil {
		cfg.QRCode = &QRCodeConfig{}
	}
	if cfg.QRCode.Size == 0 {
		cfg.QRCode.Size = defaultQRCodeSize
	}
	if cfg.QRCode.ErrorCorrectionLevel == "" {
		cfg.QRCode.ErrorCorrectionLevel = defaultQRCodeLevel
	}

	if cfg.Storage == nil {
		cfg.Storage = &StorageConfig{}
	}
	if cfg.Storage.BucketURL == "" {
		cfg.Storage.BucketURL = defaultBucketURL
	}
	if cfg.Storage.MaxMediaSize == 0 {
		cfg.Storage.MaxMediaSize = defaultMaxMediaSize
	}

	if cfg.Metrics == nil {
		cfg.Metrics = &MetricsConfig{}
	}
	if cfg.Metrics.Path == "" {
		cfg.Metrics.Path = defaultMetricsPath
	}
}

// Validate rejects configurations the token codec cannot run with.
func (c *Config) Validate() error {
	if c.Auth == nil {
		return errors.New("auth config is required")
	}

	jwtCfg := c.Auth.JWT
	if len(jwtCfg.Secret) < minimumJWTSecretLength {
		return errors.Errorf("auth.jwt.secret must be at least %d characters", minimumJWTSecretLength)
	}
	if !isSupportedAlgorithm(jwtCfg.Algorithm) {
		return errors.Errorf("auth.jwt.algorithm %q is not supported (want HS256, HS384 or HS512)", jwtCfg.Algorithm)
	}
	if jwtCfg.AccessTTL <= 0 || jwtCfg.RefreshTTL <= 0 || jwtCfg.ResetTTL <= 0 {
		return errors.New("auth.jwt token lifetimes must be positive")
	}

	if c.PasswordStrength.MinLength > c.PasswordStrength.MaxLength {
		return errors.New("passwordStrength.minLength must not exceed maxLength")
	}

	for _, cidr := range c.HTTP.TrustedProxies {
		if _, _, err := net.ParseCIDR(cidr); err != nil {
			return errors.Errorf("http.trustedProxies entry %q is not a CIDR", cidr)
		}
	}

	return nil
}

func isSupportedAlgorithm(alg string) bool {
	switch alg {
	case "HS256", "HS384", "HS512":
		return true
	default:
		return false
	}
}
