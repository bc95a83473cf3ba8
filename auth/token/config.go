package token

import (
	"errors"
	"time"

	gojwt "github.com/golang-jwt/jwt/v5"
)

// SigningMethod defines supported HMAC signing algorithms. Tokens are issued
// and verified with a single process-wide secret, so asymmetric methods are
// not offered here.
type SigningMethod string

const (
	HS256 SigningMethod = "HS256"
	HS384 SigningMethod = "HS384"
	HS512 SigningMethod = "HS512"
)

// Config configures the token service. The secret has no default and must be
// provided at process start; Validate fails without it so a misconfigured
// deployment dies at startup rather than at the first login.
type Config struct {
	// Secret is the HMAC signing key (required).
	Secret string `mapstructure:"secret"`

	// Method is the signing algorithm (default: HS256).
	Method SigningMethod `mapstructure:"method"`

	// Issuer is the "iss" claim, required on issued and verified tokens.
	Issuer string `mapstructure:"issuer"`

	// Audience is the "aud" claim, required on issued and verified tokens.
	Audience string `mapstructure:"audience"`

	// TTL is the lifetime of issued tokens (default: 1h). Callers cannot
	// set the expiry directly; it is always issuance time plus TTL.
	TTL time.Duration `mapstructure:"ttl"`

	// Leeway is the clock-skew tolerance applied during verification
	// (default: none).
	Leeway time.Duration `mapstructure:"leeway"`
}

// ApplyDefaults fills in zero-value fields with sensible defaults.
func (c *Config) ApplyDefaults() {
	if c.Method == "" {
		c.Method = HS256
	}
	if c.TTL == 0 {
		c.TTL = time.Hour
	}
	if c.Issuer == "" {
		c.Issuer = "app-api"
	}
	if c.Audience == "" {
		c.Audience = "app-users"
	}
}

// Validate checks required fields.
func (c *Config) Validate() error {
	if c.Secret == "" {
		return errors.New("token: signing secret is required")
	}
	switch c.Method {
	case HS256, HS384, HS512:
	default:
		return errors.New("token: unsupported signing method: " + string(c.Method))
	}
	if c.TTL <= 0 {
		return errors.New("token: ttl must be positive")
	}
	if c.Leeway < 0 {
		return errors.New("token: leeway must not be negative")
	}
	return nil
}

// signingMethod returns the golang-jwt SigningMethod instance.
func (c *Config) signingMethod() gojwt.SigningMethod {
	switch c.Method {
	case HS384:
		return gojwt.SigningMethodHS384
	case HS512:
		return gojwt.SigningMethodHS512
	default:
		return gojwt.SigningMethodHS256
	}
}
