// Package token issues and verifies the signed bearer tokens that assert a
// logged-in identity. Tokens are stateless: everything needed to verify one
// is embedded in the token itself, and nothing is stored server-side. A token
// is only ever invalidated by its expiry.
//
// No other package may construct or inspect token strings; holders treat
// them as opaque.
package token

import (
	"errors"
	"fmt"
	"time"

	gojwt "github.com/golang-jwt/jwt/v5"
)

// Verification failure kinds. The HTTP boundary collapses all of these into
// a single unauthorized response; the distinct kinds exist for logging,
// metrics, and tests.
var (
	// ErrMalformed indicates the token string is not structurally a token.
	ErrMalformed = errors.New("token: malformed")
	// ErrExpired indicates the token was valid but its lifetime has elapsed.
	ErrExpired = errors.New("token: expired")
	// ErrSignatureInvalid indicates the signature does not verify.
	ErrSignatureInvalid = errors.New("token: signature invalid")
	// ErrIssuerMismatch indicates the "iss" claim differs from expectation.
	ErrIssuerMismatch = errors.New("token: issuer mismatch")
	// ErrAudienceMismatch indicates the "aud" claim differs from expectation.
	ErrAudienceMismatch = errors.New("token: audience mismatch")
	// ErrInvalid covers any other verification failure.
	ErrInvalid = errors.New("token: invalid")
)

// Claims is the signed payload of an issued token. Subject carries the
// account id.
type Claims struct {
	Username string `json:"username,omitempty"`
	gojwt.RegisteredClaims
}

// Service issues and verifies tokens over an immutable configuration.
// It is safe for unrestricted concurrent use.
type Service struct {
	cfg Config
}

// NewService creates a token service. The configuration is validated here;
// a missing secret is a startup error.
func NewService(cfg Config) (*Service, error) {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Service{cfg: cfg}, nil
}

// Issue creates a signed token asserting the given subject. Expiry is
// issuance time plus the configured TTL; issuer and audience come from
// configuration.
func (s *Service) Issue(subjectID, username string) (string, error) {
	now := time.Now()
	claims := &Claims{
		Username: username,
		RegisteredClaims: gojwt.RegisteredClaims{
			Subject:   subjectID,
			Issuer:    s.cfg.Issuer,
			Audience:  gojwt.ClaimStrings{s.cfg.Audience},
			IssuedAt:  gojwt.NewNumericDate(now),
			ExpiresAt: gojwt.NewNumericDate(now.Add(s.cfg.TTL)),
		},
	}

	signed, err := gojwt.NewWithClaims(s.cfg.signingMethod(), claims).SignedString([]byte(s.cfg.Secret))
	if err != nil {
		return "", fmt.Errorf("token: sign: %w", err)
	}
	return signed, nil
}

// Verify parses and validates a token string, returning the embedded claims
// unmodified on success. Failures map to the package sentinel errors.
func (s *Service) Verify(tokenString string) (*Claims, error) {
	claims := &Claims{}
	parsed, err := gojwt.ParseWithClaims(tokenString, claims, s.keyFunc,
		gojwt.WithValidMethods([]string{s.cfg.signingMethod().Alg()}),
		gojwt.WithIssuer(s.cfg.Issuer),
		gojwt.WithAudience(s.cfg.Audience),
		gojwt.WithExpirationRequired(),
		gojwt.WithLeeway(s.cfg.Leeway),
	)
	if err != nil {
		return nil, mapVerifyError(err)
	}
	if !parsed.Valid {
		return nil, ErrInvalid
	}
	return claims, nil
}

// keyFunc returns the verification key after the parser has already checked
// the signing method against WithValidMethods.
func (s *Service) keyFunc(_ *gojwt.Token) (interface{}, error) {
	return []byte(s.cfg.Secret), nil
}

// mapVerifyError translates golang-jwt failures into this package's
// sentinels. Order matters: a malformed token should report as malformed
// even though the library may wrap several conditions together.
func mapVerifyError(err error) error {
	switch {
	case errors.Is(err, gojwt.ErrTokenMalformed):
		return fmt.Errorf("%w: %v", ErrMalformed, err)
	case errors.Is(err, gojwt.ErrTokenExpired):
		return fmt.Errorf("%w: %v", ErrExpired, err)
	case errors.Is(err, gojwt.ErrTokenSignatureInvalid), errors.Is(err, gojwt.ErrSignatureInvalid):
		return fmt.Errorf("%w: %v", ErrSignatureInvalid, err)
	case errors.Is(err, gojwt.ErrTokenInvalidIssuer):
		return fmt.Errorf("%w: %v", ErrIssuerMismatch, err)
	case errors.Is(err, gojwt.ErrTokenInvalidAudience):
		return fmt.Errorf("%w: %v", ErrAudienceMismatch, err)
	default:
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
}
