package token

import (
	"errors"
	"testing"
	"time"

	gojwt "github.com/golang-jwt/jwt/v5"
)

func testConfig() Config {
	return Config{
		Secret:   "test-secret-0123456789",
		Issuer:   "app-api",
		Audience: "app-users",
		TTL:      time.Hour,
	}
}

func newTestService(t *testing.T) *Service {
	t.Helper()
	svc, err := NewService(testConfig())
	if err != nil {
		t.Fatalf("NewService failed: %v", err)
	}
	return svc
}

// sign builds a raw token with full control over the claims, for exercising
// verification failures that Issue can never produce.
func sign(t *testing.T, secret string, claims *Claims) string {
	t.Helper()
	s, err := gojwt.NewWithClaims(gojwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("signing test token: %v", err)
	}
	return s
}

func baseClaims(now time.Time) *Claims {
	return &Claims{
		Username: "alice",
		RegisteredClaims: gojwt.RegisteredClaims{
			Subject:   "account-1",
			Issuer:    "app-api",
			Audience:  gojwt.ClaimStrings{"app-users"},
			IssuedAt:  gojwt.NewNumericDate(now),
			ExpiresAt: gojwt.NewNumericDate(now.Add(time.Hour)),
		},
	}
}

func TestNewServiceRequiresSecret(t *testing.T) {
	cfg := testConfig()
	cfg.Secret = ""
	if _, err := NewService(cfg); err == nil {
		t.Fatal("expected an error for a missing secret")
	}
}

func TestIssueVerifyRoundTrip(t *testing.T) {
	svc := newTestService(t)

	tokenString, err := svc.Issue("account-1", "alice")
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}

	claims, err := svc.Verify(tokenString)
	if err != nil {
		t.Fatalf("Verify failed immediately after issuance: %v", err)
	}
	if claims.Subject != "account-1" {
		t.Errorf("expected subject account-1, got %s", claims.Subject)
	}
	if claims.Username != "alice" {
		t.Errorf("expected username alice, got %s", claims.Username)
	}
	if claims.Issuer != "app-api" {
		t.Errorf("expected issuer app-api, got %s", claims.Issuer)
	}
	if claims.ExpiresAt == nil || claims.IssuedAt == nil {
		t.Fatal("expected both iat and exp to be set")
	}
	if got := claims.ExpiresAt.Sub(claims.IssuedAt.Time); got != time.Hour {
		t.Errorf("expected exp = iat + 1h, got %s", got)
	}
}

func TestVerifyExpired(t *testing.T) {
	svc := newTestService(t)

	claims := baseClaims(time.Now().Add(-2 * time.Hour))
	tokenString := sign(t, testConfig().Secret, claims)

	_, err := svc.Verify(tokenString)
	if !errors.Is(err, ErrExpired) {
		t.Fatalf("expected ErrExpired, got %v", err)
	}
	// Expiry must never surface as a different kind.
	for _, other := range []error{ErrMalformed, ErrSignatureInvalid, ErrIssuerMismatch, ErrAudienceMismatch} {
		if errors.Is(err, other) {
			t.Fatalf("expired token also reported %v", other)
		}
	}
}

func TestVerifyWrongKey(t *testing.T) {
	svc := newTestService(t)

	tokenString := sign(t, "a-completely-different-secret", baseClaims(time.Now()))

	if _, err := svc.Verify(tokenString); !errors.Is(err, ErrSignatureInvalid) {
		t.Fatalf("expected ErrSignatureInvalid, got %v", err)
	}
}

func TestVerifyIssuerMismatch(t *testing.T) {
	svc := newTestService(t)

	claims := baseClaims(time.Now())
	claims.Issuer = "someone-else"
	tokenString := sign(t, testConfig().Secret, claims)

	if _, err := svc.Verify(tokenString); !errors.Is(err, ErrIssuerMismatch) {
		t.Fatalf("expected ErrIssuerMismatch, got %v", err)
	}
}

func TestVerifyAudienceMismatch(t *testing.T) {
	svc := newTestService(t)

	claims := baseClaims(time.Now())
	claims.Audience = gojwt.ClaimStrings{"other-app"}
	tokenString := sign(t, testConfig().Secret, claims)

	if _, err := svc.Verify(tokenString); !errors.Is(err, ErrAudienceMismatch) {
		t.Fatalf("expected ErrAudienceMismatch, got %v", err)
	}
}

func TestVerifyMalformed(t *testing.T) {
	svc := newTestService(t)

	for _, tokenString := range []string{"", "garbage", "a.b", "a.b.c.d"} {
		if _, err := svc.Verify(tokenString); !errors.Is(err, ErrMalformed) {
			t.Fatalf("expected ErrMalformed for %q, got %v", tokenString, err)
		}
	}
}

func TestVerifyRejectsForeignSigningMethod(t *testing.T) {
	svc := newTestService(t)

	raw, err := gojwt.NewWithClaims(gojwt.SigningMethodHS512, baseClaims(time.Now())).
		SignedString([]byte(testConfig().Secret))
	if err != nil {
		t.Fatalf("signing test token: %v", err)
	}

	if _, err := svc.Verify(raw); err == nil {
		t.Fatal("expected a token signed with a different method to be rejected")
	}
}
