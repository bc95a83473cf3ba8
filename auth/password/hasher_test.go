package password

import (
	"errors"
	"strings"
	"testing"
)

// Low bcrypt cost keeps the test suite fast; the work factor does not change
// the verification contract.
func testHashers(t *testing.T) map[string]Hasher {
	t.Helper()
	return map[string]Hasher{
		"bcrypt":   NewBcryptHasher(WithCost(4)),
		"argon2id": NewArgon2Hasher(WithArgon2Time(1), WithArgon2Memory(1024), WithArgon2Threads(1)),
	}
}

func TestHashVerifyRoundTrip(t *testing.T) {
	for name, h := range testHashers(t) {
		t.Run(name, func(t *testing.T) {
			digest, err := h.Hash("correcthorse")
			if err != nil {
				t.Fatalf("Hash failed: %v", err)
			}
			if digest == "correcthorse" {
				t.Fatal("digest must not equal the plaintext")
			}
			if err := h.Verify("correcthorse", digest); err != nil {
				t.Fatalf("Verify failed for the original secret: %v", err)
			}
		})
	}
}

func TestVerifyRejectsWrongSecret(t *testing.T) {
	for name, h := range testHashers(t) {
		t.Run(name, func(t *testing.T) {
			digest, err := h.Hash("correcthorse")
			if err != nil {
				t.Fatalf("Hash failed: %v", err)
			}
			if err := h.Verify("batterystaple", digest); !errors.Is(err, ErrMismatch) {
				t.Fatalf("expected ErrMismatch, got %v", err)
			}
		})
	}
}

func TestHashIsSalted(t *testing.T) {
	for name, h := range testHashers(t) {
		t.Run(name, func(t *testing.T) {
			d1, err := h.Hash("correcthorse")
			if err != nil {
				t.Fatalf("Hash failed: %v", err)
			}
			d2, err := h.Hash("correcthorse")
			if err != nil {
				t.Fatalf("Hash failed: %v", err)
			}
			if d1 == d2 {
				t.Fatal("two hashes of the same secret must differ")
			}
			if err := h.Verify("correcthorse", d1); err != nil {
				t.Errorf("first digest does not verify: %v", err)
			}
			if err := h.Verify("correcthorse", d2); err != nil {
				t.Errorf("second digest does not verify: %v", err)
			}
		})
	}
}

func TestHashLengthPolicy(t *testing.T) {
	for name, h := range testHashers(t) {
		t.Run(name, func(t *testing.T) {
			if _, err := h.Hash("short"); !errors.Is(err, ErrSecretPolicy) {
				t.Errorf("expected ErrSecretPolicy for a short secret, got %v", err)
			}
			if _, err := h.Hash(strings.Repeat("x", 73)); !errors.Is(err, ErrSecretPolicy) {
				t.Errorf("expected ErrSecretPolicy for a long secret, got %v", err)
			}
			if _, err := h.Hash(strings.Repeat("x", 72)); err != nil {
				t.Errorf("72 characters must be accepted, got %v", err)
			}
		})
	}
}

func TestVerifyMalformedDigest(t *testing.T) {
	tests := []struct {
		name   string
		digest string
	}{
		{"empty", ""},
		{"garbage", "not-a-digest"},
		{"truncated argon2", "$argon2id$v=19$m=1024"},
		{"bad argon2 salt", "$argon2id$v=19$m=1024,t=1,p=1$!!!$AAAA"},
	}
	for name, h := range testHashers(t) {
		for _, tc := range tests {
			t.Run(name+"/"+tc.name, func(t *testing.T) {
				if err := h.Verify("correcthorse", tc.digest); !errors.Is(err, ErrMalformedDigest) {
					t.Fatalf("expected ErrMalformedDigest, got %v", err)
				}
			})
		}
	}
}

func TestNewFromConfig(t *testing.T) {
	h, err := NewFromConfig(Config{})
	if err != nil {
		t.Fatalf("default config rejected: %v", err)
	}
	if _, ok := h.(*BcryptHasher); !ok {
		t.Fatalf("expected bcrypt by default, got %T", h)
	}

	h, err = NewFromConfig(Config{Algorithm: AlgorithmArgon2id})
	if err != nil {
		t.Fatalf("argon2id config rejected: %v", err)
	}
	if _, ok := h.(*Argon2Hasher); !ok {
		t.Fatalf("expected argon2id hasher, got %T", h)
	}

	if _, err := NewFromConfig(Config{Algorithm: "md5"}); err == nil {
		t.Fatal("unsupported algorithm must be rejected")
	}
}
