// Package password provides one-way hashing and verification of login secrets.
//
// Digests are self-contained: the algorithm parameters and a per-call random
// salt are embedded in the encoded form, so verification needs nothing beyond
// the digest itself. The plaintext never leaves this package and is never
// logged.
package password

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/crypto/argon2"
	"golang.org/x/crypto/bcrypt"
)

// Length policy for plaintext secrets. The upper bound is the bcrypt input
// limit and is applied to both algorithms so digests stay interchangeable.
const (
	MinSecretLength = 8
	MaxSecretLength = 72
)

var (
	// ErrSecretPolicy is returned by Hash when the plaintext falls outside
	// the length policy.
	ErrSecretPolicy = fmt.Errorf("password: secret must be %d-%d characters", MinSecretLength, MaxSecretLength)

	// ErrMismatch is returned by Verify when the secret does not match the
	// digest. This is an expected outcome, not a structural failure.
	ErrMismatch = errors.New("password: secret does not match digest")

	// ErrMalformedDigest is returned by Verify when the stored digest cannot
	// be parsed.
	ErrMalformedDigest = errors.New("password: malformed digest")
)

// Hasher defines the interface for password hashing and verification.
type Hasher interface {
	// Hash returns a storable digest of the secret. A fresh random salt is
	// used on every call, so hashing the same secret twice produces
	// different digests.
	Hash(secret string) (string, error)

	// Verify checks the secret against the digest in constant time.
	// Returns nil on match, ErrMismatch on mismatch, ErrMalformedDigest
	// when the digest is structurally invalid.
	Verify(secret, digest string) error
}

func checkPolicy(secret string) error {
	if len(secret) < MinSecretLength || len(secret) > MaxSecretLength {
		return ErrSecretPolicy
	}
	return nil
}

// --- Bcrypt Implementation ---

// BcryptHasher implements Hasher using bcrypt.
type BcryptHasher struct {
	cost int
}

// BcryptOption configures the bcrypt hasher.
type BcryptOption func(*BcryptHasher)

// WithCost sets the bcrypt cost parameter (default: 12, range: 4-31).
func WithCost(cost int) BcryptOption {
	return func(h *BcryptHasher) {
		if cost >= bcrypt.MinCost && cost <= bcrypt.MaxCost {
			h.cost = cost
		}
	}
}

// NewBcryptHasher creates a bcrypt-based password hasher.
func NewBcryptHasher(opts ...BcryptOption) *BcryptHasher {
	h := &BcryptHasher{cost: 12}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

func (h *BcryptHasher) Hash(secret string) (string, error) {
	if err := checkPolicy(secret); err != nil {
		return "", err
	}
	digest, err := bcrypt.GenerateFromPassword([]byte(secret), h.cost)
	if err != nil {
		return "", fmt.Errorf("password: hash: %w", err)
	}
	return string(digest), nil
}

func (h *BcryptHasher) Verify(secret, digest string) error {
	err := bcrypt.CompareHashAndPassword([]byte(digest), []byte(secret))
	switch {
	case err == nil:
		return nil
	case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
		return ErrMismatch
	default:
		// Anything else means the stored value is not a bcrypt digest.
		return ErrMalformedDigest
	}
}

// --- Argon2id Implementation ---

// Argon2Hasher implements Hasher using argon2id.
type Argon2Hasher struct {
	time    uint32
	memory  uint32
	threads uint8
	keyLen  uint32
	saltLen int
}

// Argon2Option configures the argon2id hasher.
type Argon2Option func(*Argon2Hasher)

// WithArgon2Time sets the number of iterations (default: 1).
func WithArgon2Time(t uint32) Argon2Option {
	return func(h *Argon2Hasher) {
		if t > 0 {
			h.time = t
		}
	}
}

// WithArgon2Memory sets the memory usage in KiB (default: 64*1024 = 64MB).
func WithArgon2Memory(m uint32) Argon2Option {
	return func(h *Argon2Hasher) {
		if m > 0 {
			h.memory = m
		}
	}
}

// WithArgon2Threads sets the parallelism (default: 4).
func WithArgon2Threads(t uint8) Argon2Option {
	return func(h *Argon2Hasher) {
		if t > 0 {
			h.threads = t
		}
	}
}

// NewArgon2Hasher creates an argon2id-based password hasher.
// Defaults follow OWASP recommendations: time=1, memory=64MB, threads=4.
func NewArgon2Hasher(opts ...Argon2Option) *Argon2Hasher {
	h := &Argon2Hasher{
		time:    1,
		memory:  64 * 1024,
		threads: 4,
		keyLen:  32,
		saltLen: 16,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

func (h *Argon2Hasher) Hash(secret string) (string, error) {
	if err := checkPolicy(secret); err != nil {
		return "", err
	}

	salt, err := generateRandomBytes(h.saltLen)
	if err != nil {
		return "", fmt.Errorf("password: generate salt: %w", err)
	}

	key := argon2.IDKey([]byte(secret), salt, h.time, h.memory, h.threads, h.keyLen)

	// Encode as: $argon2id$v=19$m=MEMORY,t=TIME,p=THREADS$SALT$HASH
	encoded := fmt.Sprintf("$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version,
		h.memory, h.time, h.threads,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(key),
	)
	return encoded, nil
}

func (h *Argon2Hasher) Verify(secret, digest string) error {
	parts := strings.Split(digest, "$")
	if len(parts) != 6 || parts[1] != "argon2id" {
		return ErrMalformedDigest
	}

	var memory, time uint32
	var threads uint8
	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &memory, &time, &threads); err != nil {
		return ErrMalformedDigest
	}

	salt, err := base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil {
		return ErrMalformedDigest
	}

	expected, err := base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil {
		return ErrMalformedDigest
	}

	key := argon2.IDKey([]byte(secret), salt, time, memory, threads, uint32(len(expected)))

	if subtle.ConstantTimeCompare(key, expected) != 1 {
		return ErrMismatch
	}
	return nil
}

// generateRandomBytes returns cryptographically secure random bytes.
func generateRandomBytes(n int) ([]byte, error) {
	b := make([]byte, n)
	if _, err := io.ReadFull(rand.Reader, b); err != nil {
		return nil, err
	}
	return b, nil
}
