// Package util holds small dependency-free helpers.
package util

import (
	"strings"
	"unicode"
)

// SanitizeString trims whitespace and removes control characters from s.
// Applied to client-supplied identifiers before validation so a name padded
// with spaces or carrying stray control bytes does not slip into storage.
func SanitizeString(s string) string {
	s = strings.TrimSpace(s)
	return strings.Map(func(r rune) rune {
		if unicode.IsControl(r) {
			return -1
		}
		return r
	}, s)
}

// Ptr returns a pointer to the given value.
func Ptr[T any](v T) *T {
	return &v
}

// Deref returns the value pointed to by p, or the zero value if p is nil.
func Deref[T any](p *T) T {
	if p != nil {
		return *p
	}
	var zero T
	return zero
}
