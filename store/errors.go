package store

import (
	"errors"
	"strings"

	"gorm.io/gorm"
)

// Sentinel errors returned by the repositories. Callers map these to
// client-facing error kinds; gorm errors never escape this package.
var (
	// ErrNotFound indicates the requested record does not exist.
	ErrNotFound = errors.New("store: record not found")

	// ErrDuplicate indicates a uniqueness constraint rejected the write.
	// For accounts this is the authoritative username-uniqueness guard;
	// any pre-check above this layer is advisory only.
	ErrDuplicate = errors.New("store: duplicate record")
)

// isDuplicateErr reports whether err is a uniqueness violation. GORM's error
// translation covers the common case; the string check catches SQLite errors
// that bypass translation.
func isDuplicateErr(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}
