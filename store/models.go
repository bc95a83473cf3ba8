package store

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Model contains common fields for all database models. IDs are UUIDs
// assigned at creation and immutable afterwards.
type Model struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

// BeforeCreate generates a UUID if not already set.
func (m *Model) BeforeCreate(_ *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}

// Account is a registered identity. The password hash is opaque to every
// layer above the store and is never serialized in a response.
type Account struct {
	Model
	Username     string `gorm:"size:50;not null;uniqueIndex:idx_accounts_username"`
	PasswordHash string `gorm:"column:password_hash;not null" json:"-"`
}

// Product is a catalog entry.
type Product struct {
	Model
	Name  string  `gorm:"size:255;not null"`
	Price float64 `gorm:"not null"`
}
