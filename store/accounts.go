package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AccountStore is the repository for Account records.
type AccountStore struct {
	db *DB
}

// NewAccountStore creates an AccountStore backed by the given database.
func NewAccountStore(db *DB) *AccountStore {
	return &AccountStore{db: db}
}

// Insert persists a new account. A username collision returns ErrDuplicate.
func (s *AccountStore) Insert(ctx context.Context, account *Account) error {
	if err := s.db.WithContext(ctx).Create(account).Error; err != nil {
		if isDuplicateErr(err) {
			return ErrDuplicate
		}
		return fmt.Errorf("store: insert account: %w", err)
	}
	return nil
}

// FindByUsername looks up an account by its exact username.
func (s *AccountStore) FindByUsername(ctx context.Context, username string) (*Account, error) {
	var account Account
	err := s.db.WithContext(ctx).Where("username = ?", username).First(&account).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("store: find account by username: %w", err)
	}
	return &account, nil
}

// FindByID looks up an account by its ID. A malformed ID behaves like a
// missing record.
func (s *AccountStore) FindByID(ctx context.Context, id string) (*Account, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return nil, ErrNotFound
	}
	var account Account
	err = s.db.WithContext(ctx).Where("id = ?", uid).First(&account).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("store: find account by id: %w", err)
	}
	return &account, nil
}

// UpdateUsername changes an account's username. Returns ErrNotFound when no
// row matched and ErrDuplicate when the new username is taken.
func (s *AccountStore) UpdateUsername(ctx context.Context, id, username string) (*Account, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return nil, ErrNotFound
	}
	result := s.db.WithContext(ctx).Model(&Account{}).
		Where("id = ?", uid).
		Update("username", username)
	if result.Error != nil {
		if isDuplicateErr(result.Error) {
			return nil, ErrDuplicate
		}
		return nil, fmt.Errorf("store: update username: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, ErrNotFound
	}
	return s.FindByID(ctx, id)
}

// Delete removes an account. Returns ErrNotFound when no row matched.
func (s *AccountStore) Delete(ctx context.Context, id string) error {
	uid, err := uuid.Parse(id)
	if err != nil {
		return ErrNotFound
	}
	result := s.db.WithContext(ctx).Where("id = ?", uid).Delete(&Account{})
	if result.Error != nil {
		return fmt.Errorf("store: delete account: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// List returns all accounts ordered by creation time.
func (s *AccountStore) List(ctx context.Context) ([]Account, error) {
	var accounts []Account
	if err := s.db.WithContext(ctx).Order("created_at").Find(&accounts).Error; err != nil {
		return nil, fmt.Errorf("store: list accounts: %w", err)
	}
	return accounts, nil
}
