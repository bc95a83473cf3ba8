package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ProductStore is the repository for Product records.
type ProductStore struct {
	db *DB
}

// NewProductStore creates a ProductStore backed by the given database.
func NewProductStore(db *DB) *ProductStore {
	return &ProductStore{db: db}
}

// Insert persists a new product.
func (s *ProductStore) Insert(ctx context.Context, product *Product) error {
	if err := s.db.WithContext(ctx).Create(product).Error; err != nil {
		return fmt.Errorf("store: insert product: %w", err)
	}
	return nil
}

// FindByID looks up a product by its ID. A malformed ID behaves like a
// missing record.
func (s *ProductStore) FindByID(ctx context.Context, id string) (*Product, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return nil, ErrNotFound
	}
	var product Product
	err = s.db.WithContext(ctx).Where("id = ?", uid).First(&product).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("store: find product by id: %w", err)
	}
	return &product, nil
}

// Update overwrites a product's name and price. Returns ErrNotFound when no
// row matched.
func (s *ProductStore) Update(ctx context.Context, id, name string, price float64) (*Product, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return nil, ErrNotFound
	}
	result := s.db.WithContext(ctx).Model(&Product{}).
		Where("id = ?", uid).
		Updates(map[string]interface{}{"name": name, "price": price})
	if result.Error != nil {
		return nil, fmt.Errorf("store: update product: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, ErrNotFound
	}
	return s.FindByID(ctx, id)
}

// Delete removes a product. Returns ErrNotFound when no row matched.
func (s *ProductStore) Delete(ctx context.Context, id string) error {
	uid, err := uuid.Parse(id)
	if err != nil {
		return ErrNotFound
	}
	result := s.db.WithContext(ctx).Where("id = ?", uid).Delete(&Product{})
	if result.Error != nil {
		return fmt.Errorf("store: delete product: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// List returns all products ordered by creation time.
func (s *ProductStore) List(ctx context.Context) ([]Product, error) {
	var products []Product
	if err := s.db.WithContext(ctx).Order("created_at").Find(&products).Error; err != nil {
		return nil, fmt.Errorf("store: list products: %w", err)
	}
	return products, nil
}
