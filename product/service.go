// Package product implements the catalog service.
package product

import (
	"context"
	"errors"

	apperrors "github.com/skillsenselab/storeapi/errors"
	"github.com/skillsenselab/storeapi/logger"
	"github.com/skillsenselab/storeapi/store"
)

// Catalog is the persistence surface the service needs. *store.ProductStore
// satisfies it.
type Catalog interface {
	Insert(ctx context.Context, product *store.Product) error
	FindByID(ctx context.Context, id string) (*store.Product, error)
	Update(ctx context.Context, id, name string, price float64) (*store.Product, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]store.Product, error)
}

// Product is the service-level view of a catalog entry.
type Product struct {
	ID    string  `json:"id"`
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

// Service exposes catalog operations over a Catalog.
type Service struct {
	catalog Catalog
	log     *logger.Logger
}

// NewService creates a product service.
func NewService(catalog Catalog, log *logger.Logger) *Service {
	return &Service{catalog: catalog, log: log.WithComponent("product")}
}

// Create adds a product to the catalog.
func (s *Service) Create(ctx context.Context, name string, price float64) (*Product, error) {
	record := &store.Product{Name: name, Price: price}
	if err := s.catalog.Insert(ctx, record); err != nil {
		return nil, apperrors.Database("insert product", err)
	}
	s.log.Info("Product created", map[string]interface{}{"product_id": record.ID.String()})
	return fromRecord(record), nil
}

// Get returns a single product by id.
func (s *Service) Get(ctx context.Context, id string) (*Product, error) {
	record, err := s.catalog.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, apperrors.NotFound("product", id)
		}
		return nil, apperrors.Database("find product", err)
	}
	return fromRecord(record), nil
}

// Update overwrites a product's name and price.
func (s *Service) Update(ctx context.Context, id, name string, price float64) (*Product, error) {
	record, err := s.catalog.Update(ctx, id, name, price)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, apperrors.NotFound("product", id)
		}
		return nil, apperrors.Database("update product", err)
	}
	return fromRecord(record), nil
}

// Delete removes a product from the catalog.
func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.catalog.Delete(ctx, id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return apperrors.NotFound("product", id)
		}
		return apperrors.Database("delete product", err)
	}
	s.log.Info("Product deleted", map[string]interface{}{"product_id": id})
	return nil
}

// List returns the whole catalog.
func (s *Service) List(ctx context.Context) ([]Product, error) {
	records, err := s.catalog.List(ctx)
	if err != nil {
		return nil, apperrors.Database("list products", err)
	}
	products := make([]Product, 0, len(records))
	for _, r := range records {
		products = append(products, *fromRecord(&r))
	}
	return products, nil
}

func fromRecord(r *store.Product) *Product {
	return &Product{ID: r.ID.String(), Name: r.Name, Price: r.Price}
}
