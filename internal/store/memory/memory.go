// Package memory provides a thread-safe in-memory product store used by
// the local server mode and the test suite.
package memory

import (
	"context"
	"sync"

	"product-catalog-api/internal/models"
	"product-catalog-api/internal/store"
)

// Store is an in-memory implementation of store.ProductStore. The
// existence condition for create/update/delete is evaluated under the
// lock, mirroring the backend's atomic conditional writes.
type Store struct {
	mu       sync.Mutex
	products map[string]models.ProductInfo
}

var _ store.ProductStore = (*Store)(nil)

// New constructs an empty in-memory store.
func New() *Store {
	return &Store{
		products: make(map[string]models.ProductInfo),
	}
}

// List returns all stored products.
func (s *Store) List(ctx context.Context) ([]*models.Product, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	products := make([]*models.Product, 0, len(s.products))
	for _, info := range s.products {
		product, err := models.FromInfo(info)
		if err != nil {
			return nil, err
		}
		products = append(products, product)
	}

	return products, nil
}

// GetByID returns the stored product or store.ErrNotFound.
func (s *Store) GetByID(ctx context.Context, id string) (*models.Product, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	info, ok := s.products[id]
	if !ok {
		return nil, store.ErrNotFound
	}

	return models.FromInfo(info)
}

// Create stores the product only if its id is free.
func (s *Store) Create(ctx context.Context, product *models.Product) (*models.Product, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.products[product.ID()]; exists {
		return nil, store.ErrAlreadyExists
	}

	s.products[product.ID()] = product.Info()
	return product, nil
}

// Update stores the product only if its id already exists.
func (s *Store) Update(ctx context.Context, product *models.Product) (*models.Product, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.products[product.ID()]; !exists {
		return nil, store.ErrNotFound
	}

	s.products[product.ID()] = product.Info()
	return product, nil
}

// Delete removes the product and returns its prior state.
func (s *Store) Delete(ctx context.Context, id string) (*models.Product, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	info, ok := s.products[id]
	if !ok {
		return nil, store.ErrNotFound
	}

	delete(s.products, id)
	return models.FromInfo(info)
}
