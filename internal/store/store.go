// Package store defines the capability contract a product storage
// backend must satisfy.
package store

import (
	"context"
	"errors"

	"product-catalog-api/internal/models"
)

var (
	// ErrNotFound is returned when the target record does not exist.
	ErrNotFound = errors.New("product not found")

	// ErrAlreadyExists is returned when a create targets an id that is
	// already stored.
	ErrAlreadyExists = errors.New("product already exists")
)

// ProductStore is the storage contract for the product catalog.
//
// Existence checks are enforced by the backend's conditional writes, not
// by callers: Create fails with ErrAlreadyExists when the id is taken,
// Update and Delete fail with ErrNotFound when it is not. Any error that
// is not one of the sentinels above is a genuine backend failure and is
// reported as such rather than being collapsed into absence.
type ProductStore interface {
	// List returns up to one page of products. An empty table yields an
	// empty slice, not an error.
	List(ctx context.Context) ([]*models.Product, error)

	// GetByID returns the product with the given id, or ErrNotFound.
	GetByID(ctx context.Context, id string) (*models.Product, error)

	// Create stores the product only if its id does not exist yet and
	// returns the stored product.
	Create(ctx context.Context, product *models.Product) (*models.Product, error)

	// Update stores the product only if its id already exists and
	// returns the stored product.
	Update(ctx context.Context, product *models.Product) (*models.Product, error)

	// Delete removes the product with the given id and returns the
	// record as it was before deletion.
	Delete(ctx context.Context, id string) (*models.Product, error)
}
