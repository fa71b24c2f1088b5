package models

import (
	"product-catalog-api/internal/apperrors"
)

// ProductInfo is the plain-data projection of a Product. It is the shape
// exchanged with clients and the only way product data enters or leaves
// the entity.
type ProductInfo struct {
	ID    string  `json:"id" validate:"required"`
	Name  string  `json:"name" validate:"required"`
	Price float64 `json:"price" validate:"required,gt=0"`
}

// Product is the catalog entity. It is immutable after construction and
// can only be built through NewProduct, so a Product value always holds
// a valid id, name and price.
type Product struct {
	id    string
	name  string
	price float64
}

// NewProduct constructs a Product, rejecting empty id/name and
// non-positive prices.
func NewProduct(id, name string, price float64) (*Product, error) {
	if id == "" || name == "" || price <= 0 {
		return nil, apperrors.Validation("invalid product info")
	}

	return &Product{
		id:    id,
		name:  name,
		price: price,
	}, nil
}

// FromInfo constructs a Product from its projection.
func FromInfo(info ProductInfo) (*Product, error) {
	return NewProduct(info.ID, info.Name, info.Price)
}

// ID returns the product identifier.
func (p *Product) ID() string {
	return p.id
}

// Name returns the product name.
func (p *Product) Name() string {
	return p.name
}

// Price returns the product price.
func (p *Product) Price() float64 {
	return p.price
}

// Info returns the read-only projection of the product. Info then
// FromInfo round-trips to an identical product.
func (p *Product) Info() ProductInfo {
	return ProductInfo{
		ID:    p.id,
		Name:  p.name,
		Price: p.price,
	}
}
