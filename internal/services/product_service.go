package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"

	"product-catalog-api/internal/apperrors"
	"product-catalog-api/internal/metrics"
	"product-catalog-api/internal/models"
	"product-catalog-api/internal/store"
)

// ProductService defines the product business logic operations.
type ProductService interface {
	ListProducts(ctx context.Context) ([]models.ProductInfo, error)
	GetProduct(ctx context.Context, id string) (*models.ProductInfo, error)
	CreateProduct(ctx context.Context, info *models.ProductInfo) (*models.ProductInfo, error)
	UpdateProduct(ctx context.Context, info *models.ProductInfo) (*models.ProductInfo, error)
	DeleteProduct(ctx context.Context, id string) (*models.ProductInfo, error)
}

// productService implements ProductService on top of a product store.
type productService struct {
	store     store.ProductStore
	metrics   metrics.Recorder
	logger    *logrus.Logger
	validator *validator.Validate
}

// NewProductService creates a new product service instance.
func NewProductService(productStore store.ProductStore, recorder metrics.Recorder, logger *logrus.Logger) ProductService {
	if recorder == nil {
		recorder = metrics.Noop{}
	}
	return &productService{
		store:     productStore,
		metrics:   recorder,
		logger:    logger,
		validator: validator.New(),
	}
}

// ListProducts returns the projections of every stored product. An empty
// catalog is a successful empty list, not an error.
func (s *productService) ListProducts(ctx context.Context) ([]models.ProductInfo, error) {
	products, err := s.store.List(ctx)
	if err != nil {
		s.logger.WithError(err).Error("Failed to list products")
		return nil, fmt.Errorf("list products: %w", err)
	}

	infos := make([]models.ProductInfo, 0, len(products))
	for _, product := range products {
		infos = append(infos, product.Info())
	}

	if len(infos) == 0 {
		s.logger.Warn("No Items found")
	}

	s.count(func() { s.metrics.CountListProducts(ctx) })
	return infos, nil
}

// GetProduct returns the product with the given id.
func (s *productService) GetProduct(ctx context.Context, id string) (*models.ProductInfo, error) {
	if err := s.validateProductID(id); err != nil {
		return nil, err
	}

	product, err := s.store.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			s.logger.WithField("product_id", id).Warn("No item found")
			return nil, apperrors.NotFound(fmt.Sprintf("No item with ID %s found", id))
		}
		s.logger.WithError(err).WithField("product_id", id).Error("Product lookup failed")
		return nil, apperrors.System("product lookup failed")
	}

	s.count(func() { s.metrics.CountGetProduct(ctx, id) })

	info := product.Info()
	return &info, nil
}

// CreateProduct stores a new product; the id must not be taken yet.
func (s *productService) CreateProduct(ctx context.Context, info *models.ProductInfo) (*models.ProductInfo, error) {
	product, err := s.buildProduct(info)
	if err != nil {
		return nil, err
	}

	created, err := s.store.Create(ctx, product)
	if err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			s.logger.WithField("product_id", info.ID).Warn("Product not created")
			return nil, apperrors.ExistingItem(fmt.Sprintf("Product with id: %s already exist", info.ID))
		}
		s.logger.WithError(err).WithField("product_id", info.ID).Error("Product create failed")
		return nil, apperrors.System("product create failed")
	}

	s.count(func() { s.metrics.CountCreateProduct(ctx, info.ID) })

	createdInfo := created.Info()
	return &createdInfo, nil
}

// UpdateProduct replaces an existing product; the id must already exist.
func (s *productService) UpdateProduct(ctx context.Context, info *models.ProductInfo) (*models.ProductInfo, error) {
	product, err := s.buildProduct(info)
	if err != nil {
		return nil, err
	}

	updated, err := s.store.Update(ctx, product)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			s.logger.WithField("product_id", info.ID).Warn("Product not updated")
			return nil, apperrors.NotFound(fmt.Sprintf("Product not updated, No item with ID %s found", info.ID))
		}
		s.logger.WithError(err).WithField("product_id", info.ID).Error("Product update failed")
		return nil, apperrors.System("product update failed")
	}

	s.count(func() { s.metrics.CountUpdateProduct(ctx) })

	updatedInfo := updated.Info()
	return &updatedInfo, nil
}

// DeleteProduct removes a product and returns its pre-delete projection.
func (s *productService) DeleteProduct(ctx context.Context, id string) (*models.ProductInfo, error) {
	if err := s.validateProductID(id); err != nil {
		return nil, err
	}

	deleted, err := s.store.Delete(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			s.logger.WithField("product_id", id).Warn("No item found")
			return nil, apperrors.NotFound(fmt.Sprintf("No item with ID %s found", id))
		}
		s.logger.WithError(err).WithField("product_id", id).Error("Product delete failed")
		return nil, apperrors.System("product delete failed")
	}

	s.logger.WithField("product_id", id).Info("Product deleted")
	s.count(func() { s.metrics.CountDeleteProduct(ctx, id) })

	deletedInfo := deleted.Info()
	return &deletedInfo, nil
}

// buildProduct validates the request body and constructs the entity.
func (s *productService) buildProduct(info *models.ProductInfo) (*models.Product, error) {
	if info == nil {
		s.logger.Warn("Missing info on body")
		return nil, apperrors.Validation("Missing info on body")
	}
	if err := s.validator.Struct(info); err != nil {
		s.logger.WithError(err).Warn("Missing info on body")
		return nil, apperrors.Validation("Missing info on body")
	}

	return models.FromInfo(*info)
}

func (s *productService) validateProductID(id string) error {
	if id == "" {
		s.logger.Warn("Missing 'id' parameter in path")
		return apperrors.Validation("Missing 'id' parameter in path")
	}
	return nil
}

// count runs a metric emission without letting a recorder failure reach
// the request outcome.
func (s *productService) count(emit func()) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.WithField("panic", r).Warn("Metric emission failed")
		}
	}()
	emit()
}
