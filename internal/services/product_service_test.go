package services

import (
	"context"
	"errors"
	"io"
	"sync"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"product-catalog-api/internal/apperrors"
	"product-catalog-api/internal/models"
	"product-catalog-api/internal/store"
	"product-catalog-api/internal/store/memory"
)

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func newService(t *testing.T) (ProductService, *memory.Store) {
	t.Helper()
	s := memory.New()
	return NewProductService(s, nil, testLogger()), s
}

func info(id, name string, price float64) *models.ProductInfo {
	return &models.ProductInfo{ID: id, Name: name, Price: price}
}

func TestListProductsEmptyCatalog(t *testing.T) {
	svc, _ := newService(t)

	infos, err := svc.ListProducts(context.Background())
	require.NoError(t, err)
	require.NotNil(t, infos)
	assert.Empty(t, infos)
}

func TestCreateThenList(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	created, err := svc.CreateProduct(ctx, info("p1", "Widget", 9.99))
	require.NoError(t, err)
	assert.Equal(t, &models.ProductInfo{ID: "p1", Name: "Widget", Price: 9.99}, created)

	infos, err := svc.ListProducts(ctx)
	require.NoError(t, err)
	assert.Len(t, infos, 1)
}

func TestCreateDuplicateRaisesExistingItem(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	_, err := svc.CreateProduct(ctx, info("p1", "Widget", 9.99))
	require.NoError(t, err)

	_, err = svc.CreateProduct(ctx, info("p1", "Widget", 9.99))
	require.Error(t, err)

	var appErr *apperrors.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.KindExistingItem, appErr.Kind)
	assert.Equal(t, "Product with id: p1 already exist", appErr.Message)
}

func TestCreateValidation(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	cases := []struct {
		name string
		body *models.ProductInfo
	}{
		{"nil body", nil},
		{"missing id", info("", "Widget", 9.99)},
		{"missing name", info("p1", "", 9.99)},
		{"missing price", info("p1", "Widget", 0)},
		{"negative price", info("p1", "Widget", -5)},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.CreateProduct(ctx, tc.body)
			require.Error(t, err)

			var appErr *apperrors.Error
			require.ErrorAs(t, err, &appErr)
			assert.Equal(t, apperrors.KindValidation, appErr.Kind)
			assert.Equal(t, "Missing info on body", appErr.Message)
		})
	}
}

func TestGetProduct(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	_, err := svc.CreateProduct(ctx, info("p1", "Widget", 9.99))
	require.NoError(t, err)

	got, err := svc.GetProduct(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, &models.ProductInfo{ID: "p1", Name: "Widget", Price: 9.99}, got)
}

func TestGetProductMissingID(t *testing.T) {
	svc, _ := newService(t)

	_, err := svc.GetProduct(context.Background(), "")
	require.Error(t, err)

	var appErr *apperrors.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.KindValidation, appErr.Kind)
	assert.Equal(t, "Missing 'id' parameter in path", appErr.Message)
}

func TestGetProductNotFound(t *testing.T) {
	svc, _ := newService(t)

	_, err := svc.GetProduct(context.Background(), "missing")
	require.Error(t, err)

	var appErr *apperrors.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.KindNotFound, appErr.Kind)
	assert.Equal(t, "No item with ID missing found", appErr.Message)
}

func TestUpdateMissingProductRaisesNotFound(t *testing.T) {
	svc, _ := newService(t)

	_, err := svc.UpdateProduct(context.Background(), info("p1", "Widget", 9.99))
	require.Error(t, err)

	var appErr *apperrors.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.KindNotFound, appErr.Kind)
	assert.Equal(t, "Product not updated, No item with ID p1 found", appErr.Message)
}

func TestUpdateExistingProduct(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	_, err := svc.CreateProduct(ctx, info("p1", "Widget", 9.99))
	require.NoError(t, err)

	updated, err := svc.UpdateProduct(ctx, info("p1", "Widget v2", 19.99))
	require.NoError(t, err)
	assert.Equal(t, &models.ProductInfo{ID: "p1", Name: "Widget v2", Price: 19.99}, updated)
}

func TestDeleteProduct(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	_, err := svc.CreateProduct(ctx, info("p1", "Widget", 9.99))
	require.NoError(t, err)

	deleted, err := svc.DeleteProduct(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, &models.ProductInfo{ID: "p1", Name: "Widget", Price: 9.99}, deleted)

	// Repeated delete of the same id is a not-found.
	_, err = svc.DeleteProduct(ctx, "p1")
	var appErr *apperrors.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.KindNotFound, appErr.Kind)
}

func TestConcurrentCreateOneSuccess(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	const attempts = 16

	var wg sync.WaitGroup
	results := make(chan error, attempts)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.CreateProduct(ctx, info("p1", "Widget", 9.99))
			results <- err
		}()
	}
	wg.Wait()
	close(results)

	var successes, conflicts int
	for err := range results {
		if err == nil {
			successes++
			continue
		}
		var appErr *apperrors.Error
		require.ErrorAs(t, err, &appErr)
		require.Equal(t, apperrors.KindExistingItem, appErr.Kind)
		conflicts++
	}

	assert.Equal(t, 1, successes)
	assert.Equal(t, attempts-1, conflicts)
}

// failingStore simulates backend failures on every operation.
type failingStore struct {
	err error
}

func (f *failingStore) List(context.Context) ([]*models.Product, error) { return nil, f.err }
func (f *failingStore) GetByID(context.Context, string) (*models.Product, error) {
	return nil, f.err
}
func (f *failingStore) Create(context.Context, *models.Product) (*models.Product, error) {
	return nil, f.err
}
func (f *failingStore) Update(context.Context, *models.Product) (*models.Product, error) {
	return nil, f.err
}
func (f *failingStore) Delete(context.Context, string) (*models.Product, error) {
	return nil, f.err
}

// TestBackendFailuresSurfaceAsSystemErrors verifies genuine backend
// failures are kept distinct from not-found and conflict outcomes.
func TestBackendFailuresSurfaceAsSystemErrors(t *testing.T) {
	backendErr := errors.New("connection refused")
	svc := NewProductService(&failingStore{err: backendErr}, nil, testLogger())
	ctx := context.Background()

	_, err := svc.GetProduct(ctx, "p1")
	var appErr *apperrors.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.KindSystem, appErr.Kind)

	_, err = svc.CreateProduct(ctx, info("p1", "Widget", 9.99))
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.KindSystem, appErr.Kind)

	_, err = svc.UpdateProduct(ctx, info("p1", "Widget", 9.99))
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.KindSystem, appErr.Kind)

	_, err = svc.DeleteProduct(ctx, "p1")
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.KindSystem, appErr.Kind)

	// List failures propagate to the boundary mapper instead.
	_, err = svc.ListProducts(ctx)
	require.Error(t, err)
	assert.ErrorIs(t, err, backendErr)
	assert.False(t, errors.As(err, &appErr))
}

// panicRecorder simulates a broken metrics backend.
type panicRecorder struct{}

func (panicRecorder) CountListProducts(context.Context)          { panic("metrics down") }
func (panicRecorder) CountGetProduct(context.Context, string)    { panic("metrics down") }
func (panicRecorder) CountCreateProduct(context.Context, string) { panic("metrics down") }
func (panicRecorder) CountUpdateProduct(context.Context)         { panic("metrics down") }
func (panicRecorder) CountDeleteProduct(context.Context, string) { panic("metrics down") }

// TestMetricsFailureDoesNotAffectOutcome verifies metric emission is
// fire-and-forget.
func TestMetricsFailureDoesNotAffectOutcome(t *testing.T) {
	svc := NewProductService(memory.New(), panicRecorder{}, testLogger())
	ctx := context.Background()

	created, err := svc.CreateProduct(ctx, info("p1", "Widget", 9.99))
	require.NoError(t, err)
	assert.Equal(t, "p1", created.ID)

	infos, err := svc.ListProducts(ctx)
	require.NoError(t, err)
	assert.Len(t, infos, 1)
}

var _ store.ProductStore = (*failingStore)(nil)
