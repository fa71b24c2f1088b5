package memory

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"product-catalog-api/internal/models"
	"product-catalog-api/internal/store"
)

func newProduct(t *testing.T, id, name string, price float64) *models.Product {
	t.Helper()
	product, err := models.NewProduct(id, name, price)
	require.NoError(t, err)
	return product
}

func TestListEmpty(t *testing.T) {
	s := New()

	products, err := s.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, products)
}

func TestCreateAndGet(t *testing.T) {
	s := New()
	ctx := context.Background()

	created, err := s.Create(ctx, newProduct(t, "p1", "Widget", 9.99))
	require.NoError(t, err)
	assert.Equal(t, "p1", created.ID())

	got, err := s.GetByID(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, models.ProductInfo{ID: "p1", Name: "Widget", Price: 9.99}, got.Info())
}

func TestGetMissing(t *testing.T) {
	s := New()

	_, err := s.GetByID(context.Background(), "missing")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestCreateDuplicate(t *testing.T) {
	s := New()
	ctx := context.Background()

	_, err := s.Create(ctx, newProduct(t, "p1", "Widget", 9.99))
	require.NoError(t, err)

	_, err = s.Create(ctx, newProduct(t, "p1", "Other", 1.00))
	assert.ErrorIs(t, err, store.ErrAlreadyExists)
}

func TestUpdateMissing(t *testing.T) {
	s := New()

	_, err := s.Update(context.Background(), newProduct(t, "p1", "Widget", 9.99))
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestUpdateExisting(t *testing.T) {
	s := New()
	ctx := context.Background()

	_, err := s.Create(ctx, newProduct(t, "p1", "Widget", 9.99))
	require.NoError(t, err)

	updated, err := s.Update(ctx, newProduct(t, "p1", "Widget v2", 19.99))
	require.NoError(t, err)
	assert.Equal(t, "Widget v2", updated.Name())

	got, err := s.GetByID(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, 19.99, got.Price())
}

func TestDeleteReturnsPriorRecord(t *testing.T) {
	s := New()
	ctx := context.Background()

	_, err := s.Create(ctx, newProduct(t, "p1", "Widget", 9.99))
	require.NoError(t, err)

	deleted, err := s.Delete(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, models.ProductInfo{ID: "p1", Name: "Widget", Price: 9.99}, deleted.Info())

	_, err = s.Delete(ctx, "p1")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

// TestConcurrentCreateOneWinner verifies the conditional-create
// guarantee: many concurrent creates for one id yield exactly one
// success.
func TestConcurrentCreateOneWinner(t *testing.T) {
	s := New()
	ctx := context.Background()

	const attempts = 32

	var wg sync.WaitGroup
	results := make(chan error, attempts)

	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := s.Create(ctx, newProduct(t, "p1", "Widget", 9.99))
			results <- err
		}()
	}
	wg.Wait()
	close(results)

	var successes, conflicts int
	for err := range results {
		switch {
		case err == nil:
			successes++
		case err == store.ErrAlreadyExists:
			conflicts++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}

	assert.Equal(t, 1, successes)
	assert.Equal(t, attempts-1, conflicts)
}

func TestCancelledContext(t *testing.T) {
	s := New()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := s.List(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}
