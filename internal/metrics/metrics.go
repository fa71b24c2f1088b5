// Package metrics defines the operation counters emitted by the
// application layer. Recording is fire-and-forget: a recorder must never
// influence the outcome of the request it observes.
package metrics

import "context"

// Recorder counts successful product operations. Per-product counters
// carry the product id as metadata.
type Recorder interface {
	CountListProducts(ctx context.Context)
	CountGetProduct(ctx context.Context, id string)
	CountCreateProduct(ctx context.Context, id string)
	CountUpdateProduct(ctx context.Context)
	CountDeleteProduct(ctx context.Context, id string)
}

// Noop discards every count.
type Noop struct{}

var _ Recorder = Noop{}

func (Noop) CountListProducts(context.Context)          {}
func (Noop) CountGetProduct(context.Context, string)    {}
func (Noop) CountCreateProduct(context.Context, string) {}
func (Noop) CountUpdateProduct(context.Context)         {}
func (Noop) CountDeleteProduct(context.Context, string) {}
