package metrics

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Counter names match the metric names emitted by the service since its
// first deployment; dashboards depend on them.
const (
	listProductsCounter  = "getProducts"
	getProductCounter    = "getProduct"
	createProductCounter = "createProduct"
	updateProductCounter = "updateProduct"
	deleteProductCounter = "productDeleted"
)

const productIDAttribute = "productId"

// OTelRecorder emits operation counters through an OpenTelemetry meter.
type OTelRecorder struct {
	list   metric.Int64Counter
	get    metric.Int64Counter
	create metric.Int64Counter
	update metric.Int64Counter
	del    metric.Int64Counter
}

var _ Recorder = (*OTelRecorder)(nil)

// NewOTelRecorder creates the operation counters on the given meter.
func NewOTelRecorder(meter metric.Meter) (*OTelRecorder, error) {
	r := &OTelRecorder{}

	var err error
	if r.list, err = meter.Int64Counter(listProductsCounter); err != nil {
		return nil, err
	}
	if r.get, err = meter.Int64Counter(getProductCounter); err != nil {
		return nil, err
	}
	if r.create, err = meter.Int64Counter(createProductCounter); err != nil {
		return nil, err
	}
	if r.update, err = meter.Int64Counter(updateProductCounter); err != nil {
		return nil, err
	}
	if r.del, err = meter.Int64Counter(deleteProductCounter); err != nil {
		return nil, err
	}

	return r, nil
}

func (r *OTelRecorder) CountListProducts(ctx context.Context) {
	r.list.Add(ctx, 1)
}

func (r *OTelRecorder) CountGetProduct(ctx context.Context, id string) {
	r.get.Add(ctx, 1, metric.WithAttributes(attribute.String(productIDAttribute, id)))
}

func (r *OTelRecorder) CountCreateProduct(ctx context.Context, id string) {
	r.create.Add(ctx, 1, metric.WithAttributes(attribute.String(productIDAttribute, id)))
}

func (r *OTelRecorder) CountUpdateProduct(ctx context.Context) {
	r.update.Add(ctx, 1)
}

func (r *OTelRecorder) CountDeleteProduct(ctx context.Context, id string) {
	r.del.Add(ctx, 1, metric.WithAttributes(attribute.String(productIDAttribute, id)))
}
