package server

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/exporters/stdout/stdoutmetric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	semconv "go.opentelemetry.io/otel/semconv/v1.24.0"

	"product-catalog-api/internal/config"
	"product-catalog-api/internal/metrics"
	"product-catalog-api/internal/secrets"
	"product-catalog-api/internal/services"
	"product-catalog-api/internal/store"
	"product-catalog-api/internal/store/dynamo"
	"product-catalog-api/internal/store/memory"
)

const meterName = "product-catalog-api"

// Container holds all application dependencies, constructed once at
// process start and passed by reference. No hidden globals besides the
// lambda connection manager that owns this container.
type Container struct {
	Config         *config.Config
	Logger         *logrus.Logger
	Store          store.ProductStore
	Metrics        metrics.Recorder
	Secrets        *secrets.Service
	ProductService services.ProductService

	meterProvider *sdkmetric.MeterProvider
}

// NewContainer wires config -> store -> metrics -> service -> handler.
func NewContainer(ctx context.Context, cfg *config.Config) (*Container, error) {
	logger := newLogger(cfg)

	productStore, err := newStore(ctx, cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("create product store: %w", err)
	}

	exporter, err := stdoutmetric.New()
	if err != nil {
		return nil, fmt.Errorf("create metric exporter: %w", err)
	}
	meterProvider := sdkmetric.NewMeterProvider(
		sdkmetric.WithResource(resource.NewWithAttributes(
			semconv.SchemaURL,
			semconv.ServiceName(meterName),
		)),
		sdkmetric.WithReader(
			sdkmetric.NewPeriodicReader(exporter, sdkmetric.WithInterval(time.Minute)),
		),
	)

	recorder, err := metrics.NewOTelRecorder(meterProvider.Meter(meterName))
	if err != nil {
		return nil, fmt.Errorf("create metrics recorder: %w", err)
	}

	productService := services.NewProductService(productStore, recorder, logger)

	return &Container{
		Config:         cfg,
		Logger:         logger,
		Store:          productStore,
		Metrics:        recorder,
		Secrets:        secrets.WithDefaults(logger),
		ProductService: productService,
		meterProvider:  meterProvider,
	}, nil
}

// ForceFlush exports any pending metric data immediately. Lambda mode
// calls this after every invocation; the periodic reader's interval
// alone would rarely fire in a frozen execution environment.
func (c *Container) ForceFlush(ctx context.Context) error {
	if c.meterProvider != nil {
		return c.meterProvider.ForceFlush(ctx)
	}
	return nil
}

// Close flushes and releases container resources.
func (c *Container) Close(ctx context.Context) error {
	if c.meterProvider != nil {
		return c.meterProvider.Shutdown(ctx)
	}
	return nil
}

func newLogger(cfg *config.Config) *logrus.Logger {
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	if cfg.Environment == "development" {
		logger.SetLevel(logrus.DebugLevel)
	}
	return logger
}

func newStore(ctx context.Context, cfg *config.Config, logger *logrus.Logger) (store.ProductStore, error) {
	if cfg.StoreBackend == config.StoreMemory {
		return memory.New(), nil
	}

	client, err := dynamo.NewClient(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return dynamo.New(client, cfg.TableName, logger), nil
}
