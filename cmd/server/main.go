package main

import (
	"context"

	"github.com/gin-gonic/gin"

	"product-catalog-api/internal/config"
	"product-catalog-api/internal/handlers"
	"product-catalog-api/internal/middleware"
	"product-catalog-api/pkg/server"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	ctx := context.Background()
	container, err := server.NewContainer(ctx, cfg)
	if err != nil {
		panic("Failed to initialize container: " + err.Error())
	}
	defer container.Close(ctx)

	if cfg.Environment != "development" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(
		middleware.RequestID(),
		middleware.StructuredLogger(container.Logger),
		middleware.Recovery(container.Logger),
		middleware.RateLimit(50, 100),
	)

	handlers.RegisterRoutes(router, handlers.NewProductHandler(container.ProductService))

	container.Logger.
		WithField("port", cfg.Port).
		WithField("mode", config.DeploymentMode()).
		Info("Starting product catalog API")
	if err := router.Run(":" + cfg.Port); err != nil {
		container.Logger.WithError(err).Fatal("Server stopped")
	}
}
