package handlers

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes wires the product routes onto a gin router. The update
// route carries the product id in the body, matching the serverless
// surface.
func RegisterRoutes(router gin.IRouter, productHandler *ProductHandler) {
	products := router.Group("/products")
	{
		products.GET("", productHandler.ListProducts)
		products.GET("/:id", productHandler.GetProduct)
		products.POST("", productHandler.CreateProduct)
		products.PUT("", productHandler.UpdateProduct)
		products.DELETE("/:id", productHandler.DeleteProduct)
	}
}
