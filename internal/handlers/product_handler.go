package handlers

import (
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"product-catalog-api/internal/apperrors"
	"product-catalog-api/internal/services"
)

// ProductHandler handles product HTTP requests on both the gin surface
// (server mode) and the framework-agnostic lambda surface.
type ProductHandler struct {
	productService services.ProductService
}

// NewProductHandler creates a new product handler.
func NewProductHandler(productService services.ProductService) *ProductHandler {
	return &ProductHandler{
		productService: productService,
	}
}

// ListProducts returns every product in the catalog.
func (h *ProductHandler) ListProducts(c *gin.Context) {
	infos, err := h.productService.ListProducts(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, infos)
}

// GetProduct returns a single product by path id.
func (h *ProductHandler) GetProduct(c *gin.Context) {
	info, err := h.productService.GetProduct(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, info)
}

// CreateProduct creates a product from the request body.
func (h *ProductHandler) CreateProduct(c *gin.Context) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		respondError(c, apperrors.Validation("Missing info on body"))
		return
	}

	info, err := decodeProductBody(body)
	if err != nil {
		respondError(c, err)
		return
	}

	created, err := h.productService.CreateProduct(c.Request.Context(), info)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, createProductResponse{
		Message: "Product created",
		Product: created,
	})
}

// UpdateProduct replaces an existing product; the id travels in the body.
func (h *ProductHandler) UpdateProduct(c *gin.Context) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		respondError(c, apperrors.Validation("Missing info on body"))
		return
	}

	info, err := decodeProductBody(body)
	if err != nil {
		respondError(c, err)
		return
	}

	updated, err := h.productService.UpdateProduct(c.Request.Context(), info)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, updateProductResponse{
		Message:    "Product updated",
		NewProduct: updated,
	})
}

// DeleteProduct removes a product by path id.
func (h *ProductHandler) DeleteProduct(c *gin.Context) {
	id := c.Param("id")
	deleted, err := h.productService.DeleteProduct(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, deleteProductResponse{
		Message:        fmt.Sprintf("product id %s deleted", id),
		DeletedProduct: deleted,
	})
}
