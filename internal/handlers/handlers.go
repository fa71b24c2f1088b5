package handlers

import (
	"encoding/json"

	"github.com/gin-gonic/gin"

	"product-catalog-api/internal/apperrors"
	"product-catalog-api/internal/models"
)

// productRequest is the request body envelope for create and update.
type productRequest struct {
	Product *models.ProductInfo `json:"product"`
}

// createProductResponse is the 201 body for a successful create.
type createProductResponse struct {
	Message string              `json:"message"`
	Product *models.ProductInfo `json:"product"`
}

// updateProductResponse is the 200 body for a successful update.
type updateProductResponse struct {
	Message    string              `json:"message"`
	NewProduct *models.ProductInfo `json:"new_product"`
}

// deleteProductResponse is the 200 body for a successful delete. The
// field name with a space is part of the wire contract.
type deleteProductResponse struct {
	Message        string              `json:"message"`
	DeletedProduct *models.ProductInfo `json:"deleted product"`
}

// respondError writes the taxonomy-mapped error body on the gin surface.
func respondError(c *gin.Context, err error) {
	status, body := apperrors.ToResponse(err)
	c.JSON(status, body)
}

// decodeProductBody extracts the product projection from a request body.
// A malformed or empty body is treated as missing info, the same as a
// body lacking required fields.
func decodeProductBody(body []byte) (*models.ProductInfo, error) {
	var req productRequest
	if err := json.Unmarshal(body, &req); err != nil {
		return nil, apperrors.Validation("Missing info on body")
	}
	return req.Product, nil
}
