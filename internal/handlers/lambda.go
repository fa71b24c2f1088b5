package handlers

import (
	"context"
	"fmt"
	"net/http"

	"product-catalog-api/pkg/lambda"
)

// Lambda surface. Errors are returned to the middleware chain, which
// maps them to the taxonomy's HTTP-shaped responses.

// HandleList handles GET /products.
func (h *ProductHandler) HandleList(ctx context.Context, req *lambda.Request) (*lambda.Response, error) {
	infos, err := h.productService.ListProducts(ctx)
	if err != nil {
		return nil, err
	}

	return lambda.JSON(http.StatusOK, infos)
}

// HandleGet handles GET /products/{id}.
func (h *ProductHandler) HandleGet(ctx context.Context, req *lambda.Request) (*lambda.Response, error) {
	info, err := h.productService.GetProduct(ctx, req.PathParams["id"])
	if err != nil {
		return nil, err
	}

	return lambda.JSON(http.StatusOK, info)
}

// HandleCreate handles POST /products.
func (h *ProductHandler) HandleCreate(ctx context.Context, req *lambda.Request) (*lambda.Response, error) {
	info, err := decodeProductBody(req.Body)
	if err != nil {
		return nil, err
	}

	created, err := h.productService.CreateProduct(ctx, info)
	if err != nil {
		return nil, err
	}

	return lambda.JSON(http.StatusCreated, createProductResponse{
		Message: "Product created",
		Product: created,
	})
}

// HandleUpdate handles PUT /products; the id travels in the body.
func (h *ProductHandler) HandleUpdate(ctx context.Context, req *lambda.Request) (*lambda.Response, error) {
	info, err := decodeProductBody(req.Body)
	if err != nil {
		return nil, err
	}

	updated, err := h.productService.UpdateProduct(ctx, info)
	if err != nil {
		return nil, err
	}

	return lambda.JSON(http.StatusOK, updateProductResponse{
		Message:    "Product updated",
		NewProduct: updated,
	})
}

// HandleDelete handles DELETE /products/{id}.
func (h *ProductHandler) HandleDelete(ctx context.Context, req *lambda.Request) (*lambda.Response, error) {
	id := req.PathParams["id"]
	deleted, err := h.productService.DeleteProduct(ctx, id)
	if err != nil {
		return nil, err
	}

	return lambda.JSON(http.StatusOK, deleteProductResponse{
		Message:        fmt.Sprintf("product id %s deleted", id),
		DeletedProduct: deleted,
	})
}
