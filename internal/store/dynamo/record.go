package dynamo

import (
	"product-catalog-api/internal/models"
)

// keyPrefix implements the single-table composite key pattern: the
// product id is encoded into both partition and sort key.
const keyPrefix = "PRODUCT#"

// record is the table representation of a product.
type record struct {
	PK    string  `dynamodbav:"PK"`
	SK    string  `dynamodbav:"SK"`
	ID    string  `dynamodbav:"id"`
	Name  string  `dynamodbav:"name"`
	Price float64 `dynamodbav:"price"`
}

// productKey derives the composite key value for a product id.
func productKey(id string) string {
	return keyPrefix + id
}

// toRecord maps a product to its table representation.
func toRecord(product *models.Product) record {
	info := product.Info()
	return record{
		PK:    productKey(info.ID),
		SK:    productKey(info.ID),
		ID:    info.ID,
		Name:  info.Name,
		Price: info.Price,
	}
}

// fromRecord reconstructs a product from a table record, dropping the
// derived key fields.
func fromRecord(r record) (*models.Product, error) {
	return models.NewProduct(r.ID, r.Name, r.Price)
}
