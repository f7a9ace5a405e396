package types

import (
	"github.com/mitienda/storefront-backend/pkg/db/models"
)

// CartEntry pairs a product with the quantity held in the cart. The
// product is a read-only snapshot: the cart never mutates catalog data.
type CartEntry struct {
	Product  models.Product `json:"product"`
	Quantity int            `json:"quantity"`
}
