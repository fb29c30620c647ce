package app

import "context"

// ProductPricer resolves the current unit price of a product.
// A missing product is reported as apperr.ErrNotFound.
type ProductPricer interface {
	UnitPrice(ctx context.Context, productID int64) (float64, error)
}
