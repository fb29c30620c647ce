package app

import "context"

type CartReader interface {
	GetCart(ctx context.Context, sessionID string) ([]CartItem, error)
	// RemoveOrdered takes the given quantities off the cart, keeping lines added since.
	RemoveOrdered(ctx context.Context, sessionID string, items []CartItem) error
}

type CartItem struct {
	ProductID int64
	Quantity  int
	UnitPrice float64
}

type CatalogReader interface {
	GetProduct(ctx context.Context, productID int64) (Product, error)
}

type Product struct {
	ID    int64
	Name  string
	Price float64
}

type OrderPlacer interface {
	PlaceOrder(ctx context.Context, userID int64, items []CartItem) (PlacedOrder, error)
}

type PlacedOrder struct {
	ID     int64
	Status string
	Total  float64
}
