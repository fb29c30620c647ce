package adapter

import (
	"context"

	cartapp "github.com/dwikikusuma/phone-shop/internal/cart/app"
	cartdomain "github.com/dwikikusuma/phone-shop/internal/cart/domain"
	checkoutapp "github.com/dwikikusuma/phone-shop/internal/checkout/app"
)

type CartServiceReader struct {
	svc *cartapp.Service
}

func NewCartServiceReader(svc *cartapp.Service) *CartServiceReader {
	return &CartServiceReader{svc: svc}
}

func (r *CartServiceReader) GetCart(ctx context.Context, sessionID string) ([]checkoutapp.CartItem, error) {
	lines := r.svc.Items(sessionID)

	items := make([]checkoutapp.CartItem, 0, len(lines))
	for _, it := range lines {
		items = append(items, checkoutapp.CartItem{
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
			UnitPrice: it.UnitPrice,
		})
	}
	return items, nil
}

func (r *CartServiceReader) RemoveOrdered(ctx context.Context, sessionID string, items []checkoutapp.CartItem) error {
	lines := make([]cartdomain.CartLine, 0, len(items))
	for _, it := range items {
		lines = append(lines, cartdomain.CartLine{
			ItemID:    cartapp.ItemID(it.ProductID),
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
		})
	}
	r.svc.Subtract(sessionID, lines)
	return nil
}
