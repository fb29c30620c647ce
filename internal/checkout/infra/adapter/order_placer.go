package adapter

import (
	"context"

	checkoutapp "github.com/dwikikusuma/phone-shop/internal/checkout/app"
	orderapp "github.com/dwikikusuma/phone-shop/internal/order/app"
	orderdomain "github.com/dwikikusuma/phone-shop/internal/order/domain"
)

type OrderServicePlacer struct {
	svc *orderapp.Service
}

func NewOrderServicePlacer(svc *orderapp.Service) *OrderServicePlacer {
	return &OrderServicePlacer{svc: svc}
}

func (p *OrderServicePlacer) PlaceOrder(ctx context.Context, userID int64, items []checkoutapp.CartItem) (checkoutapp.PlacedOrder, error) {
	req := orderdomain.CreateOrderRequest{UserID: userID}
	for _, it := range items {
		req.Items = append(req.Items, orderdomain.OrderItemRequest{
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
		})
	}

	o, err := p.svc.CreateOrder(ctx, req)
	if err != nil {
		return checkoutapp.PlacedOrder{}, err
	}

	return checkoutapp.PlacedOrder{
		ID:     o.ID,
		Status: o.Status,
		Total:  o.TotalAmount,
	}, nil
}
