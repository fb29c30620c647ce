package app

import (
	"context"
	"fmt"

	"github.com/dwikikusuma/phone-shop/internal/checkout/domain"
	"github.com/dwikikusuma/phone-shop/pkg/apperr"
	"golang.org/x/sync/errgroup"
)

type Service struct {
	Cart    CartReader
	Catalog CatalogReader
	Orders  OrderPlacer

	maxConcurrent int
}

func NewService(cart CartReader, catalog CatalogReader, orders OrderPlacer, maxConcurrent int) *Service {
	if maxConcurrent <= 0 {
		maxConcurrent = 10
	}

	return &Service{
		Cart:          cart,
		Catalog:       catalog,
		Orders:        orders,
		maxConcurrent: maxConcurrent,
	}
}

var ErrEmptyCart = apperr.Invalid("cart is empty")

// Quote prices the session's cart against the current catalog.
func (s *Service) Quote(ctx context.Context, sessionID string) (domain.Quote, error) {
	items, err := s.Cart.GetCart(ctx, sessionID)
	if err != nil {
		return domain.Quote{}, err
	}

	if len(items) == 0 {
		return domain.Quote{}, ErrEmptyCart
	}

	lines := make([]domain.QuoteLine, len(items))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(s.maxConcurrent)

	for idx := range items {
		g.Go(func() error {
			it := items[idx]
			if it.Quantity <= 0 {
				return apperr.Invalid("quantity must be greater than zero: %d", it.Quantity)
			}

			product, err := s.Catalog.GetProduct(ctx, it.ProductID)
			if err != nil {
				return fmt.Errorf("failed to get product %d: %w", it.ProductID, err)
			}

			lines[idx] = domain.QuoteLine{
				ProductID: product.ID,
				Name:      product.Name,
				Quantity:  it.Quantity,
				CartPrice: it.UnitPrice,
				UnitPrice: product.Price,
				LineTotal: product.Price * float64(it.Quantity),
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return domain.Quote{}, err
	}

	var total float64
	for _, line := range lines {
		total += line.LineTotal
	}

	return domain.Quote{Lines: lines, Total: total}, nil
}

// Checkout turns the session's cart into a pending order for userID and takes
// the ordered lines out of the cart. The cart is left untouched when placing fails.
func (s *Service) Checkout(ctx context.Context, sessionID string, userID int64) (domain.Receipt, error) {
	items, err := s.Cart.GetCart(ctx, sessionID)
	if err != nil {
		return domain.Receipt{}, err
	}
	if len(items) == 0 {
		return domain.Receipt{}, ErrEmptyCart
	}

	placed, err := s.Orders.PlaceOrder(ctx, userID, items)
	if err != nil {
		return domain.Receipt{}, err
	}

	if err := s.Cart.RemoveOrdered(ctx, sessionID, items); err != nil {
		return domain.Receipt{}, fmt.Errorf("order %d placed but cart not cleared: %w", placed.ID, err)
	}

	receipt := domain.Receipt{
		OrderID: placed.ID,
		Status:  placed.Status,
		Total:   placed.Total,
		Items:   make([]domain.ReceiptItem, 0, len(items)),
	}
	for _, it := range items {
		receipt.Items = append(receipt.Items, domain.ReceiptItem{ProductID: it.ProductID, Quantity: it.Quantity})
	}
	return receipt, nil
}
