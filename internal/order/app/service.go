package app

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dwikikusuma/phone-shop/internal/order/domain"
	"github.com/dwikikusuma/phone-shop/pkg/apperr"
	"golang.org/x/sync/errgroup"
)

const (
	OrderStatusPending = "pending"
)

type Service struct {
	repo    OrderRepo
	catalog CatalogReader
	users   UserReader

	maxConcurrent int
	now           func() time.Time
}

func NewService(repo OrderRepo, catalog CatalogReader, users UserReader, maxConcurrent int) *Service {
	if maxConcurrent <= 0 {
		maxConcurrent = 10
	}
	return &Service{
		repo:          repo,
		catalog:       catalog,
		users:         users,
		maxConcurrent: maxConcurrent,
		now:           time.Now,
	}
}

func (s *Service) CreateOrder(ctx context.Context, req domain.CreateOrderRequest) (domain.Order, error) {
	for i, item := range req.Items {
		if item.Quantity <= 0 {
			return domain.Order{}, apperr.Invalid("item %d: quantity must be positive, got %d", i, item.Quantity)
		}
		if item.ProductID <= 0 {
			return domain.Order{}, apperr.Invalid("item %d: product_id is required", i)
		}
	}

	exists, err := s.users.UserExists(ctx, req.UserID)
	if err != nil {
		return domain.Order{}, err
	}
	if !exists {
		return domain.Order{}, apperr.Invalid("User with ID %d does not exist", req.UserID)
	}

	prices, err := s.resolvePrices(ctx, req.Items)
	if err != nil {
		return domain.Order{}, err
	}

	items := make([]domain.OrderItem, 0, len(req.Items))
	var total float64
	for i, item := range req.Items {
		items = append(items, domain.OrderItem{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
		})
		total += prices[i] * float64(item.Quantity)
	}

	now := s.now().UTC()
	return s.repo.CreateOrderTx(ctx, domain.Order{
		UserID:      req.UserID,
		Status:      OrderStatusPending,
		TotalAmount: total,
		Items:       items,
		CreatedAt:   now,
		UpdatedAt:   now,
	})
}

// resolvePrices looks every item's product up concurrently; prices[i] belongs to items[i].
func (s *Service) resolvePrices(ctx context.Context, items []domain.OrderItemRequest) ([]float64, error) {
	prices := make([]float64, len(items))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(s.maxConcurrent)

	for idx := range items {
		g.Go(func() error {
			it := items[idx]
			product, err := s.catalog.GetProduct(ctx, it.ProductID)
			if errors.Is(err, apperr.ErrNotFound) {
				return apperr.Invalid("item %d: product %d does not exist", idx, it.ProductID)
			}
			if err != nil {
				return fmt.Errorf("failed to get product %d: %w", it.ProductID, err)
			}
			prices[idx] = product.Price
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return prices, nil
}

func (s *Service) GetOrder(ctx context.Context, id int64) (domain.Order, error) {
	if id <= 0 {
		return domain.Order{}, apperr.NotFound("Order with ID %d not found", id)
	}
	return s.repo.Get(ctx, id)
}

func (s *Service) ListOrders(ctx context.Context) ([]domain.Order, error) {
	return s.repo.List(ctx)
}

func (s *Service) UpdateOrder(ctx context.Context, id int64, patch domain.OrderPatch) (domain.Order, error) {
	if patch.Status != nil {
		status := strings.ToLower(strings.TrimSpace(*patch.Status))
		if status == "" {
			return domain.Order{}, apperr.Invalid("status cannot be empty")
		}
		patch.Status = &status
	}
	if id <= 0 {
		return domain.Order{}, apperr.NotFound("Order with ID %d not found", id)
	}
	return s.repo.Update(ctx, id, patch, s.now().UTC())
}

func (s *Service) DeleteOrder(ctx context.Context, id int64) (bool, error) {
	if id <= 0 {
		return false, nil
	}
	return s.repo.Delete(ctx, id)
}
