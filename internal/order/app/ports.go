package app

import (
	"context"
	"time"

	"github.com/dwikikusuma/phone-shop/internal/order/domain"
)

type OrderRepo interface {
	CreateOrderTx(ctx context.Context, order domain.Order) (domain.Order, error)
	Get(ctx context.Context, id int64) (domain.Order, error)
	List(ctx context.Context) ([]domain.Order, error)
	Update(ctx context.Context, id int64, patch domain.OrderPatch, at time.Time) (domain.Order, error)
	Delete(ctx context.Context, id int64) (bool, error)
}

type CatalogReader interface {
	GetProduct(ctx context.Context, productID int64) (Product, error)
}

type Product struct {
	ID    int64
	Name  string
	Price float64
}

type UserReader interface {
	UserExists(ctx context.Context, userID int64) (bool, error)
}
