package domain

import "time"

type Order struct {
	ID          int64
	UserID      int64
	Status      string
	TotalAmount float64
	Items       []OrderItem
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type OrderItem struct {
	ID        int64
	OrderID   int64
	ProductID int64
	Quantity  int
}

type CreateOrderRequest struct {
	UserID int64
	Items  []OrderItemRequest
}

type OrderItemRequest struct {
	ProductID int64
	Quantity  int
}

// OrderPatch carries the fields of a partial update. Nil fields are left unchanged.
type OrderPatch struct {
	Status *string
}

func (p OrderPatch) Apply(dst Order) Order {
	if p.Status != nil {
		dst.Status = *p.Status
	}
	return dst
}
