package rest

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/dwikikusuma/phone-shop/internal/order/app"
	"github.com/dwikikusuma/phone-shop/internal/order/domain"
	"github.com/dwikikusuma/phone-shop/internal/platform/httpx"
	"github.com/dwikikusuma/phone-shop/pkg/apperr"
	"github.com/go-chi/chi/v5"
)

type Handler struct {
	svc *app.Service
	log *slog.Logger
}

func NewHandler(svc *app.Service, log *slog.Logger) *Handler {
	return &Handler{svc: svc, log: log}
}

func (h *Handler) Register(r chi.Router) {
	r.Route("/orders", func(r chi.Router) {
		r.Get("/", h.list)
		r.Post("/", h.create)
		r.Get("/{id}", h.get)
		r.Put("/{id}", h.update)
		r.Delete("/{id}", h.delete)
	})
}

type orderItemJSON struct {
	ID        int64 `json:"id"`
	ProductID int64 `json:"product_id"`
	Quantity  int   `json:"quantity"`
}

type orderJSON struct {
	ID         int64           `json:"id"`
	UserID     int64           `json:"user_id"`
	Status     string          `json:"status"`
	TotalPrice float64         `json:"total_price"`
	Items      []orderItemJSON `json:"items"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
}

type createRequest struct {
	UserID *int64 `json:"user_id"`
	Items  []struct {
		ProductID int64 `json:"product_id"`
		Quantity  int   `json:"quantity"`
	} `json:"items"`
}

type updateRequest struct {
	Status *string `json:"status"`
}

type deleteResponse struct {
	Message string `json:"message"`
	OrderID int64  `json:"order_id"`
}

func toJSON(o domain.Order) orderJSON {
	items := make([]orderItemJSON, 0, len(o.Items))
	for _, it := range o.Items {
		items = append(items, orderItemJSON{ID: it.ID, ProductID: it.ProductID, Quantity: it.Quantity})
	}
	return orderJSON{
		ID:         o.ID,
		UserID:     o.UserID,
		Status:     o.Status,
		TotalPrice: o.TotalAmount,
		Items:      items,
		CreatedAt:  o.CreatedAt,
		UpdatedAt:  o.UpdatedAt,
	}
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	orders, err := h.svc.ListOrders(r.Context())
	if err != nil {
		httpx.WriteError(w, r, h.log, err)
		return
	}

	out := make([]orderJSON, 0, len(orders))
	for _, o := range orders {
		out = append(out, toJSON(o))
	}
	httpx.WriteJSON(w, http.StatusOK, out)
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id, err := httpx.PathID(r, "id")
	if err != nil {
		httpx.WriteError(w, r, h.log, err)
		return
	}

	o, err := h.svc.GetOrder(r.Context(), id)
	if err != nil {
		httpx.WriteError(w, r, h.log, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toJSON(o))
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req createRequest
	if err := httpx.Decode(r, &req); err != nil {
		httpx.WriteError(w, r, h.log, err)
		return
	}
	if req.UserID == nil {
		httpx.WriteError(w, r, h.log, apperr.Invalid("user_id is required"))
		return
	}

	in := domain.CreateOrderRequest{UserID: *req.UserID}
	for _, it := range req.Items {
		in.Items = append(in.Items, domain.OrderItemRequest{ProductID: it.ProductID, Quantity: it.Quantity})
	}

	o, err := h.svc.CreateOrder(r.Context(), in)
	if err != nil {
		httpx.WriteError(w, r, h.log, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, toJSON(o))
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	id, err := httpx.PathID(r, "id")
	if err != nil {
		httpx.WriteError(w, r, h.log, err)
		return
	}

	var req updateRequest
	if err := httpx.Decode(r, &req); err != nil {
		httpx.WriteError(w, r, h.log, err)
		return
	}

	o, err := h.svc.UpdateOrder(r.Context(), id, domain.OrderPatch{Status: req.Status})
	if err != nil {
		httpx.WriteError(w, r, h.log, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toJSON(o))
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	id, err := httpx.PathID(r, "id")
	if err != nil {
		httpx.WriteError(w, r, h.log, err)
		return
	}

	ok, err := h.svc.DeleteOrder(r.Context(), id)
	if err != nil {
		httpx.WriteError(w, r, h.log, err)
		return
	}
	if !ok {
		httpx.WriteError(w, r, h.log, apperr.NotFound("Order with ID %d not found", id))
		return
	}
	httpx.WriteJSON(w, http.StatusOK, deleteResponse{Message: "Order deleted successfully", OrderID: id})
}
