package rest

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/dwikikusuma/phone-shop/internal/cart/app"
	"github.com/dwikikusuma/phone-shop/internal/cart/domain"
	"github.com/dwikikusuma/phone-shop/internal/platform/httpx"
	"github.com/dwikikusuma/phone-shop/internal/session"
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

// Register mounts the cart routes. They expect session.Manager.Middleware upstream.
func (h *Handler) Register(r chi.Router) {
	r.Route("/cart", func(r chi.Router) {
		r.Get("/", h.list)
		r.Post("/", h.add)
		r.Delete("/", h.clear)
		r.Get("/total", h.total)
		r.Put("/{id}", h.update)
		r.Delete("/{id}", h.remove)
	})
}

type lineJSON struct {
	ID        string  `json:"id"`
	ProductID int64   `json:"product_id"`
	Quantity  int     `json:"quantity"`
	Price     float64 `json:"price"`
}

type addRequest struct {
	ProductID *int64 `json:"product_id"`
	Quantity  *int   `json:"quantity"`
}

type addResponse struct {
	Message string `json:"message"`
	CartID  string `json:"cart_id"`
}

type updateRequest struct {
	Items []struct {
		ProductID *int64 `json:"product_id"`
		Quantity  *int   `json:"quantity"`
	} `json:"items"`
	Quantity *int `json:"quantity"`
}

type messageResponse struct {
	Message string `json:"message"`
}

type totalResponse struct {
	Total float64 `json:"total"`
}

func sessionID(r *http.Request) (string, error) {
	id, ok := session.ID(r.Context())
	if !ok {
		return "", apperr.Internal(errors.New("request carries no session"), "resolving session")
	}
	return id, nil
}

func toJSON(l domain.CartLine) lineJSON {
	return lineJSON{
		ID:        l.ItemID,
		ProductID: l.ProductID,
		Quantity:  l.Quantity,
		Price:     l.UnitPrice,
	}
}

func (h *Handler) add(w http.ResponseWriter, r *http.Request) {
	sid, err := sessionID(r)
	if err != nil {
		httpx.WriteError(w, r, h.log, err)
		return
	}

	var req addRequest
	if err := httpx.Decode(r, &req); err != nil {
		httpx.WriteError(w, r, h.log, err)
		return
	}
	if req.ProductID == nil || req.Quantity == nil {
		httpx.WriteError(w, r, h.log, apperr.Invalid("product_id and quantity are required"))
		return
	}

	if _, err := h.svc.AddItem(r.Context(), sid, *req.ProductID, *req.Quantity); err != nil {
		httpx.WriteError(w, r, h.log, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, addResponse{Message: "Product added to cart", CartID: sid})
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	sid, err := sessionID(r)
	if err != nil {
		httpx.WriteError(w, r, h.log, err)
		return
	}

	lines := h.svc.Items(sid)
	out := make([]lineJSON, 0, len(lines))
	for _, l := range lines {
		out = append(out, toJSON(l))
	}
	httpx.WriteJSON(w, http.StatusOK, out)
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	sid, err := sessionID(r)
	if err != nil {
		httpx.WriteError(w, r, h.log, err)
		return
	}
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

	var quantity int
	switch {
	case len(req.Items) > 0:
		if req.Items[0].Quantity == nil {
			httpx.WriteError(w, r, h.log, apperr.Invalid("items[0].quantity is required"))
			return
		}
		quantity = *req.Items[0].Quantity
	case req.Quantity != nil:
		quantity = *req.Quantity
	default:
		httpx.WriteError(w, r, h.log, apperr.Invalid("quantity is required"))
		return
	}

	if !h.svc.UpdateQuantity(sid, app.ItemID(id), quantity) {
		httpx.WriteError(w, r, h.log, apperr.NotFound("Item not found in cart"))
		return
	}
	httpx.WriteJSON(w, http.StatusOK, messageResponse{Message: "Cart item updated"})
}

func (h *Handler) remove(w http.ResponseWriter, r *http.Request) {
	sid, err := sessionID(r)
	if err != nil {
		httpx.WriteError(w, r, h.log, err)
		return
	}
	id, err := httpx.PathID(r, "id")
	if err != nil {
		httpx.WriteError(w, r, h.log, err)
		return
	}

	if !h.svc.RemoveItem(sid, app.ItemID(id)) {
		httpx.WriteError(w, r, h.log, apperr.NotFound("Item not found in cart"))
		return
	}
	httpx.WriteJSON(w, http.StatusOK, messageResponse{Message: "Product removed from cart"})
}

func (h *Handler) clear(w http.ResponseWriter, r *http.Request) {
	sid, err := sessionID(r)
	if err != nil {
		httpx.WriteError(w, r, h.log, err)
		return
	}

	h.svc.Clear(sid)
	httpx.WriteJSON(w, http.StatusOK, messageResponse{Message: "Cart cleared"})
}

func (h *Handler) total(w http.ResponseWriter, r *http.Request) {
	sid, err := sessionID(r)
	if err != nil {
		httpx.WriteError(w, r, h.log, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, totalResponse{Total: h.svc.Total(sid)})
}
