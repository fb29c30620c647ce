package rest

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/dwikikusuma/phone-shop/internal/checkout/app"
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

// Register mounts the checkout routes. They expect session.Manager.Middleware upstream.
func (h *Handler) Register(r chi.Router) {
	r.Route("/checkout", func(r chi.Router) {
		r.Get("/quote", h.quote)
		r.Post("/", h.checkout)
	})
}

type quoteLineJSON struct {
	ProductID int64   `json:"product_id"`
	Name      string  `json:"name"`
	Quantity  int     `json:"quantity"`
	CartPrice float64 `json:"cart_price"`
	UnitPrice float64 `json:"unit_price"`
	LineTotal float64 `json:"line_total"`
	Repriced  bool    `json:"repriced"`
}

type quoteResponse struct {
	Lines []quoteLineJSON `json:"lines"`
	Total float64         `json:"total"`
}

type checkoutRequest struct {
	UserID *int64 `json:"user_id"`
}

type checkoutItemJSON struct {
	ProductID int64 `json:"product_id"`
	Quantity  int   `json:"quantity"`
}

type checkoutResponse struct {
	Message    string             `json:"message"`
	OrderID    int64              `json:"order_id"`
	Status     string             `json:"status"`
	TotalPrice float64            `json:"total_price"`
	Items      []checkoutItemJSON `json:"items"`
}

func sessionID(r *http.Request) (string, error) {
	id, ok := session.ID(r.Context())
	if !ok {
		return "", apperr.Internal(errors.New("request carries no session"), "resolving session")
	}
	return id, nil
}

func (h *Handler) quote(w http.ResponseWriter, r *http.Request) {
	sid, err := sessionID(r)
	if err != nil {
		httpx.WriteError(w, r, h.log, err)
		return
	}

	q, err := h.svc.Quote(r.Context(), sid)
	if err != nil {
		httpx.WriteError(w, r, h.log, err)
		return
	}

	out := quoteResponse{Lines: make([]quoteLineJSON, 0, len(q.Lines)), Total: q.Total}
	for _, ln := range q.Lines {
		out.Lines = append(out.Lines, quoteLineJSON{
			ProductID: ln.ProductID,
			Name:      ln.Name,
			Quantity:  ln.Quantity,
			CartPrice: ln.CartPrice,
			UnitPrice: ln.UnitPrice,
			LineTotal: ln.LineTotal,
			Repriced:  ln.Repriced(),
		})
	}
	httpx.WriteJSON(w, http.StatusOK, out)
}

func (h *Handler) checkout(w http.ResponseWriter, r *http.Request) {
	sid, err := sessionID(r)
	if err != nil {
		httpx.WriteError(w, r, h.log, err)
		return
	}

	var req checkoutRequest
	if err := httpx.Decode(r, &req); err != nil {
		httpx.WriteError(w, r, h.log, err)
		return
	}
	if req.UserID == nil {
		httpx.WriteError(w, r, h.log, apperr.Invalid("user_id is required"))
		return
	}

	rc, err := h.svc.Checkout(r.Context(), sid, *req.UserID)
	if err != nil {
		httpx.WriteError(w, r, h.log, err)
		return
	}

	out := checkoutResponse{
		Message:    "Order placed",
		OrderID:    rc.OrderID,
		Status:     rc.Status,
		TotalPrice: rc.Total,
		Items:      make([]checkoutItemJSON, 0, len(rc.Items)),
	}
	for _, it := range rc.Items {
		out.Items = append(out.Items, checkoutItemJSON{ProductID: it.ProductID, Quantity: it.Quantity})
	}

	h.log.InfoContext(r.Context(), "order placed from cart", "order_id", rc.OrderID, "items", len(rc.Items))
	httpx.WriteJSON(w, http.StatusCreated, out)
}
