package rest

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/dwikikusuma/phone-shop/internal/cart/app"
	"github.com/dwikikusuma/phone-shop/internal/session"
	"github.com/dwikikusuma/phone-shop/pkg/apperr"
	"github.com/dwikikusuma/phone-shop/pkg/logger"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type pricer map[int64]float64

func (p pricer) UnitPrice(ctx context.Context, id int64) (float64, error) {
	v, ok := p[id]
	if !ok {
		return 0, apperr.NotFound("Product with ID %d not found", id)
	}
	return v, nil
}

func newRouter(t *testing.T) http.Handler {
	t.Helper()
	svc := app.NewService(pricer{1: 999.99, 2: 10}, time.Hour)
	r := chi.NewRouter()
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			next.ServeHTTP(w, r.WithContext(session.WithID(r.Context(), "sess-1")))
		})
	})
	NewHandler(svc, logger.Discard()).Register(r)
	return r
}

func do(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func TestCartFlow(t *testing.T) {
	h := newRouter(t)

	rec := do(t, h, http.MethodPost, "/cart", `{"product_id":1,"quantity":2}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, addResponse{Message: "Product added to cart", CartID: "sess-1"}, decode[addResponse](t, rec))

	rec = do(t, h, http.MethodGet, "/cart", "")
	require.Equal(t, http.StatusOK, rec.Code)
	lines := decode[[]lineJSON](t, rec)
	require.Len(t, lines, 1)
	assert.Equal(t, lineJSON{ID: "1", ProductID: 1, Quantity: 2, Price: 999.99}, lines[0])

	rec = do(t, h, http.MethodPut, "/cart/1", `{"items":[{"product_id":1,"quantity":3}]}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "Cart item updated", decode[messageResponse](t, rec).Message)
	assert.Equal(t, 3, decode[[]lineJSON](t, do(t, h, http.MethodGet, "/cart", ""))[0].Quantity)

	rec = do(t, h, http.MethodGet, "/cart/total", "")
	assert.InDelta(t, 2999.97, decode[totalResponse](t, rec).Total, 1e-9)

	rec = do(t, h, http.MethodDelete, "/cart/1", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Product removed from cart", decode[messageResponse](t, rec).Message)
	assert.Empty(t, decode[[]lineJSON](t, do(t, h, http.MethodGet, "/cart", "")))
}

func TestCartErrors(t *testing.T) {
	h := newRouter(t)

	tests := []struct {
		name, method, path, body string
		status                   int
		code                     string
	}{
		{"malformed body", http.MethodPost, "/cart", `{"product_id":`, http.StatusBadRequest, "INVALID_ARGUMENT"},
		{"missing quantity", http.MethodPost, "/cart", `{"product_id":1}`, http.StatusBadRequest, "INVALID_ARGUMENT"},
		{"zero quantity", http.MethodPost, "/cart", `{"product_id":1,"quantity":0}`, http.StatusBadRequest, "INVALID_ARGUMENT"},
		{"unknown product", http.MethodPost, "/cart", `{"product_id":9,"quantity":1}`, http.StatusNotFound, "NOT_FOUND"},
		{"update missing line", http.MethodPut, "/cart/5", `{"quantity":2}`, http.StatusNotFound, "NOT_FOUND"},
		{"update without quantity", http.MethodPut, "/cart/1", `{}`, http.StatusBadRequest, "INVALID_ARGUMENT"},
		{"update item without quantity", http.MethodPut, "/cart/1", `{"items":[{"product_id":1}]}`, http.StatusBadRequest, "INVALID_ARGUMENT"},
		{"oversized quantity", http.MethodPost, "/cart", `{"product_id":1,"quantity":9223372036854775807}`, http.StatusBadRequest, "INVALID_ARGUMENT"},
		{"remove missing line", http.MethodDelete, "/cart/5", "", http.StatusNotFound, "NOT_FOUND"},
		{"non integer id", http.MethodDelete, "/cart/abc", "", http.StatusBadRequest, "INVALID_ARGUMENT"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, h, tt.method, tt.path, tt.body)
			assert.Equal(t, tt.status, rec.Code, rec.Body.String())
			body := decode[map[string]string](t, rec)
			assert.Equal(t, tt.code, body["code"])
			assert.NotEmpty(t, body["detail"])
		})
	}
}

func TestCartUpdateToZeroRemoves(t *testing.T) {
	h := newRouter(t)
	require.Equal(t, http.StatusOK, do(t, h, http.MethodPost, "/cart", `{"product_id":2,"quantity":1}`).Code)

	rec := do(t, h, http.MethodPut, "/cart/2", `{"quantity":0}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, decode[[]lineJSON](t, do(t, h, http.MethodGet, "/cart", "")))

	rec = do(t, h, http.MethodDelete, "/cart", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Cart cleared", decode[messageResponse](t, rec).Message)
	assert.Zero(t, decode[totalResponse](t, do(t, h, http.MethodGet, "/cart/total", "")).Total)
}

func TestCartUpdateItemWithoutQuantityKeepsLine(t *testing.T) {
	h := newRouter(t)
	require.Equal(t, http.StatusOK, do(t, h, http.MethodPost, "/cart", `{"product_id":1,"quantity":2}`).Code)

	rec := do(t, h, http.MethodPut, "/cart/1", `{"items":[{}]}`)
	require.Equal(t, http.StatusBadRequest, rec.Code, rec.Body.String())

	lines := decode[[]lineJSON](t, do(t, h, http.MethodGet, "/cart", ""))
	require.Len(t, lines, 1)
	assert.Equal(t, 2, lines[0].Quantity)
}
