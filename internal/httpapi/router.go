// Package httpapi assembles the public JSON/HTTP surface.
package httpapi

import (
	"log/slog"
	"net/http"

	"github.com/dwikikusuma/phone-shop/internal/platform/httpx"
	"github.com/dwikikusuma/phone-shop/internal/session"
	"github.com/dwikikusuma/phone-shop/pkg/telemetry"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Registrar mounts a bounded context's routes.
type Registrar interface {
	Register(r chi.Router)
}

type Options struct {
	ServiceName string
	Log         *slog.Logger
	Sessions    *session.Manager

	// Stateless routes under /api.
	Resources []Registrar
	// Routes under /api that need a session id on the request context.
	SessionScoped []Registrar
}

type statusResponse struct {
	Status string `json:"status"`
}

type messageResponse struct {
	Message string `json:"message"`
}

func NewRouter(opts Options) http.Handler {
	log := opts.Log
	if log == nil {
		log = slog.Default()
	}
	if opts.ServiceName == "" {
		opts.ServiceName = "phone-shop"
	}

	r := chi.NewRouter()
	r.Use(
		middleware.StripSlashes,
		middleware.RequestID,
		middleware.RealIP,
		telemetry.Middleware(opts.ServiceName, "/health", "/api/health"),
		accessLog(log),
		recoverJSON(log),
		cors,
	)

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		httpx.WriteStatus(w, http.StatusNotFound, "NOT_FOUND", "Not Found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		httpx.WriteStatus(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "Method Not Allowed")
	})

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		httpx.WriteJSON(w, http.StatusOK, messageResponse{Message: "Welcome to the Phone E-commerce API"})
	})
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		httpx.WriteJSON(w, http.StatusOK, statusResponse{Status: "healthy"})
	})

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
			httpx.WriteJSON(w, http.StatusOK, statusResponse{Status: "ok"})
		})

		for _, reg := range opts.Resources {
			reg.Register(r)
		}

		r.Group(func(r chi.Router) {
			if opts.Sessions != nil {
				r.Use(opts.Sessions.Middleware)
			}
			for _, reg := range opts.SessionScoped {
				reg.Register(r)
			}
		})
	})

	return r
}
