package rest

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/dwikikusuma/phone-shop/internal/chatbot/app"
	"github.com/dwikikusuma/phone-shop/internal/platform/httpx"
	"github.com/dwikikusuma/phone-shop/internal/session"
	"github.com/dwikikusuma/phone-shop/pkg/apperr"
	"github.com/go-chi/chi/v5"
)

type Handler struct {
	svc     *app.Service
	limiter *Limiter
	log     *slog.Logger
}

// NewHandler builds the chat routes. A nil limiter disables rate limiting.
func NewHandler(svc *app.Service, limiter *Limiter, log *slog.Logger) *Handler {
	return &Handler{svc: svc, limiter: limiter, log: log}
}

// Register mounts /chat and /chatbot/*. They expect session.Manager.Middleware upstream.
func (h *Handler) Register(r chi.Router) {
	r.With(h.rateLimit).Post("/chat", h.chat)
	r.Route("/chatbot", func(r chi.Router) {
		r.With(h.rateLimit).Post("/chat", h.chatbotChat)
		r.Get("/history", h.history)
		r.Delete("/history", h.clearHistory)
	})
}

type chatRequest struct {
	Message string  `json:"message"`
	UserID  *string `json:"user_id"`
}

type chatResponse struct {
	Response string `json:"response"`
	Success  bool   `json:"success"`
}

type chatbotRequest struct {
	UserMessage string `json:"user_message"`
}

type chatbotResponse struct {
	BotResponse string `json:"bot_response"`
}

type entryJSON struct {
	Role    string    `json:"role"`
	UserID  string    `json:"user_id,omitempty"`
	Message string    `json:"message"`
	At      time.Time `json:"at"`
}

type historyResponse struct {
	Model   string      `json:"model"`
	Entries []entryJSON `json:"entries"`
}

type messageResponse struct {
	Message string `json:"message"`
}

func sessionID(r *http.Request) (string, error) {
	id, ok := session.ID(r.Context())
	if !ok {
		return "", apperr.Internal(errors.New("request carries no session"), "resolving session")
	}
	return id, nil
}

func (h *Handler) rateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if h.limiter == nil {
			next.ServeHTTP(w, r)
			return
		}
		key, ok := session.ID(r.Context())
		if !ok {
			key = r.RemoteAddr
		}
		if !h.limiter.Allow(key) {
			w.Header().Set("Retry-After", "1")
			httpx.WriteStatus(w, http.StatusTooManyRequests, "RATE_LIMITED", "Too many chat messages, slow down.")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (h *Handler) chat(w http.ResponseWriter, r *http.Request) {
	sid, err := sessionID(r)
	if err != nil {
		httpx.WriteError(w, r, h.log, err)
		return
	}

	var req chatRequest
	if err := httpx.Decode(r, &req); err != nil {
		httpx.WriteError(w, r, h.log, err)
		return
	}
	userID := ""
	if req.UserID != nil {
		userID = *req.UserID
	}

	reply, err := h.svc.Chat(r.Context(), sid, userID, req.Message)
	if err != nil {
		httpx.WriteError(w, r, h.log, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, chatResponse{Response: reply, Success: true})
}

func (h *Handler) chatbotChat(w http.ResponseWriter, r *http.Request) {
	sid, err := sessionID(r)
	if err != nil {
		httpx.WriteError(w, r, h.log, err)
		return
	}

	var req chatbotRequest
	if err := httpx.Decode(r, &req); err != nil {
		httpx.WriteError(w, r, h.log, err)
		return
	}
	if strings.TrimSpace(req.UserMessage) == "" {
		httpx.WriteError(w, r, h.log, apperr.Invalid("Message cannot be empty"))
		return
	}

	reply, err := h.svc.Chat(r.Context(), sid, "", req.UserMessage)
	if err != nil {
		httpx.WriteError(w, r, h.log, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, chatbotResponse{BotResponse: reply})
}

func (h *Handler) history(w http.ResponseWriter, r *http.Request) {
	sid, err := sessionID(r)
	if err != nil {
		httpx.WriteError(w, r, h.log, err)
		return
	}

	entries := h.svc.History(sid)
	out := historyResponse{Model: h.svc.Model(), Entries: make([]entryJSON, 0, len(entries))}
	for _, e := range entries {
		out.Entries = append(out.Entries, entryJSON{Role: e.Role, UserID: e.UserID, Message: e.Message, At: e.At})
	}
	httpx.WriteJSON(w, http.StatusOK, out)
}

func (h *Handler) clearHistory(w http.ResponseWriter, r *http.Request) {
	sid, err := sessionID(r)
	if err != nil {
		httpx.WriteError(w, r, h.log, err)
		return
	}

	h.svc.ClearHistory(sid)
	httpx.WriteJSON(w, http.StatusOK, messageResponse{Message: "Chat history cleared"})
}
