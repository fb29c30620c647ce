// Package httpx holds the JSON request/response helpers shared by every REST handler.
package httpx

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/dwikikusuma/phone-shop/pkg/apperr"
	"github.com/go-chi/chi/v5"
)

const maxBodyBytes = 1 << 20

type ErrorBody struct {
	Detail string `json:"detail"`
	Code   string `json:"code"`
}

func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("write json response", slog.Any("err", err))
	}
}

// StatusFromError maps the apperr taxonomy onto an HTTP status, a stable code and a public message.
func StatusFromError(err error) (int, string, string) {
	if errors.Is(err, context.DeadlineExceeded) {
		return http.StatusServiceUnavailable, "UNAVAILABLE", "The request timed out, try again"
	}

	msg := apperr.PublicMessage(err)
	switch apperr.Kind(err) {
	case apperr.ErrNotFound:
		return http.StatusNotFound, "NOT_FOUND", msg
	case apperr.ErrInvalidArgument:
		return http.StatusBadRequest, "INVALID_ARGUMENT", msg
	case apperr.ErrStoreFailure:
		return http.StatusInternalServerError, "STORE_FAILURE", msg
	default:
		return http.StatusInternalServerError, "INTERNAL", msg
	}
}

func WriteError(w http.ResponseWriter, r *http.Request, log *slog.Logger, err error) {
	status, code, msg := StatusFromError(err)
	if status >= http.StatusInternalServerError && log != nil {
		log.ErrorContext(r.Context(), "request failed",
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.String("code", code),
			slog.Any("err", err),
		)
	}
	WriteJSON(w, status, ErrorBody{Detail: msg, Code: code})
}

// WriteStatus writes an error body for failures that never went through a service,
// such as rate limiting.
func WriteStatus(w http.ResponseWriter, status int, code, detail string) {
	WriteJSON(w, status, ErrorBody{Detail: detail, Code: code})
}

// Decode reads a single JSON object into dst. Unknown fields, trailing data and
// oversized bodies are rejected as invalid arguments.
func Decode(r *http.Request, dst any) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()

	if err := dec.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return apperr.Invalid("request body is required")
		}
		var syntaxErr *json.SyntaxError
		var typeErr *json.UnmarshalTypeError
		switch {
		case errors.As(err, &syntaxErr):
			return apperr.Invalid("malformed JSON at offset %d", syntaxErr.Offset)
		case errors.As(err, &typeErr):
			return apperr.Invalid("field %q must be %s", typeErr.Field, typeErr.Type.String())
		case strings.HasPrefix(err.Error(), "json: unknown field "):
			return apperr.Invalid("unknown field %s", strings.TrimPrefix(err.Error(), "json: unknown field "))
		default:
			return apperr.Invalid("malformed request body")
		}
	}
	if dec.More() {
		return apperr.Invalid("request body must contain a single JSON object")
	}
	return nil
}

// PathID parses the named chi URL parameter as a positive integer.
func PathID(r *http.Request, name string) (int64, error) {
	raw := chi.URLParam(r, name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, apperr.Invalid("%s must be an integer, got %q", name, raw)
	}
	return id, nil
}
