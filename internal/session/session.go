// Package session gives every HTTP client a stable anonymous session id carried
// in a signed token, so carts and chat transcripts are scoped per shopper.
package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/dwikikusuma/phone-shop/internal/platform/httpx"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	CookieName  = "session"
	TokenHeader = "X-Session-Token"
	issuer      = "phone-shop"
)

var ErrInvalidToken = errors.New("invalid session token")

type ctxKey struct{}

func WithID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, ctxKey{}, id)
}

// ID returns the session id placed on ctx by Manager.Middleware.
func ID(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(ctxKey{}).(string)
	return id, ok && id != ""
}

type Manager struct {
	key    []byte
	ttl    time.Duration
	secure bool
	log    *slog.Logger
	now    func() time.Time
}

type Options struct {
	Secret string
	TTL    time.Duration
	// Secure marks the cookie Secure; set outside local development.
	Secure bool
	Log    *slog.Logger
}

func NewManager(opts Options) (*Manager, error) {
	if opts.Secret == "" {
		return nil, errors.New("session secret is required")
	}
	if opts.TTL <= 0 {
		opts.TTL = 24 * time.Hour
	}
	if opts.Log == nil {
		opts.Log = slog.Default()
	}
	return &Manager{
		key:    []byte(opts.Secret),
		ttl:    opts.TTL,
		secure: opts.Secure,
		log:    opts.Log,
		now:    time.Now,
	}, nil
}

// Issue signs a token for the session id.
func (m *Manager) Issue(id string) (string, error) {
	now := m.now().UTC()
	claims := jwt.RegisteredClaims{
		Subject:   id,
		Issuer:    issuer,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.key)
	if err != nil {
		return "", fmt.Errorf("sign session token: %w", err)
	}
	return token, nil
}

// Parse verifies a token and returns its session id.
func (m *Manager) Parse(token string) (string, error) {
	id, _, err := m.parse(token)
	return id, err
}

func (m *Manager) parse(token string) (string, time.Time, error) {
	claims := &jwt.RegisteredClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (any, error) {
		return m.key, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(issuer),
		jwt.WithExpirationRequired(),
		jwt.WithIssuedAt(),
		jwt.WithTimeFunc(m.now),
	)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if !parsed.Valid {
		return "", time.Time{}, ErrInvalidToken
	}
	if _, err := uuid.Parse(claims.Subject); err != nil {
		return "", time.Time{}, fmt.Errorf("%w: subject is not a session id", ErrInvalidToken)
	}
	if claims.IssuedAt == nil {
		return "", time.Time{}, fmt.Errorf("%w: missing iat", ErrInvalidToken)
	}
	return claims.Subject, claims.IssuedAt.Time, nil
}

func tokenFrom(r *http.Request) string {
	if c, err := r.Cookie(CookieName); err == nil && c.Value != "" {
		return c.Value
	}
	if h := r.Header.Get("Authorization"); h != "" {
		if token, ok := strings.CutPrefix(h, "Bearer "); ok {
			return strings.TrimSpace(token)
		}
	}
	return ""
}

// Middleware resolves the request's session, minting a new one when the
// carried token is missing, expired or tampered with. A valid token past half
// its lifetime is re-signed for the same session, so the TTL counts idle time.
func (m *Manager) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if token := tokenFrom(r); token != "" {
			id, issuedAt, err := m.parse(token)
			if err == nil {
				if m.now().Sub(issuedAt) > m.ttl/2 && !m.attach(w, r, id) {
					return
				}
				next.ServeHTTP(w, r.WithContext(WithID(r.Context(), id)))
				return
			}
			m.log.DebugContext(r.Context(), "discarding session token", slog.Any("err", err))
		}

		id := uuid.NewString()
		if !m.attach(w, r, id) {
			return
		}
		next.ServeHTTP(w, r.WithContext(WithID(r.Context(), id)))
	})
}

// attach signs a token for id and sets it on the response. On failure it
// writes a 500 and reports false.
func (m *Manager) attach(w http.ResponseWriter, r *http.Request, id string) bool {
	token, err := m.Issue(id)
	if err != nil {
		m.log.ErrorContext(r.Context(), "issue session", slog.Any("err", err))
		httpx.WriteStatus(w, http.StatusInternalServerError, "INTERNAL", "An internal server error occurred")
		return false
	}

	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(m.ttl / time.Second),
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteLaxMode,
	})
	w.Header().Set(TokenHeader, token)
	return true
}
