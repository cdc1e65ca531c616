// Package session reads the signed session cookie issued by the sessions API
// and exposes the logged-in user to view handlers.
package session

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrNoSession is returned when the request carries no session token at all.
var ErrNoSession = errors.New("no session")

type Config struct {
	Secret     string `mapstructure:"secret" validate:"required,min=16"`
	CookieName string `mapstructure:"cookie_name" validate:"required"`
	// TTL is the token lifetime in seconds.
	TTL int `mapstructure:"ttl" validate:"min=1"`
}

// User is the part of the account that views are allowed to see.
type User struct {
	Email  string
	Role   string
	CartID string
}

type Session struct {
	User User
}

// Claims is the token payload shared with the sessions API.
type Claims struct {
	Email  string `json:"email"`
	Role   string `json:"role"`
	CartID string `json:"cart_id,omitempty"`
	jwt.RegisteredClaims
}

type Manager struct {
	secret     []byte
	cookieName string
	ttl        time.Duration
	now        func() time.Time
}

func NewManager(cfg Config) (*Manager, error) {
	if len(cfg.Secret) == 0 {
		return nil, errors.New("session secret is required")
	}
	name := cfg.CookieName
	if name == "" {
		name = "sid"
	}
	return &Manager{
		secret:     []byte(cfg.Secret),
		cookieName: name,
		ttl:        time.Duration(cfg.TTL) * time.Second,
		now:        time.Now,
	}, nil
}

func (m *Manager) CookieName() string { return m.cookieName }

// Token signs a session token for u.
func (m *Manager) Token(u User) (string, error) {
	now := m.now()
	claims := Claims{
		Email:  u.Email,
		Role:   u.Role,
		CartID: u.CartID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   u.Email,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("sign session token: %w", err)
	}
	return signed, nil
}

// Cookie wraps a fresh token for u in the session cookie.
func (m *Manager) Cookie(u User) (*http.Cookie, error) {
	token, err := m.Token(u)
	if err != nil {
		return nil, err
	}
	return &http.Cookie{
		Name:     m.cookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(m.ttl / time.Second),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}, nil
}

// Parse validates a token and returns the session it carries.
func (m *Manager) Parse(token string) (*Session, error) {
	tok, err := jwt.ParseWithClaims(token, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return m.secret, nil
	}, jwt.WithTimeFunc(m.now))
	if err != nil {
		return nil, fmt.Errorf("parse session token: %w", err)
	}
	claims, ok := tok.Claims.(*Claims)
	if !ok || !tok.Valid {
		return nil, errors.New("invalid session token")
	}
	if claims.Email == "" {
		return nil, errors.New("session token has no email")
	}
	return &Session{User: User{Email: claims.Email, Role: claims.Role, CartID: claims.CartID}}, nil
}

// FromRequest reads the session cookie, falling back to a Bearer token.
func (m *Manager) FromRequest(r *http.Request) (*Session, error) {
	token := ""
	if c, err := r.Cookie(m.cookieName); err == nil {
		token = c.Value
	}
	if token == "" {
		token = bearerToken(r)
	}
	if token == "" {
		return nil, ErrNoSession
	}
	return m.Parse(token)
}

func bearerToken(r *http.Request) string {
	h := r.Header.Get("Authorization")
	if h == "" {
		return ""
	}
	parts := strings.SplitN(h, " ", 2)
	if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
		return parts[1]
	}
	return ""
}

type ctxKey struct{}

func WithSession(ctx context.Context, s *Session) context.Context {
	return context.WithValue(ctx, ctxKey{}, s)
}

// FromContext returns the session attached by the HTTP middleware, if any.
func FromContext(ctx context.Context) (*Session, bool) {
	s, ok := ctx.Value(ctxKey{}).(*Session)
	return s, ok && s != nil
}
