// Package session keeps per-visitor cart state behind an opaque cookie. The
// cart lives only as long as the session: there is no durable order or cart
// record, and an expired cookie starts over empty.
package session

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/senalmaq/storefront/internal/cart"
)

const (
	cookieName = "senalmaq_session"
	ttl        = 72 * time.Hour
)

// Data is what a visitor session carries: the cart lines in insertion order.
type Data struct {
	Lines     []cart.Line `json:"lines"`
	CreatedAt int64       `json:"created_at"`
}

// Cart rebuilds the aggregate from the stored lines.
func (d *Data) Cart() *cart.Cart {
	if d == nil {
		return cart.New()
	}
	return cart.FromLines(d.Lines)
}

// Store is the session storage backend.
type Store interface {
	Get(ctx context.Context, key string) (*Data, bool)
	Set(ctx context.Context, key string, data *Data, ttl time.Duration)
	Delete(ctx context.Context, key string)
	Close() error
}

// Manager hands out session cookies and mediates store access.
type Manager struct {
	store  Store
	secure bool
}

func NewManager(store Store, secure bool) *Manager {
	return &Manager{store: store, secure: secure}
}

func (m *Manager) Close() error {
	if m == nil || m.store == nil {
		return nil
	}
	return m.store.Close()
}

// Ensure returns the visitor's session, creating one (and setting the
// cookie) when the request carries none or the stored session expired.
func (m *Manager) Ensure(ctx context.Context, w http.ResponseWriter, r *http.Request) (string, *Data, error) {
	if ctx == nil {
		ctx = r.Context()
	}

	if cookie, err := r.Cookie(cookieName); err == nil {
		if data, ok := m.store.Get(ctx, cookie.Value); ok {
			return cookie.Value, data, nil
		}
	}

	sessionID := uuid.NewString()
	data := &Data{CreatedAt: time.Now().Unix()}
	m.store.Set(ctx, sessionID, data, ttl)

	http.SetCookie(w, &http.Cookie{
		Name:     cookieName,
		Value:    sessionID,
		Path:     "/",
		MaxAge:   int(ttl.Seconds()),
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteLaxMode,
	})

	return sessionID, data, nil
}

// Peek returns the session for the request without creating one.
func (m *Manager) Peek(ctx context.Context, r *http.Request) (string, *Data, error) {
	cookie, err := r.Cookie(cookieName)
	if err != nil {
		return "", nil, fmt.Errorf("no session cookie found: %w", err)
	}

	if ctx == nil {
		ctx = r.Context()
	}

	data, ok := m.store.Get(ctx, cookie.Value)
	if !ok {
		return "", nil, fmt.Errorf("session not found or expired")
	}

	return cookie.Value, data, nil
}

// Save writes the session data back under its id, refreshing the TTL.
func (m *Manager) Save(ctx context.Context, sessionID string, data *Data) error {
	if sessionID == "" {
		return fmt.Errorf("session id is required")
	}
	if data == nil {
		return fmt.Errorf("session data is required")
	}
	m.store.Set(ctx, sessionID, data, ttl)
	return nil
}

// Destroy drops the session and clears the cookie.
func (m *Manager) Destroy(ctx context.Context, w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(cookieName); err == nil {
		if ctx == nil {
			ctx = r.Context()
		}
		m.store.Delete(ctx, cookie.Value)
	}

	http.SetCookie(w, &http.Cookie{
		Name:     cookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteLaxMode,
	})
}

func cloneData(data *Data) *Data {
	if data == nil {
		return nil
	}
	cloned := *data
	cloned.Lines = make([]cart.Line, len(data.Lines))
	copy(cloned.Lines, data.Lines)
	return &cloned
}
