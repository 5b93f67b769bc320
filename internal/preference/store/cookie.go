package store

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"atelier/pkg/platform/sentinel"
)

// Cookie persists values as cookies on the visitor's browser. It is bound to one
// request/response pair; writes are remembered so later reads in the same request
// observe them, the way a browser's storage would.
type Cookie struct {
	mu      sync.Mutex
	r       *http.Request
	w       http.ResponseWriter
	maxAge  time.Duration
	secure  bool
	overlay map[string]*string
}

// CookieOption configures a Cookie store.
type CookieOption func(*Cookie)

func WithMaxAge(d time.Duration) CookieOption {
	return func(c *Cookie) {
		c.maxAge = d
	}
}

func WithSecure(secure bool) CookieOption {
	return func(c *Cookie) {
		c.secure = secure
	}
}

func NewCookie(w http.ResponseWriter, r *http.Request, opts ...CookieOption) *Cookie {
	c := &Cookie{
		r:       r,
		w:       w,
		maxAge:  365 * 24 * time.Hour,
		overlay: make(map[string]*string),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}
	return c
}

func (c *Cookie) Get(_ context.Context, key string) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if v, ok := c.overlay[key]; ok {
		if v == nil {
			return "", sentinel.ErrNotFound
		}
		return *v, nil
	}
	ck, err := c.r.Cookie(key)
	if errors.Is(err, http.ErrNoCookie) {
		return "", sentinel.ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("read cookie %s: %w", key, err)
	}
	return ck.Value, nil
}

// Set writes a non-HttpOnly cookie. The preference is not sensitive and page script
// may read it.
func (c *Cookie) Set(_ context.Context, key, value string) error {
	ck := &http.Cookie{
		Name:     key,
		Value:    value,
		Path:     "/",
		MaxAge:   int(c.maxAge.Seconds()),
		SameSite: http.SameSiteLaxMode,
		Secure:   c.secure,
	}
	if err := ck.Valid(); err != nil {
		return fmt.Errorf("%w: cookie %s: %v", sentinel.ErrInvalidValue, key, err)
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	http.SetCookie(c.w, ck)
	c.overlay[key] = &value
	return nil
}

func (c *Cookie) Remove(_ context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	http.SetCookie(c.w, &http.Cookie{
		Name:     key,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		SameSite: http.SameSiteLaxMode,
		Secure:   c.secure,
	})
	c.overlay[key] = nil
	return nil
}
