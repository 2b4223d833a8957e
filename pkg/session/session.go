// Package session gives every storefront visitor a cookie-backed
// session. The ID keys the in-memory cart store; the data map (table
// claims, for now) lives in Redis when it is available.
package session

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/putrawardana/warungsaji/pkg/cache"
)

// Options configures the session cookie and lifetime.
type Options struct {
	CookieName string
	TTL        time.Duration
	HTTPOnly   bool
	Secure     bool
	SameSite   http.SameSite
	Path       string
}

// DefaultOptions suits development; the kernel flips Secure on in
// production and aligns TTL with the cart TTL.
func DefaultOptions() Options {
	return Options{
		CookieName: "warungsaji_session",
		TTL:        2 * time.Hour,
		HTTPOnly:   true,
		Secure:     false,
		SameSite:   http.SameSiteLaxMode,
		Path:       "/",
	}
}

type ctxKey struct{}

// Session is the per-request handle.
type Session struct {
	id      string
	data    map[string]interface{}
	opts    Options
	changed bool
}

func newID() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

func redisKey(id string) string { return "warungsaji:session:" + id }

func load(id string) map[string]interface{} {
	var data map[string]interface{}
	if cache.Get(redisKey(id), &data) {
		return data
	}
	return map[string]interface{}{}
}

// ID returns the session ID.
func (s *Session) ID() string { return s.id }

// Set stores a value. Call Save to persist.
func (s *Session) Set(key string, value interface{}) {
	s.data[key] = value
	s.changed = true
}

// Get reads a raw value.
func (s *Session) Get(key string) (interface{}, bool) {
	v, ok := s.data[key]
	return v, ok
}

// GetString reads a string value; false when absent or another type.
func (s *Session) GetString(key string) (string, bool) {
	v, ok := s.data[key]
	if !ok {
		return "", false
	}
	str, ok := v.(string)
	return str, ok
}

// Delete removes a key.
func (s *Session) Delete(key string) {
	delete(s.data, key)
	s.changed = true
}

// Save writes dirty session data to Redis and refreshes the cookie.
// A clean session is a no-op.
func (s *Session) Save(w http.ResponseWriter) error {
	if !s.changed {
		return nil
	}

	raw, err := json.Marshal(s.data)
	if err != nil {
		return fmt.Errorf("session: marshal: %w", err)
	}
	if err := cache.Set(redisKey(s.id), json.RawMessage(raw), s.opts.TTL); err != nil {
		return fmt.Errorf("session: store: %w", err)
	}

	http.SetCookie(w, s.cookie())
	s.changed = false
	return nil
}

func (s *Session) cookie() *http.Cookie {
	return &http.Cookie{
		Name:     s.opts.CookieName,
		Value:    s.id,
		Path:     s.opts.Path,
		MaxAge:   int(s.opts.TTL.Seconds()),
		HttpOnly: s.opts.HTTPOnly,
		Secure:   s.opts.Secure,
		SameSite: s.opts.SameSite,
	}
}

// Middleware attaches a session to every request. A first-time visitor
// gets the cookie immediately, before any handler runs, so the cart
// store sees a stable ID from the very first add-to-cart.
func Middleware(opts Options) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sess := &Session{opts: opts}

			if cookie, err := r.Cookie(opts.CookieName); err == nil && cookie.Value != "" {
				sess.id = cookie.Value
				sess.data = load(sess.id)
			} else {
				sess.id, _ = newID()
				sess.data = map[string]interface{}{}
				http.SetCookie(w, sess.cookie())
			}

			ctx := context.WithValue(r.Context(), ctxKey{}, sess)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// FromCtx returns the request's session. Outside the middleware it
// falls back to a throwaway session so callers never nil-check.
func FromCtx(r *http.Request) *Session {
	if s, ok := r.Context().Value(ctxKey{}).(*Session); ok {
		return s
	}
	id, _ := newID()
	return &Session{id: id, data: map[string]interface{}{}, opts: DefaultOptions()}
}
