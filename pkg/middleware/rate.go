// Package middleware provides the HTTP middleware stack.
package middleware

import (
	"net/http"
	"sync"
	"time"
)

// bucket counts one client's requests within the current window.
type bucket struct {
	mu      sync.Mutex
	count   int
	resetAt time.Time
}

func (b *bucket) allow(max int, window time.Duration) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	now := time.Now()
	if now.After(b.resetAt) {
		b.count = 0
		b.resetAt = now.Add(window)
	}
	b.count++
	return b.count <= max
}

var (
	bucketsMu sync.Mutex
	buckets   = map[string]*bucket{}
)

// Stale buckets are evicted once a minute so idle client IPs do not
// accumulate forever.
func init() {
	go func() {
		ticker := time.NewTicker(time.Minute)
		defer ticker.Stop()
		for range ticker.C {
			now := time.Now()
			bucketsMu.Lock()
			for ip, b := range buckets {
				b.mu.Lock()
				stale := now.After(b.resetAt)
				b.mu.Unlock()
				if stale {
					delete(buckets, ip)
				}
			}
			bucketsMu.Unlock()
		}
	}()
}

func bucketFor(ip string) *bucket {
	bucketsMu.Lock()
	defer bucketsMu.Unlock()

	b, ok := buckets[ip]
	if !ok {
		b = &bucket{resetAt: time.Now().Add(time.Minute)}
		buckets[ip] = b
	}
	return b
}

// RateLimit caps each client IP at max requests per window, answering
// 429 past the cap. The forwarded-for header wins over RemoteAddr when
// a proxy sits in front.
func RateLimit(max int, window time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ip := r.RemoteAddr
			if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
				ip = fwd
			}

			if !bucketFor(ip).allow(max, window) {
				http.Error(w, `{"status":429,"message":"Too Many Requests"}`, http.StatusTooManyRequests)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
