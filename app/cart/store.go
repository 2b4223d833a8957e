package cart

import (
	"sync"
	"time"
)

// Store maps session IDs to carts. Lookups create the cart on demand;
// a scheduled task calls PurgeExpired to drop carts idle longer than
// the TTL.
type Store struct {
	mu    sync.RWMutex
	carts map[string]*Cart
	ttl   time.Duration
}

// NewStore creates a Store whose carts expire after ttl of inactivity.
func NewStore(ttl time.Duration) *Store {
	if ttl <= 0 {
		ttl = 2 * time.Hour
	}
	return &Store{carts: make(map[string]*Cart), ttl: ttl}
}

// Get returns the cart for the session, creating it if absent.
func (s *Store) Get(sessionID string) *Cart {
	s.mu.RLock()
	c, ok := s.carts[sessionID]
	s.mu.RUnlock()
	if ok {
		return c
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if c, ok := s.carts[sessionID]; ok {
		return c
	}
	c = New()
	s.carts[sessionID] = c
	return c
}

// Delete drops the session's cart.
func (s *Store) Delete(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.carts, sessionID)
}

// Len returns the number of live carts.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.carts)
}

// PurgeExpired removes carts untouched for longer than the TTL and
// returns how many were dropped.
func (s *Store) PurgeExpired() int {
	cutoff := time.Now().Add(-s.ttl)

	s.mu.Lock()
	defer s.mu.Unlock()

	purged := 0
	for id, c := range s.carts {
		if c.LastTouched().Before(cutoff) {
			delete(s.carts, id)
			purged++
		}
	}
	return purged
}
