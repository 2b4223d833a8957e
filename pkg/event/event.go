// Package event is an in-process dispatcher. Checkout fires
// "order.created" through it; listeners push to the admin WebSocket
// feed and the order webhook.
package event

import (
	"sync"
)

// Handler receives the payload passed to Fire.
type Handler func(payload interface{})

var (
	mu        sync.RWMutex
	listeners = map[string][]Handler{}
)

// Listen adds a handler for the named event.
func Listen(name string, h Handler) {
	mu.Lock()
	defer mu.Unlock()
	listeners[name] = append(listeners[name], h)
}

func snapshot(name string) []Handler {
	mu.RLock()
	defer mu.RUnlock()
	hs := make([]Handler, len(listeners[name]))
	copy(hs, listeners[name])
	return hs
}

// Fire runs every listener for the event in order, on the caller's
// goroutine.
func Fire(name string, payload interface{}) {
	for _, h := range snapshot(name) {
		h(payload)
	}
}

// FireAsync runs each listener on its own goroutine and returns
// immediately.
func FireAsync(name string, payload interface{}) {
	for _, h := range snapshot(name) {
		go h(payload)
	}
}

// Flush drops all listeners. Tests use it between cases.
func Flush() {
	mu.Lock()
	defer mu.Unlock()
	listeners = map[string][]Handler{}
}
