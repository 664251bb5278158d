// Package event provides a simple synchronous/async event dispatcher.
package event

import (
	"sync"
)

// Handler is a function that receives an event payload.
type Handler func(payload interface{})

// Dispatcher routes named events to their listeners. The zero value is not
// usable; call New.
type Dispatcher struct {
	mu       sync.RWMutex
	handlers map[string][]Handler
}

// New returns an empty dispatcher.
func New() *Dispatcher {
	return &Dispatcher{handlers: map[string][]Handler{}}
}

// Listen registers a handler for the given event name.
func (d *Dispatcher) Listen(event string, handler Handler) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.handlers[event] = append(d.handlers[event], handler)
}

// Fire dispatches an event synchronously to all registered listeners.
// A nil dispatcher drops the event.
func (d *Dispatcher) Fire(event string, payload interface{}) {
	for _, h := range d.snapshot(event) {
		h(payload)
	}
}

// FireAsync dispatches the event to all listeners concurrently.
// It returns immediately without waiting for handlers to complete.
func (d *Dispatcher) FireAsync(event string, payload interface{}) {
	for _, h := range d.snapshot(event) {
		go h(payload)
	}
}

// Flush removes all listeners (useful in tests).
func (d *Dispatcher) Flush() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.handlers = map[string][]Handler{}
}

func (d *Dispatcher) snapshot(event string) []Handler {
	if d == nil {
		return nil
	}
	d.mu.RLock()
	defer d.mu.RUnlock()
	hs := make([]Handler, len(d.handlers[event]))
	copy(hs, d.handlers[event])
	return hs
}
