// Package notify carries the store-changed signal between the record
// store and whatever derives views from it (stats endpoints hold no
// state, but the reminder scheduler reschedules on every change).
package notify

import "sync"

// Hub is a process-wide broadcast with no payload. Publish runs every
// subscriber synchronously in the calling goroutine; a subscriber that
// is not registered at publish time simply misses the signal and picks
// up the new state on its next read.
type Hub struct {
	mu   sync.Mutex
	next int
	subs map[int]func()
}

func NewHub() *Hub {
	return &Hub{subs: make(map[int]func())}
}

// Subscribe registers fn and returns its cancel function. Cancel is
// idempotent.
func (h *Hub) Subscribe(fn func()) (cancel func()) {
	h.mu.Lock()
	id := h.next
	h.next++
	h.subs[id] = fn
	h.mu.Unlock()

	return func() {
		h.mu.Lock()
		delete(h.subs, id)
		h.mu.Unlock()
	}
}

// Publish invokes every current subscriber. Callbacks run outside the
// hub lock so a subscriber may subscribe or cancel reentrantly.
func (h *Hub) Publish() {
	h.mu.Lock()
	fns := make([]func(), 0, len(h.subs))
	for _, fn := range h.subs {
		fns = append(fns, fn)
	}
	h.mu.Unlock()

	for _, fn := range fns {
		fn()
	}
}
