// Package notify is the in-process broadcast used to tell open cart and
// order views that an admin approval landed. Subscribers receive the id
// and owner of the request that changed and re-fetch their own data;
// no diffs travel on the channel.
package notify

import "sync"

type Approval struct {
	RequestID string `json:"request_id"`
	UserID    string `json:"user_id"`
}

type Hub struct {
	mu   sync.Mutex
	next int
	subs map[int]chan Approval
}

func NewHub() *Hub {
	return &Hub{subs: make(map[int]chan Approval)}
}

// Subscribe registers a buffered receiver. Call the returned cancel
// func when the consumer goes away.
func (h *Hub) Subscribe() (<-chan Approval, func()) {
	h.mu.Lock()
	defer h.mu.Unlock()
	id := h.next
	h.next++
	ch := make(chan Approval, 8)
	h.subs[id] = ch
	cancel := func() {
		h.mu.Lock()
		defer h.mu.Unlock()
		if c, ok := h.subs[id]; ok {
			delete(h.subs, id)
			close(c)
		}
	}
	return ch, cancel
}

// Publish fans out to every subscriber, at most once per trigger. A
// subscriber with a full buffer misses the event; staleness is
// self-correcting on its next fetch, so Publish never blocks.
func (h *Hub) Publish(ev Approval) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, ch := range h.subs {
		select {
		case ch <- ev:
		default:
		}
	}
}
