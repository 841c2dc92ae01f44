package state

import "sync"

// hub fans snapshots out to subscribers. Each subscriber has a one-slot
// buffer holding the newest snapshot; a slow reader skips stale ones.
type hub[S any] struct {
	mu     sync.Mutex
	subs   map[int]chan S
	nextID int
	closed bool
}

func (h *hub[S]) subscribe(current S) (<-chan S, func()) {
	h.mu.Lock()
	defer h.mu.Unlock()

	ch := make(chan S, 1)
	if h.closed {
		close(ch)
		return ch, func() {}
	}
	if h.subs == nil {
		h.subs = make(map[int]chan S)
	}
	id := h.nextID
	h.nextID++
	h.subs[id] = ch
	ch <- current

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			h.mu.Lock()
			defer h.mu.Unlock()
			if c, ok := h.subs[id]; ok {
				delete(h.subs, id)
				close(c)
			}
		})
	}
}

func (h *hub[S]) publish(s S) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, ch := range h.subs {
		select {
		case <-ch:
		default:
		}
		ch <- s
	}
}

func (h *hub[S]) close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.closed = true
	for id, ch := range h.subs {
		delete(h.subs, id)
		close(ch)
	}
}
