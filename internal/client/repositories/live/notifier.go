// Package live turns local store changes into observable query results.
//
// A store fires its Notifier after every successful mutation; Watch re-runs
// a query on each notification and streams the results. Sync does the same
// around a single remote refresh and tags each result with its sync status.
package live

import "sync"

// Notifier fans out change signals to subscribers. Signals are coalesced: a
// subscriber that has not consumed the previous signal receives only one.
// The zero value is ready to use.
type Notifier struct {
	mu   sync.Mutex
	next int
	subs map[int]chan struct{}
}

func NewNotifier() *Notifier {
	return &Notifier{}
}

// Subscribe registers a new listener. The returned cancel func removes it and
// is safe to call more than once.
func (n *Notifier) Subscribe() (<-chan struct{}, func()) {
	n.mu.Lock()
	defer n.mu.Unlock()

	if n.subs == nil {
		n.subs = make(map[int]chan struct{})
	}
	id := n.next
	n.next++
	ch := make(chan struct{}, 1)
	n.subs[id] = ch

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			n.mu.Lock()
			delete(n.subs, id)
			n.mu.Unlock()
		})
	}
}

// Notify signals every subscriber without blocking.
func (n *Notifier) Notify() {
	n.mu.Lock()
	defer n.mu.Unlock()

	for _, ch := range n.subs {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
}

// Subscribers returns the number of active listeners.
func (n *Notifier) Subscribers() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.subs)
}
