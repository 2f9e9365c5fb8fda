package store

import "sync"

type subscription struct {
	id int
	fn func()
}

// Notifier is a coarse-grained change bus: subscribers learn that something
// changed and re-read whatever views they care about.
type Notifier struct {
	mu   sync.Mutex
	subs []subscription
	next int
}

// NewNotifier creates an empty notifier
func NewNotifier() *Notifier {
	return &Notifier{}
}

// Subscribe registers a callback and returns its unsubscribe function.
// Unsubscribing twice is harmless.
func (n *Notifier) Subscribe(fn func()) func() {
	n.mu.Lock()
	defer n.mu.Unlock()

	id := n.next
	n.next++
	n.subs = append(n.subs, subscription{id: id, fn: fn})

	return func() {
		n.mu.Lock()
		defer n.mu.Unlock()
		for i, s := range n.subs {
			if s.id == id {
				n.subs = append(n.subs[:i], n.subs[i+1:]...)
				return
			}
		}
	}
}

// Notify invokes every subscriber synchronously, in registration order.
// Callbacks run outside the notifier lock so they may subscribe or
// unsubscribe without deadlocking.
func (n *Notifier) Notify() {
	n.mu.Lock()
	fns := make([]func(), len(n.subs))
	for i, s := range n.subs {
		fns[i] = s.fn
	}
	n.mu.Unlock()

	for _, fn := range fns {
		fn()
	}
}
