// Package bus fans collection-change signals out to subscribed listeners.
// Signals carry no payload; a listener re-reads store state when notified,
// which sidesteps any staleness question between signal and store (the
// write has committed before the signal fires).
package bus

import (
	"sync"

	"github.com/google/uuid"
)

// Signal names one observable collection change.
type Signal string

const (
	CartChanged     Signal = "cart-changed"
	WishlistChanged Signal = "wishlist-changed"
)

type subscriber struct {
	id uuid.UUID
	fn func()
}

// Bus is an explicit observer registry: an ordered subscriber list per
// signal. Every subscriber is invoked on each publish, in subscription
// order.
type Bus struct {
	mu          sync.Mutex
	subscribers map[Signal][]subscriber
}

// New creates a bus with no subscribers.
func New() *Bus {
	return &Bus{
		subscribers: make(map[Signal][]subscriber),
	}
}

// Subscribe registers fn for signal and returns a cancel func. Callers
// whose lifetime is shorter than the bus must cancel, otherwise the bus
// keeps invoking a callback into a dead component.
func (b *Bus) Subscribe(signal Signal, fn func()) (cancel func()) {
	id := uuid.New()

	b.mu.Lock()
	b.subscribers[signal] = append(b.subscribers[signal], subscriber{id: id, fn: fn})
	b.mu.Unlock()

	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()

		subs := b.subscribers[signal]
		for i, sub := range subs {
			if sub.id == id {
				b.subscribers[signal] = append(subs[:i:i], subs[i+1:]...)
				return
			}
		}
	}
}

// Publish invokes every subscriber of signal. Callbacks run outside the
// bus lock so a subscriber may subscribe or cancel during fan-out.
func (b *Bus) Publish(signal Signal) {
	b.mu.Lock()
	subs := make([]subscriber, len(b.subscribers[signal]))
	copy(subs, b.subscribers[signal])
	b.mu.Unlock()

	for _, sub := range subs {
		sub.fn()
	}
}
