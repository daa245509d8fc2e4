// Package events carries the city-list notifications UI-tier code consumes.
// The forecast core publishes nothing here and knows nothing about it.
package events

import "sync"

// Event identifies a notification type.
type Event string

const (
	CityAdded    Event = "city_added"
	CitySelected Event = "city_selected"
	CityRemoved  Event = "city_removed"
)

// Payload accompanies every event. City is set for CityAdded; Index for
// CitySelected and CityRemoved.
type Payload struct {
	City  string
	Index int
}

// Handler receives published payloads.
type Handler func(Payload)

// Handle identifies one subscription for later removal.
type Handle struct {
	event Event
	id    uint64
}

type subscriber struct {
	id uint64
	fn Handler
}

// Bus dispatches events to handlers in registration order.
type Bus struct {
	mu     sync.Mutex
	nextID uint64
	subs   map[Event][]subscriber
}

// NewBus creates an empty Bus.
func NewBus() *Bus {
	return &Bus{subs: make(map[Event][]subscriber)}
}

// Subscribe registers fn for event and returns a handle for Unsubscribe.
func (b *Bus) Subscribe(event Event, fn Handler) Handle {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.nextID++
	b.subs[event] = append(b.subs[event], subscriber{id: b.nextID, fn: fn})
	return Handle{event: event, id: b.nextID}
}

// Unsubscribe removes the subscription behind h. Unknown handles are a no-op.
func (b *Bus) Unsubscribe(h Handle) {
	b.mu.Lock()
	defer b.mu.Unlock()

	subs := b.subs[h.event]
	for i, s := range subs {
		if s.id == h.id {
			b.subs[h.event] = append(subs[:i:i], subs[i+1:]...)
			return
		}
	}
}

// Publish invokes every handler registered for event, in registration
// order. Handlers run outside the bus lock so they may subscribe or
// unsubscribe freely.
func (b *Bus) Publish(event Event, p Payload) {
	b.mu.Lock()
	subs := make([]subscriber, len(b.subs[event]))
	copy(subs, b.subs[event])
	b.mu.Unlock()

	for _, s := range subs {
		s.fn(p)
	}
}
