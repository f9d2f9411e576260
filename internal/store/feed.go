package store

import (
	"sync"

	"github.com/google/uuid"
)

const subscriberBuffer = 16

// Broker is an in-process Feed. It backs tests and single-node deployments;
// multi-node deployments layer the Postgres listener on top (see pgfeed.go).
type Broker struct {
	mu   sync.Mutex
	subs map[uuid.UUID]map[int]chan PlanEvent
	next int
}

func NewBroker() *Broker {
	return &Broker{subs: make(map[uuid.UUID]map[int]chan PlanEvent)}
}

// Publish delivers the event to every subscriber of the event's user.
// Slow subscribers lose events; publishers never block.
func (b *Broker) Publish(ev PlanEvent) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, ch := range b.subs[ev.UserID] {
		select {
		case ch <- ev:
		default:
		}
	}
}

// Subscribe registers a consumer for one user's plan events. The returned
// cancel closes the channel and must be called on teardown.
func (b *Broker) Subscribe(userID uuid.UUID) (<-chan PlanEvent, func()) {
	ch := make(chan PlanEvent, subscriberBuffer)

	b.mu.Lock()
	id := b.next
	b.next++
	if b.subs[userID] == nil {
		b.subs[userID] = make(map[int]chan PlanEvent)
	}
	b.subs[userID][id] = ch
	b.mu.Unlock()

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			b.mu.Lock()
			delete(b.subs[userID], id)
			if len(b.subs[userID]) == 0 {
				delete(b.subs, userID)
			}
			b.mu.Unlock()
			close(ch)
		})
	}
	return ch, cancel
}
