// Package events fans chain activity out to subscribers. The node uses it
// to stream mining and validation messages to connected websocket clients.
package events

import (
	"fmt"
	"sync"
)

// subscriberBuffer is the channel depth given to each subscriber. Send drops
// a message for a subscriber whose channel is full rather than blocking, so
// the buffer gives a slow websocket writer room to catch up.
const subscriberBuffer = 100

// Events maintains the set of subscriber channels keyed by a unique id.
type Events struct {
	subs map[string]chan string
	mu   sync.RWMutex
}

// New constructs an Events value for subscribing and publishing.
func New() *Events {
	return &Events{
		subs: make(map[string]chan string),
	}
}

// Shutdown closes and removes every subscriber channel.
func (evt *Events) Shutdown() {
	evt.mu.Lock()
	defer evt.mu.Unlock()

	for id, ch := range evt.subs {
		delete(evt.subs, id)
		close(ch)
	}
}

// Acquire returns the channel registered under the specified id, creating
// and registering one on first use.
func (evt *Events) Acquire(id string) chan string {
	evt.mu.Lock()
	defer evt.mu.Unlock()

	if ch, exists := evt.subs[id]; exists {
		return ch
	}

	ch := make(chan string, subscriberBuffer)
	evt.subs[id] = ch
	return ch
}

// Release closes and removes the channel registered under the specified id.
func (evt *Events) Release(id string) error {
	evt.mu.Lock()
	defer evt.mu.Unlock()

	ch, exists := evt.subs[id]
	if !exists {
		return fmt.Errorf("id %q does not exist", id)
	}

	delete(evt.subs, id)
	close(ch)
	return nil
}

// Send delivers the message to every subscriber without blocking. A
// subscriber whose channel is full misses the message.
func (evt *Events) Send(s string) {
	evt.mu.RLock()
	defer evt.mu.RUnlock()

	for _, ch := range evt.subs {
		select {
		case ch <- s:
		default:
		}
	}
}
