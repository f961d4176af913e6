// internal/server/events.go
package server

import (
	"encoding/json"
	"fmt"
	"sync"

	"pixisphere/internal/common/notify"
	"pixisphere/internal/store"
)

// Event names sent on the /events stream.
const (
	EventState = "state"
	EventQuery = "query"
)

// Message is one server-sent event.
type Message struct {
	Event string
	Data  []byte
}

// Broker fans messages out to connected event streams. Slow clients drop
// messages rather than block publishers.
type Broker struct {
	mu      sync.RWMutex
	clients map[chan Message]struct{}
	buffer  int
	closed  bool
}

func NewBroker() *Broker {
	return &Broker{
		clients: make(map[chan Message]struct{}),
		buffer:  16,
	}
}

// Subscribe registers a client. The returned function must be called when
// the client goes away.
func (b *Broker) Subscribe() (<-chan Message, func()) {
	ch := make(chan Message, b.buffer)

	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		close(ch)
		return ch, func() {}
	}
	b.clients[ch] = struct{}{}
	b.mu.Unlock()

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			b.mu.Lock()
			if _, ok := b.clients[ch]; ok {
				delete(b.clients, ch)
				close(ch)
			}
			b.mu.Unlock()
		})
	}
}

// Publish marshals v and sends it to every client.
func (b *Broker) Publish(event string, v interface{}) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal %s event: %w", event, err)
	}
	msg := Message{Event: event, Data: data}

	b.mu.RLock()
	defer b.mu.RUnlock()
	for ch := range b.clients {
		select {
		case ch <- msg:
		default:
		}
	}
	return nil
}

// StateChanged is a store subscriber.
func (b *Broker) StateChanged(st store.State) {
	_ = b.Publish(EventState, notify.EventFromState(st))
}

// QueryChanged is the search bar's settled-value notification.
func (b *Broker) QueryChanged(query string) {
	_ = b.Publish(EventQuery, map[string]string{"query": query})
}

// Clients returns the number of connected streams.
func (b *Broker) Clients() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.clients)
}

// Close disconnects every client.
func (b *Broker) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return
	}
	b.closed = true
	for ch := range b.clients {
		delete(b.clients, ch)
		close(ch)
	}
}
