// Package events is the notification channel between the catalog facade
// and the presentation layer: a small typed publish/subscribe bus over
// named events. The facade only publishes; subscription lifecycle belongs
// to the subscribers.
package events

import (
	"sync"
)

// Event names one notification kind.
type Event string

const (
	PlaylistCreated  Event = "playlistCreated"
	PlaylistDeleted  Event = "playlistDeleted"
	PlaylistSelected Event = "playlistSelected"
	SearchRequested  Event = "searchRequested"
	ResultsCleared   Event = "resultsCleared"
)

// subscriberBuffer is the per-subscriber channel capacity. Publish never
// blocks; a subscriber that falls this far behind loses notifications.
const subscriberBuffer = 16

// Bus fans published events out to subscribers.
type Bus struct {
	mu   sync.RWMutex
	subs map[Event][]chan any
}

func NewBus() *Bus {
	return &Bus{subs: make(map[Event][]chan any)}
}

// Subscribe registers interest in an event and returns the channel
// payloads arrive on.
func (b *Bus) Subscribe(e Event) <-chan any {
	ch := make(chan any, subscriberBuffer)
	b.mu.Lock()
	b.subs[e] = append(b.subs[e], ch)
	b.mu.Unlock()
	return ch
}

// Unsubscribe removes a channel previously returned by Subscribe and
// closes it.
func (b *Bus) Unsubscribe(e Event, ch <-chan any) {
	b.mu.Lock()
	defer b.mu.Unlock()

	subs := b.subs[e]
	for i, sub := range subs {
		if sub == ch {
			b.subs[e] = append(subs[:i], subs[i+1:]...)
			close(sub)
			return
		}
	}
}

// Publish delivers payload to every subscriber of e without blocking.
func (b *Bus) Publish(e Event, payload any) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	for _, ch := range b.subs[e] {
		select {
		case ch <- payload:
		default:
			// Subscriber is not keeping up; drop rather than block
		}
	}
}
