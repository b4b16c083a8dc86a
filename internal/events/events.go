// Package events carries editor state-change notifications to interested
// listeners (autosave, status surfaces) without coupling them to the stores.
package events

import (
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/tapemark/tapemark/internal/annotation"
)

// Type identifies an event kind.
type Type string

const (
	AnnotationAdded   Type = "annotation.added"
	AnnotationUpdated Type = "annotation.updated"
	AnnotationDeleted Type = "annotation.deleted"
	TrackChanged      Type = "track.changed"
	Seeked            Type = "player.seeked"
	ProjectSaved      Type = "project.saved"
)

// Event is one editor notification. Annotation is populated for the
// annotation.* kinds; Time for player.seeked.
type Event struct {
	Type       Type
	Annotation annotation.Annotation
	Time       float64
	At         time.Time
}

// Bus fans events out to subscribers. Subscription channels are buffered;
// a subscriber that falls behind loses events rather than stalling the
// editor loop.
type Bus struct {
	mu      sync.Mutex
	subs    map[int]chan Event
	next    int
	dropped atomic.Int64
}

// NewBus returns an empty bus.
func NewBus() *Bus {
	return &Bus{subs: make(map[int]chan Event)}
}

// Subscribe registers a listener. The returned cancel function must be
// called to release the subscription.
func (b *Bus) Subscribe(buffer int) (<-chan Event, func()) {
	if buffer < 1 {
		buffer = 64
	}
	ch := make(chan Event, buffer)

	b.mu.Lock()
	id := b.next
	b.next++
	b.subs[id] = ch
	b.mu.Unlock()

	cancel := func() {
		b.mu.Lock()
		if c, ok := b.subs[id]; ok {
			delete(b.subs, id)
			close(c)
		}
		b.mu.Unlock()
	}
	return ch, cancel
}

// Publish delivers the event to every subscriber, dropping it for any whose
// buffer is full. Publish never blocks.
func (b *Bus) Publish(ev Event) {
	if ev.At.IsZero() {
		ev.At = time.Now()
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, ch := range b.subs {
		select {
		case ch <- ev:
		default:
			n := b.dropped.Add(1)
			if n == 1 || n%100 == 0 {
				slog.Debug("event bus dropped events (buffer full)", "dropped", n, "event_type", ev.Type)
			}
		}
	}
}

// Dropped returns the number of events lost to full subscriber buffers.
func (b *Bus) Dropped() int64 {
	return b.dropped.Load()
}
