package events

import (
	"testing"
	"time"
)

func TestPublishReachesAllSubscribers(t *testing.T) {
	b := NewBus()
	ch1, cancel1 := b.Subscribe(4)
	ch2, cancel2 := b.Subscribe(4)
	defer cancel1()
	defer cancel2()

	b.Publish(Event{Type: AnnotationAdded})

	for i, ch := range []<-chan Event{ch1, ch2} {
		select {
		case ev := <-ch:
			if ev.Type != AnnotationAdded {
				t.Errorf("subscriber %d got %v", i, ev.Type)
			}
			if ev.At.IsZero() {
				t.Errorf("subscriber %d event missing timestamp", i)
			}
		case <-time.After(time.Second):
			t.Fatalf("subscriber %d never received the event", i)
		}
	}
}

func TestPublishNeverBlocksOnSlowSubscriber(t *testing.T) {
	b := NewBus()
	_, cancel := b.Subscribe(1)
	defer cancel()

	done := make(chan struct{})
	go func() {
		for i := 0; i < 100; i++ {
			b.Publish(Event{Type: Seeked, Time: float64(i)})
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Publish blocked on a full subscriber buffer")
	}
}

func TestDroppedCountsFullBuffers(t *testing.T) {
	b := NewBus()
	ch, cancel := b.Subscribe(2)
	defer cancel()

	for i := 0; i < 5; i++ {
		b.Publish(Event{Type: AnnotationAdded})
	}
	if got := b.Dropped(); got != 3 {
		t.Errorf("Dropped() = %d, want 3", got)
	}

	// Draining frees the buffer, so later publishes land again.
	<-ch
	<-ch
	b.Publish(Event{Type: AnnotationAdded})
	if got := b.Dropped(); got != 3 {
		t.Errorf("Dropped() = %d after drain, want 3", got)
	}
	if len(ch) != 1 {
		t.Errorf("post-drain publish not delivered, buffer has %d", len(ch))
	}
}

func TestCancelStopsDelivery(t *testing.T) {
	b := NewBus()
	ch, cancel := b.Subscribe(4)
	cancel()

	b.Publish(Event{Type: TrackChanged})

	if _, ok := <-ch; ok {
		t.Error("cancelled subscription still delivered an event")
	}
}
