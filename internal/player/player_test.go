package player

import (
	"testing"
	"time"
)

func TestClockSeekClamps(t *testing.T) {
	c := NewClock(60)
	c.Seek(-5)
	if got := c.CurrentTime(); got != 0 {
		t.Errorf("CurrentTime() = %v, want 0", got)
	}
	c.Seek(90)
	if got := c.CurrentTime(); got != 60 {
		t.Errorf("CurrentTime() = %v, want 60", got)
	}
}

func TestClockAdvancesWhilePlaying(t *testing.T) {
	now := time.Unix(1000, 0)
	c := NewClock(60)
	c.now = func() time.Time { return now }

	c.Seek(10)
	c.Toggle()
	if !c.Playing() {
		t.Fatal("Toggle did not start playback")
	}

	now = now.Add(5 * time.Second)
	if got := c.CurrentTime(); got != 15 {
		t.Errorf("CurrentTime() = %v, want 15", got)
	}

	c.Toggle()
	now = now.Add(10 * time.Second)
	if got := c.CurrentTime(); got != 15 {
		t.Errorf("CurrentTime() advanced while paused: %v", got)
	}
}

func TestClockStopsAtDuration(t *testing.T) {
	now := time.Unix(1000, 0)
	c := NewClock(10)
	c.now = func() time.Time { return now }

	c.Toggle()
	now = now.Add(time.Minute)
	if got := c.CurrentTime(); got != 10 {
		t.Errorf("CurrentTime() = %v, want 10", got)
	}
}

func TestClockZeroDurationNeverPlays(t *testing.T) {
	c := NewClock(0)
	c.Toggle()
	if c.Playing() {
		t.Error("zero-duration clock started playing")
	}
}

func TestSetDurationClampsPlayhead(t *testing.T) {
	c := NewClock(100)
	c.Seek(80)
	c.SetDuration(50)
	if got := c.CurrentTime(); got != 50 {
		t.Errorf("CurrentTime() = %v, want 50", got)
	}
}
