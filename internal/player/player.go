// Package player defines the playback collaborator boundary. The editor only
// needs the current time, the duration and seeking; real media backends live
// behind this interface. A wall-clock implementation ships for annotating
// without a media backend attached.
package player

import "time"

// Player is the playback primitive the editor drives.
type Player interface {
	// CurrentTime returns the playhead position in seconds.
	CurrentTime() float64
	// Duration returns the media length in seconds; 0 when nothing is loaded.
	Duration() float64
	// Seek moves the playhead, clamped to [0, Duration].
	Seek(t float64)
	// Playing reports whether the playhead is advancing.
	Playing() bool
	// Toggle starts or pauses playback.
	Toggle()
}

// Clock advances the playhead against the wall clock. It holds no media; the
// duration is supplied by the caller (from the project file or a flag).
type Clock struct {
	duration float64
	base     float64   // playhead position at last state change
	since    time.Time // wall time of last state change, zero when paused
	now      func() time.Time
}

// NewClock returns a paused clock player over the given duration in seconds.
func NewClock(duration float64) *Clock {
	if duration < 0 {
		duration = 0
	}
	return &Clock{duration: duration, now: time.Now}
}

// SetDuration replaces the media length, clamping the playhead into range.
func (c *Clock) SetDuration(d float64) {
	t := c.CurrentTime()
	if d < 0 {
		d = 0
	}
	c.duration = d
	c.Seek(t)
}

func (c *Clock) Duration() float64 { return c.duration }

func (c *Clock) Playing() bool { return !c.since.IsZero() }

func (c *Clock) CurrentTime() float64 {
	t := c.base
	if c.Playing() {
		t += c.now().Sub(c.since).Seconds()
	}
	if t > c.duration {
		t = c.duration
	}
	if t < 0 {
		t = 0
	}
	return t
}

func (c *Clock) Seek(t float64) {
	if t < 0 {
		t = 0
	}
	if t > c.duration {
		t = c.duration
	}
	c.base = t
	if c.Playing() {
		c.since = c.now()
	}
}

func (c *Clock) Toggle() {
	if c.Playing() {
		c.base = c.CurrentTime()
		c.since = time.Time{}
		return
	}
	if c.duration <= 0 {
		return
	}
	// Restart from the top when toggled at the end.
	if c.base >= c.duration {
		c.base = 0
	}
	c.since = c.now()
}
