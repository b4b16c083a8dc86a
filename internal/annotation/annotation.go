// Package annotation holds the annotation records of an editing session and
// the store that owns their lifecycle.
package annotation

import (
	"crypto/rand"
	"time"

	"github.com/oklog/ulid/v2"
)

// Kind distinguishes range marks from instant marks.
type Kind string

const (
	// KindSegment spans a time range [StartTime, EndTime].
	KindSegment Kind = "segment"
	// KindTimestamp marks a single instant at StartTime.
	KindTimestamp Kind = "timestamp"
)

// MinSegmentDuration is the smallest span a segment may cover, in seconds.
// Drags shorter than this are treated as accidental clicks and discarded.
const MinSegmentDuration = 0.1

// Annotation is one committed mark on the timeline. EndTime is meaningful
// only for segments and is always strictly greater than StartTime.
type Annotation struct {
	ID          string  `json:"id"`
	Kind        Kind    `json:"kind"`
	StartTime   float64 `json:"start_time"`
	EndTime     float64 `json:"end_time,omitempty"`
	Label       string  `json:"label"`
	Description string  `json:"description,omitempty"`
	TrackIndex  int     `json:"track_index"`
}

// Duration returns the covered span in seconds; zero for timestamps.
func (a Annotation) Duration() float64 {
	if a.Kind != KindSegment {
		return 0
	}
	return a.EndTime - a.StartTime
}

// Draft is a not-yet-committed annotation awaiting label assignment.
type Draft struct {
	Kind       Kind
	StartTime  float64
	EndTime    float64 // segments only
	TrackIndex int
}

// NewID returns a fresh ULID string for an annotation or track.
func NewID() string {
	entropy := ulid.Monotonic(rand.Reader, 0)
	return ulid.MustNew(ulid.Timestamp(time.Now()), entropy).String()
}
