// Package gesture turns pointer and keyboard input into annotation
// mutations. It is an explicit state machine: every input event is dispatched
// against a closed set of named states, and all gesture-scoped values live in
// a single active-gesture record created at press and discarded at release,
// never in per-event closures.
package gesture

import (
	"log/slog"

	"github.com/tapemark/tapemark/internal/annotation"
	"github.com/tapemark/tapemark/internal/timeline"
	"github.com/tapemark/tapemark/internal/track"
)

// Tool is the active editing tool.
type Tool int

const (
	// ToolPointer seeks on empty surface and moves/resizes existing segments.
	ToolPointer Tool = iota
	// ToolSegment drag-creates range annotations.
	ToolSegment
	// ToolTimestamp places instant annotations on press.
	ToolTimestamp
)

func (t Tool) String() string {
	switch t {
	case ToolPointer:
		return "pointer"
	case ToolSegment:
		return "segment"
	case ToolTimestamp:
		return "timestamp"
	}
	return "unknown"
}

// State is the machine's current phase.
type State int

const (
	StateIdle State = iota
	StateScrubSeeking
	StateDraggingNewSegment
	StateAwaitingLabel
	StateMovingSegment
	StateResizingSegmentStart
	StateResizingSegmentEnd
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateScrubSeeking:
		return "scrub-seeking"
	case StateDraggingNewSegment:
		return "dragging-new-segment"
	case StateAwaitingLabel:
		return "awaiting-label"
	case StateMovingSegment:
		return "moving-segment"
	case StateResizingSegmentStart:
		return "resizing-segment-start"
	case StateResizingSegmentEnd:
		return "resizing-segment-end"
	}
	return "unknown"
}

// TargetKind identifies what sits under the pointer at press time. Hit
// testing is the renderer's job; the machine only consumes its verdict.
type TargetKind int

const (
	// TargetSurface is empty timeline surface.
	TargetSurface TargetKind = iota
	// TargetSegmentBody is the body of an existing segment.
	TargetSegmentBody
	// TargetSegmentStart is a segment's left edge handle.
	TargetSegmentStart
	// TargetSegmentEnd is a segment's right edge handle.
	TargetSegmentEnd
)

// Phase is the position of an event within a gesture.
type Phase int

const (
	PhasePress Phase = iota
	PhaseMove
	PhaseRelease
	// PhaseLeave is the pointer leaving the surface mid-drag. It terminates
	// the active drag exactly like a release.
	PhaseLeave
)

// Event is one pointer (or touch, mapped by the shell to the same shape)
// input sample.
type Event struct {
	Phase  Phase
	Target TargetKind

	// X is the event's coordinate along the time axis, in the same space the
	// surface provider measures.
	X float64

	// Lane is the visible track position under the pointer, or
	// track.NotVisible when the pointer is outside every lane.
	Lane int

	// AnnotationID identifies the record for body/handle targets.
	AnnotationID string
}

// Sink receives the machine's effects. The shell wires these to the playback
// collaborator and the annotation store.
type Sink interface {
	Seek(t float64)
	AnnotationAdd(d annotation.Draft, label, description string) annotation.Annotation
	AnnotationUpdate(id string, p annotation.Patch)
	AnnotationDelete(id string)
}

// Playhead reports the current playback time, used by the keyboard shortcut
// that places a timestamp at the playhead.
type Playhead interface {
	CurrentTime() float64
}

// active holds everything captured at press time for the current drag.
// Resize clamps use the endpoint captured here, not the last move's.
type active struct {
	id       string  // record under the gesture (move/resize)
	offset   float64 // press time offset into the segment (move)
	length   float64 // fixed segment duration (move)
	fixedPt  float64 // immobile opposite endpoint (resize)
	anchor   float64 // anchor time (new segment)
	free     float64 // free endpoint (new segment)
	trackAbs int     // absolute target track
}

// Machine is the interaction state machine. Not safe for concurrent use;
// the editor drives it from the event loop only.
type Machine struct {
	store  *annotation.Store
	tracks *track.Model
	mapper *timeline.Mapper
	sink   Sink
	play   Playhead

	tool  Tool
	state State
	act   active
	draft annotation.Draft
	log   *slog.Logger
}

// New wires a machine over the session's store, tracks, mapper and effect
// sink. The playhead may be nil; the playhead shortcut then does nothing.
func New(store *annotation.Store, tracks *track.Model, mapper *timeline.Mapper, sink Sink, play Playhead) *Machine {
	return &Machine{
		store:  store,
		tracks: tracks,
		mapper: mapper,
		sink:   sink,
		play:   play,
		log:    slog.Default(),
	}
}

// Tool returns the active tool.
func (m *Machine) Tool() Tool { return m.tool }

// SetTool switches the active tool. Switching mid-drag terminates the drag.
func (m *Machine) SetTool(t Tool) {
	if m.state != StateIdle && m.state != StateAwaitingLabel {
		m.state = StateIdle
		m.act = active{}
	}
	m.tool = t
}

// State returns the current machine state.
func (m *Machine) State() State { return m.state }

// Draft returns the pending draft while a label is being assigned.
func (m *Machine) Draft() (annotation.Draft, bool) {
	return m.draft, m.state == StateAwaitingLabel
}

// Handle consumes one input event. Invalid gestures are silent no-ops.
func (m *Machine) Handle(ev Event) {
	if m.state == StateAwaitingLabel {
		// Modal input goes through Commit/Cancel, not the surface.
		return
	}
	switch ev.Phase {
	case PhasePress:
		m.press(ev)
	case PhaseMove:
		m.move(ev)
	case PhaseRelease, PhaseLeave:
		m.finish(ev)
	}
}

func (m *Machine) press(ev Event) {
	if m.state != StateIdle {
		// A second press mid-drag cannot happen with a single pointer; treat
		// it as the start of a fresh gesture.
		m.state = StateIdle
		m.act = active{}
	}
	if !m.mapper.Valid() {
		return
	}

	switch m.tool {
	case ToolPointer:
		m.pressPointer(ev)
	case ToolSegment:
		m.pressSegment(ev)
	case ToolTimestamp:
		m.pressTimestamp(ev)
	}
}

func (m *Machine) pressPointer(ev Event) {
	t := m.mapper.PixelToTime(ev.X)

	switch ev.Target {
	case TargetSurface:
		m.sink.Seek(t)
		m.state = StateScrubSeeking
	case TargetSegmentBody:
		a, ok := m.store.Get(ev.AnnotationID)
		if !ok || a.Kind != annotation.KindSegment || m.tracks.Locked(a.TrackIndex) {
			return
		}
		m.act = active{
			id:     a.ID,
			offset: t - a.StartTime,
			length: a.EndTime - a.StartTime,
		}
		m.state = StateMovingSegment
	case TargetSegmentStart:
		a, ok := m.store.Get(ev.AnnotationID)
		if !ok || a.Kind != annotation.KindSegment || m.tracks.Locked(a.TrackIndex) {
			return
		}
		m.act = active{id: a.ID, fixedPt: a.EndTime}
		m.state = StateResizingSegmentStart
	case TargetSegmentEnd:
		a, ok := m.store.Get(ev.AnnotationID)
		if !ok || a.Kind != annotation.KindSegment || m.tracks.Locked(a.TrackIndex) {
			return
		}
		m.act = active{id: a.ID, fixedPt: a.StartTime}
		m.state = StateResizingSegmentEnd
	}
}

func (m *Machine) pressSegment(ev Event) {
	if ev.Target != TargetSurface {
		return
	}
	abs := m.tracks.AbsIndex(ev.Lane)
	if abs == track.NotVisible || m.tracks.Locked(abs) {
		return
	}
	t := m.mapper.PixelToTime(ev.X)
	m.act = active{anchor: t, free: t, trackAbs: abs}
	m.state = StateDraggingNewSegment
}

func (m *Machine) pressTimestamp(ev Event) {
	if ev.Target != TargetSurface {
		return
	}
	abs := m.tracks.AbsIndex(ev.Lane)
	if abs == track.NotVisible || m.tracks.Locked(abs) {
		return
	}
	m.openLabel(annotation.Draft{
		Kind:       annotation.KindTimestamp,
		StartTime:  m.mapper.PixelToTime(ev.X),
		TrackIndex: abs,
	})
}

func (m *Machine) move(ev Event) {
	t := m.mapper.PixelToTime(ev.X)

	switch m.state {
	case StateScrubSeeking:
		if m.mapper.Valid() {
			m.sink.Seek(t)
		}
	case StateMovingSegment:
		dur := m.mapper.Duration()
		hi := dur - m.act.length
		if hi < 0 {
			return
		}
		start := clamp(t-m.act.offset, 0, hi)
		end := start + m.act.length
		m.sink.AnnotationUpdate(m.act.id, annotation.Patch{StartTime: &start, EndTime: &end})
	case StateResizingSegmentStart:
		start := clamp(t, 0, m.act.fixedPt-annotation.MinSegmentDuration)
		m.sink.AnnotationUpdate(m.act.id, annotation.Patch{StartTime: &start})
	case StateResizingSegmentEnd:
		end := clamp(t, m.act.fixedPt+annotation.MinSegmentDuration, m.mapper.Duration())
		m.sink.AnnotationUpdate(m.act.id, annotation.Patch{EndTime: &end})
	case StateDraggingNewSegment:
		m.act.free = t
	}
}

func (m *Machine) finish(ev Event) {
	state := m.state
	act := m.act
	m.state = StateIdle
	m.act = active{}

	if state != StateDraggingNewSegment {
		return
	}
	if ev.Phase == PhaseRelease {
		// The release position is the final free endpoint.
		act.free = m.mapper.PixelToTime(ev.X)
	}
	lo, hi := act.anchor, act.free
	if lo > hi {
		lo, hi = hi, lo
	}
	if hi-lo <= annotation.MinSegmentDuration {
		// Accidental click; discard without feedback.
		m.log.Debug("segment drag below minimum duration, discarded",
			"start", lo, "end", hi)
		return
	}
	m.openLabel(annotation.Draft{
		Kind:       annotation.KindSegment,
		StartTime:  lo,
		EndTime:    hi,
		TrackIndex: act.trackAbs,
	})
}

// PendingSegment returns the in-progress drag-creation range and its
// absolute track, for rendering the rubber band. ok is false outside a
// segment drag.
func (m *Machine) PendingSegment() (start, end float64, trackAbs int, ok bool) {
	if m.state != StateDraggingNewSegment {
		return 0, 0, 0, false
	}
	lo, hi := m.act.anchor, m.act.free
	if lo > hi {
		lo, hi = hi, lo
	}
	return lo, hi, m.act.trackAbs, true
}

// PlaceAtPlayhead opens label assignment for a timestamp at the current
// playback time on track 0. Bound to the global modifier+D shortcut while
// the timestamp tool is active.
func (m *Machine) PlaceAtPlayhead() {
	if m.tool != ToolTimestamp || m.state != StateIdle || m.play == nil {
		return
	}
	if !m.mapper.Valid() || m.tracks.Locked(0) {
		return
	}
	m.openLabel(annotation.Draft{
		Kind:       annotation.KindTimestamp,
		StartTime:  m.mapper.Clamp(m.play.CurrentTime()),
		TrackIndex: 0,
	})
}

// DeleteTarget removes an annotation through the gesture layer, honoring
// track locks. Unknown ids are already-resolved no-ops.
func (m *Machine) DeleteTarget(id string) {
	a, ok := m.store.Get(id)
	if !ok || m.tracks.Locked(a.TrackIndex) {
		return
	}
	m.sink.AnnotationDelete(id)
}

func (m *Machine) openLabel(d annotation.Draft) {
	m.draft = d
	m.state = StateAwaitingLabel
}

// Commit resolves the pending draft with a label and optional description.
// An empty label blocks the commit and keeps the draft pending. The new
// record and true are returned on success.
func (m *Machine) Commit(label, description string) (annotation.Annotation, bool) {
	if m.state != StateAwaitingLabel || label == "" {
		return annotation.Annotation{}, false
	}
	a := m.sink.AnnotationAdd(m.draft, label, description)
	m.draft = annotation.Draft{}
	m.state = StateIdle
	return a, true
}

// Cancel discards the pending draft without touching the store. Cancelling
// with no pending draft is a no-op.
func (m *Machine) Cancel() {
	if m.state != StateAwaitingLabel {
		return
	}
	m.draft = annotation.Draft{}
	m.state = StateIdle
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
