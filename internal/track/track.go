// Package track models the ordered lanes annotations are assigned to.
//
// A track's position in the list is its addressing key: annotations refer to
// tracks by absolute index, while pointer input addresses tracks by visible
// position (hidden tracks occupy no lane on screen). The model keeps both
// views consistent and performs the annotation reindex when a track is
// removed.
package track

import (
	"fmt"
	"strings"

	"github.com/tapemark/tapemark/internal/annotation"
)

// NotVisible is the sentinel returned for hidden tracks when translating an
// absolute index to a visible position.
const NotVisible = -1

// Track is one lane. Locked blocks all mutation gestures targeting its
// annotations; Hidden removes it from the visible lane stack without
// touching the store.
type Track struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Locked bool   `json:"locked"`
	Hidden bool   `json:"hidden"`
}

// Model is the ordered track list plus the derived visible-lane mapping.
// At least one track always exists.
type Model struct {
	tracks   []Track
	visToAbs []int
	absToVis []int
}

// NewModel returns a model seeded with a single default track.
func NewModel() *Model {
	m := &Model{}
	m.Add()
	return m
}

// Restore replaces the track list from a loaded project. An empty input is
// replaced by a single default track so the one-track invariant holds.
func (m *Model) Restore(tracks []Track) {
	m.tracks = m.tracks[:0]
	for _, t := range tracks {
		if t.ID == "" {
			t.ID = annotation.NewID()
		}
		m.tracks = append(m.tracks, t)
	}
	if len(m.tracks) == 0 {
		m.tracks = append(m.tracks, Track{ID: annotation.NewID(), Name: "Track 1"})
	}
	m.rebuildVisible()
}

// Add appends a track named "Track N" with default unlocked/visible state and
// returns its absolute index.
func (m *Model) Add() int {
	t := Track{
		ID:   annotation.NewID(),
		Name: fmt.Sprintf("Track %d", len(m.tracks)+1),
	}
	m.tracks = append(m.tracks, t)
	m.rebuildVisible()
	return len(m.tracks) - 1
}

// Rename sets the display name. A name that trims to empty keeps the prior
// name.
func (m *Model) Rename(index int, name string) {
	if index < 0 || index >= len(m.tracks) {
		return
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return
	}
	m.tracks[index].Name = name
}

// ToggleLock flips the locked flag. The model is a passive flag holder;
// enforcement happens in the gesture machine.
func (m *Model) ToggleLock(index int) {
	if index < 0 || index >= len(m.tracks) {
		return
	}
	m.tracks[index].Locked = !m.tracks[index].Locked
}

// ToggleHidden flips the hidden flag and recomputes the lane mapping.
func (m *Model) ToggleHidden(index int) {
	if index < 0 || index >= len(m.tracks) {
		return
	}
	m.tracks[index].Hidden = !m.tracks[index].Hidden
	m.rebuildVisible()
}

// Delete removes the track at index and reindexes every annotation in the
// store: records on the removed track move to track 0, records on later
// tracks shift down by one. Deleting the last remaining track is a no-op.
func (m *Model) Delete(index int, store *annotation.Store) {
	if index < 0 || index >= len(m.tracks) || len(m.tracks) == 1 {
		return
	}
	m.tracks = append(m.tracks[:index], m.tracks[index+1:]...)
	m.rebuildVisible()

	for _, a := range store.All() {
		var target int
		switch {
		case a.TrackIndex == index:
			target = 0
		case a.TrackIndex > index:
			target = a.TrackIndex - 1
		default:
			continue
		}
		t := target
		// Unknown ids cannot occur here; ignore the not-found signal anyway.
		_ = store.Update(a.ID, annotation.Patch{TrackIndex: &t})
	}
}

// Get returns the track at the absolute index.
func (m *Model) Get(index int) (Track, bool) {
	if index < 0 || index >= len(m.tracks) {
		return Track{}, false
	}
	return m.tracks[index], true
}

// Len returns the number of tracks, hidden included.
func (m *Model) Len() int {
	return len(m.tracks)
}

// All returns a copy of the ordered track list.
func (m *Model) All() []Track {
	out := make([]Track, len(m.tracks))
	copy(out, m.tracks)
	return out
}

// Locked reports whether the track at the absolute index is locked.
// Out-of-range indices are treated as locked so callers fail closed.
func (m *Model) Locked(index int) bool {
	if index < 0 || index >= len(m.tracks) {
		return true
	}
	return m.tracks[index].Locked
}

// VisibleCount returns the number of non-hidden tracks.
func (m *Model) VisibleCount() int {
	return len(m.visToAbs)
}

// AbsIndex translates a visible position (what the user clicks) to the
// absolute track index. Returns NotVisible for out-of-range positions.
func (m *Model) AbsIndex(visible int) int {
	if visible < 0 || visible >= len(m.visToAbs) {
		return NotVisible
	}
	return m.visToAbs[visible]
}

// VisiblePos translates an absolute index to its visible position, or
// NotVisible when the track is hidden or out of range.
func (m *Model) VisiblePos(abs int) int {
	if abs < 0 || abs >= len(m.absToVis) {
		return NotVisible
	}
	return m.absToVis[abs]
}

func (m *Model) rebuildVisible() {
	m.visToAbs = m.visToAbs[:0]
	m.absToVis = make([]int, len(m.tracks))
	for i, t := range m.tracks {
		if t.Hidden {
			m.absToVis[i] = NotVisible
			continue
		}
		m.absToVis[i] = len(m.visToAbs)
		m.visToAbs = append(m.visToAbs, i)
	}
}
