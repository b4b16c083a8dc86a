package track

import (
	"testing"

	"github.com/tapemark/tapemark/internal/annotation"
)

func TestNewModelHasOneTrack(t *testing.T) {
	m := NewModel()
	if m.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", m.Len())
	}
	tr, ok := m.Get(0)
	if !ok || tr.Name != "Track 1" {
		t.Errorf("Get(0) = %+v ok=%v", tr, ok)
	}
	if tr.Locked || tr.Hidden {
		t.Errorf("default track not unlocked/visible: %+v", tr)
	}
}

func TestAddNaming(t *testing.T) {
	m := NewModel()
	m.Add()
	m.Add()
	tr, _ := m.Get(2)
	if tr.Name != "Track 3" {
		t.Errorf("Get(2).Name = %q, want %q", tr.Name, "Track 3")
	}
}

func TestRename(t *testing.T) {
	m := NewModel()
	m.Rename(0, "发言轨")
	if tr, _ := m.Get(0); tr.Name != "发言轨" {
		t.Errorf("name = %q", tr.Name)
	}

	// Whitespace-only names keep the prior name.
	m.Rename(0, "   ")
	if tr, _ := m.Get(0); tr.Name != "发言轨" {
		t.Errorf("empty rename changed name to %q", tr.Name)
	}

	m.Rename(5, "x") // out of range, no panic
}

func TestDeleteLastTrackRefused(t *testing.T) {
	m := NewModel()
	s := annotation.NewStore()
	m.Delete(0, s)
	if m.Len() != 1 {
		t.Fatalf("Len() = %d after deleting the only track, want 1", m.Len())
	}
}

func TestDeleteReindexesAnnotations(t *testing.T) {
	m := NewModel()
	m.Add()
	m.Add() // tracks 0,1,2
	s := annotation.NewStore()

	onZero := s.Add(annotation.Draft{Kind: annotation.KindTimestamp, StartTime: 1, TrackIndex: 0}, "a", "")
	onOne := s.Add(annotation.Draft{Kind: annotation.KindTimestamp, StartTime: 2, TrackIndex: 1}, "b", "")
	onTwo := s.Add(annotation.Draft{Kind: annotation.KindTimestamp, StartTime: 3, TrackIndex: 2}, "c", "")

	m.Delete(1, s)

	if m.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", m.Len())
	}
	if got, _ := s.Get(onZero.ID); got.TrackIndex != 0 {
		t.Errorf("annotation below deleted track moved: %d", got.TrackIndex)
	}
	if got, _ := s.Get(onOne.ID); got.TrackIndex != 0 {
		t.Errorf("annotation on deleted track → %d, want 0", got.TrackIndex)
	}
	if got, _ := s.Get(onTwo.ID); got.TrackIndex != 1 {
		t.Errorf("annotation above deleted track → %d, want 1", got.TrackIndex)
	}
}

func TestVisibleLaneMapping(t *testing.T) {
	m := NewModel()
	m.Add()
	m.Add() // 0,1,2 all visible

	m.ToggleHidden(1)

	if got := m.VisibleCount(); got != 2 {
		t.Fatalf("VisibleCount() = %d, want 2", got)
	}
	// Visible lane 0 → track 0, lane 1 → track 2.
	if got := m.AbsIndex(0); got != 0 {
		t.Errorf("AbsIndex(0) = %d, want 0", got)
	}
	if got := m.AbsIndex(1); got != 2 {
		t.Errorf("AbsIndex(1) = %d, want 2", got)
	}
	if got := m.VisiblePos(1); got != NotVisible {
		t.Errorf("VisiblePos(hidden) = %d, want NotVisible", got)
	}
	if got := m.VisiblePos(2); got != 1 {
		t.Errorf("VisiblePos(2) = %d, want 1", got)
	}
	if got := m.AbsIndex(7); got != NotVisible {
		t.Errorf("AbsIndex(out of range) = %d, want NotVisible", got)
	}

	// Unhiding restores the identity mapping.
	m.ToggleHidden(1)
	for i := 0; i < 3; i++ {
		if m.AbsIndex(i) != i || m.VisiblePos(i) != i {
			t.Errorf("mapping not identity at %d", i)
		}
	}
}

func TestLockedFailsClosed(t *testing.T) {
	m := NewModel()
	if m.Locked(0) {
		t.Error("fresh track reported locked")
	}
	m.ToggleLock(0)
	if !m.Locked(0) {
		t.Error("ToggleLock did not lock")
	}
	if !m.Locked(99) {
		t.Error("out-of-range index should report locked")
	}
}
