package session

import (
	"path/filepath"
	"testing"

	"github.com/tapemark/tapemark/internal/annotation"
	"github.com/tapemark/tapemark/internal/events"
	"github.com/tapemark/tapemark/internal/player"
	"github.com/tapemark/tapemark/internal/project"
)

func newTestSession(t *testing.T) *Session {
	t.Helper()
	return New(project.New("test", 600), player.NewClock(600))
}

func TestRestoreFromProject(t *testing.T) {
	p := project.New("match", 600)
	p.Annotations = []annotation.Annotation{
		{ID: "a1", Kind: annotation.KindTimestamp, StartTime: 90, Label: "第一晚", TrackIndex: 0},
	}
	s := New(p, player.NewClock(p.Duration))

	if s.Store.Len() != 1 {
		t.Errorf("store has %d records", s.Store.Len())
	}
	if s.Tracks.Len() != 1 {
		t.Errorf("tracks = %d", s.Tracks.Len())
	}
	if s.Dirty() {
		t.Error("fresh session reported dirty")
	}
}

func TestMutationsMarkDirtyAndPublish(t *testing.T) {
	s := newTestSession(t)
	ch, cancel := s.Bus.Subscribe(8)
	defer cancel()

	a := s.AnnotationAdd(annotation.Draft{Kind: annotation.KindSegment, StartTime: 1, EndTime: 2}, "动作", "")
	if !s.Dirty() {
		t.Error("add did not mark dirty")
	}
	if ev := <-ch; ev.Type != events.AnnotationAdded || ev.Annotation.ID != a.ID {
		t.Errorf("event = %+v", ev)
	}

	start := 3.0
	s.AnnotationUpdate(a.ID, annotation.Patch{StartTime: &start})
	if ev := <-ch; ev.Type != events.AnnotationUpdated || ev.Annotation.StartTime != 3 {
		t.Errorf("event = %+v", ev)
	}

	s.AnnotationDelete(a.ID)
	if ev := <-ch; ev.Type != events.AnnotationDeleted {
		t.Errorf("event = %+v", ev)
	}

	// Unknown ids publish nothing.
	s.AnnotationDelete(a.ID)
	s.AnnotationUpdate("nope", annotation.Patch{StartTime: &start})
	select {
	case ev := <-ch:
		t.Errorf("unexpected event %+v", ev)
	default:
	}
}

func TestSeekForwardsToPlayer(t *testing.T) {
	s := newTestSession(t)
	s.Seek(42)
	if got := s.Player.CurrentTime(); got != 42 {
		t.Errorf("player at %v, want 42", got)
	}
}

func TestSaveClearsDirty(t *testing.T) {
	s := newTestSession(t)
	s.AnnotationAdd(annotation.Draft{Kind: annotation.KindTimestamp, StartTime: 5}, "x", "")

	path := filepath.Join(t.TempDir(), "p.json")
	if err := s.SaveTo(path); err != nil {
		t.Fatalf("SaveTo: %v", err)
	}
	if s.Dirty() {
		t.Error("dirty after save")
	}

	got, err := project.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(got.Annotations) != 1 || got.Annotations[0].Label != "x" {
		t.Errorf("round trip = %+v", got.Annotations)
	}
}
