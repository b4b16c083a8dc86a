package gesture

import (
	"math"
	"testing"

	"github.com/tapemark/tapemark/internal/annotation"
	"github.com/tapemark/tapemark/internal/timeline"
	"github.com/tapemark/tapemark/internal/track"
)

// recordingSink applies mutations to the backing store and records seeks.
type recordingSink struct {
	store *annotation.Store
	seeks []float64
}

func (r *recordingSink) Seek(t float64) { r.seeks = append(r.seeks, t) }

func (r *recordingSink) AnnotationAdd(d annotation.Draft, label, description string) annotation.Annotation {
	return r.store.Add(d, label, description)
}

func (r *recordingSink) AnnotationUpdate(id string, p annotation.Patch) {
	_ = r.store.Update(id, p)
}

func (r *recordingSink) AnnotationDelete(id string) { r.store.Delete(id) }

type fixedPlayhead float64

func (f fixedPlayhead) CurrentTime() float64 { return float64(f) }

type fixture struct {
	store   *annotation.Store
	tracks  *track.Model
	sink    *recordingSink
	machine *Machine
}

// newFixture builds a machine over a 1000px surface. The duration pointer
// can be flipped mid-test to exercise degenerate media.
func newFixture(t *testing.T, duration float64) (*fixture, *float64) {
	t.Helper()
	d := duration
	store := annotation.NewStore()
	tracks := track.NewModel()
	mapper := timeline.NewMapper(
		timeline.SurfaceFunc(func() timeline.Surface { return timeline.Surface{Left: 0, Width: 1000} }),
		func() float64 { return d },
	)
	sink := &recordingSink{store: store}
	m := New(store, tracks, mapper, sink, fixedPlayhead(42))
	return &fixture{store: store, tracks: tracks, sink: sink, machine: m}, &d
}

func press(x float64, lane int) Event {
	return Event{Phase: PhasePress, Target: TargetSurface, X: x, Lane: lane}
}

func TestPointerPressSeeks(t *testing.T) {
	// duration 120s over 1000px: pixel 250 is 30s.
	f, _ := newFixture(t, 120)

	f.machine.Handle(press(250, 0))
	if len(f.sink.seeks) != 1 || math.Abs(f.sink.seeks[0]-30) > 1e-9 {
		t.Fatalf("seeks = %v, want [30]", f.sink.seeks)
	}
	if f.machine.State() != StateScrubSeeking {
		t.Errorf("state = %v, want scrub-seeking", f.machine.State())
	}

	// Holding and moving keeps scrubbing; release returns to idle.
	f.machine.Handle(Event{Phase: PhaseMove, X: 500})
	if len(f.sink.seeks) != 2 || math.Abs(f.sink.seeks[1]-60) > 1e-9 {
		t.Fatalf("seeks after move = %v", f.sink.seeks)
	}
	f.machine.Handle(Event{Phase: PhaseRelease, X: 500})
	if f.machine.State() != StateIdle {
		t.Errorf("state after release = %v", f.machine.State())
	}
}

func TestSegmentDragBelowMinimumDiscarded(t *testing.T) {
	f, _ := newFixture(t, 100)
	f.machine.SetTool(ToolSegment)

	// 10.0s → 10.05s on a 100s/1000px surface: pixels 100 → 100.5.
	f.machine.Handle(press(100, 0))
	f.machine.Handle(Event{Phase: PhaseMove, X: 100.5})
	f.machine.Handle(Event{Phase: PhaseRelease, X: 100.5})

	if f.machine.State() != StateIdle {
		t.Errorf("state = %v, want idle", f.machine.State())
	}
	if _, pending := f.machine.Draft(); pending {
		t.Error("sub-minimum drag produced a draft")
	}
	if f.store.Len() != 0 {
		t.Errorf("store has %d records, want 0", f.store.Len())
	}
}

func TestSegmentDragOpensLabelAndCommits(t *testing.T) {
	f, _ := newFixture(t, 100)
	f.machine.SetTool(ToolSegment)

	f.machine.Handle(press(100, 0)) // 10.0s
	f.machine.Handle(Event{Phase: PhaseMove, X: 150})
	f.machine.Handle(Event{Phase: PhaseRelease, X: 120}) // 12.0s

	d, pending := f.machine.Draft()
	if !pending {
		t.Fatal("no pending draft after drag")
	}
	if d.Kind != annotation.KindSegment || math.Abs(d.StartTime-10) > 1e-9 || math.Abs(d.EndTime-12) > 1e-9 || d.TrackIndex != 0 {
		t.Fatalf("draft = %+v", d)
	}

	// Empty label blocks the commit and keeps the draft.
	if _, ok := f.machine.Commit("", ""); ok {
		t.Fatal("empty label committed")
	}
	if _, pending := f.machine.Draft(); !pending {
		t.Fatal("draft lost after blocked commit")
	}

	a, ok := f.machine.Commit("动作", "")
	if !ok {
		t.Fatal("commit failed")
	}
	if a.ID == "" || a.Label != "动作" || a.StartTime != 10 || a.EndTime != 12 {
		t.Errorf("committed record = %+v", a)
	}
	if f.store.Len() != 1 {
		t.Errorf("store has %d records, want 1", f.store.Len())
	}
}

func TestSegmentDragReversedEndpoints(t *testing.T) {
	f, _ := newFixture(t, 100)
	f.machine.SetTool(ToolSegment)

	// Drag right-to-left: anchor 30s, release 20s.
	f.machine.Handle(press(300, 0))
	f.machine.Handle(Event{Phase: PhaseRelease, X: 200})

	d, pending := f.machine.Draft()
	if !pending || d.StartTime != 20 || d.EndTime != 30 {
		t.Fatalf("draft = %+v pending=%v, want [20,30]", d, pending)
	}
}

func TestCancelDiscardsDraftIdempotently(t *testing.T) {
	f, _ := newFixture(t, 100)
	f.machine.SetTool(ToolTimestamp)
	f.machine.Handle(press(500, 0))

	if _, pending := f.machine.Draft(); !pending {
		t.Fatal("timestamp press did not open label assignment")
	}
	f.machine.Cancel()
	f.machine.Cancel() // second cancel has no further effect
	if f.machine.State() != StateIdle {
		t.Errorf("state = %v", f.machine.State())
	}
	if f.store.Len() != 0 {
		t.Error("cancel touched the store")
	}
}

func TestMoveSegmentPreservesDuration(t *testing.T) {
	f, _ := newFixture(t, 100)
	// Segment [5,8], press 1.0s into it (pixel 60 = 6.0s).
	a := f.store.Add(annotation.Draft{Kind: annotation.KindSegment, StartTime: 5, EndTime: 8}, "x", "")

	f.machine.Handle(Event{Phase: PhasePress, Target: TargetSegmentBody, X: 60, AnnotationID: a.ID})
	if f.machine.State() != StateMovingSegment {
		t.Fatalf("state = %v", f.machine.State())
	}
	// Mouse to 20.0s → start = clamp(19, 0, 97) = 19, end = 22.
	f.machine.Handle(Event{Phase: PhaseMove, X: 200})
	got, _ := f.store.Get(a.ID)
	if got.StartTime != 19 || got.EndTime != 22 {
		t.Errorf("after move: [%v,%v], want [19,22]", got.StartTime, got.EndTime)
	}

	// Far past the right edge: duration still preserved, clamped to [97,100].
	f.machine.Handle(Event{Phase: PhaseMove, X: 5000})
	got, _ = f.store.Get(a.ID)
	if got.StartTime != 97 || got.EndTime != 100 {
		t.Errorf("after clamped move: [%v,%v], want [97,100]", got.StartTime, got.EndTime)
	}
	if math.Abs(got.Duration()-3) > 1e-9 {
		t.Errorf("duration drifted to %v", got.Duration())
	}
	f.machine.Handle(Event{Phase: PhaseRelease, X: 5000})
}

func TestResizeClampsToMinimumDuration(t *testing.T) {
	f, _ := newFixture(t, 100)
	a := f.store.Add(annotation.Draft{Kind: annotation.KindSegment, StartTime: 10, EndTime: 20}, "x", "")

	// Drag the start handle past the fixed end.
	f.machine.Handle(Event{Phase: PhasePress, Target: TargetSegmentStart, X: 100, AnnotationID: a.ID})
	f.machine.Handle(Event{Phase: PhaseMove, X: 500}) // 50s, beyond end
	got, _ := f.store.Get(a.ID)
	if math.Abs(got.StartTime-(20-annotation.MinSegmentDuration)) > 1e-9 {
		t.Errorf("start = %v, want %v", got.StartTime, 20-annotation.MinSegmentDuration)
	}
	if got.EndTime != 20 {
		t.Errorf("opposite endpoint moved: end = %v", got.EndTime)
	}
	f.machine.Handle(Event{Phase: PhaseRelease, X: 500})

	// Drag the end handle past the timeline bounds.
	f.machine.Handle(Event{Phase: PhasePress, Target: TargetSegmentEnd, X: 150, AnnotationID: a.ID})
	f.machine.Handle(Event{Phase: PhaseMove, X: 9999})
	got, _ = f.store.Get(a.ID)
	if got.EndTime != 100 {
		t.Errorf("end = %v, want 100", got.EndTime)
	}
	f.machine.Handle(Event{Phase: PhaseLeave})
	if f.machine.State() != StateIdle {
		t.Errorf("pointer leave did not terminate drag: %v", f.machine.State())
	}
}

func TestLockedTrackBlocksMutationsNotSeek(t *testing.T) {
	f, _ := newFixture(t, 100)
	f.tracks.ToggleLock(0)
	a := f.store.Add(annotation.Draft{Kind: annotation.KindSegment, StartTime: 5, EndTime: 8, TrackIndex: 0}, "x", "")

	// Creation gestures are ignored.
	f.machine.SetTool(ToolSegment)
	f.machine.Handle(press(100, 0))
	if f.machine.State() != StateIdle {
		t.Errorf("segment press on locked track entered %v", f.machine.State())
	}
	f.machine.SetTool(ToolTimestamp)
	f.machine.Handle(press(100, 0))
	if _, pending := f.machine.Draft(); pending {
		t.Error("timestamp press on locked track opened label assignment")
	}

	// Move/resize/delete are ignored.
	f.machine.SetTool(ToolPointer)
	f.machine.Handle(Event{Phase: PhasePress, Target: TargetSegmentBody, X: 60, AnnotationID: a.ID})
	if f.machine.State() != StateIdle {
		t.Errorf("move press on locked track entered %v", f.machine.State())
	}
	f.machine.DeleteTarget(a.ID)
	if f.store.Len() != 1 {
		t.Error("delete succeeded on locked track")
	}

	// Seeking remains available.
	f.machine.Handle(press(250, 0))
	if len(f.sink.seeks) != 1 {
		t.Errorf("seeks = %v, want one seek", f.sink.seeks)
	}
}

func TestDegenerateDurationSuspendsGestures(t *testing.T) {
	f, dur := newFixture(t, 0)
	_ = dur

	f.machine.Handle(press(250, 0))
	if len(f.sink.seeks) != 0 {
		t.Errorf("seek fired with zero duration: %v", f.sink.seeks)
	}
	f.machine.SetTool(ToolSegment)
	f.machine.Handle(press(100, 0))
	if f.machine.State() != StateIdle {
		t.Errorf("state = %v", f.machine.State())
	}
	f.machine.SetTool(ToolTimestamp)
	f.machine.PlaceAtPlayhead()
	if _, pending := f.machine.Draft(); pending {
		t.Error("playhead shortcut produced a draft with zero duration")
	}
}

func TestPlaceAtPlayhead(t *testing.T) {
	f, _ := newFixture(t, 100)
	f.machine.SetTool(ToolTimestamp)
	f.machine.PlaceAtPlayhead()

	d, pending := f.machine.Draft()
	if !pending {
		t.Fatal("no draft")
	}
	if d.Kind != annotation.KindTimestamp || d.StartTime != 42 || d.TrackIndex != 0 {
		t.Errorf("draft = %+v", d)
	}

	// Only active while the timestamp tool is selected.
	f.machine.Cancel()
	f.machine.SetTool(ToolPointer)
	f.machine.PlaceAtPlayhead()
	if _, pending := f.machine.Draft(); pending {
		t.Error("shortcut fired with pointer tool")
	}
}

func TestPressOnHiddenLaneGapIgnored(t *testing.T) {
	f, _ := newFixture(t, 100)
	f.machine.SetTool(ToolSegment)
	// Lane index past the visible stack (e.g. dead space below tracks).
	f.machine.Handle(press(100, 7))
	if f.machine.State() != StateIdle {
		t.Errorf("state = %v", f.machine.State())
	}
}

func TestModalConsumesSurfaceInput(t *testing.T) {
	f, _ := newFixture(t, 100)
	f.machine.SetTool(ToolTimestamp)
	f.machine.Handle(press(500, 0))
	if _, pending := f.machine.Draft(); !pending {
		t.Fatal("no draft")
	}

	// Pointer events while the modal is open must not disturb the draft.
	f.machine.Handle(press(100, 0))
	d, pending := f.machine.Draft()
	if !pending || d.StartTime != 50 {
		t.Errorf("draft disturbed by surface input: %+v pending=%v", d, pending)
	}
}

func TestDeleteTargetIdempotent(t *testing.T) {
	f, _ := newFixture(t, 100)
	a := f.store.Add(annotation.Draft{Kind: annotation.KindTimestamp, StartTime: 1}, "x", "")
	f.machine.DeleteTarget(a.ID)
	f.machine.DeleteTarget(a.ID) // already gone, no-op
	if f.store.Len() != 0 {
		t.Errorf("store has %d records", f.store.Len())
	}
}
