// Package session composes the live state of one editing session: the
// annotation store, the track model, the playback collaborator and the event
// bus. It implements the effect callbacks the gesture machine drives, so all
// mutations funnel through one place and every mutation marks the session
// dirty for autosave.
package session

import (
	"github.com/tapemark/tapemark/internal/annotation"
	"github.com/tapemark/tapemark/internal/events"
	"github.com/tapemark/tapemark/internal/player"
	"github.com/tapemark/tapemark/internal/project"
	"github.com/tapemark/tapemark/internal/track"
)

// Session is the in-process state for one open project.
type Session struct {
	Name   string
	Store  *annotation.Store
	Tracks *track.Model
	Player player.Player
	Bus    *events.Bus

	mediaPath string
	fps       float64
	dirty     bool
}

// New restores a session from a loaded project. The player is the caller's
// playback collaborator (a clock player when editing offline).
func New(p *project.Project, pl player.Player) *Session {
	s := &Session{
		Name:      p.Name,
		Store:     annotation.NewStore(),
		Tracks:    track.NewModel(),
		Player:    pl,
		Bus:       events.NewBus(),
		mediaPath: p.MediaPath,
		fps:       p.FPS,
	}
	s.Tracks.Restore(p.Tracks)
	for _, a := range p.Annotations {
		s.Store.Restore(a)
	}
	return s
}

// Duration returns the media duration in seconds.
func (s *Session) Duration() float64 { return s.Player.Duration() }

// Seek implements the gesture effect: forward to the player and notify.
func (s *Session) Seek(t float64) {
	s.Player.Seek(t)
	s.Bus.Publish(events.Event{Type: events.Seeked, Time: t})
}

// AnnotationAdd implements the gesture effect: commit a draft to the store.
func (s *Session) AnnotationAdd(d annotation.Draft, label, description string) annotation.Annotation {
	a := s.Store.Add(d, label, description)
	s.dirty = true
	s.Bus.Publish(events.Event{Type: events.AnnotationAdded, Annotation: a})
	return a
}

// AnnotationUpdate implements the gesture effect. Unknown ids are
// already-resolved no-ops.
func (s *Session) AnnotationUpdate(id string, p annotation.Patch) {
	if err := s.Store.Update(id, p); err != nil {
		return
	}
	a, _ := s.Store.Get(id)
	s.dirty = true
	s.Bus.Publish(events.Event{Type: events.AnnotationUpdated, Annotation: a})
}

// AnnotationDelete implements the gesture effect.
func (s *Session) AnnotationDelete(id string) {
	a, ok := s.Store.Get(id)
	if !ok {
		return
	}
	s.Store.Delete(id)
	s.dirty = true
	s.Bus.Publish(events.Event{Type: events.AnnotationDeleted, Annotation: a})
}

// TrackMutated is called after any track model change (add, rename, lock,
// hide, delete) so listeners and autosave observe it.
func (s *Session) TrackMutated() {
	s.dirty = true
	s.Bus.Publish(events.Event{Type: events.TrackChanged})
}

// Dirty reports whether there are unsaved changes.
func (s *Session) Dirty() bool { return s.dirty }

// Snapshot captures the current state as a project document.
func (s *Session) Snapshot() *project.Project {
	return &project.Project{
		Name:        s.Name,
		MediaPath:   s.mediaPath,
		Duration:    s.Player.Duration(),
		FPS:         s.fps,
		Tracks:      s.Tracks.All(),
		Annotations: s.Store.All(),
	}
}

// SaveTo writes a snapshot to path and clears the dirty flag on success.
func (s *Session) SaveTo(path string) error {
	if err := s.Snapshot().Save(path); err != nil {
		return err
	}
	s.dirty = false
	s.Bus.Publish(events.Event{Type: events.ProjectSaved})
	return nil
}
