package annotation

import "errors"

// ErrNotFound is returned when an update or delete references an unknown id.
// Gesture-level callers treat it as already-resolved and move on.
var ErrNotFound = errors.New("annotation: not found")

// Patch is a partial update. Nil fields are left untouched.
type Patch struct {
	StartTime   *float64
	EndTime     *float64
	Label       *string
	Description *string
	TrackIndex  *int
}

// Store is the ordered collection of annotations for one session.
// Insertion order is preserved so rendering and z-order stay deterministic.
// The store is not safe for concurrent use; the editor mutates it only from
// the event loop.
type Store struct {
	records []Annotation
	index   map[string]int // id -> position in records
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{index: make(map[string]int)}
}

// Add commits a draft with the given label and optional description,
// assigning a fresh id. The new record is returned by value.
func (s *Store) Add(d Draft, label, description string) Annotation {
	a := Annotation{
		ID:          NewID(),
		Kind:        d.Kind,
		StartTime:   d.StartTime,
		Label:       label,
		Description: description,
		TrackIndex:  d.TrackIndex,
	}
	if d.Kind == KindSegment {
		a.EndTime = d.EndTime
	}
	s.append(a)
	return a
}

// Restore inserts an existing record, keeping its id. Used by project load.
func (s *Store) Restore(a Annotation) {
	if a.ID == "" {
		a.ID = NewID()
	}
	s.append(a)
}

func (s *Store) append(a Annotation) {
	s.index[a.ID] = len(s.records)
	s.records = append(s.records, a)
}

// Update merges the non-nil fields of p into the record with the given id.
// Returns ErrNotFound if there is no such record.
func (s *Store) Update(id string, p Patch) error {
	i, ok := s.index[id]
	if !ok {
		return ErrNotFound
	}
	r := &s.records[i]
	if p.StartTime != nil {
		r.StartTime = *p.StartTime
	}
	if p.EndTime != nil && r.Kind == KindSegment {
		r.EndTime = *p.EndTime
	}
	if p.Label != nil && *p.Label != "" {
		r.Label = *p.Label
	}
	if p.Description != nil {
		r.Description = *p.Description
	}
	if p.TrackIndex != nil {
		r.TrackIndex = *p.TrackIndex
	}
	return nil
}

// Delete removes the record with the given id. Deleting an absent id is a
// no-op, not an error.
func (s *Store) Delete(id string) {
	i, ok := s.index[id]
	if !ok {
		return
	}
	s.records = append(s.records[:i], s.records[i+1:]...)
	delete(s.index, id)
	for j := i; j < len(s.records); j++ {
		s.index[s.records[j].ID] = j
	}
}

// Get returns the record with the given id.
func (s *Store) Get(id string) (Annotation, bool) {
	i, ok := s.index[id]
	if !ok {
		return Annotation{}, false
	}
	return s.records[i], true
}

// All returns the records in insertion order. The slice is a copy.
func (s *Store) All() []Annotation {
	out := make([]Annotation, len(s.records))
	copy(out, s.records)
	return out
}

// Len returns the number of records.
func (s *Store) Len() int {
	return len(s.records)
}

// ByTrack returns the records bound to the given absolute track index,
// in insertion order.
func (s *Store) ByTrack(trackIndex int) []Annotation {
	var out []Annotation
	for _, a := range s.records {
		if a.TrackIndex == trackIndex {
			out = append(out, a)
		}
	}
	return out
}

// ByKind returns the records of the given kind, in insertion order.
func (s *Store) ByKind(k Kind) []Annotation {
	var out []Annotation
	for _, a := range s.records {
		if a.Kind == k {
			out = append(out, a)
		}
	}
	return out
}
