// Package project owns the on-disk session format and the export shape
// consumed by the downstream analysis pipeline.
package project

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"github.com/tapemark/tapemark/internal/annotation"
	"github.com/tapemark/tapemark/internal/track"
	"github.com/tapemark/tapemark/internal/util"
)

// DefaultFPS is assumed when a bare number in a time mark is a frame count
// and no rate is configured.
const DefaultFPS = 30.0

// Project is one editing session on disk.
type Project struct {
	Name        string                  `json:"name"`
	MediaPath   string                  `json:"media_path,omitempty"`
	Duration    float64                 `json:"duration"`
	FPS         float64                 `json:"fps,omitempty"`
	Tracks      []track.Track           `json:"tracks"`
	Annotations []annotation.Annotation `json:"annotations"`
}

// New returns an empty project over the given duration with one track.
func New(name string, duration float64) *Project {
	if duration < 0 {
		duration = 0
	}
	return &Project{
		Name:     name,
		Duration: duration,
		Tracks:   []track.Track{{ID: annotation.NewID(), Name: "Track 1"}},
	}
}

// Load reads and sanitizes a project file. Records that violate the
// annotation invariants are dropped rather than failing the load.
func Load(path string) (*Project, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read project: %w", err)
	}
	var p Project
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("parse project %s: %w", path, err)
	}
	p.sanitize()
	return &p, nil
}

// Save writes the project atomically.
func (p *Project) Save(path string) error {
	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return fmt.Errorf("encode project: %w", err)
	}
	data = append(data, '\n')
	if err := util.AtomicWriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("save project: %w", err)
	}
	return nil
}

// sanitize enforces the data-model invariants on loaded input: at least one
// track, annotations bound to existing tracks, segments at least the
// minimum duration and inside [0, Duration].
func (p *Project) sanitize() {
	if p.Duration < 0 {
		p.Duration = 0
	}
	if len(p.Tracks) == 0 {
		p.Tracks = []track.Track{{ID: annotation.NewID(), Name: "Track 1"}}
	}
	kept := p.Annotations[:0]
	for _, a := range p.Annotations {
		if a.Label == "" {
			continue
		}
		if a.TrackIndex < 0 || a.TrackIndex >= len(p.Tracks) {
			continue
		}
		if a.StartTime < 0 || a.StartTime > p.Duration {
			continue
		}
		switch a.Kind {
		case annotation.KindSegment:
			if a.EndTime > p.Duration || a.EndTime-a.StartTime < annotation.MinSegmentDuration {
				continue
			}
		case annotation.KindTimestamp:
			a.EndTime = 0
		default:
			continue
		}
		if a.ID == "" {
			a.ID = annotation.NewID()
		}
		kept = append(kept, a)
	}
	p.Annotations = kept
}

// TimeMark is the downstream export record: a label at a point in time.
// Segments contribute their start time.
type TimeMark struct {
	Time  string `json:"time"`
	Label string `json:"label"`
}

// TimeMarks returns the project's annotations as export marks, sorted by
// start time.
func (p *Project) TimeMarks() []TimeMark {
	anns := append([]annotation.Annotation(nil), p.Annotations...)
	sort.SliceStable(anns, func(i, j int) bool { return anns[i].StartTime < anns[j].StartTime })

	marks := make([]TimeMark, 0, len(anns))
	for _, a := range anns {
		marks = append(marks, TimeMark{Time: FormatTime(a.StartTime), Label: a.Label})
	}
	return marks
}

// ExportTimeMarks writes the marks as a JSON document compatible with the
// analysis pipeline: {"name": ..., "time_marks": [{"time","label"}, ...]}.
func (p *Project) ExportTimeMarks(path string) error {
	doc := struct {
		Name      string     `json:"name"`
		TimeMarks []TimeMark `json:"time_marks"`
	}{Name: p.Name, TimeMarks: p.TimeMarks()}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("encode time marks: %w", err)
	}
	data = append(data, '\n')
	if err := util.AtomicWriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("export time marks: %w", err)
	}
	return nil
}
