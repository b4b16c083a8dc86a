// Package label manages the label taxonomy presented during annotation
// commit. Labels are opaque strings; a label containing the group delimiter
// is displayed under its prefix group, everything after the first delimiter
// is leaf text.
package label

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Delimiter separates a group prefix from the leaf label.
const Delimiter = "/"

// Group is one display group of the taxonomy. Ungrouped labels form
// singleton groups whose Name equals the label itself.
type Group struct {
	Name   string
	Labels []Entry
}

// Entry is one selectable label. Value is the full label string committed to
// the store; Leaf is the display text within its group.
type Entry struct {
	Value string
	Leaf  string
}

// Taxonomy is an ordered label set plus its derived grouping.
type Taxonomy struct {
	labels []string
	groups []Group
}

// New builds a taxonomy from an ordered label sequence. Empty and
// whitespace-only entries are dropped; duplicates keep their first position.
func New(labels []string) *Taxonomy {
	t := &Taxonomy{}
	seen := make(map[string]bool, len(labels))
	for _, l := range labels {
		l = strings.TrimSpace(l)
		if l == "" || seen[l] {
			continue
		}
		seen[l] = true
		t.labels = append(t.labels, l)
	}
	t.groups = groupLabels(t.labels)
	return t
}

// Labels returns the ordered label values.
func (t *Taxonomy) Labels() []string {
	return append([]string(nil), t.labels...)
}

// Groups returns the display grouping, in first-appearance order.
func (t *Taxonomy) Groups() []Group {
	return t.groups
}

// Empty reports whether the taxonomy has no labels.
func (t *Taxonomy) Empty() bool {
	return len(t.labels) == 0
}

// Contains reports whether the exact label value is part of the taxonomy.
func (t *Taxonomy) Contains(label string) bool {
	for _, l := range t.labels {
		if l == label {
			return true
		}
	}
	return false
}

func groupLabels(labels []string) []Group {
	var groups []Group
	pos := make(map[string]int)
	for _, l := range labels {
		name, leaf := l, l
		if i := strings.Index(l, Delimiter); i >= 0 {
			name = l[:i]
			leaf = l[i+len(Delimiter):]
		}
		gi, ok := pos[name]
		if !ok {
			gi = len(groups)
			pos[name] = gi
			groups = append(groups, Group{Name: name})
		}
		groups[gi].Labels = append(groups[gi].Labels, Entry{Value: l, Leaf: leaf})
	}
	return groups
}

// file is the YAML shape of a taxonomy file: either a bare list of strings
// or a document with a "labels" key.
type file struct {
	Labels []string `yaml:"labels"`
}

// LoadFile reads a YAML taxonomy file. A missing or empty file yields an
// empty taxonomy (the caller falls back to configured defaults).
func LoadFile(path string) (*Taxonomy, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return New(nil), nil
		}
		return nil, fmt.Errorf("read taxonomy: %w", err)
	}

	var f file
	if err := yaml.Unmarshal(data, &f); err != nil {
		// Bare list form.
		var bare []string
		if err2 := yaml.Unmarshal(data, &bare); err2 != nil {
			return nil, fmt.Errorf("parse taxonomy %s: %w", path, err)
		}
		return New(bare), nil
	}
	if len(f.Labels) == 0 {
		var bare []string
		if err := yaml.Unmarshal(data, &bare); err == nil {
			return New(bare), nil
		}
	}
	return New(f.Labels), nil
}
