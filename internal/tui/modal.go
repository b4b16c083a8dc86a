package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/lipgloss"

	"github.com/tapemark/tapemark/internal/label"
	"github.com/tapemark/tapemark/internal/util"
)

// labelModal is the label-assignment dialog shown while the gesture machine
// is awaiting a label for a pending draft. Selecting requires a non-empty
// label; the description is optional and may be left blank.
type labelModal struct {
	groups     []label.Group
	groupIdx   int
	entryIdx   int
	desc       textinput.Model
	descActive bool
}

func newLabelModal(tax *label.Taxonomy) labelModal {
	ti := textinput.New()
	ti.Placeholder = "description (optional)"
	ti.CharLimit = 200
	return labelModal{groups: tax.Groups(), desc: ti}
}

func (m *labelModal) setTaxonomy(tax *label.Taxonomy) {
	m.groups = tax.Groups()
	m.clampCursor()
}

func (m *labelModal) reset() {
	m.groupIdx = 0
	m.entryIdx = 0
	m.descActive = false
	m.desc.SetValue("")
	m.desc.Blur()
}

// selected returns the highlighted label value, or "" when the taxonomy is
// empty (which blocks the commit affordance).
func (m *labelModal) selected() string {
	if m.groupIdx >= len(m.groups) {
		return ""
	}
	g := m.groups[m.groupIdx]
	if m.entryIdx >= len(g.Labels) {
		return ""
	}
	return g.Labels[m.entryIdx].Value
}

func (m *labelModal) description() string {
	return strings.TrimSpace(m.desc.Value())
}

func (m *labelModal) nextGroup(delta int) {
	if len(m.groups) == 0 {
		return
	}
	m.groupIdx = (m.groupIdx + delta + len(m.groups)) % len(m.groups)
	m.entryIdx = 0
}

func (m *labelModal) nextEntry(delta int) {
	if m.groupIdx >= len(m.groups) {
		return
	}
	n := len(m.groups[m.groupIdx].Labels)
	if n == 0 {
		return
	}
	m.entryIdx = (m.entryIdx + delta + n) % n
}

func (m *labelModal) clampCursor() {
	if m.groupIdx >= len(m.groups) {
		m.groupIdx = 0
	}
	if len(m.groups) == 0 {
		m.entryIdx = 0
		return
	}
	if m.entryIdx >= len(m.groups[m.groupIdx].Labels) {
		m.entryIdx = 0
	}
}

// view renders the modal box.
func (m *labelModal) view(t Theme, width int, title string) string {
	boxWidth := width * 2 / 3
	if boxWidth < 30 {
		boxWidth = width - 2
	}
	inner := boxWidth - 4

	var b strings.Builder
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(t.Primary)
	b.WriteString(titleStyle.Render(title) + "\n\n")

	if len(m.groups) == 0 {
		b.WriteString(lipgloss.NewStyle().Foreground(t.Overlay).Render("no labels configured") + "\n")
	}

	groupStyle := lipgloss.NewStyle().Foreground(t.Overlay)
	activeGroupStyle := lipgloss.NewStyle().Bold(true).Foreground(t.Text)
	entryStyle := lipgloss.NewStyle().Foreground(t.Text)
	selStyle := lipgloss.NewStyle().Bold(true).Foreground(t.Base).Background(t.Primary)

	for gi, g := range m.groups {
		gs := groupStyle
		if gi == m.groupIdx {
			gs = activeGroupStyle
		}
		b.WriteString(gs.Render(util.TruncateLabel(g.Name, inner)) + "\n")
		if gi != m.groupIdx {
			continue
		}
		for ei, e := range g.Labels {
			line := "  " + util.TruncateLabel(e.Leaf, inner-2)
			if ei == m.entryIdx && !m.descActive {
				b.WriteString(selStyle.Render(line) + "\n")
			} else {
				b.WriteString(entryStyle.Render(line) + "\n")
			}
		}
	}

	b.WriteString("\n" + m.desc.View() + "\n")

	hint := "←/→ group · ↑/↓ label · i description · enter commit · esc cancel"
	b.WriteString(lipgloss.NewStyle().Foreground(t.Overlay).Render(util.TruncateLabel(hint, inner)))

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.Primary).
		Background(t.Base).
		Padding(1, 2).
		Width(boxWidth).
		Render(b.String())
}
