package tui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/truncate"

	"github.com/tapemark/tapemark/internal/annotation"
	"github.com/tapemark/tapemark/internal/gesture"
	"github.com/tapemark/tapemark/internal/project"
	"github.com/tapemark/tapemark/internal/util"
)

const (
	segmentCell   = "█"
	timestampCell = "◆"
	playheadCell  = "│"
)

// View implements tea.Model.
func (e *Editor) View() string {
	if e.quitting {
		return ""
	}
	if e.width < 40 || e.height < 12 {
		return "terminal too small for tapemark\n"
	}

	g := e.geometry()
	var b strings.Builder

	b.WriteString(e.renderToolbar())
	b.WriteString("\n")
	b.WriteString(e.renderPlayerPane(g))
	b.WriteString(e.renderDivider(0))
	b.WriteString("\n")
	b.WriteString(e.renderTracksPane(g))
	b.WriteString(e.renderDivider(1))
	b.WriteString("\n")
	b.WriteString(e.renderResultsPane(g))
	b.WriteString(e.renderStatusBar())

	if e.modalOpen {
		return e.overlayModal(b.String())
	}
	return b.String()
}

func (e *Editor) renderToolbar() string {
	t := e.theme
	active := lipgloss.NewStyle().Foreground(t.Base).Background(t.Primary).Padding(0, 1)
	idle := lipgloss.NewStyle().Foreground(t.Overlay).Padding(0, 1)

	tool := func(tl gesture.Tool, name string) string {
		if e.machine.Tool() == tl {
			return active.Render(name)
		}
		return idle.Render(name)
	}

	name := e.sess.Name
	if name == "" {
		name = "untitled"
	}
	if e.sess.Dirty() {
		name += " ●"
	}

	left := tool(gesture.ToolPointer, "1 pointer") +
		tool(gesture.ToolSegment, "2 segment") +
		tool(gesture.ToolTimestamp, "3 timestamp")
	right := lipgloss.NewStyle().Foreground(t.Text).Bold(true).Render(name)

	gap := e.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}
	return truncate.String(left+strings.Repeat(" ", gap)+right, uint(e.width))
}

func (e *Editor) renderPlayerPane(g geom) string {
	t := e.theme
	dur := e.sess.Duration()
	cur := e.sess.Player.CurrentTime()

	state := "⏸ paused"
	if e.sess.Player.Playing() {
		state = "▶ playing"
	}
	if dur <= 0 {
		state = "∅ no media loaded"
	}

	line1 := lipgloss.NewStyle().Foreground(t.Text).Bold(true).
		Render(fmt.Sprintf(" %s  %s / %s", state, project.FormatTime(cur), project.FormatTime(dur)))

	// Progress bar spans the same columns as the timeline surface so the
	// two playheads line up.
	bar := strings.Repeat(" ", g.headerW)
	filled := 0
	if dur > 0 {
		filled = int(float64(g.surfaceW) * cur / dur)
		if filled > g.surfaceW {
			filled = g.surfaceW
		}
	}
	bar += lipgloss.NewStyle().Foreground(t.Primary).Render(strings.Repeat("━", filled)) +
		lipgloss.NewStyle().Foreground(t.Surface1).Render(strings.Repeat("─", g.surfaceW-filled))

	rows := []string{line1, bar}
	var b strings.Builder
	for i := 0; i < g.paneH[panePlayer]; i++ {
		if i < len(rows) {
			b.WriteString(truncate.String(rows[i], uint(e.width)))
		}
		b.WriteString("\n")
	}
	return b.String()
}

func (e *Editor) renderTracksPane(g geom) string {
	var b strings.Builder
	b.WriteString(e.renderRuler(g))
	b.WriteString("\n")

	visible := e.sess.Tracks.VisibleCount()
	for row := 1; row < g.paneH[paneTracks]; row++ {
		lane := row - 1
		if lane < visible {
			b.WriteString(e.renderLane(g, lane))
		}
		b.WriteString("\n")
	}
	return b.String()
}

// renderRuler draws the time axis over the surface columns.
func (e *Editor) renderRuler(g geom) string {
	t := e.theme
	dur := e.sess.Duration()
	style := lipgloss.NewStyle().Foreground(t.Overlay)

	cells := make([]byte, g.surfaceW)
	for i := range cells {
		cells[i] = ' '
	}
	line := string(cells)
	if dur > 0 {
		// A label roughly every 12 columns, snapped to whole seconds.
		out := make([]rune, g.surfaceW)
		for i := range out {
			out[i] = '·'
		}
		for col := 0; col+8 < g.surfaceW; col += 12 {
			sec := dur * float64(col) / float64(g.surfaceW)
			lbl := project.FormatTime(sec)
			for j, r := range lbl {
				if col+j < g.surfaceW {
					out[col+j] = r
				}
			}
		}
		line = string(out)
	}
	return strings.Repeat(" ", g.headerW) + style.Render(line)
}

func (e *Editor) renderLane(g geom, lane int) string {
	t := e.theme
	abs := e.sess.Tracks.AbsIndex(lane)
	tr, ok := e.sess.Tracks.Get(abs)
	if !ok {
		return ""
	}

	// Header column: cursor marker, lock flag, name.
	marker := "  "
	if lane == e.trackCursor {
		marker = "▸ "
	}
	flag := " "
	if tr.Locked {
		flag = "🔒"
	}
	headStyle := lipgloss.NewStyle().Foreground(t.Text)
	if tr.Locked {
		headStyle = headStyle.Foreground(t.Locked)
	}
	if lane == e.trackCursor {
		headStyle = headStyle.Bold(true)
	}
	name := tr.Name
	if e.renaming && e.renameTrack == abs {
		name = e.renameInput.View()
	}
	head := marker + flag + util.PadLabel(util.TruncateLabel(name, g.headerW-4), g.headerW-4)

	return truncate.String(headStyle.Render(head)+e.renderSurfaceRow(g, abs), uint(e.width))
}

// renderSurfaceRow paints one track's annotations, the pending drag, and
// the playhead into surface columns.
func (e *Editor) renderSurfaceRow(g geom, abs int) string {
	t := e.theme
	type cell struct {
		ch    rune
		color lipgloss.Color
		sel   bool
	}
	row := make([]cell, g.surfaceW)
	for i := range row {
		row[i] = cell{ch: ' ', color: t.Text}
	}

	col := func(sec float64) int { return int(e.mapper.TimeToPixel(sec)) }

	paint := func(start, end float64, color lipgloss.Color, sel bool) {
		lo, hi := col(start), col(end)
		for c := lo; c <= hi; c++ {
			if c >= 0 && c < g.surfaceW {
				row[c] = cell{ch: []rune(segmentCell)[0], color: color, sel: sel}
			}
		}
	}

	if e.mapper.Valid() {
		for _, a := range e.sess.Store.ByTrack(abs) {
			sel := a.ID == e.selectedAnn
			switch a.Kind {
			case annotation.KindSegment:
				paint(a.StartTime, a.EndTime, labelColor(a.Label), sel)
			case annotation.KindTimestamp:
				c := col(a.StartTime)
				if c >= 0 && c < g.surfaceW {
					row[c] = cell{ch: []rune(timestampCell)[0], color: t.Marker, sel: sel}
				}
			}
		}
		if start, end, pendingTrack, ok := e.machine.PendingSegment(); ok && pendingTrack == abs {
			paint(start, end, t.Primary, false)
		}
		if c := col(e.sess.Player.CurrentTime()); c >= 0 && c < g.surfaceW {
			if row[c].ch == ' ' {
				row[c] = cell{ch: []rune(playheadCell)[0], color: t.Primary}
			}
		}
	}

	var b strings.Builder
	for _, c := range row {
		st := lipgloss.NewStyle().Foreground(c.color)
		if c.sel {
			st = st.Background(t.Surface0)
		}
		b.WriteString(st.Render(string(c.ch)))
	}
	return b.String()
}

func (e *Editor) renderDivider(i int) string {
	t := e.theme
	style := lipgloss.NewStyle().Foreground(t.Surface1)
	ch := "─"
	switch {
	case e.engine.Disabled(i):
		style = style.Foreground(t.Locked)
		ch = "┄"
	case e.focusDivider == i || e.dragDivider == i:
		style = style.Foreground(t.Primary)
		ch = "═"
	}
	return style.Render(strings.Repeat(ch, e.width))
}

func (e *Editor) renderResultsPane(g geom) string {
	t := e.theme
	anns := e.sess.Store.All()
	sort.SliceStable(anns, func(i, j int) bool { return anns[i].StartTime < anns[j].StartTime })

	timeStyle := lipgloss.NewStyle().Foreground(t.Overlay)
	labelStyle := lipgloss.NewStyle().Foreground(t.Text).Bold(true)
	descStyle := lipgloss.NewStyle().Foreground(t.Overlay)
	selStyle := lipgloss.NewStyle().Background(t.Surface0)

	var b strings.Builder
	for i := 0; i < g.paneH[paneResults]; i++ {
		if i < len(anns) {
			a := anns[i]
			span := project.FormatTime(a.StartTime)
			if a.Kind == annotation.KindSegment {
				span += "–" + project.FormatTime(a.EndTime)
			}
			tr, _ := e.sess.Tracks.Get(a.TrackIndex)
			line := fmt.Sprintf(" %s  %s  %s  %s",
				timeStyle.Render(util.PadLabel(span, 13)),
				labelStyle.Render(a.Label),
				timeStyle.Render("["+tr.Name+"]"),
				descStyle.Render(a.Description))
			line = truncate.StringWithTail(line, uint(e.width), "…")
			if a.ID == e.selectedAnn {
				line = selStyle.Render(line)
			}
			b.WriteString(line)
		} else if i == 0 {
			b.WriteString(timeStyle.Render(" no annotations yet — drag on a track with the segment tool"))
		}
		b.WriteString("\n")
	}
	return b.String()
}

func (e *Editor) renderStatusBar() string {
	t := e.theme
	style := lipgloss.NewStyle().Foreground(t.Overlay)

	var left string
	switch {
	case e.err != nil:
		left = lipgloss.NewStyle().Foreground(t.Red).Render("error: " + e.err.Error())
	case e.modalOpen:
		left = "choose a label · ←/→ group · ↑/↓ entry · i note · enter confirm · esc discard"
	case e.renaming:
		left = "rename track · enter confirm · esc cancel"
	case e.focusDivider >= 0:
		left = fmt.Sprintf("divider %d · ↑/↓ resize · r reset · esc done", e.focusDivider+1)
	case e.status != "":
		left = e.status
	default:
		left = "space play · 1/2/3 tools · a add track · d dividers · ctrl+s save · q quit"
	}

	right := e.machine.State().String()
	gap := e.width - lipgloss.Width(style.Render(left)) - len(right) - 1
	if gap < 1 {
		gap = 1
	}
	return style.Render(left) + strings.Repeat(" ", gap) + style.Render(right)
}

// overlayModal centers the label dialog over a dimmed frame. Lipgloss has
// no true compositing, so the dialog replaces the middle rows of the
// rendered frame.
func (e *Editor) overlayModal(frame string) string {
	title := "label timestamp"
	if d, ok := e.machine.Draft(); ok && d.Kind == annotation.KindSegment {
		title = fmt.Sprintf("label segment %s–%s",
			project.FormatTime(d.StartTime), project.FormatTime(d.EndTime))
	}
	dialog := e.modal.view(e.theme, min(e.width-8, 60), title)

	lines := strings.Split(frame, "\n")
	dlgLines := strings.Split(dialog, "\n")
	top := (len(lines) - len(dlgLines)) / 2
	if top < 1 {
		top = 1
	}
	pad := (e.width - lipgloss.Width(dlgLines[0])) / 2
	if pad < 0 {
		pad = 0
	}
	for i, dl := range dlgLines {
		if top+i < len(lines) {
			lines[top+i] = strings.Repeat(" ", pad) + dl
		}
	}
	return strings.Join(lines, "\n")
}
