// Package tui is the interactive editor shell: a Bubble Tea program that
// feeds pointer and keyboard input to the gesture machine and renders the
// session onto a resizable three-pane layout (player, tracks, results).
package tui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/tapemark/tapemark/internal/annotation"
	"github.com/tapemark/tapemark/internal/config"
	"github.com/tapemark/tapemark/internal/gesture"
	"github.com/tapemark/tapemark/internal/label"
	"github.com/tapemark/tapemark/internal/layout"
	"github.com/tapemark/tapemark/internal/session"
	"github.com/tapemark/tapemark/internal/timeline"
	"github.com/tapemark/tapemark/internal/track"
)

// pane indices on the vertical axis.
const (
	panePlayer = iota
	paneTracks
	paneResults
)

const doubleClickWindow = 400 * time.Millisecond

// TickMsg drives the playhead display and autosave.
type TickMsg time.Time

// LabelsReloadedMsg carries a freshly parsed taxonomy from the file watcher.
type LabelsReloadedMsg struct{ Taxonomy *label.Taxonomy }

// Editor is the Bubble Tea model for one editing session.
type Editor struct {
	cfg     config.Config
	theme   Theme
	keys    KeyMap
	sess    *session.Session
	machine *gesture.Machine
	mapper  *timeline.Mapper
	engine  *layout.Engine
	tax     *label.Taxonomy

	labelCh <-chan *label.Taxonomy

	width  int
	height int

	trackCursor int    // cursor over visible lanes
	selectedAnn string // annotation id, "" when none

	modal     labelModal
	modalOpen bool

	renaming    bool
	renameInput textinput.Model
	renameTrack int

	focusDivider int // keyboard-focused divider, -1 when none
	dragDivider  int // divider under an active mouse drag, -1 when none

	lastClickAt      time.Time
	lastClickDivider int

	projectPath string
	lastSave    time.Time
	status      string
	err         error
	quitting    bool
}

// NewEditor assembles the editor over an open session. labelCh may be nil
// when no taxonomy watcher is running; projectPath may be empty for an
// unsaved scratch session.
func NewEditor(cfg config.Config, sess *session.Session, tax *label.Taxonomy, projectPath string, labelCh <-chan *label.Taxonomy) (*Editor, error) {
	if tax == nil || tax.Empty() {
		tax = label.New(cfg.DefaultLabels)
	}

	engine, err := layout.New(layout.Config{
		Axis:             layout.Vertical,
		InitialSizes:     cfg.Layout.Sizes,
		MinSizes:         cfg.Layout.MinSizes,
		GutterThickness:  cfg.Layout.GutterThickness,
		HandleThickness:  cfg.Layout.HandleThickness,
		DisabledDividers: cfg.Layout.DisabledDividers,
	})
	if err != nil {
		return nil, fmt.Errorf("layout: %w", err)
	}

	e := &Editor{
		cfg:          cfg,
		theme:        ThemeByName(cfg.Theme),
		keys:         DefaultKeyMap(),
		sess:         sess,
		engine:       engine,
		tax:          tax,
		labelCh:      labelCh,
		projectPath:  projectPath,
		focusDivider: -1,
		dragDivider:  -1,
		lastSave:     time.Now(),
	}
	e.mapper = timeline.NewMapper(
		timeline.SurfaceFunc(e.surface),
		sess.Duration,
	)
	e.machine = gesture.New(sess.Store, sess.Tracks, e.mapper, sess, sess.Player)
	e.modal = newLabelModal(tax)
	e.renameInput = textinput.New()
	e.renameInput.CharLimit = 60
	return e, nil
}

// surface reports the live geometry of the timeline surface in terminal
// cells. It is re-evaluated by the mapper on every conversion, so window
// resizes between events are always observed.
func (e *Editor) surface() timeline.Surface {
	g := e.geometry()
	return timeline.Surface{Left: float64(g.headerW), Width: float64(g.surfaceW)}
}

// Init implements tea.Model.
func (e *Editor) Init() tea.Cmd {
	cmds := []tea.Cmd{tick()}
	if e.labelCh != nil {
		cmds = append(cmds, waitForLabels(e.labelCh))
	}
	return tea.Batch(cmds...)
}

func tick() tea.Cmd {
	return tea.Tick(500*time.Millisecond, func(t time.Time) tea.Msg { return TickMsg(t) })
}

func waitForLabels(ch <-chan *label.Taxonomy) tea.Cmd {
	return func() tea.Msg {
		tax, ok := <-ch
		if !ok {
			return nil
		}
		return LabelsReloadedMsg{Taxonomy: tax}
	}
}

// Update implements tea.Model.
func (e *Editor) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		e.width = msg.Width
		e.height = msg.Height
		return e, nil

	case TickMsg:
		e.autosave()
		return e, tick()

	case LabelsReloadedMsg:
		if msg.Taxonomy != nil {
			e.tax = msg.Taxonomy
			e.modal.setTaxonomy(msg.Taxonomy)
		}
		if e.labelCh != nil {
			return e, waitForLabels(e.labelCh)
		}
		return e, nil

	case tea.MouseMsg:
		e.handleMouse(msg)
		e.syncModal()
		return e, nil

	case tea.KeyMsg:
		cmd := e.handleKey(msg)
		e.syncModal()
		return e, cmd
	}
	return e, nil
}

// syncModal opens the label dialog whenever the machine entered
// AwaitingLabel and closes it when the draft resolved.
func (e *Editor) syncModal() {
	_, pending := e.machine.Draft()
	if pending && !e.modalOpen {
		e.modal.reset()
		e.modalOpen = true
	}
	if !pending && e.modalOpen {
		e.modalOpen = false
	}
}

func (e *Editor) autosave() {
	if !e.cfg.Autosave.Enabled || e.projectPath == "" || !e.sess.Dirty() {
		return
	}
	interval := time.Duration(e.cfg.Autosave.IntervalSeconds) * time.Second
	if time.Since(e.lastSave) < interval {
		return
	}
	e.save()
}

func (e *Editor) save() {
	if e.projectPath == "" {
		e.status = "no project path; use tapemark edit <file>"
		return
	}
	if err := e.sess.SaveTo(e.projectPath); err != nil {
		e.err = err
		return
	}
	e.err = nil
	e.lastSave = time.Now()
	e.status = "saved " + e.lastSave.Format("15:04:05")
}

// --- mouse ---------------------------------------------------------------

func (e *Editor) handleMouse(msg tea.MouseMsg) {
	if e.modalOpen || e.renaming {
		return
	}

	switch msg.Action {
	case tea.MouseActionPress:
		switch msg.Button {
		case tea.MouseButtonLeft:
			e.press(msg.X, msg.Y)
		case tea.MouseButtonWheelUp:
			e.seekBy(-e.cfg.SeekStep)
		case tea.MouseButtonWheelDown:
			e.seekBy(e.cfg.SeekStep)
		}
	case tea.MouseActionMotion:
		e.motion(msg.X, msg.Y)
	case tea.MouseActionRelease:
		e.release(msg.X, msg.Y)
	}
}

func (e *Editor) press(x, y int) {
	g := e.geometry()

	// Divider rows are layout controls, not timeline surface.
	if d := g.dividerAt(y); d >= 0 {
		if !e.engine.Disabled(d) {
			if d == e.lastClickDivider && time.Since(e.lastClickAt) < doubleClickWindow {
				e.engine.ResetPair(d)
			} else {
				e.engine.BeginDrag(d, float64(y))
				e.dragDivider = d
			}
		}
		e.lastClickAt = time.Now()
		e.lastClickDivider = d
		return
	}
	e.lastClickDivider = -1

	lane, inTracks := g.laneAt(y)
	if !inTracks {
		return
	}

	// Header column selects the track without touching the surface.
	if x < g.headerW {
		if lane >= 0 && lane < e.sess.Tracks.VisibleCount() {
			e.trackCursor = lane
		}
		return
	}

	target, annID := e.hitTest(g, x, lane)
	if annID != "" {
		e.selectedAnn = annID
	}
	e.machine.Handle(gesture.Event{
		Phase:        gesture.PhasePress,
		Target:       target,
		X:            float64(x),
		Lane:         lane,
		AnnotationID: annID,
	})
}

func (e *Editor) motion(x, y int) {
	if e.dragDivider >= 0 {
		g := e.geometry()
		e.engine.DragTo(float64(y), float64(g.avail))
		return
	}
	e.machine.Handle(gesture.Event{Phase: gesture.PhaseMove, X: float64(x)})
}

func (e *Editor) release(x, y int) {
	if e.dragDivider >= 0 {
		e.engine.EndDrag()
		e.dragDivider = -1
		return
	}
	e.machine.Handle(gesture.Event{Phase: gesture.PhaseRelease, X: float64(x)})
}

// hitTest resolves what sits under the pointer within a lane. Later records
// draw on top, so the scan runs back to front.
func (e *Editor) hitTest(g geom, x, lane int) (gesture.TargetKind, string) {
	abs := e.sess.Tracks.AbsIndex(lane)
	if abs == track.NotVisible {
		return gesture.TargetSurface, ""
	}
	anns := e.sess.Store.ByTrack(abs)
	for i := len(anns) - 1; i >= 0; i-- {
		a := anns[i]
		switch a.Kind {
		case annotation.KindSegment:
			startCol := g.headerW + int(e.mapper.TimeToPixel(a.StartTime))
			endCol := g.headerW + int(e.mapper.TimeToPixel(a.EndTime))
			switch {
			case x == startCol:
				return gesture.TargetSegmentStart, a.ID
			case x == endCol:
				return gesture.TargetSegmentEnd, a.ID
			case x > startCol && x < endCol:
				return gesture.TargetSegmentBody, a.ID
			}
		case annotation.KindTimestamp:
			if x == g.headerW+int(e.mapper.TimeToPixel(a.StartTime)) {
				// Timestamps are selectable but not draggable.
				e.selectedAnn = a.ID
			}
		}
	}
	return gesture.TargetSurface, ""
}

// --- keys ----------------------------------------------------------------

func (e *Editor) handleKey(msg tea.KeyMsg) tea.Cmd {
	if e.modalOpen {
		return e.handleModalKey(msg)
	}
	if e.renaming {
		return e.handleRenameKey(msg)
	}
	if e.focusDivider >= 0 {
		if e.handleDividerKey(msg) {
			return nil
		}
	}

	switch {
	case key.Matches(msg, e.keys.Quit):
		e.quitting = true
		if e.sess.Dirty() && e.projectPath != "" {
			e.save()
		}
		return tea.Quit

	case key.Matches(msg, e.keys.Save):
		e.save()

	case key.Matches(msg, e.keys.PointerTool):
		e.machine.SetTool(gesture.ToolPointer)
	case key.Matches(msg, e.keys.SegmentTool):
		e.machine.SetTool(gesture.ToolSegment)
	case key.Matches(msg, e.keys.TimestampTool):
		e.machine.SetTool(gesture.ToolTimestamp)

	case key.Matches(msg, e.keys.PlayPause):
		e.sess.Player.Toggle()
	case key.Matches(msg, e.keys.SeekBack):
		e.seekBy(-e.cfg.SeekStep)
	case key.Matches(msg, e.keys.SeekForward):
		e.seekBy(e.cfg.SeekStep)
	case key.Matches(msg, e.keys.MarkPlayhead):
		e.machine.PlaceAtPlayhead()

	case key.Matches(msg, e.keys.TrackUp):
		if e.trackCursor > 0 {
			e.trackCursor--
		}
	case key.Matches(msg, e.keys.TrackDown):
		if e.trackCursor < e.sess.Tracks.VisibleCount()-1 {
			e.trackCursor++
		}

	case key.Matches(msg, e.keys.AddTrack):
		e.sess.Tracks.Add()
		e.sess.TrackMutated()
	case key.Matches(msg, e.keys.RenameTrack):
		e.startRename()
	case key.Matches(msg, e.keys.LockTrack):
		if abs := e.cursorTrack(); abs != track.NotVisible {
			e.sess.Tracks.ToggleLock(abs)
			e.sess.TrackMutated()
		}
	case key.Matches(msg, e.keys.HideTrack):
		if abs := e.cursorTrack(); abs != track.NotVisible {
			e.sess.Tracks.ToggleHidden(abs)
			e.sess.TrackMutated()
			e.clampTrackCursor()
		}
	case key.Matches(msg, e.keys.DeleteTrack):
		if abs := e.cursorTrack(); abs != track.NotVisible {
			e.sess.Tracks.Delete(abs, e.sess.Store)
			e.sess.TrackMutated()
			e.clampTrackCursor()
		}

	case key.Matches(msg, e.keys.CycleAnnotation):
		e.cycleAnnotation()
	case key.Matches(msg, e.keys.DeleteAnnotation):
		if e.selectedAnn != "" {
			e.machine.DeleteTarget(e.selectedAnn)
			e.selectedAnn = ""
		}

	case key.Matches(msg, e.keys.FocusDivider):
		e.cycleDividerFocus()
	case key.Matches(msg, e.keys.Esc):
		e.focusDivider = -1
		e.selectedAnn = ""
	}
	return nil
}

func (e *Editor) handleModalKey(msg tea.KeyMsg) tea.Cmd {
	if e.modal.descActive {
		switch msg.String() {
		case "esc":
			e.modal.descActive = false
			e.modal.desc.Blur()
			return nil
		case "enter":
			e.commitModal()
			return nil
		}
		var cmd tea.Cmd
		e.modal.desc, cmd = e.modal.desc.Update(msg)
		return cmd
	}

	switch msg.String() {
	case "esc":
		e.machine.Cancel()
	case "enter":
		e.commitModal()
	case "left", "h":
		e.modal.nextGroup(-1)
	case "right", "l":
		e.modal.nextGroup(1)
	case "up", "k":
		e.modal.nextEntry(-1)
	case "down", "j":
		e.modal.nextEntry(1)
	case "i":
		e.modal.descActive = true
		return e.modal.desc.Focus()
	}
	return nil
}

func (e *Editor) commitModal() {
	// Commit refuses an empty label; the modal stays open until a label is
	// chosen or the user cancels.
	if _, ok := e.machine.Commit(e.modal.selected(), e.modal.description()); ok {
		e.status = "annotation added"
	}
}

func (e *Editor) handleRenameKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "esc":
		e.renaming = false
		e.renameInput.Blur()
		return nil
	case "enter":
		e.sess.Tracks.Rename(e.renameTrack, e.renameInput.Value())
		e.sess.TrackMutated()
		e.renaming = false
		e.renameInput.Blur()
		return nil
	}
	var cmd tea.Cmd
	e.renameInput, cmd = e.renameInput.Update(msg)
	return cmd
}

func (e *Editor) startRename() {
	abs := e.cursorTrack()
	if abs == track.NotVisible {
		return
	}
	t, _ := e.sess.Tracks.Get(abs)
	e.renameTrack = abs
	e.renameInput.SetValue(t.Name)
	e.renaming = true
	e.renameInput.Focus()
}

// handleDividerKey consumes keys while a divider is keyboard-focused.
// Returns true when the key was handled.
func (e *Editor) handleDividerKey(msg tea.KeyMsg) bool {
	switch {
	case key.Matches(msg, e.keys.DividerShrink):
		e.engine.Nudge(e.focusDivider, -1)
		return true
	case key.Matches(msg, e.keys.DividerGrow):
		e.engine.Nudge(e.focusDivider, 1)
		return true
	case key.Matches(msg, e.keys.DividerReset):
		e.engine.ResetPair(e.focusDivider)
		return true
	}
	return false
}

func (e *Editor) cycleDividerFocus() {
	n := e.engine.Dividers()
	for next := e.focusDivider + 1; next < n; next++ {
		if !e.engine.Disabled(next) {
			e.focusDivider = next
			return
		}
	}
	e.focusDivider = -1
}

func (e *Editor) cursorTrack() int {
	return e.sess.Tracks.AbsIndex(e.trackCursor)
}

func (e *Editor) clampTrackCursor() {
	if n := e.sess.Tracks.VisibleCount(); e.trackCursor >= n {
		e.trackCursor = n - 1
	}
	if e.trackCursor < 0 {
		e.trackCursor = 0
	}
}

func (e *Editor) seekBy(delta float64) {
	if e.sess.Duration() <= 0 {
		return
	}
	t := e.sess.Player.CurrentTime() + delta
	if t < 0 {
		t = 0
	}
	if d := e.sess.Duration(); t > d {
		t = d
	}
	e.sess.Seek(t)
}

// cycleAnnotation walks the cursor track's annotations in start order.
func (e *Editor) cycleAnnotation() {
	abs := e.cursorTrack()
	if abs == track.NotVisible {
		return
	}
	anns := e.sess.Store.ByTrack(abs)
	if len(anns) == 0 {
		return
	}
	for i, a := range anns {
		if a.ID == e.selectedAnn {
			e.selectedAnn = anns[(i+1)%len(anns)].ID
			return
		}
	}
	e.selectedAnn = anns[0].ID
}

// --- geometry ------------------------------------------------------------

// geom is the resolved cell layout for one frame. Rebuilt per event and per
// render; nothing here is cached across input events.
type geom struct {
	headerW  int
	surfaceW int
	avail    int    // rows shared by the three panes
	paneTop  [3]int // first content row of each pane
	paneH    [3]int
	divRow   [2]int
}

const headerWidth = 16

func (e *Editor) geometry() geom {
	g := geom{headerW: headerWidth}
	g.surfaceW = e.width - headerWidth
	if g.surfaceW < 1 {
		g.surfaceW = 1
	}

	// Row 0 is the toolbar, the last row the status bar; two divider rows
	// sit between the three panes.
	g.avail = e.height - 2 - 2
	if g.avail < 3 {
		g.avail = 3
	}

	sizes := e.engine.Sizes()
	used := 0
	for i := 0; i < 3; i++ {
		h := int(sizes[i] * float64(g.avail) / 100)
		if h < 1 {
			h = 1
		}
		g.paneH[i] = h
		used += h
	}
	// Hand rounding leftovers to the tracks pane.
	if diff := g.avail - used; diff != 0 {
		g.paneH[paneTracks] += diff
		if g.paneH[paneTracks] < 1 {
			g.paneH[paneTracks] = 1
		}
	}

	row := 1
	for i := 0; i < 3; i++ {
		g.paneTop[i] = row
		row += g.paneH[i]
		if i < 2 {
			g.divRow[i] = row
			row++
		}
	}
	return g
}

// dividerAt returns the divider index on row y, or -1.
func (g geom) dividerAt(y int) int {
	for i, r := range g.divRow {
		if y == r {
			return i
		}
	}
	return -1
}

// laneAt resolves a row within the tracks pane to a visible lane. The first
// pane row is the time ruler, each following row is one lane. The bool is
// false outside the tracks pane; a lane of track.NotVisible means dead
// space below the last lane (seek still works there).
func (g geom) laneAt(y int) (int, bool) {
	top := g.paneTop[paneTracks]
	if y < top || y >= top+g.paneH[paneTracks] {
		return 0, false
	}
	if y == top {
		return track.NotVisible, true // ruler row
	}
	return y - top - 1, true
}
