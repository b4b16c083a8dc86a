// Package layout partitions a linear axis among adjacent resizable regions.
//
// Regions are percentages of the container's primary axis. Every divider is
// the sole control for the pair of regions it separates: moving it changes
// exactly those two sizes while their sum stays fixed, which is what keeps
// the global total pinned at 100 without re-normalizing on every frame.
package layout

import "fmt"

// Axis selects the primary direction of a layout instance.
type Axis int

const (
	Horizontal Axis = iota
	Vertical
)

// KeyboardStep is the percentage moved per arrow-key nudge.
const KeyboardStep = 1.0

// Config describes one layout instance. Region count is fixed for the
// instance's lifetime; dividers exist strictly between adjacent regions.
type Config struct {
	Axis Axis

	// InitialSizes are percentages summing to 100.
	InitialSizes []float64

	// MinSizes are per-region percentage floors, same length as InitialSizes.
	MinSizes []float64

	// GutterThickness is the hit area of a divider, in cells or pixels.
	GutterThickness float64

	// HandleThickness is the rendered portion of the gutter.
	HandleThickness float64

	// DisabledDividers lists divider indices that render no interactive
	// overlay and accept no input.
	DisabledDividers []int
}

// Engine holds the live sizes of one axis.
type Engine struct {
	cfg      Config
	sizes    []float64
	initial  []float64
	disabled map[int]bool
	drag     *dragState
}

type dragState struct {
	divider   int
	startPos  float64
	startLeft float64
	pairTotal float64
}

const sumTolerance = 1e-6

// New validates the configuration and returns an engine. Initial sizes must
// sum to 100 and respect the per-region minimums.
func New(cfg Config) (*Engine, error) {
	n := len(cfg.InitialSizes)
	if n == 0 {
		return nil, fmt.Errorf("layout: no regions")
	}
	if len(cfg.MinSizes) != n {
		return nil, fmt.Errorf("layout: %d min sizes for %d regions", len(cfg.MinSizes), n)
	}
	var sum, minSum float64
	for i, s := range cfg.InitialSizes {
		if s < cfg.MinSizes[i] {
			return nil, fmt.Errorf("layout: region %d size %.2f below minimum %.2f", i, s, cfg.MinSizes[i])
		}
		sum += s
		minSum += cfg.MinSizes[i]
	}
	if sum < 100-1e-3 || sum > 100+1e-3 {
		return nil, fmt.Errorf("layout: sizes sum to %.4f, want 100", sum)
	}
	if minSum > 100 {
		return nil, fmt.Errorf("layout: minimums sum to %.4f, exceed 100", minSum)
	}

	e := &Engine{
		cfg:      cfg,
		sizes:    append([]float64(nil), cfg.InitialSizes...),
		initial:  append([]float64(nil), cfg.InitialSizes...),
		disabled: make(map[int]bool, len(cfg.DisabledDividers)),
	}
	for _, d := range cfg.DisabledDividers {
		e.disabled[d] = true
	}
	return e, nil
}

// Config returns the configuration the engine was built with.
func (e *Engine) Config() Config { return e.cfg }

// Sizes returns a copy of the current region percentages.
func (e *Engine) Sizes() []float64 {
	return append([]float64(nil), e.sizes...)
}

// Size returns the current percentage of one region.
func (e *Engine) Size(i int) float64 {
	if i < 0 || i >= len(e.sizes) {
		return 0
	}
	return e.sizes[i]
}

// Dividers returns the number of dividers (regions − 1).
func (e *Engine) Dividers() int { return len(e.sizes) - 1 }

// Disabled reports whether the divider accepts input.
func (e *Engine) Disabled(divider int) bool {
	return divider < 0 || divider >= e.Dividers() || e.disabled[divider]
}

// BeginDrag starts a drag session on the given divider at the given pointer
// position along the axis. Returns false when the divider is disabled or a
// drag is already active.
func (e *Engine) BeginDrag(divider int, pos float64) bool {
	if e.Disabled(divider) || e.drag != nil {
		return false
	}
	e.drag = &dragState{
		divider:   divider,
		startPos:  pos,
		startLeft: e.sizes[divider],
		pairTotal: e.sizes[divider] + e.sizes[divider+1],
	}
	return true
}

// DragTo updates the active drag from the current pointer position. The
// delta is normalized by the container extent in the same units as pos.
// No-op when no drag is active or the extent is degenerate.
func (e *Engine) DragTo(pos, extent float64) {
	d := e.drag
	if d == nil || extent <= 0 {
		return
	}
	deltaPercent := (pos - d.startPos) / extent * 100
	e.setPair(d.divider, d.startLeft+deltaPercent, d.pairTotal)
}

// EndDrag terminates the active drag session, if any.
func (e *Engine) EndDrag() { e.drag = nil }

// Dragging reports whether a drag session is active.
func (e *Engine) Dragging() bool { return e.drag != nil }

// Nudge moves the divider by one keyboard step. Direction −1 shrinks the
// left region, +1 grows it.
func (e *Engine) Nudge(divider, direction int) {
	if e.Disabled(divider) {
		return
	}
	pairTotal := e.sizes[divider] + e.sizes[divider+1]
	e.setPair(divider, e.sizes[divider]+float64(direction)*KeyboardStep, pairTotal)
}

// ResetPair restores the pair's initial proportions, rescaled to the pair's
// current total so other pairs are never disturbed. Bound to double-click.
func (e *Engine) ResetPair(divider int) {
	if e.Disabled(divider) {
		return
	}
	pairTotal := e.sizes[divider] + e.sizes[divider+1]
	initTotal := e.initial[divider] + e.initial[divider+1]
	if initTotal <= 0 {
		return
	}
	e.setPair(divider, e.initial[divider]/initTotal*pairTotal, pairTotal)
}

// setPair applies the clamp shared by drag, keyboard and reset: the left
// region lands in [minLeft, pairTotal−minRight] and the right region takes
// the remainder.
func (e *Engine) setPair(divider int, desiredLeft, pairTotal float64) {
	lo := e.cfg.MinSizes[divider]
	hi := pairTotal - e.cfg.MinSizes[divider+1]
	if hi < lo {
		// Pair cannot satisfy both minimums; leave it untouched.
		return
	}
	if desiredLeft < lo {
		desiredLeft = lo
	}
	if desiredLeft > hi {
		desiredLeft = hi
	}
	e.sizes[divider] = desiredLeft
	e.sizes[divider+1] = pairTotal - desiredLeft
}
