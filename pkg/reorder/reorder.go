// Package reorder resolves drag-and-drop targets on the dashboard grid and
// applies live reordering to a layout model.
//
// Dragging an existing widget moves it to the index of whatever box the
// pointer is closest to on every pointer-over, so the grid reflows while the
// drag is in flight. The dragged widget's own box is a candidate too; while
// it is the closest box nothing moves. Dragging a widget out of the library adds it to the end
// of the layout when it is dropped inside the grid. A drag that ends anywhere
// else keeps whatever live reorders already happened.
package reorder

import (
	"math"

	"github.com/matzehuels/forgeboard/pkg/errors"
	"github.com/matzehuels/forgeboard/pkg/layout"
)

// Target is a rendered bounding box that can receive a drop.
type Target struct {
	Key string
	Box layout.Rect
}

// Targets converts a packed grid into pixel bounding boxes.
func Targets(g layout.Grid, colPx, rowPx float64) []Target {
	out := make([]Target, len(g.Placements))
	for i, p := range g.Placements {
		out[i] = Target{Key: p.Key, Box: p.Bounds(colPx, rowPx)}
	}
	return out
}

// Closest returns the key of the target whose four corners have the smallest
// summed distance to p. Ties go to the earliest target. The target named by
// exclude is never returned.
func Closest(p layout.Point, targets []Target, exclude string) (string, bool) {
	best, bestKey := math.Inf(1), ""
	for _, t := range targets {
		if t.Key == exclude {
			continue
		}
		var d float64
		for _, c := range t.Box.Corners() {
			d += p.Dist(c)
		}
		if d < best {
			best, bestKey = d, t.Key
		}
	}
	return bestKey, bestKey != ""
}

// Phase is the state of a drag.
type Phase int

const (
	Idle Phase = iota
	Dragging
)

func (p Phase) String() string {
	if p == Dragging {
		return "dragging"
	}
	return "idle"
}

// Source identifies where a dragged widget came from.
type Source int

const (
	FromGrid Source = iota
	FromLibrary
)

// Engine drives drag-and-drop against a model. It is not safe for concurrent
// use.
type Engine struct {
	model  *layout.Model
	phase  Phase
	key    string
	source Source
	over   string
}

// NewEngine returns an idle engine mutating m.
func NewEngine(m *layout.Model) *Engine {
	return &Engine{model: m}
}

// SetModel points the engine at a different model and ends any drag.
func (e *Engine) SetModel(m *layout.Model) {
	e.model = m
	e.reset()
}

// Phase returns the current phase.
func (e *Engine) Phase() Phase { return e.phase }

// Active returns the dragged key and its source while dragging.
func (e *Engine) Active() (string, Source, bool) {
	return e.key, e.source, e.phase == Dragging
}

// Hovered returns the key of the last resolved drop target.
func (e *Engine) Hovered() string { return e.over }

// Start begins dragging key. A grid drag requires key to be placed; a
// library drag requires key to be in the catalog and not yet placed.
// Starting a new drag ends the previous one without reverting it.
func (e *Engine) Start(key string, src Source) error {
	switch src {
	case FromGrid:
		if !e.model.Contains(key) {
			return errors.New(errors.ErrCodeNotFound, "widget %q is not on the dashboard", key)
		}
	case FromLibrary:
		if !e.model.Catalog().Has(key) {
			return errors.New(errors.ErrCodeUnknownWidget, "unknown widget %q", key)
		}
		if e.model.Contains(key) {
			return errors.New(errors.ErrCodeDuplicateKey, "widget %q is already on the dashboard", key)
		}
	default:
		return errors.New(errors.ErrCodeInvalidInput, "unknown drag source %d", src)
	}
	e.phase, e.key, e.source, e.over = Dragging, key, src, ""
	return nil
}

// Over resolves the drop target under p and, for grid drags, moves the
// dragged widget to the target's index. Hovering the dragged widget's own
// box is a no-op. It reports whether the order changed.
func (e *Engine) Over(p layout.Point, targets []Target) bool {
	if e.phase != Dragging {
		return false
	}
	target, ok := Closest(p, targets, "")
	if !ok {
		return false
	}
	e.over = target
	if e.source != FromGrid || target == e.key {
		return false
	}
	idx := e.model.IndexOf(target)
	if idx < 0 {
		return false
	}
	return e.model.Move(e.key, idx)
}

// Drop ends the drag at p. A library widget dropped inside grid is appended
// to the layout; a drop outside grid adds nothing. Grid drags are already
// applied by [Engine.Over], so dropping only ends them.
func (e *Engine) Drop(p layout.Point, grid layout.Rect) (added bool, err error) {
	if e.phase != Dragging {
		return false, nil
	}
	key, src := e.key, e.source
	e.reset()
	if src != FromLibrary || !grid.Contains(p) {
		return false, nil
	}
	if err := e.model.Add(key); err != nil {
		return false, err
	}
	return true, nil
}

// Cancel ends the drag without reverting live reorders.
func (e *Engine) Cancel() {
	e.reset()
}

func (e *Engine) reset() {
	e.phase, e.key, e.source, e.over = Idle, "", FromGrid, ""
}
