package resize

import (
	"github.com/matzehuels/forgeboard/pkg/layout"
	"github.com/matzehuels/forgeboard/pkg/tier"
)

// Phase is the state of a drag-resize interaction.
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

// Event is a pointer event fed to [Engine.Handle].
type Event interface{ isEvent() }

// PointerDown starts a drag on the resize handle of Key.
type PointerDown struct {
	Key       string
	PointerID int
	At        layout.Point
	WidthPx   float64
	HeightPx  float64
	StartTier tier.Tier
}

// PointerMove reports pointer motion.
type PointerMove struct {
	PointerID int
	At        layout.Point
}

// PointerUp releases the pointer.
type PointerUp struct {
	PointerID int
	At        layout.Point
}

// Cancel aborts the drag, e.g. on Escape or pointercancel.
type Cancel struct{}

func (PointerDown) isEvent() {}
func (PointerMove) isEvent() {}
func (PointerUp) isEvent()   {}
func (Cancel) isEvent()      {}

// OutcomeKind classifies the effect of a handled event.
type OutcomeKind int

const (
	// Ignored means the event did not apply to the current phase.
	Ignored OutcomeKind = iota
	Started
	Previewed
	// Committed means the drag ended on a different tier.
	Committed
	// Unchanged means the drag ended on the tier it started from.
	Unchanged
	Cancelled
)

// Preview is the live pixel size shown while dragging. It is never persisted.
type Preview struct {
	WidthPx  float64
	HeightPx float64
}

// Outcome is the result of handling one event.
type Outcome struct {
	Kind    OutcomeKind
	Key     string
	Preview Preview
	From    tier.Tier
	To      tier.Tier
}

// Apply writes a committed tier into tiers. Other outcomes are no-ops.
func (o Outcome) Apply(tiers layout.Tiers) bool {
	if o.Kind != Committed || tiers == nil {
		return false
	}
	tiers.Set(o.Key, o.To)
	return true
}

type drag struct {
	key       string
	pointerID int
	origin    layout.Point
	startTier tier.Tier
	startW    float64
	startH    float64
}

// Engine is the drag-resize state machine. The zero value is not usable; use
// [NewEngine]. An Engine is not safe for concurrent use.
type Engine struct {
	colUnit  float64
	rowUnit  float64
	viewport layout.Rect
	phase    Phase
	drag     drag
}

// NewEngine returns an idle engine for a viewport of the given size in
// pixels. A non-positive height disables the vertical off-screen check.
func NewEngine(viewportWidth, viewportHeight int) *Engine {
	e := &Engine{colUnit: ColumnUnitPx}
	e.SetViewport(viewportWidth, viewportHeight)
	return e
}

// SetViewport updates the viewport size and the derived row unit.
func (e *Engine) SetViewport(width, height int) {
	e.rowUnit = RowUnitPx(width)
	e.viewport = layout.Rect{Right: float64(width), Bottom: float64(height)}
}

// Phase returns the current phase.
func (e *Engine) Phase() Phase { return e.phase }

// Active returns the key being resized, if any.
func (e *Engine) Active() (string, bool) {
	if e.phase != Dragging {
		return "", false
	}
	return e.drag.key, true
}

// RowUnit returns the row unit in pixels for the current viewport.
func (e *Engine) RowUnit() float64 { return e.rowUnit }

// Handle advances the state machine by one event.
func (e *Engine) Handle(ev Event) Outcome {
	switch ev := ev.(type) {
	case PointerDown:
		return e.down(ev)
	case PointerMove:
		return e.move(ev)
	case PointerUp:
		return e.up(ev)
	case Cancel:
		return e.cancel()
	}
	return Outcome{Kind: Ignored}
}

func (e *Engine) down(ev PointerDown) Outcome {
	if e.phase == Dragging {
		// A second pointer while dragging is a multi-touch conflict.
		return e.cancel()
	}
	start := ev.StartTier
	if !start.Valid() {
		start = tier.Small
	}
	e.phase = Dragging
	e.drag = drag{
		key:       ev.Key,
		pointerID: ev.PointerID,
		origin:    ev.At,
		startTier: start,
		startW:    ev.WidthPx,
		startH:    ev.HeightPx,
	}
	return Outcome{
		Kind:    Started,
		Key:     ev.Key,
		From:    start,
		To:      start,
		Preview: Preview{WidthPx: ev.WidthPx, HeightPx: ev.HeightPx},
	}
}

func (e *Engine) move(ev PointerMove) Outcome {
	if e.phase != Dragging || ev.PointerID != e.drag.pointerID {
		return Outcome{Kind: Ignored}
	}
	d := ev.At.Sub(e.drag.origin)
	return Outcome{
		Kind: Previewed,
		Key:  e.drag.key,
		From: e.drag.startTier,
		To:   e.snapAt(d),
		Preview: Preview{
			WidthPx:  max(e.drag.startW+d.X, e.colUnit),
			HeightPx: max(e.drag.startH+d.Y, e.rowUnit),
		},
	}
}

func (e *Engine) up(ev PointerUp) Outcome {
	if e.phase != Dragging || ev.PointerID != e.drag.pointerID {
		return Outcome{Kind: Ignored}
	}
	if !e.onScreen(ev.At) {
		return e.cancel()
	}
	d := ev.At.Sub(e.drag.origin)
	snapped := e.snapAt(d)
	out := Outcome{Key: e.drag.key, From: e.drag.startTier, To: snapped, Kind: Unchanged}
	if snapped != e.drag.startTier {
		out.Kind = Committed
	}
	e.reset()
	return out
}

func (e *Engine) cancel() Outcome {
	if e.phase != Dragging {
		return Outcome{Kind: Ignored}
	}
	out := Outcome{Kind: Cancelled, Key: e.drag.key, From: e.drag.startTier, To: e.drag.startTier}
	e.reset()
	return out
}

func (e *Engine) reset() {
	e.phase = Idle
	e.drag = drag{}
}

// snapAt converts a pixel delta into final grid units and snaps them.
func (e *Engine) snapAt(d layout.Point) tier.Tier {
	span := e.drag.startTier.Span()
	cols := float64(span.Cols) + d.X/e.colUnit
	rows := float64(span.Rows) + d.Y/e.rowUnit
	return Snap(cols, rows)
}

func (e *Engine) onScreen(p layout.Point) bool {
	if p.X < e.viewport.Left || p.Y < e.viewport.Top {
		return false
	}
	if e.viewport.Right > 0 && p.X > e.viewport.Right {
		return false
	}
	if e.viewport.Bottom > 0 && p.Y > e.viewport.Bottom {
		return false
	}
	return true
}
