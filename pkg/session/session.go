// Package session provides the dashboard editing session.
//
// A [Dashboard] owns the live layout of one user: the widget order, the tier
// assignment, and the drag engines that mutate them. It is the only mutation
// API for a layout; surfaces (the terminal editor, the HTTP API) drive it and
// render from it.
//
// # Persistence
//
// Writes issued from a session (persisting the current layout, saving,
// overwriting and deleting snapshots) are dispatched on background
// goroutines with copies of the state. The in-memory change is applied
// immediately and is never rolled back. Failures are delivered to the
// session's [Notifier]; [Dashboard.Wait] blocks until every dispatched write
// has finished.
//
//	d, err := session.Open(ctx, st, "local", session.WithNotifier(n))
//	d.BeginEdit()
//	d.Add("releases")
//	d.Cycle("releases")
//	d.EndEdit(ctx) // persists asynchronously
//	d.Wait()
//
// A Dashboard is not safe for concurrent use.
package session

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/forgeboard/pkg/catalog"
	"github.com/matzehuels/forgeboard/pkg/codec"
	"github.com/matzehuels/forgeboard/pkg/errors"
	"github.com/matzehuels/forgeboard/pkg/layout"
	"github.com/matzehuels/forgeboard/pkg/observability"
	"github.com/matzehuels/forgeboard/pkg/reorder"
	"github.com/matzehuels/forgeboard/pkg/resize"
	"github.com/matzehuels/forgeboard/pkg/store"
	"github.com/matzehuels/forgeboard/pkg/tier"
)

// Notifier receives failures of background writes.
type Notifier interface {
	Notify(op string, err error)
}

// NotifierFunc adapts a function to [Notifier].
type NotifierFunc func(op string, err error)

// Notify calls f.
func (f NotifierFunc) Notify(op string, err error) { f(op, err) }

// Option configures a Dashboard.
type Option func(*Dashboard)

// WithNotifier sets the receiver of background write failures.
func WithNotifier(n Notifier) Option {
	return func(d *Dashboard) {
		if n != nil {
			d.notifier = n
		}
	}
}

// WithLogger sets the session logger.
func WithLogger(l *log.Logger) Option {
	return func(d *Dashboard) {
		if l != nil {
			d.logger = l
		}
	}
}

// WithViewport sets the viewport size used by the resize engine.
func WithViewport(width, height int) Option {
	return func(d *Dashboard) { d.resize.SetViewport(width, height) }
}

// Dashboard is one user's editing session.
type Dashboard struct {
	id    string
	user  string
	store *store.Store

	model   *layout.Model
	tiers   layout.Tiers
	name    string
	editing bool

	reorder *reorder.Engine
	resize  *resize.Engine

	notifier Notifier
	logger   *log.Logger
	wg       sync.WaitGroup

	// pending maps saved names with a queued write to whether the name
	// exists once the queue drains: true for a save, false for a delete.
	pending   map[string]bool
	lastWrite chan struct{}
}

// Open starts a session on the user's current layout. A store failure is
// reported to the notifier and the session starts on the Default preset.
func Open(ctx context.Context, st *store.Store, user string, opts ...Option) (*Dashboard, error) {
	if err := errors.ValidateUserID(user); err != nil {
		return nil, err
	}
	if st == nil {
		st = store.New(nil, nil, nil)
	}
	d := &Dashboard{
		id:     uuid.NewString(),
		user:   user,
		store:  st,
		model:  layout.New(st.Catalog, nil),
		tiers:  layout.Tiers{},
		resize: resize.NewEngine(1280, 0),
		logger: log.Default(),
	}
	d.reorder = reorder.NewEngine(d.model)
	d.notifier = NotifierFunc(func(string, error) {})
	for _, opt := range opts {
		opt(d)
	}

	snap, err := st.LoadDefault(ctx, user)
	if err != nil {
		d.logger.Warn("could not load dashboard, using default", "user", user, "error", err)
		d.notifier.Notify("load", err)
	}
	d.apply(snap)
	d.logger.Debug("opened dashboard session", "session", d.id, "user", user, "widgets", d.model.Len())
	return d, nil
}

// ID returns the session identifier.
func (d *Dashboard) ID() string { return d.id }

// User returns the session owner.
func (d *Dashboard) User() string { return d.user }

// Catalog returns the widget catalog.
func (d *Dashboard) Catalog() *catalog.Registry { return d.model.Catalog() }

// Name returns the name of the last loaded snapshot, or "" for the current
// layout.
func (d *Dashboard) Name() string { return d.name }

// Order returns a copy of the widget order.
func (d *Dashboard) Order() []string { return d.model.Order() }

// Tiers returns a copy of the explicit tier assignment.
func (d *Dashboard) Tiers() layout.Tiers { return d.tiers.Clone() }

// Tier returns the effective tier of key.
func (d *Dashboard) Tier(key string) tier.Tier {
	return d.tiers.Effective(d.model.Catalog(), key)
}

// Available lists the widgets that can still be added.
func (d *Dashboard) Available() []string { return d.model.Available() }

// Grid packs the layout into columns.
func (d *Dashboard) Grid(columns int) layout.Grid {
	return layout.Pack(d.model.Catalog(), d.model.Order(), d.tiers, columns)
}

// Editing reports whether edit mode is active.
func (d *Dashboard) Editing() bool { return d.editing }

// BeginEdit enters edit mode.
func (d *Dashboard) BeginEdit() { d.editing = true }

// EndEdit leaves edit mode and persists the current layout in the
// background. Ending edit mode when not editing does nothing.
func (d *Dashboard) EndEdit(ctx context.Context) {
	if !d.editing {
		return
	}
	d.editing = false
	d.reorder.Cancel()
	d.resize.Handle(resize.Cancel{})
	d.PersistCurrent(ctx)
}

// =============================================================================
// Layout mutations
// =============================================================================

// Add appends key. Duplicate and unknown keys are ignored.
func (d *Dashboard) Add(key string) bool {
	if err := d.model.Add(key); err != nil {
		d.absorb("add", key, err)
		return false
	}
	d.edited("add", key)
	return true
}

// Remove removes key if present.
func (d *Dashboard) Remove(key string) bool {
	if !d.model.Contains(key) {
		return false
	}
	d.model.Remove(key)
	d.edited("remove", key)
	return true
}

// Move moves key to index, clamped to the layout bounds.
func (d *Dashboard) Move(key string, index int) bool {
	if !d.model.Move(key, index) {
		return false
	}
	d.edited("move", key)
	return true
}

// Cycle advances key to its next tier and returns it.
func (d *Dashboard) Cycle(key string) (tier.Tier, bool) {
	if !d.model.Contains(key) {
		d.absorb("cycle", key, errors.New(errors.ErrCodeUnknownWidget, "widget %q is not on the dashboard", key))
		return d.Tier(key), false
	}
	t := d.tiers.Cycle(d.model.Catalog(), key)
	d.edited("resize", key)
	return t, true
}

// SetTier assigns t to key.
func (d *Dashboard) SetTier(key string, t tier.Tier) bool {
	if !t.Valid() {
		d.absorb("resize", key, errors.New(errors.ErrCodeInvalidTier, "invalid tier %d", int(t)))
		return false
	}
	if !d.model.Contains(key) {
		d.absorb("resize", key, errors.New(errors.ErrCodeUnknownWidget, "widget %q is not on the dashboard", key))
		return false
	}
	d.tiers.Set(key, t)
	d.edited("resize", key)
	return true
}

// ReplaceAll replaces the order, filtering unknown and duplicate keys.
func (d *Dashboard) ReplaceAll(order []string) {
	d.model.ReplaceAll(order)
	d.edited("replace", "")
}

// =============================================================================
// Pointer interactions
// =============================================================================

// DragStart begins dragging key from src.
func (d *Dashboard) DragStart(key string, src reorder.Source) bool {
	if err := d.reorder.Start(key, src); err != nil {
		d.absorb("drag", key, err)
		return false
	}
	return true
}

// DragOver performs the live reorder for a pointer at p.
func (d *Dashboard) DragOver(p layout.Point, targets []reorder.Target) bool {
	key, _, _ := d.reorder.Active()
	if !d.reorder.Over(p, targets) {
		return false
	}
	d.edited("move", key)
	return true
}

// Drop ends the drag at p. grid is the bounding box of the grid region.
func (d *Dashboard) Drop(p layout.Point, grid layout.Rect) bool {
	key, _, _ := d.reorder.Active()
	added, err := d.reorder.Drop(p, grid)
	if err != nil {
		d.absorb("add", key, err)
		return false
	}
	if added {
		d.edited("add", key)
	}
	return added
}

// SetViewport updates the viewport size used by the resize engine. It
// changes the row unit on the next resize.
func (d *Dashboard) SetViewport(width, height int) { d.resize.SetViewport(width, height) }

// RowUnit returns the row unit in pixels for the current viewport.
func (d *Dashboard) RowUnit() float64 { return d.resize.RowUnit() }

// DragCancel ends the drag, keeping live reorders.
func (d *Dashboard) DragCancel() { d.reorder.Cancel() }

// BeginResize starts a drag-resize of key from its current tier.
func (d *Dashboard) BeginResize(key string, pointerID int, at layout.Point, widthPx, heightPx float64) resize.Outcome {
	if !d.model.Contains(key) {
		d.absorb("resize", key, errors.New(errors.ErrCodeUnknownWidget, "widget %q is not on the dashboard", key))
		return resize.Outcome{Kind: resize.Ignored}
	}
	return d.Resize(resize.PointerDown{
		Key:       key,
		PointerID: pointerID,
		At:        at,
		WidthPx:   widthPx,
		HeightPx:  heightPx,
		StartTier: d.Tier(key),
	})
}

// Resize feeds a pointer event to the resize engine and commits a snapped
// tier when the drag ends on a different one.
func (d *Dashboard) Resize(ev resize.Event) resize.Outcome {
	out := d.resize.Handle(ev)
	if out.Kind == resize.Committed && d.model.Contains(out.Key) {
		out.Apply(d.tiers)
		d.edited("resize", out.Key)
	}
	return out
}

// =============================================================================
// Snapshots
// =============================================================================

// LoadPreset replaces the layout with a copy of a built-in preset.
func (d *Dashboard) LoadPreset(name string) error {
	snap, err := d.store.LoadPreset(name)
	if err != nil {
		return err
	}
	d.apply(snap)
	return nil
}

// LoadSaved replaces the layout with a copy of a saved snapshot.
func (d *Dashboard) LoadSaved(ctx context.Context, name string) error {
	snap, err := d.store.LoadSaved(ctx, d.user, name)
	if err != nil {
		return err
	}
	d.apply(snap)
	return nil
}

// SaveAs saves the current layout as name. Without overwrite it returns
// DUPLICATE_NAME when a saved layout of that name exists; the caller
// confirms by retrying with overwrite set. The write itself runs in the
// background.
func (d *Dashboard) SaveAs(ctx context.Context, name string, overwrite bool) error {
	name, err := errors.ValidateLayoutName(name)
	if err != nil {
		return err
	}
	if !overwrite {
		if exists, err := d.savedExists(ctx, name); err != nil {
			return err
		} else if exists {
			return errors.New(errors.ErrCodeDuplicateName, "a saved layout named %q already exists", name)
		}
	}
	order, tiers := d.model.Order(), d.tiers.Clone()
	d.dispatch(ctx, "save_layout", func(ctx context.Context) error {
		return d.store.SaveAs(ctx, d.user, name, order, tiers, overwrite)
	})
	d.markPending(name, true)
	d.name = name
	return nil
}

// Overwrite saves the current layout as name, replacing any snapshot.
func (d *Dashboard) Overwrite(ctx context.Context, name string) error {
	return d.SaveAs(ctx, name, true)
}

// Delete removes a saved snapshot in the background.
func (d *Dashboard) Delete(ctx context.Context, name string) error {
	name, err := errors.ValidateLayoutName(name)
	if err != nil {
		return err
	}
	d.dispatch(ctx, "delete_layout", func(ctx context.Context) error {
		return d.store.Delete(ctx, d.user, name)
	})
	d.markPending(name, false)
	return nil
}

// PersistCurrent writes the current layout in the background.
func (d *Dashboard) PersistCurrent(ctx context.Context) {
	order, tiers := d.model.Order(), d.tiers.Clone()
	d.dispatch(ctx, "persist_current", func(ctx context.Context) error {
		return d.store.PersistCurrent(ctx, d.user, order, tiers)
	})
}

// Share encodes the current layout as a share token.
func (d *Dashboard) Share() (string, error) {
	return codec.Encode(d.model.Order(), d.tiers)
}

// Import decodes token, switches the session to its layout and saves it as
// name in the background. A malformed token is INVALID_SHARE_TOKEN.
func (d *Dashboard) Import(ctx context.Context, name, token string, overwrite bool) ([]string, error) {
	dec, err := codec.Decode(token, d.model.Catalog())
	if err != nil {
		return nil, err
	}
	if len(dec.Dropped) > 0 {
		d.logger.Warn("share token references unknown widgets", "dropped", dec.Dropped)
	}
	prevOrder, prevTiers, prevName := d.model.Order(), d.tiers, d.name
	d.model.ReplaceAll(dec.Order)
	d.tiers = dec.Tiers.Clone()
	if err := d.SaveAs(ctx, name, overwrite); err != nil {
		d.model.ReplaceAll(prevOrder)
		d.tiers, d.name = prevTiers, prevName
		return nil, err
	}
	return slices.Clone(dec.Dropped), nil
}

// Wait blocks until every background write has finished.
func (d *Dashboard) Wait() { d.wg.Wait() }

func (d *Dashboard) savedExists(ctx context.Context, name string) (bool, error) {
	if exists, ok := d.pending[name]; ok {
		return exists, nil
	}
	entries, err := d.store.List(ctx, d.user)
	if err != nil {
		return false, err
	}
	for _, e := range entries {
		if e.Name == name && e.Namespace != store.System {
			return true, nil
		}
	}
	return false, nil
}

func (d *Dashboard) apply(snap store.Snapshot) {
	d.model.ReplaceAll(snap.Order)
	d.tiers = snap.Tiers.Clone()
	d.name = snap.Name
	d.reorder.Cancel()
	d.resize.Handle(resize.Cancel{})
}

func (d *Dashboard) markPending(name string, exists bool) {
	if d.pending == nil {
		d.pending = make(map[string]bool)
	}
	d.pending[name] = exists
}

// dispatch runs fn in the background. Writes run one at a time in the order
// they were dispatched.
func (d *Dashboard) dispatch(ctx context.Context, op string, fn func(context.Context) error) {
	ctx = context.WithoutCancel(ctx)
	prev, done := d.lastWrite, make(chan struct{})
	d.lastWrite = done
	d.wg.Add(1)
	go func() {
		defer d.wg.Done()
		defer close(done)
		if prev != nil {
			<-prev
		}
		start := time.Now()
		err := fn(ctx)
		observability.Editor().OnPersist(ctx, op, time.Since(start), err)
		if err != nil {
			d.logger.Warn("background write failed", "op", op, "user", d.user, "error", err)
			d.notifier.Notify(op, err)
			return
		}
		d.logger.Debug("background write finished", "op", op, "user", d.user, "duration", time.Since(start))
	}()
}

func (d *Dashboard) edited(op, key string) {
	observability.Editor().OnEdit(context.Background(), op, key)
}

// absorb treats model invariant violations as no-ops. Anything else is
// logged at warn level since it points at a caller bug.
func (d *Dashboard) absorb(op, key string, err error) {
	if errors.Recoverable(err) {
		d.logger.Debug("ignored layout edit", "op", op, "key", key, "reason", err)
		return
	}
	d.logger.Warn("rejected layout edit", "op", op, "key", key, "error", err)
}
