// Package store persists dashboard layouts: the current layout, user-named
// snapshots, and access to the read-only presets.
//
// All state lives in one settings document per user, read and written
// through a [Backend]. Writes are read-modify-write with last-writer-wins;
// there is no version check. Writes through one Store are serialized per
// user, so concurrent background writes from a session do not lose each
// other's changes. Transient backend failures are retried with
// exponential backoff.
//
// # Namespaces
//
// Presets are built in and never written. Saved layouts are owned by the
// user. A saved layout may reuse a preset name, in which case it overrides
// the preset for [Store.LoadSaved] and [Store.List] until it is deleted.
package store

import (
	"context"
	"encoding/json"
	"fmt"
	"slices"
	"sort"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/forgeboard/pkg/catalog"
	"github.com/matzehuels/forgeboard/pkg/codec"
	"github.com/matzehuels/forgeboard/pkg/errors"
	"github.com/matzehuels/forgeboard/pkg/layout"
	"github.com/matzehuels/forgeboard/pkg/migrate"
	"github.com/matzehuels/forgeboard/pkg/observability"
	"github.com/matzehuels/forgeboard/pkg/preset"
)

// Namespace says where a named snapshot comes from.
type Namespace string

const (
	System   Namespace = "system"
	Custom   Namespace = "custom"
	Override Namespace = "override"
)

// Snapshot is a named (order, tiers) pair loaded from the store. Loading
// always copies; mutating a snapshot never touches stored state.
type Snapshot struct {
	Name      string       `json:"name,omitempty"`
	Namespace Namespace    `json:"namespace,omitempty"`
	Order     []string     `json:"layout"`
	Tiers     layout.Tiers `json:"sizes"`
}

// Entry is one row of [Store.List].
type Entry struct {
	Name      string    `json:"name"`
	Namespace Namespace `json:"namespace"`
	Widgets   int       `json:"widgets"`
}

// Store implements the layout persistence operations for any number of
// users over a single backend. It is safe for concurrent use as long as the
// backend is.
type Store struct {
	Backend Backend
	Catalog *catalog.Registry
	Logger  *log.Logger

	// RetryDelay is the first backoff delay for retryable backend errors.
	RetryDelay time.Duration

	now   func() time.Time
	locks sync.Map // user -> *sync.Mutex
}

// New creates a store. A nil backend disables persistence, a nil catalog
// uses the built-in widgets and a nil logger uses log.Default().
func New(b Backend, cat *catalog.Registry, logger *log.Logger) *Store {
	if b == nil {
		b = NewNullBackend()
	}
	if cat == nil {
		cat = catalog.Builtin()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Store{
		Backend:    b,
		Catalog:    cat,
		Logger:     logger,
		RetryDelay: DefaultRetryDelay,
		now:        time.Now,
	}
}

// Close closes the backend.
func (s *Store) Close() error {
	return s.Backend.Close()
}

// LoadDefault returns the persisted current layout, migrated and filtered,
// or the Default preset when none was persisted. On a backend failure the
// Default preset is returned together with the error.
func (s *Store) LoadDefault(ctx context.Context, user string) (Snapshot, error) {
	fallback := fromPreset(preset.Default(), System)
	fallback.Order = s.Catalog.Filter(fallback.Order)

	doc, err := s.load(ctx, user)
	if err != nil {
		return fallback, err
	}
	if !doc.HasCurrent() {
		return fallback, nil
	}
	if migrate.IsLegacy(doc.DashboardLayout) {
		s.Logger.Info("migrating legacy dashboard layout", "user", user)
	}
	return Snapshot{
		Order: s.Catalog.Filter(migrate.Migrate(doc.DashboardLayout)),
		Tiers: doc.Tiers(),
	}, nil
}

// LoadPreset returns a copy of a built-in preset.
func (s *Store) LoadPreset(name string) (Snapshot, error) {
	p, ok := preset.Get(name)
	if !ok {
		return Snapshot{}, errors.New(errors.ErrCodeNotFound, "no preset named %q", name)
	}
	snap := fromPreset(p, System)
	snap.Order = s.Catalog.Filter(snap.Order)
	return snap, nil
}

// LoadSaved returns the user's snapshot called name, falling back to the
// preset of that name when the user has no override.
func (s *Store) LoadSaved(ctx context.Context, user, name string) (Snapshot, error) {
	name, err := errors.ValidateLayoutName(name)
	if err != nil {
		return Snapshot{}, err
	}
	doc, err := s.load(ctx, user)
	if err != nil {
		return Snapshot{}, err
	}
	if saved, ok := doc.SavedLayouts[name]; ok {
		ns := Custom
		if preset.Is(name) {
			ns = Override
		}
		return Snapshot{
			Name:      name,
			Namespace: ns,
			Order:     s.Catalog.Filter(migrate.Migrate(saved.Layout)),
			Tiers:     saved.Tiers(),
		}, nil
	}
	if p, ok := preset.Get(name); ok {
		snap := fromPreset(p, System)
		snap.Order = s.Catalog.Filter(snap.Order)
		return snap, nil
	}
	return Snapshot{}, errors.New(errors.ErrCodeNotFound, "no saved layout named %q", name)
}

// SaveAs stores order and tiers under name. When a saved layout of that
// name exists and overwrite is false it returns DUPLICATE_NAME.
func (s *Store) SaveAs(ctx context.Context, user, name string, order []string, tiers layout.Tiers, overwrite bool) error {
	name, err := errors.ValidateLayoutName(name)
	if err != nil {
		return err
	}
	saved, err := newSavedLayout(s.Catalog.Filter(order), tiers.Live(order))
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "encode layout %q", name)
	}
	return s.update(ctx, user, "save_layout", func(doc *Settings) error {
		if _, exists := doc.SavedLayouts[name]; exists && !overwrite {
			return errors.New(errors.ErrCodeDuplicateName, "a saved layout named %q already exists", name)
		}
		doc.SavedLayouts[name] = saved
		return nil
	})
}

// Overwrite stores order and tiers under name, replacing any existing
// snapshot.
func (s *Store) Overwrite(ctx context.Context, user, name string, order []string, tiers layout.Tiers) error {
	return s.SaveAs(ctx, user, name, order, tiers, true)
}

// Delete removes the saved layout called name. Deleting a name that is not
// saved is a no-op, except for a bare preset, which is READ_ONLY.
func (s *Store) Delete(ctx context.Context, user, name string) error {
	name, err := errors.ValidateLayoutName(name)
	if err != nil {
		return err
	}
	return s.update(ctx, user, "delete_layout", func(doc *Settings) error {
		if _, ok := doc.SavedLayouts[name]; !ok {
			if preset.Is(name) {
				return errors.New(errors.ErrCodeReadOnly, "preset %q cannot be deleted", name)
			}
			return errSkipWrite
		}
		delete(doc.SavedLayouts, name)
		return nil
	})
}

// PersistCurrent stores order and tiers as the user's current layout.
func (s *Store) PersistCurrent(ctx context.Context, user string, order []string, tiers layout.Tiers) error {
	order = s.Catalog.Filter(order)
	return s.update(ctx, user, "persist_current", func(doc *Settings) error {
		if err := doc.SetCurrent(order, tiers); err != nil {
			return errors.Wrap(errors.ErrCodeInternal, err, "encode current layout")
		}
		return nil
	})
}

// List returns every name the user can load: presets first in display order
// (marked as overrides when shadowed), then custom layouts sorted by name.
func (s *Store) List(ctx context.Context, user string) ([]Entry, error) {
	doc, err := s.load(ctx, user)
	if err != nil {
		return nil, err
	}
	out := make([]Entry, 0, len(doc.SavedLayouts)+3)
	for _, p := range preset.All() {
		e := Entry{Name: p.Name, Namespace: System, Widgets: len(s.Catalog.Filter(p.Order))}
		if saved, ok := doc.SavedLayouts[p.Name]; ok {
			e.Namespace = Override
			e.Widgets = len(s.Catalog.Filter(migrate.Migrate(saved.Layout)))
		}
		out = append(out, e)
	}
	var custom []string
	for name := range doc.SavedLayouts {
		if !preset.Is(name) {
			custom = append(custom, name)
		}
	}
	sort.Strings(custom)
	for _, name := range custom {
		out = append(out, Entry{
			Name:      name,
			Namespace: Custom,
			Widgets:   len(s.Catalog.Filter(migrate.Migrate(doc.SavedLayouts[name].Layout))),
		})
	}
	return out, nil
}

// ImportToken decodes a share token and saves it as name. It returns the
// stored snapshot.
func (s *Store) ImportToken(ctx context.Context, user, name, token string, overwrite bool) (Snapshot, error) {
	dec, err := codec.Decode(token, s.Catalog)
	if err != nil {
		return Snapshot{}, err
	}
	if len(dec.Dropped) > 0 {
		s.Logger.Warn("share token references unknown widgets", "dropped", dec.Dropped)
	}
	if err := s.SaveAs(ctx, user, name, dec.Order, dec.Tiers, overwrite); err != nil {
		return Snapshot{}, err
	}
	return s.LoadSaved(ctx, user, name)
}

// Share encodes the snapshot called name (saved or preset) as a token.
func (s *Store) Share(ctx context.Context, user, name string) (string, error) {
	snap, err := s.LoadSaved(ctx, user, name)
	if err != nil {
		return "", err
	}
	return codec.Encode(snap.Order, snap.Tiers)
}

// errSkipWrite aborts an update without writing.
var errSkipWrite = fmt.Errorf("skip write")

func (s *Store) load(ctx context.Context, user string) (*Settings, error) {
	if err := errors.ValidateUserID(user); err != nil {
		return nil, err
	}
	var (
		data  []byte
		found bool
	)
	start := time.Now()
	err := s.retry(ctx, "load", func() error {
		var err error
		data, found, err = s.Backend.Load(ctx, user)
		return err
	})
	observability.Store().OnLoad(ctx, user, found, time.Since(start), err)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeStorage, err, "load settings for %s", user)
	}
	doc, perr := ParseSettings(data)
	if perr != nil {
		s.Logger.Warn("ignoring corrupt settings document", "user", user, "error", perr)
	}
	return doc, nil
}

// update performs one read-modify-write of the user's document. fn may
// return errSkipWrite to leave the document untouched.
func (s *Store) update(ctx context.Context, user, op string, fn func(*Settings) error) error {
	if err := errors.ValidateUserID(user); err != nil {
		return err
	}
	mu := s.userLock(user)
	mu.Lock()
	defer mu.Unlock()

	var size int
	start := time.Now()
	err := s.retry(ctx, op, func() error {
		data, _, err := s.Backend.Load(ctx, user)
		if err != nil {
			return err
		}
		doc, perr := ParseSettings(data)
		if perr != nil {
			s.Logger.Warn("overwriting corrupt settings document", "user", user, "error", perr)
		}
		if err := fn(doc); err != nil {
			return err
		}
		doc.UpdatedAt = s.now()
		out, err := json.Marshal(doc)
		if err != nil {
			return err
		}
		size = len(out)
		return s.Backend.Save(ctx, user, out)
	})
	if err == errSkipWrite {
		return nil
	}
	observability.Store().OnSave(ctx, user, size, time.Since(start), err)
	if err != nil {
		if _, ok := err.(*errors.Error); ok {
			return err
		}
		return errors.Wrap(errors.ErrCodeStorage, err, "%s for %s", op, user)
	}
	s.Logger.Debug("saved settings", "user", user, "op", op, "bytes", size)
	return nil
}

func (s *Store) userLock(user string) *sync.Mutex {
	mu, _ := s.locks.LoadOrStore(user, &sync.Mutex{})
	return mu.(*sync.Mutex)
}

func (s *Store) retry(ctx context.Context, op string, fn func() error) error {
	attempt := 0
	return retryWithBackoff(ctx, s.RetryDelay, func() error {
		attempt++
		err := fn()
		if err != nil && IsRetryable(err) {
			observability.Store().OnRetry(ctx, op, attempt, err)
			s.Logger.Warn("retryable backend error", "op", op, "attempt", attempt, "error", err)
		}
		return err
	})
}

func fromPreset(p preset.Preset, ns Namespace) Snapshot {
	return Snapshot{Name: p.Name, Namespace: ns, Order: slices.Clone(p.Order), Tiers: p.Tiers.Clone()}
}
