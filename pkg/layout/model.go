// Package layout holds the dashboard layout model: an ordered sequence of
// widget keys plus a per-widget size-tier assignment.
//
// Order is the only placement information. A renderer lays widgets out
// left-to-right, top-to-bottom on the 12-column grid, packing densely around
// each widget's span; [Pack] computes that placement.
//
// The model owns two invariants:
//   - no key appears twice in the order
//   - every key in the order exists in the catalog
//
// Mutations that would break them fail with DUPLICATE_KEY or UNKNOWN_WIDGET
// and leave the model untouched.
package layout

import (
	"slices"

	"github.com/matzehuels/forgeboard/pkg/catalog"
	"github.com/matzehuels/forgeboard/pkg/errors"
)

// Model is an ordered sequence of widget keys validated against a catalog.
// A Model is not safe for concurrent use.
type Model struct {
	catalog *catalog.Registry
	order   []string
}

// New returns a model over cat populated from order. Unknown and duplicate
// keys are dropped, as for ReplaceAll.
func New(cat *catalog.Registry, order []string) *Model {
	m := &Model{catalog: cat}
	m.ReplaceAll(order)
	return m
}

// Catalog returns the registry the model validates against.
func (m *Model) Catalog() *catalog.Registry { return m.catalog }

// Order returns a copy of the current order.
func (m *Model) Order() []string {
	return slices.Clone(m.order)
}

// Len returns the number of placed widgets.
func (m *Model) Len() int { return len(m.order) }

// IndexOf returns the position of key, or -1.
func (m *Model) IndexOf(key string) int {
	return slices.Index(m.order, key)
}

// Contains reports whether key is placed.
func (m *Model) Contains(key string) bool {
	return m.IndexOf(key) >= 0
}

// Add appends key to the end of the order.
func (m *Model) Add(key string) error {
	if !m.catalog.Has(key) {
		return errors.New(errors.ErrCodeUnknownWidget, "unknown widget %q", key)
	}
	if m.Contains(key) {
		return errors.New(errors.ErrCodeDuplicateKey, "widget %q already placed", key)
	}
	m.order = append(m.order, key)
	return nil
}

// Remove deletes key from the order. Removing an absent key is a no-op.
// Any tier assignment for key is left in place.
func (m *Model) Remove(key string) {
	if i := m.IndexOf(key); i >= 0 {
		m.order = slices.Delete(m.order, i, i+1)
	}
}

// Move reinserts key at toIndex, keeping the relative order of every other
// widget. toIndex is clamped into range and unknown keys are ignored. It
// reports whether the order changed.
func (m *Model) Move(key string, toIndex int) bool {
	from := m.IndexOf(key)
	if from < 0 {
		return false
	}
	toIndex = max(0, min(toIndex, len(m.order)-1))
	if from == toIndex {
		return false
	}
	m.order = slices.Delete(m.order, from, from+1)
	m.order = slices.Insert(m.order, toIndex, key)
	return true
}

// ReplaceAll swaps in a new order after dropping unknown keys and later
// duplicates. It is used by migration and import.
func (m *Model) ReplaceAll(order []string) {
	m.order = m.catalog.Filter(order)
}

// Available returns the catalog keys not currently placed.
func (m *Model) Available() []string {
	return m.catalog.Available(m.order)
}

// Clone returns an independent copy of the model.
func (m *Model) Clone() *Model {
	return &Model{catalog: m.catalog, order: slices.Clone(m.order)}
}
