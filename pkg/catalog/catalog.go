// Package catalog is the closed registry of widget kinds that can be placed on
// a dashboard.
//
// Each [Entry] has a stable key, a title, a short description and one
// human-readable behavior description per size tier. The descriptions feed the
// widget library browser only; the layout engine never reads them.
//
// Rendering is dispatched through [Registry.Renderer], which returns a
// [Renderer] capability for a key or ok == false for keys the registry does
// not know. Unknown keys never panic.
package catalog

import (
	"fmt"
	"strings"

	"github.com/matzehuels/forgeboard/pkg/tier"
)

// Entry describes one widget kind.
type Entry struct {
	Key         string               `json:"key"`
	Title       string               `json:"title"`
	Description string               `json:"description"`
	Sizes       map[tier.Tier]string `json:"sizes"`
	DefaultTier tier.Tier            `json:"default_size"`
}

// Describe returns the behavior description of the widget at size t, or an
// empty string when the widget documents nothing for that tier.
func (e Entry) Describe(t tier.Tier) string {
	return e.Sizes[t]
}

// Renderer is the capability a widget exposes to the dashboard. data and
// actions are opaque application context; size is the widget's current tier.
type Renderer interface {
	Render(data, actions any, size tier.Tier) string
}

// RenderFunc adapts a function to the Renderer interface.
type RenderFunc func(data, actions any, size tier.Tier) string

// Render calls f.
func (f RenderFunc) Render(data, actions any, size tier.Tier) string {
	return f(data, actions, size)
}

// Registry is an immutable, ordered set of catalog entries.
type Registry struct {
	entries   []Entry
	index     map[string]int
	renderers map[string]Renderer
}

// Option customises a Registry.
type Option func(*Registry)

// WithRenderer installs r as the renderer for key. Keys not in the registry
// are ignored.
func WithRenderer(key string, r Renderer) Option {
	return func(reg *Registry) {
		if _, ok := reg.index[key]; ok && r != nil {
			reg.renderers[key] = r
		}
	}
}

// New builds a registry from entries. Later duplicates of a key are dropped.
// Every entry gets a placeholder renderer unless one is supplied via
// WithRenderer.
func New(entries []Entry, opts ...Option) *Registry {
	reg := &Registry{
		index:     make(map[string]int, len(entries)),
		renderers: make(map[string]Renderer, len(entries)),
	}
	for _, e := range entries {
		if _, dup := reg.index[e.Key]; dup || e.Key == "" {
			continue
		}
		if !e.DefaultTier.Valid() {
			e.DefaultTier = tier.Small
		}
		reg.index[e.Key] = len(reg.entries)
		reg.entries = append(reg.entries, e)
		reg.renderers[e.Key] = placeholder(e)
	}
	for _, opt := range opts {
		opt(reg)
	}
	return reg
}

// Has reports whether key names a widget kind.
func (r *Registry) Has(key string) bool {
	_, ok := r.index[key]
	return ok
}

// Lookup returns the entry for key.
func (r *Registry) Lookup(key string) (Entry, bool) {
	i, ok := r.index[key]
	if !ok {
		return Entry{}, false
	}
	return r.entries[i], true
}

// Renderer returns the render capability for key.
func (r *Registry) Renderer(key string) (Renderer, bool) {
	rd, ok := r.renderers[key]
	return rd, ok
}

// DefaultTier returns the system default tier for key. Unknown keys get Small.
func (r *Registry) DefaultTier(key string) tier.Tier {
	if e, ok := r.Lookup(key); ok {
		return e.DefaultTier
	}
	return tier.Small
}

// Keys returns every key in registry order.
func (r *Registry) Keys() []string {
	keys := make([]string, len(r.entries))
	for i, e := range r.entries {
		keys[i] = e.Key
	}
	return keys
}

// Entries returns a copy of all entries in registry order.
func (r *Registry) Entries() []Entry {
	out := make([]Entry, len(r.entries))
	copy(out, r.entries)
	return out
}

// Len returns the number of widget kinds.
func (r *Registry) Len() int { return len(r.entries) }

// Filter returns the keys of order that exist in the registry, keeping the
// first occurrence of each.
func (r *Registry) Filter(order []string) []string {
	out := make([]string, 0, len(order))
	seen := make(map[string]bool, len(order))
	for _, k := range order {
		if seen[k] || !r.Has(k) {
			continue
		}
		seen[k] = true
		out = append(out, k)
	}
	return out
}

// Available returns the keys not present in active, in registry order. This
// is what the widget library offers for adding.
func (r *Registry) Available(active []string) []string {
	placed := make(map[string]bool, len(active))
	for _, k := range active {
		placed[k] = true
	}
	var out []string
	for _, e := range r.entries {
		if !placed[e.Key] {
			out = append(out, e.Key)
		}
	}
	return out
}

// Search returns entries whose key, title or description contains q,
// case-insensitively. An empty query matches everything.
func (r *Registry) Search(q string) []Entry {
	q = strings.ToLower(strings.TrimSpace(q))
	if q == "" {
		return r.Entries()
	}
	var out []Entry
	for _, e := range r.entries {
		hay := strings.ToLower(e.Key + " " + e.Title + " " + e.Description)
		if strings.Contains(hay, q) {
			out = append(out, e)
		}
	}
	return out
}

func placeholder(e Entry) Renderer {
	return RenderFunc(func(_, _ any, size tier.Tier) string {
		if desc := e.Describe(size); desc != "" {
			return fmt.Sprintf("%s\n%s", e.Title, desc)
		}
		return e.Title
	})
}
