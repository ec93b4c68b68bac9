// Package migrate upgrades persisted dashboard layouts of unknown shape into
// the current flat ordering.
//
// Three shapes are recognised:
//
//	["a", "b"]                                    current, bare
//	{"grid": ["a", "b"]}                          current, stored form
//	{"top": [...], "main": [...], "sidebar": [...]}  legacy three-zone
//
// Legacy layouts are concatenated top, main, sidebar. Anything else yields
// the Default preset order. Migration never fails and is idempotent; it does
// not filter unknown widget keys.
package migrate

import (
	"bytes"
	"encoding/json"
	"slices"

	"github.com/matzehuels/forgeboard/pkg/preset"
)

var legacyZones = []string{"top", "main", "sidebar"}

// Migrate upgrades raw persisted JSON into a flat widget order.
func Migrate(raw []byte) []string {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return fallback()
	}
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return fallback()
	}
	return Value(v)
}

// Value upgrades an already-decoded JSON value (as produced by
// encoding/json into an interface{}). []string is accepted as well.
func Value(v any) []string {
	switch x := v.(type) {
	case []string:
		return slices.Clone(x)
	case []any:
		if order, ok := stringList(x); ok {
			return order
		}
	case map[string]any:
		if grid, ok := x["grid"]; ok {
			if list, ok := grid.([]any); ok {
				if order, ok := stringList(list); ok {
					return order
				}
			}
			if list, ok := grid.([]string); ok {
				return slices.Clone(list)
			}
			return fallback()
		}
		if order, ok := legacy(x); ok {
			return order
		}
	}
	return fallback()
}

// IsLegacy reports whether raw holds the three-zone shape.
func IsLegacy(raw []byte) bool {
	var m map[string]any
	if err := json.Unmarshal(raw, &m); err != nil {
		return false
	}
	if _, ok := m["grid"]; ok {
		return false
	}
	_, ok := legacy(m)
	return ok
}

func legacy(m map[string]any) ([]string, bool) {
	found := false
	order := []string{}
	for _, zone := range legacyZones {
		v, ok := m[zone]
		if !ok || v == nil {
			continue
		}
		list, ok := v.([]any)
		if !ok {
			return nil, false
		}
		keys, ok := stringList(list)
		if !ok {
			return nil, false
		}
		found = true
		order = append(order, keys...)
	}
	return order, found
}

func stringList(list []any) ([]string, bool) {
	out := make([]string, 0, len(list))
	for _, item := range list {
		s, ok := item.(string)
		if !ok {
			return nil, false
		}
		out = append(out, s)
	}
	return out, true
}

func fallback() []string {
	return preset.Default().Order
}
