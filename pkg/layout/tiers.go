package layout

import (
	"maps"

	"github.com/matzehuels/forgeboard/pkg/catalog"
	"github.com/matzehuels/forgeboard/pkg/tier"
)

// Tiers maps widget keys to their explicitly assigned size tier.
//
// Entries for widgets that are no longer placed are kept; they are ignored by
// everything that reads the layout and come back into effect if the widget is
// re-added.
type Tiers map[string]tier.Tier

// Clone returns a copy of t. A nil receiver yields an empty map.
func (t Tiers) Clone() Tiers {
	if t == nil {
		return Tiers{}
	}
	return maps.Clone(t)
}

// Effective returns the tier key renders at: the explicit assignment, else
// the catalog default for the widget kind.
func (t Tiers) Effective(cat *catalog.Registry, key string) tier.Tier {
	if v, ok := t[key]; ok && v.Valid() {
		return v
	}
	return cat.DefaultTier(key)
}

// Set assigns v to key.
func (t Tiers) Set(key string, v tier.Tier) {
	t[key] = v
}

// Cycle advances key to its next tier in the discrete cycle, starting from
// its effective tier, and returns the new tier.
func (t Tiers) Cycle(cat *catalog.Registry, key string) tier.Tier {
	next := t.Effective(cat, key).Next()
	t[key] = next
	return next
}

// Live returns only the assignments whose key is in order.
func (t Tiers) Live(order []string) Tiers {
	out := make(Tiers, len(order))
	for _, k := range order {
		if v, ok := t[k]; ok {
			out[k] = v
		}
	}
	return out
}

// Resolve returns the effective tier of every key in order.
func (t Tiers) Resolve(cat *catalog.Registry, order []string) Tiers {
	out := make(Tiers, len(order))
	for _, k := range order {
		out[k] = t.Effective(cat, k)
	}
	return out
}
