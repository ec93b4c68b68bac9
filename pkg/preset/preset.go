// Package preset contains the built-in, read-only dashboard layouts.
//
// Presets are shipped with the application and never written. Callers always
// receive copies, so mutating a loaded preset cannot leak into the table.
package preset

import (
	"slices"

	"github.com/matzehuels/forgeboard/pkg/layout"
	"github.com/matzehuels/forgeboard/pkg/tier"
)

// DefaultName is the preset used when nothing else is available.
const DefaultName = "Default"

// Preset is a named (order, tiers) pair.
type Preset struct {
	Name  string       `json:"name"`
	Order []string     `json:"layout"`
	Tiers layout.Tiers `json:"sizes"`
}

// DefaultTiers is the system-wide default tier table.
func DefaultTiers() layout.Tiers {
	return layout.Tiers{
		"stats_value":        tier.XS,
		"stats_total":        tier.XS,
		"stats_decks":        tier.XS,
		"audit":              tier.XS,
		"action_browse":      tier.XS,
		"action_wishlist":    tier.XS,
		"identity":           tier.Small,
		"quick_actions":      tier.Small,
		"community":          tier.Medium,
		"action_new_deck":    tier.XS,
		"action_add_cards":   tier.XS,
		"action_tournaments": tier.XS,
		"system_status":      tier.Small,
		"subscription":       tier.Small,
		"social_stats":       tier.Small,
		"trade_matches":      tier.Small,
		"tips":               tier.Small,
		"guides":             tier.Small,
		"recent_decks":       tier.Large,
		"releases":           tier.Large,
	}
}

var defaultOrder = []string{
	"stats_value", "stats_total", "stats_decks", "audit", "quick_actions", "identity",
	"recent_decks", "releases", "community",
	"action_new_deck", "action_add_cards", "action_browse", "action_wishlist", "action_tournaments",
	"system_status", "subscription", "social_stats", "trade_matches", "tips", "guides",
}

var builtin = []Preset{
	{
		Name:  DefaultName,
		Order: defaultOrder,
		Tiers: DefaultTiers(),
	},
	{
		Name: "Decks Focused",
		Order: []string{
			"action_new_deck", "action_add_cards", "action_tournaments", "stats_decks", "quick_actions", "identity",
			"recent_decks", "community", "releases",
			"stats_value", "stats_total", "audit", "action_browse", "action_wishlist",
			"system_status", "subscription", "social_stats", "tips", "guides",
		},
		Tiers: with(DefaultTiers(), layout.Tiers{
			"action_new_deck":    tier.Small,
			"action_add_cards":   tier.Small,
			"action_tournaments": tier.Small,
			"recent_decks":       tier.XLarge,
			"community":          tier.Large,
		}),
	},
	{
		Name: "Collector",
		Order: []string{
			"stats_value", "stats_total", "audit", "action_browse", "action_wishlist", "identity",
			"recent_decks", "releases", "community",
			"action_new_deck", "action_add_cards", "action_tournaments", "stats_decks", "quick_actions",
			"system_status", "subscription", "tips", "guides", "action_log", "trade_matches",
		},
		Tiers: with(DefaultTiers(), layout.Tiers{
			"identity":     tier.XS,
			"releases":     tier.XLarge,
			"stats_value":  tier.XLarge,
			"recent_decks": tier.Medium,
		}),
	},
}

func with(base, overrides layout.Tiers) layout.Tiers {
	for k, v := range overrides {
		base[k] = v
	}
	return base
}

// Names returns the preset names in display order.
func Names() []string {
	names := make([]string, len(builtin))
	for i, p := range builtin {
		names[i] = p.Name
	}
	return names
}

// Get returns a copy of the preset called name.
func Get(name string) (Preset, bool) {
	for _, p := range builtin {
		if p.Name == name {
			return p.clone(), true
		}
	}
	return Preset{}, false
}

// Is reports whether name is a built-in preset.
func Is(name string) bool {
	_, ok := Get(name)
	return ok
}

// Default returns a copy of the Default preset.
func Default() Preset {
	p, _ := Get(DefaultName)
	return p
}

// All returns copies of every preset in display order.
func All() []Preset {
	out := make([]Preset, len(builtin))
	for i, p := range builtin {
		out[i] = p.clone()
	}
	return out
}

func (p Preset) clone() Preset {
	return Preset{Name: p.Name, Order: slices.Clone(p.Order), Tiers: p.Tiers.Clone()}
}
