package store

import (
	"encoding/json"
	"time"

	"github.com/matzehuels/forgeboard/pkg/layout"
	"github.com/matzehuels/forgeboard/pkg/tier"
)

// Settings is the per-user persisted document.
//
// Keys the dashboard does not own are kept in Extra and written back
// untouched, so other parts of the application can share the document.
type Settings struct {
	// DashboardLayout is the current layout in whatever shape it was
	// written, current or legacy.
	DashboardLayout json.RawMessage
	DashboardSizes  json.RawMessage
	SavedLayouts    map[string]SavedLayout
	UpdatedAt       time.Time
	Extra           map[string]json.RawMessage

	// unreadable holds saved_layouts entries that failed to decode. They
	// are written back as found unless a snapshot of the same name
	// replaces them.
	unreadable map[string]json.RawMessage
}

// SavedLayout is a user snapshot as stored in saved_layouts.
type SavedLayout struct {
	Layout      json.RawMessage `json:"layout"`
	WidgetSizes json.RawMessage `json:"widgetSizes,omitempty"`
}

const (
	keyLayout    = "dashboard_layout"
	keySizes     = "dashboard_sizes"
	keySaved     = "saved_layouts"
	keyUpdatedAt = "updated_at"
)

// ParseSettings decodes a settings document. Unparseable sections are
// dropped rather than failing the whole document.
func ParseSettings(data []byte) (*Settings, error) {
	s := &Settings{SavedLayouts: map[string]SavedLayout{}, Extra: map[string]json.RawMessage{}}
	if len(data) == 0 {
		return s, nil
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return s, err
	}
	for k, v := range fields {
		switch k {
		case keyLayout:
			s.DashboardLayout = v
		case keySizes:
			s.DashboardSizes = v
		case keySaved:
			s.parseSaved(v)
		case keyUpdatedAt:
			_ = json.Unmarshal(v, &s.UpdatedAt)
		default:
			s.Extra[k] = v
		}
	}
	return s, nil
}

// MarshalJSON writes the document with the dashboard keys merged over Extra.
func (s *Settings) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(s.Extra)+4)
	for k, v := range s.Extra {
		out[k] = v
	}
	if hasValue(s.DashboardLayout) {
		out[keyLayout] = s.DashboardLayout
	}
	if hasValue(s.DashboardSizes) {
		out[keySizes] = s.DashboardSizes
	}
	if len(s.SavedLayouts)+len(s.unreadable) > 0 {
		saved := make(map[string]any, len(s.SavedLayouts)+len(s.unreadable))
		for name, raw := range s.unreadable {
			saved[name] = raw
		}
		for name, l := range s.SavedLayouts {
			saved[name] = l
		}
		out[keySaved] = saved
	}
	if !s.UpdatedAt.IsZero() {
		out[keyUpdatedAt] = s.UpdatedAt.UTC()
	}
	return json.Marshal(out)
}

// parseSaved decodes saved_layouts one entry at a time so a single bad
// snapshot does not take the others with it.
func (s *Settings) parseSaved(data json.RawMessage) {
	var entries map[string]json.RawMessage
	if json.Unmarshal(data, &entries) != nil {
		return
	}
	for name, raw := range entries {
		var l SavedLayout
		if err := json.Unmarshal(raw, &l); err != nil {
			if s.unreadable == nil {
				s.unreadable = map[string]json.RawMessage{}
			}
			s.unreadable[name] = raw
			continue
		}
		s.SavedLayouts[name] = l
	}
}

// HasCurrent reports whether a current layout has been persisted.
func (s *Settings) HasCurrent() bool {
	return hasValue(s.DashboardLayout)
}

// SetCurrent stores order and tiers as the current layout.
func (s *Settings) SetCurrent(order []string, tiers layout.Tiers) error {
	l, err := gridJSON(order)
	if err != nil {
		return err
	}
	t, err := tiersJSON(tiers)
	if err != nil {
		return err
	}
	s.DashboardLayout, s.DashboardSizes = l, t
	return nil
}

// Tiers returns the current tier assignment, dropping invalid entries.
func (s *Settings) Tiers() layout.Tiers {
	return layout.Tiers(tier.Lenient(s.DashboardSizes))
}

func newSavedLayout(order []string, tiers layout.Tiers) (SavedLayout, error) {
	l, err := gridJSON(order)
	if err != nil {
		return SavedLayout{}, err
	}
	t, err := tiersJSON(tiers)
	if err != nil {
		return SavedLayout{}, err
	}
	return SavedLayout{Layout: l, WidgetSizes: t}, nil
}

// Tiers returns the snapshot's tier assignment, dropping invalid entries.
func (s SavedLayout) Tiers() layout.Tiers {
	return layout.Tiers(tier.Lenient(s.WidgetSizes))
}

func gridJSON(order []string) (json.RawMessage, error) {
	if order == nil {
		order = []string{}
	}
	return json.Marshal(struct {
		Grid []string `json:"grid"`
	}{order})
}

func tiersJSON(tiers layout.Tiers) (json.RawMessage, error) {
	if tiers == nil {
		tiers = layout.Tiers{}
	}
	return json.Marshal(tiers)
}

func hasValue(raw json.RawMessage) bool {
	return len(raw) > 0 && string(raw) != "null"
}
