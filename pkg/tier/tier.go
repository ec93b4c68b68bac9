// Package tier defines the dashboard size tiers and their grid spans.
//
// A tier is one of five ordered sizes. Each tier maps to a fixed span on a
// 12-column grid whose row unit is a fixed pixel height. The table is pure
// data: [Span] and [Hint] are total over [All], and [Next] walks the
// discrete resize cycle.
//
//	xs → small → medium → large → xlarge → xs → …
package tier

import (
	"encoding/json"
	"strings"

	"github.com/matzehuels/forgeboard/pkg/errors"
)

// Columns is the width of the dashboard grid in layout units.
const Columns = 12

// Tier is a widget size. The zero value is XS.
type Tier int

const (
	XS Tier = iota
	Small
	Medium
	Large
	XLarge
)

// All lists every tier in cycle order.
var All = []Tier{XS, Small, Medium, Large, XLarge}

// Span is a widget footprint in layout units.
type Span struct {
	Cols int
	Rows int
}

// Hint carries pixel-rendering hints for a tier.
type Hint struct {
	MinHeightPx int
}

var names = [...]string{
	XS:     "xs",
	Small:  "small",
	Medium: "medium",
	Large:  "large",
	XLarge: "xlarge",
}

var spans = [...]Span{
	XS:     {Cols: 3, Rows: 1},
	Small:  {Cols: 3, Rows: 2},
	Medium: {Cols: 6, Rows: 3},
	Large:  {Cols: 6, Rows: 5},
	XLarge: {Cols: 12, Rows: 6},
}

var hints = [...]Hint{
	XS:     {MinHeightPx: 80},
	Small:  {MinHeightPx: 160},
	Medium: {MinHeightPx: 240},
	Large:  {MinHeightPx: 400},
	XLarge: {MinHeightPx: 480},
}

// Valid reports whether t is one of the five tiers.
func (t Tier) Valid() bool {
	return t >= XS && t <= XLarge
}

// String returns the persisted name of the tier ("xs", "small", ...).
func (t Tier) String() string {
	if !t.Valid() {
		return "unknown"
	}
	return names[t]
}

// Span returns the grid footprint of t. Invalid tiers report the Small span.
func (t Tier) Span() Span {
	if !t.Valid() {
		return spans[Small]
	}
	return spans[t]
}

// Hint returns the pixel-rendering hint for t.
func (t Tier) Hint() Hint {
	if !t.Valid() {
		return hints[Small]
	}
	return hints[t]
}

// Next returns the tier after t in the discrete resize cycle.
func (t Tier) Next() Tier {
	if !t.Valid() {
		return XS
	}
	return (t + 1) % Tier(len(All))
}

// Parse converts a persisted tier name into a Tier.
// Matching is case-insensitive and ignores surrounding whitespace.
func Parse(s string) (Tier, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for i, n := range names {
		if n == s {
			return Tier(i), nil
		}
	}
	return XS, errors.New(errors.ErrCodeInvalidTier, "unknown size tier %q", s)
}

// MarshalText encodes the tier as its name, so tiers are strings in JSON,
// map keys and TOML alike.
func (t Tier) MarshalText() ([]byte, error) {
	if !t.Valid() {
		return nil, errors.New(errors.ErrCodeInvalidTier, "invalid size tier %d", int(t))
	}
	return []byte(names[t]), nil
}

// UnmarshalText decodes a tier name.
func (t *Tier) UnmarshalText(b []byte) error {
	v, err := Parse(string(b))
	if err != nil {
		return err
	}
	*t = v
	return nil
}

// Lenient decodes a JSON object of key → tier name, dropping entries whose
// value is not a known tier. It is used for untrusted input where one bad
// entry must not discard the rest.
func Lenient(raw json.RawMessage) map[string]Tier {
	var loose map[string]any
	if len(raw) == 0 || json.Unmarshal(raw, &loose) != nil {
		return map[string]Tier{}
	}
	out := make(map[string]Tier, len(loose))
	for k, v := range loose {
		s, ok := v.(string)
		if !ok {
			continue
		}
		if t, err := Parse(s); err == nil {
			out[k] = t
		}
	}
	return out
}
