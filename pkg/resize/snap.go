// Package resize implements the two resize interactions for dashboard
// widgets: the discrete tier cycle and continuous drag-to-size with snapping.
package resize

import "github.com/matzehuels/forgeboard/pkg/tier"

// ColumnUnitPx is the pixel width of one grid column used when converting a
// drag delta into column units.
const ColumnUnitPx = 100.0

// Viewport breakpoints for the row unit.
const (
	breakpointMd = 768
	breakpointXl = 1280
)

// RowUnitPx returns the pixel height of one grid row for a viewport of the
// given width.
func RowUnitPx(viewportWidth int) float64 {
	switch {
	case viewportWidth < breakpointMd:
		return 50
	case viewportWidth < breakpointXl:
		return 60
	default:
		return 75
	}
}

// Snap maps fractional grid units to the nearest tier. It is monotonic in
// both axes and Snap of a tier's own span returns that tier.
func Snap(cols, rows float64) tier.Tier {
	switch {
	case rows >= 5:
		if cols >= 7 {
			return tier.XLarge
		}
		return tier.Large
	case rows >= 2.5:
		if cols >= 4 {
			return tier.Medium
		}
		return tier.Small
	case rows >= 1.5:
		return tier.Small
	default:
		return tier.XS
	}
}

// Cycle returns the tier after t in the discrete resize cycle.
func Cycle(t tier.Tier) tier.Tier {
	return t.Next()
}
