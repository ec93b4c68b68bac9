package layout

import (
	"github.com/matzehuels/forgeboard/pkg/catalog"
	"github.com/matzehuels/forgeboard/pkg/tier"
)

// Placement is the grid cell range a widget occupies. Col and Row are
// zero-based; units are layout units, not pixels.
type Placement struct {
	Key  string    `json:"key"`
	Tier tier.Tier `json:"size"`
	Col  int       `json:"col"`
	Row  int       `json:"row"`
	Cols int       `json:"cols"`
	Rows int       `json:"rows"`
}

// Right returns the first column past the placement.
func (p Placement) Right() int { return p.Col + p.Cols }

// Bottom returns the first row past the placement.
func (p Placement) Bottom() int { return p.Row + p.Rows }

// Bounds converts the placement to a pixel rectangle given the size of one
// column and one row unit.
func (p Placement) Bounds(colPx, rowPx float64) Rect {
	return Rect{
		Left:   float64(p.Col) * colPx,
		Top:    float64(p.Row) * rowPx,
		Right:  float64(p.Right()) * colPx,
		Bottom: float64(p.Bottom()) * rowPx,
	}
}

// Grid is the result of packing a layout.
type Grid struct {
	Columns    int         `json:"columns"`
	Rows       int         `json:"rows"`
	Placements []Placement `json:"placements"`
}

// Find returns the placement for key.
func (g Grid) Find(key string) (Placement, bool) {
	for _, p := range g.Placements {
		if p.Key == key {
			return p, true
		}
	}
	return Placement{}, false
}

// Pack places order on a grid of the given width using dense auto-flow: each
// widget takes the first free position, scanning rows top-down and columns
// left-to-right, that fits its span. Later small widgets therefore back-fill
// holes left by earlier wide ones. Spans wider than the grid are clamped.
func Pack(cat *catalog.Registry, order []string, tiers Tiers, columns int) Grid {
	if columns <= 0 {
		columns = tier.Columns
	}
	occ := &occupancy{cols: columns}
	grid := Grid{Columns: columns, Placements: make([]Placement, 0, len(order))}

	for _, key := range order {
		t := tiers.Effective(cat, key)
		sp := t.Span()
		w := min(sp.Cols, columns)
		row, col := occ.firstFit(w, sp.Rows)
		occ.fill(row, col, w, sp.Rows)

		p := Placement{Key: key, Tier: t, Col: col, Row: row, Cols: w, Rows: sp.Rows}
		grid.Placements = append(grid.Placements, p)
		grid.Rows = max(grid.Rows, p.Bottom())
	}
	return grid
}

// occupancy tracks filled cells row by row; rows are allocated on demand.
type occupancy struct {
	cols  int
	cells [][]bool
}

func (o *occupancy) free(row, col, w, h int) bool {
	for r := row; r < row+h; r++ {
		if r >= len(o.cells) {
			return true
		}
		for c := col; c < col+w; c++ {
			if o.cells[r][c] {
				return false
			}
		}
	}
	return true
}

func (o *occupancy) firstFit(w, h int) (int, int) {
	for row := 0; ; row++ {
		for col := 0; col+w <= o.cols; col++ {
			if o.free(row, col, w, h) {
				return row, col
			}
		}
	}
}

func (o *occupancy) fill(row, col, w, h int) {
	for len(o.cells) < row+h {
		o.cells = append(o.cells, make([]bool, o.cols))
	}
	for r := row; r < row+h; r++ {
		for c := col; c < col+w; c++ {
			o.cells[r][c] = true
		}
	}
}
