package layout

import (
	"testing"

	"github.com/matzehuels/forgeboard/pkg/catalog"
	"github.com/matzehuels/forgeboard/pkg/tier"
)

func TestPackRowFill(t *testing.T) {
	cat := testCatalog("a", "b", "c", "d", "e")
	tiers := Tiers{"a": tier.XS, "b": tier.XS, "c": tier.XS, "d": tier.XS, "e": tier.XS}
	g := Pack(cat, []string{"a", "b", "c", "d", "e"}, tiers, 12)

	want := []struct{ col, row int }{{0, 0}, {3, 0}, {6, 0}, {9, 0}, {0, 1}}
	for i, w := range want {
		p := g.Placements[i]
		if p.Col != w.col || p.Row != w.row {
			t.Errorf("%s at (%d,%d), want (%d,%d)", p.Key, p.Col, p.Row, w.col, w.row)
		}
	}
	if g.Rows != 2 {
		t.Errorf("Rows = %d, want 2", g.Rows)
	}
}

func TestPackDenseBackfill(t *testing.T) {
	cat := testCatalog("wide", "tall", "pill", "pill2")
	tiers := Tiers{
		"wide":  tier.Medium, // 6x3
		"tall":  tier.XLarge, // 12x6, forced below
		"pill":  tier.XS,     // 3x1, back-fills beside wide
		"pill2": tier.XS,
	}
	g := Pack(cat, []string{"wide", "tall", "pill", "pill2"}, tiers, 12)

	checks := map[string][2]int{
		"wide":  {0, 0},
		"tall":  {0, 3},
		"pill":  {6, 0},
		"pill2": {9, 0},
	}
	for key, pos := range checks {
		p, ok := g.Find(key)
		if !ok {
			t.Fatalf("Find(%q) missing", key)
		}
		if p.Col != pos[0] || p.Row != pos[1] {
			t.Errorf("%s at (%d,%d), want (%d,%d)", key, p.Col, p.Row, pos[0], pos[1])
		}
	}
	if g.Rows != 9 {
		t.Errorf("Rows = %d, want 9", g.Rows)
	}
}

func TestPackNoOverlap(t *testing.T) {
	cat := catalog.Builtin()
	order := cat.Keys()
	tiers := Tiers{}
	for i, k := range order {
		tiers[k] = tier.All[i%len(tier.All)]
	}
	g := Pack(cat, order, tiers, 12)

	cells := make(map[[2]int]string)
	for _, p := range g.Placements {
		if p.Right() > 12 {
			t.Errorf("%s overflows: right=%d", p.Key, p.Right())
		}
		for r := p.Row; r < p.Bottom(); r++ {
			for c := p.Col; c < p.Right(); c++ {
				if other, taken := cells[[2]int{r, c}]; taken {
					t.Fatalf("%s overlaps %s at (%d,%d)", p.Key, other, c, r)
				}
				cells[[2]int{r, c}] = p.Key
			}
		}
	}
}

func TestPackClampsNarrowGrid(t *testing.T) {
	cat := testCatalog("a")
	g := Pack(cat, []string{"a"}, Tiers{"a": tier.XLarge}, 4)
	if p := g.Placements[0]; p.Cols != 4 || p.Col != 0 {
		t.Errorf("placement = %+v, want clamped to 4 cols", p)
	}
	if g := Pack(cat, []string{"a"}, nil, 0); g.Columns != tier.Columns {
		t.Errorf("Columns = %d, want default %d", g.Columns, tier.Columns)
	}
}

func TestPlacementBounds(t *testing.T) {
	p := Placement{Col: 3, Row: 2, Cols: 6, Rows: 3}
	r := p.Bounds(100, 60)
	if r.Left != 300 || r.Top != 120 || r.Right != 900 || r.Bottom != 300 {
		t.Errorf("Bounds() = %+v", r)
	}
	if r.Width() != 600 || r.Height() != 180 {
		t.Errorf("Width/Height = %v/%v", r.Width(), r.Height())
	}
	if !r.Contains(Point{X: 300, Y: 300}) || r.Contains(Point{X: 299, Y: 150}) {
		t.Error("Contains() edge handling wrong")
	}
}
