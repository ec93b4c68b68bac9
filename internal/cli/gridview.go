package cli

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/forgeboard/pkg/catalog"
	"github.com/matzehuels/forgeboard/pkg/layout"
)

// Terminal cells per layout unit.
const (
	cellWidth  = 6
	cellHeight = 2
)

var (
	styleBox      = lipgloss.NewStyle().Foreground(colorGray)
	styleSelected = lipgloss.NewStyle().Foreground(colorCyan).Bold(true)
	stylePreview  = lipgloss.NewStyle().Foreground(colorYellow)
)

type borderRunes struct {
	h, v, tl, tr, bl, br rune
}

var (
	borderNormal   = borderRunes{'─', '│', '┌', '┐', '└', '┘'}
	borderSelected = borderRunes{'═', '║', '╔', '╗', '╚', '╝'}
	borderPreview  = borderRunes{'┄', '┆', '┌', '┐', '└', '┘'}
)

// cell paint classes
const (
	paintNone = iota
	paintBox
	paintSelected
	paintPreview
)

// gridView draws a packed grid as box-drawing characters.
type gridView struct {
	catalog  *catalog.Registry
	grid     layout.Grid
	selected string

	// preview, when set, outlines the pending size of a drag-resize in
	// layout units anchored at the top-left of the selected widget.
	preview *layout.Placement
}

// placementAt returns the widget covering the terminal cell (x, y), relative
// to the grid origin, and whether the cell is its resize handle.
func (v gridView) placementAt(x, y int) (layout.Placement, bool, bool) {
	col, row := x/cellWidth, y/cellHeight
	for _, p := range v.grid.Placements {
		if col >= p.Col && col < p.Right() && row >= p.Row && row < p.Bottom() {
			handle := x == p.Right()*cellWidth-1 && y == p.Bottom()*cellHeight-1
			return p, handle, true
		}
	}
	return layout.Placement{}, false, false
}

func (v gridView) Render() string {
	rows := v.grid.Rows
	if v.preview != nil {
		rows = max(rows, v.preview.Bottom())
	}
	width, height := v.grid.Columns*cellWidth, rows*cellHeight
	if width == 0 || height == 0 {
		return StyleDim.Render("(empty dashboard)")
	}

	canvas := make([][]rune, height)
	paint := make([][]int, height)
	for y := range canvas {
		canvas[y] = []rune(strings.Repeat(" ", width))
		paint[y] = make([]int, width)
	}

	for _, p := range v.grid.Placements {
		br, class := borderNormal, paintBox
		if p.Key == v.selected {
			br, class = borderSelected, paintSelected
		}
		x0, y0 := p.Col*cellWidth, p.Row*cellHeight
		x1, y1 := p.Right()*cellWidth-1, p.Bottom()*cellHeight-1
		drawBox(canvas, paint, x0, y0, x1, y1, br, class)

		title := p.Key
		if e, ok := v.catalog.Lookup(p.Key); ok {
			title = e.Title
		}
		drawText(canvas, paint, x0+1, y0+1, x1-x0-1, title, class)
		if y1-y0 > 2 {
			drawText(canvas, paint, x0+1, y0+2, x1-x0-1, p.Tier.String(), class)
		}
	}

	if v.preview != nil {
		p := *v.preview
		x1 := min(p.Right()*cellWidth, width) - 1
		y1 := min(p.Bottom()*cellHeight, height) - 1
		drawBox(canvas, paint, p.Col*cellWidth, p.Row*cellHeight, x1, y1, borderPreview, paintPreview)
	}

	var b strings.Builder
	for y := range canvas {
		if y > 0 {
			b.WriteByte('\n')
		}
		writeLine(&b, canvas[y], paint[y])
	}
	return b.String()
}

func drawBox(canvas [][]rune, paint [][]int, x0, y0, x1, y1 int, br borderRunes, class int) {
	set := func(x, y int, r rune) {
		if y >= 0 && y < len(canvas) && x >= 0 && x < len(canvas[y]) {
			canvas[y][x] = r
			paint[y][x] = class
		}
	}
	for x := x0 + 1; x < x1; x++ {
		set(x, y0, br.h)
		set(x, y1, br.h)
	}
	for y := y0 + 1; y < y1; y++ {
		set(x0, y, br.v)
		set(x1, y, br.v)
	}
	set(x0, y0, br.tl)
	set(x1, y0, br.tr)
	set(x0, y1, br.bl)
	set(x1, y1, br.br)
}

func drawText(canvas [][]rune, paint [][]int, x, y, width int, text string, class int) {
	if y < 0 || y >= len(canvas) || width <= 0 {
		return
	}
	runes := []rune(text)
	if len(runes) > width {
		runes = append(runes[:max(width-1, 0)], '…')
	}
	for i, r := range runes {
		if x+i < len(canvas[y]) {
			canvas[y][x+i] = r
			paint[y][x+i] = class
		}
	}
}

// writeLine renders one canvas row, styling runs of equally painted cells.
func writeLine(b *strings.Builder, line []rune, paint []int) {
	start := 0
	for i := 1; i <= len(line); i++ {
		if i < len(line) && paint[i] == paint[start] {
			continue
		}
		seg := string(line[start:i])
		switch paint[start] {
		case paintBox:
			seg = styleBox.Render(seg)
		case paintSelected:
			seg = styleSelected.Render(seg)
		case paintPreview:
			seg = stylePreview.Render(seg)
		}
		b.WriteString(seg)
		start = i
	}
}
