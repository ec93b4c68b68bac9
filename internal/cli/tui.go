package cli

import (
	"context"
	"fmt"
	"math"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/forgeboard/pkg/errors"
	"github.com/matzehuels/forgeboard/pkg/layout"
	"github.com/matzehuels/forgeboard/pkg/preset"
	"github.com/matzehuels/forgeboard/pkg/reorder"
	"github.com/matzehuels/forgeboard/pkg/resize"
	"github.com/matzehuels/forgeboard/pkg/session"
	"github.com/matzehuels/forgeboard/pkg/tier"
)

// gridTop is the first screen line of the grid in the editor view.
const gridTop = 3

// pointerID identifies the mouse to the resize engine.
const pointerID = 1

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

type editorMode int

const (
	modeGrid editorMode = iota
	modeLibrary
	modeSaveName
	modeConfirm
)

// noticeMsg reports a failed background write.
type noticeMsg struct {
	op  string
	err error
}

// =============================================================================
// EditorModel - Interactive dashboard editor
// =============================================================================

// EditorModel is the bubbletea model of the terminal editor. It drives a
// session in edit mode; leaving the editor does not end edit mode, the
// caller does.
type EditorModel struct {
	ctx     context.Context
	d       *session.Dashboard
	notices <-chan noticeMsg

	mode      editorMode
	cursor    int
	libCursor int
	input     string
	presetIdx int

	status    string
	statusErr bool

	width  int
	height int

	dragging bool
	resizing bool
	preview  *layout.Placement
}

// NewEditorModel creates an editor for d. notices may be nil.
func NewEditorModel(ctx context.Context, d *session.Dashboard, notices <-chan noticeMsg) EditorModel {
	return EditorModel{ctx: ctx, d: d, notices: notices, presetIdx: -1}
}

func (m EditorModel) Init() tea.Cmd {
	return m.waitNotice()
}

func (m EditorModel) waitNotice() tea.Cmd {
	if m.notices == nil {
		return nil
	}
	ch := m.notices
	return func() tea.Msg {
		n, ok := <-ch
		if !ok {
			return nil
		}
		return n
	}
}

func (m EditorModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case noticeMsg:
		m.setError("%s failed: %s", strings.ReplaceAll(msg.op, "_", " "), errors.UserMessage(msg.err))
		return m, m.waitNotice()
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.d.SetViewport(int(float64(msg.Width)/cellWidth*resize.ColumnUnitPx), 0)
	case tea.MouseMsg:
		m.handleMouse(msg)
	case tea.KeyMsg:
		switch m.mode {
		case modeLibrary:
			return m.updateLibrary(msg)
		case modeSaveName:
			return m.updateSaveName(msg)
		case modeConfirm:
			return m.updateConfirm(msg)
		default:
			return m.updateGrid(msg)
		}
	}
	return m, nil
}

func (m EditorModel) updateGrid(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	order := m.d.Order()
	key := m.selected()

	switch msg.String() {
	case "q", "ctrl+c", "esc":
		return m, tea.Quit
	case "left", "h", "up", "k", "shift+tab":
		m.cursor = max(m.cursor-1, 0)
	case "right", "l", "down", "j", "tab":
		m.cursor = min(m.cursor+1, max(len(order)-1, 0))
	case "H", "[":
		if key != "" && m.d.Move(key, m.cursor-1) {
			m.cursor = max(m.cursor-1, 0)
		}
	case "L", "]":
		if key != "" && m.d.Move(key, m.cursor+1) {
			m.cursor = min(m.cursor+1, len(order)-1)
		}
	case " ", "space", "enter":
		if t, ok := m.d.Cycle(key); ok {
			m.setStatus("%s is now %s", key, t)
		}
	case "1", "2", "3", "4", "5":
		t := tier.All[msg.String()[0]-'1']
		if m.d.SetTier(key, t) {
			m.setStatus("%s is now %s", key, t)
		}
	case "x", "delete", "backspace":
		if key != "" && m.d.Remove(key) {
			m.cursor = min(m.cursor, max(len(order)-2, 0))
			m.setStatus("removed %s", key)
		}
	case "a":
		if len(m.d.Available()) == 0 {
			m.setStatus("every widget is already placed")
			break
		}
		m.mode, m.libCursor = modeLibrary, 0
	case "p":
		names := preset.Names()
		m.presetIdx = (m.presetIdx + 1) % len(names)
		if err := m.d.LoadPreset(names[m.presetIdx]); err != nil {
			m.setError("%s", errors.UserMessage(err))
			break
		}
		m.cursor = 0
		m.setStatus("loaded preset %s", names[m.presetIdx])
	case "s":
		m.mode, m.input = modeSaveName, m.d.Name()
	case "c":
		token, err := m.d.Share()
		if err != nil {
			m.setError("%s", errors.UserMessage(err))
			break
		}
		m.setStatus("share token: %s", token)
	}
	return m, nil
}

func (m EditorModel) updateLibrary(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	avail := m.d.Available()
	switch msg.String() {
	case "esc", "q":
		m.mode = modeGrid
	case "up", "k":
		m.libCursor = max(m.libCursor-1, 0)
	case "down", "j":
		m.libCursor = min(m.libCursor+1, max(len(avail)-1, 0))
	case "enter", " ", "space":
		if m.libCursor >= len(avail) {
			break
		}
		key := avail[m.libCursor]
		if m.d.Add(key) {
			m.cursor = len(m.d.Order()) - 1
			m.setStatus("added %s", key)
		}
		if len(m.d.Available()) == 0 {
			m.mode = modeGrid
		}
		m.libCursor = min(m.libCursor, max(len(m.d.Available())-1, 0))
	}
	return m, nil
}

func (m EditorModel) updateSaveName(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.mode = modeGrid
	case tea.KeyEnter:
		err := m.d.SaveAs(m.ctx, m.input, false)
		switch {
		case errors.Is(err, errors.ErrCodeDuplicateName):
			m.mode = modeConfirm
		case err != nil:
			m.setError("%s", errors.UserMessage(err))
		default:
			m.mode = modeGrid
			m.setStatus("saving %s", m.input)
		}
	case tea.KeyBackspace:
		if r := []rune(m.input); len(r) > 0 {
			m.input = string(r[:len(r)-1])
		}
	case tea.KeySpace:
		m.input += " "
	case tea.KeyRunes:
		m.input += string(msg.Runes)
	}
	return m, nil
}

func (m EditorModel) updateConfirm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y":
		if err := m.d.Overwrite(m.ctx, m.input); err != nil {
			m.setError("%s", errors.UserMessage(err))
		} else {
			m.setStatus("overwriting %s", m.input)
		}
		m.mode = modeGrid
	case "n", "N", "esc":
		m.mode = modeSaveName
	}
	return m, nil
}

// handleMouse maps terminal cells to layout pixels and feeds the reorder
// and resize engines. Pressing a widget's bottom-right corner resizes it;
// pressing anywhere else on it drags it.
func (m *EditorModel) handleMouse(msg tea.MouseMsg) {
	x, y := msg.X, msg.Y-gridTop
	colPx, rowPx := resize.ColumnUnitPx, m.d.RowUnit()
	at := layout.Point{
		X: float64(x) / cellWidth * colPx,
		Y: float64(y) / cellHeight * rowPx,
	}
	grid := m.d.Grid(tier.Columns)

	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft {
			return
		}
		p, handle, ok := m.view(grid).placementAt(x, y)
		if !ok {
			return
		}
		m.cursor = indexOf(m.d.Order(), p.Key)
		if handle {
			w, h := float64(p.Cols)*colPx, float64(p.Rows)*rowPx
			if out := m.d.BeginResize(p.Key, pointerID, at, w, h); out.Kind == resize.Started {
				m.resizing = true
				m.preview = &p
			}
			return
		}
		m.dragging = m.d.DragStart(p.Key, reorder.FromGrid)

	case tea.MouseActionMotion:
		switch {
		case m.resizing:
			out := m.d.Resize(resize.PointerMove{PointerID: pointerID, At: at})
			if out.Kind == resize.Previewed && m.preview != nil {
				m.preview.Cols = int(math.Round(out.Preview.WidthPx / colPx))
				m.preview.Rows = int(math.Round(out.Preview.HeightPx / rowPx))
			}
		case m.dragging:
			key := m.selected()
			if m.d.DragOver(at, reorder.Targets(grid, colPx, rowPx)) {
				m.cursor = indexOf(m.d.Order(), key)
			}
		}

	case tea.MouseActionRelease:
		switch {
		case m.resizing:
			out := m.d.Resize(resize.PointerUp{PointerID: pointerID, At: at})
			switch out.Kind {
			case resize.Committed:
				m.setStatus("%s is now %s", out.Key, out.To)
			case resize.Cancelled:
				m.setStatus("resize cancelled")
			}
			m.resizing, m.preview = false, nil
		case m.dragging:
			m.d.Drop(at, layout.Rect{Right: float64(grid.Columns) * colPx, Bottom: float64(grid.Rows) * rowPx})
			m.dragging = false
		}
	}
}

func (m EditorModel) selected() string {
	order := m.d.Order()
	if m.cursor < 0 || m.cursor >= len(order) {
		return ""
	}
	return order[m.cursor]
}

func indexOf(order []string, key string) int {
	for i, k := range order {
		if k == key {
			return i
		}
	}
	return 0
}

func (m EditorModel) view(grid layout.Grid) gridView {
	return gridView{catalog: m.d.Catalog(), grid: grid, selected: m.selected(), preview: m.preview}
}

func (m *EditorModel) setStatus(format string, args ...any) {
	m.status, m.statusErr = fmt.Sprintf(format, args...), false
}

func (m *EditorModel) setError(format string, args ...any) {
	m.status, m.statusErr = fmt.Sprintf(format, args...), true
}

func (m EditorModel) View() string {
	var b strings.Builder

	title := StyleTitle.Render("Forgeboard")
	sub := m.d.User()
	if name := m.d.Name(); name != "" {
		sub += " · " + name
	}
	b.WriteString(title + " " + listDimStyle.Render(sub) + "\n")
	b.WriteString(listDimStyle.Render(m.help()) + "\n\n")

	b.WriteString(m.view(m.d.Grid(tier.Columns)).Render())
	b.WriteString("\n\n")

	switch m.mode {
	case modeLibrary:
		b.WriteString(StyleTitle.Render("Add widget") + "\n")
		for i, key := range m.d.Available() {
			line := "  " + key
			if e, ok := m.d.Catalog().Lookup(key); ok {
				line = fmt.Sprintf("  %-20s %s", key, listDimStyle.Render(e.Description))
			}
			if i == m.libCursor {
				b.WriteString(listSelectedStyle.Render("▸"+line[1:]) + "\n")
			} else {
				b.WriteString(listNormalStyle.Render(line) + "\n")
			}
		}
	case modeSaveName:
		b.WriteString("Save as: " + StyleValue.Render(m.input) + StyleHighlight.Render("▏") + "\n")
	case modeConfirm:
		b.WriteString(StyleWarning.Render(fmt.Sprintf("A layout named %q exists. Overwrite? [y/N]", m.input)) + "\n")
	}

	if m.status != "" {
		style := StyleSuccess
		if m.statusErr {
			style = StyleError
		}
		b.WriteString(style.Render(m.status) + "\n")
	}
	return b.String()
}

func (m EditorModel) help() string {
	switch m.mode {
	case modeLibrary:
		return "↑/↓ navigate  ⏎ add  esc back"
	case modeSaveName:
		return "type a name  ⏎ save  esc cancel"
	case modeConfirm:
		return "y overwrite  n rename"
	default:
		return "←/→ select  [/] move  space size  1-5 tier  x remove  a add  p preset  s save  c share  q done"
	}
}
