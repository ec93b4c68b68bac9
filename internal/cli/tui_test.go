package cli

import (
	"context"
	"reflect"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/matzehuels/forgeboard/pkg/errors"
	"github.com/matzehuels/forgeboard/pkg/session"
	"github.com/matzehuels/forgeboard/pkg/store"
	"github.com/matzehuels/forgeboard/pkg/tier"
)

func newTestEditor(t *testing.T, order ...string) (EditorModel, *session.Dashboard, *store.Store) {
	t.Helper()
	st := store.New(store.NewMemoryBackend(), nil, nil)
	st.RetryDelay = time.Millisecond
	d, err := session.Open(context.Background(), st, "alice")
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	d.BeginEdit()
	if order != nil {
		d.ReplaceAll(order)
	}
	m := NewEditorModel(context.Background(), d, nil)
	m = send(t, m, tea.WindowSizeMsg{Width: 120, Height: 40})
	return m, d, st
}

func send(t *testing.T, m EditorModel, msgs ...tea.Msg) EditorModel {
	t.Helper()
	for _, msg := range msgs {
		next, _ := m.Update(msg)
		m = next.(EditorModel)
	}
	return m
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestEditorKeyboard(t *testing.T) {
	m, d, _ := newTestEditor(t, "stats_total", "stats_value", "audit")

	m = send(t, m, runes("l"))
	if got := m.selected(); got != "stats_value" {
		t.Fatalf("selected = %q, want stats_value", got)
	}

	m = send(t, m, runes("L"))
	if want := []string{"stats_total", "audit", "stats_value"}; !reflect.DeepEqual(d.Order(), want) {
		t.Errorf("Order() after move = %v, want %v", d.Order(), want)
	}
	if got := m.selected(); got != "stats_value" {
		t.Errorf("selection did not follow the moved widget: %q", got)
	}

	m = send(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if got := d.Tier("stats_value"); got != tier.Small {
		t.Errorf("Tier after cycle = %v, want small", got)
	}
	m = send(t, m, runes("5"))
	if got := d.Tier("stats_value"); got != tier.XLarge {
		t.Errorf("Tier after 5 = %v, want xlarge", got)
	}

	m = send(t, m, runes("x"))
	if want := []string{"stats_total", "audit"}; !reflect.DeepEqual(d.Order(), want) {
		t.Errorf("Order() after remove = %v, want %v", d.Order(), want)
	}
	if got := m.selected(); got != "audit" {
		t.Errorf("selected after remove = %q, want audit", got)
	}

	m = send(t, m, runes("h"), runes("h"))
	if got := m.selected(); got != "stats_total" {
		t.Errorf("selected = %q, want stats_total", got)
	}
}

func TestEditorLibrary(t *testing.T) {
	m, d, _ := newTestEditor(t, "stats_total")
	want := d.Available()[1]

	m = send(t, m, runes("a"))
	if m.mode != modeLibrary {
		t.Fatalf("mode = %v, want library", m.mode)
	}
	if !strings.Contains(m.View(), "Add widget") {
		t.Error("library view missing heading")
	}
	m = send(t, m, runes("j"), tea.KeyMsg{Type: tea.KeyEnter}, tea.KeyMsg{Type: tea.KeyEsc})
	if got := d.Order(); len(got) != 2 || got[1] != want {
		t.Errorf("Order() = %v, want %s appended", got, want)
	}
	if m.mode != modeGrid || m.selected() != want {
		t.Errorf("mode/selected = %v/%q", m.mode, m.selected())
	}
}

func TestEditorSaveAs(t *testing.T) {
	ctx := context.Background()
	m, d, st := newTestEditor(t, "stats_total", "audit")

	typeName := func(m EditorModel, name string) EditorModel {
		m = send(t, m, runes("s"))
		for range []rune(m.input) {
			m = send(t, m, tea.KeyMsg{Type: tea.KeyBackspace})
		}
		return send(t, m, runes(name), tea.KeyMsg{Type: tea.KeyEnter})
	}

	m = typeName(m, "Mine")
	if m.mode != modeGrid {
		t.Fatalf("mode = %v after save, want grid", m.mode)
	}
	d.Wait()

	snap, err := st.LoadSaved(ctx, "alice", "Mine")
	if err != nil {
		t.Fatalf("LoadSaved: %v", err)
	}
	if !reflect.DeepEqual(snap.Order, []string{"stats_total", "audit"}) {
		t.Errorf("saved order = %v", snap.Order)
	}

	d.Remove("audit")
	m = typeName(m, "Mine")
	if m.mode != modeConfirm {
		t.Fatalf("mode = %v on duplicate, want confirm", m.mode)
	}
	if !strings.Contains(m.View(), "Overwrite?") {
		t.Error("confirm view missing prompt")
	}
	m = send(t, m, runes("y"))
	d.Wait()
	if m.mode != modeGrid || m.statusErr {
		t.Errorf("mode/statusErr = %v/%v, status %q", m.mode, m.statusErr, m.status)
	}
	snap, _ = st.LoadSaved(ctx, "alice", "Mine")
	if !reflect.DeepEqual(snap.Order, []string{"stats_total"}) {
		t.Errorf("overwritten order = %v", snap.Order)
	}
}

func TestEditorShareAndPreset(t *testing.T) {
	m, d, _ := newTestEditor(t, "stats_total")

	m = send(t, m, runes("c"))
	if !strings.HasPrefix(m.status, "share token: ") || m.statusErr {
		t.Errorf("status = %q", m.status)
	}

	m = send(t, m, runes("p"))
	if len(d.Order()) <= 1 {
		t.Errorf("preset not loaded: %v", d.Order())
	}
	if !strings.HasPrefix(m.status, "loaded preset ") {
		t.Errorf("status = %q", m.status)
	}
}

func TestEditorMouseResize(t *testing.T) {
	m, d, _ := newTestEditor(t, "tips")

	// tips is small (3×2): its handle is the last cell of its box.
	m = send(t, m,
		tea.MouseMsg{X: 17, Y: gridTop + 3, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft},
	)
	if !m.resizing {
		t.Fatal("press on handle did not start a resize")
	}
	m = send(t, m, tea.MouseMsg{X: 47, Y: gridTop + 11, Action: tea.MouseActionMotion})
	if m.preview == nil || m.preview.Cols != 8 || m.preview.Rows != 6 {
		t.Errorf("preview = %+v, want 8×6", m.preview)
	}
	m = send(t, m, tea.MouseMsg{X: 47, Y: gridTop + 11, Action: tea.MouseActionRelease})

	if got := d.Tier("tips"); got != tier.XLarge {
		t.Errorf("Tier(tips) = %v, want xlarge", got)
	}
	if m.resizing || m.preview != nil {
		t.Error("resize state not cleared")
	}
}

func TestEditorMouseDrag(t *testing.T) {
	m, d, _ := newTestEditor(t, "stats_value", "stats_total", "audit")

	m = send(t, m,
		tea.MouseMsg{X: 38, Y: gridTop, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft},
		tea.MouseMsg{X: 2, Y: gridTop, Action: tea.MouseActionMotion},
	)
	if want := []string{"audit", "stats_value", "stats_total"}; !reflect.DeepEqual(d.Order(), want) {
		t.Errorf("Order() during drag = %v, want %v", d.Order(), want)
	}
	if got := m.selected(); got != "audit" {
		t.Errorf("selected = %q, want audit", got)
	}
	m = send(t, m, tea.MouseMsg{X: 2, Y: gridTop, Action: tea.MouseActionRelease})
	if m.dragging {
		t.Error("drag state not cleared")
	}
}

func TestEditorNotice(t *testing.T) {
	m, _, _ := newTestEditor(t, "stats_total")
	m = send(t, m, noticeMsg{op: "persist_current", err: errors.New(errors.ErrCodeStorage, "backend down")})
	if !m.statusErr || !strings.Contains(m.status, "persist current failed") {
		t.Errorf("status = %q (err %v)", m.status, m.statusErr)
	}
}

func TestEditorQuit(t *testing.T) {
	m, _, _ := newTestEditor(t)
	if _, cmd := m.Update(runes("q")); cmd == nil {
		t.Fatal("q returned no command")
	} else if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("q did not quit")
	}
	if !strings.Contains(m.View(), "Forgeboard") {
		t.Error("view missing title")
	}
}
