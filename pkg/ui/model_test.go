package ui

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vanderheijden86/techweave/pkg/config"
	"github.com/vanderheijden86/techweave/pkg/model"
)

func testModel(t *testing.T) Model {
	t.Helper()
	g := model.BuildGraph([]model.Technique{
		{Name: "Alpha", Type: "energiser", OrderTag: "week 1", Scale: 1, Color: "#ff0000", Related: []string{"Beta"}},
		{Name: "Beta", Type: "game", OrderTag: "week 2", Scale: 1, Color: "#00ff00"},
		{Name: "Tidy up!", Automation: "tidyUp", Scale: 1, Color: "#0000ff"},
	})
	m := New(Options{Config: config.DefaultConfig(), Graph: g})
	next, _ := m.Update(tea.WindowSizeMsg{Width: 80, Height: 26})
	return next.(Model)
}

func position(m Model, name string, x, y float64) Model {
	n := m.Engine().Graph().Node(name)
	n.X, n.Y = x, y
	return m
}

func TestResizeSetsViewport(t *testing.T) {
	m := testModel(t)
	vp := m.Engine().Viewport()
	if vp.Width != 80 || vp.Height != float64(26-headerRows-statusRows)*CellHeight {
		t.Errorf("viewport = %+v", vp)
	}
}

func TestTickStepsSimulation(t *testing.T) {
	m := testModel(t)
	alpha := m.Engine().Sim().Alpha()
	next, cmd := m.Update(tickMsg(time.Now()))
	m = next.(Model)
	if m.Engine().Sim().Alpha() >= alpha {
		t.Error("tick did not advance the simulation")
	}
	if cmd == nil {
		t.Error("tick did not reschedule itself")
	}
}

func TestMouseHoverAndClickLock(t *testing.T) {
	m := testModel(t)
	m = position(m, "Alpha", 20, 10)
	m.View() // populate the hit grid

	hoverAt := func(x, y int) {
		next, _ := m.Update(tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionMotion})
		m = next.(Model)
	}

	hoverAt(20, 5+headerRows)
	if got := m.Engine().State().Hover; got != "Alpha" {
		t.Fatalf("hover = %q, want Alpha", got)
	}
	hoverAt(2, 2)
	if got := m.Engine().State().Hover; got != "" {
		t.Fatalf("hover after moving off = %q, want empty", got)
	}

	// Press and release without motion locks the node.
	press := tea.MouseMsg{X: 20, Y: 5 + headerRows, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft}
	release := tea.MouseMsg{X: 20, Y: 5 + headerRows, Action: tea.MouseActionRelease, Button: tea.MouseButtonLeft}
	next, _ := m.Update(press)
	m = next.(Model)
	next, _ = m.Update(release)
	m = next.(Model)
	if got := m.Engine().State().Locked; got != "Alpha" {
		t.Fatalf("locked = %q, want Alpha", got)
	}

	// Release over the background clears the lock.
	next, _ = m.Update(tea.MouseMsg{X: 2, Y: 2, Action: tea.MouseActionRelease, Button: tea.MouseButtonLeft})
	m = next.(Model)
	if got := m.Engine().State().Locked; got != "" {
		t.Fatalf("locked after background click = %q, want empty", got)
	}
}

func TestDragPinsAndReleases(t *testing.T) {
	m := testModel(t)
	m = position(m, "Alpha", 20, 10)
	m.View()

	press := tea.MouseMsg{X: 20, Y: 5 + headerRows, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft}
	next, _ := m.Update(press)
	m = next.(Model)

	move := tea.MouseMsg{X: 40, Y: 8 + headerRows, Action: tea.MouseActionMotion, Button: tea.MouseButtonLeft}
	next, _ = m.Update(move)
	m = next.(Model)

	n := m.Engine().Graph().Node("Alpha")
	if !n.Pinned() {
		t.Fatal("dragged node not pinned")
	}
	if n.FX == nil || *n.FX != 40 {
		t.Fatalf("pin x = %v, want 40", n.FX)
	}

	release := tea.MouseMsg{X: 40, Y: 8 + headerRows, Action: tea.MouseActionRelease, Button: tea.MouseButtonLeft}
	next, _ = m.Update(release)
	m = next.(Model)
	if n.Pinned() {
		t.Fatal("node still pinned after release")
	}
	// A drag is not a click: no lock taken.
	if got := m.Engine().State().Locked; got != "" {
		t.Fatalf("locked after drag = %q, want empty", got)
	}
}

func TestAutomationClickFromMouse(t *testing.T) {
	m := testModel(t)
	m = position(m, "Tidy up!", 30, 14)
	m.View()

	press := tea.MouseMsg{X: 30, Y: 7 + headerRows, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft}
	release := tea.MouseMsg{X: 30, Y: 7 + headerRows, Action: tea.MouseActionRelease, Button: tea.MouseButtonLeft}
	next, _ := m.Update(press)
	m = next.(Model)
	next, _ = m.Update(release)
	m = next.(Model)

	if got := m.Engine().State().Layout.String(); got != "tidy" {
		t.Fatalf("layout = %q, want tidy", got)
	}
	if got := m.Engine().State().Locked; got != "" {
		t.Fatalf("automation click locked %q", got)
	}
}

func TestBackgroundDragPans(t *testing.T) {
	m := testModel(t)
	m.View()

	press := tea.MouseMsg{X: 2, Y: 2, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft}
	next, _ := m.Update(press)
	m = next.(Model)

	move := tea.MouseMsg{X: 12, Y: 4, Action: tea.MouseActionMotion, Button: tea.MouseButtonLeft}
	next, _ = m.Update(move)
	m = next.(Model)

	z := m.Engine().State().Zoom
	if z.TX != 10 {
		t.Errorf("pan TX = %v, want 10", z.TX)
	}
	if z.TY != 2*CellHeight {
		t.Errorf("pan TY = %v, want %v", z.TY, 2*CellHeight)
	}

	// Release after panning is not a background click: set a lock first and
	// verify it survives a pan.
	release := tea.MouseMsg{X: 12, Y: 4, Action: tea.MouseActionRelease, Button: tea.MouseButtonLeft}
	next, _ = m.Update(release)
	m = next.(Model)

	m.Engine().ClickNode("Alpha")
	next, _ = m.Update(press)
	m = next.(Model)
	next, _ = m.Update(move)
	m = next.(Model)
	next, _ = m.Update(release)
	m = next.(Model)
	if got := m.Engine().State().Locked; got != "Alpha" {
		t.Errorf("pan release cleared the lock, locked = %q", got)
	}
}

func TestWheelZoom(t *testing.T) {
	m := testModel(t)
	next, _ := m.Update(tea.MouseMsg{X: 40, Y: 12, Button: tea.MouseButtonWheelUp})
	m = next.(Model)
	if k := m.Engine().State().Zoom.K; k <= 1 {
		t.Errorf("zoom after wheel up = %v, want > 1", k)
	}
	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'0'}})
	m = next.(Model)
	if z := m.Engine().State().Zoom; z.K != 1 || z.TX != 0 || z.TY != 0 {
		t.Errorf("zoom after reset = %+v", z)
	}
}

func TestSearchKeyFlow(t *testing.T) {
	m := testModel(t)

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'/'}})
	m = next.(Model)
	if m.focus != focusSearch {
		t.Fatal("slash did not focus search")
	}

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'a'}})
	m = next.(Model)
	if got := m.Engine().State().Filters.Query; got != "a" {
		t.Fatalf("query = %q, want a", got)
	}

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	m = next.(Model)
	if m.focus != focusCanvas || m.Engine().State().Filters.Query != "" {
		t.Fatal("esc did not cancel the search")
	}
}

func TestFilterOverlayFlow(t *testing.T) {
	m := testModel(t)

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'f'}})
	m = next.(Model)
	if m.focus != focusFilter {
		t.Fatal("f did not open the filter overlay")
	}

	// First item is the first type; toggle it.
	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{' '}})
	m = next.(Model)
	if len(m.Engine().State().Filters.Types) != 1 {
		t.Fatalf("filters = %+v, want one type", m.Engine().State().Filters)
	}

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	m = next.(Model)
	if m.focus != focusCanvas {
		t.Fatal("esc did not close the overlay")
	}

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'r'}})
	m = next.(Model)
	if m.Engine().State().Filters.Active() {
		t.Fatal("r did not clear filters")
	}
}

func TestTagToggleKey(t *testing.T) {
	m := testModel(t)
	m = position(m, "Alpha", 20, 10)
	m.View()

	next, _ := m.Update(tea.MouseMsg{X: 20, Y: 5 + headerRows, Action: tea.MouseActionMotion})
	m = next.(Model)
	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'t'}})
	m = next.(Model)
	if !m.Engine().State().Filters.Tags["week 1"] {
		t.Fatal("t did not toggle the tracked technique's tag")
	}

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'t'}})
	m = next.(Model)
	if m.Engine().State().Filters.Tags["week 1"] {
		t.Fatal("second t did not toggle the tag back off")
	}
}

func TestDatasetReloadSwapsGraph(t *testing.T) {
	m := testModel(t)
	g2 := model.BuildGraph([]model.Technique{{Name: "Solo", Scale: 1, Color: "#111"}})

	next, _ := m.Update(datasetMsg{graph: g2})
	m = next.(Model)
	if len(m.Engine().Graph().Nodes) != 1 || m.Engine().Graph().Nodes[0].Name != "Solo" {
		t.Fatalf("graph after reload = %+v", m.Engine().Graph().Nodes)
	}
	if !strings.Contains(m.status, "reloaded") {
		t.Errorf("status = %q", m.status)
	}
}

func TestDatasetErrorEmptiesGraph(t *testing.T) {
	m := testModel(t)
	next, _ := m.Update(datasetErrMsg{err: errDummy{}})
	m = next.(Model)
	if len(m.Engine().Graph().Nodes) != 0 {
		t.Fatal("broken dataset did not empty the map")
	}
	if !strings.Contains(m.status, "dataset error") {
		t.Errorf("status = %q", m.status)
	}
}

type errDummy struct{}

func (errDummy) Error() string { return "boom" }

func TestHelpOverlay(t *testing.T) {
	m := testModel(t)
	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'?'}})
	m = next.(Model)
	if m.focus != focusHelp {
		t.Fatal("? did not open help")
	}
	if out := m.View(); !strings.Contains(out, "esc close") {
		t.Error("help view missing footer")
	}
	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	m = next.(Model)
	if m.focus != focusCanvas {
		t.Fatal("esc did not close help")
	}
}

func TestViewRendersChrome(t *testing.T) {
	m := testModel(t)
	out := m.View()
	if !strings.Contains(out, "techweave") {
		t.Error("header missing")
	}
	if !strings.Contains(out, "3 techniques") {
		t.Error("status bar missing node count")
	}
}
