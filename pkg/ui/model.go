// Package ui is the interactive terminal front end: a bubbletea program that
// ticks the physics simulation, rasterizes frames onto a cell canvas, and
// translates key/mouse input into view engine events.
package ui

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vanderheijden86/techweave/internal/datasource"
	"github.com/vanderheijden86/techweave/pkg/config"
	"github.com/vanderheijden86/techweave/pkg/debug"
	"github.com/vanderheijden86/techweave/pkg/export"
	"github.com/vanderheijden86/techweave/pkg/layout"
	"github.com/vanderheijden86/techweave/pkg/model"
	"github.com/vanderheijden86/techweave/pkg/physics"
	"github.com/vanderheijden86/techweave/pkg/view"
	"github.com/vanderheijden86/techweave/pkg/watcher"
)

// chrome rows reserved above and below the canvas.
const (
	headerRows = 1
	statusRows = 1
)

// zoomStep is the wheel/keyboard zoom factor per notch.
const zoomStep = 1.15

// focus represents which UI element has keyboard focus.
type focus int

const (
	focusCanvas focus = iota
	focusSearch
	focusFilter
	focusHelp
	focusMedia
)

// Messages.
type (
	tickMsg    time.Time
	datasetMsg struct {
		graph *model.Graph
		diff  datasource.DatasetDiff
	}
	datasetErrMsg  struct{ err error }
	watchChangeMsg struct{}
	clearStatusMsg struct{}
)

// mediaSink receives the resolved URL from the play-media automation. It is
// a pointer so the engine callback survives bubbletea's model copying.
type mediaSink struct{ url string }

// Options configures a new Model.
type Options struct {
	Config      config.Config
	Graph       *model.Graph
	DatasetPath string // explicit dataset path, empty when discovered
	DatasetDir  string // discovery directory when DatasetPath is empty
	Watcher     *watcher.Watcher
}

// Model is the bubbletea model for the technique map.
type Model struct {
	cfg    config.Config
	theme  Theme
	canvas *Canvas
	engine *view.Engine
	media  *mediaSink

	datasetPath string
	datasetDir  string
	watcher     *watcher.Watcher

	width, height int
	focus         focus

	search   textinput.Model
	filter   filterOverlay
	helpView viewport.Model

	// Drag state. dragNode is pinned to the pointer until release; a release
	// without motion is a click instead.
	dragNode  string
	dragMoved bool

	// Background drag pans the viewport; a release without motion is a
	// background click instead.
	panning            bool
	panMoved           bool
	panLastX, panLastY int

	status  string
	lastErr error
}

// New builds the model around an already-loaded graph.
func New(opts Options) Model {
	theme := DefaultTheme(lipgloss.DefaultRenderer())

	search := textinput.New()
	search.Placeholder = "search techniques"
	search.Prompt = "/ "
	search.CharLimit = 64

	sink := &mediaSink{}
	canvas := NewCanvas(80, 24, theme)
	w, h := canvas.WorldSize()
	engine := view.NewEngine(opts.Graph,
		layoutViewport(w, h),
		view.WithDonePredicate(opts.Config.DoneMatcher()),
		view.WithMediaHandler(func(url string) { sink.url = url }),
	)

	return Model{
		cfg:         opts.Config,
		theme:       theme,
		canvas:      canvas,
		engine:      engine,
		media:       sink,
		datasetPath: opts.DatasetPath,
		datasetDir:  opts.DatasetDir,
		watcher:     opts.Watcher,
		search:      search,
		filter:      newFilterOverlay(opts.Graph, theme),
		helpView:    viewport.New(60, 20),
	}
}

// Engine exposes the view engine, mainly for tests and the export path.
func (m Model) Engine() *view.Engine { return m.engine }

// Init starts the simulation ticker and the dataset watch loop.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.tickCmd()}
	if m.watcher != nil {
		cmds = append(cmds, m.watchCmd())
	}
	return tea.Batch(cmds...)
}

func (m Model) tickCmd() tea.Cmd {
	interval := time.Duration(m.cfg.UI.TickMillis) * time.Millisecond
	if interval <= 0 {
		interval = config.DefaultTickMillis * time.Millisecond
	}
	return tea.Tick(interval, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func (m Model) watchCmd() tea.Cmd {
	ch := m.watcher.Changed()
	return func() tea.Msg {
		<-ch
		return watchChangeMsg{}
	}
}

func (m Model) reloadCmd() tea.Cmd {
	path, dir := m.datasetPath, m.datasetDir
	prev := m.engine.Graph()
	return func() tea.Msg {
		g, err := datasource.LoadGraph(path, dir)
		if err != nil {
			return datasetErrMsg{err: err}
		}
		return datasetMsg{graph: g, diff: datasource.DiffGraphs(prev, g)}
	}
}

func clearStatusCmd() tea.Cmd {
	return tea.Tick(4*time.Second, func(time.Time) tea.Msg { return clearStatusMsg{} })
}

// Update is the single event loop entry point.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.handleResize(msg), nil

	case tickMsg:
		m.engine.Sim().Step()
		return m, m.tickCmd()

	case watchChangeMsg:
		debug.Log("dataset changed on disk, reloading")
		return m, tea.Batch(m.reloadCmd(), m.watchCmd())

	case datasetMsg:
		m = m.swapGraph(msg.graph)
		m.status = fmt.Sprintf("reloaded %d techniques", len(msg.graph.Nodes))
		if msg.diff.HasChanges() {
			m.status += " (" + msg.diff.Summary() + ")"
		}
		return m, clearStatusCmd()

	case datasetErrMsg:
		// A broken dataset empties the map rather than keeping stale state.
		m = m.swapGraph(model.BuildGraph(nil))
		m.lastErr = msg.err
		m.status = fmt.Sprintf("dataset error: %v", msg.err)
		return m, clearStatusCmd()

	case clearStatusMsg:
		m.status = ""
		return m, nil

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case tea.KeyMsg:
		return m.handleKeys(msg)
	}
	return m, nil
}

func (m Model) handleResize(msg tea.WindowSizeMsg) Model {
	m.width, m.height = msg.Width, msg.Height
	rows := msg.Height - headerRows - statusRows
	m.canvas.Resize(msg.Width, rows)
	w, h := m.canvas.WorldSize()
	m.engine.SetViewport(layoutViewport(w, h))
	m.helpView.Width = min(msg.Width-8, 80)
	m.helpView.Height = msg.Height - 6
	return m
}

// swapGraph replaces the engine after a dataset reload. Mode flags reset with
// it; the new dataset defines its own automations and palette.
func (m Model) swapGraph(g *model.Graph) Model {
	w, h := m.canvas.WorldSize()
	m.engine = view.NewEngine(g,
		layoutViewport(w, h),
		view.WithDonePredicate(m.cfg.DoneMatcher()),
		view.WithMediaHandler(func(url string) { m.media.url = url }),
	)
	m.filter = newFilterOverlay(g, m.theme)
	return m
}

func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if m.focus != focusCanvas {
		if m.focus == focusMedia && msg.Action == tea.MouseActionPress {
			// Clicking anywhere dismisses the media overlay.
			m.focus = focusCanvas
			m.media.url = ""
		}
		return m, nil
	}

	row := msg.Y - headerRows
	zoom := m.engine.State().Zoom

	switch {
	case msg.Button == tea.MouseButtonWheelUp:
		return m.zoomAt(msg.X, row, zoomStep), nil
	case msg.Button == tea.MouseButtonWheelDown:
		return m.zoomAt(msg.X, row, 1/zoomStep), nil
	}

	switch msg.Action {
	case tea.MouseActionMotion:
		if m.dragNode != "" {
			wx, wy := WorldAt(msg.X, row, zoom)
			m.engine.Sim().Pin(m.dragNode, wx, wy)
			m.dragMoved = true
			return m, nil
		}
		if m.panning {
			t := m.engine.State().Zoom
			t.TX += float64(msg.X - m.panLastX)
			t.TY += float64(row-m.panLastY) * CellHeight
			m.engine.SetZoom(t)
			m.panLastX, m.panLastY = msg.X, row
			m.panMoved = true
			return m, nil
		}
		if name := m.canvas.NodeAt(msg.X, row); name != "" {
			m.engine.HoverEnter(name)
		} else if hover := m.engine.State().Hover; hover != "" {
			m.engine.HoverLeave(hover)
		}
		return m, nil

	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft {
			return m, nil
		}
		if name := m.canvas.NodeAt(msg.X, row); name != "" {
			m.dragNode = name
			m.dragMoved = false
			wx, wy := WorldAt(msg.X, row, zoom)
			m.engine.Sim().Pin(m.dragNode, wx, wy)
			m.engine.Sim().SetAlphaTarget(physics.DragAlphaTarget)
			m.engine.Sim().Reheat(physics.DragAlphaTarget)
		} else {
			m.panning = true
			m.panMoved = false
			m.panLastX, m.panLastY = msg.X, row
		}
		return m, nil

	case tea.MouseActionRelease:
		if m.dragNode == "" {
			wasPanning, moved := m.panning, m.panMoved
			m.panning, m.panMoved = false, false
			if !wasPanning || !moved {
				m.engine.ClickBackground()
			}
			return m, nil
		}
		name := m.dragNode
		moved := m.dragMoved
		m.dragNode = ""
		m.dragMoved = false
		m.engine.Sim().SetAlphaTarget(0)
		m.engine.Sim().Unpin(name)
		if !moved {
			if err := m.engine.ClickNode(name); err != nil {
				m.status = err.Error()
				return m, clearStatusCmd()
			}
			if m.media.url != "" {
				m.focus = focusMedia
			}
		}
		return m, nil
	}
	return m, nil
}

// zoomAt scales around the cursor so the world point under it stays put.
func (m Model) zoomAt(col, row int, factor float64) Model {
	t := m.engine.State().Zoom
	wx, wy := WorldAt(col, row, t)
	t.K *= factor
	if t.K < 0.2 {
		t.K = 0.2
	}
	if t.K > 8 {
		t.K = 8
	}
	t.TX = float64(col) - wx*t.K
	t.TY = float64(row)*CellHeight - wy*t.K
	m.engine.SetZoom(t)
	return m
}

func layoutViewport(w, h float64) layout.Viewport {
	return layout.Viewport{Width: w, Height: h}
}

// View renders header, canvas with popup overlay, and status bar.
func (m Model) View() string {
	if m.width == 0 {
		return "loading..."
	}

	switch m.focus {
	case focusHelp:
		return m.viewHelp()
	case focusFilter:
		return m.filter.view(m.width, m.height)
	case focusMedia:
		return m.viewMedia()
	}

	frame := m.engine.Frame()
	if m.cfg.UI.HidePopup {
		frame.Popup.Visible = false
	}
	body := m.canvas.Render(frame, m.engine.State().Zoom)

	return lipgloss.JoinVertical(lipgloss.Left,
		m.viewHeader(),
		body,
		m.viewStatus(frame),
	)
}

func (m Model) viewHeader() string {
	title := m.theme.Header.Render("🧶 techweave")
	mode := m.theme.StatusBar.Render("  layout: " + m.engine.State().Layout.String())
	return lipgloss.NewStyle().Width(m.width).Render(title + mode)
}

func (m Model) viewStatus(frame view.Frame) string {
	if m.focus == focusSearch {
		return m.search.View()
	}
	if m.status != "" {
		return m.theme.StatusBar.Render(m.status)
	}

	s := m.engine.State()
	parts := fmt.Sprintf("%d techniques · %d links", len(m.engine.Graph().Nodes), len(frame.Links))
	if s.Filters.Active() {
		parts += " · filtered"
	}
	if s.WriteDown {
		parts += " · ✍"
	}
	if s.ReversedList {
		parts += " · ✅"
	}
	help := m.theme.StatusKey.Render("?") + m.theme.StatusBar.Render(" help")
	return m.theme.StatusBar.Render(parts+"  ") + help
}

// yankTracked copies the tracked technique's name for pasting into notes.
func (m Model) yankTracked() (Model, tea.Cmd) {
	name := m.engine.State().Tracked()
	if name == "" {
		return m, nil
	}
	if err := clipboard.WriteAll(name); err != nil {
		m.status = fmt.Sprintf("clipboard: %v", err)
	} else {
		m.status = fmt.Sprintf("copied %q", name)
	}
	return m, clearStatusCmd()
}

// saveSnapshot writes the current frame to the configured export directory.
func (m Model) saveSnapshot() (Model, tea.Cmd) {
	dir := m.cfg.Export.Dir
	if dir == "" {
		dir = "."
	}
	format := m.cfg.Export.Format
	if format == "" {
		format = "svg"
	}
	path := filepath.Join(dir, fmt.Sprintf("techniques-%s.%s", time.Now().Format("20060102-150405"), format))

	w, h := m.canvas.WorldSize()
	err := export.SaveSnapshot(export.SnapshotOptions{
		Path:   path,
		Format: format,
		Frame:  m.engine.Frame(),
		Width:  int(w),
		Height: int(h),
	})
	if err != nil {
		m.status = fmt.Sprintf("export: %v", err)
	} else {
		m.status = "saved " + path
	}
	return m, clearStatusCmd()
}
