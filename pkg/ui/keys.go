package ui

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vanderheijden86/techweave/pkg/view"
)

// panStep is the pan distance per keypress in screen cells.
const panStep = 4.0

func (m Model) handleKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.focus {
	case focusSearch:
		return m.handleSearchKeys(msg)
	case focusFilter:
		return m.handleFilterKeys(msg)
	case focusHelp:
		return m.handleHelpKeys(msg)
	case focusMedia:
		return m.handleMediaKeys(msg)
	default:
		return m.handleCanvasKeys(msg)
	}
}

func (m Model) handleCanvasKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit

	case "/":
		m.focus = focusSearch
		m.search.SetValue(m.engine.State().Filters.Query)
		m.search.Focus()
		return m, textinput.Blink

	case "f":
		m.focus = focusFilter
		m.filter = m.filter.refresh(m.engine)
		return m, nil

	case "r":
		m.engine.ResetFilters()
		m.search.SetValue("")
		m.status = "filters cleared"
		return m, clearStatusCmd()

	case "?":
		m.focus = focusHelp
		m.helpView.SetContent(m.helpContent())
		m.helpView.GotoTop()
		return m, nil

	case "t":
		// Toggle the tracked technique's order tag in the filter set.
		if name := m.engine.State().Tracked(); name != "" {
			if n := m.engine.Graph().Node(name); n != nil && n.OrderTag != "" {
				m.engine.ToggleTag(n.OrderTag)
			}
		}
		return m, nil

	case "y":
		return m.yankTracked()

	case "s":
		return m.saveSnapshot()

	case "esc":
		m.engine.ClickBackground()
		return m, nil

	case "+", "=":
		return m.zoomAt(m.canvas.cols/2, m.canvas.rows/2, zoomStep), nil
	case "-":
		return m.zoomAt(m.canvas.cols/2, m.canvas.rows/2, 1/zoomStep), nil
	case "0":
		m.engine.SetZoom(view.Identity())
		return m, nil

	case "left", "h":
		return m.pan(panStep, 0), nil
	case "right", "l":
		return m.pan(-panStep, 0), nil
	case "up", "k":
		return m.pan(0, panStep*CellHeight), nil
	case "down", "j":
		return m.pan(0, -panStep*CellHeight), nil
	}
	return m, nil
}

func (m Model) pan(dx, dy float64) Model {
	t := m.engine.State().Zoom
	t.TX += dx
	t.TY += dy
	m.engine.SetZoom(t)
	return m
}

func (m Model) handleSearchKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		m.focus = focusCanvas
		m.search.Blur()
		return m, nil
	case "esc":
		m.focus = focusCanvas
		m.search.Blur()
		m.search.SetValue("")
		m.engine.SetQuery("")
		return m, nil
	}

	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	// Live filtering: every keystroke recomposes opacities.
	m.engine.SetQuery(m.search.Value())
	return m, cmd
}

func (m Model) handleFilterKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "f", "enter":
		m.focus = focusCanvas
		return m, nil
	case "up", "k":
		m.filter = m.filter.move(-1)
		return m, nil
	case "down", "j":
		m.filter = m.filter.move(1)
		return m, nil
	case " ":
		item, ok := m.filter.current()
		if !ok {
			return m, nil
		}
		if item.isType {
			m.engine.ToggleType(item.value)
		} else {
			m.engine.ToggleTag(item.value)
		}
		m.filter = m.filter.refresh(m.engine)
		return m, nil
	case "r":
		m.engine.ResetFilters()
		m.filter = m.filter.refresh(m.engine)
		return m, nil
	}
	return m, nil
}

func (m Model) handleHelpKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "q", "?":
		m.focus = focusCanvas
		return m, nil
	}
	var cmd tea.Cmd
	m.helpView, cmd = m.helpView.Update(msg)
	return m, cmd
}

func (m Model) handleMediaKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "enter", "q":
		m.focus = focusCanvas
		m.media.url = ""
	}
	return m, nil
}
