package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	"github.com/vanderheijden86/techweave/pkg/model"
	"github.com/vanderheijden86/techweave/pkg/view"
)

// filterItem is one toggleable entry in the filter overlay.
type filterItem struct {
	value  string
	isType bool
	active bool
}

// filterOverlay is the modal list of type and tag filters.
type filterOverlay struct {
	items  []filterItem
	cursor int
	theme  Theme
}

func newFilterOverlay(g *model.Graph, theme Theme) filterOverlay {
	f := filterOverlay{theme: theme}
	for _, typ := range g.Types() {
		f.items = append(f.items, filterItem{value: typ, isType: true})
	}
	for _, tag := range g.OrderTags() {
		f.items = append(f.items, filterItem{value: tag})
	}
	return f
}

// refresh re-reads each item's active state from the engine.
func (f filterOverlay) refresh(e *view.Engine) filterOverlay {
	s := e.State()
	for i := range f.items {
		if f.items[i].isType {
			f.items[i].active = s.Filters.Types[f.items[i].value]
		} else {
			f.items[i].active = s.Filters.Tags[f.items[i].value]
		}
	}
	return f
}

func (f filterOverlay) move(delta int) filterOverlay {
	if len(f.items) == 0 {
		return f
	}
	f.cursor = (f.cursor + delta + len(f.items)) % len(f.items)
	return f
}

func (f filterOverlay) current() (filterItem, bool) {
	if f.cursor < 0 || f.cursor >= len(f.items) {
		return filterItem{}, false
	}
	return f.items[f.cursor], true
}

func (f filterOverlay) view(width, height int) string {
	var b strings.Builder
	b.WriteString(f.theme.PopupTitle.Render("Filters"))
	b.WriteString("\n\n")

	section := ""
	for i, item := range f.items {
		next := "tags"
		if item.isType {
			next = "types"
		}
		if next != section {
			section = next
			b.WriteString(f.theme.StatusBar.Render(section))
			b.WriteByte('\n')
		}

		cursor := "  "
		if i == f.cursor {
			cursor = f.theme.StatusKey.Render("> ")
		}
		mark := "[ ]"
		style := f.theme.Base
		if item.active {
			mark = "[x]"
			style = f.theme.PopupTagOn
		}
		fmt.Fprintf(&b, "%s%s %s\n", cursor, mark, style.Render(item.value))
	}

	b.WriteString("\n")
	b.WriteString(f.theme.StatusBar.Render("space toggle · r reset · esc close"))

	box := f.theme.Overlay.Render(b.String())
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, box)
}

// helpMarkdown is the help overlay source, rendered through glamour.
const helpMarkdown = `# techweave

An interactive map of facilitation techniques. Related techniques attract
each other; everything else repels.

## Pointer

| Input | Effect |
|---|---|
| hover | highlight a technique and its connections |
| click node | lock the highlight (click background to release) |
| drag node | reposition it while physics keeps up |
| wheel | zoom around the cursor |

Clicking a node with an automation runs it instead of locking: layouts,
palettes, glyph modes, recolors, videos.

## Keys

| Key | Effect |
|---|---|
| / | search by name |
| f | type and tag filters |
| r | clear all filters |
| t | toggle the hovered technique's tag filter |
| + - 0 | zoom in / out / reset |
| arrows, hjkl | pan |
| y | copy tracked technique name |
| s | save an SVG/PNG snapshot |
| ? | this help |
| q | quit |
`

// helpContent renders the help markdown, falling back to the raw source if
// glamour cannot build a renderer for this terminal.
func (m Model) helpContent() string {
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(m.helpView.Width),
	)
	if err != nil {
		return helpMarkdown
	}
	out, err := r.Render(helpMarkdown)
	if err != nil {
		return helpMarkdown
	}
	return out
}

func (m Model) viewHelp() string {
	box := m.theme.Overlay.Render(m.helpView.View() + "\n" + m.theme.StatusBar.Render("esc close · ↑/↓ scroll"))
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
}

// viewMedia shows the resolved media URL. Terminals don't embed players, so
// the overlay presents the link prominently instead.
func (m Model) viewMedia() string {
	var b strings.Builder
	b.WriteString(m.theme.PopupTitle.Render("▶ video"))
	b.WriteString("\n\n")
	b.WriteString(m.theme.Base.Render(m.media.url))
	b.WriteString("\n\n")
	b.WriteString(m.theme.StatusBar.Render("esc close"))
	box := m.theme.Overlay.Render(b.String())
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
}
