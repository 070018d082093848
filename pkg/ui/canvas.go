package ui

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/vanderheijden86/techweave/pkg/view"
)

// CellHeight is the world-units-per-row factor. Terminal cells are roughly
// twice as tall as wide, so one row spans two world units while one column
// spans one; the physics space stays isotropic and circles read as circles.
const CellHeight = 2.0

// glyph characters per node size band when no glyph mode is active.
const (
	nodeDotSmall  = "•"
	nodeDotMedium = "●"
	nodeDotLarge  = "⬤"
)

// Canvas rasterizes one frame onto a rune grid. It is rebuilt every tick;
// hit-testing reads the node index left behind by the last Render.
type Canvas struct {
	cols, rows int
	theme      Theme

	chars  []string
	styles []lipgloss.Style
	nodes  []string // node name per cell, "" for chrome
}

// NewCanvas creates a canvas for the given terminal area.
func NewCanvas(cols, rows int, theme Theme) *Canvas {
	c := &Canvas{theme: theme}
	c.Resize(cols, rows)
	return c
}

// Resize adjusts the grid to a new terminal area.
func (c *Canvas) Resize(cols, rows int) {
	if cols < 1 {
		cols = 1
	}
	if rows < 1 {
		rows = 1
	}
	c.cols, c.rows = cols, rows
	c.chars = make([]string, cols*rows)
	c.styles = make([]lipgloss.Style, cols*rows)
	c.nodes = make([]string, cols*rows)
}

// WorldSize returns the world viewport dimensions matching the grid, for
// wiring the layout engine to the terminal area.
func (c *Canvas) WorldSize() (w, h float64) {
	return float64(c.cols), float64(c.rows) * CellHeight
}

// cellFor projects screen coordinates to a grid cell, ok=false off-grid.
func (c *Canvas) cellFor(sx, sy float64) (int, int, bool) {
	col := int(math.Round(sx))
	row := int(math.Round(sy / CellHeight))
	if col < 0 || col >= c.cols || row < 0 || row >= c.rows {
		return 0, 0, false
	}
	return col, row, true
}

// WorldAt converts a terminal cell back to world coordinates through the
// zoom transform, for hover and drag hit-testing.
func WorldAt(col, row int, zoom view.Transform) (float64, float64) {
	return zoom.Invert(float64(col), float64(row)*CellHeight)
}

func (c *Canvas) set(col, row int, ch string, style lipgloss.Style, node string) {
	i := row*c.cols + col
	c.chars[i] = ch
	c.styles[i] = style
	if node != "" {
		c.nodes[i] = node
	}
}

func (c *Canvas) clear() {
	for i := range c.chars {
		c.chars[i] = " "
		c.styles[i] = c.theme.Base
		c.nodes[i] = ""
	}
}

// NodeAt returns the node name rendered at a terminal cell, or "". The
// search covers the clicked cell and its immediate neighbors so slightly-off
// clicks on small nodes still land.
func (c *Canvas) NodeAt(col, row int) string {
	for _, d := range [][2]int{{0, 0}, {-1, 0}, {1, 0}, {0, -1}, {0, 1}} {
		x, y := col+d[0], row+d[1]
		if x < 0 || x >= c.cols || y < 0 || y >= c.rows {
			continue
		}
		if name := c.nodes[y*c.cols+x]; name != "" {
			return name
		}
	}
	return ""
}

// Render rasterizes the frame: background guides first, then links, nodes
// and labels, and the popup on top of everything.
func (c *Canvas) Render(f view.Frame, zoom view.Transform) string {
	c.clear()
	c.drawBackground(f, zoom)
	c.drawLinks(f, zoom)
	c.drawNodes(f, zoom)
	c.drawPopup(f.Popup)

	var b strings.Builder
	for row := 0; row < c.rows; row++ {
		if row > 0 {
			b.WriteByte('\n')
		}
		for col := 0; col < c.cols; col++ {
			i := row*c.cols + col
			b.WriteString(c.styles[i].Render(c.chars[i]))
		}
	}
	return b.String()
}

// drawBackground renders the layout guides. Backgrounds arrive in world
// coordinates and pan/zoom with the graph.
func (c *Canvas) drawBackground(f view.Frame, zoom view.Transform) {
	style := c.theme.GuideLine
	for _, line := range f.Background.Lines {
		x1, y1 := zoom.Apply(line.X1, line.Y1)
		x2, y2 := zoom.Apply(line.X2, line.Y2)
		if line.X1 == line.X2 {
			col := int(math.Round(x1))
			if col < 0 || col >= c.cols {
				continue
			}
			lo, hi := c.clampRows(y1, y2)
			for row := lo; row <= hi; row++ {
				c.set(col, row, "│", style, "")
			}
		} else {
			row := int(math.Round(y1 / CellHeight))
			if row < 0 || row >= c.rows {
				continue
			}
			lo, hi := c.clampCols(x1, x2)
			for col := lo; col <= hi; col++ {
				c.set(col, row, "─", style, "")
			}
		}
	}
	for _, label := range f.Background.Labels {
		lx, ly := zoom.Apply(label.X, label.Y)
		for i, text := range label.Lines {
			col, row, ok := c.cellFor(lx-float64(runewidth.StringWidth(text))/2, ly+float64(i)*CellHeight)
			if !ok {
				continue
			}
			c.writeString(col, row, text, style, "")
		}
	}
}

func (c *Canvas) clampRows(y1, y2 float64) (int, int) {
	lo := int(math.Round(math.Min(y1, y2) / CellHeight))
	hi := int(math.Round(math.Max(y1, y2) / CellHeight))
	if lo < 0 {
		lo = 0
	}
	if hi >= c.rows {
		hi = c.rows - 1
	}
	return lo, hi
}

func (c *Canvas) clampCols(x1, x2 float64) (int, int) {
	lo := int(math.Round(math.Min(x1, x2)))
	hi := int(math.Round(math.Max(x1, x2)))
	if lo < 0 {
		lo = 0
	}
	if hi >= c.cols {
		hi = c.cols - 1
	}
	return lo, hi
}

func (c *Canvas) drawLinks(f view.Frame, zoom view.Transform) {
	for _, l := range f.Links {
		x1, y1 := zoom.Apply(l.X1, l.Y1)
		x2, y2 := zoom.Apply(l.X2, l.Y2)

		style := c.theme.DimNode
		ch := "·"
		if l.StrokeOpacity > view.DimmedOpacity {
			style = c.theme.Renderer.NewStyle().Foreground(ThemeFg(f.Accent))
		}
		if l.Highlighted {
			style = style.Bold(true)
			ch = "∙"
		}

		steps := int(math.Max(math.Abs(x2-x1), math.Abs(y2-y1)/CellHeight))
		if steps < 1 {
			steps = 1
		}
		for i := 0; i <= steps; i++ {
			t := float64(i) / float64(steps)
			col, row, ok := c.cellFor(x1+(x2-x1)*t, y1+(y2-y1)*t)
			if !ok {
				continue
			}
			c.set(col, row, ch, style, "")
		}
	}
}

func (c *Canvas) drawNodes(f view.Frame, zoom view.Transform) {
	for _, n := range f.Nodes {
		sx, sy := zoom.Apply(n.X, n.Y)
		col, row, ok := c.cellFor(sx, sy)
		if !ok {
			continue
		}

		ch := nodeGlyph(n)
		style := c.nodeStyle(n)
		c.set(col, row, ch, style, n.Name)
		// Wide glyphs (emoji) spill into the next column; reserve it so the
		// neighbor cell is not drawn over.
		if runewidth.StringWidth(ch) > 1 && col+1 < c.cols {
			c.set(col+1, row, "", style, n.Name)
		}

		if n.Opacity > view.DimmedOpacity {
			c.writeString(col+2, row, n.Name, c.labelStyle(n), n.Name)
		}
	}
}

func nodeGlyph(n view.NodeVisual) string {
	if n.Shape == view.ShapeGlyph {
		return n.Glyph
	}
	switch {
	case n.Radius >= 15:
		return nodeDotLarge
	case n.Radius >= 7:
		return nodeDotMedium
	default:
		return nodeDotSmall
	}
}

func (c *Canvas) nodeStyle(n view.NodeVisual) lipgloss.Style {
	if n.Opacity <= view.DimmedOpacity {
		return c.theme.DimNode
	}
	s := c.theme.Renderer.NewStyle().Foreground(ThemeFg(n.Color))
	if n.Opacity >= view.FullOpacity {
		s = s.Bold(true)
	}
	return s
}

func (c *Canvas) labelStyle(n view.NodeVisual) lipgloss.Style {
	if n.Opacity >= view.FullOpacity {
		return c.theme.Base.Bold(true)
	}
	return c.theme.StatusBar
}

// popup geometry limits.
const (
	popupMaxWidth = 32
	popupMaxRows  = 10
)

// drawPopup renders the info panel anchored beside the tracked node. The
// anchor arrives in screen coordinates; the panel is clamped to the grid so
// nodes near an edge still get a readable popup.
func (c *Canvas) drawPopup(p view.Popup) {
	if !p.Visible {
		return
	}

	type popupLine struct {
		text  string
		style lipgloss.Style
	}
	var lines []popupLine
	lines = append(lines, popupLine{runewidth.Truncate(p.Name, popupMaxWidth, "…"), c.theme.PopupTitle})
	if p.Type != "" {
		lines = append(lines, popupLine{runewidth.Truncate(p.Type, popupMaxWidth, "…"), c.theme.StatusBar})
	}
	if p.Tag != "" {
		tagStyle := c.theme.PopupTag
		tag := "# " + p.Tag
		if p.TagActive {
			tagStyle = c.theme.PopupTagOn
			tag += " ✓"
		}
		lines = append(lines, popupLine{runewidth.Truncate(tag, popupMaxWidth, "…"), tagStyle})
	}
	for _, row := range wrapText(p.Description, popupMaxWidth) {
		if len(lines) >= popupMaxRows {
			break
		}
		lines = append(lines, popupLine{row, c.theme.StatusBar})
	}

	width := 0
	for _, l := range lines {
		if w := runewidth.StringWidth(l.text); w > width {
			width = w
		}
	}

	col := int(math.Round(p.X))
	row := int(math.Round(p.Y / CellHeight))
	if col+width+2 > c.cols {
		col = c.cols - width - 2
	}
	if col < 0 {
		col = 0
	}
	if row+len(lines)+2 > c.rows {
		row = c.rows - len(lines) - 2
	}
	if row < 0 {
		row = 0
	}

	border := c.theme.GuideLine
	c.writeString(col, row, "╭"+strings.Repeat("─", width)+"╮", border, "")
	for i, l := range lines {
		c.writeString(col, row+1+i, "│", border, "")
		c.writeString(col+1, row+1+i, runewidth.FillRight(l.text, width), l.style, "")
		c.writeString(col+1+width, row+1+i, "│", border, "")
	}
	c.writeString(col, row+1+len(lines), "╰"+strings.Repeat("─", width)+"╯", border, "")
}

// wrapText greedy-wraps words to the given width.
func wrapText(s string, width int) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	var out []string
	line := ""
	for _, word := range strings.Fields(s) {
		switch {
		case line == "":
			line = word
		case runewidth.StringWidth(line)+1+runewidth.StringWidth(word) <= width:
			line += " " + word
		default:
			out = append(out, line)
			line = word
		}
	}
	if line != "" {
		out = append(out, line)
	}
	return out
}

// writeString writes text horizontally, clipping at the grid edge.
func (c *Canvas) writeString(col, row int, text string, style lipgloss.Style, node string) {
	if row < 0 || row >= c.rows {
		return
	}
	for _, r := range text {
		if col < 0 {
			col += runewidth.RuneWidth(r)
			continue
		}
		if col >= c.cols {
			return
		}
		c.set(col, row, string(r), style, node)
		col += runewidth.RuneWidth(r)
	}
}
