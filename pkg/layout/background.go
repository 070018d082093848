package layout

import "sort"

// Line is a background separator in world coordinates.
type Line struct {
	X1, Y1, X2, Y2 float64
}

// Label is non-interactive background text. Lines carries one entry per
// rendered row (quadrant labels are two-line).
type Label struct {
	X, Y  float64
	Lines []string
}

// Background is the non-interactive layer rendered behind the graph for the
// active layout mode.
type Background struct {
	Lines  []Line
	Labels []Label
}

// labelTopMargin keeps background labels clear of the viewport edge.
const labelTopMargin = 24

// TagLister is the slice of the graph the background needs: just the
// distinct order tags.
type TagLister interface {
	OrderTags() []string
}

// BackgroundFor renders the background layer for a mode. Tidy columns are
// laid out at equal-width divisions of the viewport by tag count; this is
// deliberately independent of the point scale used for node x targets.
func BackgroundFor(g TagLister, mode Mode, vp Viewport) Background {
	switch mode {
	case Tidy:
		return tidyBackground(g, vp)
	case Quadrant:
		return quadrantBackground(vp)
	default:
		return Background{}
	}
}

func tidyBackground(g TagLister, vp Viewport) Background {
	tags := append([]string(nil), g.OrderTags()...)
	sort.Strings(tags)
	if len(tags) == 0 {
		return Background{}
	}

	var bg Background
	colWidth := vp.Width / float64(len(tags))
	for i, tag := range tags {
		x := colWidth * float64(i)
		bg.Lines = append(bg.Lines, Line{X1: x, Y1: 0, X2: x, Y2: vp.Height})
		bg.Labels = append(bg.Labels, Label{
			X:     x + colWidth/2,
			Y:     labelTopMargin,
			Lines: []string{tag},
		})
	}
	return bg
}

func quadrantBackground(vp Viewport) Background {
	cx, cy := vp.Width/2, vp.Height/2
	return Background{
		Lines: []Line{
			{X1: cx, Y1: 0, X2: cx, Y2: vp.Height},
			{X1: 0, Y1: cy, X2: vp.Width, Y2: cy},
		},
		Labels: []Label{
			{X: vp.Width * 0.25, Y: labelTopMargin, Lines: []string{"Urgent", "Important"}},
			{X: vp.Width * 0.75, Y: labelTopMargin, Lines: []string{"Not Urgent", "Important"}},
			{X: vp.Width * 0.25, Y: cy + labelTopMargin, Lines: []string{"Urgent", "Not Important"}},
			{X: vp.Width * 0.75, Y: cy + labelTopMargin, Lines: []string{"Not Urgent", "Not Important"}},
		},
	}
}
