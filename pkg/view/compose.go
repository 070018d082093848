package view

import "github.com/vanderheijden86/techweave/pkg/layout"

// Accent colors for links, labels and background primitives under the two
// palettes.
const (
	AccentClassic = "#999999"
	AccentPretty  = "#b48ead"
)

// Shape selects how a node renders.
type Shape int

const (
	ShapeCircle Shape = iota
	ShapeGlyph
)

// NodeVisual is the full rendering state for one node in world coordinates.
type NodeVisual struct {
	Name    string
	X, Y    float64
	Radius  float64
	Color   string
	Opacity float64
	Shape   Shape
	Glyph   string // codepoint when Shape == ShapeGlyph
}

// LinkVisual is the rendering state for one link, endpoints resolved to
// current world coordinates.
type LinkVisual struct {
	Source, Target string
	X1, Y1, X2, Y2 float64
	StrokeOpacity  float64
	Highlighted    bool
}

// Popup is the floating info panel contract: content for the collaborator
// to render plus the screen anchor that follows the tracked node.
type Popup struct {
	Visible     bool
	Name        string
	Type        string
	Description string
	Tag         string
	TagActive   bool // whether the tag is currently in the filter set
	X, Y        float64
}

// Frame is everything the rendering layer needs for one tick: nodes, links,
// the active layout's background layer, the popup, and the accent color of
// the current palette.
type Frame struct {
	Nodes      []NodeVisual
	Links      []LinkVisual
	Background layout.Background
	Popup      Popup
	Accent     string
}

// Frame composes the current visual state. Cost is linear in nodes + links;
// it runs on every tick and on every state-changing event, always over the
// full node set so no failure can leave a stale partial frame.
func (e *Engine) Frame() Frame {
	s := e.state
	g := e.graph

	f := Frame{
		Background: layout.BackgroundFor(g, s.Layout, e.vp),
		Accent:     AccentClassic,
	}
	if s.Pretty {
		f.Accent = AccentPretty
	}

	f.Nodes = make([]NodeVisual, 0, len(g.Nodes))
	for _, n := range g.Nodes {
		nv := NodeVisual{
			Name:    n.Name,
			X:       n.X,
			Y:       n.Y,
			Radius:  NodeRadius(n.Scale, e.vp.Width),
			Color:   n.Color,
			Opacity: NodeOpacity(n, g, s),
		}
		if s.Glyph != GlyphNone {
			nv.Shape = ShapeGlyph
			if n.Automation == s.Glyph.trigger() {
				nv.Glyph = s.Glyph.SpecialGlyph()
			} else {
				nv.Glyph = s.Glyph.Glyph()
			}
		}
		f.Nodes = append(f.Nodes, nv)
	}

	f.Links = make([]LinkVisual, 0, len(g.Links))
	for _, l := range g.Links {
		op, hl := LinkOpacity(l, g, s)
		f.Links = append(f.Links, LinkVisual{
			Source: l.Source.Name, Target: l.Target.Name,
			X1: l.Source.X, Y1: l.Source.Y,
			X2: l.Target.X, Y2: l.Target.Y,
			StrokeOpacity: op,
			Highlighted:   hl,
		})
	}

	if tracked := s.Tracked(); tracked != "" {
		if n := g.Node(tracked); n != nil {
			px, py := PopupAnchor(n.X, n.Y, s.Zoom)
			f.Popup = Popup{
				Visible:     true,
				Name:        n.Name,
				Type:        n.Type,
				Description: n.Description,
				Tag:         n.OrderTag,
				TagActive:   s.Filters.Tags[n.OrderTag],
				X:           px,
				Y:           py,
			}
		}
	}

	return f
}
