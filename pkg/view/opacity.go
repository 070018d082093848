package view

import (
	"strings"

	"github.com/vanderheijden86/techweave/pkg/model"
)

// Opacity constants. The ambient baseline is the first-generation literal
// rule: "full" opacity is 0.7 unless the writeDown floor raises it to 1.0.
// The alternative (multiplying highlight opacity into filter opacity) was
// rejected; see DESIGN.md.
const (
	DimmedOpacity  = 0.15
	AmbientOpacity = 0.7
	FullOpacity    = 1.0
)

// baseline is what "full" means under the current mode flags.
func (s State) baseline() float64 {
	if s.WriteDown {
		return FullOpacity
	}
	return AmbientOpacity
}

// focal resolves the highlight focus. A click lock suppresses hover
// highlighting of every node but the locked one.
func (s State) focal() (name string, hovering bool) {
	if s.Locked != "" {
		return s.Locked, false
	}
	if s.Hover != "" {
		return s.Hover, true
	}
	return "", false
}

// FilterOpacity is the pure filter compositor: first matching exclusion
// dims, otherwise the ambient baseline applies. The writeDown floor forces
// full opacity irrespective of filters.
func FilterOpacity(n *model.Technique, s State) float64 {
	if s.WriteDown {
		return FullOpacity
	}
	f := s.Filters
	if len(f.Types) > 0 && !f.Types[n.Type] {
		return DimmedOpacity
	}
	if len(f.Tags) > 0 && (n.OrderTag == "" || !f.Tags[n.OrderTag]) {
		return DimmedOpacity
	}
	if f.Query != "" && !strings.Contains(strings.ToLower(n.Name), strings.ToLower(f.Query)) {
		return DimmedOpacity
	}
	return s.baseline()
}

// NodeOpacity composes highlight over filter state. While a highlight is
// active it replaces the filter verdict wholesale; leaving highlight falls
// back to FilterOpacity for the full node set.
func NodeOpacity(n *model.Technique, g *model.Graph, s State) float64 {
	focal, hovering := s.focal()
	if focal == "" {
		return FilterOpacity(n, s)
	}
	d := g.Node(focal)
	if d == nil {
		return FilterOpacity(n, s)
	}
	switch {
	case n.Name == d.Name:
		return s.baseline()
	case g.Connected(n.Name, d.Name):
		return s.baseline()
	case hovering && n.Type != "" && n.Type == d.Type:
		// Same-type emphasis is hover-only behavior; a click lock does not
		// light up the category.
		return s.baseline()
	default:
		return DimmedOpacity
	}
}

// LinkOpacity computes a link's stroke opacity: full if it touches the
// focal node, otherwise the minimum of its endpoints' node opacities, so
// link emphasis never exceeds the dimmer endpoint.
func LinkOpacity(l *model.Link, g *model.Graph, s State) (opacity float64, highlighted bool) {
	focal, _ := s.focal()
	if focal != "" && (l.Source.Name == focal || l.Target.Name == focal) {
		return FullOpacity, true
	}
	a := NodeOpacity(l.Source, g, s)
	b := NodeOpacity(l.Target, g, s)
	if b < a {
		a = b
	}
	return a, false
}
