// Package layout produces the per-node positional constraints for the three
// layout modes (free, tidy columns, Eisenhower quadrants) and the static
// background primitives (separators, labels) each mode renders behind the
// graph.
package layout

import (
	"sort"
	"strings"

	"github.com/vanderheijden86/techweave/pkg/model"
	"github.com/vanderheijden86/techweave/pkg/physics"
)

// Mode is the active layout constraint. Exactly one is active at a time;
// exclusivity between tidy and quadrant is enforced by the view engine.
type Mode int

const (
	Free Mode = iota
	Tidy
	Quadrant
)

func (m Mode) String() string {
	switch m {
	case Tidy:
		return "tidy"
	case Quadrant:
		return "eisenhower"
	default:
		return "free"
	}
}

// Viewport is the world-coordinate drawing area constraints are computed
// against.
type Viewport struct {
	Width  float64
	Height float64
}

// Pull strengths. Tidy columns pull hard on x but keep y loose so columns
// spread vertically; the quadrant grid pulls hard on both axes.
const (
	TidyStrengthX     = 0.6
	TidyStrengthY     = 0.05
	QuadrantStrength  = 0.8
	tidyRangeLow      = 0.10 // columns span the middle 80% of the width
	tidyRangeHigh     = 0.90
	tidyPointPadding  = 0.5 // half a step of padding at each end of the scale
)

// Hint is a positional target for one node on one or both axes.
type Hint struct {
	X, Y           float64
	HasX, HasY     bool
	StrengthX      float64
	StrengthY      float64
}

// HintFunc computes the hint for a node under the current mode and viewport.
type HintFunc func(*model.Technique) Hint

// Hints returns the constraint function for the given mode. Free mode
// returns nil: no positional constraint at all.
func Hints(g *model.Graph, mode Mode, vp Viewport) HintFunc {
	switch mode {
	case Tidy:
		return tidyHints(g, vp)
	case Quadrant:
		return quadrantHints(vp)
	default:
		return nil
	}
}

// tidyHints maps the sorted distinct order tags onto a padded point scale
// spanning the middle 80% of the viewport width. Nodes with an empty tag
// target the midpoint of that range instead of being excluded.
func tidyHints(g *model.Graph, vp Viewport) HintFunc {
	tags := append([]string(nil), g.OrderTags()...)
	sort.Strings(tags)

	xs := make(map[string]float64, len(tags))
	for i, tag := range tags {
		xs[tag] = TidyColumnX(i, len(tags), vp.Width)
	}
	mid := (tidyRangeLow + tidyRangeHigh) / 2 * vp.Width
	midY := vp.Height / 2

	return func(n *model.Technique) Hint {
		x, ok := xs[n.OrderTag]
		if !ok {
			x = mid
		}
		return Hint{
			X: x, HasX: true, StrengthX: TidyStrengthX,
			Y: midY, HasY: true, StrengthY: TidyStrengthY,
		}
	}
}

// TidyColumnX returns the x target for column i of n on a point scale over
// [10%, 90%] of the width with half-step padding, so the outer columns stay
// off the edges.
func TidyColumnX(i, n int, width float64) float64 {
	start := tidyRangeLow * width
	span := (tidyRangeHigh - tidyRangeLow) * width
	if n <= 1 {
		return start + span/2
	}
	step := span / (float64(n-1) + 2*tidyPointPadding)
	return start + step*(tidyPointPadding+float64(i))
}

// quadrantHints places each node in its Eisenhower quadrant by substring
// matching the lower-cased matrix tag.
func quadrantHints(vp Viewport) HintFunc {
	return func(n *model.Technique) Hint {
		return Hint{
			X: QuadrantX(n.MatrixTag) * vp.Width, HasX: true, StrengthX: QuadrantStrength,
			Y: QuadrantY(n.MatrixTag) * vp.Height, HasY: true, StrengthY: QuadrantStrength,
		}
	}
}

// QuadrantX maps an urgency descriptor to a horizontal fraction: urgent →
// left quarter, not urgent → right quarter, unmatched → center.
func QuadrantX(matrixTag string) float64 {
	tag := strings.ToLower(matrixTag)
	switch {
	case strings.Contains(tag, "not urgent"):
		return 0.75
	case strings.Contains(tag, "urgent"):
		return 0.25
	default:
		return 0.5
	}
}

// QuadrantY maps an importance descriptor to a vertical fraction: important
// → top quarter, not important → bottom quarter, unmatched → center.
func QuadrantY(matrixTag string) float64 {
	tag := strings.ToLower(matrixTag)
	switch {
	case strings.Contains(tag, "not important"):
		return 0.75
	case strings.Contains(tag, "important"):
		return 0.25
	default:
		return 0.5
	}
}

// InstallForces replaces the simulation's x/y constraint slots for the mode
// and reheats so the transition animates. Previous axis forces are removed
// wholesale; nothing from the old mode lingers.
func InstallForces(sim *physics.Simulation, g *model.Graph, mode Mode, vp Viewport) {
	hints := Hints(g, mode, vp)
	if hints == nil {
		sim.RemoveForce("x")
		sim.RemoveForce("y")
	} else {
		sim.SetForce("x", physics.NewAxisForce(sim, g, false,
			func(n *model.Technique) (float64, bool) { h := hints(n); return h.X, h.HasX },
			func(n *model.Technique) float64 { return hints(n).StrengthX },
		))
		sim.SetForce("y", physics.NewAxisForce(sim, g, true,
			func(n *model.Technique) (float64, bool) { h := hints(n); return h.Y, h.HasY },
			func(n *model.Technique) float64 { return hints(n).StrengthY },
		))
	}
	sim.Reheat(physics.ReheatAlpha)
}
