package physics

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/vanderheijden86/techweave/pkg/model"
)

// LinkForce pulls linked nodes toward a fixed target distance. Strength and
// bias follow the usual degree-weighted scheme: a link attached to a
// well-connected node moves that node less.
type LinkForce struct {
	sim      *Simulation
	graph    *model.Graph
	Distance float64
	degree   map[string]int
}

// NewLinkForce builds a link force over the graph's resolved links.
func NewLinkForce(sim *Simulation, g *model.Graph, distance float64) *LinkForce {
	if distance <= 0 {
		distance = DefaultLinkLength
	}
	deg := make(map[string]int, len(g.Nodes))
	for _, l := range g.Links {
		deg[l.Source.Name]++
		deg[l.Target.Name]++
	}
	return &LinkForce{sim: sim, graph: g, Distance: distance, degree: deg}
}

func (f *LinkForce) Apply(alpha float64) {
	for _, l := range f.graph.Links {
		src, tgt := l.Source, l.Target
		sv := f.sim.velocity(src.Name)
		tv := f.sim.velocity(tgt.Name)

		dx := tgt.X + tv.X - src.X - sv.X
		dy := tgt.Y + tv.Y - src.Y - sv.Y
		dist := math.Hypot(dx, dy)
		if dist == 0 {
			dist = 1e-6
			dx = 1e-6
		}

		ds, dt := f.degree[src.Name], f.degree[tgt.Name]
		minDeg := ds
		if dt < minDeg {
			minDeg = dt
		}
		if minDeg < 1 {
			minDeg = 1
		}
		strength := 1 / float64(minDeg)
		bias := float64(ds) / float64(ds+dt)

		k := (dist - f.Distance) / dist * alpha * strength
		push := r2.Vec{X: dx * k, Y: dy * k}

		f.sim.addVelocity(tgt.Name, r2.Scale(-bias, push))
		f.sim.addVelocity(src.Name, r2.Scale(1-bias, push))
	}
}

// ManyBodyForce applies inverse-square repulsion between every node pair.
// The flat pairwise loop is fine at this dataset size; a tick stays well
// under animation-frame budget for a few hundred nodes.
type ManyBodyForce struct {
	sim      *Simulation
	graph    *model.Graph
	Strength float64 // negative = repulsion
}

func NewManyBodyForce(sim *Simulation, g *model.Graph, strength float64) *ManyBodyForce {
	if strength == 0 {
		strength = DefaultRepulsion
	}
	return &ManyBodyForce{sim: sim, graph: g, Strength: strength}
}

func (f *ManyBodyForce) Apply(alpha float64) {
	nodes := f.graph.Nodes
	for i := 0; i < len(nodes); i++ {
		for j := i + 1; j < len(nodes); j++ {
			a, b := nodes[i], nodes[j]
			dx := b.X - a.X
			dy := b.Y - a.Y
			d2 := dx*dx + dy*dy
			if d2 < 1 {
				d2 = 1
			}
			w := f.Strength * alpha / d2
			dv := r2.Vec{X: dx * w, Y: dy * w}
			f.sim.addVelocity(a.Name, dv)
			f.sim.addVelocity(b.Name, r2.Scale(-1, dv))
		}
	}
}

// CenterForce translates the whole layout so its centroid sits on the given
// point. It adjusts positions, not velocities, so it cannot fight the other
// forces into oscillation.
type CenterForce struct {
	graph  *model.Graph
	CX, CY float64
}

func NewCenterForce(g *model.Graph, cx, cy float64) *CenterForce {
	return &CenterForce{graph: g, CX: cx, CY: cy}
}

// Retarget moves the centering anchor, e.g. after a window resize.
func (f *CenterForce) Retarget(cx, cy float64) {
	f.CX, f.CY = cx, cy
}

func (f *CenterForce) Apply(alpha float64) {
	n := len(f.graph.Nodes)
	if n == 0 {
		return
	}
	var sx, sy float64
	for _, node := range f.graph.Nodes {
		sx += node.X
		sy += node.Y
	}
	dx := f.CX - sx/float64(n)
	dy := f.CY - sy/float64(n)
	for _, node := range f.graph.Nodes {
		if node.Pinned() {
			continue
		}
		node.X += dx
		node.Y += dy
	}
}

// AxisForce pulls each node toward a per-node target coordinate on one axis
// with a per-node strength. Nodes for which the target function reports no
// hint are left alone. This is the hook the layout constraint provider uses
// for tidy columns and the quadrant grid.
type AxisForce struct {
	sim   *Simulation
	graph *model.Graph
	// Vertical selects the axis: false pulls X, true pulls Y.
	Vertical bool
	// Target returns the axis coordinate to pull toward and whether a hint
	// exists for this node.
	Target func(*model.Technique) (float64, bool)
	// Strength in (0,1]; applied per tick scaled by alpha.
	Strength func(*model.Technique) float64
}

// NewAxisForce builds an axis pull over the graph's nodes.
func NewAxisForce(sim *Simulation, g *model.Graph, vertical bool, target func(*model.Technique) (float64, bool), strength func(*model.Technique) float64) *AxisForce {
	return &AxisForce{sim: sim, graph: g, Vertical: vertical, Target: target, Strength: strength}
}

func (f *AxisForce) Apply(alpha float64) {
	for _, n := range f.graph.Nodes {
		target, ok := f.Target(n)
		if !ok {
			continue
		}
		k := f.Strength(n) * alpha
		if f.Vertical {
			f.sim.addVelocity(n.Name, r2.Vec{Y: (target - n.Y) * k})
		} else {
			f.sim.addVelocity(n.Name, r2.Vec{X: (target - n.X) * k})
		}
	}
}
