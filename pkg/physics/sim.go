// Package physics implements the force simulation that positions technique
// nodes: link attraction at a fixed target distance, pairwise many-body
// repulsion, viewport centering, and optional per-axis positional forces
// supplied by the layout constraint provider.
//
// The simulation never stops on its own. Energy (alpha) decays toward
// AlphaMin each Step; mode changes, drags, and resizes re-energize it via
// Reheat/SetAlphaTarget so transitions animate instead of snapping.
package physics

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/vanderheijden86/techweave/pkg/model"
)

// Simulation defaults, matching the usual force-directed tuning for graphs
// of a few dozen to a few hundred nodes.
const (
	DefaultAlpha      = 1.0
	DefaultAlphaMin   = 0.001
	DefaultAlphaDecay = 0.0228 // 1 - AlphaMin^(1/300)
	DefaultVelDecay   = 0.4
	DefaultLinkLength = 90.0
	DefaultRepulsion  = -120.0
	DragAlphaTarget   = 0.3
	ReheatAlpha       = 0.5
	initialRadiusStep = 14.0
	// Phyllotaxis angle, pi*(3-sqrt(5)).
	goldenAngle = 2.399963229728653
)

// Force nudges node velocities (or positions, for the centering force) once
// per tick, scaled by the current alpha.
type Force interface {
	Apply(alpha float64)
}

// Simulation owns node velocities and the named force registry. Forces are
// keyed by slot name so a layout mode can replace "x"/"y" wholesale without
// leaving a stale constraint behind.
type Simulation struct {
	graph *model.Graph
	vel   map[string]r2.Vec

	forces map[string]Force
	order  []string // force application order, insertion-ordered

	alpha       float64
	alphaMin    float64
	alphaDecay  float64
	alphaTarget float64
	velDecay    float64
}

// New creates a simulation over the graph and seeds unpositioned nodes on a
// deterministic phyllotaxis spiral around the given center, so the first
// ticks are stable across runs and tests.
func New(g *model.Graph, cx, cy float64) *Simulation {
	s := &Simulation{
		graph:      g,
		vel:        make(map[string]r2.Vec, len(g.Nodes)),
		forces:     make(map[string]Force),
		alpha:      DefaultAlpha,
		alphaMin:   DefaultAlphaMin,
		alphaDecay: DefaultAlphaDecay,
		velDecay:   DefaultVelDecay,
	}
	for i, n := range g.Nodes {
		s.vel[n.Name] = r2.Vec{}
		if n.X == 0 && n.Y == 0 {
			radius := initialRadiusStep * math.Sqrt(0.5+float64(i))
			angle := float64(i) * goldenAngle
			n.X = cx + radius*math.Cos(angle)
			n.Y = cy + radius*math.Sin(angle)
		}
	}
	return s
}

// SetForce installs or replaces the force in the named slot.
func (s *Simulation) SetForce(name string, f Force) {
	if _, ok := s.forces[name]; !ok {
		s.order = append(s.order, name)
	}
	s.forces[name] = f
}

// RemoveForce clears a slot. Removing an absent slot is a no-op.
func (s *Simulation) RemoveForce(name string) {
	if _, ok := s.forces[name]; !ok {
		return
	}
	delete(s.forces, name)
	for i, n := range s.order {
		if n == name {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
}

// Force returns the force installed in the named slot, or nil.
func (s *Simulation) Force(name string) Force {
	return s.forces[name]
}

// Alpha returns the current simulation energy.
func (s *Simulation) Alpha() float64 { return s.alpha }

// Settled reports whether the simulation has decayed to rest. Ticking a
// settled simulation is cheap: Step returns without touching any node.
func (s *Simulation) Settled() bool {
	return s.alpha < s.alphaMin && s.alphaTarget < s.alphaMin
}

// Reheat injects energy so the next ticks visibly animate. The alpha only
// ever goes up here; a hotter simulation is left alone.
func (s *Simulation) Reheat(alpha float64) {
	if alpha > s.alpha {
		s.alpha = alpha
	}
}

// SetAlphaTarget sets the floor alpha decays toward. Drags hold a non-zero
// target so neighbors keep reacting for the drag's duration.
func (s *Simulation) SetAlphaTarget(t float64) { s.alphaTarget = t }

// Pin fixes a node at the given position for the duration of a drag and
// keeps the simulation energized so its neighbors react.
func (s *Simulation) Pin(name string, x, y float64) {
	n := s.graph.Node(name)
	if n == nil {
		return
	}
	fx, fy := x, y
	n.FX, n.FY = &fx, &fy
	n.X, n.Y = x, y
	s.SetAlphaTarget(DragAlphaTarget)
	s.Reheat(DragAlphaTarget)
}

// Unpin releases a dragged node in place; it keeps its dropped position and
// drifts only under the regular forces from here on.
func (s *Simulation) Unpin(name string) {
	n := s.graph.Node(name)
	if n == nil {
		return
	}
	n.FX, n.FY = nil, nil
	s.SetAlphaTarget(0)
}

// Step advances the simulation one tick: decay alpha, apply every force to
// the velocities, then integrate with velocity damping. Pinned axes snap to
// their pin and zero their velocity.
func (s *Simulation) Step() {
	if s.Settled() {
		return
	}
	s.alpha += (s.alphaTarget - s.alpha) * s.alphaDecay

	for _, name := range s.order {
		s.forces[name].Apply(s.alpha)
	}

	damp := 1 - s.velDecay
	for _, n := range s.graph.Nodes {
		v := s.vel[n.Name]
		v = r2.Scale(damp, v)
		if n.FX != nil {
			n.X = *n.FX
			v.X = 0
		} else {
			n.X += v.X
		}
		if n.FY != nil {
			n.Y = *n.FY
			v.Y = 0
		} else {
			n.Y += v.Y
		}
		s.vel[n.Name] = v
	}
}

func (s *Simulation) velocity(name string) r2.Vec { return s.vel[name] }

func (s *Simulation) addVelocity(name string, dv r2.Vec) {
	s.vel[name] = r2.Add(s.vel[name], dv)
}
