// Package view is the mode/interaction engine: it owns the hover/click
// highlight state machine, the filter compositor, the automation registry,
// and the pan/zoom + popup tracker, and composes them into one per-node /
// per-link visual-state frame each tick.
//
// All mutable flags live in a single immutable State snapshot that is
// replaced atomically after every event; consumers (the TUI canvas, the
// exporters) read the latest snapshot instead of scattered globals.
package view

import (
	"github.com/vanderheijden86/techweave/pkg/layout"
	"github.com/vanderheijden86/techweave/pkg/model"
	"github.com/vanderheijden86/techweave/pkg/physics"
)

// GlyphMode selects the iconographic replacement for node circles. The
// variants are mutually exclusive among themselves.
type GlyphMode int

const (
	GlyphNone GlyphMode = iota
	GlyphEyes
	GlyphTomato
	GlyphHeart
)

// Glyph returns the codepoint every node renders under this mode.
func (g GlyphMode) Glyph() string {
	switch g {
	case GlyphEyes:
		return "👀"
	case GlyphTomato:
		return "🍅"
	case GlyphHeart:
		return "💛"
	default:
		return ""
	}
}

// SpecialGlyph is rendered by the node that triggers this mode, so the
// mode-switch button stands out from its peers.
func (g GlyphMode) SpecialGlyph() string {
	switch g {
	case GlyphEyes:
		return "😎"
	case GlyphTomato:
		return "⏰"
	case GlyphHeart:
		return "💌"
	default:
		return ""
	}
}

// trigger returns the automation name that activates this glyph mode.
func (g GlyphMode) trigger() string {
	switch g {
	case GlyphEyes:
		return "coworking"
	case GlyphTomato:
		return "pomodoro"
	case GlyphHeart:
		return "kudoCards"
	default:
		return ""
	}
}

// Filters is the three independent filter dimensions. Empty set / empty
// query means no restriction on that dimension.
type Filters struct {
	Types map[string]bool
	Tags  map[string]bool
	Query string
}

func (f Filters) clone() Filters {
	out := Filters{Query: f.Query}
	if len(f.Types) > 0 {
		out.Types = make(map[string]bool, len(f.Types))
		for k, v := range f.Types {
			out.Types[k] = v
		}
	}
	if len(f.Tags) > 0 {
		out.Tags = make(map[string]bool, len(f.Tags))
		for k, v := range f.Tags {
			out.Tags[k] = v
		}
	}
	return out
}

// Active reports whether any filter dimension restricts the view.
func (f Filters) Active() bool {
	return len(f.Types) > 0 || len(f.Tags) > 0 || f.Query != ""
}

// State is one immutable snapshot of every mode flag, filter, highlight and
// viewport value. A new snapshot replaces the old one after each event.
type State struct {
	Layout       layout.Mode
	Pretty       bool
	Glyph        GlyphMode
	WriteDown    bool // opacity floor: full opacity irrespective of filters
	ReversedList bool // done-tagged nodes recolored until reversed

	Filters Filters

	// Highlight state machine: Locked is the click focus, Hover the pointer
	// focus. Both empty = idle.
	Hover  string
	Locked string

	Zoom Transform
}

// Tracked returns the node the popup follows: hover first, then the click
// lock, then nothing.
func (s State) Tracked() string {
	if s.Hover != "" {
		return s.Hover
	}
	return s.Locked
}

// DonePredicate decides whether an order tag marks a technique as done for
// the conditional recolor. The exact semantics (exact match vs substring)
// are configurable; see config.DoneMatcher.
type DonePredicate func(orderTag string) bool

// Engine owns the graph, the simulation, and the current State snapshot, and
// applies every pointer/filter/automation event.
type Engine struct {
	graph *model.Graph
	sim   *physics.Simulation
	vp    layout.Viewport

	center *physics.CenterForce

	state State

	// Pre-recolor colors stashed by the conditional recolor, keyed by node
	// name, so restore is exact even across palette switches.
	stash map[string]string

	done    DonePredicate
	onMedia func(url string)
}

// Option configures an Engine.
type Option func(*Engine)

// WithDonePredicate overrides the default substring done-tag matcher.
func WithDonePredicate(p DonePredicate) Option {
	return func(e *Engine) {
		if p != nil {
			e.done = p
		}
	}
}

// WithMediaHandler installs the callback invoked with the resolved URL when
// a play-media automation fires.
func WithMediaHandler(fn func(url string)) Option {
	return func(e *Engine) { e.onMedia = fn }
}

// NewEngine wires the standard forces (link, charge, center) over the graph
// and starts in free layout with everything off.
func NewEngine(g *model.Graph, vp layout.Viewport, opts ...Option) *Engine {
	sim := physics.New(g, vp.Width/2, vp.Height/2)
	center := physics.NewCenterForce(g, vp.Width/2, vp.Height/2)
	sim.SetForce("link", physics.NewLinkForce(sim, g, physics.DefaultLinkLength))
	sim.SetForce("charge", physics.NewManyBodyForce(sim, g, physics.DefaultRepulsion))
	sim.SetForce("center", center)

	e := &Engine{
		graph:  g,
		sim:    sim,
		vp:     vp,
		center: center,
		state:  State{Zoom: Identity()},
		stash:  make(map[string]string),
		done:   DefaultDonePredicate,
	}
	for _, o := range opts {
		o(e)
	}
	return e
}

// State returns the current snapshot.
func (e *Engine) State() State { return e.state }

// Graph returns the underlying graph.
func (e *Engine) Graph() *model.Graph { return e.graph }

// Sim exposes the simulation for the ticking caller (Step, drag pin/unpin).
func (e *Engine) Sim() *physics.Simulation { return e.sim }

// Viewport returns the current world viewport.
func (e *Engine) Viewport() layout.Viewport { return e.vp }

// SetViewport handles a resize: re-derive dimensions, re-anchor centering,
// replay the active layout mode's constraints against the new size, and
// reheat so the transition animates.
func (e *Engine) SetViewport(vp layout.Viewport) {
	e.vp = vp
	e.center.Retarget(vp.Width/2, vp.Height/2)
	layout.InstallForces(e.sim, e.graph, e.state.Layout, vp)
}

// SetZoom replaces the pan/zoom transform.
func (e *Engine) SetZoom(t Transform) {
	s := e.state
	s.Zoom = t
	e.state = s
}

// setLayout switches the layout mode, enforcing tidy/quadrant exclusivity in
// one place (the tagged mode can only hold one value) and replacing the axis
// forces wholesale.
func (e *Engine) setLayout(m layout.Mode) {
	s := e.state
	s.Layout = m
	e.state = s
	layout.InstallForces(e.sim, e.graph, m, e.vp)
}
