package view

import (
	"fmt"
	"strings"

	"github.com/vanderheijden86/techweave/pkg/debug"
	"github.com/vanderheijden86/techweave/pkg/layout"
	"github.com/vanderheijden86/techweave/pkg/media"
	"github.com/vanderheijden86/techweave/pkg/model"
)

// DoneColor is the fixed completion color applied by the conditional
// recolor.
const DoneColor = "#4caf50"

// DefaultDonePredicate marks a tag as done on case-insensitive substring
// containment.
func DefaultDonePredicate(orderTag string) bool {
	return strings.Contains(strings.ToLower(orderTag), "done")
}

// ExactDonePredicate marks a tag as done only on a case-insensitive exact
// match.
func ExactDonePredicate(orderTag string) bool {
	return strings.EqualFold(strings.TrimSpace(orderTag), "done")
}

// effect is one registered automation. Effects are idempotent: re-invoking
// an active mode is a no-op or a safe refresh.
type effect func(e *Engine, n *model.Technique) error

// automations is the name → effect registry dispatched by a node's
// automation attribute.
var automations = map[string]effect{
	"tidyUp":     func(e *Engine, _ *model.Technique) error { e.setLayout(layout.Tidy); return nil },
	"freeFlow":   func(e *Engine, _ *model.Technique) error { e.setLayout(layout.Free); return nil },
	"eisenhower": func(e *Engine, _ *model.Technique) error { e.setLayout(layout.Quadrant); return nil },

	"prettyColors":  func(e *Engine, _ *model.Technique) error { e.setPalette(true); return nil },
	"classicColors": func(e *Engine, _ *model.Technique) error { e.setPalette(false); return nil },

	"coworking": func(e *Engine, _ *model.Technique) error { e.setGlyph(GlyphEyes); return nil },
	"pomodoro":  func(e *Engine, _ *model.Technique) error { e.setGlyph(GlyphTomato); return nil },
	"kudoCards": func(e *Engine, _ *model.Technique) error { e.setGlyph(GlyphHeart); return nil },
	"circlesOnly": func(e *Engine, _ *model.Technique) error {
		if e.state.Glyph != GlyphNone {
			e.setGlyph(GlyphNone)
		}
		return nil
	},

	"writeItDown": func(e *Engine, _ *model.Technique) error { e.setWriteDown(true); return nil },
	"fadeItBack":  func(e *Engine, _ *model.Technique) error { e.setWriteDown(false); return nil },

	"reversedToDoList": func(e *Engine, _ *model.Technique) error { e.applyRecolor(); return nil },
	"freshToDoList":    func(e *Engine, _ *model.Technique) error { e.restoreColors(); return nil },

	"playVideo": func(e *Engine, n *model.Technique) error { return e.playMedia(n) },
}

// KnownAutomation reports whether name is registered.
func KnownAutomation(name string) bool {
	_, ok := automations[name]
	return ok
}

// Dispatch runs the automation declared by the node. Unknown names are a
// diagnostic no-op, never a fault.
func (e *Engine) Dispatch(n *model.Technique) error {
	fn, ok := automations[n.Automation]
	if !ok {
		debug.Log("automation %q on %q not registered, ignoring", n.Automation, n.Name)
		return fmt.Errorf("unknown automation %q", n.Automation)
	}
	debug.Log("dispatch %q via %q", n.Automation, n.Name)
	return fn(e, n)
}

// setPalette switches between the classic and pretty palettes and rewrites
// every node's rendered color. Nodes held green by the conditional recolor
// keep their completion color; their stash entry is retargeted so a later
// restore lands on the now-current palette.
func (e *Engine) setPalette(pretty bool) {
	s := e.state
	s.Pretty = pretty
	e.state = s

	for _, n := range e.graph.Nodes {
		target := n.BaseColor
		if pretty {
			target = n.PrettyColor
		}
		if _, stashed := e.stash[n.Name]; stashed && s.ReversedList {
			e.stash[n.Name] = target
			continue
		}
		n.Color = target
	}
}

// setGlyph switches the iconographic mode. The variants are a single tagged
// value, so mutual exclusivity needs no per-effect bookkeeping.
func (e *Engine) setGlyph(g GlyphMode) {
	s := e.state
	s.Glyph = g
	e.state = s
}

// setWriteDown flips the opacity floor.
func (e *Engine) setWriteDown(on bool) {
	s := e.state
	s.WriteDown = on
	e.state = s
}

// applyRecolor turns on the conditional recolor: every done-tagged node is
// painted the completion color with its prior color stashed for restoration.
// Re-invoking while active is a no-op.
func (e *Engine) applyRecolor() {
	if e.state.ReversedList {
		return
	}
	s := e.state
	s.ReversedList = true
	e.state = s

	for _, n := range e.graph.Nodes {
		if !e.done(n.OrderTag) {
			continue
		}
		e.stash[n.Name] = n.Color
		n.Color = DoneColor
	}
}

// restoreColors reverses the conditional recolor exactly, applying each
// stashed color. Nodes without a stash already follow the current palette.
func (e *Engine) restoreColors() {
	if !e.state.ReversedList {
		return
	}
	s := e.state
	s.ReversedList = false
	e.state = s

	for name, c := range e.stash {
		if n := e.graph.Node(name); n != nil {
			n.Color = c
		}
	}
	e.stash = make(map[string]string)
}

// playMedia resolves the node's video reference and hands it to the overlay
// player. An unresolvable reference is reported and the overlay stays shut.
func (e *Engine) playMedia(n *model.Technique) error {
	if n.VideoURL == "" {
		return fmt.Errorf("%s has no media reference", n.Name)
	}
	url, err := media.Resolve(n.VideoURL)
	if err != nil {
		debug.Log("media for %q: %v", n.Name, err)
		return err
	}
	if e.onMedia != nil {
		e.onMedia(url)
	}
	return nil
}
