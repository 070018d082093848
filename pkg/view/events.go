package view

// Pointer and filter events. Each handler mutates a copy of the current
// snapshot and swaps it in; nothing here blocks or schedules.

// HoverEnter handles a pointer entering a node. Under a click lock on a
// different node, hover is suppressed entirely: no emphasis change and no
// popup retarget.
func (e *Engine) HoverEnter(name string) {
	if e.graph.Node(name) == nil {
		return
	}
	if e.state.Locked != "" && e.state.Locked != name {
		return
	}
	s := e.state
	s.Hover = name
	e.state = s
}

// HoverLeave handles a pointer leaving a node. Leaving the locked node keeps
// its emphasis and popup; leaving anything else falls back to filter-only
// opacity, and the popup hides if nothing is locked.
func (e *Engine) HoverLeave(name string) {
	if e.state.Hover != name {
		return
	}
	s := e.state
	s.Hover = ""
	e.state = s
}

// ClickNode handles a click on a node. Automation nodes act as mode-switch
// buttons embedded in the graph: they dispatch their effect and do not take
// the click lock. Plain nodes take (or move) the lock.
func (e *Engine) ClickNode(name string) error {
	n := e.graph.Node(name)
	if n == nil {
		return nil
	}
	if n.Automation != "" {
		return e.Dispatch(n)
	}
	s := e.state
	s.Locked = name
	s.Hover = name
	e.state = s
	return nil
}

// ClickBackground clears both the click lock and any hover emphasis; the
// popup hides. Fired for clicks on empty canvas and for pointer events
// outside both the graph and the popup chrome.
func (e *Engine) ClickBackground() {
	s := e.state
	s.Locked = ""
	s.Hover = ""
	e.state = s
}

// ToggleType flips one entry of the type filter set.
func (e *Engine) ToggleType(typ string) {
	s := e.state
	f := s.Filters.clone()
	if f.Types == nil {
		f.Types = make(map[string]bool)
	}
	if f.Types[typ] {
		delete(f.Types, typ)
	} else {
		f.Types[typ] = true
	}
	s.Filters = f
	e.state = s
}

// ToggleTag flips one entry of the order-tag filter set. This is also the
// round-trip target for the popup's tag toggle affordance.
func (e *Engine) ToggleTag(tag string) {
	s := e.state
	f := s.Filters.clone()
	if f.Tags == nil {
		f.Tags = make(map[string]bool)
	}
	if f.Tags[tag] {
		delete(f.Tags, tag)
	} else {
		f.Tags[tag] = true
	}
	s.Filters = f
	e.state = s
}

// SetQuery replaces the search query.
func (e *Engine) SetQuery(q string) {
	s := e.state
	f := s.Filters.clone()
	f.Query = q
	s.Filters = f
	e.state = s
}

// ResetFilters clears all three filter dimensions at once.
func (e *Engine) ResetFilters() {
	s := e.state
	s.Filters = Filters{}
	e.state = s
}
