package view

import (
	"testing"

	"github.com/vanderheijden86/techweave/pkg/model"
)

func TestHighlightStateMachine(t *testing.T) {
	g := triangleGraph()
	e := newTestEngine(g)

	// Idle: nothing tracked.
	if got := e.State().Tracked(); got != "" {
		t.Fatalf("idle Tracked() = %q, want empty", got)
	}

	// Hover enters and leaves cleanly.
	e.HoverEnter("A")
	if got := e.State().Tracked(); got != "A" {
		t.Fatalf("after hover Tracked() = %q, want A", got)
	}
	e.HoverLeave("A")
	if got := e.State().Tracked(); got != "" {
		t.Fatalf("after leave Tracked() = %q, want empty", got)
	}

	// A stale leave for a node that is not hovered is ignored.
	e.HoverEnter("B")
	e.HoverLeave("A")
	if got := e.State().Hover; got != "B" {
		t.Fatalf("stale leave cleared hover: %q, want B", got)
	}
	e.HoverLeave("B")

	// Click locks; hovering other nodes is suppressed while locked.
	if err := e.ClickNode("A"); err != nil {
		t.Fatalf("ClickNode(A): %v", err)
	}
	e.HoverEnter("B")
	s := e.State()
	if s.Hover != "" || s.Locked != "A" {
		t.Fatalf("foreign hover under lock: hover=%q locked=%q, want empty/A", s.Hover, s.Locked)
	}
	if got := s.Tracked(); got != "A" {
		t.Fatalf("locked Tracked() = %q, want A", got)
	}

	// Re-hovering the locked node itself is allowed.
	e.HoverEnter("A")
	if got := e.State().Hover; got != "A" {
		t.Fatalf("hover on locked node = %q, want A", got)
	}
	e.HoverLeave("A")

	// Clicking another plain node moves the lock.
	if err := e.ClickNode("B"); err != nil {
		t.Fatalf("ClickNode(B): %v", err)
	}
	if got := e.State().Locked; got != "B" {
		t.Fatalf("lock after second click = %q, want B", got)
	}

	// Background click clears everything.
	e.ClickBackground()
	s = e.State()
	if s.Hover != "" || s.Locked != "" {
		t.Fatalf("after background click: hover=%q locked=%q, want both empty", s.Hover, s.Locked)
	}
}

func TestClickUnknownNodeIsNoOp(t *testing.T) {
	e := newTestEngine(triangleGraph())
	if err := e.ClickNode("nope"); err != nil {
		t.Fatalf("ClickNode(nope): %v", err)
	}
	if got := e.State().Locked; got != "" {
		t.Fatalf("Locked = %q, want empty", got)
	}
}

func TestAutomationClickDoesNotLock(t *testing.T) {
	g := model.BuildGraph([]model.Technique{
		{Name: "Tidy up!", Automation: "tidyUp", Scale: 1, Color: "#111"},
		{Name: "plain", Scale: 1, Color: "#222"},
	})
	e := newTestEngine(g)

	if err := e.ClickNode("Tidy up!"); err != nil {
		t.Fatalf("ClickNode: %v", err)
	}
	s := e.State()
	if s.Locked != "" {
		t.Errorf("automation click took the lock: %q", s.Locked)
	}
	if s.Layout.String() != "tidy" {
		t.Errorf("layout after tidyUp = %q, want tidy", s.Layout)
	}
}

func TestFilterToggles(t *testing.T) {
	e := newTestEngine(triangleGraph())

	e.ToggleType("retro")
	if !e.State().Filters.Types["retro"] {
		t.Fatal("ToggleType did not add retro")
	}
	e.ToggleType("retro")
	if e.State().Filters.Types["retro"] {
		t.Fatal("ToggleType did not remove retro")
	}

	e.ToggleTag("week 1")
	e.SetQuery("check")
	s := e.State()
	if !s.Filters.Tags["week 1"] || s.Filters.Query != "check" {
		t.Fatalf("filters = %+v, want tag + query set", s.Filters)
	}
	if !s.Filters.Active() {
		t.Fatal("Active() = false with filters set")
	}

	e.ResetFilters()
	if e.State().Filters.Active() {
		t.Fatal("ResetFilters left filters active")
	}
}

func TestSnapshotsAreIndependent(t *testing.T) {
	e := newTestEngine(triangleGraph())
	e.ToggleTag("week 1")
	before := e.State()
	e.ToggleTag("week 2")

	if before.Filters.Tags["week 2"] {
		t.Fatal("earlier snapshot mutated by later toggle")
	}
	if !e.State().Filters.Tags["week 1"] || !e.State().Filters.Tags["week 2"] {
		t.Fatalf("current filters = %+v, want both weeks", e.State().Filters.Tags)
	}
}
