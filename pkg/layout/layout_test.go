package layout

import (
	"math"
	"testing"

	"github.com/vanderheijden86/techweave/pkg/model"
	"github.com/vanderheijden86/techweave/pkg/physics"
)

func tagGraph() *model.Graph {
	return model.BuildGraph([]model.Technique{
		{Name: "A", Scale: 1, OrderTag: "later"},
		{Name: "B", Scale: 1, OrderTag: "now"},
		{Name: "C", Scale: 1, OrderTag: "soon"},
		{Name: "D", Scale: 1}, // untagged
	})
}

func TestTidyColumnOrderIsLexicographic(t *testing.T) {
	g := tagGraph()
	vp := Viewport{Width: 1000, Height: 600}
	hints := Hints(g, Tidy, vp)

	// Tags sort to later < now < soon; columns must follow that order
	// left to right.
	xa := hints(g.Node("A")).X
	xb := hints(g.Node("B")).X
	xc := hints(g.Node("C")).X
	if !(xa < xb && xb < xc) {
		t.Errorf("column x order = %v %v %v, want ascending", xa, xb, xc)
	}
}

func TestTidyColumnsSpanMiddle80Percent(t *testing.T) {
	g := tagGraph()
	vp := Viewport{Width: 1000, Height: 600}
	hints := Hints(g, Tidy, vp)
	for _, n := range g.Nodes {
		h := hints(n)
		if !h.HasX || !h.HasY {
			t.Fatalf("%s: tidy must hint both axes", n.Name)
		}
		if h.X < 100 || h.X > 900 {
			t.Errorf("%s: x=%v outside [100,900]", n.Name, h.X)
		}
		if h.Y != 300 {
			t.Errorf("%s: y=%v, want mid-height 300", n.Name, h.Y)
		}
		if h.StrengthY >= h.StrengthX {
			t.Errorf("%s: y pull must stay weaker than x pull", n.Name)
		}
	}
}

func TestTidyUntaggedNodeTargetsMidpoint(t *testing.T) {
	g := tagGraph()
	vp := Viewport{Width: 1000, Height: 600}
	h := Hints(g, Tidy, vp)(g.Node("D"))
	if h.X != 500 {
		t.Errorf("untagged node x=%v, want range midpoint 500", h.X)
	}
}

func TestTidyColumnXPadding(t *testing.T) {
	// Three columns over width 1000: span [100,900], step 800/4=200,
	// positions 200/400/600... offset by start: 300, 500, 700.
	want := []float64{300, 500, 700}
	for i, w := range want {
		got := TidyColumnX(i, 3, 1000)
		if math.Abs(got-w) > 1e-9 {
			t.Errorf("TidyColumnX(%d,3) = %v, want %v", i, got, w)
		}
	}
	if got := TidyColumnX(0, 1, 1000); got != 500 {
		t.Errorf("single column should center: got %v", got)
	}
}

func TestQuadrantMatching(t *testing.T) {
	tests := []struct {
		tag  string
		x, y float64
	}{
		{"Urgent and Important", 0.25, 0.25},
		{"urgent, not important", 0.25, 0.75},
		{"Not urgent but important", 0.75, 0.25},
		{"NOT URGENT / NOT IMPORTANT", 0.75, 0.75},
		{"whenever", 0.5, 0.5},
		{"", 0.5, 0.5},
	}
	for _, tt := range tests {
		if got := QuadrantX(tt.tag); got != tt.x {
			t.Errorf("QuadrantX(%q) = %v, want %v", tt.tag, got, tt.x)
		}
		if got := QuadrantY(tt.tag); got != tt.y {
			t.Errorf("QuadrantY(%q) = %v, want %v", tt.tag, got, tt.y)
		}
	}
}

func TestQuadrantHintsUseStrongPull(t *testing.T) {
	g := tagGraph()
	h := Hints(g, Quadrant, Viewport{Width: 800, Height: 600})(g.Node("A"))
	if h.StrengthX != QuadrantStrength || h.StrengthY != QuadrantStrength {
		t.Errorf("quadrant strengths = %v/%v, want %v", h.StrengthX, h.StrengthY, QuadrantStrength)
	}
}

func TestFreeModeHasNoHints(t *testing.T) {
	g := tagGraph()
	if Hints(g, Free, Viewport{Width: 800, Height: 600}) != nil {
		t.Error("free mode must not constrain positions")
	}
}

func TestInstallForcesReplacesAxisSlots(t *testing.T) {
	g := tagGraph()
	sim := physics.New(g, 400, 300)
	vp := Viewport{Width: 800, Height: 600}

	InstallForces(sim, g, Tidy, vp)
	if sim.Force("x") == nil || sim.Force("y") == nil {
		t.Fatal("tidy must install both axis forces")
	}
	tidyX := sim.Force("x")

	InstallForces(sim, g, Quadrant, vp)
	if sim.Force("x") == tidyX {
		t.Error("switching modes must replace the old axis force, not keep it")
	}
	if sim.Alpha() < physics.ReheatAlpha {
		t.Error("mode switch must reheat the simulation")
	}

	InstallForces(sim, g, Free, vp)
	if sim.Force("x") != nil || sim.Force("y") != nil {
		t.Error("free mode must remove axis forces entirely")
	}
}

func TestTidyBackgroundEqualWidthColumns(t *testing.T) {
	g := tagGraph()
	bg := BackgroundFor(g, Tidy, Viewport{Width: 900, Height: 600})
	if len(bg.Lines) != 3 || len(bg.Labels) != 3 {
		t.Fatalf("got %d lines / %d labels, want 3 each", len(bg.Lines), len(bg.Labels))
	}
	// Equal thirds regardless of label width: separators at 0, 300, 600,
	// labels centered at 150, 450, 750.
	for i, wantX := range []float64{0, 300, 600} {
		if bg.Lines[i].X1 != wantX {
			t.Errorf("separator %d at %v, want %v", i, bg.Lines[i].X1, wantX)
		}
	}
	for i, wantX := range []float64{150, 450, 750} {
		if bg.Labels[i].X != wantX {
			t.Errorf("label %d at %v, want %v", i, bg.Labels[i].X, wantX)
		}
	}
	// Lexicographic label order.
	if bg.Labels[0].Lines[0] != "later" || bg.Labels[2].Lines[0] != "soon" {
		t.Errorf("label order wrong: %v", bg.Labels)
	}
}

func TestQuadrantBackground(t *testing.T) {
	g := tagGraph()
	bg := BackgroundFor(g, Quadrant, Viewport{Width: 800, Height: 600})
	if len(bg.Lines) != 2 {
		t.Fatalf("got %d divider lines, want 2", len(bg.Lines))
	}
	if len(bg.Labels) != 4 {
		t.Fatalf("got %d quadrant labels, want 4", len(bg.Labels))
	}
	for _, l := range bg.Labels {
		if len(l.Lines) != 2 {
			t.Errorf("quadrant label %v should be two-line", l.Lines)
		}
	}
}

func TestFreeBackgroundIsEmpty(t *testing.T) {
	g := tagGraph()
	bg := BackgroundFor(g, Free, Viewport{Width: 800, Height: 600})
	if len(bg.Lines) != 0 || len(bg.Labels) != 0 {
		t.Error("free mode renders no background layer")
	}
}
