package model

import (
	"testing"
)

func tq(name string, related ...string) Technique {
	return Technique{Name: name, Scale: 1, Related: related}
}

func TestBuildGraphDedup(t *testing.T) {
	// A lists B and C, B lists A back: {A,B} must collapse to one link.
	g := BuildGraph([]Technique{
		tq("A", "B", "C"),
		tq("B", "A"),
		tq("C"),
	})

	if len(g.Nodes) != 3 {
		t.Fatalf("nodes = %d, want 3", len(g.Nodes))
	}
	if len(g.Links) != 2 {
		t.Fatalf("links = %d, want 2 (A-B, A-C)", len(g.Links))
	}
	if !g.Connected("A", "B") || !g.Connected("B", "A") {
		t.Error("A and B should be connected both ways")
	}
	if !g.Connected("A", "C") {
		t.Error("A and C should be connected")
	}
	if g.Connected("B", "C") {
		t.Error("B and C should not be connected")
	}
}

func TestBuildGraphRepeatedListings(t *testing.T) {
	g := BuildGraph([]Technique{
		tq("A", "B", "B", "B"),
		tq("B", "A", "A"),
	})
	if len(g.Links) != 1 {
		t.Fatalf("links = %d, want 1", len(g.Links))
	}
}

func TestBuildGraphDropsUnknownAndSelf(t *testing.T) {
	g := BuildGraph([]Technique{
		tq("A", "A", "Ghost", "B"),
		tq("B"),
	})
	if len(g.Links) != 1 {
		t.Fatalf("links = %d, want 1 (only A-B)", len(g.Links))
	}
	l := g.Links[0]
	if l.Source.Name != "A" || l.Target.Name != "B" {
		t.Errorf("unexpected link %s-%s", l.Source.Name, l.Target.Name)
	}
}

func TestLinksHoldResolvedEndpoints(t *testing.T) {
	g := BuildGraph([]Technique{tq("A", "B"), tq("B")})
	g.Node("B").X = 42
	if g.Links[0].Target.X != 42 {
		t.Error("link endpoint should alias the live node, not a copy")
	}
}

func TestNodeOrderIsInsertionOrder(t *testing.T) {
	g := BuildGraph([]Technique{tq("Z"), tq("A"), tq("M")})
	got := []string{g.Nodes[0].Name, g.Nodes[1].Name, g.Nodes[2].Name}
	want := []string{"Z", "A", "M"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("order = %v, want %v", got, want)
		}
	}
}

func TestNormalizeRow(t *testing.T) {
	tests := []struct {
		name string
		row  Row
		want Technique
		ok   bool
	}{
		{
			name: "empty name dropped",
			row:  Row{Name: "   "},
			ok:   false,
		},
		{
			name: "invalid scale defaults to 1",
			row:  Row{Name: "Pomodoro", Scale: "banana"},
			want: Technique{Name: "Pomodoro", Scale: 1},
			ok:   true,
		},
		{
			name: "negative scale defaults to 1",
			row:  Row{Name: "Pomodoro", Scale: "-3"},
			want: Technique{Name: "Pomodoro", Scale: 1},
			ok:   true,
		},
		{
			name: "valid scale kept",
			row:  Row{Name: "Pomodoro", Scale: "2.5"},
			want: Technique{Name: "Pomodoro", Scale: 2.5},
			ok:   true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := NormalizeRow(tt.row)
			if ok != tt.ok {
				t.Fatalf("ok = %v, want %v", ok, tt.ok)
			}
			if !ok {
				return
			}
			if got.Name != tt.want.Name || got.Scale != tt.want.Scale {
				t.Errorf("got %q/%v, want %q/%v", got.Name, got.Scale, tt.want.Name, tt.want.Scale)
			}
		})
	}
}

func TestNormalizeRowColorFallbacks(t *testing.T) {
	// color <- pretty <- default, in both directions
	got, _ := NormalizeRow(Row{Name: "A", PrettyColor: "#111111"})
	if got.BaseColor != "#111111" || got.PrettyColor != "#111111" {
		t.Errorf("pretty-only row: base=%s pretty=%s", got.BaseColor, got.PrettyColor)
	}
	got, _ = NormalizeRow(Row{Name: "A", Color: "#222222"})
	if got.BaseColor != "#222222" || got.PrettyColor != "#222222" {
		t.Errorf("color-only row: base=%s pretty=%s", got.BaseColor, got.PrettyColor)
	}
	got, _ = NormalizeRow(Row{Name: "A"})
	if got.BaseColor != DefaultColor || got.PrettyColor != DefaultColor {
		t.Errorf("bare row: base=%s pretty=%s", got.BaseColor, got.PrettyColor)
	}
	if got.Color != got.BaseColor {
		t.Error("runtime color should start as the base color")
	}
}

func TestSplitRelated(t *testing.T) {
	got := SplitRelated(" Pomodoro , , Time Boxing,Deep Work ,")
	want := []string{"Pomodoro", "Time Boxing", "Deep Work"}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v, want %v", got, want)
		}
	}
	if SplitRelated("  ") != nil {
		t.Error("blank list should be nil")
	}
}

func TestFindByPrefix(t *testing.T) {
	g := BuildGraph([]Technique{tq("Deep Work"), tq("Pomodoro")})
	if n := g.FindByPrefix("pomo"); n == nil || n.Name != "Pomodoro" {
		t.Errorf("FindByPrefix(pomo) = %v", n)
	}
	if n := g.FindByPrefix("zzz"); n != nil {
		t.Errorf("FindByPrefix(zzz) = %v, want nil", n)
	}
}
