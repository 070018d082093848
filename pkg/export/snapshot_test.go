package export

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/vanderheijden86/techweave/pkg/layout"
	"github.com/vanderheijden86/techweave/pkg/model"
	"github.com/vanderheijden86/techweave/pkg/view"
)

func sampleFrame(t *testing.T) view.Frame {
	t.Helper()
	g := model.BuildGraph([]model.Technique{
		{Name: "Check-in", Type: "energiser", OrderTag: "week 1", Scale: 1, Color: "#ff0000", Related: []string{"Icebreaker"}},
		{Name: "Icebreaker", Type: "energiser", OrderTag: "week 2", Scale: 2, Color: "#00ff00"},
	})
	e := view.NewEngine(g, layout.Viewport{Width: 800, Height: 600})
	return e.Frame()
}

func TestRenderSVG(t *testing.T) {
	frame := sampleFrame(t)

	var buf bytes.Buffer
	err := renderSVGToWriter(&buf, SnapshotOptions{
		Frame: frame, Width: 800, Height: 600, Title: "Techniques",
	})
	if err != nil {
		t.Fatalf("renderSVGToWriter: %v", err)
	}

	out := buf.String()
	for _, want := range []string{"<svg", "circle", "Check-in", "Icebreaker", "fill-opacity:0.70", "Techniques"} {
		if !strings.Contains(out, want) {
			t.Errorf("svg output missing %q", want)
		}
	}
	if !strings.Contains(out, `stroke-opacity:0.70`) {
		t.Error("link stroke opacity not rendered")
	}
}

func TestRenderSVG_Background(t *testing.T) {
	g := model.BuildGraph([]model.Technique{
		{Name: "A", OrderTag: "week 1", Scale: 1, Color: "#111"},
		{Name: "Eisenhower", Automation: "eisenhower", Scale: 1, Color: "#222"},
	})
	e := view.NewEngine(g, layout.Viewport{Width: 800, Height: 600})
	if err := e.ClickNode("Eisenhower"); err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	err := renderSVGToWriter(&buf, SnapshotOptions{Frame: e.Frame(), Width: 800, Height: 600})
	if err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	if !strings.Contains(out, "stroke-dasharray") {
		t.Error("quadrant centerlines not rendered")
	}
	if !strings.Contains(out, "Urgent") {
		t.Error("quadrant labels not rendered")
	}
}

func TestSaveSnapshot_FormatInference(t *testing.T) {
	dir := t.TempDir()
	frame := sampleFrame(t)

	tests := []struct {
		name string
		path string
	}{
		{"svg by extension", filepath.Join(dir, "out.svg")},
		{"png by extension", filepath.Join(dir, "out.png")},
		{"default appends svg", filepath.Join(dir, "bare")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := SaveSnapshot(SnapshotOptions{Path: tt.path, Frame: frame, Width: 800, Height: 600})
			if err != nil {
				t.Fatalf("SaveSnapshot: %v", err)
			}
			want := tt.path
			if filepath.Ext(want) == "" {
				want += ".svg"
			}
			if _, err := os.Stat(want); err != nil {
				t.Errorf("output missing: %v", err)
			}
		})
	}
}

func TestSaveSnapshot_Errors(t *testing.T) {
	frame := sampleFrame(t)
	dir := t.TempDir()

	if err := SaveSnapshot(SnapshotOptions{Path: filepath.Join(dir, "x.svg"), Width: 800, Height: 600}); err == nil {
		t.Error("empty frame accepted")
	}
	if err := SaveSnapshot(SnapshotOptions{Path: filepath.Join(dir, "x.gif"), Frame: frame, Width: 800, Height: 600}); err == nil {
		t.Error("unsupported format accepted")
	}
	if err := SaveSnapshot(SnapshotOptions{Frame: frame, Width: 800, Height: 600}); err == nil {
		t.Error("missing path accepted")
	}
	if err := SaveSnapshot(SnapshotOptions{Path: filepath.Join(dir, "x.svg"), Frame: frame}); err == nil {
		t.Error("zero dimensions accepted")
	}
}

func TestParseHex(t *testing.T) {
	tests := []struct {
		in      string
		r, g, b uint8
	}{
		{"#ff0000", 0xff, 0, 0},
		{"#4caf50", 0x4c, 0xaf, 0x50},
		{"#fff", 0xff, 0xff, 0xff},
		{" #69b3a2 ", 0x69, 0xb3, 0xa2},
	}
	for _, tt := range tests {
		c := parseHex(tt.in, colorLabel)
		if c.R != tt.r || c.G != tt.g || c.B != tt.b {
			t.Errorf("parseHex(%q) = %v", tt.in, c)
		}
	}
	if c := parseHex("nonsense", colorLabel); c != colorLabel {
		t.Errorf("fallback not used: %v", c)
	}
}
