// Package export renders static snapshots of the technique map.
//
// A snapshot is the current frame frozen to SVG or PNG: nodes with their live
// colors and opacities, links, and the active layout's background guides.
package export

import (
	"fmt"
	"image/color"
	"io"
	"os"
	"path/filepath"
	"strings"

	"git.sr.ht/~sbinet/gg"
	svg "github.com/ajstarks/svgo"
	"golang.org/x/image/font/basicfont"

	"github.com/vanderheijden86/techweave/pkg/view"
)

// SnapshotOptions controls snapshot export behaviour.
type SnapshotOptions struct {
	Path   string // Output path; format inferred from extension when Format empty
	Format string // "svg" or "png" (case-insensitive). If empty, inferred from Path.
	Title  string // Optional title rendered in the corner
	Frame  view.Frame
	Width  int // canvas width in world units
	Height int
}

var (
	colorBackdrop = color.RGBA{0xf9, 0xfa, 0xfb, 0xff}
	colorGuide    = color.RGBA{0xc0, 0xc4, 0xcc, 0xff}
	colorLabel    = color.RGBA{0x66, 0x66, 0x66, 0xff}
	colorTitle    = color.RGBA{0x11, 0x11, 0x11, 0xff}
)

// SaveSnapshot renders the frame to disk, dispatching on format.
func SaveSnapshot(opts SnapshotOptions) error {
	if len(opts.Frame.Nodes) == 0 {
		return fmt.Errorf("no techniques to export")
	}
	if opts.Width <= 0 || opts.Height <= 0 {
		return fmt.Errorf("snapshot needs positive dimensions, got %dx%d", opts.Width, opts.Height)
	}

	format := strings.ToLower(strings.TrimPrefix(opts.Format, "."))
	if format == "" {
		switch strings.ToLower(filepath.Ext(opts.Path)) {
		case ".svg":
			format = "svg"
		case ".png":
			format = "png"
		default:
			format = "svg" // safe default
			if opts.Path != "" && filepath.Ext(opts.Path) == "" {
				opts.Path = opts.Path + ".svg"
			}
		}
	}
	if format != "svg" && format != "png" {
		return fmt.Errorf("unsupported format %q (want svg or png)", format)
	}
	if opts.Path == "" {
		return fmt.Errorf("output path is required")
	}

	if err := os.MkdirAll(filepath.Dir(opts.Path), 0o755); err != nil {
		return fmt.Errorf("create parent dir: %w", err)
	}

	switch format {
	case "svg":
		return renderSVG(opts)
	case "png":
		return renderPNG(opts)
	default:
		return fmt.Errorf("unhandled format %q", format)
	}
}

func renderSVG(opts SnapshotOptions) error {
	file, err := os.Create(opts.Path)
	if err != nil {
		return err
	}
	defer file.Close()
	return renderSVGToWriter(file, opts)
}

func renderSVGToWriter(w io.Writer, opts SnapshotOptions) error {
	f := opts.Frame
	canvas := svg.New(w)
	canvas.Start(opts.Width, opts.Height)
	canvas.Rect(0, 0, opts.Width, opts.Height, fmt.Sprintf("fill:%s", css(colorBackdrop)))

	for _, line := range f.Background.Lines {
		canvas.Line(int(line.X1), int(line.Y1), int(line.X2), int(line.Y2),
			fmt.Sprintf("stroke:%s;stroke-width:1;stroke-dasharray:6 4", css(colorGuide)))
	}
	for _, label := range f.Background.Labels {
		for i, text := range label.Lines {
			canvas.Text(int(label.X), int(label.Y)+i*16, text,
				fmt.Sprintf("fill:%s;font-size:13px;font-family:monospace;text-anchor:middle", css(colorLabel)))
		}
	}

	for _, l := range f.Links {
		width := 1.5
		if l.Highlighted {
			width = 2.5
		}
		canvas.Line(int(l.X1), int(l.Y1), int(l.X2), int(l.Y2),
			fmt.Sprintf("stroke:%s;stroke-width:%.1f;stroke-opacity:%.2f", f.Accent, width, l.StrokeOpacity))
	}

	for _, n := range f.Nodes {
		if n.Shape == view.ShapeGlyph {
			canvas.Text(int(n.X), int(n.Y)+int(n.Radius/2), n.Glyph,
				fmt.Sprintf("font-size:%.0fpx;text-anchor:middle;opacity:%.2f", n.Radius*2, n.Opacity))
			continue
		}
		canvas.Circle(int(n.X), int(n.Y), int(n.Radius),
			fmt.Sprintf("fill:%s;fill-opacity:%.2f", n.Color, n.Opacity))
		canvas.Text(int(n.X)+int(n.Radius)+6, int(n.Y)+4, n.Name,
			fmt.Sprintf("fill:%s;font-size:12px;font-family:monospace;opacity:%.2f", css(colorLabel), n.Opacity))
	}

	if opts.Title != "" {
		canvas.Text(16, 24, opts.Title,
			fmt.Sprintf("fill:%s;font-size:16px;font-family:monospace;font-weight:bold", css(colorTitle)))
	}

	canvas.End()
	return nil
}

func renderPNG(opts SnapshotOptions) error {
	f := opts.Frame
	dc := gg.NewContext(opts.Width, opts.Height)
	dc.SetColor(colorBackdrop)
	dc.Clear()
	dc.SetFontFace(basicfont.Face7x13)

	dc.SetColor(colorGuide)
	dc.SetLineWidth(1)
	dc.SetDash(6, 4)
	for _, line := range f.Background.Lines {
		dc.DrawLine(line.X1, line.Y1, line.X2, line.Y2)
		dc.Stroke()
	}
	dc.SetDash()

	for _, label := range f.Background.Labels {
		dc.SetColor(colorLabel)
		for i, text := range label.Lines {
			dc.DrawStringAnchored(text, label.X, label.Y+float64(i)*16, 0.5, 0.5)
		}
	}

	accent := parseHex(f.Accent, colorGuide)
	for _, l := range f.Links {
		dc.SetColor(withAlpha(accent, l.StrokeOpacity))
		width := 1.5
		if l.Highlighted {
			width = 2.5
		}
		dc.SetLineWidth(width)
		dc.DrawLine(l.X1, l.Y1, l.X2, l.Y2)
		dc.Stroke()
	}

	for _, n := range f.Nodes {
		if n.Shape == view.ShapeGlyph {
			// Raster fallback: basicfont has no emoji coverage, so glyphs
			// render as a ring in the node color.
			dc.SetColor(withAlpha(parseHex(n.Color, colorLabel), n.Opacity))
			dc.SetLineWidth(2)
			dc.DrawCircle(n.X, n.Y, n.Radius)
			dc.Stroke()
			continue
		}
		dc.SetColor(withAlpha(parseHex(n.Color, colorLabel), n.Opacity))
		dc.DrawCircle(n.X, n.Y, n.Radius)
		dc.Fill()
		dc.SetColor(withAlpha(colorLabel, n.Opacity))
		dc.DrawStringAnchored(n.Name, n.X+n.Radius+6, n.Y, 0, 0.5)
	}

	if opts.Title != "" {
		dc.SetColor(colorTitle)
		dc.DrawStringAnchored(opts.Title, 16, 24, 0, 0.5)
	}

	return dc.SavePNG(opts.Path)
}

// parseHex parses "#rgb" or "#rrggbb", returning fallback on anything else.
func parseHex(s string, fallback color.RGBA) color.RGBA {
	s = strings.TrimPrefix(strings.TrimSpace(s), "#")
	var r, g, b uint8
	switch len(s) {
	case 3:
		if _, err := fmt.Sscanf(s, "%1x%1x%1x", &r, &g, &b); err != nil {
			return fallback
		}
		return color.RGBA{r * 17, g * 17, b * 17, 0xff}
	case 6:
		if _, err := fmt.Sscanf(s, "%02x%02x%02x", &r, &g, &b); err != nil {
			return fallback
		}
		return color.RGBA{r, g, b, 0xff}
	default:
		return fallback
	}
}

func withAlpha(c color.RGBA, opacity float64) color.RGBA {
	if opacity < 0 {
		opacity = 0
	}
	if opacity > 1 {
		opacity = 1
	}
	c.A = uint8(opacity * 0xff)
	return c
}

func css(c color.RGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}
