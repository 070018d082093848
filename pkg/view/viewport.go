package view

// Transform is the current pan/zoom: world coordinates map to screen as
// (x*K+TX, y*K+TY).
type Transform struct {
	K      float64
	TX, TY float64
}

// Identity returns the no-op transform.
func Identity() Transform { return Transform{K: 1} }

// Apply projects a world point to screen space.
func (t Transform) Apply(x, y float64) (float64, float64) {
	return x*t.K + t.TX, y*t.K + t.TY
}

// Invert projects a screen point back to world space.
func (t Transform) Invert(sx, sy float64) (float64, float64) {
	if t.K == 0 {
		return sx, sy
	}
	return (sx - t.TX) / t.K, (sy - t.TY) / t.K
}

// PopupOffset is the fixed pixel offset between a tracked node and its
// popup anchor, applied after the zoom transform on both axes.
const PopupOffset = 15.0

// PopupAnchor computes the popup's screen position for a tracked node so the
// panel follows the node through physics motion and pan/zoom alike.
func PopupAnchor(x, y float64, t Transform) (float64, float64) {
	sx, sy := t.Apply(x, y)
	return sx + PopupOffset, sy + PopupOffset
}

// Device-class scaling: below the narrow breakpoint every dimension derived
// from node scale (radius, font size, label offset) shrinks by one uniform
// factor, and the radius formula itself flattens.
const (
	PhoneBreakpoint = 600.0
	CompactFactor   = 0.75

	baseRadius    = 5.0
	radiusPerUnit = 7.0

	compactBaseRadius    = 3.0
	compactRadiusPerUnit = 4.0

	baseFontSize    = 12.0
	baseLabelOffset = 4.0
)

// Compact reports whether the viewport is in the narrow device class.
func Compact(viewportWidth float64) bool {
	return viewportWidth < PhoneBreakpoint
}

// NodeRadius returns the rendered radius for a node scale at the given
// viewport width.
func NodeRadius(scale, viewportWidth float64) float64 {
	if Compact(viewportWidth) {
		return (compactBaseRadius + compactRadiusPerUnit*scale) * CompactFactor
	}
	return baseRadius + radiusPerUnit*scale
}

// FontSize returns the label font size for the viewport width.
func FontSize(viewportWidth float64) float64 {
	if Compact(viewportWidth) {
		return baseFontSize * CompactFactor
	}
	return baseFontSize
}

// LabelOffset returns the gap between a node edge and its label.
func LabelOffset(viewportWidth float64) float64 {
	if Compact(viewportWidth) {
		return baseLabelOffset * CompactFactor
	}
	return baseLabelOffset
}
