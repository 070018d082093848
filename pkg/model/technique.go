// Package model defines the technique node/link data model shared by the
// simulation, the view engine, the TUI, and the exporters.
package model

import (
	"strconv"
	"strings"
)

// DefaultColor is used when a row supplies no palette entry at all.
const DefaultColor = "#69b3a2"

// Technique is a single node in the map. Name doubles as the unique id and
// the on-screen label.
type Technique struct {
	Name        string
	Type        string // category label used for hover/filter grouping
	OrderTag    string // free-text bucket for the tidy column layout; empty = centered
	MatrixTag   string // urgency/importance descriptor, substring-matched by the quadrant layout
	Scale       float64
	Color       string // current rendered color; automations recolor this until reversed
	BaseColor   string // palette entry from the dataset
	PrettyColor string // alternate palette entry from the dataset
	Description string
	Automation  string // registered automation dispatched on click; empty = plain node
	AutomationConfig string // opaque passthrough, not interpreted here
	VideoURL    string
	Related     []string // declared one-directionally; links are derived undirected

	// Runtime position, owned by the physics simulation. FX/FY are drag pins.
	X, Y   float64
	FX, FY *float64
}

// Pinned reports whether a drag currently holds this node in place.
func (t *Technique) Pinned() bool {
	return t.FX != nil || t.FY != nil
}

// Row is the tabular record handed over by ingestion, every field still a
// raw string. NormalizeRow owns all trimming, defaulting and parsing.
type Row struct {
	Name             string
	Type             string
	OrderTag         string
	MatrixTag        string
	Scale            string
	Color            string
	PrettyColor      string
	Description      string
	Automation       string
	AutomationConfig string
	VideoURL         string
	Related          string // comma-separated technique names
}

// NormalizeRow converts a raw row into a Technique. Returns ok=false for rows
// with no identity; those are dropped entirely rather than half-imported.
func NormalizeRow(r Row) (Technique, bool) {
	name := strings.TrimSpace(r.Name)
	if name == "" {
		return Technique{}, false
	}

	scale := 1.0
	if s := strings.TrimSpace(r.Scale); s != "" {
		if v, err := strconv.ParseFloat(s, 64); err == nil && v > 0 {
			scale = v
		}
	}

	color := strings.TrimSpace(r.Color)
	pretty := strings.TrimSpace(r.PrettyColor)
	// Either palette entry may fall back to the other; both fall back to the
	// hard default.
	if color == "" {
		color = pretty
	}
	if pretty == "" {
		pretty = color
	}
	if color == "" {
		color = DefaultColor
		pretty = DefaultColor
	}

	return Technique{
		Name:             name,
		Type:             strings.TrimSpace(r.Type),
		OrderTag:         strings.TrimSpace(r.OrderTag),
		MatrixTag:        strings.TrimSpace(r.MatrixTag),
		Scale:            scale,
		Color:            color,
		BaseColor:        color,
		PrettyColor:      pretty,
		Description:      strings.TrimSpace(r.Description),
		Automation:       strings.TrimSpace(r.Automation),
		AutomationConfig: strings.TrimSpace(r.AutomationConfig),
		VideoURL:         strings.TrimSpace(r.VideoURL),
		Related:          SplitRelated(r.Related),
	}, true
}

// SplitRelated parses a comma-separated relation list, trimming whitespace
// and dropping empty entries.
func SplitRelated(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
