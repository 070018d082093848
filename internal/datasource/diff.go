package datasource

import (
	"fmt"
	"sort"
	"strings"

	"github.com/vanderheijden86/techweave/pkg/model"
)

// DatasetDiff summarizes how a reloaded dataset differs from the one on
// screen. It feeds the status line after a live reload.
type DatasetDiff struct {
	// Added contains technique names present after the reload but not before
	Added []string
	// Removed contains technique names that disappeared in the reload
	Removed []string
	// Changed contains techniques present in both whose content differs
	Changed []string
	// CountBefore and CountAfter are the node totals on each side
	CountBefore int
	CountAfter  int
}

// HasChanges reports whether the reload altered anything visible.
func (d DatasetDiff) HasChanges() bool {
	return len(d.Added) > 0 || len(d.Removed) > 0 || len(d.Changed) > 0
}

// Summary returns a compact "+a -r ~c" description for the status bar.
func (d DatasetDiff) Summary() string {
	if !d.HasChanges() {
		return "no changes"
	}
	var parts []string
	if n := len(d.Added); n > 0 {
		parts = append(parts, fmt.Sprintf("+%d", n))
	}
	if n := len(d.Removed); n > 0 {
		parts = append(parts, fmt.Sprintf("-%d", n))
	}
	if n := len(d.Changed); n > 0 {
		parts = append(parts, fmt.Sprintf("~%d", n))
	}
	return strings.Join(parts, " ")
}

// DiffGraphs compares two loaded graphs by technique name. Content comparison
// covers the dataset-owned fields only; runtime state (position, the rendered
// color automations repaint) is ignored so a reload under an active recolor
// does not report every node as changed.
func DiffGraphs(before, after *model.Graph) DatasetDiff {
	d := DatasetDiff{
		CountBefore: len(before.Nodes),
		CountAfter:  len(after.Nodes),
	}

	for _, n := range after.Nodes {
		prev := before.Node(n.Name)
		if prev == nil {
			d.Added = append(d.Added, n.Name)
			continue
		}
		if contentKey(prev) != contentKey(n) {
			d.Changed = append(d.Changed, n.Name)
		}
	}
	for _, n := range before.Nodes {
		if after.Node(n.Name) == nil {
			d.Removed = append(d.Removed, n.Name)
		}
	}

	sort.Strings(d.Added)
	sort.Strings(d.Removed)
	sort.Strings(d.Changed)
	return d
}

// contentKey flattens the dataset-owned fields into one comparable string.
func contentKey(t *model.Technique) string {
	return strings.Join([]string{
		t.Type,
		t.OrderTag,
		t.MatrixTag,
		fmt.Sprintf("%g", t.Scale),
		t.BaseColor,
		t.PrettyColor,
		t.Description,
		t.Automation,
		t.AutomationConfig,
		t.VideoURL,
		strings.Join(t.Related, ","),
	}, "\x1f")
}
