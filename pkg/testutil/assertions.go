package testutil

import (
	"testing"

	"github.com/vanderheijden86/techweave/pkg/model"
)

// AssertUniqueNames verifies all technique names are distinct.
func AssertUniqueNames(t *testing.T, techniques []model.Technique) {
	t.Helper()
	seen := make(map[string]bool)
	for _, tech := range techniques {
		if seen[tech.Name] {
			t.Errorf("duplicate technique name: %s", tech.Name)
		}
		seen[tech.Name] = true
	}
}

// AssertLinksResolve verifies every link endpoint is a node of the graph.
func AssertLinksResolve(t *testing.T, g *model.Graph) {
	t.Helper()
	for _, l := range g.Links {
		if g.Node(l.Source.Name) == nil {
			t.Errorf("link source %s not in graph", l.Source.Name)
		}
		if g.Node(l.Target.Name) == nil {
			t.Errorf("link target %s not in graph", l.Target.Name)
		}
	}
}
