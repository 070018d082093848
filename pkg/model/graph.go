package model

import "strings"

// Link is a single undirected edge with endpoints resolved at build time, so
// downstream code never sees a raw-id/reference union.
type Link struct {
	Source *Technique
	Target *Technique
}

// Key returns the canonical unordered-pair key used for deduplication.
func (l Link) Key() string {
	return LinkKey(l.Source.Name, l.Target.Name)
}

// LinkKey builds the canonical sort(a,b) key for an unordered pair.
func LinkKey(a, b string) string {
	if a > b {
		a, b = b, a
	}
	return a + "\x00" + b
}

// Graph holds the node and link arrays plus the derived adjacency lookup.
// Node order is insertion order from the input rows.
type Graph struct {
	Nodes []*Technique
	Links []*Link

	byName map[string]*Technique
	adj    map[string]map[string]bool
}

// BuildGraph materializes the graph from normalized techniques. For every
// node A listing node B, one undirected link {A,B} is created if B exists and
// A != B; repeated or reversed listings collapse onto the same link.
func BuildGraph(techniques []Technique) *Graph {
	g := &Graph{
		byName: make(map[string]*Technique, len(techniques)),
		adj:    make(map[string]map[string]bool, len(techniques)),
	}

	for i := range techniques {
		t := techniques[i]
		if t.Name == "" {
			continue
		}
		if _, dup := g.byName[t.Name]; dup {
			continue
		}
		node := &t
		g.Nodes = append(g.Nodes, node)
		g.byName[t.Name] = node
	}

	seen := make(map[string]bool)
	for _, n := range g.Nodes {
		for _, rel := range n.Related {
			other, ok := g.byName[rel]
			if !ok || other == n {
				continue // unknown or self reference, silently dropped
			}
			key := LinkKey(n.Name, other.Name)
			if seen[key] {
				continue
			}
			seen[key] = true
			g.Links = append(g.Links, &Link{Source: n, Target: other})
			g.addAdj(n.Name, other.Name)
			g.addAdj(other.Name, n.Name)
		}
	}

	return g
}

func (g *Graph) addAdj(from, to string) {
	if g.adj[from] == nil {
		g.adj[from] = make(map[string]bool)
	}
	g.adj[from][to] = true
}

// Node returns the technique with the given name, or nil.
func (g *Graph) Node(name string) *Technique {
	return g.byName[name]
}

// Neighbors returns the set of names reachable from name by exactly one link.
// The returned map is shared; callers must not mutate it.
func (g *Graph) Neighbors(name string) map[string]bool {
	return g.adj[name]
}

// Connected reports whether a and b share a link.
func (g *Graph) Connected(a, b string) bool {
	return g.adj[a][b]
}

// Types returns the distinct node types in first-seen order.
func (g *Graph) Types() []string {
	var out []string
	seen := make(map[string]bool)
	for _, n := range g.Nodes {
		if n.Type != "" && !seen[n.Type] {
			seen[n.Type] = true
			out = append(out, n.Type)
		}
	}
	return out
}

// OrderTags returns the distinct non-empty order tags in first-seen order.
func (g *Graph) OrderTags() []string {
	var out []string
	seen := make(map[string]bool)
	for _, n := range g.Nodes {
		if n.OrderTag != "" && !seen[n.OrderTag] {
			seen[n.OrderTag] = true
			out = append(out, n.OrderTag)
		}
	}
	return out
}

// FindByPrefix returns the first node whose name matches the query
// case-insensitively by prefix, used by keyboard jump navigation.
func (g *Graph) FindByPrefix(q string) *Technique {
	q = strings.ToLower(q)
	if q == "" {
		return nil
	}
	for _, n := range g.Nodes {
		if strings.HasPrefix(strings.ToLower(n.Name), q) {
			return n
		}
	}
	return nil
}
