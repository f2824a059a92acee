package resolve

import (
	"sort"

	"github.com/erikmannerfelt/manus/internal/expr"
	"github.com/erikmannerfelt/manus/internal/value"
)

// Graph is the dependency graph over expression nodes, keyed by dotted key
// path. Edges point from an expression to the key paths it references;
// references to plain scalars are checked for existence during resolution
// but are not materialized as nodes.
type Graph struct {
	nodes map[string]*expr.Node
	order []string
}

// NewGraph indexes a set of expression nodes. The enumeration order is
// sorted so that resolution passes are reproducible, although the result
// does not depend on it.
func NewGraph(nodes []*expr.Node) *Graph {
	g := &Graph{nodes: make(map[string]*expr.Node, len(nodes))}
	for _, n := range nodes {
		key := n.Path.String()
		g.nodes[key] = n
		g.order = append(g.order, key)
	}
	sort.Strings(g.order)
	return g
}

// Node returns the expression node at the given path, if one exists.
func (g *Graph) Node(p value.Path) (*expr.Node, bool) {
	n, ok := g.nodes[p.String()]
	return n, ok
}

// Len returns the number of expression nodes in the graph.
func (g *Graph) Len() int {
	return len(g.nodes)
}

// Dependencies returns the key paths the node at the given path references.
func (g *Graph) Dependencies(p value.Path) []value.Path {
	n, ok := g.nodes[p.String()]
	if !ok {
		return nil
	}
	return n.Deps
}
