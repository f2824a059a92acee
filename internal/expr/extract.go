package expr

import (
	"context"

	"github.com/erikmannerfelt/manus/internal/ctxlog"
	"github.com/erikmannerfelt/manus/internal/value"
	"github.com/zclconf/go-cty/cty"
)

// Marker tags a String value as an expression to be resolved before
// rendering.
const Marker = "expr:"

// State tracks a node through resolution. Resolving is transient: after a
// completed pass every node is either Resolved or Failed.
type State int

const (
	StateUnresolved State = iota
	StateResolving
	StateResolved
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateUnresolved:
		return "unresolved"
	case StateResolving:
		return "resolving"
	case StateResolved:
		return "resolved"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Node is an expression-valued entry in the data set. Nodes are created
// once by Extract and mutated only by the resolver.
type Node struct {
	// Path locates the node in the value tree.
	Path value.Path
	// Raw is the expression text with the marker stripped.
	Raw string
	// AST is the parsed expression.
	AST Expr
	// Deps is the sorted set of key paths the expression references.
	Deps []value.Path
	// State is the node's resolution state.
	State State
}

// IsExpression reports whether a string value carries the expression marker.
func IsExpression(s string) bool {
	_, ok := trimExpression(s)
	return ok
}

// Extract walks the value tree and parses every expression-tagged String
// into a Node. The returned slice is ordered by the deterministic walk
// order of the tree.
func Extract(ctx context.Context, store *value.Store) ([]*Node, error) {
	logger := ctxlog.FromContext(ctx)

	var nodes []*Node
	err := store.Walk(func(p value.Path, v cty.Value) error {
		if value.Kind(v) != value.KindString {
			return nil
		}
		raw, ok := trimExpression(v.AsString())
		if !ok {
			return nil
		}

		ast, err := Parse(raw)
		if err != nil {
			if serr, isSyntax := err.(*SyntaxError); isSyntax {
				serr.Path = p
			}
			return err
		}

		nodes = append(nodes, &Node{
			Path:  p,
			Raw:   raw,
			AST:   ast,
			Deps:  References(ast),
			State: StateUnresolved,
		})
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Debug("Expression extraction complete.", "node_count", len(nodes))
	return nodes, nil
}
