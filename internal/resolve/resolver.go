package resolve

import (
	"context"
	"fmt"

	"github.com/erikmannerfelt/manus/internal/ctxlog"
	"github.com/erikmannerfelt/manus/internal/eval"
	"github.com/erikmannerfelt/manus/internal/expr"
	"github.com/erikmannerfelt/manus/internal/value"
	"github.com/zclconf/go-cty/cty"
)

// Resolve evaluates every expression node and writes the computed numbers
// back into the tree. After a successful pass no value tagged with the
// expression marker remains. On failure the tree must be considered
// unusable for rendering.
func Resolve(ctx context.Context, store *value.Store, nodes []*expr.Node) error {
	logger := ctxlog.FromContext(ctx)
	r := &resolver{
		store: store,
		graph: NewGraph(nodes),
	}
	logger.Debug("Resolution pass starting.", "node_count", r.graph.Len())

	for _, key := range r.graph.order {
		n := r.graph.nodes[key]
		if n.State == expr.StateResolved {
			continue
		}
		if err := r.resolveNode(ctx, n); err != nil {
			return err
		}
	}

	logger.Debug("Resolution pass complete.")
	return nil
}

// resolver carries the state of one resolution pass. The stack holds the
// chain of nodes currently marked Resolving, outermost first, so a cycle
// can be reported as the exact list of paths around the loop.
type resolver struct {
	store *value.Store
	graph *Graph
	stack []value.Path
}

// resolveNode forces all of a node's dependencies, evaluates its AST and
// writes the result into the tree. Three-color marking: Unresolved nodes
// are white, the Resolving stack is gray, Resolved nodes are black.
func (r *resolver) resolveNode(ctx context.Context, n *expr.Node) error {
	logger := ctxlog.FromContext(ctx)

	n.State = expr.StateResolving
	r.stack = append(r.stack, n.Path)
	defer func() {
		r.stack = r.stack[:len(r.stack)-1]
	}()

	for _, dep := range n.Deps {
		depNode, isExpression := r.graph.Node(dep)
		if !isExpression {
			if !r.store.Has(dep) {
				n.State = expr.StateFailed
				return &UnknownReferenceError{Referrer: n.Path, Missing: dep}
			}
			continue
		}
		switch depNode.State {
		case expr.StateResolved:
			// Already black; its value is in the tree.
		case expr.StateResolving:
			n.State = expr.StateFailed
			depNode.State = expr.StateFailed
			return &CircularDependencyError{Cycle: r.cycleFrom(dep)}
		case expr.StateUnresolved:
			if err := r.resolveNode(ctx, depNode); err != nil {
				n.State = expr.StateFailed
				return err
			}
		case expr.StateFailed:
			// Unreachable: the first failure aborts the whole pass.
			n.State = expr.StateFailed
			return fmt.Errorf("dependency %q already failed", dep.String())
		}
	}

	result, err := eval.Evaluate(n.AST, eval.EnvFunc(r.lookupNumber))
	if err != nil {
		n.State = expr.StateFailed
		return fmt.Errorf("evaluating expression at %q (%q): %w", n.Path.String(), n.Raw, err)
	}

	if err := r.store.Set(n.Path, cty.NumberFloatVal(result)); err != nil {
		n.State = expr.StateFailed
		return err
	}
	n.State = expr.StateResolved
	logger.Debug("Expression resolved.", "path", n.Path.String(), "result", result)
	return nil
}

// lookupNumber is the evaluation environment: key path to number, backed by
// the partially resolved tree.
func (r *resolver) lookupNumber(p value.Path) (float64, error) {
	v, ok := r.store.Get(p)
	if !ok {
		// Dependencies are existence-checked before evaluation, so this
		// only triggers for paths the reference walk missed.
		referrer := value.Path(nil)
		if len(r.stack) > 0 {
			referrer = r.stack[len(r.stack)-1]
		}
		return 0, &UnknownReferenceError{Referrer: referrer, Missing: p}
	}
	if value.Kind(v) != value.KindNumber {
		return 0, &eval.TypeMismatchError{Key: p, Kind: value.Kind(v)}
	}
	f, _ := v.AsBigFloat().Float64()
	return f, nil
}

// cycleFrom reconstructs the cycle path from the active Resolving chain,
// starting at the revisited node.
func (r *resolver) cycleFrom(revisited value.Path) []value.Path {
	for i, p := range r.stack {
		if p.String() == revisited.String() {
			cycle := make([]value.Path, len(r.stack)-i)
			copy(cycle, r.stack[i:])
			return cycle
		}
	}
	// The revisited node is always on the stack; this is a safeguard.
	return []value.Path{revisited}
}
