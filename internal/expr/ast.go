package expr

import (
	"fmt"
	"sort"
	"strings"

	"github.com/erikmannerfelt/manus/internal/value"
)

// Expr is a node in a parsed expression AST.
type Expr interface {
	fmt.Stringer
	exprNode()
}

// NumberLit is a numeric literal.
type NumberLit struct {
	Value float64
}

func (n *NumberLit) exprNode() {}

func (n *NumberLit) String() string {
	return value.FormatNumber(n.Value)
}

// Ref is an identifier factor referencing a key path in the data set.
type Ref struct {
	Path value.Path
}

func (r *Ref) exprNode() {}

func (r *Ref) String() string {
	return r.Path.String()
}

// BinaryExpr applies one of the four arithmetic operators.
type BinaryExpr struct {
	Op  string // "+", "-", "*" or "/"
	LHS Expr
	RHS Expr
}

func (b *BinaryExpr) exprNode() {}

func (b *BinaryExpr) String() string {
	return fmt.Sprintf("(%s %s %s)", b.LHS, b.Op, b.RHS)
}

// CallExpr invokes a named function. Names are resolved by the evaluator.
type CallExpr struct {
	Name string
	Args []Expr
}

func (c *CallExpr) exprNode() {}

func (c *CallExpr) String() string {
	args := make([]string, len(c.Args))
	for i, a := range c.Args {
		args[i] = a.String()
	}
	return fmt.Sprintf("%s(%s)", c.Name, strings.Join(args, ", "))
}

// References collects the set of key paths an AST depends on, sorted and
// deduplicated so dependency sets are deterministic.
func References(e Expr) []value.Path {
	seen := make(map[string]value.Path)
	collectRefs(e, seen)

	keys := make([]string, 0, len(seen))
	for k := range seen {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	refs := make([]value.Path, 0, len(keys))
	for _, k := range keys {
		refs = append(refs, seen[k])
	}
	return refs
}

func collectRefs(e Expr, seen map[string]value.Path) {
	switch n := e.(type) {
	case *Ref:
		seen[n.Path.String()] = n.Path
	case *BinaryExpr:
		collectRefs(n.LHS, seen)
		collectRefs(n.RHS, seen)
	case *CallExpr:
		for _, arg := range n.Args {
			collectRefs(arg, seen)
		}
	}
}
