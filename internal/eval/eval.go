package eval

import (
	"fmt"
	"math"

	"github.com/erikmannerfelt/manus/internal/expr"
	"github.com/erikmannerfelt/manus/internal/value"
)

// Env resolves a key path to a number. It is backed by the (partially)
// resolved value tree; the resolver guarantees that every path an AST
// references is available before the AST is evaluated.
type Env interface {
	Resolve(p value.Path) (float64, error)
}

// EnvFunc adapts a plain function to the Env interface.
type EnvFunc func(p value.Path) (float64, error)

// Resolve implements Env.
func (f EnvFunc) Resolve(p value.Path) (float64, error) {
	return f(p)
}

// Evaluate computes the value of an AST against an environment.
func Evaluate(e expr.Expr, env Env) (float64, error) {
	switch n := e.(type) {
	case *expr.NumberLit:
		return n.Value, nil
	case *expr.Ref:
		return env.Resolve(n.Path)
	case *expr.BinaryExpr:
		return evaluateBinary(n, env)
	case *expr.CallExpr:
		return evaluateCall(n, env)
	default:
		return 0, fmt.Errorf("unknown expression node %T", e)
	}
}

func evaluateBinary(n *expr.BinaryExpr, env Env) (float64, error) {
	lhs, err := Evaluate(n.LHS, env)
	if err != nil {
		return 0, err
	}
	rhs, err := Evaluate(n.RHS, env)
	if err != nil {
		return 0, err
	}
	switch n.Op {
	case "+":
		return lhs + rhs, nil
	case "-":
		return lhs - rhs, nil
	case "*":
		return lhs * rhs, nil
	case "/":
		if rhs == 0 {
			return 0, &DivisionByZeroError{Numerator: lhs}
		}
		return lhs / rhs, nil
	default:
		return 0, fmt.Errorf("unknown operator %q", n.Op)
	}
}

func evaluateCall(n *expr.CallExpr, env Env) (float64, error) {
	args := make([]float64, len(n.Args))
	for i, argExpr := range n.Args {
		arg, err := Evaluate(argExpr, env)
		if err != nil {
			return 0, err
		}
		args[i] = arg
	}

	switch n.Name {
	case expr.BuiltinRound:
		if len(args) < 1 || len(args) > 2 {
			return 0, &BadCallError{Name: n.Name, Message: "takes a value and an optional decimal count"}
		}
		decimals := 0.0
		if len(args) == 2 {
			decimals = args[1]
		}
		if decimals != math.Trunc(decimals) {
			return 0, &BadCallError{
				Name:    n.Name,
				Message: fmt.Sprintf("decimal count must be an integer, got %s", value.FormatNumber(decimals)),
			}
		}
		return Round(args[0], int(decimals)), nil
	case expr.BuiltinPow:
		if len(args) != 2 {
			return 0, &BadCallError{Name: n.Name, Message: "takes a value and an exponent"}
		}
		return Pow(args[0], args[1])
	case expr.BuiltinE:
		if len(args) != 1 {
			return 0, &BadCallError{Name: n.Name, Message: "takes a single exponent"}
		}
		return Pow(10, args[0])
	default:
		return 0, &BadCallError{Name: n.Name, Message: "unknown function"}
	}
}

// Round rounds to the given number of fractional digits, ties away from
// zero. A negative count rounds to the nearest power of ten, e.g.
// Round(58.242, -1) == 60.
func Round(v float64, decimals int) float64 {
	shift := math.Pow(10, float64(decimals))
	return math.Round(v*shift) / shift
}

// Pow raises v to the given exponent, failing on non-finite results.
func Pow(v, exponent float64) (float64, error) {
	result := math.Pow(v, exponent)
	if math.IsInf(result, 0) || math.IsNaN(result) {
		return 0, &NumericOverflowError{
			Op: fmt.Sprintf("pow(%s, %s)", value.FormatNumber(v), value.FormatNumber(exponent)),
		}
	}
	return result, nil
}
