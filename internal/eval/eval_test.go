package eval

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erikmannerfelt/manus/internal/expr"
	"github.com/erikmannerfelt/manus/internal/value"
)

// testEnv resolves key paths from a flat map keyed by the dotted path.
func testEnv(values map[string]float64) Env {
	return EnvFunc(func(p value.Path) (float64, error) {
		v, ok := values[p.String()]
		if !ok {
			return 0, fmt.Errorf("no value at %q", p.String())
		}
		return v, nil
	})
}

func evaluate(t *testing.T, raw string, env Env) (float64, error) {
	t.Helper()
	node, err := expr.Parse(raw)
	require.NoError(t, err)
	return Evaluate(node, env)
}

func TestEvaluateArithmetic(t *testing.T) {
	env := testEnv(map[string]float64{
		"n":     4,
		"total": 16,
	})

	cases := []struct {
		in   string
		want float64
	}{
		{"1 + 2 * 3", 7},
		{"(1 + 2) * 3", 9},
		{"10 - 4 - 3", 3},
		{"100 * n / total", 25},
		{"0-1", -1},
		{"n / total", 0.25},
	}
	for _, tc := range cases {
		t.Run(tc.in, func(t *testing.T) {
			got, err := evaluate(t, tc.in, env)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestEvaluateBuiltins(t *testing.T) {
	env := testEnv(nil)

	cases := []struct {
		in   string
		want float64
	}{
		{"round(1883.8090928305920395, 2)", 1883.81},
		{"round(58.242, 0-1)", 60},
		{"round(58.242)", 58},
		{"pow(10, 8)", 100000000},
		{"pow(2, 10)", 1024},
		{"3 * E(2)", 300},
		{"E(0)", 1},
	}
	for _, tc := range cases {
		t.Run(tc.in, func(t *testing.T) {
			got, err := evaluate(t, tc.in, env)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestEvaluateErrors(t *testing.T) {
	env := testEnv(map[string]float64{"a": 1})

	t.Run("division by zero", func(t *testing.T) {
		_, err := evaluate(t, "a / 0", env)
		var derr *DivisionByZeroError
		require.ErrorAs(t, err, &derr)
		assert.Equal(t, 1.0, derr.Numerator)
	})

	t.Run("unknown function", func(t *testing.T) {
		_, err := evaluate(t, "sqrt(2)", env)
		var berr *BadCallError
		require.ErrorAs(t, err, &berr)
		assert.Equal(t, "sqrt", berr.Name)
	})

	t.Run("fractional decimal count", func(t *testing.T) {
		_, err := evaluate(t, "round(a, 1.5)", env)
		var berr *BadCallError
		require.ErrorAs(t, err, &berr)
		assert.Contains(t, berr.Message, "integer")
	})

	t.Run("wrong arity", func(t *testing.T) {
		_, err := evaluate(t, "pow(2)", env)
		var berr *BadCallError
		require.ErrorAs(t, err, &berr)
	})

	t.Run("overflow", func(t *testing.T) {
		_, err := evaluate(t, "pow(10, 400)", env)
		var oerr *NumericOverflowError
		require.ErrorAs(t, err, &oerr)
	})

	t.Run("missing reference", func(t *testing.T) {
		_, err := evaluate(t, "a + missing", env)
		require.Error(t, err)
	})
}

func TestRound(t *testing.T) {
	assert.Equal(t, 1883.81, Round(1883.8090928305920395, 2))
	assert.Equal(t, 60.0, Round(58.242, -1))
	assert.Equal(t, 58.0, Round(58.242, 0))
	// Ties round away from zero.
	assert.Equal(t, 3.0, Round(2.5, 0))
	assert.Equal(t, -3.0, Round(-2.5, 0))
}

func TestPow(t *testing.T) {
	got, err := Pow(10, 8)
	require.NoError(t, err)
	assert.Equal(t, 100000000.0, got)

	_, err = Pow(0, -1)
	var oerr *NumericOverflowError
	require.ErrorAs(t, err, &oerr)
}
