package expr

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePrecedence(t *testing.T) {
	node, err := Parse("1 + 2 * 3")
	require.NoError(t, err)
	assert.Equal(t, "(1 + (2 * 3))", node.String())

	node, err = Parse("100 * small / large")
	require.NoError(t, err)
	assert.Equal(t, "((100 * small) / large)", node.String())
}

func TestParseLeftAssociativity(t *testing.T) {
	node, err := Parse("10 - 4 - 3")
	require.NoError(t, err)
	assert.Equal(t, "((10 - 4) - 3)", node.String())

	node, err = Parse("100 / 10 / 5")
	require.NoError(t, err)
	assert.Equal(t, "((100 / 10) / 5)", node.String())
}

func TestParseParentheses(t *testing.T) {
	node, err := Parse("(1 + 2) * 3")
	require.NoError(t, err)
	assert.Equal(t, "((1 + 2) * 3)", node.String())
}

func TestParseDottedReference(t *testing.T) {
	node, err := Parse("section.resultant_value + 1")
	require.NoError(t, err)

	binary, ok := node.(*BinaryExpr)
	require.True(t, ok)
	ref, ok := binary.LHS.(*Ref)
	require.True(t, ok)
	assert.Equal(t, "section.resultant_value", ref.Path.String())
}

func TestParseCalls(t *testing.T) {
	node, err := Parse("round(100 * n / total, 2)")
	require.NoError(t, err)

	call, ok := node.(*CallExpr)
	require.True(t, ok)
	assert.Equal(t, "round", call.Name)
	assert.Len(t, call.Args, 2)

	t.Run("nested calls", func(t *testing.T) {
		node, err := Parse("3 * E(2)")
		require.NoError(t, err)
		assert.Equal(t, "(3 * E(2))", node.String())
	})
}

func TestParseSyntaxErrors(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "", "expected a number"},
		{"trailing operator", "1 +", "expected a number"},
		{"dangling tokens", "1 2", "unexpected"},
		{"unclosed paren", "(1 + 2", "expected ')'"},
		{"unclosed call", "round(1", "expected ',' or ')'"},
		{"bad character", "1 ? 2", "unexpected character"},
		{"trailing dot", "section. + 1", "ends in a dot"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Parse(tc.in)
			var serr *SyntaxError
			require.ErrorAs(t, err, &serr)
			assert.Contains(t, serr.Message, tc.want)
		})
	}
}

func TestParseNoUnaryMinus(t *testing.T) {
	// The grammar has no unary-minus production; the error points at the
	// documented 0-1 spelling.
	_, err := Parse("-1")
	var serr *SyntaxError
	require.ErrorAs(t, err, &serr)
	assert.Contains(t, serr.Message, "0-1")

	// The subtraction spelling works.
	node, err := Parse("0-1")
	require.NoError(t, err)
	assert.Equal(t, "(0 - 1)", node.String())
}

func TestReferences(t *testing.T) {
	node, err := Parse("b + a + round(c.d, 2) + a")
	require.NoError(t, err)

	refs := References(node)
	require.Len(t, refs, 3)
	assert.Equal(t, "a", refs[0].String())
	assert.Equal(t, "b", refs[1].String())
	assert.Equal(t, "c.d", refs[2].String())
}
