package expr

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zclconf/go-cty/cty"

	"github.com/erikmannerfelt/manus/internal/value"
)

func TestIsExpression(t *testing.T) {
	assert.True(t, IsExpression("expr: 1 + 2"))
	assert.True(t, IsExpression("  expr: a * b  "))
	assert.False(t, IsExpression("plain text"))
	assert.False(t, IsExpression("an expr: in the middle"))
}

func TestTrimExpression(t *testing.T) {
	raw, ok := trimExpression("expr:  round(a, 2) ")
	require.True(t, ok)
	assert.Equal(t, "round(a, 2)", raw)
}

func TestExtract(t *testing.T) {
	store, err := value.NewStore(cty.ObjectVal(map[string]cty.Value{
		"total": cty.NumberFloatVal(200),
		"half":  cty.StringVal("expr: total / 2"),
		"label": cty.StringVal("not an expression"),
		"nested": cty.ObjectVal(map[string]cty.Value{
			"double": cty.StringVal("expr: total * 2"),
		}),
	}))
	require.NoError(t, err)

	nodes, err := Extract(context.Background(), store)
	require.NoError(t, err)
	require.Len(t, nodes, 2)

	// Walk order is deterministic: sorted table keys.
	assert.Equal(t, "half", nodes[0].Path.String())
	assert.Equal(t, "total / 2", nodes[0].Raw)
	assert.Equal(t, StateUnresolved, nodes[0].State)
	require.Len(t, nodes[0].Deps, 1)
	assert.Equal(t, "total", nodes[0].Deps[0].String())

	assert.Equal(t, "nested.double", nodes[1].Path.String())
}

func TestExtractSyntaxErrorCarriesPath(t *testing.T) {
	store, err := value.NewStore(cty.ObjectVal(map[string]cty.Value{
		"bad": cty.StringVal("expr: 1 +"),
	}))
	require.NoError(t, err)

	_, err = Extract(context.Background(), store)
	var serr *SyntaxError
	require.ErrorAs(t, err, &serr)
	assert.Equal(t, "bad", serr.Path.String())
	assert.Contains(t, serr.Error(), `"bad"`)
}
