package render

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zclconf/go-cty/cty"

	"github.com/erikmannerfelt/manus/internal/helpers"
	"github.com/erikmannerfelt/manus/internal/value"
)

func testRenderer(t *testing.T) *Renderer {
	t.Helper()
	store, err := value.NewStore(cty.ObjectVal(map[string]cty.Value{
		"separator":      cty.StringVal(","),
		"title":          cty.StringVal("elevation change"),
		"n_measurements": cty.NumberFloatVal(85819),
		"section": cty.ObjectVal(map[string]cty.Value{
			"resultant_value":    cty.NumberFloatVal(58.242),
			"resultant_value_pm": cty.NumberFloatVal(0.011),
		}),
	}))
	require.NoError(t, err)
	return New(store, helpers.NewLibrary(store, helpers.Options{}))
}

func render(t *testing.T, r *Renderer, line string) string {
	t.Helper()
	out, err := r.RenderLines(context.Background(), []string{line})
	require.NoError(t, err)
	require.Len(t, out, 1)
	return out[0]
}

func TestRenderPlainText(t *testing.T) {
	r := testRenderer(t)
	assert.Equal(t, `\section{Results}`, render(t, r, `\section{Results}`))
	assert.Equal(t, "", render(t, r, ""))
}

func TestRenderLookups(t *testing.T) {
	r := testRenderer(t)

	assert.Equal(t, "The elevation change study", render(t, r, "The {{title}} study"))
	assert.Equal(t, "n = 85819", render(t, r, "n = {{n_measurements}}"))
	assert.Equal(t, "value: 58.242", render(t, r, "value: {{section.resultant_value}}"))
}

func TestRenderHelperCalls(t *testing.T) {
	r := testRenderer(t)

	cases := []struct {
		name string
		in   string
		want string
	}{
		{"pm", "{{pm 2 section.resultant_value}}", `58.24$\pm$0.01`},
		{"round", "{{round 1 section.resultant_value}}", "58.2"},
		{"roundup", "{{roundup 1 section.resultant_value}}", "60"},
		{"sep", "{{sep n_measurements}}", "85,819"},
		{"sep of literal", "{{sep 1234567}}", "1,234,567"},
		{"upper", "{{upper title}}", "ELEVATION CHANGE"},
		{"lower of literal", `{{lower "TeX"}}`, "tex"},
		{"pow", "{{pow 10 8}}", "100000000"},
		{"negative literal", "{{round -1 58.242}}", "60"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, render(t, r, tc.in))
		})
	}
}

func TestRenderChainedHelpers(t *testing.T) {
	r := testRenderer(t)

	// Subexpressions evaluate innermost first and feed the enclosing call.
	assert.Equal(t, "100,000,000", render(t, r, "{{sep (pow 10 8)}}"))
	assert.Equal(t, "60", render(t, r, "{{round (roundup 1 section.resultant_value)}}"))
}

func TestRenderMultiplePlaceholders(t *testing.T) {
	r := testRenderer(t)
	got := render(t, r, "{{upper title}}: {{sep n_measurements}} points")
	assert.Equal(t, "ELEVATION CHANGE: 85,819 points", got)
}

func TestRenderErrors(t *testing.T) {
	r := testRenderer(t)

	t.Run("missing key", func(t *testing.T) {
		_, err := r.RenderLines(context.Background(), []string{"ok", "{{missing_key}}"})
		var rerr *Error
		require.ErrorAs(t, err, &rerr)
		assert.Equal(t, 2, rerr.Line)
		assert.Contains(t, rerr.Message, "missing_key")
	})

	t.Run("unclosed placeholder", func(t *testing.T) {
		_, err := r.RenderLines(context.Background(), []string{"{{title"})
		var rerr *Error
		require.ErrorAs(t, err, &rerr)
		assert.Equal(t, 1, rerr.Line)
		assert.Equal(t, 1, rerr.Column)
		assert.Contains(t, rerr.Message, "unclosed")
	})

	t.Run("not a helper", func(t *testing.T) {
		_, err := r.RenderLines(context.Background(), []string{"{{title extra}}"})
		var rerr *Error
		require.ErrorAs(t, err, &rerr)
		assert.Contains(t, rerr.Message, "not a helper")
	})

	t.Run("empty placeholder", func(t *testing.T) {
		_, err := r.RenderLines(context.Background(), []string{"{{}}"})
		require.Error(t, err)
	})

	t.Run("helper error carries position", func(t *testing.T) {
		_, err := r.RenderLines(context.Background(), []string{"text {{pm section.resultant_value_pm}}"})
		var rerr *Error
		require.ErrorAs(t, err, &rerr)
		assert.Equal(t, 6, rerr.Column)
		var merr *helpers.MissingPairedKeyError
		assert.ErrorAs(t, err, &merr)
	})

	t.Run("table value cannot render", func(t *testing.T) {
		_, err := r.RenderLines(context.Background(), []string{"{{section}}"})
		require.Error(t, err)
	})
}

func TestSplitFields(t *testing.T) {
	fields, err := splitFields(`round 2 (pow 10 8) "quoted text" -1.5`)
	require.NoError(t, err)
	require.Len(t, fields, 5)

	assert.Equal(t, fieldWord, fields[0].kind)
	assert.Equal(t, "round", fields[0].text)
	assert.Equal(t, fieldNumber, fields[1].kind)
	assert.Equal(t, 2.0, fields[1].num)
	assert.Equal(t, fieldSubexpr, fields[2].kind)
	assert.Equal(t, "pow 10 8", fields[2].text)
	assert.Equal(t, fieldString, fields[3].kind)
	assert.Equal(t, "quoted text", fields[3].text)
	assert.Equal(t, fieldNumber, fields[4].kind)
	assert.Equal(t, -1.5, fields[4].num)

	t.Run("unbalanced", func(t *testing.T) {
		_, err := splitFields("(pow 10 8")
		require.Error(t, err)
		_, err = splitFields("pow 10 8)")
		require.Error(t, err)
	})

	t.Run("unterminated string", func(t *testing.T) {
		_, err := splitFields(`upper "oops`)
		require.Error(t, err)
	})
}
