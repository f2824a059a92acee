package loader

import (
	"context"
	"strings"
	"testing"

	"github.com/erikmannerfelt/manus/internal/value"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatForPath(t *testing.T) {
	format, err := FormatForPath("data.toml")
	require.NoError(t, err)
	assert.Equal(t, FormatTOML, format)

	format, err = FormatForPath("some/dir/data.JSON")
	require.NoError(t, err)
	assert.Equal(t, FormatJSON, format)

	_, err = FormatForPath("data.yaml")
	var unsupported *UnsupportedFormatError
	require.ErrorAs(t, err, &unsupported)
	assert.Equal(t, "yaml", unsupported.Format)
}

func TestLoadTOML(t *testing.T) {
	data := []byte(`
n_measurements = 85819
separator = ","

[section]
resultant_value = 58.242
resultant_value_pm = 0.011
tags = ["a", "b"]
`)
	store, err := Load(context.Background(), data, FormatTOML)
	require.NoError(t, err)

	f, ok := store.Number(value.ParsePath("n_measurements"))
	require.True(t, ok)
	assert.Equal(t, 85819.0, f)

	f, ok = store.Number(value.ParsePath("section.resultant_value_pm"))
	require.True(t, ok)
	assert.Equal(t, 0.011, f)

	v, ok := store.Get(value.ParsePath("section.tags.1"))
	require.True(t, ok)
	assert.Equal(t, "b", v.AsString())
}

func TestLoadTOMLSyntaxError(t *testing.T) {
	_, err := Load(context.Background(), []byte("a = [1, 2\nb = 3"), FormatTOML)
	var perr *ParseError
	require.ErrorAs(t, err, &perr)
	assert.NotEmpty(t, perr.Message)
}

func TestLoadJSON(t *testing.T) {
	data := []byte(`{"year": 2000, "year_str": "two thousand", "nested": {"v": 1.5}, "null_key": null}`)
	store, err := Load(context.Background(), data, FormatJSON)
	require.NoError(t, err)

	f, ok := store.Number(value.ParsePath("year"))
	require.True(t, ok)
	assert.Equal(t, 2000.0, f)

	v, ok := store.Get(value.ParsePath("year_str"))
	require.True(t, ok)
	assert.Equal(t, "two thousand", v.AsString())

	f, ok = store.Number(value.ParsePath("nested.v"))
	require.True(t, ok)
	assert.Equal(t, 1.5, f)

	v, ok = store.Get(value.ParsePath("null_key"))
	require.True(t, ok)
	assert.Equal(t, value.KindNull, value.Kind(v))
}

func TestLoadJSONSyntaxError(t *testing.T) {
	_, err := Load(context.Background(), []byte(`{"a": 1,}`), FormatJSON)
	var perr *ParseError
	require.ErrorAs(t, err, &perr)
}

func TestLoadUnsupportedFormat(t *testing.T) {
	_, err := Load(context.Background(), []byte("whatever"), Format("yaml"))
	var unsupported *UnsupportedFormatError
	require.ErrorAs(t, err, &unsupported)
}

func TestLoadReaderIsJSONOnly(t *testing.T) {
	store, err := LoadReader(context.Background(), strings.NewReader(`{"piped": true}`))
	require.NoError(t, err)
	v, ok := store.Get(value.ParsePath("piped"))
	require.True(t, ok)
	assert.Equal(t, value.KindBool, value.Kind(v))

	// TOML through a pipe is a parse error, not silently accepted.
	_, err = LoadReader(context.Background(), strings.NewReader("key = 1"))
	var perr *ParseError
	assert.ErrorAs(t, err, &perr)
}

func TestLoadRejectsNonTableRoot(t *testing.T) {
	_, err := Load(context.Background(), []byte(`[1, 2, 3]`), FormatJSON)
	var perr *ParseError
	require.ErrorAs(t, err, &perr)
	assert.Contains(t, perr.Message, "table")
}
