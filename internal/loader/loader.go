package loader

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/erikmannerfelt/manus/internal/ctxlog"
	"github.com/erikmannerfelt/manus/internal/value"
	"github.com/pelletier/go-toml/v2"
	"github.com/zclconf/go-cty/cty"
	ctyjson "github.com/zclconf/go-cty/cty/json"
)

// Format identifies a supported serialization format.
type Format string

const (
	FormatTOML Format = "toml"
	FormatJSON Format = "json"
)

// FormatForPath derives the declared format from a file extension.
func FormatForPath(path string) (Format, error) {
	ext := strings.TrimPrefix(filepath.Ext(path), ".")
	switch strings.ToLower(ext) {
	case "toml":
		return FormatTOML, nil
	case "json":
		return FormatJSON, nil
	default:
		return "", &UnsupportedFormatError{Format: ext}
	}
}

// Load parses serialized bytes in the declared format into a value store.
func Load(ctx context.Context, data []byte, format Format) (*value.Store, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Loading data set.", "format", format, "bytes", len(data))

	var (
		root cty.Value
		err  error
	)
	switch format {
	case FormatTOML:
		root, err = decodeTOML(data)
	case FormatJSON:
		root, err = decodeJSON(data)
	default:
		return nil, &UnsupportedFormatError{Format: string(format)}
	}
	if err != nil {
		return nil, err
	}

	store, err := value.NewStore(root)
	if err != nil {
		return nil, &ParseError{Message: err.Error()}
	}
	logger.Debug("Data set loaded.")
	return store, nil
}

// LoadFile reads a data file from disk, deriving the format from its
// extension.
func LoadFile(ctx context.Context, path string) (*value.Store, error) {
	format, err := FormatForPath(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading data file: %w", err)
	}
	return Load(ctx, data, format)
}

// LoadReader reads a data set from a byte stream with no associated path,
// e.g. piped input. Only JSON is accepted from streams.
func LoadReader(ctx context.Context, r io.Reader) (*value.Store, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading piped data: %w", err)
	}
	return Load(ctx, data, FormatJSON)
}

func decodeTOML(data []byte) (cty.Value, error) {
	var raw map[string]any
	if err := toml.Unmarshal(data, &raw); err != nil {
		var derr *toml.DecodeError
		if errors.As(err, &derr) {
			row, col := derr.Position()
			return cty.NilVal, &ParseError{
				Location: fmt.Sprintf("line %d, column %d", row, col),
				Message:  derr.Error(),
			}
		}
		return cty.NilVal, &ParseError{Message: err.Error()}
	}
	root, err := fromAny(raw)
	if err != nil {
		return cty.NilVal, &ParseError{Message: err.Error()}
	}
	return root, nil
}

func decodeJSON(data []byte) (cty.Value, error) {
	ty, err := ctyjson.ImpliedType(data)
	if err != nil {
		return cty.NilVal, jsonParseError(err)
	}
	root, err := ctyjson.Unmarshal(data, ty)
	if err != nil {
		return cty.NilVal, jsonParseError(err)
	}
	return root, nil
}

func jsonParseError(err error) error {
	var serr *json.SyntaxError
	if errors.As(err, &serr) {
		return &ParseError{
			Location: fmt.Sprintf("byte %d", serr.Offset),
			Message:  serr.Error(),
		}
	}
	return &ParseError{Message: err.Error()}
}

// fromAny converts the generic structures produced by the TOML decoder into
// cty values: tables become objects, arrays become tuples.
func fromAny(raw any) (cty.Value, error) {
	switch v := raw.(type) {
	case nil:
		return cty.NullVal(cty.DynamicPseudoType), nil
	case bool:
		return cty.BoolVal(v), nil
	case string:
		return cty.StringVal(v), nil
	case int64:
		return cty.NumberIntVal(v), nil
	case float64:
		return cty.NumberFloatVal(v), nil
	case time.Time:
		return cty.StringVal(v.Format(time.RFC3339)), nil
	case []any:
		if len(v) == 0 {
			return cty.EmptyTupleVal, nil
		}
		elems := make([]cty.Value, len(v))
		for i, e := range v {
			c, err := fromAny(e)
			if err != nil {
				return cty.NilVal, err
			}
			elems[i] = c
		}
		return cty.TupleVal(elems), nil
	case map[string]any:
		if len(v) == 0 {
			return cty.EmptyObjectVal, nil
		}
		attrs := make(map[string]cty.Value, len(v))
		for name, e := range v {
			c, err := fromAny(e)
			if err != nil {
				return cty.NilVal, err
			}
			attrs[name] = c
		}
		return cty.ObjectVal(attrs), nil
	case fmt.Stringer:
		// TOML local date/time types carry their canonical text form.
		return cty.StringVal(v.String()), nil
	default:
		return cty.NilVal, fmt.Errorf("unsupported data value of type %T", raw)
	}
}
