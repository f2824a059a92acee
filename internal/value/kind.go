package value

import (
	"fmt"
	"strconv"

	"github.com/zclconf/go-cty/cty"
)

// The kinds a tree value can have. These names appear in user-facing
// diagnostics, e.g. TypeMismatchError.
const (
	KindNull   = "null"
	KindBool   = "bool"
	KindNumber = "number"
	KindString = "string"
	KindArray  = "array"
	KindTable  = "table"
)

// Kind classifies a cty value into one of the tree's kinds.
func Kind(v cty.Value) string {
	if v.IsNull() {
		return KindNull
	}
	t := v.Type()
	switch {
	case t == cty.Bool:
		return KindBool
	case t == cty.Number:
		return KindNumber
	case t == cty.String:
		return KindString
	case t.IsTupleType() || t.IsListType() || t.IsSetType():
		return KindArray
	case t.IsObjectType() || t.IsMapType():
		return KindTable
	default:
		return t.FriendlyName()
	}
}

// FormatNumber renders a number the way it appears in output documents:
// the shortest decimal form that round-trips, never in exponent notation.
func FormatNumber(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// FormatScalar renders a scalar value for substitution into a document.
// Containers and nulls have no textual form and return an error.
func FormatScalar(v cty.Value) (string, error) {
	switch Kind(v) {
	case KindString:
		return v.AsString(), nil
	case KindNumber:
		f, _ := v.AsBigFloat().Float64()
		return FormatNumber(f), nil
	case KindBool:
		return strconv.FormatBool(v.True()), nil
	default:
		return "", fmt.Errorf("a %s value has no textual form", Kind(v))
	}
}
