package helpers

import (
	"fmt"
	"math"
	"strconv"

	"github.com/erikmannerfelt/manus/internal/eval"
	"github.com/erikmannerfelt/manus/internal/value"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const (
	// PairSuffix names the sibling key holding a value's uncertainty.
	PairSuffix = "_pm"
	// SeparatorKey is the top-level data key the sep helper reads its
	// digit-group separator token from.
	SeparatorKey = "separator"
	// DefaultPairSeparator joins a value and its uncertainty in TeX output.
	DefaultPairSeparator = `$\pm$`
)

// Arg is one call-site argument: a float64 or string literal, a value.Path
// reference into the tree, or the result of a nested helper call (float64
// or string).
type Arg any

// Options configures a helper library instance.
type Options struct {
	// PairSeparator is the token pm puts between a value and its
	// uncertainty. Empty selects DefaultPairSeparator.
	PairSeparator string
}

// Library exposes the helper functions over one resolved value tree. It
// holds no mutable state.
type Library struct {
	store   *value.Store
	pairSep string
}

// NewLibrary builds a helper library over a fully resolved tree.
func NewLibrary(store *value.Store, opts Options) *Library {
	pairSep := opts.PairSeparator
	if pairSep == "" {
		pairSep = DefaultPairSeparator
	}
	return &Library{store: store, pairSep: pairSep}
}

// Has reports whether name is a known helper.
func (l *Library) Has(name string) bool {
	switch name {
	case "pm", "round", "roundup", "sep", "upper", "lower", "pow":
		return true
	default:
		return false
	}
}

// Call invokes a helper by name. The result is a string or a float64 for
// substitution into the rendered document, or for use as an argument to an
// enclosing call.
func (l *Library) Call(name string, args []Arg) (any, error) {
	switch name {
	case "pm":
		return l.pm(args)
	case "round":
		return l.round(args)
	case "roundup":
		return l.roundup(args)
	case "sep":
		return l.sep(args)
	case "upper":
		return l.caseFold(args, cases.Upper(language.Und))
	case "lower":
		return l.caseFold(args, cases.Lower(language.Und))
	case "pow":
		return l.pow(args)
	default:
		return nil, fmt.Errorf("unknown helper %q", name)
	}
}

// pm formats a value together with its paired uncertainty, optionally
// rounding both: pm([decimals], key).
func (l *Library) pm(args []Arg) (any, error) {
	if len(args) < 1 || len(args) > 2 {
		return nil, fmt.Errorf("pm takes a key and an optional decimal count, got %d arguments", len(args))
	}
	key, ok := args[len(args)-1].(value.Path)
	if !ok {
		return nil, fmt.Errorf("the last argument of pm must be a key, got %v", args[len(args)-1])
	}

	val, err := l.numberAt(key)
	if err != nil {
		return nil, err
	}
	pairKey := key.Sibling(key.Last() + PairSuffix)
	pm, ok := l.store.Number(pairKey)
	if !ok {
		if !l.store.Has(pairKey) {
			return nil, &MissingPairedKeyError{Key: key}
		}
		return nil, l.typeError(pairKey)
	}

	if len(args) == 2 {
		decimals, err := l.intArg(args[0], "pm")
		if err != nil {
			return nil, err
		}
		val = eval.Round(val, decimals)
		pm = eval.Round(pm, decimals)
	}

	return value.FormatNumber(val) + l.pairSep + value.FormatNumber(pm), nil
}

// round rounds to a number of fractional digits: round([decimals], value).
func (l *Library) round(args []Arg) (any, error) {
	decimals, v, err := l.decimalsAndValue(args, "round")
	if err != nil {
		return nil, err
	}
	return eval.Round(v, decimals), nil
}

// roundup rounds toward a power of ten; identical to round with the sign of
// the numeric argument inverted: roundup([power], value).
func (l *Library) roundup(args []Arg) (any, error) {
	power, v, err := l.decimalsAndValue(args, "roundup")
	if err != nil {
		return nil, err
	}
	return eval.Round(v, -power), nil
}

// pow raises a value to an exponent: pow(value, exponent).
func (l *Library) pow(args []Arg) (any, error) {
	if len(args) != 2 {
		return nil, fmt.Errorf("pow takes a value and an exponent, got %d arguments", len(args))
	}
	v, err := l.numberArg(args[0])
	if err != nil {
		return nil, err
	}
	exponent, err := l.numberArg(args[1])
	if err != nil {
		return nil, err
	}
	return eval.Pow(v, exponent)
}

// sep makes large numbers readable by inserting the configured separator
// token every three digits of the integer part. String arguments keep
// their prose and have every embedded number separated.
func (l *Library) sep(args []Arg) (any, error) {
	if len(args) != 1 {
		return nil, fmt.Errorf("sep takes a single value, got %d arguments", len(args))
	}
	sepVal, ok := l.store.Get(value.Path{SeparatorKey})
	if !ok {
		return nil, &MissingConfigKeyError{Key: SeparatorKey}
	}
	if value.Kind(sepVal) != value.KindString {
		return nil, l.typeErrorWanting(value.Path{SeparatorKey}, value.KindString)
	}
	separator := sepVal.AsString()

	switch arg := args[0].(type) {
	case float64:
		return separateNumber(arg, separator), nil
	case string:
		return separateRuns(arg, separator), nil
	case value.Path:
		v, ok := l.store.Get(arg)
		if !ok {
			return nil, fmt.Errorf("key %q not found", arg.String())
		}
		switch value.Kind(v) {
		case value.KindNumber:
			f, _ := v.AsBigFloat().Float64()
			return separateNumber(f, separator), nil
		case value.KindString:
			return separateRuns(v.AsString(), separator), nil
		default:
			return nil, l.typeError(arg)
		}
	default:
		return nil, fmt.Errorf("sep cannot handle %T arguments", args[0])
	}
}

// caseFold implements upper and lower.
func (l *Library) caseFold(args []Arg, caser cases.Caser) (any, error) {
	if len(args) != 1 {
		return nil, fmt.Errorf("case helpers take a single string, got %d arguments", len(args))
	}
	switch arg := args[0].(type) {
	case string:
		return caser.String(arg), nil
	case value.Path:
		v, ok := l.store.Get(arg)
		if !ok {
			return nil, fmt.Errorf("key %q not found", arg.String())
		}
		if value.Kind(v) != value.KindString {
			return nil, l.typeErrorWanting(arg, value.KindString)
		}
		return caser.String(v.AsString()), nil
	default:
		return nil, fmt.Errorf("case helpers cannot handle %T arguments", args[0])
	}
}

// decimalsAndValue unpacks the shared ([decimals], value) argument shape of
// round and roundup.
func (l *Library) decimalsAndValue(args []Arg, name string) (int, float64, error) {
	switch len(args) {
	case 1:
		v, err := l.numberArg(args[0])
		return 0, v, err
	case 2:
		decimals, err := l.intArg(args[0], name)
		if err != nil {
			return 0, 0, err
		}
		v, err := l.numberArg(args[1])
		return decimals, v, err
	default:
		return 0, 0, fmt.Errorf("%s takes a value and an optional count, got %d arguments", name, len(args))
	}
}

// numberArg coerces an argument to a number: numeric literals and nested
// results directly, key references through the tree, and numeric strings by
// parsing.
func (l *Library) numberArg(arg Arg) (float64, error) {
	switch a := arg.(type) {
	case float64:
		return a, nil
	case string:
		f, err := strconv.ParseFloat(a, 64)
		if err != nil {
			return 0, fmt.Errorf("could not parse %q as a number", a)
		}
		return f, nil
	case value.Path:
		return l.numberAt(a)
	default:
		return 0, fmt.Errorf("cannot use a %T as a number", arg)
	}
}

func (l *Library) intArg(arg Arg, name string) (int, error) {
	f, err := l.numberArg(arg)
	if err != nil {
		return 0, err
	}
	if f != math.Trunc(f) {
		return 0, fmt.Errorf("the count argument of %s must be an integer, got %s", name, value.FormatNumber(f))
	}
	return int(f), nil
}

func (l *Library) numberAt(p value.Path) (float64, error) {
	v, ok := l.store.Get(p)
	if !ok {
		return 0, fmt.Errorf("key %q not found", p.String())
	}
	if value.Kind(v) != value.KindNumber {
		return 0, l.typeError(p)
	}
	f, _ := v.AsBigFloat().Float64()
	return f, nil
}

func (l *Library) typeError(p value.Path) error {
	v, _ := l.store.Get(p)
	return &eval.TypeMismatchError{Key: p, Kind: value.Kind(v)}
}

func (l *Library) typeErrorWanting(p value.Path, want string) error {
	v, _ := l.store.Get(p)
	return fmt.Errorf("key %q holds a %s, not a %s", p.String(), value.Kind(v), want)
}
