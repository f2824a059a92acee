// Package render substitutes {{...}} placeholders in template text with
// values from a resolved data set. A placeholder is either a key-path
// lookup ({{n_measurements}}) or a helper call ({{pm 2 resultant_value}});
// parenthesized subexpressions nest helper calls, evaluated innermost
// first ({{sep (pow 10 8)}}). Rendering is strict: unknown keys, unknown
// helpers and helper failures abort the pass.
package render
