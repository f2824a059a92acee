// Package expr discovers expression-valued entries in a data set and parses
// them into arithmetic ASTs.
//
// A String value whose content starts with the marker "expr:" is an
// expression node; the remainder is parsed with a small recursive-descent
// grammar:
//
//	expr    := term (('+' | '-') term)*
//	term    := factor (('*' | '/') factor)*
//	factor  := NUMBER | IDENT (dotted) | call | '(' expr ')'
//	call    := IDENT '(' expr (',' expr)* ')'
//
// The grammar has no unary-minus production: a negative literal must be
// written as a subtraction, e.g. "0-1". Identifier factors are recorded as
// dependencies on the corresponding key paths.
package expr
