package expr

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

type tokenKind int

const (
	tokenEOF tokenKind = iota
	tokenNumber
	tokenIdent
	tokenPlus
	tokenMinus
	tokenStar
	tokenSlash
	tokenLParen
	tokenRParen
	tokenComma
)

type token struct {
	kind tokenKind
	pos  int // byte offset in the raw expression text
	text string
	num  float64 // valid for tokenNumber
}

func (t token) describe() string {
	if t.kind == tokenEOF {
		return "end of expression"
	}
	return fmt.Sprintf("%q", t.text)
}

// tokenize splits raw expression text into tokens. Identifiers may be
// dotted (a key path); numbers are unsigned decimal literals.
func tokenize(raw string) ([]token, error) {
	var tokens []token
	i := 0
	for i < len(raw) {
		c := raw[i]
		switch {
		case c == ' ' || c == '\t':
			i++
		case c == '+':
			tokens = append(tokens, token{kind: tokenPlus, pos: i, text: "+"})
			i++
		case c == '-':
			tokens = append(tokens, token{kind: tokenMinus, pos: i, text: "-"})
			i++
		case c == '*':
			tokens = append(tokens, token{kind: tokenStar, pos: i, text: "*"})
			i++
		case c == '/':
			tokens = append(tokens, token{kind: tokenSlash, pos: i, text: "/"})
			i++
		case c == '(':
			tokens = append(tokens, token{kind: tokenLParen, pos: i, text: "("})
			i++
		case c == ')':
			tokens = append(tokens, token{kind: tokenRParen, pos: i, text: ")"})
			i++
		case c == ',':
			tokens = append(tokens, token{kind: tokenComma, pos: i, text: ","})
			i++
		case c >= '0' && c <= '9':
			start := i
			for i < len(raw) && raw[i] >= '0' && raw[i] <= '9' {
				i++
			}
			if i < len(raw) && raw[i] == '.' {
				i++
				if i >= len(raw) || raw[i] < '0' || raw[i] > '9' {
					return nil, &SyntaxError{Pos: start, Message: "malformed number"}
				}
				for i < len(raw) && raw[i] >= '0' && raw[i] <= '9' {
					i++
				}
			}
			text := raw[start:i]
			num, err := strconv.ParseFloat(text, 64)
			if err != nil {
				return nil, &SyntaxError{Pos: start, Message: fmt.Sprintf("malformed number %q", text)}
			}
			tokens = append(tokens, token{kind: tokenNumber, pos: start, text: text, num: num})
		case isIdentStart(rune(c)):
			start := i
			for i < len(raw) && isIdentPart(rune(raw[i])) {
				i++
			}
			// A dot continues the identifier into a dotted key path.
			for i < len(raw) && raw[i] == '.' {
				if i+1 >= len(raw) || !isIdentPart(rune(raw[i+1])) {
					return nil, &SyntaxError{Pos: i, Message: "key path ends in a dot"}
				}
				i++
				for i < len(raw) && isIdentPart(rune(raw[i])) {
					i++
				}
			}
			tokens = append(tokens, token{kind: tokenIdent, pos: start, text: raw[start:i]})
		default:
			return nil, &SyntaxError{Pos: i, Message: fmt.Sprintf("unexpected character %q", string(raw[i]))}
		}
	}
	tokens = append(tokens, token{kind: tokenEOF, pos: len(raw)})
	return tokens, nil
}

func isIdentStart(r rune) bool {
	return r == '_' || unicode.IsLetter(r)
}

func isIdentPart(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

// trimExpression reports whether a string value carries the expression
// marker, and returns the expression text with the marker stripped.
func trimExpression(s string) (string, bool) {
	trimmed := strings.TrimSpace(s)
	if !strings.HasPrefix(trimmed, Marker) {
		return "", false
	}
	return strings.TrimSpace(strings.TrimPrefix(trimmed, Marker)), true
}
