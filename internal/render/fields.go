package render

import (
	"fmt"
	"strconv"
	"strings"
)

type fieldKind int

const (
	fieldWord fieldKind = iota
	fieldNumber
	fieldString
	fieldSubexpr
)

type field struct {
	kind fieldKind
	text string
	num  float64 // valid for fieldNumber
}

// splitFields tokenizes the contents of a placeholder into whitespace
// separated fields: bare words (helper names or key paths), numbers
// (negative allowed at render time), quoted strings and parenthesized
// subexpressions.
func splitFields(inner string) ([]field, error) {
	var fields []field
	s := strings.TrimSpace(inner)
	i := 0
	for i < len(s) {
		c := s[i]
		switch {
		case c == ' ' || c == '\t':
			i++
		case c == '(':
			depth := 0
			start := i
			for ; i < len(s); i++ {
				if s[i] == '(' {
					depth++
				} else if s[i] == ')' {
					depth--
					if depth == 0 {
						break
					}
				}
			}
			if depth != 0 {
				return nil, fmt.Errorf("unbalanced parentheses in placeholder")
			}
			fields = append(fields, field{kind: fieldSubexpr, text: s[start+1 : i]})
			i++
		case c == '"' || c == '\'':
			quote := c
			end := strings.IndexByte(s[i+1:], quote)
			if end < 0 {
				return nil, fmt.Errorf("unterminated string in placeholder")
			}
			fields = append(fields, field{kind: fieldString, text: s[i+1 : i+1+end]})
			i += end + 2
		case c == '-' || (c >= '0' && c <= '9'):
			start := i
			if c == '-' {
				i++
			}
			for i < len(s) && (s[i] >= '0' && s[i] <= '9' || s[i] == '.') {
				i++
			}
			text := s[start:i]
			num, err := strconv.ParseFloat(text, 64)
			if err != nil {
				return nil, fmt.Errorf("malformed number %q in placeholder", text)
			}
			fields = append(fields, field{kind: fieldNumber, text: text, num: num})
		case c == ')':
			return nil, fmt.Errorf("unbalanced parentheses in placeholder")
		default:
			start := i
			for i < len(s) && s[i] != ' ' && s[i] != '\t' && s[i] != '(' && s[i] != ')' {
				i++
			}
			fields = append(fields, field{kind: fieldWord, text: s[start:i]})
		}
	}
	return fields, nil
}
