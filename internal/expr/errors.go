package expr

import (
	"fmt"

	"github.com/erikmannerfelt/manus/internal/value"
)

// SyntaxError reports malformed expression text. Path is the key path of
// the offending value (filled in by the extractor); Pos is the byte offset
// into the expression text, after the marker.
type SyntaxError struct {
	Path    value.Path
	Pos     int
	Message string
}

func (e *SyntaxError) Error() string {
	if len(e.Path) == 0 {
		return fmt.Sprintf("invalid expression at column %d: %s", e.Pos+1, e.Message)
	}
	return fmt.Sprintf("invalid expression in %q at column %d: %s", e.Path.String(), e.Pos+1, e.Message)
}
