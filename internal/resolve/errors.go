package resolve

import (
	"fmt"
	"strings"

	"github.com/erikmannerfelt/manus/internal/value"
)

// UnknownReferenceError reports an expression referencing a key path that
// exists nowhere in the tree.
type UnknownReferenceError struct {
	Referrer value.Path
	Missing  value.Path
}

func (e *UnknownReferenceError) Error() string {
	return fmt.Sprintf("expression at %q references unknown key %q (perhaps a key is misspelled?)",
		e.Referrer.String(), e.Missing.String())
}

// CircularDependencyError reports a dependency chain that returns to its
// starting node. Cycle is the ordered list of key paths around the loop,
// starting at the revisited node.
type CircularDependencyError struct {
	Cycle []value.Path
}

func (e *CircularDependencyError) Error() string {
	parts := make([]string, 0, len(e.Cycle)+1)
	for _, p := range e.Cycle {
		parts = append(parts, p.String())
	}
	if len(e.Cycle) > 0 {
		parts = append(parts, e.Cycle[0].String())
	}
	return fmt.Sprintf("circular dependency: %s", strings.Join(parts, " -> "))
}
