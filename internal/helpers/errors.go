package helpers

import (
	"fmt"

	"github.com/erikmannerfelt/manus/internal/value"
)

// MissingPairedKeyError reports a pm call whose key has no "_pm" sibling
// holding the paired uncertainty.
type MissingPairedKeyError struct {
	Key value.Path
}

func (e *MissingPairedKeyError) Error() string {
	return fmt.Sprintf("no %q key paired with %q", e.Key.Sibling(e.Key.Last()+PairSuffix).String(), e.Key.String())
}

// MissingConfigKeyError reports an absent configuration key that a helper
// requires in the data set.
type MissingConfigKeyError struct {
	Key string
}

func (e *MissingConfigKeyError) Error() string {
	return fmt.Sprintf("the %q key is required in the data set; please add it", e.Key)
}
