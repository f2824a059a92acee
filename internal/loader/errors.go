package loader

import "fmt"

// ParseError reports malformed syntax in a data file. Location is a
// human-readable position ("line 3, column 7" or a byte offset), empty when
// the underlying decoder provides none.
type ParseError struct {
	Location string
	Message  string
}

func (e *ParseError) Error() string {
	if e.Location == "" {
		return fmt.Sprintf("parse error: %s", e.Message)
	}
	return fmt.Sprintf("parse error at %s: %s", e.Location, e.Message)
}

// UnsupportedFormatError reports a declared data format that the loader
// does not understand.
type UnsupportedFormatError struct {
	Format string
}

func (e *UnsupportedFormatError) Error() string {
	return fmt.Sprintf("unsupported data format %q (supported: toml, json)", e.Format)
}
