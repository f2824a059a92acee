package value

import "strings"

// Path is a dotted key path addressing a location in the value tree, e.g.
// "section.resultant_value". A segment that parses as a decimal integer
// indexes into an array when traversal reaches one.
type Path []string

// ParsePath splits a dotted key path string into its segments.
func ParsePath(s string) Path {
	return Path(strings.Split(s, "."))
}

// String returns the canonical dotted form of the path.
func (p Path) String() string {
	return strings.Join(p, ".")
}

// Parent returns the path with its last segment removed. The parent of a
// top-level key is the empty path (the root table).
func (p Path) Parent() Path {
	if len(p) == 0 {
		return nil
	}
	parent := make(Path, len(p)-1)
	copy(parent, p[:len(p)-1])
	return parent
}

// Last returns the final segment of the path, or "" for the root.
func (p Path) Last() string {
	if len(p) == 0 {
		return ""
	}
	return p[len(p)-1]
}

// Child returns a new path with the given segment appended.
func (p Path) Child(name string) Path {
	child := make(Path, len(p), len(p)+1)
	copy(child, p)
	return append(child, name)
}

// Sibling returns a path addressing another name in the same parent table.
func (p Path) Sibling(name string) Path {
	return p.Parent().Child(name)
}
