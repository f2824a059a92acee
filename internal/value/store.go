package value

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/zclconf/go-cty/cty"
)

// Store owns the root of a value tree. During resolution it is exclusively
// owned by the pipeline and mutated through Set; afterwards it is handed to
// the renderer as a read-only structure.
type Store struct {
	root cty.Value
}

// NewStore wraps a root value. The root must be a table.
func NewStore(root cty.Value) (*Store, error) {
	if Kind(root) != KindTable {
		return nil, fmt.Errorf("root of a data set must be a table, got %s", Kind(root))
	}
	return &Store{root: root}, nil
}

// Root returns the current root of the tree.
func (s *Store) Root() cty.Value {
	return s.root
}

// Get returns the value at the given path, and whether the path exists.
func (s *Store) Get(p Path) (cty.Value, bool) {
	cur := s.root
	for _, seg := range p {
		next, ok := step(cur, seg)
		if !ok {
			return cty.NilVal, false
		}
		cur = next
	}
	return cur, true
}

// Has reports whether the given path exists anywhere in the tree.
func (s *Store) Has(p Path) bool {
	_, ok := s.Get(p)
	return ok
}

// Number returns the float64 at the given path. The second return reports
// whether the path exists and holds a number.
func (s *Store) Number(p Path) (float64, bool) {
	v, ok := s.Get(p)
	if !ok || Kind(v) != KindNumber {
		return 0, false
	}
	f, _ := v.AsBigFloat().Float64()
	return f, true
}

// Set replaces the value at an existing path. cty values are immutable, so
// the containers along the path are rebuilt and the root is swapped; the
// Store is the sole owner of the root, making this observably identical to
// in-place mutation.
func (s *Store) Set(p Path, v cty.Value) error {
	if len(p) == 0 {
		return fmt.Errorf("cannot replace the root of the tree")
	}
	newRoot, err := setIn(s.root, p, v)
	if err != nil {
		return fmt.Errorf("setting %s: %w", p, err)
	}
	s.root = newRoot
	return nil
}

// Walk visits every value in the tree depth-first, tables before their
// entries, in a deterministic order (table names sorted, arrays by index).
// Returning an error from fn aborts the walk.
func (s *Store) Walk(fn func(p Path, v cty.Value) error) error {
	return walk(nil, s.root, fn)
}

func walk(p Path, v cty.Value, fn func(Path, cty.Value) error) error {
	if err := fn(p, v); err != nil {
		return err
	}
	switch Kind(v) {
	case KindTable:
		m := v.AsValueMap()
		names := make([]string, 0, len(m))
		for name := range m {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			if err := walk(p.Child(name), m[name], fn); err != nil {
				return err
			}
		}
	case KindArray:
		for i, elem := range v.AsValueSlice() {
			if err := walk(p.Child(strconv.Itoa(i)), elem, fn); err != nil {
				return err
			}
		}
	}
	return nil
}

// step descends one segment from a container value.
func step(v cty.Value, seg string) (cty.Value, bool) {
	switch Kind(v) {
	case KindTable:
		if !v.Type().HasAttribute(seg) {
			return cty.NilVal, false
		}
		return v.GetAttr(seg), true
	case KindArray:
		i, err := strconv.Atoi(seg)
		if err != nil || i < 0 || i >= v.LengthInt() {
			return cty.NilVal, false
		}
		return v.AsValueSlice()[i], true
	default:
		return cty.NilVal, false
	}
}

func setIn(v cty.Value, p Path, nv cty.Value) (cty.Value, error) {
	if len(p) == 0 {
		return nv, nil
	}
	seg := p[0]
	switch Kind(v) {
	case KindTable:
		m := v.AsValueMap()
		child, ok := m[seg]
		if !ok {
			return cty.NilVal, fmt.Errorf("key %q not found", seg)
		}
		newChild, err := setIn(child, p[1:], nv)
		if err != nil {
			return cty.NilVal, err
		}
		m[seg] = newChild
		return cty.ObjectVal(m), nil
	case KindArray:
		i, err := strconv.Atoi(seg)
		if err != nil || i < 0 || i >= v.LengthInt() {
			return cty.NilVal, fmt.Errorf("index %q out of range", seg)
		}
		elems := v.AsValueSlice()
		newElem, err := setIn(elems[i], p[1:], nv)
		if err != nil {
			return cty.NilVal, err
		}
		elems[i] = newElem
		return cty.TupleVal(elems), nil
	default:
		return cty.NilVal, fmt.Errorf("%s is not a container", Kind(v))
	}
}
