// Package value holds the in-memory representation of a loaded data set: a
// hierarchical tree of cty values addressed by dotted key paths. The Store
// owns the root of the tree and is the only way the rest of the pipeline
// reads or replaces values in it.
package value
