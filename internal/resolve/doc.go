// Package resolve orders and evaluates the expression nodes of a data set.
// It builds a directed graph over the nodes and the key paths they
// reference, then resolves it depth-first with three-color marking so that
// every dependency completes strictly before its dependents and cycles are
// reported with their full path. Resolution is all-or-nothing: the first
// failure aborts the pass.
package resolve
