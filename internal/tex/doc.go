// Package tex handles TeX source plumbing around the data pipeline:
// recursive merging of \input clauses and invocation of the external
// document compiler.
package tex
