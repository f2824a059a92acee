// Package eval evaluates parsed arithmetic expressions against an
// environment backed by the data set. It also holds the numeric built-ins
// (round, pow, E) that the render helpers share.
package eval
