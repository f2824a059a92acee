// Package loader parses serialized data sets (TOML or JSON) into a value
// tree. It is the only package that touches raw data bytes; everything past
// it operates on the tree.
package loader
