// Package app wires the data resolution pipeline together: it loads a data
// set, extracts and resolves its expressions, and renders template lines
// against the resolved tree. The CLI layer translates flags into a Config
// and calls into App; App owns the configured logger.
package app
