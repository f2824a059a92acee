// Package helpers is the library of pure render-time functions (pm, round,
// roundup, sep, upper, lower, pow) invoked by the template renderer. Each
// helper operates on the fully resolved value tree plus its literal
// call-site arguments and returns a string or a number; nesting one call as
// another's argument is plain function composition, so helpers are safe to
// invoke repeatedly and concurrently over the same resolved tree.
package helpers
