// Package kpath provides kinded path parsing and printing.
//
// Kinded paths encode both navigation and container kind in the syntax:
//   - field or .field - Object field access
//   - [index] - Array index
//   - .* / [*] - Wildcards
//
// Fields containing path syntax, whitespace or quotes, the empty field and
// fields starting with a digit are written double quoted with Go escapes.
//
// # Path Examples
//
//	"users[0].name"           // Object → array → object field
//	"resources[*].status"     // Wildcard matching
//	"\"a.b\"[2]"              // Quoted field
//	""                        // The root
package kpath
