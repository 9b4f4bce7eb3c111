// Package pattern turns a pattern string — ordinary target-language source
// interleaved with named holes like $arg$ or $v:regex=temp.*$ — into a typed
// AST of literal fragments and placeholders.
//
// This package owns the pattern grammar (C1), the pattern AST (C2) and the
// constraint model (C3). It has no dependency on any concrete target
// language or AST; constraints that need semantic information (the Type
// constraint) are validated against a Candidate supplied by the caller
// rather than against a concrete node type, so this package never imports
// the matcher.
package pattern
