// Package match implements the structural matcher (C4): it walks a parsed
// target-language AST in pre-order and, at every node, attempts to unify a
// compiled pattern against that node's extent, producing Match records with
// captured bindings.
//
// The package never imports a concrete AST representation. It talks to the
// outside world through two small interfaces supplied by the caller: AST
// (structural traversal) and Oracle (the semantic/syntactic questions the
// spec's external interface names — spec §6). Concrete language front-ends
// (package providers/...) implement both over github.com/smacker/go-tree-sitter.
package match
