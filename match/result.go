package match

import "github.com/oxhq/sgrep/pattern"

// Match is one successful unification of a compiled pattern against a node
// of a target AST.
type Match struct {
	File     string
	Node     ASTNode
	Span     pattern.Span
	Bindings BindingSet
}

func newMatch(file string, n ASTNode, span pattern.Span, bindings BindingSet) Match {
	// Bindings is snapshotted so later backtracking elsewhere in the walk
	// (a different node's attempt) can never mutate a match already
	// reported for this node.
	snap := make(BindingSet, len(bindings))
	for k, v := range bindings {
		snap[k] = v
	}
	return Match{File: file, Node: n, Span: span, Bindings: snap}
}
