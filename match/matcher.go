package match

import (
	"context"
	"sort"
)

// Matcher runs one compiled pattern against parsed files.
type Matcher struct {
	compiled *Compiled
	oracle   Oracle
}

// New builds a Matcher for compiled, querying oracle for every semantic
// question it needs along the way.
func New(compiled *Compiled, oracle Oracle) *Matcher {
	return &Matcher{compiled: compiled, oracle: oracle}
}

// MatchFile walks ast in pre-order, attempting a fresh unification at every
// node (spec §4.1: "the matcher walks the target AST in pre-order and, at
// each node, attempts a unification"). A node that fails unification simply
// contributes no match; its children are still visited, since a pattern
// might match a nested node even when it doesn't match an ancestor.
func (m *Matcher) MatchFile(file string, ast AST) []Match {
	matches, _ := m.MatchFileContext(context.Background(), file, ast, 0)
	return matches
}

// MatchFileContext is MatchFile with cooperative cancellation: every
// nodeInterval visited nodes (0 disables the check) it polls ctx for
// cancellation, stopping the walk early and reporting cancelled=true (spec
// §5 "subtree granularity every K nodes, default 4096"). Matches already
// accumulated are still returned.
func (m *Matcher) MatchFileContext(ctx context.Context, file string, ast AST, nodeInterval int) (matches []Match, cancelled bool) {
	visited := 0
	var walk func(n ASTNode) bool
	walk = func(n ASTNode) bool {
		visited++
		if nodeInterval > 0 && visited%nodeInterval == 0 {
			select {
			case <-ctx.Done():
				return false
			default:
			}
		}
		u := newUnifier(ast, m.oracle)
		if mm, ok := unifyNode(u, file, n, m.compiled); ok {
			matches = append(matches, mm)
		}
		for _, child := range ast.Children(n) {
			if !walk(child) {
				return false
			}
		}
		return true
	}
	if !walk(ast.Root()) {
		cancelled = true
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Span.Start < matches[j].Span.Start
	})
	return matches, cancelled
}
