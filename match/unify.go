package match

import (
	"strings"

	"github.com/oxhq/sgrep/pattern"
)

// unifier carries the per-node state needed while unifying a compiled
// pattern's node sequence against a single target AST node: the oracle and
// AST it can query, and the binding set it is incrementally building.
type unifier struct {
	ast      AST
	oracle   Oracle
	bindings BindingSet
}

func newUnifier(ast AST, oracle Oracle) *unifier {
	return &unifier{ast: ast, oracle: oracle, bindings: make(BindingSet)}
}

// stageBinding records candidate under name, rejecting it if it conflicts
// with an existing binding of the same name. It returns a rollback func
// that undoes the staging so the caller can backtrack.
func (u *unifier) stageBinding(name string, candidate Binding) (rollback func(), ok bool) {
	if !u.bindings.consistent(name, candidate) {
		return nil, false
	}
	_, existed := u.bindings[name]
	prev := u.bindings[name]
	u.bindings[name] = candidate
	return func() {
		if existed {
			u.bindings[name] = prev
		} else {
			delete(u.bindings, name)
		}
	}, true
}

// unifyNode attempts to unify compiled against n, returning a populated
// Match on success.
func unifyNode(u *unifier, file string, n ASTNode, compiled *Compiled) (Match, bool) {
	nodes := compiled.Pattern.Nodes
	if len(nodes) == 0 {
		return Match{}, false
	}
	if len(nodes) == 1 {
		if ph, ok := nodes[0].(*pattern.Placeholder); ok {
			return unifySinglePlaceholder(u, file, n, ph)
		}
		lit := nodes[0].(*pattern.Literal)
		return unifyWholeLiteral(u, file, n, lit)
	}
	return unifySequence(u, file, n, nodes)
}

// unifySinglePlaceholder handles the case where the whole pattern is one
// placeholder: it captures n in its entirety (spec §4.3 case 1).
func unifySinglePlaceholder(u *unifier, file string, n ASTNode, ph *pattern.Placeholder) (Match, bool) {
	oracle := u.oracle
	var binding Binding

	if ph.Kind == pattern.KindArguments {
		args, ok := oracle.ArgumentsOf(n)
		if !ok {
			return Match{}, false
		}
		rendered := renderArgs(oracle, args)
		canonArgs := canonicalizeArgs(oracle, args, rendered)
		cand := pattern.Candidate{Text: strings.Join(canonArgs, ", "), Arguments: canonArgs}
		if !validateAll(ph.Constraints, cand) {
			return Match{}, false
		}
		binding = Binding{Text: strings.Join(rendered, ", "), Canonical: cand.Text, Nodes: args, IsArguments: true}
	} else {
		if !kindCompatible(oracle, n, ph.Kind) {
			return Match{}, false
		}
		text := oracle.PrintSurface(n)
		canon := canonicalizeValue(oracle, n, text)
		cand := pattern.Candidate{Text: canon, ResolveType: func() (string, bool) { return oracle.ResolveType(n) }}
		if !validateAll(ph.Constraints, cand) {
			return Match{}, false
		}
		binding = Binding{Text: text, Canonical: canon, Node: n}
	}

	rollback, ok := u.stageBinding(ph.Name, binding)
	if !ok {
		return Match{}, false
	}
	_ = rollback // nothing else competes for this name in a one-placeholder pattern

	start, end := oracle.SourceSpan(n)
	return newMatch(file, n, pattern.Span{Start: start, End: end}, u.bindings), true
}

func unifyWholeLiteral(u *unifier, file string, n ASTNode, lit *pattern.Literal) (Match, bool) {
	oracle := u.oracle
	nodeText := oracle.PrintSurface(n)
	nodeCanon, _ := canonicalize(nodeText, stringLiteralSpans(oracle.TokensOf(n), spanStart(oracle, n)))
	if nodeCanon != canonicalizeLiteral(lit.Text) {
		return Match{}, false
	}
	start, end := oracle.SourceSpan(n)
	return newMatch(file, n, pattern.Span{Start: start, End: end}, u.bindings), true
}

// unifySequence handles the general case: an alternating run of literal and
// placeholder pattern nodes matched against n's reconstructed surface text
// (spec §4.3 case 2).
func unifySequence(u *unifier, file string, n ASTNode, nodes []pattern.Node) (Match, bool) {
	oracle := u.oracle
	start, end := oracle.SourceSpan(n)
	raw := oracle.PrintSurface(n)
	protected := stringLiteralSpans(oracle.TokensOf(n), start)
	canon, toOrig := canonicalize(raw, protected)

	ctx := &seqCtx{u: u, n: n, canon: canon, toOrig: toOrig, nodeStart: start}
	if !ctx.tryMatch(nodes, 0, 0) {
		return Match{}, false
	}
	return newMatch(file, n, pattern.Span{Start: start, End: end}, u.bindings), true
}

type seqCtx struct {
	u         *unifier
	n         ASTNode
	canon     string
	toOrig    []int
	nodeStart int
}

func (c *seqCtx) tryMatch(nodes []pattern.Node, pos, cursor int) bool {
	if pos == len(nodes) {
		return cursor == len(c.canon)
	}
	switch node := nodes[pos].(type) {
	case *pattern.Literal:
		canonLit := canonicalizeLiteral(node.Text)
		if canonLit == "" {
			return c.tryMatch(nodes, pos+1, cursor)
		}
		if !strings.HasPrefix(c.canon[cursor:], canonLit) {
			return false
		}
		return c.tryMatch(nodes, pos+1, cursor+len(canonLit))

	case *pattern.Placeholder:
		if pos+1 >= len(nodes) {
			return c.bindAndContinue(node, pos, cursor, len(c.canon), nodes, pos+1, len(c.canon))
		}
		nextLit := nodes[pos+1].(*pattern.Literal)
		canonLit := canonicalizeLiteral(nextLit.Text)
		if canonLit == "" {
			return c.bindAndContinue(node, pos, cursor, cursor, nodes, pos+1, cursor)
		}
		for _, occ := range findAllIndices(c.canon, cursor, canonLit) {
			if c.bindAndContinue(node, pos, cursor, occ, nodes, pos+2, occ+len(canonLit)) {
				return true
			}
		}
		return false
	}
	return false
}

// bindAndContinue attempts to bind placeholder ph (found at phPos in nodes)
// to the capture [capStart, capEnd) of the canonical text, then recurses
// into the rest of the sequence at (nextPos, nextCursor). On failure of
// either step it rolls back the tentative binding so sibling candidates can
// be tried.
func (c *seqCtx) bindAndContinue(ph *pattern.Placeholder, phPos int, capStart, capEnd int, nodes []pattern.Node, nextPos, nextCursor int) bool {
	oracle := c.u.oracle
	origStart := c.nodeStart + c.toOrig[capStart]
	origEnd := c.nodeStart + c.toOrig[capEnd]
	text := sourceSlice(oracle, c.n, c.nodeStart, origStart, origEnd)

	var binding Binding

	if ph.Kind == pattern.KindArguments || isParenWrapped(nodes, phPos) {
		if args, ok := resolveArguments(c.u.ast, oracle, c.n, origStart, origEnd); ok {
			rendered := renderArgs(oracle, args)
			canonArgs := canonicalizeArgs(oracle, args, rendered)
			cand := pattern.Candidate{Text: strings.Join(canonArgs, ", "), Arguments: canonArgs}
			if !validateAll(ph.Constraints, cand) {
				return false
			}
			binding = Binding{Text: strings.Join(rendered, ", "), Canonical: cand.Text, Nodes: args, IsArguments: true}
		} else if ph.Kind == pattern.KindArguments {
			return false
		}
	}

	if binding.Nodes == nil && !binding.IsArguments {
		var sub ASTNode
		if ph.Kind != pattern.KindAny {
			found, ok := findDescendant(c.u.ast, c.n, oracle, origStart, origEnd)
			if !ok || !kindCompatible(oracle, found, ph.Kind) {
				return false
			}
			sub = found
		}
		canon := c.canon[capStart:capEnd]
		cand := pattern.Candidate{Text: canon}
		if sub != nil {
			cand.ResolveType = func() (string, bool) { return oracle.ResolveType(sub) }
		}
		if !validateAll(ph.Constraints, cand) {
			return false
		}
		binding = Binding{Text: text, Canonical: canon, Node: sub}
	}

	rollback, ok := c.u.stageBinding(ph.Name, binding)
	if !ok {
		return false
	}
	if c.tryMatch(nodes, nextPos, nextCursor) {
		return true
	}
	rollback()
	return false
}

// isParenWrapped reports whether the placeholder at index phPos in nodes is
// immediately bounded by a "(" literal ending and a ")" literal beginning,
// the shorthand a pattern author relies on when writing e.g.
// "string.Format($args$)" without spelling out kind=args explicitly.
func isParenWrapped(nodes []pattern.Node, phPos int) bool {
	if phPos < 0 || phPos >= len(nodes) {
		return false
	}
	if phPos-1 < 0 || phPos+1 >= len(nodes) {
		return false
	}
	prev, ok1 := nodes[phPos-1].(*pattern.Literal)
	next, ok2 := nodes[phPos+1].(*pattern.Literal)
	if !ok1 || !ok2 {
		return false
	}
	return strings.HasSuffix(strings.TrimRight(prev.Text, " \t\n\r"), "(") &&
		strings.HasPrefix(strings.TrimLeft(next.Text, " \t\n\r"), ")")
}

// resolveArguments looks for an Arguments capture covering [origStart,
// origEnd): first a descendant node whose own ArgumentsOf succeeds, then n
// itself, matching the most common case where n is the call/declaration
// node and the capture spans its entire argument list.
func resolveArguments(ast AST, oracle Oracle, n ASTNode, origStart, origEnd int) ([]ASTNode, bool) {
	if found, ok := findDescendant(ast, n, oracle, origStart, origEnd); ok {
		if args, ok := oracle.ArgumentsOf(found); ok {
			return args, true
		}
	}
	return oracle.ArgumentsOf(n)
}

// findDescendant walks n's subtree looking for a node whose exact source
// span is [origStart, origEnd).
func findDescendant(ast AST, n ASTNode, oracle Oracle, origStart, origEnd int) (ASTNode, bool) {
	if s, e := oracle.SourceSpan(n); s == origStart && e == origEnd {
		return n, true
	}
	for _, child := range ast.Children(n) {
		s, e := oracle.SourceSpan(child)
		if e < origStart || s > origEnd {
			continue
		}
		if found, ok := findDescendant(ast, child, oracle, origStart, origEnd); ok {
			return found, true
		}
	}
	return nil, false
}

func renderArgs(oracle Oracle, args []ASTNode) []string {
	out := make([]string, len(args))
	for i, a := range args {
		out[i] = oracle.PrintSurface(a)
	}
	return out
}

func validateAll(constraints []pattern.Constraint, cand pattern.Candidate) bool {
	for _, c := range constraints {
		if !c.Validate(cand) {
			return false
		}
	}
	return true
}

func findAllIndices(s string, from int, needle string) []int {
	var out []int
	for i := from; ; {
		idx := strings.Index(s[i:], needle)
		if idx < 0 {
			return out
		}
		out = append(out, i+idx)
		i = i + idx + 1
		if i > len(s) {
			return out
		}
	}
}

func spanStart(oracle Oracle, n ASTNode) int {
	s, _ := oracle.SourceSpan(n)
	return s
}

// sourceSlice extracts the original-source text for [origStart, origEnd)
// from n's own PrintSurface rendering, which is the only window onto raw
// source text this package has (it never reads file contents directly).
func sourceSlice(oracle Oracle, n ASTNode, nodeStart, origStart, origEnd int) string {
	raw := oracle.PrintSurface(n)
	rs, re := origStart-nodeStart, origEnd-nodeStart
	if rs < 0 {
		rs = 0
	}
	if re > len(raw) {
		re = len(raw)
	}
	if rs > re {
		return ""
	}
	return raw[rs:re]
}
