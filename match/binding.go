package match

// Binding is what a single placeholder captured. Text holds the captured
// surface form exactly as it appears in the source, used for substitution
// into a replacement template. Canonical holds the same text after the
// §4.1 whitespace canonicalization, used for constraint validation and for
// repeated-name consistency checks, so that two occurrences differing only
// in interior whitespace are still treated as the same capture.
// Node and Nodes are populated when the capture corresponds to concrete
// AST nodes, letting callers (package plan) reason about structure instead
// of raw text when they need to.
type Binding struct {
	Text        string
	Canonical   string
	Node        ASTNode
	Nodes       []ASTNode
	IsArguments bool
}

// BindingSet is the full set of captures produced by one successful
// unification, keyed by placeholder name.
type BindingSet map[string]Binding

// consistent reports whether adding candidate under name would conflict
// with a binding already present in the set. A repeated placeholder name
// must capture byte-equal text *after whitespace canonicalization* (spec
// §8 property 3), so two captures of the same sub-expression differing
// only in interior whitespace still agree.
func (bs BindingSet) consistent(name string, candidate Binding) bool {
	existing, ok := bs[name]
	if !ok {
		return true
	}
	return existing.Canonical == candidate.Canonical
}
