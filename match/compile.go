package match

import "github.com/oxhq/sgrep/pattern"

// Compiled is a pattern that has passed the structural checks the matcher
// needs before it can be run against any AST.
type Compiled struct {
	Pattern *pattern.Pattern
}

// Compile validates p and returns a Compiled pattern ready for matching.
//
// The only check performed here — rather than lazily while walking the
// AST — is the adjacent-placeholder check: whether a node matches is a
// property of the target AST, but whether a pattern even has a well-defined
// reading is a property of the pattern text alone. Two placeholders with no
// literal anchor between them leave the boundary between their captures
// undecidable no matter what node they are matched against, so this is
// rejected once, up front.
func Compile(p *pattern.Pattern) (*Compiled, error) {
	for i := 0; i+1 < len(p.Nodes); i++ {
		_, a := p.Nodes[i].(*pattern.Placeholder)
		_, b := p.Nodes[i+1].(*pattern.Placeholder)
		if a && b {
			return nil, &Error{
				Kind:   ErrAmbiguousAdjacentPlaceholders,
				Detail: "two placeholders with no literal text between them have no well-defined split",
			}
		}
	}
	return &Compiled{Pattern: p}, nil
}
