package pattern

import (
	"regexp"
	"strings"
)

// Candidate is what a Constraint validates against. The matcher builds one
// per placeholder occurrence; this package never inspects a concrete
// target-language AST node itself, keeping the constraint model
// language-agnostic (spec §4.2).
type Candidate struct {
	// Text is the canonicalized captured text for a scalar hole.
	Text string

	// Arguments holds the canonical rendering of each element of a
	// captured Arguments list; Regex constraints match against them
	// joined with ", ", Count constraints check their number.
	Arguments []string

	// ResolveType asks the semantic oracle for the captured node's
	// inferred type name. The second return value is false when no
	// oracle is available; per spec §4.2 a Type constraint is then
	// unsatisfied rather than silently passing.
	ResolveType func() (name string, ok bool)
}

// Constraint is a predicate a captured binding must satisfy. It is a
// closed sum type: Regex, Type, Count, ExactMatch.
type Constraint interface {
	Validate(c Candidate) bool
	constraint()
}

// RegexConstraint requires the captured text (or, for an Arguments
// placeholder, the canonical comma-joined rendering) to match a compiled
// regular expression.
type RegexConstraint struct {
	Source   string
	compiled *regexp.Regexp
}

// NewRegexConstraint compiles pat once; a compile failure is reported by
// the caller as ErrMalformedRegex rather than surfacing here as a panic.
func NewRegexConstraint(pat string) (*RegexConstraint, error) {
	re, err := regexp.Compile(pat)
	if err != nil {
		return nil, err
	}
	return &RegexConstraint{Source: pat, compiled: re}, nil
}

func (r *RegexConstraint) Validate(c Candidate) bool {
	if len(c.Arguments) > 0 {
		return r.compiled.MatchString(joinArguments(c.Arguments))
	}
	return r.compiled.MatchString(c.Text)
}

func (*RegexConstraint) constraint() {}

func joinArguments(args []string) string {
	out := ""
	for i, a := range args {
		if i > 0 {
			out += ", "
		}
		out += a
	}
	return out
}

// TypeConstraint defers to the semantic oracle. If no oracle is available,
// the constraint is unsatisfied (spec §4.2 "safe default").
type TypeConstraint struct {
	Name string
}

func (t *TypeConstraint) Validate(c Candidate) bool {
	if c.ResolveType == nil {
		return false
	}
	name, ok := c.ResolveType()
	if !ok {
		return false
	}
	return name == t.Name
}

func (*TypeConstraint) constraint() {}

// CountConstraint bounds the length of a captured Arguments list. Either
// bound may be nil, meaning unbounded on that side.
type CountConstraint struct {
	Min *int
	Max *int
}

func (cc *CountConstraint) Validate(c Candidate) bool {
	n := len(c.Arguments)
	if cc.Min != nil && n < *cc.Min {
		return false
	}
	if cc.Max != nil && n > *cc.Max {
		return false
	}
	return true
}

func (*CountConstraint) constraint() {}

// ExactMatchConstraint requires byte-for-byte (or case-folded) equality
// against a fixed string.
type ExactMatchConstraint struct {
	Text       string
	IgnoreCase bool
}

func (e *ExactMatchConstraint) Validate(c Candidate) bool {
	if e.IgnoreCase {
		return strings.EqualFold(c.Text, e.Text)
	}
	return c.Text == e.Text
}

func (*ExactMatchConstraint) constraint() {}
