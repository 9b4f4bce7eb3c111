package pattern

// Span is a half-open [Start, End) byte offset range into the original
// pattern string.
type Span struct {
	Start int
	End   int
}

// Kind is the syntactic category a placeholder binds.
type Kind int

const (
	// KindExpression is the default kind for an unqualified placeholder.
	KindExpression Kind = iota
	KindIdentifier
	KindStatement
	KindType
	KindMember
	KindArguments
	KindAny
)

var kindNames = map[Kind]string{
	KindExpression: "expr",
	KindIdentifier: "id",
	KindStatement:  "stmt",
	KindType:       "type",
	KindMember:     "member",
	KindArguments:  "args",
	KindAny:        "any",
}

var kindKeywords = map[string]Kind{
	"expr":   KindExpression,
	"id":     KindIdentifier,
	"stmt":   KindStatement,
	"type":   KindType,
	"member": KindMember,
	"args":   KindArguments,
	"any":    KindAny,
}

// String returns the pattern-syntax keyword for the kind.
func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return "unknown"
}

// ParseKind resolves a pattern-syntax keyword to a Kind.
func ParseKind(s string) (Kind, bool) {
	k, ok := kindKeywords[s]
	return k, ok
}

// Node is one element of a parsed Pattern: either a Literal or a
// Placeholder. It is a closed sum type — callers switch on the concrete
// type, there is no third implementation.
type Node interface {
	Span() Span
	node()
}

// Literal is a run of source-language text that must appear verbatim
// (modulo canonical whitespace, see the match package) at the
// corresponding position of a candidate subtree.
type Literal struct {
	Text string
	span Span
}

func (l *Literal) Span() Span { return l.span }
func (*Literal) node()        {}

// NewLiteral constructs a Literal node; exported for tests that build
// Pattern values by hand.
func NewLiteral(text string, span Span) *Literal {
	return &Literal{Text: text, span: span}
}

// Placeholder is a named hole in a pattern. The same Name may appear more
// than once in a Pattern; repeated occurrences require the matcher to
// unify all captures for that name (binding equality, spec §4.3/§4.4).
type Placeholder struct {
	Name        string
	Kind        Kind
	Constraints []Constraint
	span        Span
}

func (p *Placeholder) Span() Span { return p.span }
func (*Placeholder) node()        {}

// NewPlaceholder constructs a Placeholder node; exported for tests.
func NewPlaceholder(name string, kind Kind, constraints []Constraint, span Span) *Placeholder {
	return &Placeholder{Name: name, Kind: kind, Constraints: constraints, span: span}
}

// Pattern is the parsed form of a pattern string: an ordered sequence of
// literal and placeholder nodes.
type Pattern struct {
	Nodes []Node
	Raw   string
}

// Names returns the set of distinct placeholder names appearing in the
// pattern, in first-occurrence order.
func (p *Pattern) Names() []string {
	seen := make(map[string]bool, len(p.Nodes))
	var names []string
	for _, n := range p.Nodes {
		if ph, ok := n.(*Placeholder); ok {
			if !seen[ph.Name] {
				seen[ph.Name] = true
				names = append(names, ph.Name)
			}
		}
	}
	return names
}
