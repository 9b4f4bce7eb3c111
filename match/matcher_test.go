package match

import (
	"testing"

	"github.com/oxhq/sgrep/pattern"
)

// fakeNode is a minimal AST node used only by this package's tests. It
// plays the role a tree-sitter node + an adjacent providers/<lang> oracle
// would play in the real system.
type fakeNode struct {
	kind     string // "call" or "expr", enough for the predicates these tests need
	text     string
	start    int
	end      int
	children []*fakeNode
	args     []*fakeNode
}

type fakeAST struct{ root *fakeNode }

func (a fakeAST) Root() ASTNode                   { return a.root }
func (a fakeAST) Children(n ASTNode) []ASTNode {
	fn := n.(*fakeNode)
	out := make([]ASTNode, len(fn.children))
	for i, c := range fn.children {
		out[i] = c
	}
	return out
}

type fakeOracle struct{}

func (fakeOracle) ResolveType(n ASTNode) (string, bool) { return "", false }
func (fakeOracle) IsExpression(n ASTNode) bool          { k := n.(*fakeNode).kind; return k == "expr" || k == "call" }
func (fakeOracle) IsStatement(n ASTNode) bool           { return false }
func (fakeOracle) IsIdentifier(n ASTNode) bool          { return n.(*fakeNode).kind == "ident" }
func (fakeOracle) IsTypeRef(n ASTNode) bool             { return false }
func (fakeOracle) IsMemberAccessSelector(n ASTNode) bool { return false }
func (fakeOracle) ArgumentsOf(n ASTNode) ([]ASTNode, bool) {
	fn := n.(*fakeNode)
	if fn.kind != "call" {
		return nil, false
	}
	out := make([]ASTNode, len(fn.args))
	for i, a := range fn.args {
		out[i] = a
	}
	return out, true
}
func (fakeOracle) SourceSpan(n ASTNode) (int, int) { fn := n.(*fakeNode); return fn.start, fn.end }
func (fakeOracle) TokensOf(n ASTNode) []Token      { return nil }
func (fakeOracle) PrintSurface(n ASTNode) string   { return n.(*fakeNode).text }

func compileOrFatal(t *testing.T, raw string) *Compiled {
	t.Helper()
	p, err := pattern.Parse(raw)
	if err != nil {
		t.Fatalf("pattern.Parse(%q): %v", raw, err)
	}
	c, err := Compile(p)
	if err != nil {
		t.Fatalf("Compile(%q): %v", raw, err)
	}
	return c
}

// scenario (a): single-argument call capture.
func TestMatchSingleArgument(t *testing.T) {
	src := `Console.WriteLine("Hi")`
	argStart := len(`Console.WriteLine(`)
	argEnd := argStart + len(`"Hi"`)
	arg := &fakeNode{kind: "expr", text: `"Hi"`, start: argStart, end: argEnd}
	call := &fakeNode{kind: "call", text: src, start: 0, end: len(src), children: []*fakeNode{arg}, args: []*fakeNode{arg}}

	m := New(compileOrFatal(t, `Console.WriteLine($arg$)`), fakeOracle{})
	matches := m.MatchFile("f.go", fakeAST{root: call})
	if len(matches) != 1 {
		t.Fatalf("expected 1 match, got %d", len(matches))
	}
	if got := matches[0].Bindings["arg"].Text; got != `"Hi"` {
		t.Errorf("expected arg binding %q, got %q", `"Hi"`, got)
	}
}

// scenario (c): an unannotated $args$ placeholder spanning an entire
// argument list captures all of it, not just the first element.
func TestMatchArgumentListFallback(t *testing.T) {
	src := `string.Format("v {0} {1}", x, y)`
	fmtStr := &fakeNode{kind: "expr", text: `"v {0} {1}"`, start: 14, end: 25}
	x := &fakeNode{kind: "expr", text: "x", start: 27, end: 28}
	y := &fakeNode{kind: "expr", text: "y", start: 30, end: 31}
	call := &fakeNode{
		kind: "call", text: src, start: 0, end: len(src),
		children: []*fakeNode{fmtStr, x, y},
		args:     []*fakeNode{fmtStr, x, y},
	}

	m := New(compileOrFatal(t, `string.Format($args$)`), fakeOracle{})
	matches := m.MatchFile("f.go", fakeAST{root: call})
	if len(matches) != 1 {
		t.Fatalf("expected 1 match, got %d", len(matches))
	}
	b := matches[0].Bindings["args"]
	if !b.IsArguments || len(b.Nodes) != 3 {
		t.Fatalf("expected a 3-element arguments capture, got %+v", b)
	}
	want := `"v {0} {1}", x, y`
	if b.Text != want {
		t.Errorf("expected joined text %q, got %q", want, b.Text)
	}
}

// scenario (d): a regex constraint on one hole gates whether another
// hole's assignment is accepted.
func TestMatchRegexConstraint(t *testing.T) {
	src := `tempX = y`
	lhs := &fakeNode{kind: "expr", text: "tempX", start: 0, end: 5}
	rhs := &fakeNode{kind: "expr", text: "y", start: 8, end: 9}
	assign := &fakeNode{kind: "expr", text: src, start: 0, end: len(src), children: []*fakeNode{lhs, rhs}}

	m := New(compileOrFatal(t, `$v:regex=temp.*$ = $val$`), fakeOracle{})
	matches := m.MatchFile("f.go", fakeAST{root: assign})
	if len(matches) != 1 {
		t.Fatalf("expected 1 match, got %d", len(matches))
	}
	if got := matches[0].Bindings["v"].Text; got != "tempX" {
		t.Errorf("expected v=tempX, got %q", got)
	}

	src2 := `other = y`
	lhs2 := &fakeNode{kind: "expr", text: "other", start: 0, end: 5}
	rhs2 := &fakeNode{kind: "expr", text: "y", start: 8, end: 9}
	assign2 := &fakeNode{kind: "expr", text: src2, start: 0, end: len(src2), children: []*fakeNode{lhs2, rhs2}}
	if matches2 := m.MatchFile("f.go", fakeAST{root: assign2}); len(matches2) != 0 {
		t.Errorf("expected no match for %q, got %d", src2, len(matches2))
	}
}

// spec §8 property 3: a repeated placeholder name must capture the same
// text everywhere it appears, compared after whitespace canonicalization
// rather than byte-for-byte, so differing interior whitespace between two
// occurrences of the same sub-expression doesn't spuriously reject a match.
func TestBindingConsistencyIgnoresInteriorWhitespace(t *testing.T) {
	src := "a  +  b;a + b"
	root := &fakeNode{kind: "expr", text: src, start: 0, end: len(src)}

	m := New(compileOrFatal(t, `$x:any$;$x:any$`), fakeOracle{})
	matches := m.MatchFile("f.go", fakeAST{root: root})
	if len(matches) != 1 {
		t.Fatalf("expected 1 match, got %d", len(matches))
	}
	if got := matches[0].Bindings["x"].Canonical; got != "a + b" {
		t.Errorf("expected canonical binding %q, got %q", "a + b", got)
	}
}

// spec §4.2: an exact constraint compares canonical text, so a capture
// whose interior whitespace differs from the constraint's own literal
// still satisfies it.
func TestExactMatchConstraintUsesCanonicalText(t *testing.T) {
	root := &fakeNode{kind: "expr", text: "a  +  b", start: 0, end: len("a  +  b")}

	m := New(compileOrFatal(t, `$v=exact="a + b"$`), fakeOracle{})
	matches := m.MatchFile("f.go", fakeAST{root: root})
	if len(matches) != 1 {
		t.Fatalf("expected 1 match, got %d", len(matches))
	}
}

// scenario (f): two placeholders with no literal between them are rejected
// at compile time, before any AST is even considered.
func TestCompileRejectsAmbiguousAdjacentPlaceholders(t *testing.T) {
	p, err := pattern.Parse(`$a$$b$`)
	if err != nil {
		t.Fatalf("unexpected parse error: %v", err)
	}
	_, err = Compile(p)
	merr, ok := err.(*Error)
	if !ok {
		t.Fatalf("expected *Error, got %v", err)
	}
	if merr.Kind != ErrAmbiguousAdjacentPlaceholders {
		t.Errorf("expected ErrAmbiguousAdjacentPlaceholders, got %v", merr.Kind)
	}
}

func TestCanonicalizeCollapsesWhitespaceExceptInStrings(t *testing.T) {
	raw := "a  b\tc"
	canon, toOrig := canonicalize(raw, nil)
	if canon != "a b c" {
		t.Fatalf("expected %q, got %q", "a b c", canon)
	}
	if toOrig[len(canon)] != len(raw) {
		t.Errorf("expected trailing map to len(raw), got %d", toOrig[len(canon)])
	}

	raw2 := `"a  b"`
	canon2, _ := canonicalize(raw2, []pattern.Span{{Start: 0, End: len(raw2)}})
	if canon2 != raw2 {
		t.Errorf("expected protected span unchanged, got %q", canon2)
	}
}
