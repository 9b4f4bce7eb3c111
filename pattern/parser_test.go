package pattern

import "testing"

func TestParseLiteralOnly(t *testing.T) {
	p, err := Parse("return 1;")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(p.Nodes) != 1 {
		t.Fatalf("expected 1 node, got %d", len(p.Nodes))
	}
	lit, ok := p.Nodes[0].(*Literal)
	if !ok {
		t.Fatalf("expected *Literal, got %T", p.Nodes[0])
	}
	if lit.Text != "return 1;" {
		t.Errorf("unexpected literal text %q", lit.Text)
	}
}

func TestParseSimplePlaceholder(t *testing.T) {
	p, err := Parse("Console.WriteLine($arg$)")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(p.Nodes) != 3 {
		t.Fatalf("expected 3 nodes, got %d", len(p.Nodes))
	}
	ph, ok := p.Nodes[1].(*Placeholder)
	if !ok {
		t.Fatalf("expected *Placeholder, got %T", p.Nodes[1])
	}
	if ph.Name != "arg" || ph.Kind != KindExpression {
		t.Errorf("unexpected placeholder %+v", ph)
	}
}

func TestParseEscapedDollar(t *testing.T) {
	p, err := Parse("price: $$5")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var text string
	for _, n := range p.Nodes {
		if lit, ok := n.(*Literal); ok {
			text += lit.Text
		}
	}
	if text != "price: $5" {
		t.Errorf("expected %q, got %q", "price: $5", text)
	}
}

func TestParseKindAndConstraint(t *testing.T) {
	p, err := Parse("$v:regex=temp.*$ = $val$")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	ph, ok := p.Nodes[0].(*Placeholder)
	if !ok {
		t.Fatalf("expected *Placeholder, got %T", p.Nodes[0])
	}
	if ph.Kind != KindExpression {
		t.Errorf("expected default KindExpression, got %v", ph.Kind)
	}
	if len(ph.Constraints) != 1 {
		t.Fatalf("expected 1 constraint, got %d", len(ph.Constraints))
	}
	rc, ok := ph.Constraints[0].(*RegexConstraint)
	if !ok {
		t.Fatalf("expected *RegexConstraint, got %T", ph.Constraints[0])
	}
	if !rc.Validate(Candidate{Text: "tempX"}) {
		t.Errorf("expected regex to match tempX")
	}
	if rc.Validate(Candidate{Text: "other"}) {
		t.Errorf("expected regex not to match other")
	}
}

func TestParseArgsCount(t *testing.T) {
	p, err := Parse("f($args:args=count=1-3$)")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	ph := p.Nodes[1].(*Placeholder)
	if ph.Kind != KindArguments {
		t.Fatalf("expected KindArguments, got %v", ph.Kind)
	}
	cc := ph.Constraints[0].(*CountConstraint)
	if *cc.Min != 1 || *cc.Max != 3 {
		t.Errorf("unexpected bounds min=%v max=%v", *cc.Min, *cc.Max)
	}
}

func TestParseCountIncompatibleWithKind(t *testing.T) {
	_, err := Parse("$x:expr=count=1$")
	perr, ok := err.(*Error)
	if !ok {
		t.Fatalf("expected *Error, got %v", err)
	}
	if perr.Kind != ErrConstraintIncompatibleWithKind {
		t.Errorf("expected ErrConstraintIncompatibleWithKind, got %v", perr.Kind)
	}
}

func TestParseExactConstraint(t *testing.T) {
	p, err := Parse(`$x=exact="he said \"hi\""$`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	ph := p.Nodes[0].(*Placeholder)
	em := ph.Constraints[0].(*ExactMatchConstraint)
	want := `he said "hi"`
	if em.Text != want {
		t.Errorf("expected %q, got %q", want, em.Text)
	}
}

func TestParseUnterminatedPlaceholder(t *testing.T) {
	_, err := Parse("foo($arg")
	perr, ok := err.(*Error)
	if !ok {
		t.Fatalf("expected *Error, got %v", err)
	}
	if perr.Kind != ErrUnterminatedPlaceholder {
		t.Errorf("expected ErrUnterminatedPlaceholder, got %v", perr.Kind)
	}
}

func TestParseUnknownKind(t *testing.T) {
	_, err := Parse("$x:bogus$")
	perr, ok := err.(*Error)
	if !ok {
		t.Fatalf("expected *Error, got %v", err)
	}
	if perr.Kind != ErrUnknownKind {
		t.Errorf("expected ErrUnknownKind, got %v", perr.Kind)
	}
}

func TestParseEmptyName(t *testing.T) {
	_, err := Parse("$$$ foo")
	// "$$" is the escape for a literal '$', leaving a lone '$' before
	// " foo" which is itself an unterminated placeholder.
	if err == nil {
		t.Fatalf("expected error")
	}

	_, err = Parse("$:expr$")
	perr, ok := err.(*Error)
	if !ok {
		t.Fatalf("expected *Error, got %v", err)
	}
	if perr.Kind != ErrEmptyName {
		t.Errorf("expected ErrEmptyName, got %v", perr.Kind)
	}
}

func TestNames(t *testing.T) {
	p, err := Parse("$x$ + $x$")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	names := p.Names()
	if len(names) != 1 || names[0] != "x" {
		t.Errorf("expected [x], got %v", names)
	}
}
