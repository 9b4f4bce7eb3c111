package template

import "testing"

func TestParseTextAndHole(t *testing.T) {
	tmpl, err := Parse("log.info($a$)")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(tmpl.Parts) != 3 {
		t.Fatalf("expected 3 parts, got %d", len(tmpl.Parts))
	}
	if tmpl.Parts[0] != Text("log.info(") {
		t.Errorf("unexpected first part %v", tmpl.Parts[0])
	}
	if tmpl.Parts[1] != HoleRef("a") {
		t.Errorf("unexpected second part %v", tmpl.Parts[1])
	}
}

func TestParseEscapedDollar(t *testing.T) {
	tmpl, err := Parse("cost $$ $x$")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var text string
	for _, p := range tmpl.Parts {
		if s, ok := p.(Text); ok {
			text += string(s)
		}
	}
	if text != "cost $ " {
		t.Errorf("expected %q, got %q", "cost $ ", text)
	}
}

func TestValidateUnknownHole(t *testing.T) {
	tmpl, err := Parse("$a$ + $b$")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	err = tmpl.Validate([]string{"a"})
	terr, ok := err.(*Error)
	if !ok {
		t.Fatalf("expected *Error, got %v", err)
	}
	if terr.Kind != ErrUnknownHole {
		t.Errorf("expected ErrUnknownHole, got %v", terr.Kind)
	}
}

func TestValidateKnownHoles(t *testing.T) {
	tmpl, err := Parse("$a$ + $b$")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := tmpl.Validate([]string{"a", "b"}); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestUnterminatedHole(t *testing.T) {
	_, err := Parse("foo($a")
	terr, ok := err.(*Error)
	if !ok {
		t.Fatalf("expected *Error, got %v", err)
	}
	if terr.Kind != ErrUnterminatedHole {
		t.Errorf("expected ErrUnterminatedHole, got %v", terr.Kind)
	}
}
