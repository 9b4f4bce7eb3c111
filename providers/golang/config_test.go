package golang

import "testing"

func TestClassifyCallExpression(t *testing.T) {
	c := &Config{}
	kind, ok := c.Classify("call_expression")
	if !ok {
		t.Fatal("expected call_expression to classify")
	}
	if kind.String() != "args" {
		t.Errorf("expected args kind, got %s", kind)
	}
}

func TestClassifyIdentifier(t *testing.T) {
	c := &Config{}
	kind, ok := c.Classify("identifier")
	if !ok || kind.String() != "id" {
		t.Errorf("expected identifier to classify as id, got %v ok=%v", kind, ok)
	}
}

func TestClassifyUnknownType(t *testing.T) {
	c := &Config{}
	if _, ok := c.Classify("comment"); ok {
		t.Error("expected comment to not classify into any pattern kind")
	}
}

func TestIsStringLiteral(t *testing.T) {
	c := &Config{}
	if !c.IsStringLiteral("interpreted_string_literal") {
		t.Error("expected interpreted_string_literal to be a string literal")
	}
	if c.IsStringLiteral("identifier") {
		t.Error("expected identifier to not be a string literal")
	}
}
