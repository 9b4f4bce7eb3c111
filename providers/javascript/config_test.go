package javascript

import "testing"

func TestClassifyCallExpression(t *testing.T) {
	c := &Config{}
	kind, ok := c.Classify("call_expression")
	if !ok || kind.String() != "args" {
		t.Errorf("expected call_expression to classify as args, got %v ok=%v", kind, ok)
	}
}

func TestClassifyMemberExpression(t *testing.T) {
	c := &Config{}
	kind, ok := c.Classify("member_expression")
	if !ok || kind.String() != "member" {
		t.Errorf("expected member_expression to classify as member, got %v ok=%v", kind, ok)
	}
}

func TestIsStringLiteral(t *testing.T) {
	c := &Config{}
	if !c.IsStringLiteral("template_string") {
		t.Error("expected template_string to be a string literal")
	}
}
