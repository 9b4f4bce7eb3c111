package typescript

import "testing"

func TestClassifyTypeIdentifier(t *testing.T) {
	c := &Config{}
	kind, ok := c.Classify("type_identifier")
	if !ok || kind.String() != "type" {
		t.Errorf("expected type_identifier to classify as type, got %v ok=%v", kind, ok)
	}
}

func TestClassifyCallExpression(t *testing.T) {
	c := &Config{}
	kind, ok := c.Classify("call_expression")
	if !ok || kind.String() != "args" {
		t.Errorf("expected call_expression to classify as args, got %v ok=%v", kind, ok)
	}
}
