package php

import "testing"

func TestClassifyFunctionCall(t *testing.T) {
	c := &Config{}
	kind, ok := c.Classify("function_call_expression")
	if !ok || kind.String() != "args" {
		t.Errorf("expected function_call_expression to classify as args, got %v ok=%v", kind, ok)
	}
}

func TestClassifyVariableName(t *testing.T) {
	c := &Config{}
	kind, ok := c.Classify("variable_name")
	if !ok || kind.String() != "id" {
		t.Errorf("expected variable_name to classify as id, got %v ok=%v", kind, ok)
	}
}
