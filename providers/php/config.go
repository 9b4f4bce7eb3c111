// Package php is the PHP language front-end: a providers.Provider built
// over github.com/smacker/go-tree-sitter/php.
package php

import (
	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/php"

	"github.com/oxhq/sgrep/pattern"
	"github.com/oxhq/sgrep/providers/base"
)

// Config implements base.LanguageConfig for PHP.
type Config struct{}

func (c *Config) Language() string     { return "php" }
func (c *Config) Extensions() []string { return []string{".php", ".phtml"} }

func (c *Config) GetLanguage() *sitter.Language { return php.GetLanguage() }

var statementTypes = map[string]bool{
	"expression_statement": true,
	"return_statement":     true,
	"if_statement":         true,
	"for_statement":        true,
	"foreach_statement":    true,
	"while_statement":      true,
	"do_statement":         true,
	"switch_statement":     true,
	"break_statement":      true,
	"continue_statement":   true,
	"compound_statement":   true,
	"echo_statement":       true,
	"throw_statement":      true,
	"try_statement":        true,
	"namespace_use_declaration": true,
}

var typeTypes = map[string]bool{
	"named_type":      true,
	"primitive_type":  true,
	"union_type":      true,
	"optional_type":   true,
	"nullable_type":   true,
}

var memberTypes = map[string]bool{
	"member_access_expression":      true,
	"scoped_property_access_expression": true,
	"subscript_expression":          true,
}

var stringLiteralTypes = map[string]bool{
	"string":             true,
	"encapsed_string":    true,
	"heredoc":            true,
}

func (c *Config) Classify(nodeType string) (pattern.Kind, bool) {
	switch {
	case statementTypes[nodeType]:
		return pattern.KindStatement, true
	case nodeType == "name" || nodeType == "variable_name":
		return pattern.KindIdentifier, true
	case typeTypes[nodeType]:
		return pattern.KindType, true
	case memberTypes[nodeType]:
		return pattern.KindMember, true
	case nodeType == "function_call_expression" || nodeType == "member_call_expression" ||
		nodeType == "scoped_call_expression" || nodeType == "arguments":
		return pattern.KindArguments, true
	case isExpressionType(nodeType):
		return pattern.KindExpression, true
	default:
		return 0, false
	}
}

func isExpressionType(nodeType string) bool {
	switch nodeType {
	case "binary_expression", "unary_op_expression", "assignment_expression", "conditional_expression",
		"array_creation_expression", "object_creation_expression", "anonymous_function_creation_expression",
		"arrow_function", "parenthesized_expression",
		"integer", "float", "boolean", "null":
		return true
	}
	return false
}

func (c *Config) IsStringLiteral(nodeType string) bool {
	return stringLiteralTypes[nodeType]
}

// CallArguments returns the ordered argument expressions of a PHP call
// expression, unwrapping the grammar's arguments punctuation node.
func (c *Config) CallArguments(n *sitter.Node) ([]*sitter.Node, bool) {
	argList := n
	switch n.Type() {
	case "function_call_expression", "member_call_expression", "scoped_call_expression":
		argList = n.ChildByFieldName("arguments")
		if argList == nil {
			return nil, false
		}
	case "arguments":
		// already an argument list
	default:
		return nil, false
	}

	var args []*sitter.Node
	for i := 0; i < int(argList.NamedChildCount()); i++ {
		args = append(args, argList.NamedChild(i))
	}
	return args, true
}

// New constructs the PHP provider.
func New() *base.Provider {
	return base.New(&Config{})
}
