// Package javascript is the JavaScript language front-end: a
// providers.Provider built over
// github.com/smacker/go-tree-sitter/javascript.
package javascript

import (
	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/javascript"

	"github.com/oxhq/sgrep/pattern"
	"github.com/oxhq/sgrep/providers/base"
)

// Config implements base.LanguageConfig for JavaScript.
type Config struct{}

func (c *Config) Language() string     { return "javascript" }
func (c *Config) Extensions() []string { return []string{".js", ".jsx", ".mjs", ".cjs"} }

func (c *Config) GetLanguage() *sitter.Language { return javascript.GetLanguage() }

var statementTypes = map[string]bool{
	"expression_statement": true,
	"return_statement":     true,
	"if_statement":         true,
	"for_statement":        true,
	"for_in_statement":     true,
	"while_statement":      true,
	"do_statement":         true,
	"throw_statement":      true,
	"try_statement":        true,
	"switch_statement":     true,
	"break_statement":      true,
	"continue_statement":   true,
	"labeled_statement":    true,
	"statement_block":      true,
	"variable_declaration": true,
	"lexical_declaration":  true,
	"import_statement":     true,
	"export_statement":     true,
}

var typeTypes = map[string]bool{
	// JavaScript proper has no type annotations; this grammar reports none.
}

var memberTypes = map[string]bool{
	"member_expression": true,
	"subscript_expression": true,
}

var stringLiteralTypes = map[string]bool{
	"string":          true,
	"template_string": true,
}

func (c *Config) Classify(nodeType string) (pattern.Kind, bool) {
	switch {
	case statementTypes[nodeType]:
		return pattern.KindStatement, true
	case nodeType == "identifier" || nodeType == "property_identifier" || nodeType == "shorthand_property_identifier":
		return pattern.KindIdentifier, true
	case typeTypes[nodeType]:
		return pattern.KindType, true
	case memberTypes[nodeType]:
		return pattern.KindMember, true
	case nodeType == "call_expression" || nodeType == "arguments" || nodeType == "new_expression":
		return pattern.KindArguments, true
	case isExpressionType(nodeType):
		return pattern.KindExpression, true
	default:
		return 0, false
	}
}

func isExpressionType(nodeType string) bool {
	switch nodeType {
	case "binary_expression", "unary_expression", "assignment_expression", "ternary_expression",
		"array", "object", "arrow_function", "function_expression", "class_expression",
		"parenthesized_expression", "spread_element", "await_expression", "yield_expression",
		"number", "true", "false", "null", "undefined", "regex":
		return true
	}
	return false
}

func (c *Config) IsStringLiteral(nodeType string) bool {
	return stringLiteralTypes[nodeType]
}

// CallArguments returns the ordered argument expressions of a call or new
// expression, unwrapping the grammar's arguments punctuation node.
func (c *Config) CallArguments(n *sitter.Node) ([]*sitter.Node, bool) {
	argList := n
	if n.Type() == "call_expression" || n.Type() == "new_expression" {
		argList = n.ChildByFieldName("arguments")
		if argList == nil {
			return nil, false
		}
	} else if n.Type() != "arguments" {
		return nil, false
	}

	var args []*sitter.Node
	for i := 0; i < int(argList.NamedChildCount()); i++ {
		args = append(args, argList.NamedChild(i))
	}
	return args, true
}

// New constructs the JavaScript provider.
func New() *base.Provider {
	return base.New(&Config{})
}
