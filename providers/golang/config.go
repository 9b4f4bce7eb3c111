// Package golang is the Go language front-end: a providers.Provider built
// over github.com/smacker/go-tree-sitter/golang.
package golang

import (
	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/golang"

	"github.com/oxhq/sgrep/pattern"
	"github.com/oxhq/sgrep/providers/base"
)

// Config implements base.LanguageConfig for Go.
type Config struct{}

func (c *Config) Language() string     { return "go" }
func (c *Config) Extensions() []string { return []string{".go"} }

func (c *Config) GetLanguage() *sitter.Language { return golang.GetLanguage() }

var statementTypes = map[string]bool{
	"expression_statement":  true,
	"return_statement":      true,
	"if_statement":          true,
	"for_statement":         true,
	"go_statement":          true,
	"defer_statement":       true,
	"send_statement":        true,
	"inc_statement":         true,
	"dec_statement":         true,
	"assignment_statement":  true,
	"short_var_declaration": true,
	"labeled_statement":     true,
	"break_statement":       true,
	"continue_statement":    true,
	"fallthrough_statement": true,
	"block":                 true,
	"var_declaration":       true,
	"const_declaration":     true,
}

var typeTypes = map[string]bool{
	"type_identifier":    true,
	"qualified_type":     true,
	"pointer_type":       true,
	"slice_type":         true,
	"array_type":         true,
	"map_type":           true,
	"channel_type":       true,
	"interface_type":     true,
	"struct_type":        true,
	"function_type":      true,
	"generic_type":       true,
	"parenthesized_type": true,
}

var memberTypes = map[string]bool{
	"selector_expression": true,
}

var stringLiteralTypes = map[string]bool{
	"interpreted_string_literal": true,
	"raw_string_literal":         true,
	"rune_literal":               true,
}

// Classify maps a Go tree-sitter node type to the pattern.Kind it
// satisfies. Node type names are taken from go-tree-sitter's golang
// grammar.
func (c *Config) Classify(nodeType string) (pattern.Kind, bool) {
	switch {
	case statementTypes[nodeType]:
		return pattern.KindStatement, true
	case nodeType == "identifier" || nodeType == "field_identifier" || nodeType == "package_identifier":
		return pattern.KindIdentifier, true
	case typeTypes[nodeType]:
		return pattern.KindType, true
	case memberTypes[nodeType]:
		return pattern.KindMember, true
	case nodeType == "call_expression" || nodeType == "argument_list":
		return pattern.KindArguments, true
	case isExpressionType(nodeType):
		return pattern.KindExpression, true
	default:
		return 0, false
	}
}

func isExpressionType(nodeType string) bool {
	switch nodeType {
	case "binary_expression", "unary_expression", "composite_literal", "index_expression",
		"slice_expression", "type_assertion_expression", "func_literal", "parenthesized_expression",
		"int_literal", "float_literal", "imaginary_literal", "true", "false", "nil",
		"variadic_argument":
		return true
	}
	return false
}

func (c *Config) IsStringLiteral(nodeType string) bool {
	return stringLiteralTypes[nodeType]
}

// CallArguments returns the ordered argument expressions of a Go call
// expression, unwrapping the grammar's argument_list punctuation.
func (c *Config) CallArguments(n *sitter.Node) ([]*sitter.Node, bool) {
	argList := n
	if n.Type() == "call_expression" {
		argList = n.ChildByFieldName("arguments")
		if argList == nil {
			return nil, false
		}
	} else if n.Type() != "argument_list" {
		return nil, false
	}

	var args []*sitter.Node
	for i := 0; i < int(argList.NamedChildCount()); i++ {
		args = append(args, argList.NamedChild(i))
	}
	return args, true
}

// New constructs the Go provider.
func New() *base.Provider {
	return base.New(&Config{})
}
