// Package base supplies the shared scaffolding every providers/<lang>
// front-end is built on: a tree-sitter-backed match.AST/match.Oracle pair
// and a thin Provider that wires a language's grammar and node-kind
// classification into that scaffolding.
package base

import (
	"fmt"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/oxhq/sgrep/cache"
	"github.com/oxhq/sgrep/match"
	"github.com/oxhq/sgrep/pattern"
	"github.com/oxhq/sgrep/providers"
)

// Classifier is the language-specific knowledge a base.Provider needs:
// how to read pattern.Kind off a raw tree-sitter node type, how to spot a
// string-literal node (so NormalizeWhitespace-style canonicalization can
// protect its contents), and how to pull the ordered argument list out of
// a call-shaped node.
type Classifier interface {
	// Classify maps a tree-sitter node type to the pattern.Kind it satisfies,
	// or ok=false if the type satisfies none (comments, punctuation, ...).
	Classify(nodeType string) (kind pattern.Kind, ok bool)
	// IsStringLiteral reports whether nodeType is a string/rune/template
	// literal, whose interior whitespace must not be collapsed.
	IsStringLiteral(nodeType string) bool
	// CallArguments returns the ordered argument nodes of n, or ok=false if
	// n is not a call/invocation-shaped node.
	CallArguments(n *sitter.Node) (args []*sitter.Node, ok bool)
}

// LanguageConfig is everything a language package must supply.
type LanguageConfig interface {
	Classifier
	Language() string
	Extensions() []string
	GetLanguage() *sitter.Language
}

// Provider is the generic providers.Provider implementation shared by
// every target language; only LanguageConfig varies per language.
type Provider struct {
	config LanguageConfig
	cache  *cache.Cache
}

// New builds a Provider over config, using the shared cache.Global unless
// overridden with NewWithCache. Panics if config's grammar fails to load:
// a misconfigured language package is a programming error, not a runtime
// one.
func New(config LanguageConfig) *Provider {
	return NewWithCache(config, cache.Global)
}

// NewWithCache is New with an explicit cache, mainly for tests that want
// isolation from the process-wide cache.Global singleton.
func NewWithCache(config LanguageConfig, c *cache.Cache) *Provider {
	if config.GetLanguage() == nil {
		panic(fmt.Sprintf("providers/base: %s has no tree-sitter grammar", config.Language()))
	}
	return &Provider{config: config, cache: c}
}

func (p *Provider) Language() string     { return p.config.Language() }
func (p *Provider) Extensions() []string { return p.config.Extensions() }

// Parse parses source and returns a match.AST/match.Oracle pair bound to
// it. Each call builds its own *sitter.Parser rather than reusing one
// stored on Provider, so concurrent Parse calls on the same Provider (the
// orchestrator's worker pool parses many files at once) never share a
// parser instance, which go-tree-sitter does not allow.
func (p *Provider) Parse(source []byte) (match.AST, match.Oracle, error) {
	parser := sitter.NewParser()
	parser.SetLanguage(p.config.GetLanguage())

	tree, err := p.cache.GetOrParse(parser, p.config.Language(), source)
	if err != nil {
		return nil, nil, fmt.Errorf("providers/base: parse %s: %w", p.config.Language(), err)
	}

	ast := fileAST{tree: tree}
	oracle := &fileOracle{source: source, classifier: p.config}
	return ast, oracle, nil
}

// Stats reports cache-level borrow/return counters (spec's external
// collaborators table names Stats as an observability hook; this package
// has no parser-pool to track, so it surfaces the shared cache's hit/miss
// counts instead, which is the closer analogue for a caching front-end).
func (p *Provider) Stats() providers.Stats {
	hits, misses, _ := p.cache.Stats()
	return providers.Stats{BorrowCount: hits + misses, ReturnCount: hits, Active: 0}
}

// SyntaxErrors walks ast's tree looking for tree-sitter ERROR and missing
// nodes, returning a human-readable message per one found. The scanner
// does not call it; files with syntax errors still reach the matcher.
func SyntaxErrors(ast match.AST) []string {
	var errs []string
	var walk func(n *sitter.Node)
	walk = func(n *sitter.Node) {
		if n.Type() == "ERROR" || n.IsMissing() {
			errs = append(errs, fmt.Sprintf("syntax error at line %d, column %d",
				n.StartPoint().Row+1, n.StartPoint().Column+1))
		}
		for i := 0; i < int(n.ChildCount()); i++ {
			if c := n.Child(i); c != nil {
				walk(c)
			}
		}
	}
	walk(ast.Root().(*sitter.Node))
	return errs
}
