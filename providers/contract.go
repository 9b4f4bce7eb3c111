// Package providers defines the language front-end contract named by
// spec.md §1's external collaborators table and a registry of concrete
// implementations, one per supported target language.
//
// A Provider wraps a tree-sitter grammar and exposes the two things the
// matcher needs to stay language-agnostic: a parsed match.AST and a
// match.Oracle bound to that AST's source text.
package providers

import (
	"github.com/oxhq/sgrep/match"
	"github.com/oxhq/sgrep/providers/catalog"
)

// Provider is one target language's front-end.
type Provider interface {
	// Language is the canonical short name ("go", "typescript", ...).
	Language() string
	// Extensions lists the file extensions this provider claims, including
	// the leading dot.
	Extensions() []string
	// Parse parses source and returns a match.AST plus a match.Oracle bound
	// to that parse.
	Parse(source []byte) (match.AST, match.Oracle, error)

	// Observability
	Stats() Stats
}

// Registry manages all providers
type Registry struct {
	providers map[string]Provider
}

// NewRegistry creates provider registry
func NewRegistry() *Registry {
	return &Registry{
		providers: make(map[string]Provider),
	}
}

// Register adds a provider
func (r *Registry) Register(provider Provider) {
	r.providers[provider.Language()] = provider
	catalog.Register(catalog.LanguageInfo{
		ID:         provider.Language(),
		Extensions: provider.Extensions(),
	})
}

// Get retrieves provider by language
func (r *Registry) Get(language string) (Provider, bool) {
	p, exists := r.providers[language]
	return p, exists
}

// ForExtension resolves a provider via the shared catalog's extension index.
func (r *Registry) ForExtension(ext string) (Provider, bool) {
	info, ok := catalog.LookupByExtension(ext)
	if !ok {
		return nil, false
	}
	return r.Get(info.ID)
}

// List returns all providers
func (r *Registry) List() []Provider {
	result := make([]Provider, 0, len(r.providers))
	for _, p := range r.providers {
		result = append(result, p)
	}
	return result
}

// Languages returns all registered language identifiers
func (r *Registry) Languages() []string {
	langs := make([]string, 0, len(r.providers))
	for k := range r.providers {
		langs = append(langs, k)
	}
	return langs
}

// Stats captures parser-pool level metrics exposed by providers.
type Stats struct {
	BorrowCount int64 `json:"borrow_count"`
	ReturnCount int64 `json:"return_count"`
	Active      int64 `json:"active"`
}
