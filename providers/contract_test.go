package providers

import (
	"testing"

	"github.com/oxhq/sgrep/match"
)

// MockProvider for testing
type MockProvider struct {
	language   string
	extensions []string
}

func (m *MockProvider) Language() string     { return m.language }
func (m *MockProvider) Extensions() []string { return m.extensions }

func (m *MockProvider) Parse(source []byte) (match.AST, match.Oracle, error) {
	return nil, nil, nil
}

func (m *MockProvider) Stats() Stats { return Stats{} }

func TestNewRegistry(t *testing.T) {
	registry := NewRegistry()

	if registry == nil {
		t.Error("NewRegistry should return non-nil registry")
	}

	if registry.providers == nil {
		t.Error("Registry providers map should be initialized")
	}
}

func TestRegisterProvider(t *testing.T) {
	registry := NewRegistry()
	mockProvider := &MockProvider{
		language:   "go",
		extensions: []string{".go"},
	}

	registry.Register(mockProvider)

	provider, exists := registry.Get("go")
	if !exists {
		t.Error("Provider should be registered")
	}

	if provider.Language() != "go" {
		t.Errorf("Expected language 'go', got '%s'", provider.Language())
	}
}

func TestGetProvider(t *testing.T) {
	registry := NewRegistry()

	tests := []struct {
		name     string
		language string
		setup    func()
		exists   bool
	}{
		{
			name:     "existing provider",
			language: "go",
			setup: func() {
				registry.Register(&MockProvider{
					language:   "go",
					extensions: []string{".go"},
				})
			},
			exists: true,
		},
		{
			name:     "non-existing provider",
			language: "rust",
			setup:    func() {},
			exists:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setup()

			provider, exists := registry.Get(tt.language)

			if exists != tt.exists {
				t.Errorf("Expected exists=%v, got %v", tt.exists, exists)
			}

			if tt.exists && provider.Language() != tt.language {
				t.Errorf("Expected language '%s', got '%s'", tt.language, provider.Language())
			}
		})
	}
}

func TestMultipleProviders(t *testing.T) {
	registry := NewRegistry()

	providers := []*MockProvider{
		{language: "go", extensions: []string{".go"}},
		{language: "javascript", extensions: []string{".js", ".jsx"}},
		{language: "php", extensions: []string{".php"}},
	}

	for _, p := range providers {
		registry.Register(p)
	}

	for _, expected := range providers {
		provider, exists := registry.Get(expected.language)
		if !exists {
			t.Errorf("Provider %s should exist", expected.language)
		}

		if provider.Language() != expected.language {
			t.Errorf("Expected language %s, got %s", expected.language, provider.Language())
		}
	}
}

func TestForExtension(t *testing.T) {
	registry := NewRegistry()
	registry.Register(&MockProvider{language: "go", extensions: []string{".go"}})

	provider, ok := registry.ForExtension(".go")
	if !ok || provider.Language() != "go" {
		t.Errorf("expected .go to resolve to the go provider, got %v ok=%v", provider, ok)
	}

	if _, ok := registry.ForExtension(".rs"); ok {
		t.Error("expected .rs to resolve to no provider")
	}
}

func TestProviderOverwrite(t *testing.T) {
	registry := NewRegistry()

	provider1 := &MockProvider{language: "go", extensions: []string{".go"}}
	registry.Register(provider1)

	provider2 := &MockProvider{language: "go", extensions: []string{".go", ".mod"}}
	registry.Register(provider2)

	retrieved, exists := registry.Get("go")
	if !exists {
		t.Error("Provider should exist")
	}

	if len(retrieved.Extensions()) != 2 {
		t.Error("Should have gotten the second provider with 2 extensions")
	}
}
