package cache

import (
	"testing"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/golang"
)

func newGoParser() *sitter.Parser {
	p := sitter.NewParser()
	p.SetLanguage(golang.GetLanguage())
	return p
}

func TestGetOrParseCachesByLanguageAndSource(t *testing.T) {
	c := New(0)
	src := []byte("package p\n")

	tree1, err := c.GetOrParse(newGoParser(), "go", src)
	if err != nil {
		t.Fatalf("GetOrParse: %v", err)
	}
	defer tree1.Close()

	tree2, err := c.GetOrParse(newGoParser(), "go", src)
	if err != nil {
		t.Fatalf("GetOrParse: %v", err)
	}
	defer tree2.Close()

	hits, misses, _ := c.Stats()
	if misses != 1 {
		t.Errorf("expected 1 miss, got %d", misses)
	}
	if hits != 1 {
		t.Errorf("expected 1 hit, got %d", hits)
	}
}

func TestGetOrParseKeysByLanguage(t *testing.T) {
	c := New(0)
	src := []byte("x")

	if _, err := c.GetOrParse(newGoParser(), "go", src); err != nil {
		t.Fatalf("GetOrParse: %v", err)
	}
	if _, err := c.GetOrParse(newGoParser(), "javascript", src); err != nil {
		t.Fatalf("GetOrParse: %v", err)
	}

	_, misses, _ := c.Stats()
	if misses != 2 {
		t.Errorf("expected identical bytes under different languages to both miss, got %d misses", misses)
	}
}

func TestInvalidateForcesReparse(t *testing.T) {
	c := New(0)
	src := []byte("package p\n")

	if _, err := c.GetOrParse(newGoParser(), "go", src); err != nil {
		t.Fatalf("GetOrParse: %v", err)
	}
	c.Invalidate("go", src)
	if _, err := c.GetOrParse(newGoParser(), "go", src); err != nil {
		t.Fatalf("GetOrParse: %v", err)
	}

	_, misses, _ := c.Stats()
	if misses != 2 {
		t.Errorf("expected invalidate to force a second miss, got %d", misses)
	}
}
