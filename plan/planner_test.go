package plan

import (
	"testing"

	"github.com/oxhq/sgrep/match"
	"github.com/oxhq/sgrep/pattern"
	"github.com/oxhq/sgrep/template"
)

// scenario (e): indentation is preserved around a single-line replacement.
func TestPlanAndApplyPreservesIndent(t *testing.T) {
	source := `  Console.WriteLine("hi");`
	start := len("  ")
	end := len(source) - 1 // drop trailing ';'

	tmpl, err := template.Parse("log.info($a$)")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := tmpl.Validate([]string{"a"}); err != nil {
		t.Fatalf("unexpected validate error: %v", err)
	}

	m := match.Match{
		File:     "f.go",
		Span:     pattern.Span{Start: start, End: end},
		Bindings: match.BindingSet{"a": {Text: `"hi"`}},
	}

	edits, dropped := Plan("f.go", source, []match.Match{m}, tmpl)
	if len(dropped) != 0 {
		t.Fatalf("expected no dropped edits, got %d", len(dropped))
	}
	if len(edits) != 1 {
		t.Fatalf("expected 1 edit, got %d", len(edits))
	}
	if edits[0].BaseIndent != "  " {
		t.Errorf("expected base indent %q, got %q", "  ", edits[0].BaseIndent)
	}

	result := Apply(source, edits)
	want := `  log.info("hi");`
	if result != want {
		t.Errorf("expected %q, got %q", want, result)
	}
}

func TestPlanReflowsMultilineReplacement(t *testing.T) {
	source := "    old();"
	tmpl, _ := template.Parse("first($x$);\nsecond($x$);")
	_ = tmpl.Validate([]string{"x"})

	m := match.Match{
		File:     "f.go",
		Span:     pattern.Span{Start: 4, End: len(source) - 1},
		Bindings: match.BindingSet{"x": {Text: "v"}},
	}

	edits, _ := Plan("f.go", source, []match.Match{m}, tmpl)
	want := "first(v);\n    second(v);"
	if edits[0].Replacement != want {
		t.Errorf("expected %q, got %q", want, edits[0].Replacement)
	}
}

func TestResolveOverlapsDropsInnerEdit(t *testing.T) {
	edits := []Edit{
		{File: "f.go", Start: 0, End: 10, Replacement: "outer"},
		{File: "f.go", Start: 2, End: 5, Replacement: "inner"},
	}
	kept, dropped := resolveOverlaps(edits)
	if len(kept) != 1 || kept[0].Replacement != "outer" {
		t.Fatalf("expected only the outer edit kept, got %+v", kept)
	}
	if len(dropped) != 1 || dropped[0].Reason != "DroppedOverlap" {
		t.Fatalf("expected 1 DroppedOverlap, got %+v", dropped)
	}
}
