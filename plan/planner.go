package plan

import (
	"strings"

	"github.com/oxhq/sgrep/match"
	"github.com/oxhq/sgrep/template"
)

// Plan expands every match in matches against tmpl, producing one Edit per
// match, sorted and overlap-resolved for a single file's source text.
// Dropped overlapping edits are returned separately rather than silently
// discarded (spec §4.6 "a dropped edit is reported as DroppedOverlap").
func Plan(file, source string, matches []match.Match, tmpl *template.Template) (edits []Edit, dropped []Dropped) {
	raw := make([]Edit, 0, len(matches))
	for _, m := range matches {
		expanded := expand(tmpl, m.Bindings)
		indent := baseIndent(source, m.Span.Start)
		raw = append(raw, Edit{
			File:        file,
			Start:       m.Span.Start,
			End:         m.Span.End,
			Replacement: reflow(expanded, indent),
			BaseIndent:  indent,
		})
	}
	return resolveOverlaps(raw)
}

// expand substitutes tmpl's hole references with their captured bindings.
// A structural capture substitutes the captured subtree's printed surface
// form; an Arguments capture substitutes the already comma-joined
// rendering built by package match, with no enclosing parentheses (spec
// §4.6).
func expand(tmpl *template.Template, bindings match.BindingSet) string {
	var b strings.Builder
	for _, part := range tmpl.Parts {
		switch p := part.(type) {
		case template.Text:
			b.WriteString(string(p))
		case template.HoleRef:
			b.WriteString(bindings[string(p)].Text)
		}
	}
	return b.String()
}
