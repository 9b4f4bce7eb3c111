package orchestrate

import (
	"github.com/oxhq/sgrep/match"
	"github.com/oxhq/sgrep/plan"
)

// Result is the aggregated outcome of one orchestrator run.
type Result struct {
	Matches   []match.Match
	Errors    []FileError
	Edits     map[string][]plan.Edit
	Dropped   []plan.Dropped
	Cancelled bool
}

// dedupKey identifies a match for deduplication (spec §4.7:
// "deduplicated on (file, start, end, node-id)"). This package has no
// notion of a node-id distinct from the AST node pointer itself, so the
// node's identity stands in for it.
type dedupKey struct {
	file       string
	start, end int
	node       match.ASTNode
}

func dedupMatches(matches []match.Match) []match.Match {
	seen := make(map[dedupKey]bool, len(matches))
	out := make([]match.Match, 0, len(matches))
	for _, m := range matches {
		k := dedupKey{file: m.File, start: m.Span.Start, end: m.Span.End, node: m.Node}
		if seen[k] {
			continue
		}
		seen[k] = true
		out = append(out, m)
	}
	return out
}
