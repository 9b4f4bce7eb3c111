package orchestrate

import "github.com/oxhq/sgrep/match"

// FileInput is one unit of work handed to the orchestrator by an external
// file-provider: a parsed file's AST, its token stream, and the semantic
// oracle built for it. The original source isn't part of that tuple on
// its own, but indentation reflow and edit application both need the
// original byte buffer a file's AST was parsed from, so it rides along
// here rather than being re-read by the orchestrator itself.
type FileInput struct {
	Path   string
	Source string
	AST    match.AST
	Oracle match.Oracle
	Tokens []match.Token
}

// Provider supplies the list of files to process for one run. A real
// implementation (package scanner, backed by the compilation cache in
// package cache) enumerates a workspace and parses each candidate file;
// tests substitute a fixed in-memory slice.
type Provider interface {
	Files() ([]FileInput, error)
}

// StaticProvider is a Provider over a fixed, already-built slice of
// FileInput — the orchestrator's own tests use it directly, and it is a
// reasonable stand-in wherever the caller has already resolved its file
// list (e.g. single-file mode, spec §6 `--file F`).
type StaticProvider []FileInput

func (p StaticProvider) Files() ([]FileInput, error) { return p, nil }
