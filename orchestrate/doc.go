// Package orchestrate implements the orchestrator (C7): the driver loop
// that pulls (file, AST, tokens, oracle) tuples from an external provider,
// runs the structural matcher over each file on a worker pool, optionally
// plans replacement edits, reports progress, and aggregates, sorts and
// deduplicates the results.
package orchestrate
