// Package plan implements the replacement planner (C6): given a set of
// matches and a parsed replacement template, it expands each match into an
// Edit, reflows multi-line replacements to the match's indentation, resolves
// overlapping edits in favor of the leftmost/outermost one, and applies a
// file's edits to its source buffer.
package plan
