// Package write applies an orchestrator's edits to disk: a temp-file
// write plus atomic rename per file, guarded by an on-disk lock so two
// concurrent sgrep processes never interleave writes to the same file.
package write
