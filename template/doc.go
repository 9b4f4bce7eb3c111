// Package template parses a replacement string — the same $name$ syntax as
// package pattern, minus kinds and constraints — into an ordered sequence
// of literal text and hole references (C5).
package template
