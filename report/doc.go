// Package report renders an orchestrate.Result into the two output forms
// spec.md §6 names: a JSON document (matchCount/matches/errors, plus
// replacements/applicationResults in replace/apply mode) for machine
// consumption, and a colorized text summary plus unified diff for a
// terminal.
package report
