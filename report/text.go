package report

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/fatih/color"
	"github.com/pmezard/go-difflib/difflib"

	"github.com/oxhq/sgrep/orchestrate"
)

var (
	colorFile  = color.New(color.FgCyan, color.Bold)
	colorLine  = color.New(color.FgYellow)
	colorMatch = color.New(color.FgGreen)
	colorErr   = color.New(color.FgRed, color.Bold)
)

// WriteText renders res as a human-readable summary to w: an
// "N match(es):" header, then per match a file:line:col line, the first
// line of the matched code, and a "Placeholders:" list of its bindings
// sorted by name, then one error line per failed file. Matches spec.md
// §6's text output mode.
func WriteText(w io.Writer, res *orchestrate.Result, sources map[string]string) {
	fmt.Fprintf(w, "%d match(es):\n", len(res.Matches))
	for _, m := range res.Matches {
		src := sources[m.File]
		line, col := lineCol(src, m.Span.Start)
		fmt.Fprintf(w, "  %s\n", colorFile.Sprintf("%s:%d:%d", m.File, line, col))
		snippet := sliceSafe(src, m.Span.Start, m.Span.End)
		fmt.Fprintf(w, "    %s\n", colorMatch.Sprint(firstLine(snippet)))
		if len(m.Bindings) > 0 {
			names := make([]string, 0, len(m.Bindings))
			for name := range m.Bindings {
				names = append(names, name)
			}
			sort.Strings(names)
			fmt.Fprintln(w, "    Placeholders:")
			for _, name := range names {
				fmt.Fprintf(w, "      %s = %s\n", name, firstLine(m.Bindings[name].Text))
			}
		}
	}
	for _, e := range res.Errors {
		fmt.Fprintf(w, "%s %s: %s\n", colorErr.Sprint("error"), e.FilePath, e.Message)
	}
	if res.Cancelled {
		fmt.Fprintln(w, colorLine.Sprint("(run was cancelled before completion)"))
	}
}

// WriteDiff renders a unified diff of every file's planned edits, applied
// in-memory against that file's original text, without writing anything
// to disk.
func WriteDiff(w io.Writer, res *orchestrate.Result, sources map[string]string, apply func(file, source string) string) {
	for file, edits := range res.Edits {
		if len(edits) == 0 {
			continue
		}
		original := sources[file]
		modified := apply(file, original)
		if original == modified {
			continue
		}
		diff := difflib.UnifiedDiff{
			A:        difflib.SplitLines(original),
			B:        difflib.SplitLines(modified),
			FromFile: file,
			ToFile:   file,
			Context:  3,
		}
		text, err := difflib.GetUnifiedDiffString(diff)
		if err != nil {
			continue
		}
		fmt.Fprint(w, text)
	}
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i] + " …"
	}
	return s
}
