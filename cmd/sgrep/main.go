// Command sgrep is the command-line driver for the structural search-
// and-replace engine: it parses a pattern (and, optionally, a
// replacement template), resolves a file list from either a single
// file or a workspace scan, runs the orchestrator, and renders the
// result as text or JSON.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(exitCodeFor(err))
	}
}

func newRootCmd() *cobra.Command {
	o := &options{}

	root := &cobra.Command{
		Use:           "sgrep",
		Short:         "Structural search and replace for curly-brace languages",
		Long:          "sgrep finds and optionally rewrites AST subtrees matching a $name$-hole pattern across Go, TypeScript, JavaScript and PHP source.",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSearch(cmd.Context(), o)
		},
	}

	flags := root.Flags()
	flags.StringVar(&o.Pattern, "pattern", "", "structural pattern to search for (required)")
	flags.StringVar(&o.Replace, "replace", "", "replacement template; enables replace mode")
	flags.BoolVar(&o.Apply, "apply", false, "write matched files; absent runs a dry-run preview")
	flags.BoolVar(&o.Stage, "stage", false, "with --apply, persist a staged edit set instead of writing immediately")
	flags.StringVar(&o.File, "file", "", "search a single file")
	flags.StringVar(&o.Workspace, "workspace", "", "scan every project under this directory")
	flags.StringVar(&o.FileFilter, "file-filter", "", "glob applied to each candidate file's name")
	flags.StringVar(&o.FolderFilter, "folder-filter", "", "substring applied to each candidate file's directory")
	flags.StringVar(&o.ProjectFilter, "project-filter", "", "glob applied to the top-level project directory name")
	flags.StringVar(&o.Output, "output", "text", `output format: "text" or "json"`)
	flags.IntVar(&o.Parallelism, "parallelism", 0, "worker pool size; 0 uses one worker per hardware thread")
	_ = root.MarkFlagRequired("pattern")

	root.AddCommand(newApplyStagedCmd())
	return root
}

type options struct {
	Pattern       string
	Replace       string
	Apply         bool
	Stage         bool
	File          string
	Workspace     string
	FileFilter    string
	FolderFilter  string
	ProjectFilter string
	Output        string
	Parallelism   int
}

// exitCode identifies spec.md §6's four exit codes. A plain error
// (flag parsing, an unexpected panic-free Go error with no exitCode)
// falls back to 2 (internal error).
type exitCode int

const (
	exitSuccess   exitCode = 0
	exitUserError exitCode = 1
	exitInternal  exitCode = 2
	exitCancelled exitCode = 3
)

type exitError struct {
	code exitCode
	err  error
}

func (e *exitError) Error() string { return e.err.Error() }
func (e *exitError) Unwrap() error { return e.err }

func exitCodeFor(err error) int {
	var ee *exitError
	if ok := asExitError(err, &ee); ok {
		return int(ee.code)
	}
	return int(exitInternal)
}

func asExitError(err error, target **exitError) bool {
	for err != nil {
		if ee, ok := err.(*exitError); ok {
			*target = ee
			return true
		}
		u, ok := err.(interface{ Unwrap() error })
		if !ok {
			return false
		}
		err = u.Unwrap()
	}
	return false
}
