// Package scanner enumerates candidate source files under a workspace
// and turns each one into an orchestrate.FileInput by resolving its
// language through a providers.Registry and parsing it. It implements
// spec.md §6's `--workspace`/`--file-filter`/`--folder-filter`/
// `--project-filter` flags and satisfies orchestrate.Provider.
package scanner
