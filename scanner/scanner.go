package scanner

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/oxhq/sgrep/orchestrate"
	"github.com/oxhq/sgrep/providers"
)

// skipDirs are directory names never descended into, regardless of
// filters — carried over from core/filewalker.go's own hardcoded skip
// list (vendor/node_modules/build artifacts are never source).
var skipDirs = map[string]bool{
	".git":         true,
	"vendor":       true,
	"node_modules": true,
	"dist":         true,
	"build":        true,
}

// Config controls which files under Root are scanned. The three filters
// correspond directly to spec.md §6's `--file-filter`/`--folder-filter`/
// `--project-filter` flags.
type Config struct {
	Root string

	// FileFilter is a glob matched against a candidate file's basename
	// (e.g. "*.go"). Empty means no filtering by name.
	FileFilter string

	// FolderFilter is a plain substring checked against a candidate
	// file's directory path (relative to Root). Empty means no
	// filtering by folder.
	FolderFilter string

	// ProjectFilter is a glob matched against the first path segment
	// under Root (its "project" when Root holds several sibling
	// projects, spec.md §6's `--workspace` case). Empty means no
	// filtering by project.
	ProjectFilter string

	FollowSymlinks bool

	// Workers bounds how many files are read and parsed concurrently.
	// Zero means one worker per hardware thread.
	Workers int
}

// Scanner walks a workspace, resolves each candidate file's language via
// a providers.Registry, and parses it into an orchestrate.FileInput.
type Scanner struct {
	cfg      Config
	registry *providers.Registry
}

func New(cfg Config, registry *providers.Registry) *Scanner {
	if cfg.Workers <= 0 {
		cfg.Workers = runtime.NumCPU()
	}
	return &Scanner{cfg: cfg, registry: registry}
}

// Files implements orchestrate.Provider: it walks s.cfg.Root, applies
// the configured filters, resolves each surviving file's provider by
// extension, and parses it. Files with no registered provider, or that
// fail to read/parse, are skipped rather than failing the whole scan;
// skipped files are not reported anywhere, so orchestrate.Run never sees
// them and lists no error for them.
func (s *Scanner) Files() ([]orchestrate.FileInput, error) {
	paths, err := s.walk()
	if err != nil {
		return nil, err
	}

	type indexed struct {
		idx   int
		input orchestrate.FileInput
		ok    bool
	}

	jobs := make(chan int, len(paths))
	results := make([]indexed, len(paths))
	var wg sync.WaitGroup

	for i := range paths {
		jobs <- i
	}
	close(jobs)

	for w := 0; w < s.cfg.Workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				input, ok := s.parseOne(paths[i])
				results[i] = indexed{idx: i, input: input, ok: ok}
			}
		}()
	}
	wg.Wait()

	out := make([]orchestrate.FileInput, 0, len(paths))
	for _, r := range results {
		if r.ok {
			out = append(out, r.input)
		}
	}
	return out, nil
}

// ParseFile parses a single file through the registered provider for
// its extension — used by the CLI's single-file (`--file F`) mode,
// which bypasses workspace filtering entirely.
func (s *Scanner) ParseFile(path string) (orchestrate.FileInput, error) {
	source, err := os.ReadFile(path)
	if err != nil {
		return orchestrate.FileInput{}, fmt.Errorf("scanner: read %s: %w", path, err)
	}
	provider, ok := s.registry.ForExtension(filepath.Ext(path))
	if !ok {
		return orchestrate.FileInput{}, fmt.Errorf("scanner: no provider registered for %s", path)
	}
	ast, oracle, err := provider.Parse(source)
	if err != nil {
		return orchestrate.FileInput{}, fmt.Errorf("scanner: parse %s: %w", path, err)
	}
	return orchestrate.FileInput{Path: path, Source: string(source), AST: ast, Oracle: oracle}, nil
}

func (s *Scanner) parseOne(path string) (orchestrate.FileInput, bool) {
	input, err := s.ParseFile(path)
	if err != nil {
		return orchestrate.FileInput{}, false
	}
	return input, true
}

func (s *Scanner) walk() ([]string, error) {
	root := s.cfg.Root
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("scanner: cannot access workspace %s: %w", root, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("scanner: %s is not a directory", root)
	}

	var paths []string
	var visit func(dir string, depth int) error
	visit = func(dir string, depth int) error {
		entries, err := os.ReadDir(dir)
		if err != nil {
			return nil // unreadable directories are skipped, not fatal
		}
		for _, entry := range entries {
			full := filepath.Join(dir, entry.Name())

			if entry.Type()&os.ModeSymlink != 0 {
				if !s.cfg.FollowSymlinks {
					continue
				}
				resolved, err := filepath.EvalSymlinks(full)
				if err != nil {
					continue
				}
				rinfo, err := os.Stat(resolved)
				if err != nil {
					continue
				}
				if rinfo.IsDir() {
					if err := visit(full, depth+1); err != nil {
						return err
					}
					continue
				}
				if s.included(root, full) {
					paths = append(paths, full)
				}
				continue
			}

			if entry.IsDir() {
				if skipDirs[entry.Name()] || (strings.HasPrefix(entry.Name(), ".") && entry.Name() != ".") {
					continue
				}
				if depth == 0 && !s.matchesProject(entry.Name()) {
					continue
				}
				if err := visit(full, depth+1); err != nil {
					return err
				}
				continue
			}

			if s.included(root, full) {
				paths = append(paths, full)
			}
		}
		return nil
	}

	if err := visit(root, 0); err != nil {
		return nil, err
	}
	return paths, nil
}

func (s *Scanner) matchesProject(name string) bool {
	if s.cfg.ProjectFilter == "" {
		return true
	}
	matched, err := doublestar.Match(s.cfg.ProjectFilter, name)
	return err == nil && matched
}

func (s *Scanner) included(root, full string) bool {
	if s.cfg.FileFilter != "" {
		matched, err := doublestar.Match(s.cfg.FileFilter, filepath.Base(full))
		if err != nil || !matched {
			return false
		}
	}
	if s.cfg.FolderFilter != "" {
		rel, err := filepath.Rel(root, filepath.Dir(full))
		if err != nil || !strings.Contains(rel, s.cfg.FolderFilter) {
			return false
		}
	}
	if _, ok := s.registry.ForExtension(filepath.Ext(full)); !ok {
		return false
	}
	return true
}

// Count reports how many candidate files a scan would visit, without
// parsing them.
func Count(ctx context.Context, s *Scanner) (int, error) {
	select {
	case <-ctx.Done():
		return 0, ctx.Err()
	default:
	}
	paths, err := s.walk()
	if err != nil {
		return 0, err
	}
	return len(paths), nil
}
