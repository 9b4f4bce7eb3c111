package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/oxhq/sgrep/config"
	"github.com/oxhq/sgrep/match"
	"github.com/oxhq/sgrep/orchestrate"
	"github.com/oxhq/sgrep/pattern"
	"github.com/oxhq/sgrep/plan"
	"github.com/oxhq/sgrep/providers"
	"github.com/oxhq/sgrep/providers/golang"
	"github.com/oxhq/sgrep/providers/javascript"
	"github.com/oxhq/sgrep/providers/php"
	"github.com/oxhq/sgrep/providers/typescript"
	"github.com/oxhq/sgrep/report"
	"github.com/oxhq/sgrep/scanner"
	"github.com/oxhq/sgrep/stage"
	"github.com/oxhq/sgrep/template"
	"github.com/oxhq/sgrep/write"
)

func newRegistry() *providers.Registry {
	r := providers.NewRegistry()
	r.Register(golang.New())
	r.Register(javascript.New())
	r.Register(typescript.New())
	r.Register(php.New())
	return r
}

func runSearch(ctx context.Context, o *options) error {
	if o.Pattern == "" {
		return &exitError{exitUserError, errors.New("sgrep: --pattern is required")}
	}
	if o.File == "" && o.Workspace == "" {
		return &exitError{exitUserError, errors.New("sgrep: one of --file or --workspace is required")}
	}

	p, err := pattern.Parse(o.Pattern)
	if err != nil {
		return &exitError{exitUserError, fmt.Errorf("sgrep: invalid pattern: %w", err)}
	}
	compiled, err := match.Compile(p)
	if err != nil {
		return &exitError{exitUserError, fmt.Errorf("sgrep: invalid pattern: %w", err)}
	}

	var tmpl *template.Template
	if o.Replace != "" {
		t, err := parseTemplate(o.Replace, p.Names())
		if err != nil {
			return &exitError{exitUserError, err}
		}
		tmpl = t
	}

	registry := newRegistry()

	var provider orchestrate.Provider
	if o.File != "" {
		s := scanner.New(scanner.Config{Root: "."}, registry)
		input, err := s.ParseFile(o.File)
		if err != nil {
			return &exitError{exitUserError, fmt.Errorf("sgrep: %w", err)}
		}
		provider = orchestrate.StaticProvider{input}
	} else {
		s := scanner.New(scanner.Config{
			Root:          o.Workspace,
			FileFilter:    o.FileFilter,
			FolderFilter:  o.FolderFilter,
			ProjectFilter: o.ProjectFilter,
			Workers:       o.Parallelism,
		}, registry)
		provider = s
	}

	cfg := config.Load()
	parallelism := o.Parallelism
	if parallelism == 0 {
		parallelism = cfg.Parallelism
	}

	runCfg := orchestrate.Config{Parallelism: parallelism}
	progress := make(chan orchestrate.ProgressEvent, 16)
	done := make(chan struct{})
	go func() {
		defer close(done)
		report.StreamProgress(os.Stderr, progress)
	}()

	res, err := orchestrate.Run(ctx, provider, compiled, tmpl, runCfg, progress)
	<-done
	if err != nil {
		var oerr *orchestrate.Error
		if errors.As(err, &oerr) && oerr.Kind == orchestrate.ErrCancelled {
			return &exitError{exitCancelled, err}
		}
		return &exitError{exitInternal, err}
	}
	if res.Cancelled {
		return &exitError{exitCancelled, fmt.Errorf("sgrep: run cancelled")}
	}

	sources := sourcesOf(provider, res)

	if o.Apply && tmpl != nil {
		return applyOrStage(o, cfg, registry, res, sources)
	}

	return render(o, res, sources, tmpl != nil)
}

// parseTemplate is split out only to keep runSearch's import list honest
// about template.Template living in package template.
func parseTemplate(raw string, names []string) (*template.Template, error) {
	t, err := template.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("sgrep: invalid replacement: %w", err)
	}
	if err := t.Validate(names); err != nil {
		return nil, fmt.Errorf("sgrep: invalid replacement: %w", err)
	}
	return t, nil
}

// sourcesOf builds a file->source map for report rendering. A static
// provider's sources are reused as they are; any other provider's Files
// is called again, which for the workspace scanner reads and parses every
// file a second time.
func sourcesOf(provider orchestrate.Provider, res *orchestrate.Result) map[string]string {
	sources := map[string]string{}
	if sp, ok := provider.(orchestrate.StaticProvider); ok {
		for _, f := range sp {
			sources[f.Path] = f.Source
		}
		return sources
	}
	files, err := provider.Files()
	if err != nil {
		return sources
	}
	for _, f := range files {
		sources[f.Path] = f.Source
	}
	return sources
}

func render(o *options, res *orchestrate.Result, sources map[string]string, replaceMode bool) error {
	if o.Output == "json" {
		var applied map[string]error
		doc := report.Build(res, sources, applied)
		out, err := doc.MarshalIndent()
		if err != nil {
			return &exitError{exitInternal, err}
		}
		fmt.Println(string(out))
		return nil
	}

	report.WriteText(os.Stdout, res, sources)
	if replaceMode {
		report.WriteDiff(os.Stdout, res, sources, func(file, source string) string {
			return plan.Apply(source, res.Edits[file])
		})
	}
	return nil
}

// applyOrStage either writes every file with staged edits directly
// (default) or, with --stage, records them in the staging database for
// a later `sgrep apply <stage-id>` to commit (SPEC_FULL.md §9.2).
func applyOrStage(o *options, cfg *config.Config, registry *providers.Registry, res *orchestrate.Result, sources map[string]string) error {
	if o.Stage {
		return stageEdits(cfg, o, registry, res, sources)
	}

	writer := write.New(write.DefaultConfig())
	applied := map[string]error{}
	for file, edits := range res.Edits {
		if len(edits) == 0 {
			continue
		}
		modified := plan.Apply(sources[file], edits)
		applied[file] = writer.WriteFile(file, modified)
	}

	if o.Output == "json" {
		doc := report.Build(res, sources, applied)
		out, err := doc.MarshalIndent()
		if err != nil {
			return &exitError{exitInternal, err}
		}
		fmt.Println(string(out))
		return nil
	}

	for file, err := range applied {
		if err != nil {
			fmt.Fprintf(os.Stderr, "error applying %s: %v\n", file, err)
			continue
		}
		fmt.Printf("applied %s\n", file)
	}
	return nil
}

func stageEdits(cfg *config.Config, o *options, registry *providers.Registry, res *orchestrate.Result, sources map[string]string) error {
	db, err := stage.Connect(cfg.DefaultDB, cfg.LibSQLAuthToken, false)
	if err != nil {
		return &exitError{exitInternal, fmt.Errorf("sgrep: connecting staging db: %w", err)}
	}
	if err := stage.Migrate(db); err != nil {
		return &exitError{exitInternal, fmt.Errorf("sgrep: migrating staging db: %w", err)}
	}
	store := stage.NewStore(db, time.Duration(cfg.StageTTLHours)*time.Hour)

	sessionID, err := store.NewSession()
	if err != nil {
		return &exitError{exitInternal, fmt.Errorf("sgrep: starting stage session: %w", err)}
	}

	var stageIDs []string
	for file, edits := range res.Edits {
		if len(edits) == 0 {
			continue
		}
		id, err := store.Record(sessionID, languageOf(registry, file), o.Pattern, o.Replace, file, edits)
		if err != nil {
			return &exitError{exitInternal, fmt.Errorf("sgrep: recording stage for %s: %w", file, err)}
		}
		stageIDs = append(stageIDs, id)
	}

	if o.Output == "json" {
		out, err := json.MarshalIndent(map[string]any{"sessionId": sessionID, "stageIds": stageIDs}, "", "  ")
		if err != nil {
			return &exitError{exitInternal, err}
		}
		fmt.Println(string(out))
		return nil
	}

	fmt.Printf("staged %d file(s) under session %s:\n", len(stageIDs), sessionID)
	for _, id := range stageIDs {
		fmt.Printf("  %s\n", id)
	}
	fmt.Println("run `sgrep apply <stage-id>` to commit a staged edit")
	return nil
}

func languageOf(registry *providers.Registry, file string) string {
	if p, ok := registry.ForExtension(filepath.Ext(file)); ok {
		return p.Language()
	}
	return ""
}
