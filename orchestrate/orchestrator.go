package orchestrate

import (
	"context"
	"sort"
	"sync"

	"github.com/oxhq/sgrep/match"
	"github.com/oxhq/sgrep/plan"
	"github.com/oxhq/sgrep/template"
)

// Run drives one end-to-end search (and, if tmpl is non-nil, replace)
// pass: it asks provider for the file list, matches compiled against
// every file on a worker pool, optionally plans edits, and returns the
// aggregated, sorted, deduplicated result.
//
// progress may be nil; if non-nil it receives stage-transition events plus
// a throttled event every cfg.ProgressEvery completed files, and is
// closed by Run before it returns.
func Run(ctx context.Context, provider Provider, compiled *match.Compiled, tmpl *template.Template, cfg Config, progress chan<- ProgressEvent) (*Result, error) {
	cfg = cfg.withDefaults()
	if progress != nil {
		defer close(progress)
		emit(progress, ProgressEvent{Stage: StageScanning, Message: "scanning"})
	}

	files, err := provider.Files()
	if err != nil {
		return nil, &Error{Kind: ErrInternal, Detail: err.Error()}
	}
	if progress != nil {
		emit(progress, ProgressEvent{Stage: StageLoading, Message: "loading", TotalFiles: len(files)})
	}

	ctx, cancel := context.WithTimeout(ctx, cfg.GlobalTimeout)
	defer cancel()

	done := make(chan fileDone, len(files))
	var collectorWG sync.WaitGroup
	if progress != nil {
		collectorWG.Add(1)
		go func() {
			defer collectorWG.Done()
			runProgressCollector(done, len(files), cfg.ProgressEvery, progress)
		}()
	} else {
		// Drain done so workers posting to it never block even without
		// a caller-supplied progress channel.
		go func() {
			for range done {
			}
		}()
	}

	type fileResult struct {
		matches   []match.Match
		err       *FileError
		edits     []plan.Edit
		dropped   []plan.Dropped
		cancelled bool
	}

	jobs := make(chan int, len(files))
	for i := range files {
		jobs <- i
	}
	close(jobs)

	results := make([]fileResult, len(files))
	var matchTotal int64
	var tooMany bool
	var mu sync.Mutex

	var wg sync.WaitGroup
	for w := 0; w < cfg.Parallelism; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				select {
				case <-ctx.Done():
					results[i] = fileResult{cancelled: true}
					done <- fileDone{}
					continue
				default:
				}
				f := files[i]
				fileCtx, fileCancel := context.WithTimeout(ctx, cfg.PerFileTimeout)
				m := match.New(compiled, f.Oracle)
				matches, cancelled := m.MatchFileContext(fileCtx, f.Path, f.AST, cfg.NodeInterval)
				timedOut := fileCtx.Err() == context.DeadlineExceeded
				fileCancel()

				r := fileResult{matches: matches, cancelled: cancelled && !timedOut}
				if timedOut {
					r.err = &FileError{FilePath: f.Path, Kind: ErrTimeout, Message: "per-file timeout exceeded"}
					r.matches = nil
				} else if tmpl != nil && len(matches) > 0 {
					edits, dropped := plan.Plan(f.Path, f.Source, matches, tmpl)
					r.edits = edits
					r.dropped = dropped
				}

				mu.Lock()
				matchTotal += int64(len(r.matches))
				if int(matchTotal) > cfg.MaxMatches {
					tooMany = true
				}
				mu.Unlock()

				results[i] = r
				done <- fileDone{}
			}
		}()
	}
	wg.Wait()
	close(done)
	collectorWG.Wait()

	if tooMany {
		return nil, &Error{Kind: ErrTooManyMatches, Detail: "exceeded maximum match count"}
	}

	res := &Result{Edits: make(map[string][]plan.Edit)}
	for i, r := range results {
		if r.cancelled {
			res.Cancelled = true
		}
		if r.err != nil {
			res.Errors = append(res.Errors, *r.err)
			continue
		}
		res.Matches = append(res.Matches, r.matches...)
		if len(r.edits) > 0 {
			res.Edits[files[i].Path] = r.edits
		}
		res.Dropped = append(res.Dropped, r.dropped...)
	}

	res.Matches = dedupMatches(res.Matches)
	sort.SliceStable(res.Matches, func(i, j int) bool {
		if res.Matches[i].File != res.Matches[j].File {
			return res.Matches[i].File < res.Matches[j].File
		}
		return res.Matches[i].Span.Start < res.Matches[j].Span.Start
	})

	if progress != nil {
		emit(progress, ProgressEvent{Stage: StageComplete, Message: "complete", TotalFiles: len(files), ProcessedFiles: len(files)})
	}
	return res, nil
}

func emit(progress chan<- ProgressEvent, ev ProgressEvent) {
	progress <- ev
}
