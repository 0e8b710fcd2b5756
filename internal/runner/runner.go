package runner

import (
	"bytes"
	"context"
	"io/fs"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/ayrat555/solidity/internal/fixture"
	"github.com/ayrat555/solidity/internal/frontend"
	"github.com/ayrat555/solidity/internal/syntaxtest"
)

// Status is the outcome of one fixture run.
type Status uint8

const (
	// StatusRunning is only ever emitted as an event, never stored in a
	// FileResult.
	StatusRunning Status = iota
	StatusPassed
	StatusFailed
	StatusErrored
	StatusSkipped
)

func (s Status) String() string {
	switch s {
	case StatusRunning:
		return "running"
	case StatusPassed:
		return "passed"
	case StatusFailed:
		return "failed"
	case StatusErrored:
		return "errored"
	case StatusSkipped:
		return "skipped"
	}
	return "unknown"
}

// Event notifies a UI about per-fixture progress.
type Event struct {
	Path   string
	Status Status
}

// FileResult is the outcome of running one fixture file.
type FileResult struct {
	Path   string
	Status Status
	// Err holds fixture load or expectation parse failures; the fixture is
	// unreadable, not failing.
	Err error
	// Output is the rendered mismatch report for failed fixtures: the
	// expected/obtained diff followed by the source annotated with the
	// obtained diagnostics.
	Output string
	// Updated reports that the fixture's expectation block was rewritten
	// in accept mode.
	Updated bool
}

// Summary tallies a whole run.
type Summary struct {
	Total    int
	Passed   int
	Failed   int
	Errored  int
	Skipped  int
	Duration time.Duration
}

// Options configures a run.
type Options struct {
	// Jobs limits parallel workers; 0 means GOMAXPROCS.
	Jobs int
	// Accept rewrites failing fixtures' expectation blocks from the
	// obtained diagnostics instead of leaving them failing.
	Accept bool
	// Formatted enables colored mismatch reports and source highlighting.
	Formatted bool
	// Cache, when set, skips fixtures whose content already passed.
	Cache *Cache
	// Events, when set, receives per-fixture progress notifications.
	// The channel is not closed by Run.
	Events chan<- Event
}

// ListFiles returns the sorted list of fixture files under dir with the
// given extension.
func ListFiles(dir, ext string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.HasSuffix(path, ext) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(files)
	return files, nil
}

// Run executes every fixture against the frontend, in parallel up to
// Options.Jobs workers. Results keep the order of files regardless of
// completion order. The returned error reflects run infrastructure failures
// (cancellation), never a failing fixture.
func Run(ctx context.Context, fe frontend.Frontend, files []string, opts Options) (Summary, []FileResult, error) {
	start := time.Now()
	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	results := make([]FileResult, len(files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, max(len(files), 1)))
	for i, path := range files {
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}
			emit(opts.Events, Event{Path: path, Status: StatusRunning})
			results[i] = runFile(gctx, fe, path, opts)
			emit(opts.Events, Event{Path: path, Status: results[i].Status})
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Summary{}, nil, err
	}

	summary := Summary{Total: len(results), Duration: time.Since(start)}
	for _, r := range results {
		switch r.Status {
		case StatusPassed:
			summary.Passed++
		case StatusFailed:
			summary.Failed++
		case StatusErrored:
			summary.Errored++
		case StatusSkipped:
			summary.Skipped++
		}
	}
	return summary, results, nil
}

func emit(ch chan<- Event, ev Event) {
	if ch != nil {
		ch <- ev
	}
}

func runFile(ctx context.Context, fe frontend.Frontend, path string, opts Options) FileResult {
	fx, err := fixture.Load(path)
	if err != nil {
		return FileResult{Path: path, Status: StatusErrored, Err: err}
	}

	if opts.Cache != nil && !opts.Accept {
		if passed, ok := opts.Cache.Get(fx.Digest()); ok && passed {
			return FileResult{Path: path, Status: StatusSkipped}
		}
	}

	expected, err := syntaxtest.ParseExpectations(fx.Expectations)
	if err != nil {
		return FileResult{Path: path, Status: StatusErrored, Err: err}
	}

	actual := fe.Compile(ctx, fx.Source, fx.Settings).Diagnostics()

	if syntaxtest.Equal(expected, actual) {
		if opts.Cache != nil {
			// Best effort: a cold cache never fails a run.
			_ = opts.Cache.Put(fx.Digest(), true)
		}
		return FileResult{Path: path, Status: StatusPassed}
	}

	var buf bytes.Buffer
	syntaxtest.PrintMismatch(&buf, expected, actual, "  ", opts.Formatted)
	syntaxtest.PrintSource(&buf, fx.Source, actual, "    ", opts.Formatted)

	result := FileResult{Path: path, Status: StatusFailed, Output: buf.String()}
	if opts.Accept {
		if err := fx.WriteUpdatedExpectations(actual); err != nil {
			result.Status = StatusErrored
			result.Err = err
			return result
		}
		result.Updated = true
	}
	return result
}
