package batch

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"runtime"
	"strings"
	"sync"

	"github.com/yaklabco/gomolar/internal/logging"
	"github.com/yaklabco/gomolar/pkg/compound"
	"github.com/yaklabco/gomolar/pkg/fsutil"
)

// Runner evaluates formulas from inline input and formula files.
// A Runner is safe for concurrent use.
type Runner struct {
	opts Options
}

// New creates a Runner. Missing parser and calculator options are filled
// with defaults.
func New(opts Options) *Runner {
	return &Runner{opts: opts.withDefaults()}
}

// Options returns the runner's effective options.
func (r *Runner) Options() Options {
	return r.opts
}

// Line is one formula read from a file.
type Line struct {
	Number int
	Text   string
}

// ParseLines splits formula file content into formulas. Blank lines are
// skipped and a '#' starts a comment that runs to the end of the line.
func ParseLines(content []byte) []Line {
	var lines []Line
	scanner := bufio.NewScanner(bytes.NewReader(content))
	number := 0
	for scanner.Scan() {
		number++
		text := scanner.Text()
		if idx := strings.IndexByte(text, '#'); idx >= 0 {
			text = text[:idx]
		}
		text = strings.TrimSpace(text)
		if text == "" {
			continue
		}
		lines = append(lines, Line{Number: number, Text: text})
	}
	return lines
}

// Evaluate parses and weighs a single formula.
func (r *Runner) Evaluate(source string, line int, input string) Item {
	item := Item{
		Source: source,
		Line:   line,
		Input:  input,
		Parse:  r.opts.Parser.Parse(input),
	}
	if !item.Parse.Valid {
		return item
	}

	item.Mass = r.opts.Calculator.Calculate(item.Parse.Elements)

	if r.opts.Resolver != nil {
		if info, ok := r.opts.Resolver.Resolve(item.Parse.Clean); ok {
			item.Compound = &info
		}
	}
	return item
}

// EvaluateInputs evaluates inline formulas in order.
func (r *Runner) EvaluateInputs(inputs []string) *Result {
	result := newResult()
	for idx, input := range inputs {
		result.accumulate(r.Evaluate("", idx+1, input))
	}
	return result
}

// StdinSource labels formulas read from standard input.
const StdinSource = "<stdin>"

// EvaluateLines evaluates lines read from source, keeping their line numbers.
func (r *Runner) EvaluateLines(source string, lines []Line) *Result {
	result := newResult()
	for _, line := range lines {
		result.accumulate(r.Evaluate(source, line.Number, line.Text))
	}
	return result
}

// Run discovers formula files and evaluates them on a worker pool.
// Items come back ordered by file path, then line.
func (r *Runner) Run(ctx context.Context) (*Result, error) {
	files, err := Discover(ctx, r.opts)
	if err != nil {
		return nil, err
	}
	return r.RunFiles(ctx, files)
}

type fileOutcome struct {
	path     string
	items    []Item
	snapshot *fsutil.Snapshot
	err      error
}

// RunFiles evaluates the given formula files on a worker pool.
func (r *Runner) RunFiles(ctx context.Context, files []string) (*Result, error) {
	logger := logging.FromContext(ctx)

	result := newResult()
	result.Stats.FilesDiscovered = len(files)

	if len(files) == 0 {
		return result, nil
	}

	jobs := r.opts.Jobs
	if jobs <= 0 {
		jobs = runtime.NumCPU()
	}
	if jobs > len(files) {
		jobs = len(files)
	}

	logger.Debug("evaluating formula files",
		logging.FieldFilesDiscovered, len(files),
		logging.FieldJobs, jobs)

	workCh := make(chan string)
	outCh := make(chan fileOutcome)

	var wg sync.WaitGroup
	for range jobs {
		wg.Add(1)
		go func() {
			defer wg.Done()
			r.worker(ctx, workCh, outCh)
		}()
	}

	go func() {
		defer close(workCh)
		for _, path := range files {
			select {
			case <-ctx.Done():
				return
			case workCh <- path:
			}
		}
	}()

	go func() {
		wg.Wait()
		close(outCh)
	}()

	// Workers finish out of order; collect by path and rebuild in order.
	outcomes := make(map[string]fileOutcome, len(files))
	for outcome := range outCh {
		outcomes[outcome.path] = outcome
	}

	for _, path := range files {
		outcome, ok := outcomes[path]
		if !ok {
			continue
		}
		if outcome.err != nil {
			result.Stats.FilesErrored++
			result.Errors = append(result.Errors, FileError{Path: path, Err: outcome.err})
			logger.Warn("skipping unreadable file",
				logging.FieldPath, path,
				logging.FieldError, outcome.err)
			continue
		}
		result.snapshots[path] = outcome.snapshot
		for _, item := range outcome.items {
			result.accumulate(item)
		}
	}

	if ctx.Err() != nil {
		return result, fmt.Errorf("run cancelled: %w", ctx.Err())
	}
	return result, nil
}

func (r *Runner) worker(ctx context.Context, workCh <-chan string, outCh chan<- fileOutcome) {
	for path := range workCh {
		select {
		case <-ctx.Done():
			return
		default:
		}

		outcome := fileOutcome{path: path}
		content, snapshot, err := fsutil.ReadFile(ctx, path)
		if err != nil {
			outcome.err = err
		} else {
			outcome.snapshot = snapshot
			for _, line := range ParseLines(content) {
				outcome.items = append(outcome.items, r.Evaluate(path, line.Number, line.Text))
			}
		}

		select {
		case <-ctx.Done():
			return
		case outCh <- outcome:
		}
	}
}

// Merge appends other's items, stats, and errors to r.
func (r *Result) Merge(other *Result) {
	if other == nil {
		return
	}
	for _, item := range other.Items {
		r.accumulate(item)
	}
	r.Stats.FilesDiscovered += other.Stats.FilesDiscovered
	r.Stats.FilesErrored += other.Stats.FilesErrored
	r.Errors = append(r.Errors, other.Errors...)
	if r.snapshots == nil {
		r.snapshots = make(map[string]*fsutil.Snapshot, len(other.snapshots))
	}
	for path, snap := range other.snapshots {
		r.snapshots[path] = snap
	}
}

// NewCachingResolver returns the local compound resolver wrapped in a
// fresh in-memory cache, suitable for sharing across a batch run.
func NewCachingResolver(opts Options) compound.Resolver {
	opts = opts.withDefaults()
	return compound.NewCachingResolver(compound.NewLocalResolver(nil, opts.Parser), compound.NewMemoryCache())
}
