package batch

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/yaklabco/gomolar/internal/logging"
	"github.com/yaklabco/gomolar/pkg/fsutil"
)

// DefaultDebounce is how long Watch waits for more changes before re-running.
const DefaultDebounce = 300 * time.Millisecond

// RunFunc receives the result of each run started by Watch.
type RunFunc func(result *Result, err error)

// Watch runs the batch once, then again whenever a formula file under
// the watched paths is created, changed, or removed. Bursts of events are
// coalesced by debounce; events that leave every file's content unchanged
// do not trigger a run. Watch returns nil when ctx is cancelled.
func (r *Runner) Watch(ctx context.Context, debounce time.Duration, onRun RunFunc) error {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	logger := logging.FromContext(ctx)

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer func() { _ = watcher.Close() }()

	dirs, err := r.watchDirs()
	if err != nil {
		return err
	}
	for _, dir := range dirs {
		if err := watcher.Add(dir); err != nil {
			logger.Warn("failed to watch directory", logging.FieldPath, dir, logging.FieldError, err)
			continue
		}
		logger.Debug("watching directory", logging.FieldPath, dir)
	}

	last, err := r.Run(ctx)
	onRun(last, err)

	timer := time.NewTimer(debounce)
	timer.Stop()
	pending := false

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Has(fsnotify.Create) {
				r.watchNewDir(watcher, event.Name)
			}
			if event.Has(fsnotify.Chmod) && !event.Has(fsnotify.Write) {
				continue
			}
			pending = true
			timer.Reset(debounce)

		case werr, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watcher error", logging.FieldError, werr)

		case <-timer.C:
			if !pending {
				continue
			}
			pending = false

			changed, cerr := r.changedSince(ctx, last)
			if cerr != nil {
				logger.Warn("change detection failed", logging.FieldError, cerr)
				changed = true
			}
			if !changed {
				continue
			}

			next, rerr := r.Run(ctx)
			if errors.Is(rerr, context.Canceled) {
				return nil
			}
			if next != nil {
				last = next
			}
			onRun(next, rerr)
		}
	}
}

// changedSince reports whether the set of formula files or any file's
// content differs from what last saw.
func (r *Runner) changedSince(ctx context.Context, last *Result) (bool, error) {
	files, err := Discover(ctx, r.opts)
	if err != nil {
		return false, err
	}
	if last == nil || len(files) != len(last.snapshots) {
		return true, nil
	}

	for _, path := range files {
		snap, ok := last.snapshots[path]
		if !ok {
			return true, nil
		}
		changed, err := fsutil.Changed(ctx, snap)
		if err != nil {
			return false, err
		}
		if changed {
			return true, nil
		}
	}
	return false, nil
}

// watchDirs lists every directory to watch: each directory path and its
// non-hidden subdirectories, plus the parent directory of each file path.
func (r *Runner) watchDirs() ([]string, error) {
	workDir, err := resolveWorkDir(r.opts.WorkingDir)
	if err != nil {
		return nil, fmt.Errorf("resolve working directory: %w", err)
	}

	var dirs []string
	for _, inputPath := range r.opts.effectivePaths() {
		absPath := inputPath
		if !filepath.IsAbs(inputPath) {
			absPath = filepath.Join(workDir, inputPath)
		}
		absPath = filepath.Clean(absPath)

		info, err := os.Stat(absPath)
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", inputPath, err)
		}
		if !info.IsDir() {
			dirs = append(dirs, filepath.Dir(absPath))
			continue
		}

		err = filepath.WalkDir(absPath, func(path string, entry fs.DirEntry, walkErr error) error {
			if walkErr != nil {
				if os.IsPermission(walkErr) {
					return nil
				}
				return walkErr
			}
			if !entry.IsDir() {
				return nil
			}
			if path != absPath && strings.HasPrefix(entry.Name(), ".") {
				return filepath.SkipDir
			}
			dirs = append(dirs, path)
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("walk directory %s: %w", absPath, err)
		}
	}

	slices.Sort(dirs)
	return slices.Compact(dirs), nil
}

func (r *Runner) watchNewDir(watcher *fsnotify.Watcher, path string) {
	info, err := os.Stat(path)
	if err != nil || !info.IsDir() || strings.HasPrefix(filepath.Base(path), ".") {
		return
	}
	_ = watcher.Add(path)
}
