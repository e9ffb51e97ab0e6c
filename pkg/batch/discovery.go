package batch

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// Discover finds formula files for opts. It returns a deterministically
// sorted, de-duplicated list of absolute file paths.
//
// A file named in Paths is always included unless excluded. A directory is
// searched with each of opts.Patterns; hidden files and directories below
// it are skipped.
func Discover(ctx context.Context, opts Options) ([]string, error) {
	workDir, err := resolveWorkDir(opts.WorkingDir)
	if err != nil {
		return nil, fmt.Errorf("resolve working directory: %w", err)
	}

	patterns := opts.effectivePatterns()
	for _, pattern := range append(append([]string{}, patterns...), opts.Exclude...) {
		if !doublestar.ValidatePattern(filepath.ToSlash(pattern)) {
			return nil, fmt.Errorf("invalid pattern %q", pattern)
		}
	}

	seen := make(map[string]struct{})
	var files []string
	add := func(path string) {
		if excluded(workDir, path, opts.Exclude) {
			return
		}
		if _, ok := seen[path]; !ok {
			seen[path] = struct{}{}
			files = append(files, path)
		}
	}

	for _, inputPath := range opts.effectivePaths() {
		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("discovery cancelled: %w", ctx.Err())
		default:
		}

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
			add(absPath)
			continue
		}

		matches, err := globDir(absPath, patterns)
		if err != nil {
			return nil, err
		}
		for _, match := range matches {
			add(match)
		}
	}

	sort.Strings(files)
	return files, nil
}

// globDir returns the regular files under root matching any pattern.
func globDir(root string, patterns []string) ([]string, error) {
	fsys := os.DirFS(root)
	var out []string

	for _, pattern := range patterns {
		matches, err := doublestar.Glob(fsys, filepath.ToSlash(pattern), doublestar.WithFilesOnly())
		if err != nil {
			return nil, fmt.Errorf("glob %s in %s: %w", pattern, root, err)
		}
		for _, rel := range matches {
			if hasHiddenComponent(rel) {
				continue
			}
			out = append(out, filepath.Join(root, filepath.FromSlash(rel)))
		}
	}
	return out, nil
}

// excluded reports whether path, relative to workDir, or any of its parent
// directories matches an exclude pattern.
func excluded(workDir, path string, patterns []string) bool {
	if len(patterns) == 0 {
		return false
	}

	rel, err := filepath.Rel(workDir, path)
	if err != nil {
		rel = path
	}
	rel = filepath.ToSlash(rel)

	for _, pattern := range patterns {
		pattern = filepath.ToSlash(pattern)
		for candidate := rel; candidate != "." && candidate != "/" && candidate != ""; candidate = parentOf(candidate) {
			if ok, _ := doublestar.Match(pattern, candidate); ok {
				return true
			}
		}
	}
	return false
}

func parentOf(slashPath string) string {
	idx := strings.LastIndex(slashPath, "/")
	if idx < 0 {
		return ""
	}
	return slashPath[:idx]
}

func hasHiddenComponent(slashPath string) bool {
	for _, part := range strings.Split(slashPath, "/") {
		if strings.HasPrefix(part, ".") && part != "." && part != ".." {
			return true
		}
	}
	return false
}

// resolveWorkDir resolves the working directory, defaulting to os.Getwd().
func resolveWorkDir(workDir string) (string, error) {
	if workDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("get working directory: %w", err)
		}
		return wd, nil
	}
	absPath, err := filepath.Abs(workDir)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path: %w", err)
	}
	return absPath, nil
}
