package reporter

import (
	"context"
	"path/filepath"
	"slices"
	"strings"

	"github.com/yaklabco/gomolar/pkg/batch"
)

// relativeReporter shows file sources relative to a working directory
// before handing the result to the next reporter.
type relativeReporter struct {
	next    Reporter
	workDir string
}

// Report implements Reporter.
func (r *relativeReporter) Report(ctx context.Context, result *batch.Result) (int, error) {
	return r.next.Report(ctx, RelativeSources(result, r.workDir))
}

// RelativeSources returns a copy of result whose file sources are relative
// to workDir. Paths outside workDir are left absolute. result itself is not
// modified.
func RelativeSources(result *batch.Result, workDir string) *batch.Result {
	if result == nil || workDir == "" {
		return result
	}

	out := *result
	out.Items = slices.Clone(result.Items)
	for idx := range out.Items {
		if out.Items[idx].Source != "" {
			out.Items[idx].Source = relativePath(workDir, out.Items[idx].Source)
		}
	}
	out.Errors = slices.Clone(result.Errors)
	for idx := range out.Errors {
		out.Errors[idx].Path = relativePath(workDir, out.Errors[idx].Path)
	}
	return &out
}

func relativePath(workDir, path string) string {
	rel, err := filepath.Rel(workDir, path)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return path
	}
	return rel
}
