// Package batch evaluates many formulas at once: formulas given inline and
// formula files discovered on disk, one formula per line.
package batch

import (
	"github.com/yaklabco/gomolar/pkg/compound"
	"github.com/yaklabco/gomolar/pkg/formula"
	"github.com/yaklabco/gomolar/pkg/molarmass"
)

// DefaultPattern selects formula files inside directories.
const DefaultPattern = "**/*.formulas"

// Options controls a batch run.
type Options struct {
	// Paths are files or directories to process. Files are always read;
	// directories are searched with Patterns. Defaults to ".".
	Paths []string

	// WorkingDir is the base directory used to resolve relative Paths.
	// If empty, the current process working directory is used.
	WorkingDir string

	// Patterns are doublestar globs, relative to each directory in Paths,
	// that select formula files. Defaults to DefaultPattern.
	Patterns []string

	// Exclude are doublestar globs, relative to WorkingDir, for files and
	// directories to skip.
	Exclude []string

	// Jobs controls the maximum number of concurrent workers.
	// 0 or negative means "auto" (runtime.NumCPU()).
	Jobs int

	// Parser parses each formula. Defaults to the default parser.
	Parser *formula.Parser

	// Calculator computes molar masses. It must use the parser's table.
	// Defaults to a calculator over Parser.Table().
	Calculator *molarmass.Calculator

	// Resolver, when set, names each valid formula.
	Resolver compound.Resolver
}

func (o Options) effectivePaths() []string {
	if len(o.Paths) == 0 {
		return []string{"."}
	}
	return o.Paths
}

func (o Options) effectivePatterns() []string {
	if len(o.Patterns) == 0 {
		return []string{DefaultPattern}
	}
	return o.Patterns
}

func (o Options) withDefaults() Options {
	if o.Parser == nil {
		o.Parser = formula.New(formula.Options{})
	}
	if o.Calculator == nil {
		o.Calculator = molarmass.NewCalculator(o.Parser.Table())
	}
	return o
}
