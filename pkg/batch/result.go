package batch

import (
	"github.com/yaklabco/gomolar/pkg/compound"
	"github.com/yaklabco/gomolar/pkg/convert"
	"github.com/yaklabco/gomolar/pkg/formula"
	"github.com/yaklabco/gomolar/pkg/fsutil"
	"github.com/yaklabco/gomolar/pkg/molarmass"
)

// Item is one evaluated formula.
type Item struct {
	// Source is the file the formula came from; empty for inline input.
	Source string

	// Line is the 1-based line number in Source, or the 1-based argument
	// position for inline input.
	Line int

	// Input is the formula text as read, without comments.
	Input string

	// Parse is the parser's verdict.
	Parse formula.ParseResult

	// Mass is the molar mass; zero when the formula is invalid.
	Mass molarmass.Result

	// Compound names the formula when a resolver knew it.
	Compound *compound.Info

	// Conversion is an optional mass/moles conversion attached by the caller.
	Conversion *convert.Conversion
}

// Valid reports whether the formula parsed.
func (i Item) Valid() bool {
	return i.Parse.Valid
}

// FileError records a file that could not be read.
type FileError struct {
	Path string
	Err  error
}

func (e FileError) Error() string {
	return e.Path + ": " + e.Err.Error()
}

func (e FileError) Unwrap() error {
	return e.Err
}

// Stats captures aggregate information about a run.
type Stats struct {
	// FilesDiscovered is the number of formula files found.
	FilesDiscovered int

	// FilesErrored is the number of files that could not be read.
	FilesErrored int

	// FormulasTotal is the number of formulas evaluated.
	FormulasTotal int

	// FormulasValid is the number of formulas that parsed.
	FormulasValid int

	// FormulasInvalid is the number of formulas that did not parse.
	FormulasInvalid int
}

// Result is the outcome of a batch run.
type Result struct {
	// Items are ordered by inline position first, then by file path and line.
	Items []Item

	// Stats contains aggregate statistics for the run.
	Stats Stats

	// Errors lists files that could not be read.
	Errors []FileError

	snapshots map[string]*fsutil.Snapshot
}

// HasInvalid reports whether any formula failed to parse.
func (r *Result) HasInvalid() bool {
	if r == nil {
		return false
	}
	return r.Stats.FormulasInvalid > 0
}

// Files returns the formula files the run read, in order.
func (r *Result) Files() []string {
	if r == nil {
		return nil
	}
	seen := make(map[string]struct{})
	var files []string
	for _, item := range r.Items {
		if item.Source == "" {
			continue
		}
		if _, ok := seen[item.Source]; !ok {
			seen[item.Source] = struct{}{}
			files = append(files, item.Source)
		}
	}
	return files
}

func newResult() *Result {
	return &Result{
		Items:     []Item{},
		snapshots: make(map[string]*fsutil.Snapshot),
	}
}

func (r *Result) accumulate(item Item) {
	r.Items = append(r.Items, item)
	r.Stats.FormulasTotal++
	if item.Valid() {
		r.Stats.FormulasValid++
	} else {
		r.Stats.FormulasInvalid++
	}
}
