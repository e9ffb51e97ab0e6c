// Package logging provides a structured logging wrapper around charmbracelet/log.
package logging

// Field name constants for structured logging.
// Using constants prevents typos and enables IDE autocomplete.
const (
	// Common fields.
	FieldError      = "error"
	FieldPath       = "path"
	FieldPaths      = "paths"
	FieldFiles      = "files"
	FieldOutput     = "output"
	FieldWorkingDir = "working_dir"
	FieldConfig     = "config"

	// Calculation fields.
	FieldFormula   = "formula"
	FieldMolarMass = "molar_mass"
	FieldElements  = "elements"
	FieldKind      = "kind"
	FieldPosition  = "position"
	FieldLine      = "line"

	// Configuration fields.
	FieldFormat   = "format"
	FieldJobs     = "jobs"
	FieldPatterns = "patterns"
	FieldTable    = "elements_file"

	// Statistics fields.
	FieldFilesDiscovered = "files_discovered"
	FieldFormulasTotal   = "formulas_total"
	FieldFormulasValid   = "formulas_valid"
	FieldFormulasInvalid = "formulas_invalid"
	FieldDuration        = "duration"

	// History fields.
	FieldEntryID = "entry_id"
	FieldAdded   = "added"

	// Version fields.
	FieldVersion = "version"
	FieldCommit  = "commit"
	FieldBuilt   = "built"
)
