package reporter

import (
	"github.com/yaklabco/gomolar/internal/ui/pretty"
	"github.com/yaklabco/gomolar/pkg/batch"
	"github.com/yaklabco/gomolar/pkg/convert"
	"github.com/yaklabco/gomolar/pkg/molarmass"
)

// DocumentVersion is the schema version of structured reports.
const DocumentVersion = "1.0.0"

// Document is the format-neutral report model shared by the JSON, YAML,
// Markdown, and HTML renderers.
type Document struct {
	Version string            `json:"version"          yaml:"version"`
	Results []FormulaReport   `json:"results"          yaml:"results"`
	Errors  []FileErrorReport `json:"errors,omitempty" yaml:"errors,omitempty"`
	Summary Summary           `json:"summary"          yaml:"summary"`
}

// FormulaReport is one evaluated formula.
type FormulaReport struct {
	Source     string              `json:"source,omitempty"     yaml:"source,omitempty"`
	Line       int                 `json:"line"                 yaml:"line"`
	Input      string              `json:"input"                yaml:"input"`
	Formula    string              `json:"formula,omitempty"    yaml:"formula,omitempty"`
	Valid      bool                `json:"valid"                yaml:"valid"`
	TotalMass  float64             `json:"totalMass,omitempty"  yaml:"totalMass,omitempty"`
	Unit       string              `json:"unit,omitempty"       yaml:"unit,omitempty"`
	Name       string              `json:"name,omitempty"       yaml:"name,omitempty"`
	IUPACName  string              `json:"iupacName,omitempty"  yaml:"iupacName,omitempty"`
	Category   string              `json:"category,omitempty"   yaml:"category,omitempty"`
	Breakdown  []ElementReport     `json:"breakdown,omitempty"  yaml:"breakdown,omitempty"`
	Conversion *convert.Conversion `json:"conversion,omitempty" yaml:"conversion,omitempty"`
	Error      *ErrorReport        `json:"error,omitempty"      yaml:"error,omitempty"`
}

// ElementReport is one element's contribution to a molar mass.
type ElementReport struct {
	Element     string  `json:"element"     yaml:"element"`
	ElementName string  `json:"elementName" yaml:"elementName"`
	AtomicMass  float64 `json:"atomicMass"  yaml:"atomicMass"`
	Count       int     `json:"count"       yaml:"count"`
	Subtotal    float64 `json:"subtotal"    yaml:"subtotal"`
	Percent     float64 `json:"percent"     yaml:"percent"`
}

// ErrorReport describes why a formula did not parse.
type ErrorReport struct {
	Kind     string `json:"kind"               yaml:"kind"`
	Message  string `json:"message"            yaml:"message"`
	Position *int   `json:"position,omitempty" yaml:"position,omitempty"`
}

// FileErrorReport names a file that could not be read.
type FileErrorReport struct {
	Path    string `json:"path"    yaml:"path"`
	Message string `json:"message" yaml:"message"`
}

// Summary contains aggregate statistics.
type Summary struct {
	FilesDiscovered int `json:"filesDiscovered" yaml:"filesDiscovered"`
	FilesErrored    int `json:"filesErrored"    yaml:"filesErrored"`
	FormulasTotal   int `json:"formulasTotal"   yaml:"formulasTotal"`
	FormulasValid   int `json:"formulasValid"   yaml:"formulasValid"`
	FormulasInvalid int `json:"formulasInvalid" yaml:"formulasInvalid"`
}

// BuildDocument converts a batch result into a Document. Breakdowns are
// included when breakdown is true.
func BuildDocument(result *batch.Result, breakdown bool) *Document {
	doc := &Document{
		Version: DocumentVersion,
		Results: make([]FormulaReport, 0),
	}
	if result == nil {
		return doc
	}

	doc.Results = make([]FormulaReport, 0, len(result.Items))
	for _, item := range result.Items {
		doc.Results = append(doc.Results, buildFormulaReport(item, breakdown))
	}

	for _, ferr := range result.Errors {
		doc.Errors = append(doc.Errors, FileErrorReport{Path: ferr.Path, Message: ferr.Err.Error()})
	}

	doc.Summary = Summary{
		FilesDiscovered: result.Stats.FilesDiscovered,
		FilesErrored:    result.Stats.FilesErrored,
		FormulasTotal:   result.Stats.FormulasTotal,
		FormulasValid:   result.Stats.FormulasValid,
		FormulasInvalid: result.Stats.FormulasInvalid,
	}
	return doc
}

func buildFormulaReport(item batch.Item, breakdown bool) FormulaReport {
	report := FormulaReport{
		Source:  item.Source,
		Line:    item.Line,
		Input:   item.Input,
		Formula: item.Parse.Clean,
		Valid:   item.Valid(),
	}

	if !item.Valid() {
		errReport := &ErrorReport{Message: item.Parse.ErrorMessage()}
		if item.Parse.Err != nil {
			errReport.Kind = item.Parse.Err.Kind.String()
		}
		if pos, ok := item.Parse.ErrorPosition(); ok {
			errReport.Position = &pos
		}
		report.Error = errReport
		return report
	}

	report.TotalMass = item.Mass.TotalMass
	report.Unit = pretty.MassUnit
	report.Conversion = item.Conversion

	if item.Compound != nil {
		report.Name = item.Compound.DisplayName()
		report.IUPACName = item.Compound.IUPACName
		report.Category = item.Compound.Category
	}

	if breakdown {
		report.Breakdown = make([]ElementReport, 0, len(item.Mass.Breakdown))
		for i, calc := range item.Mass.Breakdown {
			report.Breakdown = append(report.Breakdown, ElementReport{
				Element:     calc.Element,
				ElementName: calc.ElementName,
				AtomicMass:  calc.AtomicMass,
				Count:       calc.Count,
				Subtotal:    molarmass.Round(calc.Subtotal, 6),
				Percent:     molarmass.Round(item.Mass.Percent(i), 2),
			})
		}
	}

	return report
}
