package reporting

import (
	"encoding/json"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/temirov/gitstatus/internal/status"
)

const (
	yamlIndentConstant = 2
	jsonIndentConstant = "  "
)

type scanDocument struct {
	Repositories []repositoryDocument `json:"repositories" yaml:"repositories"`
}

type repositoryDocument struct {
	Path      string                `json:"path" yaml:"path"`
	HasIssues bool                  `json:"has_issues" yaml:"has_issues"`
	Dirty     bool                  `json:"dirty" yaml:"dirty"`
	Changes   status.ChangeSummary  `json:"changes" yaml:"changes"`
	Branches  []status.BranchStatus `json:"branches" yaml:"branches"`
}

// StructuredPrinter collects reports and writes them as one YAML or JSON document on Finish.
type StructuredPrinter struct {
	writer   io.Writer
	format   Format
	document scanDocument
}

// NewStructuredPrinter constructs a StructuredPrinter. Formats other than JSON produce YAML.
func NewStructuredPrinter(writer io.Writer, format Format) *StructuredPrinter {
	return &StructuredPrinter{
		writer:   writer,
		format:   format,
		document: scanDocument{Repositories: []repositoryDocument{}},
	}
}

// Begin writes nothing; structured output has no banner.
func (printer *StructuredPrinter) Begin() error {
	return nil
}

// Emit records the report for the final document.
func (printer *StructuredPrinter) Emit(report status.RepositoryReport) error {
	branches := report.Branches
	if branches == nil {
		branches = []status.BranchStatus{}
	}
	printer.document.Repositories = append(printer.document.Repositories, repositoryDocument{
		Path:      report.Repository.WorkingDirectory,
		HasIssues: report.HasIssues(),
		Dirty:     report.Changes.IsDirty(),
		Changes:   report.Changes,
		Branches:  branches,
	})
	return nil
}

// Finish encodes every recorded report.
func (printer *StructuredPrinter) Finish() error {
	if printer.format == FormatJSON {
		encoder := json.NewEncoder(printer.writer)
		encoder.SetIndent("", jsonIndentConstant)
		encoder.SetEscapeHTML(false)
		return encoder.Encode(printer.document)
	}

	encoder := yaml.NewEncoder(printer.writer)
	encoder.SetIndent(yamlIndentConstant)
	if encodeError := encoder.Encode(printer.document); encodeError != nil {
		return encodeError
	}
	return encoder.Close()
}
