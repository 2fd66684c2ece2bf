package reporting

import (
	"fmt"
	"io"

	"github.com/temirov/gitstatus/internal/status"
)

const searchBannerConstant = "Searching for Git repositories..."

// TextPrinter writes one human-readable block per repository as reports arrive.
type TextPrinter struct {
	writer io.Writer
	styler *Styler
}

// NewTextPrinter constructs a TextPrinter. A nil styler prints plain text.
func NewTextPrinter(writer io.Writer, styler *Styler) *TextPrinter {
	return &TextPrinter{writer: writer, styler: styler}
}

// Begin writes the search banner.
func (printer *TextPrinter) Begin() error {
	_, writeError := fmt.Fprintln(printer.writer, printer.styler.Render(searchBannerConstant, CategoryBanner))
	return writeError
}

// Emit writes the repository header followed by its indented detail lines.
func (printer *TextPrinter) Emit(report status.RepositoryReport) error {
	suffix := printer.styler.Render(cleanSuffixConstant, CategoryClean)
	if report.HasIssues() {
		suffix = printer.styler.Render(issuesSuffixConstant, CategoryIssues)
	}

	if _, writeError := fmt.Fprintf(printer.writer, headerTemplateConstant+"\n", report.Repository.WorkingDirectory, suffix); writeError != nil {
		return writeError
	}

	for _, line := range DescribeReport(report) {
		if _, writeError := fmt.Fprintln(printer.writer, detailIndentConstant+printer.styler.Render(line.Text, line.Category)); writeError != nil {
			return writeError
		}
	}
	return nil
}

// Finish has nothing to flush for text output.
func (printer *TextPrinter) Finish() error {
	return nil
}
