package reporting

import (
	"fmt"
	"io"

	"github.com/temirov/gitstatus/internal/status"
)

// Printer receives reports as a status.ReportSink and frames them with Begin and Finish.
type Printer interface {
	status.ReportSink
	// Begin is called once before the first report.
	Begin() error
	// Finish is called once after the scan, including scans that stopped early.
	Finish() error
}

// NewPrinter returns the printer for format writing to writer.
func NewPrinter(format Format, writer io.Writer, colorMode ColorMode) (Printer, error) {
	switch format {
	case FormatText, "":
		return NewTextPrinter(writer, NewStyler(writer, colorMode)), nil
	case FormatYAML, FormatJSON:
		return NewStructuredPrinter(writer, format), nil
	default:
		return nil, fmt.Errorf(unknownFormatTemplateConstant, string(format))
	}
}
