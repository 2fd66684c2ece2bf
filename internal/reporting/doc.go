// Package reporting renders repository reports for people and for tools.
//
// TextPrinter streams one styled block per repository after a search banner.
// StructuredPrinter collects reports and writes a single YAML or JSON document.
// Styling goes through Styler, which binds a lipgloss renderer to the output
// writer so color decisions follow that writer and not the process terminal.
package reporting
