package reporting

import (
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"
)

// Category classifies a fragment of text output for styling.
type Category int

// Text categories.
const (
	CategoryPlain Category = iota
	CategoryBanner
	CategoryClean
	CategoryIssues
	CategoryChanges
	CategoryWarning
	CategoryDivergence
)

var (
	cleanColor      = lipgloss.Color("82")
	issuesColor     = lipgloss.Color("196")
	changesColor    = lipgloss.Color("214")
	warningColor    = lipgloss.Color("203")
	divergenceColor = lipgloss.Color("75")
	bannerColor     = lipgloss.Color("244")
)

type fileDescriptorWriter interface {
	Fd() uintptr
}

// Styler renders text fragments for one output writer.
type Styler struct {
	renderer *lipgloss.Renderer
	styles   map[Category]lipgloss.Style
}

// NewStyler binds a renderer to writer. ColorAuto colors only when writer is a terminal
// and the environment allows it; ColorNever strips all styling.
func NewStyler(writer io.Writer, mode ColorMode) *Styler {
	renderer := lipgloss.NewRenderer(writer)
	switch mode {
	case ColorNever:
		renderer.SetColorProfile(termenv.Ascii)
	case ColorAlways:
		renderer.SetColorProfile(termenv.ANSI256)
	default:
		if !isTerminal(writer) {
			renderer.SetColorProfile(termenv.Ascii)
		}
	}

	return &Styler{
		renderer: renderer,
		styles: map[Category]lipgloss.Style{
			CategoryPlain:      renderer.NewStyle(),
			CategoryBanner:     renderer.NewStyle().Foreground(bannerColor).Italic(true),
			CategoryClean:      renderer.NewStyle().Foreground(cleanColor).Bold(true),
			CategoryIssues:     renderer.NewStyle().Foreground(issuesColor).Bold(true),
			CategoryChanges:    renderer.NewStyle().Foreground(changesColor),
			CategoryWarning:    renderer.NewStyle().Foreground(warningColor),
			CategoryDivergence: renderer.NewStyle().Foreground(divergenceColor),
		},
	}
}

// Render styles text for category. Unknown categories render plain.
func (styler *Styler) Render(text string, category Category) string {
	if styler == nil {
		return text
	}
	style, known := styler.styles[category]
	if !known {
		return text
	}
	return style.Render(text)
}

func isTerminal(writer io.Writer) bool {
	descriptorWriter, hasDescriptor := writer.(fileDescriptorWriter)
	if !hasDescriptor {
		return false
	}
	descriptor := descriptorWriter.Fd()
	return isatty.IsTerminal(descriptor) || isatty.IsCygwinTerminal(descriptor)
}
