package views

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"desearch/internal/domain"
)

// Printer writes a settled search state as plain scrolling output
type Printer struct {
	w                io.Writer
	styles           *Styles
	results          *ResultRenderer
	showDescriptions bool
}

// NewPrinter creates a printer whose colors follow w's capabilities
func NewPrinter(w io.Writer, showDescriptions bool) *Printer {
	styles := NewStylesFor(lipgloss.NewRenderer(w))
	return &Printer{
		w:                w,
		styles:           styles,
		results:          NewResultRenderer(styles, false),
		showDescriptions: showDescriptions,
	}
}

// Print renders the state. Failed states print the error message.
func (p *Printer) Print(state domain.State) error {
	var b strings.Builder

	switch state.Phase {
	case domain.PhaseFailed:
		b.WriteString(p.styles.Error.Render("Error: " + state.Err))
		b.WriteString("\n")

	case domain.PhaseSettled:
		if len(state.Results) == 0 {
			b.WriteString(p.styles.Empty.Render("No results found"))
			b.WriteString("\n")
			break
		}
		for i, res := range state.Results {
			title := res.Title
			if title == "" {
				title = "(untitled)"
			}
			b.WriteString(fmt.Sprintf("%s %s\n", p.styles.ChipKey.Render(fmt.Sprintf("%2d.", i+1)), p.styles.ResultTitle.Render(title)))
			if meta := p.results.RenderMeta(res); meta != "" {
				b.WriteString("    " + meta + "\n")
			}
			if res.URL != "" {
				b.WriteString("    " + p.styles.Tag.Render(res.URL) + "\n")
			}
			if p.showDescriptions && res.HasDescription() {
				b.WriteString("    " + p.styles.Description.Render(strings.Join(strings.Fields(*res.Description), " ")) + "\n")
			}
		}
		b.WriteString(p.styles.Status.Render(pluralize(len(state.Results), "result")))
		b.WriteString("\n")

	default:
		b.WriteString(p.styles.Dim.Render("No search performed"))
		b.WriteString("\n")
	}

	_, err := io.WriteString(p.w, b.String())
	return err
}
