package views

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"desearch/internal/domain"
)

// ResultRenderer handles rendering of individual search results
type ResultRenderer struct {
	styles           *Styles
	showDescriptions bool
}

// NewResultRenderer creates a new result renderer
func NewResultRenderer(styles *Styles, showDescriptions bool) *ResultRenderer {
	return &ResultRenderer{
		styles:           styles,
		showDescriptions: showDescriptions,
	}
}

// LinesPerResult is the number of terminal lines one result occupies
func (r *ResultRenderer) LinesPerResult() int {
	if r.showDescriptions {
		return 4
	}
	return 3
}

// RenderResult renders a result card: title, meta line, optional description
func (r *ResultRenderer) RenderResult(res domain.Result, isSelected bool, width int) string {
	marker := "  "
	titleStyle := r.styles.ResultTitle
	if isSelected {
		marker = r.styles.Selected.Render("▶ ")
		titleStyle = r.styles.Selected
	}

	title := res.Title
	if title == "" {
		title = "(untitled)"
	}

	lines := []string{
		marker + titleStyle.Render(truncate(title, width-2)),
		"  " + r.RenderMeta(res),
	}

	if r.showDescriptions {
		desc := ""
		if res.HasDescription() {
			desc = strings.Join(strings.Fields(*res.Description), " ")
		}
		lines = append(lines, "  "+r.styles.Description.Render(truncate(desc, width-2)))
	}

	// blank separator between cards
	lines = append(lines, "")
	return strings.Join(lines, "\n")
}

// RenderMeta renders "platform • difficulty • tag, tag"
func (r *ResultRenderer) RenderMeta(res domain.Result) string {
	var parts []string
	if res.Platform != "" {
		parts = append(parts, r.styles.Meta.Render(res.Platform))
	}
	if res.Difficulty != "" {
		parts = append(parts, r.styles.Meta.Foreground(lipgloss.Color(DifficultyColor(res.Difficulty))).Render(res.Difficulty))
	}
	if res.HasTags() {
		tags := make([]string, len(res.Tags))
		for i, tag := range res.Tags {
			tags[i] = r.styles.Tag.Render(tag)
		}
		parts = append(parts, strings.Join(tags, r.styles.Meta.Render(", ")))
	}
	return strings.Join(parts, r.styles.Meta.Render(" • "))
}

// RenderDetail renders a full, untruncated description of a result for the pager
func (r *ResultRenderer) RenderDetail(res domain.Result) string {
	var b strings.Builder
	b.WriteString(r.styles.Title.Render(res.Title))
	b.WriteString("\n\n")
	b.WriteString(r.RenderMeta(res))
	b.WriteString("\n\n")
	if res.URL != "" {
		b.WriteString(r.styles.Tag.Render(res.URL))
		b.WriteString("\n\n")
	}
	if res.HasDescription() {
		b.WriteString(*res.Description)
		b.WriteString("\n")
	} else {
		b.WriteString(r.styles.Dim.Render("No description available."))
		b.WriteString("\n")
	}
	if res.ID != "" {
		b.WriteString("\n")
		b.WriteString(r.styles.Dim.Render("id: " + res.ID))
		b.WriteString("\n")
	}
	return b.String()
}

// truncate shortens s to width visible cells, adding an ellipsis
func truncate(s string, width int) string {
	if width <= 0 || lipgloss.Width(s) <= width {
		return s
	}
	if width == 1 {
		return "…"
	}
	runes := []rune(s)
	for len(runes) > 0 && lipgloss.Width(string(runes))+1 > width {
		runes = runes[:len(runes)-1]
	}
	return string(runes) + "…"
}
