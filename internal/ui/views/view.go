package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"desearch/internal/domain"
)

// ViewState contains all the state needed for rendering
type ViewState struct {
	Width          int
	Height         int
	Search         domain.State
	Topics         []string
	SelectedIndex  int
	ViewportOffset int
	ViewportHeight int // in results, not lines
	InputMode      string
	Prompt         string
	TextInput      string
	Spinner        string
	StatusMessage  string
	HelpView       string
}

// Renderer handles all view rendering
type Renderer struct {
	styles       *Styles
	resultRender *ResultRenderer
}

// NewRenderer creates a new renderer
func NewRenderer(showDescriptions bool) *Renderer {
	styles := NewStyles()
	return &Renderer{
		styles:       styles,
		resultRender: NewResultRenderer(styles, showDescriptions),
	}
}

// Results exposes the result renderer for detail views
func (r *Renderer) Results() *ResultRenderer {
	return r.resultRender
}

// ChromeLines is the number of lines used by everything except the result list
const ChromeLines = 10

// Render produces the complete view
func (r *Renderer) Render(state ViewState) string {
	content := &strings.Builder{}

	content.WriteString(r.renderTitleLine(state))
	content.WriteString("\n\n")

	content.WriteString(r.renderQueryLine(state))
	content.WriteString("\n")
	content.WriteString(r.renderFilterBar(state.Search.Filters, state.Topics))
	content.WriteString("\n\n")

	content.WriteString(r.renderMain(state))

	footer := ""
	if state.StatusMessage != "" {
		footer = r.styles.Status.Render(state.StatusMessage) + "\n"
	}
	if state.HelpView != "" {
		footer += state.HelpView
	} else {
		footer += r.styles.Help.Render("Press ? for help")
	}

	// push the footer to the bottom of the screen
	currentLines := strings.Count(content.String(), "\n") + 1
	footerLines := strings.Count(footer, "\n") + 1
	availableLines := state.Height - 2
	if availableLines <= 0 {
		availableLines = 22
	}
	if padding := availableLines - currentLines - footerLines; padding > 0 {
		content.WriteString(strings.Repeat("\n", padding))
	}
	content.WriteString("\n")
	content.WriteString(footer)

	mainStyle := r.styles.Main
	if state.Height > 0 {
		mainStyle = mainStyle.MaxHeight(state.Height)
	}
	return mainStyle.Render(content.String())
}

func (r *Renderer) renderTitleLine(state ViewState) string {
	logo := r.styles.Title.Render("desearch")

	right := ""
	switch state.Search.Phase {
	case domain.PhaseLoading:
		right = r.styles.Loading.Render(strings.TrimSpace(state.Spinner + " Searching"))
	case domain.PhaseSettled:
		right = r.styles.Success.Render(pluralize(len(state.Search.Results), "result"))
	case domain.PhaseFailed:
		right = r.styles.Error.Render("request failed")
	}
	if right == "" {
		return logo
	}

	termWidth := state.Width
	if termWidth <= 0 {
		termWidth = 80
	}
	padding := termWidth - 4 - lipgloss.Width(logo) - lipgloss.Width(right)
	if padding < 2 {
		padding = 2
	}
	return logo + strings.Repeat(" ", padding) + right
}

func (r *Renderer) renderQueryLine(state ViewState) string {
	if state.InputMode != "" {
		return r.styles.Prompt.Render(state.Prompt) + state.TextInput
	}
	if state.Search.Query == "" {
		return r.styles.Dim.Render("Press / to search programming questions")
	}
	return r.styles.Prompt.Render("Search: ") + r.styles.Query.Render(state.Search.Query)
}

// renderFilterBar renders difficulty chips and numbered topic chips
func (r *Renderer) renderFilterBar(filters domain.Filters, topics []string) string {
	keys := map[domain.Difficulty]string{
		domain.DifficultyEasy:   "e",
		domain.DifficultyMedium: "m",
		domain.DifficultyHard:   "h",
	}

	var chips []string
	for _, d := range domain.Difficulties {
		chips = append(chips, r.chip(keys[d], string(d), filters.Difficulty == d))
	}
	line := strings.Join(chips, " ")

	if len(topics) > 0 {
		var topicChips []string
		for i, topic := range topics {
			if i >= 9 {
				break
			}
			topicChips = append(topicChips, r.chip(fmt.Sprintf("%d", i+1), topic, filters.HasTag(topic)))
		}
		line += r.styles.Dim.Render("  │  ") + strings.Join(topicChips, " ")
	}

	// tags selected from the command line that are not in the topic list
	var extra []string
	for _, tag := range filters.Tags() {
		if !contains(topics, tag) {
			extra = append(extra, r.styles.ChipActive.Render(" "+tag+" "))
		}
	}
	if len(extra) > 0 {
		line += " " + strings.Join(extra, " ")
	}
	return line
}

func (r *Renderer) chip(key, label string, active bool) string {
	if active {
		return r.styles.ChipKey.Render(key) + r.styles.ChipActive.Render(" "+label+" ")
	}
	return r.styles.ChipKey.Render(key) + r.styles.Chip.Render(" "+label+" ")
}

func (r *Renderer) renderMain(state ViewState) string {
	s := state.Search
	switch s.Phase {
	case domain.PhaseLoading:
		if len(s.Results) == 0 {
			return r.renderSkeleton(state.Width)
		}
		// previous results stay visible while the new request runs
		return r.styles.Dim.Render(r.renderResultList(state))

	case domain.PhaseFailed:
		return r.styles.Error.Render("Error: "+s.Err) + "\n" +
			r.styles.Dim.Render("Press r to retry")

	case domain.PhaseSettled:
		if len(s.Results) == 0 {
			return r.styles.Empty.Render("No results found") + "\n" +
				r.styles.Dim.Render("Try a different query or press x to clear filters")
		}
		return r.renderResultList(state)

	default:
		return r.styles.Dim.Render("Results will appear here.")
	}
}

func (r *Renderer) renderSkeleton(width int) string {
	if width <= 0 {
		width = 80
	}
	barWidth := width - 8
	if barWidth > 60 {
		barWidth = 60
	}
	if barWidth < 10 {
		barWidth = 10
	}
	var lines []string
	for i := 0; i < 3; i++ {
		lines = append(lines,
			"  "+r.styles.Skeleton.Render(strings.Repeat("░", barWidth)),
			"  "+r.styles.Skeleton.Render(strings.Repeat("░", barWidth/2)),
			"")
	}
	return strings.Join(lines, "\n")
}

// renderResultList renders the visible window of results with scroll indicators
func (r *Renderer) renderResultList(state ViewState) string {
	results := state.Search.Results
	height := state.ViewportHeight
	if height <= 0 {
		height = len(results)
	}
	start := state.ViewportOffset
	if start > len(results) {
		start = len(results)
	}
	end := start + height
	if end > len(results) {
		end = len(results)
	}

	var b strings.Builder
	if start > 0 {
		b.WriteString(r.styles.Scroll.Render(fmt.Sprintf("↑ %d more above", start)))
		b.WriteString("\n")
	}
	for i := start; i < end; i++ {
		b.WriteString(r.resultRender.RenderResult(results[i], i == state.SelectedIndex, state.Width-4))
		b.WriteString("\n")
	}
	if end < len(results) {
		b.WriteString(r.styles.Scroll.Render(fmt.Sprintf("↓ %d more below", len(results)-end)))
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

func pluralize(n int, noun string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s", noun)
	}
	return fmt.Sprintf("%d %ss", n, noun)
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
