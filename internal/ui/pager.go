package ui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/noborus/ov/oviewer"
)

// HelpRenderer handles help content rendering
type HelpRenderer struct{}

// NewHelpRenderer creates a new help renderer
func NewHelpRenderer() *HelpRenderer {
	return &HelpRenderer{}
}

// RenderHelpContent generates help content with colors for the pager
func (r *HelpRenderer) RenderHelpContent(topics []string) string {
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("99")).
		MarginBottom(1)

	sectionStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("39")).
		MarginTop(1)

	keyStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("220"))

	descStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("252"))

	var help strings.Builder
	line := func(key, desc string) {
		help.WriteString(fmt.Sprintf("  %-12s %s\n", keyStyle.Render(key), descStyle.Render(desc)))
	}

	help.WriteString(titleStyle.Render("desearch Help"))
	help.WriteString("\n")

	help.WriteString(sectionStyle.Render("Search"))
	help.WriteString("\n")
	line("/, i", "Edit the query (enter to search, esc to cancel)")
	line("r", "Run the last search again")
	help.WriteString("\n")

	help.WriteString(sectionStyle.Render("Results"))
	help.WriteString("\n")
	line("↑/↓, j/k", "Move the selection")
	line("g/G", "Go to first/last result")
	line("PgUp/PgDn", "Page up/down")
	line("enter, o", "Open the problem in the browser")
	line("v", "Show the full problem details")
	help.WriteString("\n")

	help.WriteString(sectionStyle.Render("Filters"))
	help.WriteString("\n")
	line("e", "Toggle Easy")
	line("m", "Toggle Medium")
	line("h", "Toggle Hard")
	for i, topic := range topics {
		if i >= 9 {
			break
		}
		line(fmt.Sprintf("%d", i+1), "Toggle topic "+topic)
	}
	line("x", "Clear all filters")
	help.WriteString("\n")

	help.WriteString(lipgloss.NewStyle().Italic(true).Foreground(lipgloss.Color("241")).
		Render("  Changing a filter re-runs the current search."))
	help.WriteString("\n")

	help.WriteString(sectionStyle.Render("Other"))
	help.WriteString("\n")
	line("?", "Show this help")
	help.WriteString(fmt.Sprintf("  %-12s %s", keyStyle.Render("q"), descStyle.Render("Quit")))

	return help.String()
}

// PagerOps shows long content in the ov pager
type PagerOps struct {
	program *tea.Program // reference to Bubble Tea program for terminal management
}

// NewPagerOps creates a new pager operations instance
func NewPagerOps(program *tea.Program) *PagerOps {
	return &PagerOps{
		program: program,
	}
}

// SetProgram sets the program reference for terminal management
func (h *PagerOps) SetProgram(p *tea.Program) {
	h.program = p
}

// ShowInPager shows content using ov pager
func (h *PagerOps) ShowInPager(content string) error {
	if h.program == nil {
		return fmt.Errorf("program not set")
	}

	if err := h.program.ReleaseTerminal(); err != nil {
		return err
	}

	defer func() {
		// let ov fully exit before bubbletea takes the terminal back
		time.Sleep(100 * time.Millisecond)
		_ = h.program.RestoreTerminal()
	}()

	root, err := oviewer.NewRoot(strings.NewReader(content))
	if err != nil {
		return err
	}

	// don't write the content back to the screen on exit
	config := oviewer.NewConfig()
	config.IsWriteOnExit = false
	config.IsWriteOriginal = false
	root.SetConfig(config)

	return root.Run()
}
