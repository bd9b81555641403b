package views

import (
	"github.com/charmbracelet/lipgloss"

	"desearch/internal/domain"
)

// Styles contains all the style definitions for the UI
type Styles struct {
	Title       lipgloss.Style
	Dim         lipgloss.Style
	Status      lipgloss.Style
	Prompt      lipgloss.Style
	Query       lipgloss.Style
	Chip        lipgloss.Style
	ChipActive  lipgloss.Style
	ChipKey     lipgloss.Style
	Help        lipgloss.Style
	Main        lipgloss.Style
	Scroll      lipgloss.Style
	ResultTitle lipgloss.Style
	Selected    lipgloss.Style
	Meta        lipgloss.Style
	Tag         lipgloss.Style
	Description lipgloss.Style
	Skeleton    lipgloss.Style
	Error       lipgloss.Style
	Empty       lipgloss.Style
	Loading     lipgloss.Style
	Success     lipgloss.Style
}

// NewStyles creates a new Styles instance with default values
func NewStyles() *Styles {
	return NewStylesFor(lipgloss.DefaultRenderer())
}

// NewStylesFor builds the styles against a specific renderer, so output
// written to a pipe or buffer picks that writer's color profile.
func NewStylesFor(r *lipgloss.Renderer) *Styles {
	return &Styles{
		Title: r.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("99")),
		Dim: r.NewStyle().Faint(true),
		Status: r.NewStyle().
			Foreground(lipgloss.Color("241")),
		Prompt:     r.NewStyle().Foreground(lipgloss.Color("99")).Bold(true),
		Query:      r.NewStyle().Foreground(lipgloss.Color("252")),
		Chip:       r.NewStyle().Foreground(lipgloss.Color("245")),
		ChipActive: r.NewStyle().Foreground(lipgloss.Color("0")).Background(lipgloss.Color("214")).Bold(true),
		ChipKey:    r.NewStyle().Foreground(lipgloss.Color("220")),
		Help:       r.NewStyle().Faint(true),
		Main: r.NewStyle().
			Padding(1, 2),
		Scroll:      r.NewStyle().Foreground(lipgloss.Color("241")).Italic(true),
		ResultTitle: r.NewStyle().Bold(true).Foreground(lipgloss.Color("252")),
		Selected:    r.NewStyle().Foreground(lipgloss.Color("226")).Bold(true),
		Meta:        r.NewStyle().Foreground(lipgloss.Color("245")),
		Tag:         r.NewStyle().Foreground(lipgloss.Color("39")),
		Description: r.NewStyle().Foreground(lipgloss.Color("250")).Italic(true),
		Skeleton:    r.NewStyle().Foreground(lipgloss.Color("238")),
		Error:       r.NewStyle().Foreground(lipgloss.Color("203")).Bold(true), // red
		Empty:       r.NewStyle().Foreground(lipgloss.Color("241")),
		Loading:     r.NewStyle().Foreground(lipgloss.Color("51")), // cyan
		Success:     r.NewStyle().Foreground(lipgloss.Color("78")), // green
	}
}

// DifficultyColor returns the color used for a difficulty label
func DifficultyColor(d string) string {
	switch domain.Difficulty(d) {
	case domain.DifficultyEasy:
		return "78" // green
	case domain.DifficultyMedium:
		return "214" // yellow
	case domain.DifficultyHard:
		return "203" // red
	default:
		return "245"
	}
}
