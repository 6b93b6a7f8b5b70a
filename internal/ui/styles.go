package ui

import (
	"github.com/charmbracelet/lipgloss"

	"chromaflow/internal/colour"
)

var (
	titleStyle    = lipgloss.NewStyle().Bold(true)
	helpStyle     = lipgloss.NewStyle().Faint(true)
	statusStyle   = lipgloss.NewStyle().Faint(true)
	selectedStyle = lipgloss.NewStyle().Bold(true)
)

// swatchStyle renders a cell on the swatch's own colour, with the text
// colour flipped for contrast against light backgrounds.
func swatchStyle(c colour.RGB) lipgloss.Style {
	fg := "#ffffff"
	if colour.Luminance(c) > 0.5 {
		fg = "#000000"
	}
	return lipgloss.NewStyle().
		Background(lipgloss.Color(c.Hex())).
		Foreground(lipgloss.Color(fg))
}
