package output

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Color palette for the CLI.
var (
	ColorCyan   = lipgloss.Color("14")
	ColorRed    = lipgloss.Color("196")
	ColorYellow = lipgloss.Color("220")
	ColorGreen  = lipgloss.Color("10")
)

var (
	// StyleNoun styles paths and option names.
	StyleNoun = lipgloss.NewStyle().Foreground(ColorCyan)

	// StyleDim styles structural chrome.
	StyleDim = lipgloss.NewStyle().Faint(true)
)

// Path status values used in cleanup reports.
const (
	StatusRemoved = "removed"
	StatusPruned  = "pruned"
	StatusMissing = "missing"
	StatusPlanned = "would remove"
)

// StatusStyle returns the style for a path status. Unknown statuses are unstyled.
func StatusStyle(status string) lipgloss.Style {
	switch status {
	case StatusRemoved:
		return lipgloss.NewStyle().Foreground(ColorRed)
	case StatusPruned:
		return lipgloss.NewStyle().Faint(true)
	case StatusMissing:
		return lipgloss.NewStyle().Foreground(ColorYellow)
	case StatusPlanned:
		return lipgloss.NewStyle().Foreground(ColorYellow)
	default:
		return lipgloss.NewStyle()
	}
}

const minPathColumnWidth = 32

// FormatPathLine renders a path followed by a right-aligned status.
func FormatPathLine(path, status string) string {
	padding := minPathColumnWidth - len(path)
	if padding < 2 {
		padding = 2
	}

	return StyleDim.Render("p:") + StyleNoun.Render(path) + strings.Repeat(" ", padding) + StatusStyle(status).Render(status)
}

// FormatCheckmark renders a green checkmark with a message.
func FormatCheckmark(msg string) string {
	return lipgloss.NewStyle().Foreground(ColorGreen).Render("✔") + " " + msg
}

// FormatCross renders a red cross with a message.
func FormatCross(msg string) string {
	return lipgloss.NewStyle().Foreground(ColorRed).Render("✘") + " " + msg
}
