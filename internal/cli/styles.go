// Package cli holds the shared terminal look of the automix commands.
package cli

import (
	"fmt"
	"math"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Color palette
var (
	primaryColor = lipgloss.Color("#00AFAF") // automix teal
	accentColor  = lipgloss.Color("#FFB86C") // beat amber
	mutedColor   = lipgloss.Color("#888888") // gray
	textColor    = lipgloss.Color("#FFFFFF") // white
)

// Styles
var (
	// Title style for command headers
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(primaryColor).
			MarginBottom(1)

	// Error message style
	ErrorStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(primaryColor)

	// Key-value pair styles
	KeyStyle = lipgloss.NewStyle().
			Foreground(mutedColor)

	ValueStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(textColor)

	// Beat markers in tables and meters
	BeatStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(accentColor)

	// De-emphasized cells (silent tracks, off-beat frames)
	MutedStyle = lipgloss.NewStyle().
			Foreground(mutedColor)
)

// PrintError prints an error message to stderr.
func PrintError(message string) {
	fmt.Fprintf(os.Stderr, "%s %s\n", ErrorStyle.Render("Error:"), message)
}

// Meter renders a unit value as a fixed-width bar.
func Meter(v float64, width int) string {
	if width <= 0 {
		return ""
	}
	if v < 0 {
		v = 0
	}
	if v > 1 {
		v = 1
	}
	filled := int(math.Round(v * float64(width)))
	return ValueStyle.Render(strings.Repeat("█", filled)) + MutedStyle.Render(strings.Repeat("░", width-filled))
}

// FormatGain formats a gain for table cells.
func FormatGain(v float64) string {
	return fmt.Sprintf("%.3f", v)
}
