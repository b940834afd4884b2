// Package style defines lipgloss styles for the TUI.
package style

import (
	"github.com/alkime/teeshot/internal/images"
	"github.com/charmbracelet/lipgloss"
)

// Palette.
const (
	fairway = lipgloss.Color("42")
	flag    = lipgloss.Color("205")
	sky     = lipgloss.Color("63")
	rough   = lipgloss.Color("241")
	sand    = lipgloss.Color("214")
	hazard  = lipgloss.Color("196")
	chalk   = lipgloss.Color("255")
	stone   = lipgloss.Color("245")
)

// Styles are accessed through the package name, so they carry no "Style"
// suffix.
var (
	// Title is used for step titles and content titles.
	Title = lipgloss.NewStyle().Bold(true).Foreground(flag)

	Subtitle = lipgloss.NewStyle().Foreground(rough)
	Success  = lipgloss.NewStyle().Foreground(fairway)
	Error    = lipgloss.NewStyle().Foreground(hazard)
	Warning  = lipgloss.NewStyle().Foreground(sand)
	Progress = lipgloss.NewStyle().Foreground(sky)

	// Viewport frames the content preview.
	Viewport = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("62")).
			Padding(0, 1)

	Help = lipgloss.NewStyle().Foreground(rough)
	Key  = lipgloss.NewStyle().Foreground(flag).Bold(true)

	// Label is used for section labels and card subtitles.
	Label  = lipgloss.NewStyle().Bold(true).Foreground(chalk)
	Muted  = lipgloss.NewStyle().Foreground(stone)
	Bullet = lipgloss.NewStyle().Foreground(flag)

	// Highlight marks the request keyword inside titles.
	Highlight = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("0")).
			Background(fairway)

	// Step and ActiveStep draw the progress header.
	Step       = lipgloss.NewStyle().Foreground(rough)
	ActiveStep = lipgloss.NewStyle().Bold(true).Underline(true).Foreground(fairway)
)

// ForState picks the badge style of an image state.
func ForState(state images.State) lipgloss.Style {
	switch state {
	case images.Pending:
		return Progress
	case images.Ready:
		return Success
	case images.Failed:
		return Error
	default:
		return Muted
	}
}
