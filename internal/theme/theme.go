package theme

import (
	"github.com/charmbracelet/lipgloss"

	"jrnl/internal/model"
)

// Adaptive color pairs (dark terminal value, light terminal value).
var (
	ColorBlue   = lipgloss.AdaptiveColor{Dark: "#5B9BD5", Light: "#2B6CB0"}
	ColorGreen  = lipgloss.AdaptiveColor{Dark: "#6BCB77", Light: "#2F855A"}
	ColorYellow = lipgloss.AdaptiveColor{Dark: "#FFD93D", Light: "#B7791F"}
	ColorRed    = lipgloss.AdaptiveColor{Dark: "#FF6B6B", Light: "#C53030"}
	ColorCyan   = lipgloss.AdaptiveColor{Dark: "#4DD0E1", Light: "#00838F"}
	ColorGray   = lipgloss.AdaptiveColor{Dark: "#868E96", Light: "#718096"}
	ColorWhite  = lipgloss.AdaptiveColor{Dark: "#F8F9FA", Light: "#1A202C"}
	ColorSubtle = lipgloss.AdaptiveColor{Dark: "#495057", Light: "#CBD5E0"}
)

// HeaderStyle is used for day headings and bucket titles.
var HeaderStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(ColorWhite).
	Background(ColorBlue).
	Padding(0, 1)

// NoteStyle renders note lines.
var NoteStyle = lipgloss.NewStyle().
	Foreground(ColorGray)

// OverdueStyle highlights past-due dates.
var OverdueStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(ColorRed)

// DueTodayStyle highlights dates due today.
var DueTodayStyle = lipgloss.NewStyle().
	Foreground(ColorCyan)

// MetaStyle renders ids, dates, and recurrence annotations.
var MetaStyle = lipgloss.NewStyle().
	Foreground(ColorSubtle)

// HelpStyle is used for keyboard shortcut hints and help text.
var HelpStyle = lipgloss.NewStyle().
	Foreground(ColorGray).
	Italic(true)

// SelectedItemStyle highlights the focused row in the browser.
var SelectedItemStyle = lipgloss.NewStyle().
	PaddingLeft(1).
	Bold(true).
	Foreground(ColorBlue).
	Border(lipgloss.NormalBorder(), false, false, false, true).
	BorderForeground(ColorBlue)

// ListItemStyle is the base style for rows in the browser.
var ListItemStyle = lipgloss.NewStyle().
	PaddingLeft(2)

// StatusStyle returns a color-coded style for an item status.
func StatusStyle(status model.Status) lipgloss.Style {
	base := lipgloss.NewStyle().Bold(true)

	switch status {
	case model.StatusDoing:
		return base.Foreground(ColorYellow)
	case model.StatusWaiting:
		return base.Foreground(ColorWhite).Background(ColorSubtle)
	case model.StatusDone:
		return base.Foreground(ColorGreen)
	case model.StatusNote:
		return base.Bold(false).Foreground(ColorGray)
	default: // todo
		return base.Bold(false).Foreground(ColorWhite)
	}
}
