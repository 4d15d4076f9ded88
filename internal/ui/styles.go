package ui

import "github.com/charmbracelet/lipgloss"

// Theme is the color scheme of the chat TUI.
type Theme struct {
	Foreground    lipgloss.Color
	ForegroundDim lipgloss.Color
	Primary       lipgloss.Color
	Secondary     lipgloss.Color
	Error         lipgloss.Color
	Border        lipgloss.Color
}

// TokyoNight is the TUI color scheme.
var TokyoNight = Theme{
	Foreground:    lipgloss.Color("#c0caf5"),
	ForegroundDim: lipgloss.Color("#565f89"),
	Primary:       lipgloss.Color("#7aa2f7"),
	Secondary:     lipgloss.Color("#bb9af7"),
	Error:         lipgloss.Color("#f7768e"),
	Border:        lipgloss.Color("#3b4261"),
}

// MaxWidth caps the transcript width.
const MaxWidth = 80

// contentWidth returns the usable width for a terminal of the given width.
func contentWidth(terminalWidth int) int {
	if terminalWidth <= 0 || terminalWidth > MaxWidth {
		return MaxWidth
	}
	return terminalWidth
}

// styles holds the pre-computed styles for the chat view.
type styles struct {
	Title     lipgloss.Style
	UserName  lipgloss.Style
	UserText  lipgloss.Style
	BotName   lipgloss.Style
	BotText   lipgloss.Style
	ErrorText lipgloss.Style
	Input     lipgloss.Style
	Help      lipgloss.Style
}

func newStyles(t Theme) styles {
	bubble := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		Padding(0, 1)

	return styles{
		Title: lipgloss.NewStyle().
			Foreground(t.Primary).
			Bold(true).
			Padding(0, 1),
		UserName: lipgloss.NewStyle().
			Foreground(t.Secondary).
			Bold(true),
		UserText: bubble.
			Foreground(t.Foreground).
			BorderForeground(t.Secondary),
		BotName: lipgloss.NewStyle().
			Foreground(t.Primary).
			Bold(true),
		BotText: bubble.
			Foreground(t.Foreground).
			BorderForeground(t.Border),
		ErrorText: bubble.
			Foreground(t.Error).
			BorderForeground(t.Error),
		Input: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(t.Primary).
			Padding(0, 1),
		Help: lipgloss.NewStyle().
			Foreground(t.ForegroundDim).
			Padding(0, 1),
	}
}
