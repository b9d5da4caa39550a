package window

import "github.com/charmbracelet/lipgloss"

// Styles used by the placeholder frame.
type Styles struct {
	Frame  lipgloss.Style
	Title  lipgloss.Style
	Muted  lipgloss.Style
	Status lipgloss.Style
}

func defaultStyles() Styles {
	return Styles{
		Frame: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#6272a4")).
			Padding(0, 1),
		Title: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#bd93f9")).
			Bold(true),
		Muted: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#6272a4")),
		Status: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#50fa7b")),
	}
}
