package styles

import (
	"github.com/charmbracelet/lipgloss"
)

var (
	Accent = lipgloss.Color("#7D56F4")
	Muted  = lipgloss.Color("#555555")

	// Text styles
	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#FAFAFA")).
		Background(Accent).
		Padding(0, 1)

	Info = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#DEDEDE"))

	Url = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#43BF6D")).
		Underline(true)

	Dim = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#888888"))

	Error = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#FF5F5F"))

	Status = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#CCCCCC")).
		Padding(0, 2)

	// Player controls
	Control = lipgloss.NewStyle().
		Padding(0, 1).
		Foreground(lipgloss.Color("#DEDEDE"))

	FocusedControl = lipgloss.NewStyle().
			Padding(0, 1).
			Bold(true).
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(Accent)

	DisabledControl = lipgloss.NewStyle().
			Padding(0, 1).
			Foreground(lipgloss.Color("#666666"))

	Overlay = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#FFFFFF")).
		Background(lipgloss.Color("#222222")).
		Padding(0, 2)

	// Carousel cards
	Card = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Muted).
		Padding(1, 2).
		Align(lipgloss.Center)

	SelectedCard = Card.
			BorderForeground(Accent).
			Bold(true)
)

// Layout helpers
func Header(width int, title string) string {
	return Title.
		Width(width).
		Align(lipgloss.Center).
		Render(title)
}

func ContentBox(width int, content string, padding int) string {
	return lipgloss.NewStyle().
		Width(width).
		Padding(padding).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Muted).
		Render(content)
}

func CenteredView(width int, height int, content string) string {
	return lipgloss.NewStyle().
		Width(width).
		Height(height).
		Align(lipgloss.Center, lipgloss.Center).
		Render(content)
}

func CenteredText(width int, text string) string {
	return lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Render(text)
}
