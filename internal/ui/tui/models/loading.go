package models

import (
	"strings"

	"github.com/PizzaHomicide/nplay/internal/ui/tui/styles"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// LoadingModel displays a loading indicator with contextual messages
type LoadingModel struct {
	width, height int
	title         string // Optional title for the loading box
	message       string // Primary message displayed with the spinner
	contextInfo   string // Optional additional context
	actionText    string // Optional action text/instruction
	spinner       spinner.Model
}

// NewLoadingModel creates a new loading model with the required message
func NewLoadingModel(message string) *LoadingModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(styles.Accent)

	return &LoadingModel{
		message: message,
		spinner: s,
	}
}

// WithTitle adds an optional title to the loading box
func (m *LoadingModel) WithTitle(title string) *LoadingModel {
	m.title = title
	return m
}

// WithContextInfo adds additional context information
func (m *LoadingModel) WithContextInfo(info string) *LoadingModel {
	m.contextInfo = info
	return m
}

// WithActionText adds text describing a possible user action
func (m *LoadingModel) WithActionText(text string) *LoadingModel {
	m.actionText = text
	return m
}

// SetMessage replaces the primary message, keeping the spinner running
func (m *LoadingModel) SetMessage(message string) {
	m.message = message
}

func (m *LoadingModel) ViewType() View {
	return ViewLoading
}

func (m *LoadingModel) Init() tea.Cmd {
	return m.spinner.Tick
}

// Update only advances the spinner, everything else is ignored
func (m *LoadingModel) Update(msg tea.Msg) (Model, tea.Cmd) {
	if tick, ok := msg.(spinner.TickMsg); ok {
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(tick)
		return m, cmd
	}
	return m, nil
}

// Box renders the loading box without centring it, so it can be embedded in another view
func (m *LoadingModel) Box() string {
	contentWidth := min(m.width-20, 80)
	if contentWidth < 40 {
		contentWidth = min(m.width-4, 40)
	}

	spinnerStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#9D86FF")).
		Bold(true).
		PaddingRight(1)

	messageStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#FFFFFF")).
		Bold(true)

	centerStyle := lipgloss.NewStyle().
		Width(contentWidth - 6). // Account for padding
		Align(lipgloss.Center)

	var contentBuilder strings.Builder
	primaryRow := spinnerStyle.Render(m.spinner.View()) + " " + messageStyle.Render(m.message)
	contentBuilder.WriteString(centerStyle.Render(primaryRow))

	if m.contextInfo != "" {
		contextStyle := lipgloss.NewStyle().
			Foreground(lipgloss.Color("#AAAAAA")).
			Italic(true).
			Width(contentWidth - 6).
			Align(lipgloss.Center)

		contentBuilder.WriteString("\n\n")
		contentBuilder.WriteString(contextStyle.Render(m.contextInfo))
	}

	if m.actionText != "" {
		actionStyle := lipgloss.NewStyle().
			Foreground(lipgloss.Color("#43BF6D")).
			Bold(true).
			Width(contentWidth-6).
			Align(lipgloss.Center).
			Padding(1, 0)

		contentBuilder.WriteString("\n\n")
		contentBuilder.WriteString(actionStyle.Render(m.actionText))
	}

	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#9D86FF")).
		Padding(1, 3).
		Width(contentWidth)

	if m.title == "" {
		return boxStyle.Render(contentBuilder.String())
	}

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#FFFFFF")).
		Background(styles.Accent).
		Padding(0, 2).
		Align(lipgloss.Center).
		Width(contentWidth)

	return lipgloss.JoinVertical(
		lipgloss.Center,
		titleStyle.Render(m.title),
		boxStyle.Render(contentBuilder.String()),
	)
}

// View renders the loading box in the middle of the screen
func (m *LoadingModel) View() string {
	return styles.CenteredView(m.width, m.height, m.Box())
}

// Resize updates the dimensions of the loading model
func (m *LoadingModel) Resize(width, height int) {
	m.width = width
	m.height = height
}
