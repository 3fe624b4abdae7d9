package models

import (
	"fmt"
	"strings"

	"github.com/PizzaHomicide/nplay/internal/remote"
	"github.com/PizzaHomicide/nplay/internal/ui/tui/styles"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

// HelpModel displays contextual help with scrolling
type HelpModel struct {
	width, height int
	context       View
	viewport      viewport.Model
}

// NewHelpModel creates a new help model for the given context
func NewHelpModel(context View) *HelpModel {
	return &HelpModel{
		context:  context,
		viewport: viewport.New(0, 0),
	}
}

func (m *HelpModel) ViewType() View {
	return ViewHelp
}

// SetContext switches the help content to another view
func (m *HelpModel) SetContext(context View) {
	if m.context == context {
		return
	}
	m.context = context
	m.updateContent()
}

// Init initializes the model
func (m *HelpModel) Init() tea.Cmd {
	// Set initial content if dimensions are available
	if m.width > 0 && m.height > 0 {
		m.updateContent()
	}
	return nil
}

// Update scrolls the viewport.  The viewport's own key map covers arrows, page up/down and the vim keys.
func (m *HelpModel) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd
	switch msg := msg.(type) {
	case tea.MouseMsg:
		m.viewport, cmd = m.viewport.Update(msg)
	case tea.KeyMsg:
		switch msg.String() {
		case "home", "g":
			m.viewport.GotoTop()
		case "end", "G":
			m.viewport.GotoBottom()
		default:
			m.viewport, cmd = m.viewport.Update(msg)
		}
	}
	return m, cmd
}

// Resize updates the dimensions
func (m *HelpModel) Resize(width, height int) {
	m.width = width
	m.height = height

	// Ensure we don't set negative dimensions
	m.viewport.Width = max(width-4, 1)    // Account for borders
	m.viewport.Height = max(height-10, 1) // Account for header, footer, spacing

	m.updateContent()
}

func (m *HelpModel) updateContent() {
	m.viewport.SetContent(m.generateHelpContent())
	m.viewport.GotoTop()
}

// View renders the help screen
func (m *HelpModel) View() string {
	header := styles.Header(m.width, "Help: "+m.getContextTitle())

	scrollText := "↑/↓: Scroll • PgUp/PgDn: Page scroll • Home/End: Goto top/bottom • ESC: Return"
	footer := styles.CenteredText(m.width, styles.Info.Render(scrollText))

	return lipgloss.JoinVertical(
		lipgloss.Left,
		header,
		"", // Spacing
		styles.ContentBox(m.width-2, m.viewport.View(), 1),
		"", // Spacing
		footer,
	)
}

func (m *HelpModel) getContextTitle() string {
	switch m.context {
	case ViewMenu:
		return "Clip Menu"
	case ViewPlayer, ViewLoading:
		return "Player"
	default:
		return "General"
	}
}

// formatKeybindingSection formats a section of keybindings with aligned colons
func (m *HelpModel) formatKeybindingSection(title string, bindings []remote.Binding, skipActions map[remote.Action]bool) string {
	if len(bindings) == 0 {
		return ""
	}

	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Bold(true).Render(title))
	b.WriteString("\n\n")

	keyText := func(binding remote.Binding) string {
		text := binding.KeyMap.Primary
		if text == " " {
			text = "space"
		}
		if binding.KeyMap.Secondary != "" {
			text += " or " + binding.KeyMap.Secondary
		}
		return text
	}

	maxKeyWidth := 0
	for _, binding := range bindings {
		if skipActions[binding.Action] {
			continue
		}
		maxKeyWidth = max(maxKeyWidth, runewidth.StringWidth(keyText(binding)))
	}

	for _, binding := range bindings {
		if skipActions[binding.Action] {
			continue
		}
		text := keyText(binding)
		padding := strings.Repeat(" ", maxKeyWidth-runewidth.StringWidth(text))

		b.WriteString(fmt.Sprintf("• %s%s : %s\n",
			lipgloss.NewStyle().Bold(true).Render(text),
			padding,
			binding.KeyMap.Help))
	}

	return b.String()
}

// generateHelpContent builds the complete help content
func (m *HelpModel) generateHelpContent() string {
	var b strings.Builder

	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(styles.Accent)

	b.WriteString(titleStyle.Render(m.getContextTitle()))
	b.WriteString("\n\n")
	b.WriteString(m.getContextDescription())
	b.WriteString("\n\n")

	b.WriteString(titleStyle.Render("Keybindings"))
	b.WriteString("\n\n")

	globalBindings := m.formatKeybindingSection("Global commands:", remote.ContextBindings[remote.ContextGlobal], nil)
	b.WriteString(globalBindings)

	globalActions := make(map[remote.Action]bool)
	for _, binding := range remote.ContextBindings[remote.ContextGlobal] {
		globalActions[binding.Action] = true
	}

	var contextName remote.ContextName
	switch m.context {
	case ViewMenu:
		contextName = remote.ContextMenu
	case ViewPlayer, ViewLoading:
		contextName = remote.ContextPlayer
	}

	if contextName != "" {
		b.WriteString("\n")
		sectionTitle := fmt.Sprintf("%s commands:", m.getContextTitle())
		b.WriteString(m.formatKeybindingSection(sectionTitle, remote.ContextBindings[contextName], globalActions))
	}

	if m.context == ViewMenu {
		b.WriteString("\n")
		b.WriteString(m.formatKeybindingSection("When in search mode:", remote.ContextBindings[remote.ContextSearch], nil))
	}

	if contextName == remote.ContextPlayer {
		b.WriteString("\n")
		b.WriteString(m.getControlDetails())
	}

	return b.String()
}

// getControlDetails explains the on-screen control ring of the player
func (m *HelpModel) getControlDetails() string {
	var b strings.Builder

	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(styles.Accent)
	b.WriteString(titleStyle.Render("Controls"))
	b.WriteString("\n\n")

	b.WriteString("Left and right move the focus around the control ring, wrapping at either end.\n")
	b.WriteString("Enter activates the focused control.  On a selector, up and down pick a track and enter applies it.\n\n")
	b.WriteString("Repeated seeks are combined.  The position only jumps once no seek key has been pressed for a moment,\n")
	b.WriteString("and the controls stay disabled until the engine finishes buffering at the new position.\n\n")
	b.WriteString("Video and audio selectors are only shown for DASH clips.\n")
	b.WriteString("Clicking the progress bar seeks straight to that point.\n")

	return b.String()
}

func (m *HelpModel) getContextDescription() string {
	switch m.context {
	case ViewMenu:
		return "The clip menu shows the catalog as a carousel.\n\n" +
			"Move between clips with left and right.  Up and down pick which subtitle track the player starts with. " +
			"Press Enter to start playback, or search the catalog by title."

	case ViewPlayer, ViewLoading:
		return "The player drives the playback engine.\n\n" +
			"Playback position, subtitle text and the available representations are reported by the engine. " +
			"Remote buttons and the keys below control playback."

	default:
		return "Welcome to nplay, a terminal front end for the native playback engine."
	}
}
