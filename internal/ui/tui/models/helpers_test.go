package models

import (
	"testing"

	"github.com/PizzaHomicide/nplay/internal/catalog"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"
)

// key builds the key message bubbletea would deliver for a binding string
func key(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	case " ":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// typeText feeds each rune of text to update as its own key press
func typeText(update func(tea.Msg), text string) {
	for _, r := range text {
		update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
}

func defaultCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	cat := catalog.Default()
	require.NoError(t, cat.Validate())
	return cat
}

// run executes cmd and returns its message, or nil when there is no command
func run(cmd tea.Cmd) tea.Msg {
	if cmd == nil {
		return nil
	}
	return cmd()
}
