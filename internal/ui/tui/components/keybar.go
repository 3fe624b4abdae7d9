package components

import (
	"fmt"
	"strings"

	"github.com/PizzaHomicide/nplay/internal/remote"
	"github.com/PizzaHomicide/nplay/internal/ui/tui/styles"
	"github.com/charmbracelet/lipgloss"
)

// KeyBinding represents a single key and its description for the keybinding bar
type KeyBinding struct {
	Key  string
	Desc string
}

var keyStyle = lipgloss.NewStyle().
	Foreground(styles.Accent).
	Bold(true)

// KeyBindingsBar creates a styled footer showing a set of keybindings, centred in width
func KeyBindingsBar(width int, bindings []KeyBinding) string {
	parts := make([]string, 0, len(bindings))
	for _, b := range bindings {
		parts = append(parts, fmt.Sprintf("%s: %s", keyStyle.Render(b.Key), b.Desc))
	}

	keyBar := styles.Info.Render(strings.Join(parts, " • "))
	return styles.CenteredText(width, keyBar)
}

// BindingsFor looks up the keys bound to actions in a context so footers always match the real bindings.  desc
// overrides the long help text, which is too wide for a footer.  Actions without a binding are skipped.
func BindingsFor(context remote.ContextName, actions []remote.Action, desc map[remote.Action]string) []KeyBinding {
	var out []KeyBinding
	for _, action := range actions {
		for _, binding := range remote.ContextBindings[context] {
			if binding.Action != action {
				continue
			}
			text := binding.KeyMap.Help
			if d, ok := desc[action]; ok {
				text = d
			}
			out = append(out, KeyBinding{Key: displayKey(binding.KeyMap.Primary), Desc: text})
			break
		}
	}
	return out
}

func displayKey(key string) string {
	switch key {
	case " ":
		return "space"
	case "left":
		return "←"
	case "right":
		return "→"
	case "up":
		return "↑"
	case "down":
		return "↓"
	}
	return key
}
