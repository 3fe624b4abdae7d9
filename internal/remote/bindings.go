package remote

import tea "github.com/charmbracelet/bubbletea"

// ContextName represents a specific UI context in the application that has its own keybinds
type ContextName string

const (
	ContextGlobal ContextName = "global"
	ContextMenu   ContextName = "menu"
	ContextPlayer ContextName = "player"
	ContextSearch ContextName = "search"
	ContextHelp   ContextName = "help"
)

var ContextBindings = map[ContextName][]Binding{
	ContextGlobal: globalBindings,
	ContextMenu:   menuBindings,
	ContextPlayer: playerBindings,
	ContextSearch: searchBindings,
	ContextHelp:   helpBindings,
}

// KeyMap stores the mappings from actions to key sequences for each context
type KeyMap struct {
	Primary   string
	Secondary string // Optional alternative key
	Help      string // Description for help screen
}

// Binding maps an action to its keys and help text
type Binding struct {
	Action Action
	KeyMap KeyMap
}

// globalBindings contains key bindings that work across all views
var globalBindings = []Binding{
	{
		Action: ActionQuit,
		KeyMap: KeyMap{
			Primary: "ctrl+c",
			Help:    "Quit application",
		},
	},
	{
		Action: ActionToggleHelp,
		KeyMap: KeyMap{
			Primary:   "ctrl+h",
			Secondary: "?",
			Help:      "Toggle help screen",
		},
	},
}

var menuBindings = []Binding{
	{
		Action: ActionMoveLeft,
		KeyMap: KeyMap{
			Primary:   "left",
			Secondary: "h",
			Help:      "Previous clip",
		},
	},
	{
		Action: ActionMoveRight,
		KeyMap: KeyMap{
			Primary:   "right",
			Secondary: "l",
			Help:      "Next clip",
		},
	},
	{
		Action: ActionMoveUp,
		KeyMap: KeyMap{
			Primary:   "up",
			Secondary: "k",
			Help:      "Previous subtitle track",
		},
	},
	{
		Action: ActionMoveDown,
		KeyMap: KeyMap{
			Primary:   "down",
			Secondary: "j",
			Help:      "Next subtitle track",
		},
	},
	{
		Action: ActionSelect,
		KeyMap: KeyMap{
			Primary: "enter",
			Help:    "Play clip",
		},
	},
	{
		Action: ActionReturn,
		KeyMap: KeyMap{
			Primary:   "esc",
			Secondary: "backspace",
			Help:      "Return",
		},
	},
	{
		Action: ActionEnableSearch,
		KeyMap: KeyMap{
			Primary:   "/",
			Secondary: "ctrl+f",
			Help:      "Search clips",
		},
	},
}

var playerBindings = []Binding{
	{
		Action: ActionPlayPause,
		KeyMap: KeyMap{
			Primary: " ",
			Help:    "Play/pause",
		},
	},
	{
		Action: ActionPlay,
		KeyMap: KeyMap{
			Primary: "p",
			Help:    "Play",
		},
	},
	{
		Action: ActionPause,
		KeyMap: KeyMap{
			Primary: "P",
			Help:    "Pause",
		},
	},
	{
		Action: ActionStop,
		KeyMap: KeyMap{
			Primary: "q",
			Help:    "Stop and close player",
		},
	},
	{
		Action: ActionFastForward,
		KeyMap: KeyMap{
			Primary:   "]",
			Secondary: "L",
			Help:      "Seek forward",
		},
	},
	{
		Action: ActionRewind,
		KeyMap: KeyMap{
			Primary:   "[",
			Secondary: "H",
			Help:      "Seek backward",
		},
	},
	{
		Action: ActionMoveLeft,
		KeyMap: KeyMap{
			Primary:   "left",
			Secondary: "h",
			Help:      "Focus previous control",
		},
	},
	{
		Action: ActionMoveRight,
		KeyMap: KeyMap{
			Primary:   "right",
			Secondary: "l",
			Help:      "Focus next control",
		},
	},
	{
		Action: ActionMoveUp,
		KeyMap: KeyMap{
			Primary:   "up",
			Secondary: "k",
			Help:      "Previous option in selector",
		},
	},
	{
		Action: ActionMoveDown,
		KeyMap: KeyMap{
			Primary:   "down",
			Secondary: "j",
			Help:      "Next option in selector",
		},
	},
	{
		Action: ActionSelect,
		KeyMap: KeyMap{
			Primary: "enter",
			Help:    "Activate focused control",
		},
	},
	{
		Action: ActionReturn,
		KeyMap: KeyMap{
			Primary:   "esc",
			Secondary: "backspace",
			Help:      "Leave fullscreen or close player",
		},
	},
	{
		Action: ActionFocusSubtitleTrack,
		KeyMap: KeyMap{
			Primary: "r",
			Help:    "Subtitle track selector",
		},
	},
	{
		Action: ActionFocusVideoTrack,
		KeyMap: KeyMap{
			Primary: "v",
			Help:    "Video representation selector",
		},
	},
	{
		Action: ActionFocusAudioTrack,
		KeyMap: KeyMap{
			Primary: "a",
			Help:    "Audio representation selector",
		},
	},
	{
		Action: ActionToggleLogs,
		KeyMap: KeyMap{
			Primary: "g",
			Help:    "Show/hide engine logs",
		},
	},
	{
		Action: ActionToggleSubtitles,
		KeyMap: KeyMap{
			Primary: "s",
			Help:    "Subtitles on/off",
		},
	},
	{
		Action: ActionToggleFullscreen,
		KeyMap: KeyMap{
			Primary: "f",
			Help:    "Toggle fullscreen",
		},
	},
}

// searchBindings contains key bindings specific for when search mode is active
var searchBindings = []Binding{
	{
		Action: ActionSearchCancel,
		KeyMap: KeyMap{
			Primary:   "esc",
			Secondary: "ctrl+f",
			Help:      "Exit search mode and remove the filter",
		},
	},
	{
		Action: ActionSearchComplete,
		KeyMap: KeyMap{
			Primary: "enter",
			Help:    "Jump to the best matching clip",
		},
	},
}

var helpBindings = []Binding{
	{
		Action: ActionReturn,
		KeyMap: KeyMap{
			Primary: "esc",
			Help:    "Close help",
		},
	},
}

// GetActionByKey returns just the action for a given key, or an empty Action if not found
func GetActionByKey(keyMsg tea.KeyMsg, name ContextName) Action {
	return ActionForKey(keyMsg.String(), name)
}

// ActionForKey looks up a key string in the bindings of a context
func ActionForKey(key string, name ContextName) Action {
	if bindings, exists := ContextBindings[name]; exists {
		for _, binding := range bindings {
			if binding.KeyMap.Primary == key || binding.KeyMap.Secondary == key {
				return binding.Action
			}
		}
	}
	return ActionNone
}

// FormatKeyHelp formats a key binding for display in help text
func FormatKeyHelp(binding Binding) string {
	primary := binding.KeyMap.Primary
	if primary == " " {
		primary = "space"
	}
	if binding.KeyMap.Secondary != "" {
		return primary + "/" + binding.KeyMap.Secondary + ": " + binding.KeyMap.Help
	}
	return primary + ": " + binding.KeyMap.Help
}

// GetHelpText generates formatted help text for a set of bindings
func GetHelpText(title string, bindings []Binding) string {
	helpText := "## " + title + "\n\n"
	for _, binding := range bindings {
		helpText += "* " + FormatKeyHelp(binding) + "\n"
	}
	return helpText
}
