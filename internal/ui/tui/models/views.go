package models

import tea "github.com/charmbracelet/bubbletea"

// View represents a specific UI view in the application
type View string

// Available views in the application
const (
	ViewMenu    View = "menu"
	ViewPlayer  View = "player"
	ViewLoading View = "loading"
	ViewHelp    View = "help"
)

// Modal represents a UI intended to be temporarily shown to the user before returning to the original view
type Modal string

// Available modals in the application
const (
	ModalNone Modal = "none"
	ModalHelp Modal = "help"
)

// Model is implemented by every view the app model delegates to
type Model interface {
	ViewType() View
	Init() tea.Cmd
	Update(msg tea.Msg) (Model, tea.Cmd)
	View() string
	Resize(width, height int)
}
