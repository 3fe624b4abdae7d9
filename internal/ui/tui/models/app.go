package models

import (
	"github.com/PizzaHomicide/nplay/internal/catalog"
	"github.com/PizzaHomicide/nplay/internal/config"
	"github.com/PizzaHomicide/nplay/internal/log"
	"github.com/PizzaHomicide/nplay/internal/navigation"
	"github.com/PizzaHomicide/nplay/internal/remote"
	tea "github.com/charmbracelet/bubbletea"
)

// AppOptions changes how the app starts and ends
type AppOptions struct {
	Start             *navigation.HandOff // Open the player on this clip straight away instead of the menu
	ExitAfterPlayback bool                // Quit when the player closes instead of going back to the menu
}

// AppModel is the main application model that coordinates all child models.  It is the high level wrapper.
type AppModel struct {
	config        *config.Config
	catalog       *catalog.Catalog
	opts          AppOptions
	activeView    View  // Track the current active 'main view'
	activeModal   Modal // Track the current active 'modal overlay' if any
	width, height int

	// Models used for various views
	menuModel   *MenuModel
	playerModel *PlayerModel // nil unless a clip is playing
	helpModel   *HelpModel
}

// NewAppModel creates a new instance of the main application model
func NewAppModel(cfg *config.Config, cat *catalog.Catalog, opts AppOptions) AppModel {
	menu := NewMenuModel(cat, MenuOptions{
		ReturnPassthrough: cfg.UI.ReturnPassthrough,
		SubtitleMenu:      !cfg.UI.HideSubtitleMenu,
	})

	return AppModel{
		config:      cfg,
		catalog:     cat,
		opts:        opts,
		activeView:  ViewMenu,
		activeModal: ModalNone,
		menuModel:   menu,
		helpModel:   NewHelpModel(ViewMenu),
	}
}

func (m AppModel) Init() tea.Cmd {
	log.Info("Initialising nplay TUI", "clips", m.catalog.Len())

	if m.opts.Start != nil {
		handOff := *m.opts.Start
		log.Debug("Starting straight into the player", "handoff", handOff.Encode())
		return func() tea.Msg {
			return PlayClipMsg{HandOff: handOff}
		}
	}
	return m.menuModel.Init()
}

// Update handles messages and updates the models as appropriate
func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		// Typing into the search box must not trigger global keys such as '?'
		if m.activeView == ViewMenu && m.menuModel.Searching() && msg.String() != "ctrl+c" {
			break
		}
		switch remote.GetActionByKey(msg, remote.ContextGlobal) {
		case remote.ActionQuit:
			log.Info("Quit command received.  Shutting down...")
			if m.playerModel != nil {
				m.playerModel.Shutdown()
			}
			return m, tea.Quit
		case remote.ActionToggleHelp:
			log.Debug("Help requested", "active_view", m.activeView)
			if m.activeModal != ModalNone {
				m.activeModal = ModalNone
			} else {
				m.helpModel.SetContext(m.activeView)
				m.activeModal = ModalHelp
			}
			return m, nil
		}

		// Handle closing modal when esc is pressed if any is active
		if m.activeModal != ModalNone && remote.GetActionByKey(msg, remote.ContextHelp) == remote.ActionReturn {
			m.activeModal = ModalNone
			return m, nil
		}

	case tea.WindowSizeMsg:
		log.Debug("Window size changed", "old_width", m.width, "new_width", msg.Width, "old_height", m.height, "new_height", msg.Height)
		m.width = msg.Width
		m.height = msg.Height

		// Propagate new window size to all views so they are aware and can render correctly
		m.menuModel.Resize(msg.Width, msg.Height)
		m.helpModel.Resize(msg.Width, msg.Height)
		if m.playerModel != nil {
			m.playerModel.Resize(msg.Width, msg.Height)
		}
		return m, nil

	case PlayClipMsg:
		if m.playerModel != nil {
			log.Warn("Clip selected while a player is already open, ignoring", "handoff", msg.HandOff.Encode())
			return m, nil
		}
		m.playerModel = NewPlayerModel(m.config, m.catalog, msg.HandOff)
		m.playerModel.Resize(m.width, m.height)
		m.activeView = ViewPlayer
		m.activeModal = ModalNone
		return m, m.playerModel.Init()

	case PlayerClosedMsg:
		m.playerModel = nil
		m.activeView = ViewMenu
		if m.opts.ExitAfterPlayback {
			log.Info("Playback finished, exiting")
			return m, tea.Quit
		}
		return m, nil

	case HandledMsg:
		log.Trace("Message handled", "source", msg.Source)
		return m, nil
	}

	// The help modal takes input while it is open, but the player keeps receiving everything that is not a key
	if m.activeModal == ModalHelp {
		switch msg.(type) {
		case tea.KeyMsg, tea.MouseMsg, RemoteKeyMsg:
			return m.updateHelpModal(msg)
		}
	}

	switch m.activeView {
	case ViewMenu:
		return m.updateMenuView(msg)
	case ViewPlayer:
		return m.updatePlayerView(msg)
	}

	return m, nil
}

func (m AppModel) View() string {
	// If there is an active modal it takes precedence
	if m.activeModal == ModalHelp {
		return m.helpModel.View()
	}

	switch m.activeView {
	case ViewMenu:
		return m.menuModel.View()
	case ViewPlayer:
		if m.playerModel != nil {
			return m.playerModel.View()
		}
	}
	return "Unknown view\nPress ctrl+c to quit."
}

func (m AppModel) updateMenuView(msg tea.Msg) (tea.Model, tea.Cmd) {
	menuModel, cmd := m.menuModel.Update(msg)
	m.menuModel = menuModel.(*MenuModel)

	return m, cmd
}

func (m AppModel) updatePlayerView(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.playerModel == nil {
		return m, nil
	}
	playerModel, cmd := m.playerModel.Update(msg)
	m.playerModel = playerModel.(*PlayerModel)

	return m, cmd
}

func (m AppModel) updateHelpModal(msg tea.Msg) (tea.Model, tea.Cmd) {
	helpModel, cmd := m.helpModel.Update(msg)
	m.helpModel = helpModel.(*HelpModel)

	return m, cmd
}
