package models

import (
	"fmt"
	"strings"

	"github.com/PizzaHomicide/nplay/internal/catalog"
	"github.com/PizzaHomicide/nplay/internal/log"
	"github.com/PizzaHomicide/nplay/internal/navigation"
	"github.com/PizzaHomicide/nplay/internal/remote"
	"github.com/PizzaHomicide/nplay/internal/ui/tui/components"
	"github.com/PizzaHomicide/nplay/internal/ui/tui/styles"
	"github.com/PizzaHomicide/nplay/internal/ui/tui/util"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// MenuOptions switches the optional behaviours of the clip menu
type MenuOptions struct {
	ReturnPassthrough bool // Return quits instead of being swallowed
	SubtitleMenu      bool // Up/Down choose the subtitle track the player starts with
}

const maxSearchResults = 5

// MenuModel is the clip carousel
type MenuModel struct {
	width, height int
	catalog       *catalog.Catalog
	opts          MenuOptions

	cursor   int // Index of the centre clip
	subtitle int // 1-based subtitle track of the centre clip, 0 for none

	searchMode  bool
	searchInput textinput.Model
	matches     []catalog.Match
}

// NewMenuModel creates a menu over cat with the first clip in the centre
func NewMenuModel(cat *catalog.Catalog, opts MenuOptions) *MenuModel {
	ti := textinput.New()
	ti.Placeholder = "Search clips..."
	ti.Prompt = "/ "
	ti.CharLimit = 64

	return &MenuModel{
		catalog:     cat,
		opts:        opts,
		searchInput: ti,
	}
}

func (m *MenuModel) ViewType() View {
	return ViewMenu
}

func (m *MenuModel) Init() tea.Cmd {
	return nil
}

// Selected returns the hand-off for the clip and subtitle currently picked
func (m *MenuModel) Selected() navigation.HandOff {
	return navigation.HandOff{Clip: m.cursor, Subtitle: m.subtitle}
}

// Searching reports whether the search input has the keyboard
func (m *MenuModel) Searching() bool {
	return m.searchMode
}

func (m *MenuModel) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if cmd := m.handleSearchModeKeyMsg(msg); cmd != nil {
			return m, cmd
		}
		if m.searchMode {
			return m, nil
		}
		return m, m.handleAction(remote.GetActionByKey(msg, remote.ContextMenu))

	case RemoteKeyMsg:
		if m.searchMode {
			return m, nil
		}
		return m, m.handleAction(remote.MenuAction(msg.Code))
	}

	return m, nil
}

func (m *MenuModel) handleSearchModeKeyMsg(msg tea.KeyMsg) tea.Cmd {
	if !m.searchMode {
		return nil
	}
	switch remote.GetActionByKey(msg, remote.ContextSearch) {
	case remote.ActionSearchCancel:
		m.exitSearch()
		return Handled("search:exit")
	case remote.ActionSearchComplete:
		if len(m.matches) > 0 {
			best := m.matches[0]
			log.Debug("Search jumped to clip", "query", m.searchInput.Value(), "title", best.Clip.Title)
			m.moveTo(best.Index)
		}
		m.exitSearch()
		return Handled("search:apply")
	}

	var cmd tea.Cmd
	m.searchInput, cmd = m.searchInput.Update(msg)
	m.matches = m.catalog.Search(m.searchInput.Value())
	return cmd
}

func (m *MenuModel) exitSearch() {
	m.searchMode = false
	m.searchInput.SetValue("")
	m.searchInput.Blur()
	m.matches = nil
}

func (m *MenuModel) handleAction(action remote.Action) tea.Cmd {
	switch action {
	case remote.ActionMoveLeft:
		m.moveTo(m.cursor - 1)
		return Handled("carousel:left")
	case remote.ActionMoveRight:
		m.moveTo(m.cursor + 1)
		return Handled("carousel:right")
	case remote.ActionMoveUp:
		if m.opts.SubtitleMenu {
			m.moveSubtitle(-1)
		}
		return Handled("subtitle:up")
	case remote.ActionMoveDown:
		if m.opts.SubtitleMenu {
			m.moveSubtitle(1)
		}
		return Handled("subtitle:down")
	case remote.ActionSelect:
		handOff := m.Selected()
		log.Info("Clip selected", "title", m.catalog.At(m.cursor).Title, "handoff", handOff.Encode())
		return func() tea.Msg {
			return PlayClipMsg{HandOff: handOff}
		}
	case remote.ActionReturn:
		if m.opts.ReturnPassthrough {
			log.Info("Return pressed in menu, exiting")
			return tea.Quit
		}
		return Handled("menu:return")
	case remote.ActionEnableSearch:
		m.searchMode = true
		return tea.Batch(m.searchInput.Focus(), Handled("search:enable"))
	}
	return nil
}

// moveTo centres clip i, wrapping around the catalog.  The subtitle choice belongs to a clip so it is reset.
func (m *MenuModel) moveTo(i int) {
	m.cursor = m.catalog.Index(i)
	m.subtitle = 0
}

func (m *MenuModel) moveSubtitle(step int) {
	choices := len(m.catalog.At(m.cursor).Subtitles) + 1
	m.subtitle = ((m.subtitle+step)%choices + choices) % choices
}

func (m *MenuModel) View() string {
	header := styles.Header(m.width, "nplay")

	sections := []string{header, "", m.renderCarousel(), ""}
	if m.opts.SubtitleMenu {
		sections = append(sections, m.renderSubtitleMenu(), "")
	}
	if m.searchMode {
		sections = append(sections, m.renderSearch(), "")
	}
	sections = append(sections, m.renderFooter())

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m *MenuModel) renderCarousel() string {
	cardWidth := max((m.width-12)/3, 12)
	prev, centre, next := m.catalog.Neighbours(m.cursor)

	card := func(style lipgloss.Style, clip catalog.Clip, detail string) string {
		text := util.TruncateString(clip.Title, cardWidth-6)
		if detail != "" {
			text += "\n" + styles.Dim.Render(util.TruncateString(detail, cardWidth-6))
		}
		return style.Width(cardWidth).Render(text)
	}

	row := lipgloss.JoinHorizontal(
		lipgloss.Center,
		card(styles.Card, prev, ""),
		"  ",
		card(styles.SelectedCard, centre, centre.Type.String()),
		"  ",
		card(styles.Card, next, ""),
	)

	position := styles.Dim.Render(fmt.Sprintf("%d / %d", m.cursor+1, m.catalog.Len()))
	description := ""
	if centre.Description != "" {
		description = styles.Info.Render(util.TruncateString(centre.Description, m.width-4))
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		styles.CenteredText(m.width, row),
		styles.CenteredText(m.width, position),
		styles.CenteredText(m.width, description),
	)
}

func (m *MenuModel) renderSubtitleMenu() string {
	clip := m.catalog.At(m.cursor)
	options := make([]string, 0, len(clip.Subtitles)+1)
	options = append(options, "None")
	for i, track := range clip.Subtitles {
		options = append(options, fmt.Sprintf("%d. %s", i+1, subtitleName(track)))
	}

	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Bold(true).Render("Subtitles"))
	for i, option := range options {
		b.WriteString("\n")
		if i == m.subtitle {
			b.WriteString(styles.FocusedControl.Render(option))
		} else {
			b.WriteString(styles.Control.Render(option))
		}
	}
	return styles.CenteredText(m.width, b.String())
}

// subtitleName shows the file name of a subtitle track without its directory
func subtitleName(track catalog.SubtitleTrack) string {
	name := track.File
	if i := strings.LastIndexAny(name, "/\\"); i >= 0 {
		name = name[i+1:]
	}
	return util.TruncateString(name, 40)
}

func (m *MenuModel) renderSearch() string {
	var b strings.Builder
	b.WriteString(m.searchInput.View())

	if m.searchInput.Value() != "" && len(m.matches) == 0 {
		b.WriteString("\n")
		b.WriteString(styles.Dim.Render("No matching clips"))
	}
	for i, match := range m.matches {
		if i == maxSearchResults {
			break
		}
		b.WriteString("\n")
		line := util.TruncateString(match.Clip.Title, m.width-8)
		if i == 0 {
			b.WriteString(styles.FocusedControl.Render(line))
		} else {
			b.WriteString(styles.Control.Render(line))
		}
	}
	return styles.ContentBox(m.width-4, b.String(), 0)
}

func (m *MenuModel) renderFooter() string {
	if m.searchMode {
		return components.KeyBindingsBar(m.width, components.BindingsFor(remote.ContextSearch,
			[]remote.Action{remote.ActionSearchComplete, remote.ActionSearchCancel},
			map[remote.Action]string{remote.ActionSearchComplete: "Jump", remote.ActionSearchCancel: "Cancel"}))
	}

	actions := []remote.Action{remote.ActionMoveLeft, remote.ActionMoveRight}
	if m.opts.SubtitleMenu {
		actions = append(actions, remote.ActionMoveDown)
	}
	actions = append(actions, remote.ActionSelect, remote.ActionEnableSearch)
	if m.opts.ReturnPassthrough {
		actions = append(actions, remote.ActionReturn)
	}

	return components.KeyBindingsBar(m.width, components.BindingsFor(remote.ContextMenu, actions, map[remote.Action]string{
		remote.ActionMoveLeft:     "Prev",
		remote.ActionMoveRight:    "Next",
		remote.ActionMoveDown:     "Subtitles",
		remote.ActionSelect:       "Play",
		remote.ActionEnableSearch: "Search",
		remote.ActionReturn:       "Quit",
	}))
}

func (m *MenuModel) Resize(width, height int) {
	m.width = width
	m.height = height
	m.searchInput.Width = max(width-12, 10)
}
