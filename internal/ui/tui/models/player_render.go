package models

// player_render.go draws the player view.  The rows above the progress bar have a fixed layout so that mouse
// positions can be mapped back onto the bar.

import (
	"fmt"
	"strings"

	"github.com/PizzaHomicide/nplay/internal/player"
	"github.com/PizzaHomicide/nplay/internal/protocol"
	"github.com/PizzaHomicide/nplay/internal/remote"
	"github.com/PizzaHomicide/nplay/internal/ui/tui/components"
	"github.com/PizzaHomicide/nplay/internal/ui/tui/styles"
	"github.com/PizzaHomicide/nplay/internal/ui/tui/util"
	"github.com/charmbracelet/lipgloss"
)

const (
	barLeft       = 2
	logAreaHeight = 8
)

func (m *PlayerModel) barWidth() int {
	return max(m.width-2*barLeft, 10)
}

// barRow is the screen row the progress bar is drawn on
func (m *PlayerModel) barRow() int {
	if m.State().Fullscreen {
		return 2
	}
	return 4
}

// barFraction maps a screen cell to a position along the progress bar
func (m *PlayerModel) barFraction(x, y int) (float64, bool) {
	width := m.barWidth()
	if y != m.barRow() || x < barLeft || x >= barLeft+width {
		return 0, false
	}
	if width == 1 {
		return 0, true
	}
	return float64(x-barLeft) / float64(width-1), true
}

func (m *PlayerModel) View() string {
	if m.connectErr != nil {
		return m.renderConnectError()
	}

	state := m.State()
	if m.ctrl == nil || (state.Phase == player.PhaseLoading && state.Status == "") {
		return m.loading.View()
	}

	indent := strings.Repeat(" ", barLeft)
	top := []string{
		indent + lipgloss.NewStyle().Bold(true).Render(util.TruncateString(m.clip.Title, m.width-2*barLeft)),
		indent + m.renderTimes(state),
		indent + m.progress.ViewAs(state.Progress()),
	}
	if !state.Fullscreen {
		top = append([]string{styles.Header(m.width, "nplay"), ""}, top...)
	}

	sections := append(top, "", m.renderControls(state))
	if state.Focus.IsSelector() && !state.Fullscreen {
		sections = append(sections, "", m.renderSelector(state))
	}
	if text := state.OverlayText(); text != "" {
		sections = append(sections, "", styles.CenteredText(m.width, styles.Overlay.Render(text)))
	}
	if status := m.renderStatus(state); status != "" {
		sections = append(sections, "", status)
	}
	if state.LogsVisible {
		sections = append(sections, "", m.renderLogs())
	}
	if !state.Fullscreen {
		sections = append(sections, "", m.renderFooter())
	}

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m *PlayerModel) renderConnectError() string {
	box := NewLoadingModel("Engine unavailable").
		WithTitle(m.clip.Title).
		WithContextInfo(m.connectErr.Error()).
		WithActionText("Press esc to return to the menu")
	box.Resize(m.width, m.height)
	return styles.CenteredView(m.width, m.height, box.Box())
}

func (m *PlayerModel) renderTimes(state player.State) string {
	times := util.FormatPlaybackTime(state.Position) + " / " + util.FormatPlaybackTime(state.Duration)
	if m.hover != "" {
		times += "   " + styles.Dim.Render(m.hover)
	}
	return times
}

func (m *PlayerModel) renderControls(state player.State) string {
	parts := make([]string, 0, state.Controls)
	for i := 0; i < state.Controls; i++ {
		control := player.Control(i)
		label := control.String()
		if control == player.ControlPlay && state.Playing {
			label = "Pause"
		}

		style := styles.Control
		switch {
		case control == state.Focus:
			style = styles.FocusedControl
		case !state.Enabled && isTransport(control):
			style = styles.DisabledControl
		case control == player.ControlSubtitleTrack && !state.Subtitles.Available:
			style = styles.DisabledControl
		}
		parts = append(parts, style.Render(label))
	}
	return styles.CenteredText(m.width, lipgloss.JoinHorizontal(lipgloss.Center, parts...))
}

func isTransport(c player.Control) bool {
	return c == player.ControlRewind || c == player.ControlPlay || c == player.ControlForward
}

func (m *PlayerModel) renderSelector(state player.State) string {
	var labels []string
	selected := -1

	switch state.Focus {
	case player.ControlSubtitleTrack:
		if !state.Subtitles.Available {
			return styles.CenteredText(m.width, styles.Dim.Render("No subtitle tracks"))
		}
		for i, opt := range state.Subtitles.Options {
			labels = append(labels, opt.Label())
			if opt.ID == state.Subtitles.Selected {
				selected = i
			}
		}
	case player.ControlVideoTrack:
		labels, selected = representationLabels(state.Video, player.VideoLabel)
	case player.ControlAudioTrack:
		labels, selected = representationLabels(state.Audio, player.AudioLabel)
	}

	if len(labels) == 0 {
		return styles.CenteredText(m.width, styles.Dim.Render("Waiting for the engine to report tracks"))
	}

	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Bold(true).Render(state.Focus.String()))
	for i, label := range labels {
		b.WriteString("\n")
		if i == selected {
			b.WriteString(styles.FocusedControl.Render("> " + label))
		} else {
			b.WriteString(styles.Control.Render("  " + label))
		}
	}
	return styles.CenteredText(m.width, b.String())
}

func representationLabels(sel player.Selection, label func(protocol.Representation) string) ([]string, int) {
	labels := make([]string, 0, len(sel.Options))
	selected := -1
	for i, r := range sel.Options {
		labels = append(labels, label(r))
		if r.ID == sel.Selected {
			selected = i
		}
	}
	return labels, selected
}

func (m *PlayerModel) renderStatus(state player.State) string {
	var lines []string

	if state.PendingSeek != 0 {
		lines = append(lines, fmt.Sprintf("Seeking %s", util.FormatSeekDelta(state.PendingSeek)))
	}
	if state.Seeking() {
		lines = append(lines, m.loading.spinner.View()+" Buffering...")
	}
	if state.Phase == player.PhaseEnded {
		lines = append(lines, "Playback finished")
	}
	if state.Status != "" {
		lines = append(lines, styles.Error.Render(state.Status))
	}

	if len(lines) == 0 {
		return ""
	}
	return styles.CenteredText(m.width, styles.Status.Render(strings.Join(lines, "\n")))
}

func (m *PlayerModel) renderLogs() string {
	logs := m.ctrl.Logs()
	if len(logs) > logAreaHeight {
		logs = logs[len(logs)-logAreaHeight:]
	}

	var b strings.Builder
	if len(logs) == 0 {
		b.WriteString(styles.Dim.Render("No engine logs yet"))
	}
	for i, line := range logs {
		if i > 0 {
			b.WriteString("\n")
		}
		text := util.TruncateString(line.Text, m.width-8)
		if line.Level == "error" {
			text = styles.Error.Render(text)
		}
		b.WriteString(text)
	}
	return styles.ContentBox(m.width-4, b.String(), 0)
}

func (m *PlayerModel) renderFooter() string {
	actions := []remote.Action{
		remote.ActionPlayPause,
		remote.ActionRewind,
		remote.ActionFastForward,
		remote.ActionToggleSubtitles,
		remote.ActionToggleFullscreen,
		remote.ActionToggleLogs,
		remote.ActionReturn,
	}
	return components.KeyBindingsBar(m.width, components.BindingsFor(remote.ContextPlayer, actions, map[remote.Action]string{
		remote.ActionRewind:           "-" + fmt.Sprint(m.seekStep()) + "s",
		remote.ActionFastForward:      "+" + fmt.Sprint(m.seekStep()) + "s",
		remote.ActionToggleSubtitles:  "Subs",
		remote.ActionToggleFullscreen: "Fullscreen",
		remote.ActionToggleLogs:       "Logs",
		remote.ActionReturn:           "Back",
	}))
}

func (m *PlayerModel) seekStep() float64 {
	if m.cfg.UI.SeekStep > 0 {
		return m.cfg.UI.SeekStep
	}
	return player.DefaultOptions().SeekStep
}
