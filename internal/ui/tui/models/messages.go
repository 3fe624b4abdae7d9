package models

import (
	"github.com/PizzaHomicide/nplay/internal/bridge"
	"github.com/PizzaHomicide/nplay/internal/navigation"
	"github.com/PizzaHomicide/nplay/internal/protocol"
	"github.com/PizzaHomicide/nplay/internal/remote"
	"github.com/PizzaHomicide/nplay/internal/schedule"
	tea "github.com/charmbracelet/bubbletea"
)

// HandledMsg tells the parent model that a key was consumed and should not be processed any further
type HandledMsg struct {
	Source string
}

// Handled returns a command reporting that source consumed the message
func Handled(source string) tea.Cmd {
	return func() tea.Msg {
		return HandledMsg{Source: source}
	}
}

// RemoteKeyMsg carries a button press from a TV remote, identified by its numeric key code.  Hosts that receive
// remote input deliver it to the program with tea.Program.Send.
type RemoteKeyMsg struct {
	Code remote.KeyCode
}

// PlayClipMsg is sent by the menu when the user picks a clip
type PlayClipMsg struct {
	HandOff navigation.HandOff
}

// PlayerClosedMsg is sent when the player session has ended and the menu should come back
type PlayerClosedMsg struct{}

// The messages below belong to a single player session.  Each carries the session it was produced for so that
// anything still in flight after the session closed is dropped.

type engineConnectedMsg struct {
	session int
	conn    engineConn
	engine  *bridge.Engine // nil when connecting to an engine nplay did not start
}

type engineConnectFailedMsg struct {
	session int
	err     error
}

type engineEventMsg struct {
	session int
	event   protocol.Event
}

type engineLogMsg struct {
	session int
	line    protocol.LogLine
}

// engineGoneMsg is sent when the connection to the engine ends
type engineGoneMsg struct {
	session int
}

type engineExitedMsg struct {
	session int
	status  int
}

type timerDueMsg struct {
	session int
	due     schedule.Due
}
