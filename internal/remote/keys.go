package remote

// KeyCode is the numeric code a TV remote reports for a button
type KeyCode int

const (
	Key0         KeyCode = 48
	Key1         KeyCode = 49
	Key2         KeyCode = 50
	Key3         KeyCode = 51
	Key4         KeyCode = 52
	Key5         KeyCode = 53
	Key6         KeyCode = 54
	Key7         KeyCode = 55
	Key8         KeyCode = 56
	Key9         KeyCode = 57
	KeyLeft      KeyCode = 37
	KeyUp        KeyCode = 38
	KeyRight     KeyCode = 39
	KeyDown      KeyCode = 40
	KeyEnter     KeyCode = 13
	KeyReturn    KeyCode = 10009
	KeyRed       KeyCode = 403
	KeyGreen     KeyCode = 404
	KeyYellow    KeyCode = 405
	KeyBlue      KeyCode = 406
	KeyPlay      KeyCode = 415
	KeyPause     KeyCode = 19
	KeyStop      KeyCode = 413
	KeyFF        KeyCode = 417
	KeyRW        KeyCode = 412
	KeyPlayPause KeyCode = 10252
)

var playerCodes = map[KeyCode]Action{
	KeyPlay:      ActionPlay,
	KeyPause:     ActionPause,
	KeyPlayPause: ActionPlayPause,
	KeyRight:     ActionMoveRight,
	KeyLeft:      ActionMoveLeft,
	KeyUp:        ActionMoveUp,
	KeyDown:      ActionMoveDown,
	KeyEnter:     ActionSelect,
	KeyStop:      ActionStop,
	KeyFF:        ActionFastForward,
	KeyRW:        ActionRewind,
	KeyRed:       ActionFocusSubtitleTrack,
	KeyGreen:     ActionFocusVideoTrack,
	KeyYellow:    ActionFocusAudioTrack,
	KeyBlue:      ActionToggleLogs,
	KeyReturn:    ActionReturn,
}

var menuCodes = map[KeyCode]Action{
	KeyEnter:  ActionSelect,
	KeyRight:  ActionMoveRight,
	KeyLeft:   ActionMoveLeft,
	KeyUp:     ActionMoveUp,
	KeyDown:   ActionMoveDown,
	KeyReturn: ActionReturn,
}

// PlayerAction returns the action a remote button triggers inside the player, or ActionNone
func PlayerAction(code KeyCode) Action {
	return playerCodes[code]
}

// MenuAction returns the action a remote button triggers in the clip menu, or ActionNone
func MenuAction(code KeyCode) Action {
	return menuCodes[code]
}
