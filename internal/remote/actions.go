// Package remote maps remote-control key codes and terminal keys to the actions the menu and player understand.
package remote

// Action represents a specific action that can be triggered by a key
type Action string

const (
	ActionNone Action = ""

	// Global actions
	ActionQuit       Action = "quit"
	ActionToggleHelp Action = "toggle_help"

	// Navigation actions.  Each view decides what moving means: the menu changes clip with left/right, the player
	// moves focus between its controls.
	ActionMoveLeft  Action = "move_left"
	ActionMoveRight Action = "move_right"
	ActionMoveUp    Action = "move_up"
	ActionMoveDown  Action = "move_down"
	ActionSelect    Action = "select"
	ActionReturn    Action = "return"

	// Transport actions
	ActionPlay        Action = "play"
	ActionPause       Action = "pause"
	ActionPlayPause   Action = "play_pause"
	ActionStop        Action = "stop"
	ActionFastForward Action = "fast_forward"
	ActionRewind      Action = "rewind"

	// Player shortcuts
	ActionFocusSubtitleTrack Action = "focus_subtitle_track"
	ActionFocusVideoTrack    Action = "focus_video_track"
	ActionFocusAudioTrack    Action = "focus_audio_track"
	ActionToggleLogs         Action = "toggle_logs"
	ActionToggleSubtitles    Action = "toggle_subtitles"
	ActionToggleFullscreen   Action = "toggle_fullscreen"

	// Search mode actions
	ActionEnableSearch   Action = "enable_search"
	ActionSearchComplete Action = "search_complete"
	ActionSearchCancel   Action = "search_cancel"
)
