// Package protocol defines the messages exchanged with the native playback engine.
//
// Every message is a JSON object.  Messages addressed to the engine carry the command code under the
// "messageToPlayer" key, messages coming from it carry the event code under "messageFromPlayer".  The engine also
// writes plain log lines onto the same channel, distinguished by a fixed prefix (see Classify).
package protocol

import (
	"fmt"
	"strings"
)

const (
	KeyMessageToPlayer   = "messageToPlayer"
	KeyMessageFromPlayer = "messageFromPlayer"

	keyBitrate                 = "bitrate"
	keyDuration                = "duration"
	keyEncoding                = "encoding"
	keyID                      = "id"
	keyLanguage                = "language"
	keySubtitle                = "subtitle"
	keyTime                    = "time"
	keyType                    = "type"
	keyURL                     = "url"
	keyWidth                   = "width"
	keyHeight                  = "height"
	keyDRMLicenseURL           = "drm_license_url"
	keyDRMKeyRequestProperties = "drm_key_request_properties"
	keyXCoordinate             = "x_coordinate"
	keyYCoordinate             = "y_coordinate"
	keyLogLevel                = "level"
)

// CommandKind identifies a message sent to the engine
type CommandKind int

const (
	CmdClosePlayer                   CommandKind = 0
	CmdLoadMedia                     CommandKind = 1
	CmdPlay                          CommandKind = 2
	CmdPause                         CommandKind = 3
	CmdSeek                          CommandKind = 4
	CmdChangeRepresentation          CommandKind = 5
	CmdChangeSubtitlesRepresentation CommandKind = 7
	CmdChangeSubtitlesVisibility     CommandKind = 8
	CmdChangeViewRect                CommandKind = 9
	CmdSetLogLevel                   CommandKind = 90
)

var commandNames = map[CommandKind]string{
	CmdClosePlayer:                   "close_player",
	CmdLoadMedia:                     "load_media",
	CmdPlay:                          "play",
	CmdPause:                         "pause",
	CmdSeek:                          "seek",
	CmdChangeRepresentation:          "change_representation",
	CmdChangeSubtitlesRepresentation: "change_subtitles_representation",
	CmdChangeSubtitlesVisibility:     "change_subtitles_visibility",
	CmdChangeViewRect:                "change_view_rect",
	CmdSetLogLevel:                   "set_log_level",
}

func (k CommandKind) String() string {
	if name, ok := commandNames[k]; ok {
		return name
	}
	return fmt.Sprintf("command(%d)", int(k))
}

// EventKind identifies a message received from the engine
type EventKind int

const (
	EvtTimeUpdate              EventKind = 100
	EvtSetDuration             EventKind = 101
	EvtBufferingCompleted      EventKind = 102
	EvtAudioRepresentation     EventKind = 103
	EvtVideoRepresentation     EventKind = 104
	EvtSubtitlesRepresentation EventKind = 105
	EvtRepresentationChanged   EventKind = 106
	EvtSubtitles               EventKind = 107
	EvtStreamEnded             EventKind = 108
)

var eventNames = map[EventKind]string{
	EvtTimeUpdate:              "time_update",
	EvtSetDuration:             "set_duration",
	EvtBufferingCompleted:      "buffering_completed",
	EvtAudioRepresentation:     "audio_representation",
	EvtVideoRepresentation:     "video_representation",
	EvtSubtitlesRepresentation: "subtitles_representation",
	EvtRepresentationChanged:   "representation_changed",
	EvtSubtitles:               "subtitles",
	EvtStreamEnded:             "stream_ended",
}

func (k EventKind) String() string {
	if name, ok := eventNames[k]; ok {
		return name
	}
	return fmt.Sprintf("event(%d)", int(k))
}

// Known reports whether k is part of the event vocabulary
func (k EventKind) Known() bool {
	_, ok := eventNames[k]
	return ok
}

// ClipType tells the engine how to open a source
type ClipType int

const (
	ClipTypeUnknown ClipType = 0
	// ClipTypeURL is a media container played directly from its URL
	ClipTypeURL ClipType = 1
	// ClipTypeDash is a DASH manifest with selectable representations
	ClipTypeDash ClipType = 2
)

func (t ClipType) String() string {
	switch t {
	case ClipTypeURL:
		return "url"
	case ClipTypeDash:
		return "dash"
	default:
		return "unknown"
	}
}

// ParseClipType converts the names used in catalog files into a ClipType
func ParseClipType(s string) (ClipType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "url":
		return ClipTypeURL, nil
	case "dash":
		return ClipTypeDash, nil
	default:
		return ClipTypeUnknown, fmt.Errorf("unknown clip type %q", s)
	}
}

// StreamType selects the elementary stream a representation belongs to
type StreamType int

const (
	StreamInvalid StreamType = -1
	StreamVideo   StreamType = 0
	StreamAudio   StreamType = 1
)

func (t StreamType) String() string {
	switch t {
	case StreamVideo:
		return "video"
	case StreamAudio:
		return "audio"
	default:
		return "invalid"
	}
}

// LogLevel is the verbosity the engine uses for the log lines it sends back
type LogLevel int

const (
	LogLevelNone  LogLevel = 0
	LogLevelError LogLevel = 1
	LogLevelInfo  LogLevel = 2
	LogLevelDebug LogLevel = 3
)

// ParseLogLevel converts a config value into an engine log level.  Unknown values fall back to info.
func ParseLogLevel(s string) LogLevel {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "none", "off":
		return LogLevelNone
	case "error":
		return LogLevelError
	case "debug":
		return LogLevelDebug
	default:
		return LogLevelInfo
	}
}
