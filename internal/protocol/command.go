package protocol

import (
	"encoding/json"
)

// LoadRequest describes the source the engine should open
type LoadRequest struct {
	Type     ClipType
	URL      string
	Subtitle string // Optional path to an external subtitle file
	Encoding string // Optional subtitle text encoding, engine defaults to UTF-8

	DRMLicenseURL           string
	DRMKeyRequestProperties map[string]string
}

// ViewRect is the area of the screen the engine renders video into
type ViewRect struct {
	X, Y          int
	Width, Height int
}

// Command is a single message sent to the engine.  Only the fields relevant to Kind are encoded.
type Command struct {
	Kind CommandKind

	Time       float64    // CmdSeek
	StreamType StreamType // CmdChangeRepresentation
	ID         int        // CmdChangeRepresentation, CmdChangeSubtitlesRepresentation
	Level      LogLevel   // CmdSetLogLevel
	Load       *LoadRequest
	Rect       *ViewRect
}

func ClosePlayer() Command { return Command{Kind: CmdClosePlayer} }

func LoadMedia(req LoadRequest) Command { return Command{Kind: CmdLoadMedia, Load: &req} }

func Play() Command { return Command{Kind: CmdPlay} }

func Pause() Command { return Command{Kind: CmdPause} }

// Seek requests an absolute position change, in seconds
func Seek(time float64) Command { return Command{Kind: CmdSeek, Time: time} }

func ChangeRepresentation(stream StreamType, id int) Command {
	return Command{Kind: CmdChangeRepresentation, StreamType: stream, ID: id}
}

// ChangeSubtitlesRepresentation switches the subtitle track.  id 0 means no subtitles.
func ChangeSubtitlesRepresentation(id int) Command {
	return Command{Kind: CmdChangeSubtitlesRepresentation, ID: id}
}

func ChangeSubtitlesVisibility() Command { return Command{Kind: CmdChangeSubtitlesVisibility} }

func ChangeViewRect(rect ViewRect) Command { return Command{Kind: CmdChangeViewRect, Rect: &rect} }

func SetLogLevel(level LogLevel) Command { return Command{Kind: CmdSetLogLevel, Level: level} }

// Fields returns the wire representation of the command
func (c Command) Fields() map[string]any {
	fields := map[string]any{KeyMessageToPlayer: int(c.Kind)}

	switch c.Kind {
	case CmdLoadMedia:
		if c.Load == nil {
			break
		}
		fields[keyType] = int(c.Load.Type)
		fields[keyURL] = c.Load.URL
		if c.Load.Subtitle != "" {
			fields[keySubtitle] = c.Load.Subtitle
			if c.Load.Encoding != "" {
				fields[keyEncoding] = c.Load.Encoding
			}
		}
		if c.Load.DRMLicenseURL != "" {
			fields[keyDRMLicenseURL] = c.Load.DRMLicenseURL
		}
		if len(c.Load.DRMKeyRequestProperties) > 0 {
			fields[keyDRMKeyRequestProperties] = c.Load.DRMKeyRequestProperties
		}
	case CmdSeek:
		fields[keyTime] = c.Time
	case CmdChangeRepresentation:
		fields[keyType] = int(c.StreamType)
		fields[keyID] = c.ID
	case CmdChangeSubtitlesRepresentation:
		fields[keyID] = c.ID
	case CmdChangeViewRect:
		if c.Rect == nil {
			break
		}
		fields[keyXCoordinate] = c.Rect.X
		fields[keyYCoordinate] = c.Rect.Y
		fields[keyWidth] = c.Rect.Width
		fields[keyHeight] = c.Rect.Height
	case CmdSetLogLevel:
		fields[keyLogLevel] = int(c.Level)
	}

	return fields
}

// MarshalJSON encodes the command as the engine expects it
func (c Command) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.Fields())
}
