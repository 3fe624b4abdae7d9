package protocol

import (
	"encoding/json"
	"errors"
	"fmt"
)

var (
	// ErrNoDiscriminant is returned when an object does not carry a usable messageFromPlayer field
	ErrNoDiscriminant = errors.New("message has no messageFromPlayer field")
	// ErrUnknownEvent is returned for event codes outside the vocabulary
	ErrUnknownEvent = errors.New("unknown event kind")
)

// Event is a single message received from the engine.  Which fields are meaningful depends on Kind.
type Event struct {
	Kind EventKind

	Time     float64 // EvtTimeUpdate, EvtSetDuration
	Duration float64 // EvtSubtitles, in seconds
	Subtitle string  // EvtSubtitles

	ID         int        // representation events, EvtRepresentationChanged
	StreamType StreamType // EvtRepresentationChanged
	Bitrate    int
	Language   string
	Width      int
	Height     int
}

// Representation is a selectable audio or video variant reported by the engine.  ID is the engine's own index for
// the variant and is what selection commands must carry.
type Representation struct {
	ID       int
	Bitrate  int
	Language string // audio only
	Width    int    // video only
	Height   int    // video only
}

// Representation extracts the representation carried by an audio or video representation event
func (e Event) Representation() Representation {
	return Representation{
		ID:       e.ID,
		Bitrate:  e.Bitrate,
		Language: e.Language,
		Width:    e.Width,
		Height:   e.Height,
	}
}

type wireEvent struct {
	Kind     *int    `json:"messageFromPlayer"`
	Time     float64 `json:"time"`
	Duration float64 `json:"duration"`
	Subtitle string  `json:"subtitle"`
	ID       int     `json:"id"`
	Type     *int    `json:"type"`
	Bitrate  int     `json:"bitrate"`
	Language string  `json:"language"`
	Width    int     `json:"width"`
	Height   int     `json:"height"`
}

// DecodeEvent parses a JSON object into an Event
func DecodeEvent(data []byte) (Event, error) {
	var w wireEvent
	if err := json.Unmarshal(data, &w); err != nil {
		return Event{}, fmt.Errorf("decode event: %w", err)
	}
	if w.Kind == nil || *w.Kind == 0 {
		return Event{}, ErrNoDiscriminant
	}

	kind := EventKind(*w.Kind)
	if !kind.Known() {
		return Event{}, fmt.Errorf("%w: %d", ErrUnknownEvent, *w.Kind)
	}

	streamType := StreamInvalid
	if w.Type != nil {
		switch StreamType(*w.Type) {
		case StreamVideo, StreamAudio:
			streamType = StreamType(*w.Type)
		}
	}

	return Event{
		Kind:       kind,
		Time:       w.Time,
		Duration:   w.Duration,
		Subtitle:   w.Subtitle,
		ID:         w.ID,
		StreamType: streamType,
		Bitrate:    w.Bitrate,
		Language:   w.Language,
		Width:      w.Width,
		Height:     w.Height,
	}, nil
}

// Fields returns the wire representation of the event.  The engine is the only real producer of events; this is
// used by tools and tests that stand in for it.
func (e Event) Fields() map[string]any {
	fields := map[string]any{KeyMessageFromPlayer: int(e.Kind)}

	switch e.Kind {
	case EvtTimeUpdate, EvtSetDuration:
		fields[keyTime] = e.Time
	case EvtAudioRepresentation:
		fields[keyID] = e.ID
		fields[keyBitrate] = e.Bitrate
		fields[keyLanguage] = e.Language
	case EvtVideoRepresentation:
		fields[keyID] = e.ID
		fields[keyBitrate] = e.Bitrate
		fields[keyWidth] = e.Width
		fields[keyHeight] = e.Height
	case EvtSubtitlesRepresentation:
		fields[keyID] = e.ID
		fields[keyLanguage] = e.Language
	case EvtRepresentationChanged:
		fields[keyType] = int(e.StreamType)
		fields[keyID] = e.ID
	case EvtSubtitles:
		fields[keySubtitle] = e.Subtitle
		fields[keyDuration] = e.Duration
	}

	return fields
}

// MarshalJSON encodes the event as the engine would send it
func (e Event) MarshalJSON() ([]byte, error) {
	return json.Marshal(e.Fields())
}
