package player

import (
	"fmt"
	"slices"

	"github.com/PizzaHomicide/nplay/internal/protocol"
	"github.com/dustin/go-humanize"
)

// Phase is the coarse lifecycle of a playback session
type Phase int

const (
	PhaseLoading Phase = iota
	PhaseReady
	PhaseEnded
	PhaseClosed
)

func (p Phase) String() string {
	switch p {
	case PhaseLoading:
		return "loading"
	case PhaseReady:
		return "ready"
	case PhaseEnded:
		return "ended"
	case PhaseClosed:
		return "closed"
	default:
		return fmt.Sprintf("phase(%d)", int(p))
	}
}

// Control is a position in the ring of on-screen controls that left/right cycles through
type Control int

const (
	ControlSubtitleTrack Control = iota
	ControlSubtitles
	ControlFullscreen
	ControlRewind
	ControlPlay
	ControlForward
	ControlExit
	ControlVideoTrack
	ControlAudioTrack
)

// Directly played clips have no representations to choose from, so their ring stops before the video selector
const (
	urlControls  = 7
	dashControls = 9
)

var controlNames = map[Control]string{
	ControlSubtitleTrack: "Subtitle track",
	ControlSubtitles:     "Subtitles",
	ControlFullscreen:    "Fullscreen",
	ControlRewind:        "Rewind",
	ControlPlay:          "Play",
	ControlForward:       "Forward",
	ControlExit:          "Exit",
	ControlVideoTrack:    "Video",
	ControlAudioTrack:    "Audio",
}

func (c Control) String() string {
	if name, ok := controlNames[c]; ok {
		return name
	}
	return fmt.Sprintf("control(%d)", int(c))
}

// IsSelector reports whether the control is a list the user picks an option from
func (c Control) IsSelector() bool {
	return c == ControlSubtitleTrack || c == ControlVideoTrack || c == ControlAudioTrack
}

// Selection is the list of audio or video representations reported by the engine and the one currently picked.
// Selected holds the engine's id for the representation, never a position in Options.  Until the engine confirms a
// representation the first one it reported is assumed to be playing.
type Selection struct {
	Options  []protocol.Representation
	Selected int

	confirmed bool
}

func (s Selection) position() int {
	return slices.IndexFunc(s.Options, func(r protocol.Representation) bool { return r.ID == s.Selected })
}

func (s *Selection) add(r protocol.Representation) {
	s.Options = append(s.Options, r)
	if !s.confirmed && len(s.Options) == 1 {
		s.Selected = r.ID
	}
}

func (s *Selection) confirm(id int) {
	s.Selected = id
	s.confirmed = true
}

func (s *Selection) move(step int) {
	if len(s.Options) == 0 {
		return
	}
	pos := s.position()
	switch {
	case pos >= 0:
		pos = modulo(pos+step, len(s.Options))
	case step > 0:
		pos = 0
	default:
		pos = len(s.Options) - 1
	}
	s.Selected = s.Options[pos].ID
}

func (s Selection) clone() Selection {
	s.Options = slices.Clone(s.Options)
	return s
}

// SubtitleOption is a subtitle track reported by the engine.  ID 0 is reserved for "no subtitles".
type SubtitleOption struct {
	ID       int
	Language string
}

// Label is the text shown for the option in the selector
func (o SubtitleOption) Label() string {
	return fmt.Sprintf("%d. %s", o.ID, o.Language)
}

// SubtitleSelection is the subtitle track selector.  It stays unavailable until the engine reports a track.
type SubtitleSelection struct {
	Available bool
	Options   []SubtitleOption
	Selected  int
}

func newSubtitleSelection() SubtitleSelection {
	return SubtitleSelection{Options: []SubtitleOption{{ID: 0, Language: "none"}}}
}

func (s *SubtitleSelection) upsert(opt SubtitleOption) {
	if i := slices.IndexFunc(s.Options, func(o SubtitleOption) bool { return o.ID == opt.ID }); i >= 0 {
		s.Options[i] = opt
		return
	}
	s.Options = append(s.Options, opt)
}

func (s *SubtitleSelection) move(step int) {
	if len(s.Options) == 0 {
		return
	}
	pos := slices.IndexFunc(s.Options, func(o SubtitleOption) bool { return o.ID == s.Selected })
	if pos < 0 {
		pos = 0
	} else {
		pos = modulo(pos+step, len(s.Options))
	}
	s.Selected = s.Options[pos].ID
}

func (s SubtitleSelection) clone() SubtitleSelection {
	s.Options = slices.Clone(s.Options)
	return s
}

// State is everything the player view shows about a session
type State struct {
	Phase   Phase
	Enabled bool // Transport commands are only sent while enabled
	Playing bool

	Position float64 // seconds
	Duration float64 // seconds

	Audio     Selection
	Video     Selection
	Subtitles SubtitleSelection

	Focus    Control
	Controls int // Number of controls in the focus ring

	PendingSeek      float64 // Accumulated relative seek waiting for the coalescing window to close
	SubtitlesVisible bool
	Overlay          string // Current subtitle text, empty when nothing is shown
	Fullscreen       bool
	LogsVisible      bool
	Status           string // Set when the engine process goes away
}

// OverlayText returns the subtitle text that should be on screen right now
func (s State) OverlayText() string {
	if !s.SubtitlesVisible {
		return ""
	}
	return s.Overlay
}

// Progress is the played fraction of the clip, 0 when the duration is not known yet
func (s State) Progress() float64 {
	if s.Duration <= 0 {
		return 0
	}
	p := s.Position / s.Duration
	if p > 1 {
		return 1
	}
	return p
}

// Seeking reports whether a seek has been sent and the engine has not yet signalled that it is ready again
func (s State) Seeking() bool {
	return s.Phase == PhaseReady && !s.Enabled
}

func (s State) clone() State {
	s.Audio = s.Audio.clone()
	s.Video = s.Video.clone()
	s.Subtitles = s.Subtitles.clone()
	return s
}

// AudioLabel describes an audio representation, for example "128 kbps eng"
func AudioLabel(r protocol.Representation) string {
	label := humanize.SIWithDigits(float64(r.Bitrate), 0, "bps")
	if r.Language != "" {
		label += " " + r.Language
	}
	return label
}

// VideoLabel describes a video representation, for example "2.5 Mbps 1280x720"
func VideoLabel(r protocol.Representation) string {
	label := humanize.SIWithDigits(float64(r.Bitrate), 1, "bps")
	if r.Width > 0 && r.Height > 0 {
		label += fmt.Sprintf(" %dx%d", r.Width, r.Height)
	}
	return label
}

func modulo(dividend, divisor int) int {
	return ((dividend % divisor) + divisor) % divisor
}
