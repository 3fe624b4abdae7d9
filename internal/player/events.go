package player

import (
	"time"

	"github.com/PizzaHomicide/nplay/internal/log"
	"github.com/PizzaHomicide/nplay/internal/protocol"
)

func (c *Controller) onTimeUpdate(e protocol.Event) {
	c.state.Position = e.Time
	// Duration can be reported late or too short
	if c.state.Duration < c.state.Position {
		c.state.Duration = c.state.Position
	}
}

func (c *Controller) onSetDuration(e protocol.Event) {
	c.state.Duration = e.Time
}

func (c *Controller) onBufferingCompleted(protocol.Event) {
	c.state.Enabled = true
	c.state.Phase = PhaseReady
}

func (c *Controller) onAudioRepresentation(e protocol.Event) {
	c.state.Audio.add(e.Representation())
}

func (c *Controller) onVideoRepresentation(e protocol.Event) {
	c.state.Video.add(e.Representation())
}

func (c *Controller) onSubtitlesRepresentation(e protocol.Event) {
	c.state.Subtitles.Available = true
	c.state.Subtitles.upsert(SubtitleOption{ID: e.ID, Language: e.Language})
}

// onRepresentationChanged only moves the cursor, the engine already switched so nothing is sent back
func (c *Controller) onRepresentationChanged(e protocol.Event) {
	switch e.StreamType {
	case protocol.StreamAudio:
		c.state.Audio.confirm(e.ID)
	case protocol.StreamVideo:
		c.state.Video.confirm(e.ID)
	default:
		log.Debug("Representation change for unknown stream type", "id", e.ID)
	}
}

func (c *Controller) onSubtitles(e protocol.Event) {
	if e.Subtitle == "" {
		return
	}
	c.state.Overlay = e.Subtitle
	c.overlayTask.Reset(seconds(e.Duration))
	if !c.state.Playing {
		c.overlayTask.Hold()
	}
}

func (c *Controller) onStreamEnded(protocol.Event) {
	c.state.Enabled = false
	c.state.Playing = false
	c.state.Phase = PhaseEnded
	c.stopTimers()
	log.Info("Stream ended", "title", c.clip.Title)
}

func seconds(s float64) time.Duration {
	return time.Duration(s * float64(time.Second))
}
