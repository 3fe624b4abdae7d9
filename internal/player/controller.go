// Package player implements the playback session state machine that sits between user input and the engine.
//
// A Controller is owned by a single goroutine.  Engine events, user actions and expired timers (delivered as
// schedule.Due notices) must all be handed to it from that goroutine, so it does no locking of its own.
package player

import (
	"fmt"
	"time"

	"github.com/PizzaHomicide/nplay/internal/catalog"
	"github.com/PizzaHomicide/nplay/internal/log"
	"github.com/PizzaHomicide/nplay/internal/navigation"
	"github.com/PizzaHomicide/nplay/internal/protocol"
	"github.com/PizzaHomicide/nplay/internal/remote"
	"github.com/PizzaHomicide/nplay/internal/schedule"
)

// Sender delivers commands to the engine
type Sender interface {
	Send(cmd protocol.Command) error
}

// Options tunes a controller
type Options struct {
	SeekStep       float64       // Seconds added or removed by one forward/rewind press
	SeekWindow     time.Duration // Quiet period after the last relative seek before it is sent
	NativeLogLevel protocol.LogLevel
	WindowRect     protocol.ViewRect // Video area outside fullscreen
	ScreenRect     protocol.ViewRect // Video area in fullscreen
	LogLimit       int               // Engine log lines kept for the log area
}

// DefaultOptions returns the options the player uses when nothing is configured
func DefaultOptions() Options {
	return Options{
		SeekStep:       5,
		SeekWindow:     2000 * time.Millisecond,
		NativeLogLevel: protocol.LogLevelInfo,
		WindowRect:     protocol.ViewRect{Width: 1280, Height: 720},
		ScreenRect:     protocol.ViewRect{Width: 1920, Height: 1080},
		LogLimit:       200,
	}
}

const (
	taskSeek    = "seek"
	taskOverlay = "overlay"
)

// Controller drives one playback session
type Controller struct {
	clip    catalog.Clip
	handOff navigation.HandOff
	sender  Sender
	opts    Options

	state      State
	logs       []protocol.LogLine
	dispatcher *protocol.Dispatcher

	seekTask    *schedule.Task
	overlayTask *schedule.Task
}

// NewController creates a controller for clip.  Timers are created on sched, whose due notices the owner must run.
func NewController(clip catalog.Clip, handOff navigation.HandOff, sender Sender, sched *schedule.Scheduler, opts Options) *Controller {
	c := &Controller{
		clip:    clip,
		handOff: handOff,
		sender:  sender,
		opts:    opts,
		state: State{
			Phase:            PhaseLoading,
			Focus:            ControlPlay,
			Controls:         dashControls,
			SubtitlesVisible: true,
			Subtitles:        newSubtitleSelection(),
		},
	}
	if clip.Type == protocol.ClipTypeURL {
		c.state.Controls = urlControls
	}

	c.seekTask = sched.NewTask(taskSeek, c.flushSeek)
	c.overlayTask = sched.NewTask(taskOverlay, c.hideOverlay)

	c.dispatcher = protocol.NewDispatcher().
		On(protocol.EvtTimeUpdate, c.onTimeUpdate).
		On(protocol.EvtSetDuration, c.onSetDuration).
		On(protocol.EvtBufferingCompleted, c.onBufferingCompleted).
		On(protocol.EvtAudioRepresentation, c.onAudioRepresentation).
		On(protocol.EvtVideoRepresentation, c.onVideoRepresentation).
		On(protocol.EvtSubtitlesRepresentation, c.onSubtitlesRepresentation).
		On(protocol.EvtRepresentationChanged, c.onRepresentationChanged).
		On(protocol.EvtSubtitles, c.onSubtitles).
		On(protocol.EvtStreamEnded, c.onStreamEnded)

	return c
}

// Clip returns the clip being played
func (c *Controller) Clip() catalog.Clip {
	return c.clip
}

// State returns a snapshot of the session state
func (c *Controller) State() State {
	return c.state.clone()
}

// Logs returns the engine log lines received so far, oldest first
func (c *Controller) Logs() []protocol.LogLine {
	return append([]protocol.LogLine(nil), c.logs...)
}

// Closed reports whether the session has been closed and the view should go back to the menu
func (c *Controller) Closed() bool {
	return c.state.Phase == PhaseClosed
}

// Start asks the engine to open the clip.  The UI stays disabled until the engine reports that buffering completed.
func (c *Controller) Start() {
	c.state.Enabled = false
	c.state.Phase = PhaseLoading

	c.send(protocol.SetLogLevel(c.opts.NativeLogLevel))
	c.send(protocol.ChangeViewRect(c.opts.WindowRect))
	c.send(protocol.LoadMedia(c.clip.LoadRequest(c.handOff.Subtitle)))
	log.Info("Loading clip", "title", c.clip.Title, "type", c.clip.Type.String(), "subtitle", c.handOff.Subtitle)
}

// HandleEvent applies an event received from the engine
func (c *Controller) HandleEvent(e protocol.Event) {
	if c.Closed() {
		return
	}
	if !c.dispatcher.Dispatch(e) {
		log.Debug("Ignoring unhandled engine event", "kind", e.Kind.String())
	}
}

// HandleLog records a log line received from the engine
func (c *Controller) HandleLog(line protocol.LogLine) {
	log.Native(line.Level, line.Text)
	c.logs = append(c.logs, line)
	if limit := c.opts.LogLimit; limit > 0 && len(c.logs) > limit {
		c.logs = c.logs[len(c.logs)-limit:]
	}
}

// ProcessExited records that the engine went away.  There is no restart, the status stays on screen.
func (c *Controller) ProcessExited(status int) {
	c.state.Enabled = false
	c.state.Playing = false
	c.state.Status = fmt.Sprintf("Crashed/exited with status: %d", status)
	c.stopTimers()
	log.Error("Playback engine exited", "status", status)
}

// Close ends the session and tells the engine to tear down
func (c *Controller) Close() {
	if c.Closed() {
		return
	}
	c.state.Enabled = false
	c.stopTimers()
	c.send(protocol.ClosePlayer())
	c.state.Phase = PhaseClosed
	log.Info("Player closed", "title", c.clip.Title)
}

// Handle applies a user action
func (c *Controller) Handle(action remote.Action) {
	if c.Closed() {
		return
	}

	switch action {
	case remote.ActionPlay:
		c.play()
	case remote.ActionPause:
		c.pause()
	case remote.ActionPlayPause:
		c.playPause()
	case remote.ActionFastForward:
		c.seekBy(c.opts.SeekStep)
	case remote.ActionRewind:
		c.seekBy(-c.opts.SeekStep)
	case remote.ActionMoveRight:
		c.moveFocus(1)
	case remote.ActionMoveLeft:
		c.moveFocus(-1)
	case remote.ActionMoveUp:
		c.moveSelection(-1)
	case remote.ActionMoveDown:
		c.moveSelection(1)
	case remote.ActionSelect:
		c.activate(c.state.Focus)
	case remote.ActionStop:
		c.Close()
	case remote.ActionReturn:
		if c.state.Fullscreen {
			c.toggleFullscreen()
		} else {
			c.Close()
		}
	case remote.ActionFocusSubtitleTrack:
		c.focus(ControlSubtitleTrack)
	case remote.ActionFocusVideoTrack:
		c.focus(ControlVideoTrack)
	case remote.ActionFocusAudioTrack:
		c.focus(ControlAudioTrack)
	case remote.ActionToggleLogs:
		c.state.LogsVisible = !c.state.LogsVisible
	case remote.ActionToggleSubtitles:
		c.toggleSubtitles()
	case remote.ActionToggleFullscreen:
		c.toggleFullscreen()
	default:
		log.Trace("Ignoring action in player", "action", action)
	}
}

// SeekTo jumps straight to an absolute position, dropping any relative seek still being collected
func (c *Controller) SeekTo(target float64) {
	if !c.state.Enabled {
		return
	}
	c.seekTask.Stop()
	c.state.PendingSeek = 0
	c.sendSeek(target)
}

// SeekToPercent seeks to a fraction of the clip duration, as clicking on the progress bar does
func (c *Controller) SeekToPercent(fraction float64) {
	fraction = min(max(fraction, 0), 1)
	c.SeekTo(c.state.Duration * fraction)
}

func (c *Controller) activate(control Control) {
	switch control {
	case ControlSubtitleTrack:
		if c.state.Subtitles.Available {
			c.send(protocol.ChangeSubtitlesRepresentation(c.state.Subtitles.Selected))
		}
	case ControlSubtitles:
		c.toggleSubtitles()
	case ControlFullscreen:
		c.toggleFullscreen()
	case ControlRewind:
		c.seekBy(-c.opts.SeekStep)
	case ControlPlay:
		c.playPause()
	case ControlForward:
		c.seekBy(c.opts.SeekStep)
	case ControlExit:
		c.Close()
	case ControlVideoTrack:
		c.changeRepresentation(protocol.StreamVideo, c.state.Video)
	case ControlAudioTrack:
		c.changeRepresentation(protocol.StreamAudio, c.state.Audio)
	}
}

// changeRepresentation asks for the representation under the cursor.  The selection itself only moves when the
// engine confirms with a RepresentationChanged event.
func (c *Controller) changeRepresentation(stream protocol.StreamType, sel Selection) {
	if sel.position() < 0 {
		log.Debug("No reported representation under the cursor", "stream", stream, "selected", sel.Selected)
		return
	}
	c.send(protocol.ChangeRepresentation(stream, sel.Selected))
}

func (c *Controller) play() {
	if !c.state.Enabled {
		return
	}
	c.state.Playing = true
	c.overlayTask.Resume()
	c.send(protocol.Play())
}

func (c *Controller) pause() {
	if !c.state.Enabled {
		return
	}
	c.state.Playing = false
	c.overlayTask.Hold()
	c.send(protocol.Pause())
}

func (c *Controller) playPause() {
	if c.state.Playing {
		c.pause()
	} else {
		c.play()
	}
}

// seekBy adds delta to the pending relative seek and restarts the coalescing window
func (c *Controller) seekBy(delta float64) {
	if !c.state.Enabled {
		return
	}
	c.state.PendingSeek += delta
	c.seekTask.Reset(c.opts.SeekWindow)
}

func (c *Controller) flushSeek() {
	delta := c.state.PendingSeek
	c.state.PendingSeek = 0
	if !c.state.Enabled {
		log.Debug("Dropping relative seek, player is disabled", "delta", delta)
		return
	}
	c.sendSeek(c.state.Position + delta)
}

// sendSeek disables the UI until the engine is ready again and hides any subtitle that was on screen
func (c *Controller) sendSeek(target float64) {
	if target < 0 {
		target = 0
	}
	if c.state.Duration > 0 && target > c.state.Duration {
		target = c.state.Duration
	}
	c.state.Enabled = false
	c.overlayTask.Execute()
	c.send(protocol.Seek(target))
	log.Debug("Seeking", "target", target)
}

func (c *Controller) moveFocus(step int) {
	c.state.Focus = Control(modulo(int(c.state.Focus)+step, c.state.Controls))
}

func (c *Controller) focus(control Control) {
	if int(control) >= c.state.Controls {
		return
	}
	c.state.Focus = control
}

func (c *Controller) moveSelection(step int) {
	switch c.state.Focus {
	case ControlSubtitleTrack:
		if c.state.Subtitles.Available {
			c.state.Subtitles.move(step)
		}
	case ControlVideoTrack:
		c.state.Video.move(step)
	case ControlAudioTrack:
		c.state.Audio.move(step)
	}
}

func (c *Controller) toggleSubtitles() {
	c.state.SubtitlesVisible = !c.state.SubtitlesVisible
	c.send(protocol.ChangeSubtitlesVisibility())
}

func (c *Controller) toggleFullscreen() {
	c.state.Fullscreen = !c.state.Fullscreen
	rect := c.opts.WindowRect
	if c.state.Fullscreen {
		rect = c.opts.ScreenRect
	}
	c.send(protocol.ChangeViewRect(rect))
}

func (c *Controller) hideOverlay() {
	c.state.Overlay = ""
}

func (c *Controller) stopTimers() {
	c.seekTask.Stop()
	c.overlayTask.Stop()
	c.state.PendingSeek = 0
}

func (c *Controller) send(cmd protocol.Command) {
	if err := c.sender.Send(cmd); err != nil {
		log.Warn("Failed to send command to engine", "command", cmd.Kind.String(), "error", err)
	}
}
