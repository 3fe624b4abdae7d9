package player

import (
	"errors"
	"testing"
	"time"

	"github.com/PizzaHomicide/nplay/internal/catalog"
	"github.com/PizzaHomicide/nplay/internal/navigation"
	"github.com/PizzaHomicide/nplay/internal/protocol"
	"github.com/PizzaHomicide/nplay/internal/remote"
	"github.com/PizzaHomicide/nplay/internal/schedule"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSender struct {
	sent []protocol.Command
	err  error
}

func (f *fakeSender) Send(cmd protocol.Command) error {
	f.sent = append(f.sent, cmd)
	return f.err
}

func (f *fakeSender) kinds() []protocol.CommandKind {
	kinds := make([]protocol.CommandKind, 0, len(f.sent))
	for _, cmd := range f.sent {
		kinds = append(kinds, cmd.Kind)
	}
	return kinds
}

func (f *fakeSender) reset() {
	f.sent = nil
}

type harness struct {
	t       *testing.T
	advance func(time.Duration)
	sched   *schedule.Scheduler
	sender  *fakeSender
	ctrl    *Controller
}

func dashClip() catalog.Clip {
	return catalog.Default().At(0)
}

func urlClip() catalog.Clip {
	return catalog.Default().At(2)
}

func newHarness(t *testing.T, clip catalog.Clip) *harness {
	clock := clockwork.NewFakeClock()
	sched := schedule.New(clock, 8)
	sender := &fakeSender{}
	return &harness{
		t:       t,
		advance: clock.Advance,
		sched:   sched,
		sender:  sender,
		ctrl:    NewController(clip, navigation.HandOff{}, sender, sched, DefaultOptions()),
	}
}

func (h *harness) event(e protocol.Event) {
	h.ctrl.HandleEvent(e)
}

// ready puts the controller in the state it has once the engine has loaded the clip
func (h *harness) ready() {
	h.ctrl.Start()
	h.event(protocol.Event{Kind: protocol.EvtBufferingCompleted})
	h.sender.reset()
}

func (h *harness) runDue() {
	h.t.Helper()
	select {
	case d := <-h.sched.Due():
		require.True(h.t, d.Run(), "stale due notice for %s", d.Task())
	case <-time.After(time.Second):
		h.t.Fatal("timed out waiting for a due task")
	}
}

func (h *harness) assertNoDue() {
	h.t.Helper()
	select {
	case d := <-h.sched.Due():
		assert.False(h.t, d.Run(), "unexpected live due notice for %s", d.Task())
	case <-time.After(50 * time.Millisecond):
	}
}

func TestStart(t *testing.T) {
	clock := clockwork.NewFakeClock()
	sender := &fakeSender{}
	ctrl := NewController(urlClip(), navigation.HandOff{Clip: 2, Subtitle: 1}, sender, schedule.New(clock, 1), DefaultOptions())

	ctrl.Start()

	require.Equal(t, []protocol.CommandKind{protocol.CmdSetLogLevel, protocol.CmdChangeViewRect, protocol.CmdLoadMedia}, sender.kinds())
	assert.Equal(t, protocol.LogLevelInfo, sender.sent[0].Level)
	assert.Equal(t, 1280, sender.sent[1].Rect.Width)

	load := sender.sent[2].Load
	require.NotNil(t, load)
	assert.Equal(t, protocol.ClipTypeURL, load.Type)
	assert.Equal(t, "./subs/sample_cyrilic.srt", load.Subtitle)
	assert.Equal(t, "windows-1251", load.Encoding)

	state := ctrl.State()
	assert.Equal(t, PhaseLoading, state.Phase)
	assert.False(t, state.Enabled)
	assert.True(t, state.SubtitlesVisible)
	assert.Equal(t, ControlPlay, state.Focus)
	assert.Equal(t, urlControls, state.Controls)
}

func TestRelativeSeeksAreCoalesced(t *testing.T) {
	h := newHarness(t, dashClip())
	h.ready()
	h.event(protocol.Event{Kind: protocol.EvtSetDuration, Time: 120})
	h.event(protocol.Event{Kind: protocol.EvtTimeUpdate, Time: 10})

	h.ctrl.Handle(remote.ActionFastForward)
	h.ctrl.Handle(remote.ActionFastForward)
	h.ctrl.Handle(remote.ActionFastForward)
	h.ctrl.Handle(remote.ActionRewind)
	assert.Equal(t, 10.0, h.ctrl.State().PendingSeek)
	assert.Empty(t, h.sender.sent)

	h.advance(1999 * time.Millisecond)
	h.assertNoDue()
	assert.Empty(t, h.sender.sent)

	h.advance(time.Millisecond)
	h.runDue()

	require.Len(t, h.sender.sent, 1)
	assert.Equal(t, protocol.CmdSeek, h.sender.sent[0].Kind)
	assert.Equal(t, 20.0, h.sender.sent[0].Time)

	state := h.ctrl.State()
	assert.False(t, state.Enabled)
	assert.True(t, state.Seeking())
	assert.Zero(t, state.PendingSeek)
}

func TestSeekWindowRestartsOnEachPress(t *testing.T) {
	h := newHarness(t, dashClip())
	h.ready()
	h.event(protocol.Event{Kind: protocol.EvtTimeUpdate, Time: 30})

	h.ctrl.Handle(remote.ActionRewind)
	h.advance(1500 * time.Millisecond)
	h.assertNoDue()
	h.ctrl.Handle(remote.ActionRewind)
	h.advance(1500 * time.Millisecond)
	h.assertNoDue()
	assert.Empty(t, h.sender.sent)

	h.advance(500 * time.Millisecond)
	h.runDue()
	require.Len(t, h.sender.sent, 1)
	assert.Equal(t, 20.0, h.sender.sent[0].Time)
}

func TestSeekIsClamped(t *testing.T) {
	tests := []struct {
		name     string
		position float64
		duration float64
		seek     func(c *Controller)
		want     float64
	}{
		{"below zero", 3, 100, func(c *Controller) { c.Handle(remote.ActionRewind) }, 0},
		{"past the end", 98, 100, func(c *Controller) { c.Handle(remote.ActionFastForward) }, 100},
		{"unknown duration", 0, 0, func(c *Controller) { c.Handle(remote.ActionFastForward) }, 5},
		{"absolute", 10, 100, func(c *Controller) { c.SeekTo(42.5) }, 42.5},
		{"percent", 10, 200, func(c *Controller) { c.SeekToPercent(0.25) }, 50},
		{"percent above one", 10, 200, func(c *Controller) { c.SeekToPercent(1.5) }, 200},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t, dashClip())
			h.ready()
			h.event(protocol.Event{Kind: protocol.EvtSetDuration, Time: tt.duration})
			h.event(protocol.Event{Kind: protocol.EvtTimeUpdate, Time: tt.position})

			tt.seek(h.ctrl)
			if len(h.sender.sent) == 0 {
				h.advance(2 * time.Second)
				h.runDue()
			}

			require.Len(t, h.sender.sent, 1)
			assert.Equal(t, protocol.CmdSeek, h.sender.sent[0].Kind)
			assert.Equal(t, tt.want, h.sender.sent[0].Time)
		})
	}
}

func TestAbsoluteSeekCancelsPendingWindow(t *testing.T) {
	h := newHarness(t, dashClip())
	h.ready()
	h.event(protocol.Event{Kind: protocol.EvtSetDuration, Time: 100})

	h.ctrl.Handle(remote.ActionFastForward)
	h.ctrl.SeekTo(60)
	require.Len(t, h.sender.sent, 1)
	assert.Equal(t, 60.0, h.sender.sent[0].Time)

	h.advance(3 * time.Second)
	h.assertNoDue()
	assert.Len(t, h.sender.sent, 1)
}

func TestSubtitleVisibilityToggle(t *testing.T) {
	h := newHarness(t, dashClip())
	h.ready()
	h.ctrl.Handle(remote.ActionFocusSubtitleTrack)

	before := h.ctrl.State().SubtitlesVisible
	h.ctrl.Handle(remote.ActionToggleSubtitles)
	assert.Equal(t, !before, h.ctrl.State().SubtitlesVisible)
	h.ctrl.Handle(remote.ActionToggleSubtitles)

	assert.Equal(t, before, h.ctrl.State().SubtitlesVisible)
	assert.Equal(t, []protocol.CommandKind{
		protocol.CmdChangeSubtitlesVisibility,
		protocol.CmdChangeSubtitlesVisibility,
	}, h.sender.kinds())
}

func TestBufferingCompletedAlwaysEnables(t *testing.T) {
	prepare := map[string]func(h *harness){
		"loading": func(h *harness) { h.ctrl.Start() },
		"seeking": func(h *harness) { h.ready(); h.ctrl.SeekTo(1) },
		"ended":   func(h *harness) { h.ready(); h.event(protocol.Event{Kind: protocol.EvtStreamEnded}) },
		"ready":   func(h *harness) { h.ready() },
	}
	for name, setup := range prepare {
		t.Run(name, func(t *testing.T) {
			h := newHarness(t, dashClip())
			setup(h)
			h.event(protocol.Event{Kind: protocol.EvtBufferingCompleted})
			state := h.ctrl.State()
			assert.True(t, state.Enabled)
			assert.Equal(t, PhaseReady, state.Phase)
		})
	}
}

func TestRepresentationChangedMovesCursorSilently(t *testing.T) {
	h := newHarness(t, dashClip())
	h.ready()
	for id := 0; id < 3; id++ {
		h.event(protocol.Event{Kind: protocol.EvtVideoRepresentation, ID: id, Bitrate: 1000000 * (id + 1), Width: 640 * (id + 1), Height: 360 * (id + 1)})
	}

	h.event(protocol.Event{Kind: protocol.EvtRepresentationChanged, StreamType: protocol.StreamVideo, ID: 2})

	assert.Equal(t, 2, h.ctrl.State().Video.Selected)
	assert.Zero(t, h.ctrl.State().Audio.Selected)
	assert.Empty(t, h.sender.sent)
}

func TestStreamEndedBlocksTransport(t *testing.T) {
	h := newHarness(t, dashClip())
	h.ready()

	h.event(protocol.Event{Kind: protocol.EvtStreamEnded})
	h.ctrl.Handle(remote.ActionPlay)
	h.ctrl.Handle(remote.ActionPlayPause)
	h.ctrl.Handle(remote.ActionFastForward)
	h.ctrl.SeekTo(10)

	assert.Empty(t, h.sender.sent)
	state := h.ctrl.State()
	assert.False(t, state.Enabled)
	assert.Equal(t, PhaseEnded, state.Phase)
}

func TestStreamEndedDropsPendingSeek(t *testing.T) {
	h := newHarness(t, dashClip())
	h.ready()

	h.ctrl.Handle(remote.ActionFastForward)
	h.event(protocol.Event{Kind: protocol.EvtStreamEnded})
	h.advance(3 * time.Second)
	h.assertNoDue()
	assert.Empty(t, h.sender.sent)
}

func TestAudioRepresentationsKeepArrivalOrder(t *testing.T) {
	h := newHarness(t, dashClip())
	h.ready()
	for _, id := range []int{0, 1, 2} {
		h.event(protocol.Event{Kind: protocol.EvtAudioRepresentation, ID: id, Bitrate: 64000 * (id + 1), Language: "eng"})
	}

	options := h.ctrl.State().Audio.Options
	require.Len(t, options, 3)
	for i, opt := range options {
		assert.Equal(t, i, opt.ID)
	}

	h.ctrl.Handle(remote.ActionFocusAudioTrack)
	h.ctrl.Handle(remote.ActionMoveDown)
	h.ctrl.Handle(remote.ActionMoveDown)
	assert.Equal(t, 2, h.ctrl.State().Audio.Selected)
	h.ctrl.Handle(remote.ActionMoveDown)
	assert.Equal(t, 0, h.ctrl.State().Audio.Selected)
	h.ctrl.Handle(remote.ActionMoveUp)
	assert.Equal(t, 2, h.ctrl.State().Audio.Selected)

	h.ctrl.Handle(remote.ActionSelect)
	require.Len(t, h.sender.sent, 1)
	assert.Equal(t, protocol.ChangeRepresentation(protocol.StreamAudio, 2), h.sender.sent[0])
	// Nothing changes locally until the engine confirms
	assert.Equal(t, 2, h.ctrl.State().Audio.Selected)
}

func TestSelectionCarriesEngineIDs(t *testing.T) {
	h := newHarness(t, dashClip())
	h.ready()
	for _, id := range []int{4, 7} {
		h.event(protocol.Event{Kind: protocol.EvtVideoRepresentation, ID: id})
	}
	h.event(protocol.Event{Kind: protocol.EvtRepresentationChanged, StreamType: protocol.StreamVideo, ID: 4})

	h.ctrl.Handle(remote.ActionFocusVideoTrack)
	h.ctrl.Handle(remote.ActionMoveDown)
	h.ctrl.Handle(remote.ActionSelect)

	require.Len(t, h.sender.sent, 1)
	assert.Equal(t, protocol.ChangeRepresentation(protocol.StreamVideo, 7), h.sender.sent[0])
}

func TestSelectionStartsOnFirstReportedRepresentation(t *testing.T) {
	h := newHarness(t, dashClip())
	h.ready()
	for _, id := range []int{1, 2} {
		h.event(protocol.Event{Kind: protocol.EvtVideoRepresentation, ID: id})
	}
	assert.Equal(t, 1, h.ctrl.State().Video.Selected)

	h.ctrl.Handle(remote.ActionFocusVideoTrack)
	h.ctrl.Handle(remote.ActionSelect)
	require.Len(t, h.sender.sent, 1)
	assert.Equal(t, protocol.ChangeRepresentation(protocol.StreamVideo, 1), h.sender.sent[0])

	h.ctrl.Handle(remote.ActionMoveDown)
	assert.Equal(t, 2, h.ctrl.State().Video.Selected)
}

func TestSelectionIgnoresUnreportedRepresentation(t *testing.T) {
	h := newHarness(t, dashClip())
	h.ready()
	h.event(protocol.Event{Kind: protocol.EvtRepresentationChanged, StreamType: protocol.StreamAudio, ID: 9})
	for _, id := range []int{1, 2, 3} {
		h.event(protocol.Event{Kind: protocol.EvtAudioRepresentation, ID: id})
	}
	assert.Equal(t, 9, h.ctrl.State().Audio.Selected)

	h.ctrl.Handle(remote.ActionFocusAudioTrack)
	h.ctrl.Handle(remote.ActionSelect)
	assert.Empty(t, h.sender.sent)

	t.Run("down lands on the first option", func(t *testing.T) {
		h.ctrl.Handle(remote.ActionMoveDown)
		assert.Equal(t, 1, h.ctrl.State().Audio.Selected)
	})

	t.Run("up from an unknown id lands on the last option", func(t *testing.T) {
		h.event(protocol.Event{Kind: protocol.EvtRepresentationChanged, StreamType: protocol.StreamAudio, ID: 9})
		h.ctrl.Handle(remote.ActionMoveUp)
		assert.Equal(t, 3, h.ctrl.State().Audio.Selected)
	})
}

func TestSelectWithoutRepresentationsSendsNothing(t *testing.T) {
	h := newHarness(t, dashClip())
	h.ready()

	h.ctrl.Handle(remote.ActionFocusVideoTrack)
	h.ctrl.Handle(remote.ActionMoveDown)
	h.ctrl.Handle(remote.ActionSelect)
	assert.Empty(t, h.sender.sent)
}

func TestSubtitleTracks(t *testing.T) {
	h := newHarness(t, dashClip())
	h.ready()

	h.ctrl.Handle(remote.ActionFocusSubtitleTrack)
	h.ctrl.Handle(remote.ActionSelect)
	assert.Empty(t, h.sender.sent, "subtitle track selector is unavailable until the engine reports tracks")

	h.event(protocol.Event{Kind: protocol.EvtSubtitlesRepresentation, ID: 1, Language: "rus"})
	h.event(protocol.Event{Kind: protocol.EvtSubtitlesRepresentation, ID: 1, Language: "ukr"})
	h.event(protocol.Event{Kind: protocol.EvtSubtitlesRepresentation, ID: 2, Language: "eng"})

	subs := h.ctrl.State().Subtitles
	assert.True(t, subs.Available)
	require.Len(t, subs.Options, 3)
	assert.Equal(t, "0. none", subs.Options[0].Label())
	assert.Equal(t, "1. ukr", subs.Options[1].Label())

	h.ctrl.Handle(remote.ActionMoveDown)
	h.ctrl.Handle(remote.ActionSelect)
	require.Len(t, h.sender.sent, 1)
	assert.Equal(t, protocol.ChangeSubtitlesRepresentation(1), h.sender.sent[0])
}

func TestOverlayCountdown(t *testing.T) {
	h := newHarness(t, dashClip())
	h.ready()
	h.ctrl.Handle(remote.ActionPlay)

	h.event(protocol.Event{Kind: protocol.EvtSubtitles, Subtitle: "first", Duration: 3})
	assert.Equal(t, "first", h.ctrl.State().OverlayText())

	h.advance(2 * time.Second)
	h.assertNoDue()
	h.event(protocol.Event{Kind: protocol.EvtSubtitles, Subtitle: "second", Duration: 2})
	assert.Equal(t, "second", h.ctrl.State().OverlayText())

	h.advance(1500 * time.Millisecond)
	h.assertNoDue()
	h.advance(500 * time.Millisecond)
	h.runDue()
	assert.Empty(t, h.ctrl.State().OverlayText())
}

func TestOverlayCountdownHeldWhilePaused(t *testing.T) {
	h := newHarness(t, dashClip())
	h.ready()
	h.ctrl.Handle(remote.ActionPlay)

	h.event(protocol.Event{Kind: protocol.EvtSubtitles, Subtitle: "hello", Duration: 3})
	h.advance(time.Second)
	h.ctrl.Handle(remote.ActionPause)

	h.advance(10 * time.Second)
	h.assertNoDue()
	assert.Equal(t, "hello", h.ctrl.State().OverlayText())

	h.ctrl.Handle(remote.ActionPlay)
	h.advance(1900 * time.Millisecond)
	h.assertNoDue()
	h.advance(100 * time.Millisecond)
	h.runDue()
	assert.Empty(t, h.ctrl.State().OverlayText())

	assert.Equal(t, []protocol.CommandKind{protocol.CmdPlay, protocol.CmdPause, protocol.CmdPlay}, h.sender.kinds())
}

func TestSubtitleWhilePausedIsHeld(t *testing.T) {
	h := newHarness(t, dashClip())
	h.ready()

	h.event(protocol.Event{Kind: protocol.EvtSubtitles, Subtitle: "paused", Duration: 1})
	h.advance(5 * time.Second)
	h.assertNoDue()
	assert.Equal(t, "paused", h.ctrl.State().OverlayText())

	h.event(protocol.Event{Kind: protocol.EvtSubtitles, Subtitle: ""})
	assert.Equal(t, "paused", h.ctrl.State().OverlayText())
}

func TestSeekHidesOverlay(t *testing.T) {
	h := newHarness(t, dashClip())
	h.ready()
	h.ctrl.Handle(remote.ActionPlay)
	h.event(protocol.Event{Kind: protocol.EvtSubtitles, Subtitle: "gone soon", Duration: 10})

	h.ctrl.SeekTo(5)
	assert.Empty(t, h.ctrl.State().OverlayText())
	h.advance(20 * time.Second)
	h.assertNoDue()
}

func TestHiddenSubtitlesAreNotShown(t *testing.T) {
	h := newHarness(t, dashClip())
	h.ready()
	h.ctrl.Handle(remote.ActionToggleSubtitles)
	h.event(protocol.Event{Kind: protocol.EvtSubtitles, Subtitle: "text", Duration: 1})

	state := h.ctrl.State()
	assert.Equal(t, "text", state.Overlay)
	assert.Empty(t, state.OverlayText())
}

func TestTimeUpdateRaisesDuration(t *testing.T) {
	h := newHarness(t, dashClip())
	h.ready()
	h.event(protocol.Event{Kind: protocol.EvtSetDuration, Time: 10})
	h.event(protocol.Event{Kind: protocol.EvtTimeUpdate, Time: 12.5})

	state := h.ctrl.State()
	assert.Equal(t, 12.5, state.Position)
	assert.Equal(t, 12.5, state.Duration)
	assert.Equal(t, 1.0, state.Progress())

	h.event(protocol.Event{Kind: protocol.EvtSetDuration, Time: 50})
	assert.Equal(t, 0.25, h.ctrl.State().Progress())
}

func TestFocusRing(t *testing.T) {
	t.Run("url clip has no representation selectors", func(t *testing.T) {
		h := newHarness(t, urlClip())
		for i := 0; i < 3; i++ {
			h.ctrl.Handle(remote.ActionMoveRight)
		}
		assert.Equal(t, ControlSubtitleTrack, h.ctrl.State().Focus)

		h.ctrl.Handle(remote.ActionFocusVideoTrack)
		assert.Equal(t, ControlSubtitleTrack, h.ctrl.State().Focus)
		h.ctrl.Handle(remote.ActionMoveLeft)
		assert.Equal(t, ControlExit, h.ctrl.State().Focus)
	})

	t.Run("dash clip", func(t *testing.T) {
		h := newHarness(t, dashClip())
		for i := 0; i < 4; i++ {
			h.ctrl.Handle(remote.ActionMoveRight)
		}
		assert.Equal(t, ControlAudioTrack, h.ctrl.State().Focus)
		h.ctrl.Handle(remote.ActionMoveRight)
		assert.Equal(t, ControlSubtitleTrack, h.ctrl.State().Focus)
		h.ctrl.Handle(remote.ActionMoveLeft)
		assert.Equal(t, ControlAudioTrack, h.ctrl.State().Focus)
	})
}

func TestEnterActivatesFocusedControl(t *testing.T) {
	h := newHarness(t, dashClip())
	h.ready()

	h.ctrl.Handle(remote.ActionSelect)
	assert.True(t, h.ctrl.State().Playing)
	h.ctrl.Handle(remote.ActionSelect)
	assert.False(t, h.ctrl.State().Playing)
	assert.Equal(t, []protocol.CommandKind{protocol.CmdPlay, protocol.CmdPause}, h.sender.kinds())
}

func TestFullscreenAndReturn(t *testing.T) {
	h := newHarness(t, dashClip())
	h.ready()

	h.ctrl.Handle(remote.ActionToggleFullscreen)
	require.Len(t, h.sender.sent, 1)
	assert.Equal(t, 1920, h.sender.sent[0].Rect.Width)
	assert.True(t, h.ctrl.State().Fullscreen)

	h.ctrl.Handle(remote.ActionReturn)
	assert.False(t, h.ctrl.State().Fullscreen)
	assert.False(t, h.ctrl.Closed())
	assert.Equal(t, 1280, h.sender.sent[1].Rect.Width)

	h.ctrl.Handle(remote.ActionReturn)
	assert.True(t, h.ctrl.Closed())
	assert.Equal(t, protocol.CmdClosePlayer, h.sender.sent[2].Kind)
}

func TestCloseStopsTimers(t *testing.T) {
	h := newHarness(t, dashClip())
	h.ready()
	h.ctrl.Handle(remote.ActionPlay)
	h.ctrl.Handle(remote.ActionFastForward)
	h.event(protocol.Event{Kind: protocol.EvtSubtitles, Subtitle: "bye", Duration: 1})
	h.sender.reset()

	h.ctrl.Handle(remote.ActionStop)
	assert.True(t, h.ctrl.Closed())
	assert.Equal(t, []protocol.CommandKind{protocol.CmdClosePlayer}, h.sender.kinds())

	h.advance(5 * time.Second)
	h.assertNoDue()

	// A closed session ignores everything
	h.event(protocol.Event{Kind: protocol.EvtBufferingCompleted})
	h.ctrl.Handle(remote.ActionPlay)
	h.ctrl.Close()
	assert.Len(t, h.sender.sent, 1)
	assert.False(t, h.ctrl.State().Enabled)
}

func TestProcessExited(t *testing.T) {
	h := newHarness(t, dashClip())
	h.ready()
	h.ctrl.Handle(remote.ActionPlay)

	h.ctrl.ProcessExited(139)

	state := h.ctrl.State()
	assert.Equal(t, "Crashed/exited with status: 139", state.Status)
	assert.False(t, state.Enabled)

	h.sender.reset()
	h.ctrl.Handle(remote.ActionPause)
	assert.Empty(t, h.sender.sent)
}

func TestSendFailuresDoNotStopTheSession(t *testing.T) {
	h := newHarness(t, dashClip())
	h.sender.err = errors.New("broken pipe")
	h.ready()

	h.ctrl.Handle(remote.ActionPlay)
	assert.True(t, h.ctrl.State().Playing)
}

func TestLogsAreBounded(t *testing.T) {
	clock := clockwork.NewFakeClock()
	opts := DefaultOptions()
	opts.LogLimit = 2
	ctrl := NewController(dashClip(), navigation.HandOff{}, &fakeSender{}, schedule.New(clock, 1), opts)

	ctrl.HandleLog(protocol.LogLine{Level: "info", Text: "LOG: one"})
	ctrl.HandleLog(protocol.LogLine{Level: "error", Text: "ERROR: two"})
	ctrl.HandleLog(protocol.LogLine{Level: "debug", Text: "DEBUG: three"})

	logs := ctrl.Logs()
	require.Len(t, logs, 2)
	assert.Equal(t, "ERROR: two", logs[0].Text)
	assert.Equal(t, "DEBUG: three", logs[1].Text)
}

func TestStateSnapshotIsIsolated(t *testing.T) {
	h := newHarness(t, dashClip())
	h.ready()
	h.event(protocol.Event{Kind: protocol.EvtAudioRepresentation, ID: 0})

	snapshot := h.ctrl.State()
	snapshot.Audio.Options[0].ID = 99
	assert.Equal(t, 0, h.ctrl.State().Audio.Options[0].ID)
}

func TestLabels(t *testing.T) {
	assert.Equal(t, "128 kbps eng", AudioLabel(protocol.Representation{Bitrate: 128000, Language: "eng"}))
	assert.Equal(t, "2.5 Mbps 1280x720", VideoLabel(protocol.Representation{Bitrate: 2500000, Width: 1280, Height: 720}))
	assert.Equal(t, "0 bps", AudioLabel(protocol.Representation{}))
}
