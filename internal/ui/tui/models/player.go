package models

import (
	"context"
	"fmt"
	"sync/atomic"

	"github.com/PizzaHomicide/nplay/internal/bridge"
	"github.com/PizzaHomicide/nplay/internal/catalog"
	"github.com/PizzaHomicide/nplay/internal/config"
	"github.com/PizzaHomicide/nplay/internal/log"
	"github.com/PizzaHomicide/nplay/internal/navigation"
	"github.com/PizzaHomicide/nplay/internal/player"
	"github.com/PizzaHomicide/nplay/internal/protocol"
	"github.com/PizzaHomicide/nplay/internal/remote"
	"github.com/PizzaHomicide/nplay/internal/schedule"
	"github.com/PizzaHomicide/nplay/internal/ui/tui/util"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/jonboulle/clockwork"
)

// engineConn is the part of bridge.Client the player view needs
type engineConn interface {
	Send(cmd protocol.Command) error
	Events() <-chan protocol.Event
	Logs() <-chan protocol.LogLine
	Done() <-chan struct{}
	Close() error
}

// connectFunc reaches the engine, starting it first if nplay is configured to
type connectFunc func(ctx context.Context) (engineConn, *bridge.Engine, error)

var sessions atomic.Int64

// PlayerModel is the player view for one clip.  It owns the engine connection and the controller for the session.
type PlayerModel struct {
	width, height int
	cfg           *config.Config
	clip          catalog.Clip
	handOff       navigation.HandOff
	session       int

	connect connectFunc
	clock   clockwork.Clock
	ctx     context.Context
	cancel  context.CancelFunc

	sched  *schedule.Scheduler
	ctrl   *player.Controller // nil until the engine is reachable
	conn   engineConn
	engine *bridge.Engine

	loading    *LoadingModel
	progress   progress.Model
	connectErr error
	hover      string // Seek target under the mouse pointer
	closed     bool
}

// NewPlayerModel creates the player view for the clip named by handOff
func NewPlayerModel(cfg *config.Config, cat *catalog.Catalog, handOff navigation.HandOff) *PlayerModel {
	clip := cat.At(handOff.Clip)
	ctx, cancel := context.WithCancel(context.Background())

	m := &PlayerModel{
		cfg:      cfg,
		clip:     clip,
		handOff:  handOff,
		session:  int(sessions.Add(1)),
		clock:    clockwork.NewRealClock(),
		ctx:      ctx,
		cancel:   cancel,
		loading:  NewLoadingModel("Connecting to engine...").WithTitle(clip.Title),
		progress: progress.New(progress.WithDefaultGradient(), progress.WithoutPercentage()),
	}
	m.connect = m.dialEngine
	return m
}

func (m *PlayerModel) ViewType() View {
	return ViewPlayer
}

func (m *PlayerModel) Init() tea.Cmd {
	m.sched = schedule.New(m.clock, 8)
	log.Info("Opening player", "title", m.clip.Title, "handoff", m.handOff.Encode(), "session", m.session)
	return tea.Batch(m.loading.Init(), m.connectCmd())
}

// State returns the controller's view of the session, or a loading state while the engine is not reachable yet
func (m *PlayerModel) State() player.State {
	if m.ctrl == nil {
		return player.State{Phase: player.PhaseLoading}
	}
	return m.ctrl.State()
}

// Closed reports whether the session has ended
func (m *PlayerModel) Closed() bool {
	return m.closed
}

func (m *PlayerModel) dialEngine(ctx context.Context) (engineConn, *bridge.Engine, error) {
	socketPath := m.cfg.Player.SocketPath
	if socketPath == "" {
		socketPath = bridge.DefaultSocketPath()
	}

	var engine *bridge.Engine
	if m.cfg.Player.EnginePath != "" {
		var err error
		engine, err = bridge.StartEngine(bridge.EngineConfig{
			Path:       m.cfg.Player.EnginePath,
			Args:       m.cfg.Player.EngineArgs,
			SocketPath: socketPath,
		})
		if err != nil {
			return nil, nil, fmt.Errorf("failed to start engine: %w", err)
		}
	}

	client := bridge.NewClient(socketPath)
	if err := client.WaitForConnection(ctx, m.cfg.Player.ConnectAttempts, m.cfg.Player.ConnectRetryDelay()); err != nil {
		if engine != nil {
			engine.Cleanup()
		}
		return nil, nil, err
	}
	return client, engine, nil
}

func (m *PlayerModel) connectCmd() tea.Cmd {
	session, ctx, connect := m.session, m.ctx, m.connect
	return func() tea.Msg {
		conn, engine, err := connect(ctx)
		if err != nil {
			return engineConnectFailedMsg{session: session, err: err}
		}
		// The view was closed while we were connecting
		if ctx.Err() != nil {
			_ = conn.Close()
			if engine != nil {
				engine.Cleanup()
			}
			return nil
		}
		return engineConnectedMsg{session: session, conn: conn, engine: engine}
	}
}

func (m *PlayerModel) controllerOptions() player.Options {
	opts := player.DefaultOptions()
	ui := m.cfg.UI
	if ui.SeekStep > 0 {
		opts.SeekStep = ui.SeekStep
	}
	if ui.SeekWindowMs > 0 {
		opts.SeekWindow = ui.SeekWindow()
	}
	if ui.WindowWidth > 0 && ui.WindowHeight > 0 {
		opts.WindowRect = protocol.ViewRect{Width: ui.WindowWidth, Height: ui.WindowHeight}
	}
	if ui.ScreenWidth > 0 && ui.ScreenHeight > 0 {
		opts.ScreenRect = protocol.ViewRect{Width: ui.ScreenWidth, Height: ui.ScreenHeight}
	}
	if m.cfg.Logging.NativeLevel != "" {
		opts.NativeLogLevel = protocol.ParseLogLevel(m.cfg.Logging.NativeLevel)
	}
	return opts
}

// The wait commands below each block on one source and turn what arrives into a message for this session.  They
// are re-issued after every message, so each source always has exactly one reader.

func (m *PlayerModel) waitForEvent() tea.Cmd {
	session, conn, done := m.session, m.conn, m.ctx.Done()
	return func() tea.Msg {
		select {
		case e, ok := <-conn.Events():
			if !ok {
				return nil
			}
			return engineEventMsg{session: session, event: e}
		case <-done:
			return nil
		}
	}
}

func (m *PlayerModel) waitForLog() tea.Cmd {
	session, conn, done := m.session, m.conn, m.ctx.Done()
	return func() tea.Msg {
		select {
		case line, ok := <-conn.Logs():
			if !ok {
				return nil
			}
			return engineLogMsg{session: session, line: line}
		case <-done:
			return nil
		}
	}
}

func (m *PlayerModel) waitForGone() tea.Cmd {
	session, conn, done := m.session, m.conn, m.ctx.Done()
	return func() tea.Msg {
		select {
		case <-conn.Done():
			return engineGoneMsg{session: session}
		case <-done:
			return nil
		}
	}
}

func (m *PlayerModel) waitForExit() tea.Cmd {
	if m.engine == nil {
		return nil
	}
	session, exited, done := m.session, m.engine.Exited(), m.ctx.Done()
	return func() tea.Msg {
		select {
		case status := <-exited:
			return engineExitedMsg{session: session, status: status}
		case <-done:
			return nil
		}
	}
}

func (m *PlayerModel) waitForDue() tea.Cmd {
	session, due, done := m.session, m.sched.Due(), m.ctx.Done()
	return func() tea.Msg {
		select {
		case d := <-due:
			return timerDueMsg{session: session, due: d}
		case <-done:
			return nil
		}
	}
}

func (m *PlayerModel) Update(msg tea.Msg) (Model, tea.Cmd) {
	if m.closed {
		return m, nil
	}

	switch msg := msg.(type) {
	case spinner.TickMsg:
		// Keeps ticking for the whole session, the buffering indicator reuses the spinner
		if m.connectErr != nil {
			return m, nil
		}
		_, cmd := m.loading.Update(msg)
		return m, cmd

	case progress.FrameMsg:
		model, cmd := m.progress.Update(msg)
		m.progress = model.(progress.Model)
		return m, cmd

	case engineConnectedMsg:
		if msg.session != m.session {
			return m, nil
		}
		return m, m.handleConnected(msg)

	case engineConnectFailedMsg:
		if msg.session != m.session {
			return m, nil
		}
		log.Error("Could not reach the playback engine", "error", msg.err)
		m.connectErr = msg.err
		return m, nil

	case engineEventMsg:
		if msg.session != m.session {
			return m, nil
		}
		m.ctrl.HandleEvent(msg.event)
		return m, m.waitForEvent()

	case engineLogMsg:
		if msg.session != m.session {
			return m, nil
		}
		m.ctrl.HandleLog(msg.line)
		return m, m.waitForLog()

	case timerDueMsg:
		if msg.session != m.session {
			return m, nil
		}
		if !msg.due.Run() {
			log.Trace("Discarded stale timer", "task", msg.due.Task())
		}
		return m, m.waitForDue()

	case engineGoneMsg:
		if msg.session != m.session {
			return m, nil
		}
		log.Warn("Connection to engine lost", "session", m.session)
		// Without a process to wait on, losing the connection is the only sign the engine went away
		if m.engine == nil {
			m.ctrl.ProcessExited(-1)
		}
		return m, nil

	case engineExitedMsg:
		if msg.session != m.session {
			return m, nil
		}
		m.ctrl.ProcessExited(msg.status)
		return m, nil

	case tea.KeyMsg:
		return m, m.handleAction(remote.GetActionByKey(msg, remote.ContextPlayer))

	case RemoteKeyMsg:
		return m, m.handleAction(remote.PlayerAction(msg.Code))

	case tea.MouseMsg:
		return m, m.handleMouse(msg)
	}

	return m, nil
}

func (m *PlayerModel) handleConnected(msg engineConnectedMsg) tea.Cmd {
	m.conn = msg.conn
	m.engine = msg.engine
	m.ctrl = player.NewController(m.clip, m.handOff, msg.conn, m.sched, m.controllerOptions())
	m.ctrl.Start()
	m.loading.SetMessage("Loading clip...")
	log.Info("Connected to engine", "session", m.session, "managed", m.engine != nil)

	return tea.Batch(
		m.waitForEvent(),
		m.waitForLog(),
		m.waitForDue(),
		m.waitForGone(),
		m.waitForExit(),
	)
}

func (m *PlayerModel) handleAction(action remote.Action) tea.Cmd {
	if action == remote.ActionNone {
		return nil
	}

	// Before the controller exists the only thing the user can do is leave
	if m.ctrl == nil {
		if action == remote.ActionReturn || action == remote.ActionStop {
			return m.shutdown()
		}
		return Handled("player:not_ready")
	}

	m.ctrl.Handle(action)
	if m.ctrl.Closed() {
		return m.shutdown()
	}
	return Handled("player:" + string(action))
}

func (m *PlayerModel) handleMouse(msg tea.MouseMsg) tea.Cmd {
	if m.ctrl == nil {
		return nil
	}

	state := m.ctrl.State()
	fraction, onBar := m.barFraction(msg.X, msg.Y)
	if !onBar || state.Duration <= 0 {
		m.hover = ""
		return nil
	}

	switch {
	case msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft:
		m.hover = ""
		m.ctrl.SeekToPercent(fraction)
		return Handled("player:click_seek")
	case msg.Action == tea.MouseActionMotion:
		m.hover = "Seek to " + util.FormatPlaybackTime(state.Duration*fraction)
	}
	return nil
}

// Shutdown closes the session and releases the engine.  Safe to call more than once.
func (m *PlayerModel) Shutdown() {
	if m.closed {
		return
	}
	m.closed = true
	if m.ctrl != nil {
		m.ctrl.Close()
	}
	m.cancel()
	if m.conn != nil {
		if err := m.conn.Close(); err != nil {
			log.Warn("Error closing engine connection", "error", err)
		}
	}
	if m.engine != nil {
		m.engine.Cleanup()
	}
	log.Info("Player session ended", "session", m.session)
}

func (m *PlayerModel) shutdown() tea.Cmd {
	m.Shutdown()
	return func() tea.Msg {
		return PlayerClosedMsg{}
	}
}

func (m *PlayerModel) Resize(width, height int) {
	m.width = width
	m.height = height
	m.loading.Resize(width, height)
	m.progress.Width = m.barWidth()
}
