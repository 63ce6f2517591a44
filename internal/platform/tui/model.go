package tui

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/pose-catcher/internal/config"
	"github.com/vovakirdan/pose-catcher/internal/core"
	"github.com/vovakirdan/pose-catcher/internal/engine"
	"github.com/vovakirdan/pose-catcher/internal/journal"
	"github.com/vovakirdan/pose-catcher/internal/pose"
	"github.com/vovakirdan/pose-catcher/internal/registry"
	"github.com/vovakirdan/pose-catcher/internal/storage"
)

// poseBuffer bounds how many classifier frames may queue between renders.
// When full, new frames are dropped; the stabilizer only needs recent ones.
const poseBuffer = 8

// Options configure a play session.
type Options struct {
	Config   config.Config
	Runtime  core.RuntimeConfig
	Preset   string
	Store    *storage.Store // Optional; runs are not journaled without it
	Feed     registry.Feed  // Optional; keyboard only without it
	FeedName string
	Logger   *log.Logger

	// InputTTY reads keys from the terminal instead of stdin, for when
	// stdin carries the pose feed.
	InputTTY bool
}

// poseMsg carries one classifier frame from the feed goroutine.
type poseMsg []pose.Sample

// feedDoneMsg is sent when the pose feed returns.
type feedDoneMsg struct {
	err error
}

// playState is the mutable part of Model shared by its copies.
type playState struct {
	rec    *journal.Recorder
	seed   int64
	saved  bool
	best   int
	signal pose.Signal
	status string
}

// Model is the Bubble Tea model for a catcher session.
type Model struct {
	cfg     config.Config
	runtime core.RuntimeConfig
	preset  string
	store   *storage.Store
	logger  *log.Logger

	clock  *engine.Clock
	sched  *teaScheduler
	screen *core.Screen
	state  *playState

	feed     registry.Feed
	feedName string
	poses    chan []pose.Sample
	ctx      context.Context
	cancel   context.CancelFunc

	keys     KeyMap
	help     help.Model
	quitting bool
}

// NewModel creates a model and starts the first session.
func NewModel(opts Options) Model {
	opts.Runtime = opts.Runtime.Normalized()
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}

	ctx, cancel := context.WithCancel(context.Background())
	state := &playState{}
	sched := newTeaScheduler()

	// The recorder changes on restart; route events to the current one.
	observer := engine.ObserverFunc(func(ev engine.Event) {
		if state.rec != nil {
			state.rec.OnEvent(ev)
		}
	})

	m := Model{
		cfg:      opts.Config,
		runtime:  opts.Runtime,
		preset:   opts.Preset,
		store:    opts.Store,
		logger:   opts.Logger,
		clock:    engine.NewClock(opts.Config, sched, observer, engine.WithLogger(opts.Logger)),
		sched:    sched,
		screen:   core.NewScreen(opts.Runtime.ScreenW, core.Max(opts.Runtime.ScreenH-1, 0)),
		state:    state,
		feed:     opts.Feed,
		feedName: opts.FeedName,
		poses:    make(chan []pose.Sample, poseBuffer),
		ctx:      ctx,
		cancel:   cancel,
		keys:     DefaultKeyMap(),
		help:     help.New(),
	}
	if m.feed == nil {
		m.feedName = ""
	}
	if m.store != nil {
		if best, err := m.store.HighScore(); err == nil {
			state.best = best
		}
	}

	m.startSession(opts.Runtime.Seed)
	return m
}

// Init starts the frame loop, the countdown and the pose feed.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{tickCmd(m.runtime.TickRate), m.sched.Drain()}
	if m.feed != nil {
		cmds = append(cmds, m.runFeed(), m.waitForPose())
	}
	return tea.Batch(cmds...)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.runtime.ScreenW = msg.Width
		m.runtime.ScreenH = msg.Height
		m.screen.Resize(msg.Width, core.Max(msg.Height-1, 0))
		m.help.Width = msg.Width
		return m, nil

	case TickMsg:
		res := m.clock.Tick()
		if res.Phase == engine.PhaseGameOver {
			m.finishRun()
		}
		return m, tickCmd(m.runtime.TickRate)

	case timerMsg:
		cmd := m.sched.Fire(msg.id)
		m.checkFinished()
		return m, cmd

	case poseMsg:
		m.applyPose(msg)
		return m, m.waitForPose()

	case feedDoneMsg:
		if msg.err != nil {
			m.logger.Error("pose feed failed", "source", m.feedName, "error", msg.err)
			m.state.status = "pose feed failed: " + msg.err.Error()
		} else if m.ctx.Err() == nil {
			m.logger.Info("pose feed ended", "source", m.feedName)
			m.state.status = "pose feed ended"
		}
		m.state.signal = pose.Signal{}
		return m, nil
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		m.shutdown()
		return m, tea.Quit

	case key.Matches(msg, m.keys.Screenshot):
		m.saveScreenshot()
		return m, nil

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil

	case key.Matches(msg, m.keys.Restart):
		m.finishRun()
		m.startSession(0)
		return m, m.sched.Drain()
	}

	if d := m.keys.Direction(msg); d != core.DirectionNone {
		if s := m.clock.Session(); s != nil && s.Active() {
			m.state.rec.Key(s.Tick(), d)
			m.clock.OnKeyIntent(d)
		}
	}
	return m, nil
}

// startSession begins a new journaled session. A zero seed picks one from the clock.
func (m *Model) startSession(seed int64) {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	m.state.seed = seed
	m.state.saved = false
	m.state.status = ""
	m.state.rec = journal.NewRecorder(m.cfg, seed, m.preset, m.feedName, time.Now())
	m.clock.Start(seed)
	m.keys.Restart.SetEnabled(false)
}

func (m *Model) applyPose(samples []pose.Sample) {
	s := m.clock.Session()
	if s == nil || !s.Active() {
		return
	}
	m.state.rec.Pose(s.Tick(), samples)
	m.state.signal = m.clock.OnClassifierSample(samples)
}

func (m *Model) checkFinished() {
	if s := m.clock.Session(); s != nil && !s.Active() {
		m.finishRun()
	}
}

// finishRun ends the current session if needed and saves its journal once.
func (m *Model) finishRun() {
	s := m.clock.Session()
	if s == nil || m.state.saved {
		return
	}
	if s.Active() {
		m.clock.Stop()
	}
	m.state.saved = true
	m.keys.Restart.SetEnabled(true)

	snap := m.clock.Snapshot()
	if snap.Score > m.state.best {
		m.state.best = snap.Score
	}
	if m.store == nil {
		return
	}

	run, entries := m.state.rec.Finish(snap, time.Now())
	if err := m.store.SaveRun(run, entries); err != nil {
		m.logger.Error("could not save run", "run", run.ID, "error", err)
		m.state.status = "run not saved"
		return
	}
	m.logger.Info("run saved", "run", run.ID, "score", run.FinalScore, "reason", run.EndReason, "entries", len(entries))
	m.state.status = "saved run " + shortID(run.ID)
}

func (m *Model) shutdown() {
	m.finishRun()
	m.cancel()
}

// runFeed runs the pose feed until the model quits.
func (m Model) runFeed() tea.Cmd {
	feed, ctx, out := m.feed, m.ctx, m.poses
	return func() tea.Msg {
		err := feed.Run(ctx, func(samples []pose.Sample) {
			select {
			case out <- samples:
			default:
			}
		})
		return feedDoneMsg{err: err}
	}
}

// waitForPose waits for the next classifier frame.
func (m Model) waitForPose() tea.Cmd {
	ctx, in := m.ctx, m.poses
	return func() tea.Msg {
		select {
		case samples := <-in:
			return poseMsg(samples)
		case <-ctx.Done():
			return nil
		}
	}
}

// saveScreenshot saves the current screen to a file.
func (m *Model) saveScreenshot() {
	Draw(m.screen, m.clock.Snapshot(), m.hud())

	dir := filepath.Join(os.Getenv("HOME"), ".catcher", "screenshots")
	//nolint:errcheck // Best-effort directory creation
	os.MkdirAll(dir, 0o755)

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("catcher_%s.txt", timestamp))

	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.logger.Warn("screenshot failed", "error", err)
		return
	}
	m.state.status = "screenshot saved"
}

func (m Model) hud() HUD {
	return HUD{
		Best:     m.state.best,
		Source:   m.feedName,
		Signal:   m.state.signal,
		Status:   m.state.status,
		TickRate: m.runtime.TickRate,
	}
}

var helpStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	Draw(m.screen, m.clock.Snapshot(), m.hud())
	return RenderScreen(m.screen) + "\n" + helpStyle.Render(" "+m.help.View(m.keys))
}

// Snapshot returns the current session snapshot.
func (m Model) Snapshot() engine.Snapshot {
	return m.clock.Snapshot()
}

// Run starts the Bubble Tea program with the given options.
func Run(opts Options) error {
	model := NewModel(opts)

	progOpts := []tea.ProgramOption{tea.WithAltScreen()}
	if opts.InputTTY {
		progOpts = append(progOpts, tea.WithInputTTY())
	}
	p := tea.NewProgram(model, progOpts...)

	final, err := p.Run()
	if fm, ok := final.(Model); ok {
		// Ctrl+C from the terminal bypasses handleKey
		fm.shutdown()
	}
	return err
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
