package tui

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/pose-catcher/internal/config"
	"github.com/vovakirdan/pose-catcher/internal/journal"
	"github.com/vovakirdan/pose-catcher/internal/storage"
)

// Runs browser layout constants
const (
	minWidthForDetails = 90  // Minimum width to show the details panel
	detailsWidth       = 30  // Width of the details panel
	maxRuns            = 200 // Max runs to load
)

// runsView selects which runs the browser lists.
type runsView int

const (
	viewRecent runsView = iota
	viewTop
)

func (v runsView) String() string {
	if v == viewTop {
		return "BEST RUNS"
	}
	return "RECENT RUNS"
}

// RunsKeyMap defines the key bindings for the runs browser.
type RunsKeyMap struct {
	Up         key.Binding
	Down       key.Binding
	Replay     key.Binding
	Delete     key.Binding
	SwitchView key.Binding
	Quit       key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k RunsKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Replay, k.SwitchView, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k RunsKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.SwitchView},
		{k.Replay, k.Delete, k.Quit},
	}
}

// DefaultRunsKeyMap returns default key bindings.
func DefaultRunsKeyMap() RunsKeyMap {
	return RunsKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		Replay: key.NewBinding(
			key.WithKeys("enter", "r"),
			key.WithHelp("enter", "verify replay"),
		),
		Delete: key.NewBinding(
			key.WithKeys("x", "delete"),
			key.WithHelp("x", "delete run"),
		),
		SwitchView: key.NewBinding(
			key.WithKeys("tab", "shift+tab"),
			key.WithHelp("tab", "recent/best"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// RunsModel is the Bubble Tea model for the journaled runs browser.
type RunsModel struct {
	store    *storage.Store
	fallback config.Config
	view     runsView
	runs     []storage.Run
	verdicts map[string]string // Replay outcome per run ID
	status   string
	table    table.Model
	help     help.Model
	keys     RunsKeyMap
	width    int
	height   int
	quitting bool
}

// NewRunsModel creates a runs browser. fallback is used to replay runs
// that were recorded without a config.
func NewRunsModel(store *storage.Store, fallback config.Config, width, height int) RunsModel {
	m := RunsModel{
		store:    store,
		fallback: fallback,
		verdicts: make(map[string]string),
		keys:     DefaultRunsKeyMap(),
		help:     help.New(),
		width:    width,
		height:   height,
	}
	m.table = m.createTable()
	m.loadRuns()
	return m
}

func (m RunsModel) showDetails() bool {
	return m.width >= minWidthForDetails
}

// createTable creates a new table sized for the current window.
func (m *RunsModel) createTable() table.Model {
	columns := []table.Column{
		{Title: "Run", Width: 8},
		{Title: "Score", Width: 7},
		{Title: "End", Width: 8},
		{Title: "Source", Width: 6},
		{Title: "Date", Width: 12},
		{Title: "", Width: 2},
	}

	tableWidth := m.width - 4
	if m.showDetails() {
		tableWidth -= detailsWidth + 4
	}
	used := 0
	for _, c := range columns {
		used += c.Width + 2
	}
	if spare := tableWidth - used; spare > 0 {
		columns[4].Width += min(spare, 8)
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(max(m.height-8, 3)),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return t
}

// loadRuns reloads the current view from the store.
func (m *RunsModel) loadRuns() {
	m.runs = nil
	if m.store != nil {
		var (
			runs []storage.Run
			err  error
		)
		if m.view == viewTop {
			runs, err = m.store.TopRuns(maxRuns)
		} else {
			runs, err = m.store.Runs(maxRuns)
		}
		if err != nil {
			m.status = err.Error()
		} else {
			m.runs = runs
		}
	}
	m.updateTableRows()
}

func (m *RunsModel) updateTableRows() {
	rows := make([]table.Row, len(m.runs))
	for i, r := range m.runs {
		source := r.PoseSource
		if source == "" {
			source = "keys"
		}
		rows[i] = table.Row{
			shortID(r.ID),
			fmt.Sprintf("%d", r.FinalScore),
			r.EndReason,
			source,
			r.StartedAt.Local().Format("Jan 02 15:04"),
			m.verdicts[r.ID],
		}
	}
	m.table.SetRows(rows)
	if m.table.Cursor() >= len(rows) {
		m.table.GotoTop()
	}
}

func (m RunsModel) selected() (storage.Run, bool) {
	i := m.table.Cursor()
	if i < 0 || i >= len(m.runs) {
		return storage.Run{}, false
	}
	return m.runs[i], true
}

// verify replays run and records whether it reproduced the recorded outcome.
func (m *RunsModel) verify(run storage.Run) {
	entries, err := m.store.RunEntries(run.ID)
	if err != nil {
		m.status = err.Error()
		return
	}
	cfg, err := journal.RunConfig(run, m.fallback)
	if err != nil {
		m.status = err.Error()
		return
	}

	res, err := journal.Replay(cfg, run, entries)
	switch {
	case err == nil:
		m.verdicts[run.ID] = "✓"
		m.status = fmt.Sprintf("run %s reproduced: score %d, %s at tick %d", shortID(run.ID), res.Score, res.Reason, res.Ticks)
	case errors.Is(err, journal.ErrReplayMismatch):
		m.verdicts[run.ID] = "✗"
		m.status = fmt.Sprintf("run %s diverged: replay scored %d, %s at tick %d", shortID(run.ID), res.Score, res.Reason, res.Ticks)
	default:
		m.verdicts[run.ID] = "?"
		m.status = err.Error()
	}
	m.updateTableRows()
}

// Init initializes the runs browser.
func (m RunsModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the runs browser.
func (m RunsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.SwitchView):
			m.view = 1 - m.view
			m.loadRuns()
			m.table.GotoTop()
			return m, nil

		case key.Matches(msg, m.keys.Replay):
			if run, ok := m.selected(); ok && m.store != nil {
				m.verify(run)
			}
			return m, nil

		case key.Matches(msg, m.keys.Delete):
			if run, ok := m.selected(); ok && m.store != nil {
				if err := m.store.DeleteRun(run.ID); err != nil {
					m.status = err.Error()
				} else {
					delete(m.verdicts, run.ID)
					m.status = "deleted run " + shortID(run.ID)
					m.loadRuns()
				}
			}
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		cursor := m.table.Cursor()
		m.table = m.createTable()
		m.updateTableRows()
		m.table.SetCursor(cursor)
		m.help.Width = msg.Width
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the runs browser.
func (m RunsModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229")).
		MarginBottom(1)
	b.WriteString(titleStyle.Render(centerText(m.view.String(), m.width)))
	b.WriteString("\n\n")

	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)

	tableRendered := boxStyle.Render(m.renderTableContent())
	if m.showDetails() {
		details := boxStyle.Width(detailsWidth).Render(m.renderDetails())
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, tableRendered, "  ", details))
	} else {
		b.WriteString(tableRendered)
	}

	b.WriteString("\n")
	if m.status != "" {
		b.WriteString(m.status)
		b.WriteString("\n")
	}
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))

	return b.String()
}

func (m RunsModel) renderTableContent() string {
	if len(m.runs) == 0 {
		emptyStyle := lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Italic(true).
			Padding(2, 4)
		return emptyStyle.Render("No runs recorded yet.\nPlay a round to fill the journal!")
	}
	return m.table.View()
}

func (m RunsModel) renderDetails() string {
	run, ok := m.selected()
	if !ok {
		return "No run selected"
	}

	preset := run.Preset
	if preset == "" {
		preset = "custom"
	}
	lines := []string{
		lipgloss.NewStyle().Bold(true).Render("Run " + shortID(run.ID)),
		"",
		fmt.Sprintf("Score    %d", run.FinalScore),
		fmt.Sprintf("Ended    %s", run.EndReason),
		fmt.Sprintf("Ticks    %d", run.Ticks),
		fmt.Sprintf("Seed     %d", run.Seed),
		fmt.Sprintf("Preset   %s", preset),
		fmt.Sprintf("Lasted   %s", run.Duration().Round(time.Second)),
	}
	if v := m.verdicts[run.ID]; v != "" {
		lines = append(lines, "", "Replay   "+v)
	}
	return strings.Join(lines, "\n")
}

// Selected returns the highlighted run, if any.
func (m RunsModel) Selected() (storage.Run, bool) {
	return m.selected()
}

// Status returns the last status message.
func (m RunsModel) Status() string {
	return m.status
}

// RunRunsBrowser runs the journaled runs browser.
func RunRunsBrowser(store *storage.Store, fallback config.Config, width, height int) error {
	p := tea.NewProgram(
		NewRunsModel(store, fallback, width, height),
		tea.WithAltScreen(),
	)
	_, err := p.Run()
	return err
}

// centerText centers text within the given width.
func centerText(text string, width int) string {
	if len(text) >= width {
		return text
	}
	padding := (width - len(text)) / 2
	return strings.Repeat(" ", padding) + text
}
