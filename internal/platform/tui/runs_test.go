package tui

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/pose-catcher/internal/config"
	"github.com/vovakirdan/pose-catcher/internal/storage"
)

// playAndQuit records one short keyboard run into store.
func playAndQuit(t *testing.T, store *storage.Store) {
	t.Helper()
	m := newTestModel(t, config.DefaultConfig(), store)
	m = update(t, m, tea.KeyMsg{Type: tea.KeyLeft})
	for range 20 {
		m = update(t, m, TickMsg{})
	}
	update(t, m, runeKey('q'))
}

func updateRuns(t *testing.T, m RunsModel, msg tea.Msg) RunsModel {
	t.Helper()
	next, _ := m.Update(msg)
	rm, ok := next.(RunsModel)
	if !ok {
		t.Fatalf("Update returned %T, want RunsModel", next)
	}
	return rm
}

func TestRunsModelVerifiesReplay(t *testing.T) {
	store := openTestStore(t)
	playAndQuit(t, store)

	m := NewRunsModel(store, config.DefaultConfig(), 120, 30)
	if len(m.runs) != 1 {
		t.Fatalf("loaded %d runs, want 1", len(m.runs))
	}

	m = updateRuns(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	run, _ := m.Selected()
	if got := m.verdicts[run.ID]; got != "✓" {
		t.Errorf("verdict = %q, want ✓ (status %q)", got, m.Status())
	}
	if !strings.Contains(m.Status(), "reproduced") {
		t.Errorf("status = %q", m.Status())
	}
}

func TestRunsModelFlagsDivergentRun(t *testing.T) {
	store := openTestStore(t)
	now := time.Now()
	tampered := storage.Run{
		ID:         "tampered-run",
		Seed:       3,
		StartedAt:  now.Add(-time.Minute),
		EndedAt:    now,
		FinalScore: 999,
		EndReason:  "stopped",
		Ticks:      10,
	}
	if err := store.SaveRun(tampered, nil); err != nil {
		t.Fatalf("SaveRun() failed: %v", err)
	}

	m := NewRunsModel(store, config.DefaultConfig(), 120, 30)
	m = updateRuns(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if got := m.verdicts["tampered-run"]; got != "✗" {
		t.Errorf("verdict = %q, want ✗ (status %q)", got, m.Status())
	}
}

func TestRunsModelDelete(t *testing.T) {
	store := openTestStore(t)
	playAndQuit(t, store)

	m := NewRunsModel(store, config.DefaultConfig(), 80, 30)
	m = updateRuns(t, m, runeKey('x'))
	if len(m.runs) != 0 {
		t.Errorf("runs after delete = %d, want 0", len(m.runs))
	}
	if !strings.Contains(m.View(), "No runs recorded yet") {
		t.Error("empty journal message missing")
	}
}

func TestRunsModelSwitchView(t *testing.T) {
	store := openTestStore(t)
	m := NewRunsModel(store, config.DefaultConfig(), 80, 30)

	m = updateRuns(t, m, tea.KeyMsg{Type: tea.KeyTab})
	if m.view != viewTop {
		t.Errorf("view = %v, want best runs", m.view)
	}
	if !strings.Contains(m.View(), "BEST RUNS") {
		t.Error("title should follow the view")
	}
	m = updateRuns(t, m, tea.KeyMsg{Type: tea.KeyTab})
	if m.view != viewRecent {
		t.Errorf("view = %v, want recent runs", m.view)
	}
}

func TestRunsModelWithoutStore(t *testing.T) {
	m := NewRunsModel(nil, config.DefaultConfig(), 80, 30)
	m = updateRuns(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if len(m.runs) != 0 || m.Status() != "" {
		t.Errorf("runs = %d, status = %q", len(m.runs), m.Status())
	}
}
