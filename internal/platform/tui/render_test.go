package tui

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/pose-catcher/internal/config"
	"github.com/vovakirdan/pose-catcher/internal/core"
	"github.com/vovakirdan/pose-catcher/internal/engine"
	"github.com/vovakirdan/pose-catcher/internal/pose"
)

// testSnapshot lays out on a 40x24 screen as: lanes 12 wide starting at
// column 2, board rows 3..22, capture band midpoint on row 19.
func testSnapshot() engine.Snapshot {
	return engine.Snapshot{
		Lane:            core.LaneLeft,
		Score:           42,
		TimeRemaining:   75,
		SpeedMultiplier: 1,
		Phase:           engine.PhaseActive,
		Field: config.FieldConfig{
			Width:         300,
			Height:        600,
			CaptureTop:    480,
			CaptureBottom: 520,
		},
	}
}

func TestDrawBasketAndItems(t *testing.T) {
	screen := core.NewScreen(40, 24)
	snap := testSnapshot()
	snap.Items = []engine.ItemView{
		{KindID: "apple", Glyph: "🍎", Color: core.ColorRed, Lane: core.LaneRight, Y: 300},
		{KindID: "apple", Glyph: "🍎", Color: core.ColorRed, Lane: core.LaneCenter, Y: -20},
	}

	Draw(screen, snap, HUD{})

	if got := screen.GetCell(6, 19).Glyph; got != "╰" {
		t.Errorf("basket left edge = %q, want ╰", got)
	}
	if !strings.Contains(screen.Row(19), "╰──╯") {
		t.Errorf("basket row = %q", screen.Row(19))
	}
	if got := screen.GetCell(31, 13); got.Glyph != "🍎" || got.Color != core.ColorRed {
		t.Errorf("item cell = %+v, want red apple", got)
	}
	if got := screen.GetCell(32, 13).Glyph; got != "" {
		t.Errorf("continuation cell = %q, want empty", got)
	}
	if strings.Count(screen.String(), "🍎") != 1 {
		t.Error("item above the field should not be drawn")
	}
}

func TestDrawHUD(t *testing.T) {
	screen := core.NewScreen(60, 24)

	Draw(screen, testSnapshot(), HUD{Best: 10})
	top := screen.Row(0)
	for _, want := range []string{"SCORE 42", "BEST 42", "TIME 1:15", "SPEED x1.00"} {
		if !strings.Contains(top, want) {
			t.Errorf("HUD row %q missing %q", top, want)
		}
	}
	if !strings.Contains(screen.Row(1), "POSE off") {
		t.Errorf("keyboard-only HUD = %q", screen.Row(1))
	}

	Draw(screen, testSnapshot(), HUD{Source: "sim", Signal: pose.Signal{Label: "Left", Probability: 0.9}})
	if !strings.Contains(screen.Row(1), "POSE Left 90% (sim)") {
		t.Errorf("pose HUD = %q", screen.Row(1))
	}
}

func TestDrawOverrideShowsKeys(t *testing.T) {
	screen := core.NewScreen(60, 24)
	snap := testSnapshot()
	snap.OverrideRemaining = 90

	Draw(screen, snap, HUD{TickRate: 60})
	if !strings.Contains(screen.Row(1), "KEYS 1.5s") {
		t.Errorf("override HUD = %q", screen.Row(1))
	}
}

func TestDrawGameOver(t *testing.T) {
	screen := core.NewScreen(40, 24)
	snap := testSnapshot()
	snap.Phase = engine.PhaseGameOver
	snap.EndReason = engine.EndReasonHazard

	Draw(screen, snap, HUD{})
	out := screen.String()
	for _, want := range []string{"GAME OVER", "Boom!", "Final score: 42"} {
		if !strings.Contains(out, want) {
			t.Errorf("game over screen missing %q", want)
		}
	}
}

func TestDrawTooSmall(t *testing.T) {
	screen := core.NewScreen(30, 6)
	Draw(screen, testSnapshot(), HUD{})
	if !strings.Contains(screen.String(), "terminal too small") {
		t.Errorf("expected size warning, got %q", screen.String())
	}
}

func TestRenderScreenSkipsContinuationCells(t *testing.T) {
	screen := core.NewScreen(4, 2)
	screen.Set(0, 0, "🍎", core.ColorRed)
	screen.Set(2, 0, "x", core.ColorDefault)

	out := RenderScreen(screen)
	lines := strings.Split(out, "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2", len(lines))
	}
	if w := lipgloss.Width(lines[0]); w != 4 {
		t.Errorf("first line is %d cells wide, want 4", w)
	}
	if !strings.Contains(lines[0], "🍎") || !strings.Contains(lines[0], "x") {
		t.Errorf("first line = %q", lines[0])
	}
}
