package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/pose-catcher/internal/core"
	"github.com/vovakirdan/pose-catcher/internal/engine"
	"github.com/vovakirdan/pose-catcher/internal/pose"
)

// colorStyles maps core.Color to lipgloss styles.
var colorStyles = map[core.Color]lipgloss.Style{
	core.ColorDefault:      lipgloss.NewStyle(),
	core.ColorRed:          lipgloss.NewStyle().Foreground(lipgloss.Color("1")),
	core.ColorGreen:        lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
	core.ColorYellow:       lipgloss.NewStyle().Foreground(lipgloss.Color("3")),
	core.ColorBlue:         lipgloss.NewStyle().Foreground(lipgloss.Color("4")),
	core.ColorMagenta:      lipgloss.NewStyle().Foreground(lipgloss.Color("5")),
	core.ColorCyan:         lipgloss.NewStyle().Foreground(lipgloss.Color("6")),
	core.ColorWhite:        lipgloss.NewStyle().Foreground(lipgloss.Color("7")),
	core.ColorBrightRed:    lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
	core.ColorBrightGreen:  lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
	core.ColorBrightYellow: lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
	core.ColorOrange:       lipgloss.NewStyle().Foreground(lipgloss.Color("208")),
	core.ColorGray:         lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
}

// RenderScreen converts a Screen buffer to a styled string for display.
// Groups adjacent cells with the same color to minimize ANSI escape sequences.
func RenderScreen(s *core.Screen) string {
	var sb strings.Builder
	// Pre-allocate with extra space for ANSI codes
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	for y := range s.Height() {
		if y > 0 {
			sb.WriteRune('\n')
		}

		x := 0
		for x < s.Width() {
			startColor := s.GetCell(x, y).Color

			var run strings.Builder
			for x < s.Width() {
				cell := s.GetCell(x, y)
				if cell.Color != startColor && cell.Glyph != "" {
					break
				}
				// Continuation cells of wide glyphs print nothing
				run.WriteString(cell.Glyph)
				x++
			}

			style, ok := colorStyles[startColor]
			if !ok {
				style = colorStyles[core.ColorDefault]
			}
			sb.WriteString(style.Render(run.String()))
		}
	}
	return sb.String()
}

// HUD is the non-simulation information shown around the playfield.
type HUD struct {
	Best     int
	Source   string      // Pose source ID, empty for keyboard only
	Signal   pose.Signal // Latest stabilized pose output
	Status   string      // One-line message, e.g. where the run was saved
	TickRate int         // Frames per second, for showing tick counts as time
}

const (
	hudRows      = 2
	minLaneWidth = 4
	maxLaneWidth = 16
	minBoardRows = 6
)

// board maps field coordinates to screen cells.
type board struct {
	x0, y0 int // Top-left cell inside the frame
	laneW  int
	rows   int
	field  fieldSize
}

type fieldSize struct {
	w, h float64
}

func layoutBoard(width, height int, field fieldSize) (board, bool) {
	laneW := core.Clamp((width-2)/core.LaneCount, minLaneWidth, maxLaneWidth)
	boardW := laneW * core.LaneCount
	rows := height - hudRows - 2
	if width < boardW+2 || rows < minBoardRows || field.w <= 0 || field.h <= 0 {
		return board{}, false
	}
	return board{
		x0:    (width - boardW) / 2,
		y0:    hudRows + 1,
		laneW: laneW,
		rows:  rows,
		field: field,
	}, true
}

func (b board) width() int {
	return b.laneW * core.LaneCount
}

// laneCol returns the column where a 2-wide glyph centred in lane starts.
func (b board) laneCol(l core.Lane) int {
	return b.x0 + int(l)*b.laneW + b.laneW/2 - 1
}

// row maps a field y to a screen row; ok is false above or below the board.
func (b board) row(y float64) (int, bool) {
	if y < 0 || y >= b.field.h {
		return 0, false
	}
	return b.y0 + int(y/b.field.h*float64(b.rows)), true
}

func (b board) col(x float64) int {
	return b.x0 + int(x/b.field.w*float64(b.width()))
}

// Draw renders a snapshot into dst. dst is cleared first.
func Draw(dst *core.Screen, snap engine.Snapshot, hud HUD) {
	dst.Clear()

	b, ok := layoutBoard(dst.Width(), dst.Height(), fieldSize{w: snap.Field.Width, h: snap.Field.Height})
	if !ok {
		dst.DrawTextCentered(dst.Height()/2, "terminal too small", core.ColorBrightRed)
		return
	}

	drawHUD(dst, snap, hud)
	drawFrame(dst, b)

	for _, it := range snap.Items {
		if y, ok := b.row(it.Y); ok {
			dst.Set(b.laneCol(it.Lane), y, it.Glyph, it.Color)
		}
	}

	drawBasket(dst, b, snap)

	for _, p := range snap.Particles {
		y, ok := b.row(p.Position.Y)
		x := b.col(p.Position.X)
		if !ok || x < b.x0 || x >= b.x0+b.width() {
			continue
		}
		glyph, color := particleLook(p)
		dst.Set(x, y, glyph, color)
	}

	if snap.Phase == engine.PhaseGameOver {
		drawGameOver(dst, b, snap)
	}
}

func drawHUD(dst *core.Screen, snap engine.Snapshot, hud HUD) {
	secs := core.Max(snap.TimeRemaining, 0)
	timeColor := core.ColorWhite
	if secs <= 10 {
		timeColor = core.ColorBrightRed
	}

	x := 1
	x = drawField(dst, x, 0, "SCORE", fmt.Sprintf("%d", snap.Score), core.ColorBrightYellow)
	x = drawField(dst, x, 0, "BEST", fmt.Sprintf("%d", core.Max(hud.Best, snap.Score)), core.ColorYellow)
	x = drawField(dst, x, 0, "TIME", fmt.Sprintf("%d:%02d", secs/60, secs%60), timeColor)
	drawField(dst, x, 0, "SPEED", fmt.Sprintf("x%.2f", snap.SpeedMultiplier), core.ColorCyan)

	x = 1
	switch {
	case hud.Source == "":
		x = drawField(dst, x, 1, "POSE", "off", core.ColorGray)
	case hud.Signal.Confident():
		x = drawField(dst, x, 1, "POSE", fmt.Sprintf("%s %.0f%% (%s)", hud.Signal.Label, hud.Signal.Probability*100, hud.Source), core.ColorBrightGreen)
	default:
		x = drawField(dst, x, 1, "POSE", fmt.Sprintf("-- (%s)", hud.Source), core.ColorGray)
	}
	if snap.OverrideRemaining > 0 && snap.Phase == engine.PhaseActive {
		x = drawField(dst, x, 1, "KEYS", fmt.Sprintf("%.1fs", float64(snap.OverrideRemaining)/float64(core.Max(hud.TickRate, 1))), core.ColorCyan)
	}
	if hud.Status != "" {
		dst.DrawText(x, 1, hud.Status, core.ColorGray)
	}
}

func drawField(dst *core.Screen, x, y int, label, value string, c core.Color) int {
	dst.DrawText(x, y, label, core.ColorGray)
	x += len(label) + 1
	dst.DrawText(x, y, value, c)
	return x + len([]rune(value)) + 3
}

func drawFrame(dst *core.Screen, b board) {
	top, bottom := b.y0-1, b.y0+b.rows
	left, right := b.x0-1, b.x0+b.width()

	dst.DrawHLine(b.x0, top, b.width(), "─", core.ColorGray)
	dst.DrawHLine(b.x0, bottom, b.width(), "─", core.ColorGray)
	dst.DrawVLine(left, b.y0, b.rows, "│", core.ColorGray)
	dst.DrawVLine(right, b.y0, b.rows, "│", core.ColorGray)
	dst.Set(left, top, "┌", core.ColorGray)
	dst.Set(right, top, "┐", core.ColorGray)
	dst.Set(left, bottom, "└", core.ColorGray)
	dst.Set(right, bottom, "┘", core.ColorGray)

	for i := 1; i < core.LaneCount; i++ {
		dst.DrawVLine(b.x0+i*b.laneW, b.y0, b.rows, "┊", core.ColorGray)
	}
}

func drawBasket(dst *core.Screen, b board, snap engine.Snapshot) {
	mid := (snap.Field.CaptureTop + snap.Field.CaptureBottom) / 2
	y, ok := b.row(mid)
	if !ok {
		y = b.y0 + b.rows - 1
	}

	color := core.ColorBrightGreen
	if snap.OverrideRemaining > 0 {
		color = core.ColorCyan
	}
	x := b.x0 + int(snap.Lane)*b.laneW + (b.laneW-4)/2
	dst.DrawText(x, y, "╰──╯", color)
}

// particleLook fades a particle out through coarser glyphs as it ages.
func particleLook(p engine.ParticleView) (string, core.Color) {
	switch {
	case p.LifeFraction > 0.66:
		return p.Glyph, p.Color
	case p.LifeFraction > 0.33:
		return "*", core.ColorYellow
	default:
		return "·", core.ColorGray
	}
}

func drawGameOver(dst *core.Screen, b board, snap engine.Snapshot) {
	reason := "Stopped"
	switch snap.EndReason {
	case engine.EndReasonTimeUp:
		reason = "Time's up!"
	case engine.EndReasonHazard:
		reason = "Boom! You caught a bomb"
	}

	lines := []struct {
		text  string
		color core.Color
	}{
		{"GAME OVER", core.ColorBrightRed},
		{reason, core.ColorWhite},
		{fmt.Sprintf("Final score: %d", snap.Score), core.ColorBrightYellow},
		{"r restart   q quit", core.ColorGray},
	}

	y := b.y0 + b.rows/2 - len(lines)/2
	for i, l := range lines {
		row := y + i
		// Blank the line under the text so falling items don't show through
		dst.DrawHLine(b.x0, row, b.width(), " ", core.ColorDefault)
		dst.DrawTextCentered(row, l.text, l.color)
	}
}
