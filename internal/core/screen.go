package core

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// Cell is one terminal column of a Screen.
// A wide glyph (emoji) occupies its own cell plus a continuation cell
// whose Glyph is empty.
type Cell struct {
	Glyph string
	Color Color
}

// Screen is a 2D cell buffer the renderer draws into.
// It decouples drawing from the terminal: the platform converts it to a
// styled string for display.
type Screen struct {
	width  int
	height int
	cells  [][]Cell
}

// NewScreen creates a new screen buffer with the given dimensions.
func NewScreen(width, height int) *Screen {
	s := &Screen{
		width:  Max(width, 0),
		height: Max(height, 0),
	}
	s.allocate()
	s.Clear()
	return s
}

func (s *Screen) allocate() {
	s.cells = make([][]Cell, s.height)
	for y := range s.cells {
		s.cells[y] = make([]Cell, s.width)
	}
}

// Width returns the screen width in columns.
func (s *Screen) Width() int {
	return s.width
}

// Height returns the screen height in rows.
func (s *Screen) Height() int {
	return s.height
}

// Resize changes the screen dimensions. Content is discarded.
func (s *Screen) Resize(width, height int) {
	if width == s.width && height == s.height {
		return
	}
	s.width = Max(width, 0)
	s.height = Max(height, 0)
	s.allocate()
	s.Clear()
}

// Clear fills the entire screen with blank cells.
func (s *Screen) Clear() {
	for y := range s.cells {
		for x := range s.cells[y] {
			s.cells[y][x] = Cell{Glyph: " "}
		}
	}
}

// Set places a glyph at the given position.
// Out-of-bounds coordinates are silently ignored, and a wide glyph that
// would not fit before the right edge is dropped.
func (s *Screen) Set(x, y int, glyph string, c Color) {
	if x < 0 || x >= s.width || y < 0 || y >= s.height {
		return
	}
	w := runewidth.StringWidth(glyph)
	if w > 1 {
		if x+1 >= s.width {
			return
		}
		if x+2 < s.width && runewidth.StringWidth(s.cells[y][x+1].Glyph) > 1 {
			s.cells[y][x+2] = Cell{Glyph: " "}
		}
		s.cells[y][x+1] = Cell{Glyph: "", Color: c}
	}
	// Overwriting the tail of a wide glyph blanks its head.
	if x > 0 && s.cells[y][x].Glyph == "" {
		s.cells[y][x-1] = Cell{Glyph: " "}
	}
	// Overwriting a wide head with a narrow glyph frees its tail.
	if w <= 1 && x+1 < s.width && runewidth.StringWidth(s.cells[y][x].Glyph) > 1 {
		s.cells[y][x+1] = Cell{Glyph: " "}
	}
	s.cells[y][x] = Cell{Glyph: glyph, Color: c}
}

// GetCell returns the cell at the given position.
// Returns a blank cell for out-of-bounds coordinates.
func (s *Screen) GetCell(x, y int) Cell {
	if x < 0 || x >= s.width || y < 0 || y >= s.height {
		return Cell{Glyph: " "}
	}
	return s.cells[y][x]
}

// DrawText writes a string horizontally starting at (x, y).
// Characters that extend beyond screen bounds are clipped.
func (s *Screen) DrawText(x, y int, text string, c Color) {
	col := x
	for _, r := range text {
		g := string(r)
		s.Set(col, y, g, c)
		col += Max(runewidth.RuneWidth(r), 1)
	}
}

// DrawTextCentered draws text centered horizontally at the given y position.
func (s *Screen) DrawTextCentered(y int, text string, c Color) {
	x := (s.width - runewidth.StringWidth(text)) / 2
	s.DrawText(x, y, text, c)
}

// DrawHLine draws a horizontal line from (x, y) with the given length.
func (s *Screen) DrawHLine(x, y, length int, glyph string, c Color) {
	for i := 0; i < length; i++ {
		s.Set(x+i, y, glyph, c)
	}
}

// DrawVLine draws a vertical line from (x, y) with the given length.
func (s *Screen) DrawVLine(x, y, length int, glyph string, c Color) {
	for i := 0; i < length; i++ {
		s.Set(x, y+i, glyph, c)
	}
}

// String converts the screen buffer to plain text, rows joined by newlines.
func (s *Screen) String() string {
	var sb strings.Builder
	sb.Grow(s.width*s.height + s.height)

	for y := 0; y < s.height; y++ {
		if y > 0 {
			sb.WriteRune('\n')
		}
		sb.WriteString(s.Row(y))
	}
	return sb.String()
}

// Row returns the specified row as plain text.
func (s *Screen) Row(y int) string {
	if y < 0 || y >= s.height {
		return strings.Repeat(" ", s.width)
	}
	var sb strings.Builder
	for _, cell := range s.cells[y] {
		sb.WriteString(cell.Glyph)
	}
	return sb.String()
}
