package core

import (
	"strings"
	"testing"
)

func TestNewScreen(t *testing.T) {
	s := NewScreen(80, 24)

	if s.Width() != 80 {
		t.Errorf("Width() = %d, expected 80", s.Width())
	}
	if s.Height() != 24 {
		t.Errorf("Height() = %d, expected 24", s.Height())
	}

	for y := 0; y < s.Height(); y++ {
		for x := 0; x < s.Width(); x++ {
			if s.GetCell(x, y).Glyph != " " {
				t.Fatalf("New screen should be blank, got %q at (%d, %d)", s.GetCell(x, y).Glyph, x, y)
			}
		}
	}
}

func TestScreenSetGet(t *testing.T) {
	s := NewScreen(10, 10)

	s.Set(5, 5, "X", ColorRed)
	cell := s.GetCell(5, 5)
	if cell.Glyph != "X" || cell.Color != ColorRed {
		t.Errorf("GetCell(5, 5) = %+v, expected red X", cell)
	}

	// Out of bounds should be silent
	s.Set(-1, 0, "A", ColorDefault)
	s.Set(100, 0, "A", ColorDefault)
	s.Set(0, -1, "A", ColorDefault)
	s.Set(0, 100, "A", ColorDefault)

	if s.GetCell(-1, 0).Glyph != " " {
		t.Error("Out of bounds GetCell should return blank")
	}
}

func TestScreenWideGlyph(t *testing.T) {
	s := NewScreen(6, 1)
	s.Set(2, 0, "🍎", ColorRed)

	if s.GetCell(2, 0).Glyph != "🍎" {
		t.Errorf("wide glyph head missing, got %q", s.GetCell(2, 0).Glyph)
	}
	if s.GetCell(3, 0).Glyph != "" {
		t.Errorf("wide glyph should reserve a continuation cell, got %q", s.GetCell(3, 0).Glyph)
	}
	if row := s.Row(0); row != "  🍎  " {
		t.Errorf("Row(0) = %q, expected %q", row, "  🍎  ")
	}

	// A wide glyph at the right edge does not fit
	s.Set(5, 0, "🍇", ColorMagenta)
	if s.GetCell(5, 0).Glyph != " " {
		t.Errorf("wide glyph at the edge should be dropped, got %q", s.GetCell(5, 0).Glyph)
	}

	// Overwriting the continuation blanks the head
	s.Set(3, 0, "x", ColorDefault)
	if s.GetCell(2, 0).Glyph != " " {
		t.Errorf("overwritten wide glyph head should be blank, got %q", s.GetCell(2, 0).Glyph)
	}
}

func TestScreenDrawText(t *testing.T) {
	s := NewScreen(20, 5)
	s.DrawText(2, 1, "Hello", ColorDefault)

	if row := s.Row(1); !strings.HasPrefix(row, "  Hello") {
		t.Errorf("DrawText: row 1 = %q", row)
	}

	// Text should be clipped at boundaries
	s.DrawText(18, 0, "Hello", ColorDefault)
	if s.GetCell(18, 0).Glyph != "H" || s.GetCell(19, 0).Glyph != "e" {
		t.Error("Text should be clipped at right boundary")
	}
}

func TestScreenDrawTextCentered(t *testing.T) {
	s := NewScreen(20, 5)
	s.DrawTextCentered(2, "Hi", ColorDefault)

	x := (20 - 2) / 2
	if s.GetCell(x, 2).Glyph != "H" || s.GetCell(x+1, 2).Glyph != "i" {
		t.Errorf("DrawTextCentered failed, text not at expected position")
	}
}

func TestScreenLines(t *testing.T) {
	s := NewScreen(10, 10)
	s.DrawHLine(2, 2, 5, "-", ColorGray)
	s.DrawVLine(3, 4, 4, "|", ColorGray)

	for x := 2; x < 7; x++ {
		if s.GetCell(x, 2).Glyph != "-" {
			t.Errorf("DrawHLine: expected '-' at (%d, 2), got %q", x, s.GetCell(x, 2).Glyph)
		}
	}
	for y := 4; y < 8; y++ {
		if s.GetCell(3, y).Glyph != "|" {
			t.Errorf("DrawVLine: expected '|' at (3, %d), got %q", y, s.GetCell(3, y).Glyph)
		}
	}
}

func TestScreenString(t *testing.T) {
	s := NewScreen(5, 3)
	s.DrawText(0, 0, "AAAAA", ColorDefault)
	s.DrawText(0, 1, "BBBBB", ColorDefault)
	s.DrawText(0, 2, "CCCCC", ColorDefault)

	result := s.String()
	expected := "AAAAA\nBBBBB\nCCCCC"

	if result != expected {
		t.Errorf("String() = %q, expected %q", result, expected)
	}
}

func TestScreenResize(t *testing.T) {
	s := NewScreen(10, 10)
	s.Resize(8, 4)
	if s.Width() != 8 || s.Height() != 4 {
		t.Errorf("After resize, dimensions should be 8x4, got %dx%d", s.Width(), s.Height())
	}
	if outOfBounds := s.Row(-1); outOfBounds != "        " {
		t.Errorf("Out of bounds row should be spaces, got %q", outOfBounds)
	}
}
