package core

import (
	"strings"
	"testing"
)

func TestNewScreen(t *testing.T) {
	s := NewScreen(12, 4)

	if s.Width() != 12 || s.Height() != 4 {
		t.Errorf("dimensions = %dx%d, expected 12x4", s.Width(), s.Height())
	}
	for y := 0; y < 4; y++ {
		if s.Row(y) != strings.Repeat(" ", 12) {
			t.Errorf("Row(%d) = %q, expected blank", y, s.Row(y))
		}
	}
}

func TestScreenSetGet(t *testing.T) {
	s := NewScreen(5, 5)
	s.Set(2, 3, '#', CellWall)

	if s.Get(2, 3) != '#' {
		t.Errorf("Get(2, 3) = %q, expected '#'", s.Get(2, 3))
	}
	if s.GetCell(2, 3).Kind != CellWall {
		t.Errorf("GetCell(2, 3).Kind = %d, expected CellWall", s.GetCell(2, 3).Kind)
	}

	// Out of bounds is ignored on write and blank on read
	s.Set(-1, 0, 'X', CellWall)
	s.Set(5, 0, 'X', CellWall)
	if s.Get(-1, 0) != ' ' || s.Get(0, 99) != ' ' {
		t.Error("out of bounds reads should return a space")
	}
}

func TestScreenDrawText(t *testing.T) {
	s := NewScreen(8, 2)
	s.DrawText(5, 0, "Hello", CellHUD)

	if s.Row(0) != "     Hel" {
		t.Errorf("Row(0) = %q, expected clipped text", s.Row(0))
	}
	if s.GetCell(6, 0).Kind != CellHUD {
		t.Errorf("text cell kind = %d, expected CellHUD", s.GetCell(6, 0).Kind)
	}
}

func TestScreenDrawTextCentered(t *testing.T) {
	s := NewScreen(10, 1)
	s.DrawTextCentered(0, "ab", CellBanner)

	if s.Row(0) != "    ab    " {
		t.Errorf("Row(0) = %q, expected centered text", s.Row(0))
	}
}

func TestScreenString(t *testing.T) {
	s := NewScreen(5, 3)
	s.DrawText(0, 0, "AAAAA", CellHUD)
	s.DrawText(0, 1, "BBBBB", CellHUD)
	s.DrawText(0, 2, "CCCCC", CellHUD)

	result := s.String()
	expected := "AAAAA\nBBBBB\nCCCCC"

	if result != expected {
		t.Errorf("String() = %q, expected %q", result, expected)
	}
}

func TestScreenResizeAndClear(t *testing.T) {
	s := NewScreen(10, 10)
	s.DrawText(0, 0, "Hello", CellHUD)

	s.Resize(8, 4)
	if s.Width() != 8 || s.Height() != 4 {
		t.Errorf("After resize, dimensions should be 8x4, got %dx%d", s.Width(), s.Height())
	}
	if s.Row(0) != strings.Repeat(" ", 8) {
		t.Errorf("Row(0) = %q, expected blank after resize", s.Row(0))
	}

	s.DrawText(0, 1, "xy", CellHUD)
	s.Clear()
	if s.Get(0, 1) != ' ' {
		t.Error("Clear() should blank every cell")
	}
}
