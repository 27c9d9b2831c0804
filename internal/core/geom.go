// Package core provides the value types shared by the game session, the
// level loader and the host platform. It has no external dependencies.
package core

import "fmt"

// Position is a (row, col) grid coordinate. Row grows downward.
type Position struct {
	Row, Col int
}

// Pos creates a Position.
func Pos(row, col int) Position {
	return Position{Row: row, Col: col}
}

// String returns the position as "(row,col)".
func (p Position) String() string {
	return fmt.Sprintf("(%d,%d)", p.Row, p.Col)
}

// Add returns p offset by (dr, dc).
func (p Position) Add(dr, dc int) Position {
	return Position{Row: p.Row + dr, Col: p.Col + dc}
}

// Step returns the neighbouring position in direction d.
func (p Position) Step(d Dir) Position {
	dr, dc := d.Delta()
	return p.Add(dr, dc)
}

// ParsePosition parses "row,col" (spaces and surrounding parentheses allowed).
func ParsePosition(s string) (Position, error) {
	var p Position
	trimmed := s
	if len(trimmed) >= 2 && trimmed[0] == '(' && trimmed[len(trimmed)-1] == ')' {
		trimmed = trimmed[1 : len(trimmed)-1]
	}
	if _, err := fmt.Sscanf(trimmed, "%d,%d", &p.Row, &p.Col); err != nil {
		return Position{}, fmt.Errorf("invalid position %q: expected row,col", s)
	}
	return p, nil
}

// Dir is a movement direction on the grid.
type Dir int

const (
	DirNone Dir = iota
	DirUp
	DirDown
	DirLeft
	DirRight
)

// Delta returns the (row, col) offset for one step in direction d.
func (d Dir) Delta() (int, int) {
	switch d {
	case DirUp:
		return -1, 0
	case DirDown:
		return 1, 0
	case DirLeft:
		return 0, -1
	case DirRight:
		return 0, 1
	default:
		return 0, 0
	}
}

// String returns a human-readable name for the direction.
func (d Dir) String() string {
	switch d {
	case DirUp:
		return "Up"
	case DirDown:
		return "Down"
	case DirLeft:
		return "Left"
	case DirRight:
		return "Right"
	default:
		return "None"
	}
}
