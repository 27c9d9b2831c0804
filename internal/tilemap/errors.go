package tilemap

import (
	"errors"
	"fmt"
)

// ErrNotRectangular is matched by errors for grids whose rows differ in length.
var ErrNotRectangular = errors.New("tilemap: grid is not rectangular")

// RaggedRowError reports the first row whose width differs from row 0.
type RaggedRowError struct {
	Row  int
	Got  int
	Want int
}

func (e *RaggedRowError) Error() string {
	return fmt.Sprintf("tilemap: row %d has %d columns, expected %d", e.Row, e.Got, e.Want)
}

// Is lets errors.Is match ErrNotRectangular.
func (e *RaggedRowError) Is(target error) bool {
	return target == ErrNotRectangular
}

// UnknownTileError reports a layout character with no tile mapping.
type UnknownTileError struct {
	Row, Col int
	Rune     rune
}

func (e *UnknownTileError) Error() string {
	return fmt.Sprintf("tilemap: unknown tile %q at (%d,%d)", e.Rune, e.Row, e.Col)
}
