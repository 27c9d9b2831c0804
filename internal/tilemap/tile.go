// Package tilemap provides an immutable terrain grid for walkability queries.
// Coordinates outside the grid read as Wall, so every query is total.
package tilemap

import "fmt"

// TileType is the terrain kind of one grid cell.
type TileType int

const (
	// Wall is impassable. Out-of-bounds positions are also Wall.
	Wall TileType = iota
	// Path is open floor.
	Path
	// Trap is walkable but hurts whoever steps on it.
	Trap
)

// String returns the tile name.
func (t TileType) String() string {
	switch t {
	case Wall:
		return "Wall"
	case Path:
		return "Path"
	case Trap:
		return "Trap"
	default:
		return fmt.Sprintf("TileType(%d)", int(t))
	}
}

// Rune returns the layout character for the tile.
func (t TileType) Rune() rune {
	switch t {
	case Path:
		return '.'
	case Trap:
		return '^'
	default:
		return '#'
	}
}

// Layout characters.
const (
	runeWall  = '#'
	runePath  = '.'
	runeTrap  = '^'
	runeSpawn = 'S'
)

// tileForRune maps a layout character to its tile. Spawn markers are Path.
func tileForRune(r rune) (TileType, bool) {
	switch r {
	case runeWall:
		return Wall, true
	case runePath, runeSpawn, ' ':
		return Path, true
	case runeTrap:
		return Trap, true
	default:
		return Wall, false
	}
}
