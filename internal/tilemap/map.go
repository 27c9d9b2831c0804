package tilemap

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/vovakirdan/gridstate/internal/core"
)

// Map is an immutable rows x cols grid of tiles.
type Map struct {
	rows  int
	cols  int
	tiles [][]TileType
}

// New builds a Map from grid. Every row must have as many columns as row 0;
// otherwise New returns a *RaggedRowError. An empty grid is valid and has no
// walkable positions. The grid is copied, so later changes to it do not
// affect the Map.
func New(grid [][]TileType) (*Map, error) {
	m := &Map{rows: len(grid)}
	if m.rows > 0 {
		m.cols = len(grid[0])
	}

	m.tiles = make([][]TileType, m.rows)
	for r, row := range grid {
		if len(row) != m.cols {
			return nil, &RaggedRowError{Row: r, Got: len(row), Want: m.cols}
		}
		m.tiles[r] = append([]TileType(nil), row...)
	}
	return m, nil
}

// Parse builds a Map from text rows using '#' for walls, '.' or ' ' for path,
// '^' for traps and 'S' for the spawn point (a path tile). It returns the
// spawn position, or the first path tile when the layout has no 'S'.
func Parse(layout []string) (*Map, core.Position, error) {
	grid := make([][]TileType, len(layout))
	spawn := core.Pos(-1, -1)
	firstPath := core.Pos(-1, -1)

	for r, line := range layout {
		line = strings.TrimRight(line, "\r")
		grid[r] = make([]TileType, 0, utf8.RuneCountInString(line))
		c := 0
		for _, ch := range line {
			tile, ok := tileForRune(ch)
			if !ok {
				return nil, core.Position{}, &UnknownTileError{Row: r, Col: c, Rune: ch}
			}
			if ch == runeSpawn && spawn.Row < 0 {
				spawn = core.Pos(r, c)
			}
			if tile == Path && firstPath.Row < 0 {
				firstPath = core.Pos(r, c)
			}
			grid[r] = append(grid[r], tile)
			c++
		}
	}

	m, err := New(grid)
	if err != nil {
		return nil, core.Position{}, err
	}
	if spawn.Row < 0 {
		spawn = firstPath
	}
	return m, spawn, nil
}

// MustParse is like Parse but panics on error. Intended for fixed layouts.
func MustParse(layout ...string) *Map {
	m, _, err := Parse(layout)
	if err != nil {
		panic(err)
	}
	return m
}

// Rows returns the number of rows.
func (m *Map) Rows() int {
	return m.rows
}

// Cols returns the number of columns.
func (m *Map) Cols() int {
	return m.cols
}

// InBounds reports whether pos lies inside the grid.
func (m *Map) InBounds(pos core.Position) bool {
	return pos.Row >= 0 && pos.Row < m.rows && pos.Col >= 0 && pos.Col < m.cols
}

// Tile returns the tile at pos, or Wall when pos is out of bounds.
func (m *Map) Tile(pos core.Position) TileType {
	if !m.InBounds(pos) {
		return Wall
	}
	return m.tiles[pos.Row][pos.Col]
}

// IsWalkable reports whether the tile at pos is anything but Wall.
func (m *Map) IsWalkable(pos core.Position) bool {
	return m.Tile(pos) != Wall
}

// Positions returns every position holding tile t, in row-major order.
func (m *Map) Positions(t TileType) []core.Position {
	var out []core.Position
	for r, row := range m.tiles {
		for c, tile := range row {
			if tile == t {
				out = append(out, core.Pos(r, c))
			}
		}
	}
	return out
}

// Layout renders the map back to text rows.
func (m *Map) Layout() []string {
	lines := make([]string, m.rows)
	for r, row := range m.tiles {
		var sb strings.Builder
		for _, tile := range row {
			sb.WriteRune(tile.Rune())
		}
		lines[r] = sb.String()
	}
	return lines
}

// Validate checks that spawn is a walkable cell of m.
func (m *Map) Validate(spawn core.Position) error {
	if !m.InBounds(spawn) {
		return fmt.Errorf("tilemap: spawn %s is outside the %dx%d grid", spawn, m.rows, m.cols)
	}
	if m.Tile(spawn) != Path {
		return fmt.Errorf("tilemap: spawn %s is on %s", spawn, m.Tile(spawn))
	}
	return nil
}
