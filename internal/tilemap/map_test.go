package tilemap

import (
	"errors"
	"testing"

	"github.com/vovakirdan/gridstate/internal/core"
)

func boxGrid() [][]TileType {
	return [][]TileType{
		{Wall, Wall, Wall},
		{Wall, Path, Wall},
		{Wall, Wall, Wall},
	}
}

func TestIsWalkableBoxScenario(t *testing.T) {
	m, err := New(boxGrid())
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}

	tests := []struct {
		pos      core.Position
		expected bool
	}{
		{core.Pos(1, 1), true},
		{core.Pos(0, 0), false},
		{core.Pos(5, 5), false},
	}

	for _, tc := range tests {
		t.Run(tc.pos.String(), func(t *testing.T) {
			if got := m.IsWalkable(tc.pos); got != tc.expected {
				t.Errorf("IsWalkable(%s) = %v, expected %v", tc.pos, got, tc.expected)
			}
		})
	}
}

func TestOutOfBoundsIsWall(t *testing.T) {
	grids := map[string][][]TileType{
		"empty":    nil,
		"no cols":  {{}, {}},
		"all path": {{Path, Path}, {Path, Path}, {Path, Path}},
		"box":      boxGrid(),
	}

	for name, grid := range grids {
		t.Run(name, func(t *testing.T) {
			m, err := New(grid)
			if err != nil {
				t.Fatalf("New() failed: %v", err)
			}

			for r := -2; r < m.Rows()+2; r++ {
				for c := -2; c < m.Cols()+2; c++ {
					pos := core.Pos(r, c)
					if m.InBounds(pos) {
						continue
					}
					if m.Tile(pos) != Wall {
						t.Errorf("Tile(%s) = %s, expected Wall", pos, m.Tile(pos))
					}
					if m.IsWalkable(pos) {
						t.Errorf("IsWalkable(%s) = true, expected false", pos)
					}
				}
			}
		})
	}
}

func TestInBounds(t *testing.T) {
	m, err := New([][]TileType{{Path, Path, Path}, {Path, Path, Path}})
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}

	tests := []struct {
		name     string
		pos      core.Position
		expected bool
	}{
		{"origin", core.Pos(0, 0), true},
		{"last cell", core.Pos(1, 2), true},
		{"row past end", core.Pos(2, 0), false},
		{"col past end", core.Pos(0, 3), false},
		{"negative row", core.Pos(-1, 0), false},
		{"negative col", core.Pos(0, -1), false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := m.InBounds(tc.pos); got != tc.expected {
				t.Errorf("InBounds(%s) = %v, expected %v", tc.pos, got, tc.expected)
			}
		})
	}
}

func TestNewRejectsRaggedGrid(t *testing.T) {
	_, err := New([][]TileType{
		{Wall, Wall, Wall},
		{Wall, Path},
		{Wall, Wall, Wall},
	})
	if err == nil {
		t.Fatal("New() succeeded, expected error")
	}
	if !errors.Is(err, ErrNotRectangular) {
		t.Errorf("error %v does not match ErrNotRectangular", err)
	}

	var ragged *RaggedRowError
	if !errors.As(err, &ragged) {
		t.Fatalf("error %T is not *RaggedRowError", err)
	}
	if ragged.Row != 1 || ragged.Got != 2 || ragged.Want != 3 {
		t.Errorf("RaggedRowError = %+v, expected row 1 with 2 of 3 columns", ragged)
	}
}

func TestNewCopiesGrid(t *testing.T) {
	grid := boxGrid()
	m, err := New(grid)
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}

	grid[1][1] = Wall

	if !m.IsWalkable(core.Pos(1, 1)) {
		t.Error("mutating the source grid changed the map")
	}
}

func TestTrapIsWalkable(t *testing.T) {
	m := MustParse(
		"#####",
		"#.^.#",
		"#####",
	)

	if m.Tile(core.Pos(1, 2)) != Trap {
		t.Errorf("Tile(1,2) = %s, expected Trap", m.Tile(core.Pos(1, 2)))
	}
	if !m.IsWalkable(core.Pos(1, 2)) {
		t.Error("traps should be walkable")
	}
}

func TestParse(t *testing.T) {
	m, spawn, err := Parse([]string{
		"#####",
		"#..S#",
		"#^..#",
		"#####",
	})
	if err != nil {
		t.Fatalf("Parse() failed: %v", err)
	}

	if m.Rows() != 4 || m.Cols() != 5 {
		t.Errorf("dimensions = %dx%d, expected 4x5", m.Rows(), m.Cols())
	}
	if spawn != core.Pos(1, 3) {
		t.Errorf("spawn = %s, expected (1,3)", spawn)
	}
	if m.Tile(spawn) != Path {
		t.Errorf("spawn tile = %s, expected Path", m.Tile(spawn))
	}
	if traps := m.Positions(Trap); len(traps) != 1 || traps[0] != core.Pos(2, 1) {
		t.Errorf("Positions(Trap) = %v, expected [(2,1)]", traps)
	}

	want := []string{"#####", "#...#", "#^..#", "#####"}
	got := m.Layout()
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Layout()[%d] = %q, expected %q", i, got[i], want[i])
		}
	}
}

func TestParseDefaultSpawn(t *testing.T) {
	_, spawn, err := Parse([]string{"###", "#.#", "###"})
	if err != nil {
		t.Fatalf("Parse() failed: %v", err)
	}
	if spawn != core.Pos(1, 1) {
		t.Errorf("spawn = %s, expected first path tile (1,1)", spawn)
	}
}

func TestParseErrors(t *testing.T) {
	_, _, err := Parse([]string{"###", "#x#", "###"})
	var unknown *UnknownTileError
	if !errors.As(err, &unknown) {
		t.Fatalf("Parse() error = %v, expected *UnknownTileError", err)
	}
	if unknown.Row != 1 || unknown.Col != 1 || unknown.Rune != 'x' {
		t.Errorf("UnknownTileError = %+v, expected 'x' at (1,1)", unknown)
	}

	_, _, err = Parse([]string{"###", "#.", "###"})
	if !errors.Is(err, ErrNotRectangular) {
		t.Errorf("Parse() error = %v, expected ErrNotRectangular", err)
	}
}

func TestValidateSpawn(t *testing.T) {
	m := MustParse("###", "#.#", "#^#", "###")

	if err := m.Validate(core.Pos(1, 1)); err != nil {
		t.Errorf("Validate(1,1) failed: %v", err)
	}
	if err := m.Validate(core.Pos(0, 0)); err == nil {
		t.Error("Validate on a wall should fail")
	}
	if err := m.Validate(core.Pos(2, 1)); err == nil {
		t.Error("Validate on a trap should fail")
	}
	if err := m.Validate(core.Pos(9, 9)); err == nil {
		t.Error("Validate out of bounds should fail")
	}
}
