package session

import (
	"fmt"

	"github.com/vovakirdan/gridstate/internal/core"
	"github.com/vovakirdan/gridstate/internal/fsm"
	"github.com/vovakirdan/gridstate/internal/tilemap"
)

const (
	hudHeight  = 2
	playerRune = '@'
)

// banners are shown under the map for states the player should notice.
var banners = map[fsm.State]string{
	fsm.LevelInit:     "GET READY",
	fsm.Paused:        "PAUSED - press P to resume",
	fsm.LifeLost:      "OUCH! Life lost",
	fsm.LevelComplete: "LEVEL COMPLETE",
	fsm.GameOver:      "GAME OVER - press R to restart",
}

// Render draws the HUD and its stats row, the map, the avatar and any state banner.
// The map is centered horizontally below the HUD.
func (s *Session) Render(dst *core.Screen) {
	state := s.machine.State()

	hud := fmt.Sprintf(" %s  |  %s  |  Lives: %d  |  Tick: %d",
		s.Title(), state, s.machine.Lives(), s.machine.Ticks())
	dst.DrawText(0, 0, hud, core.CellHUD)
	dst.DrawText(0, 1, s.statsLine(), core.CellHUD)

	m := s.level.Map
	if dst.Width() < m.Cols() || dst.Height() < m.Rows()+hudHeight {
		dst.DrawTextCentered(dst.Height()/2, "Terminal too small", core.CellBanner)
		return
	}

	offsetX := (dst.Width() - m.Cols()) / 2
	for r := 0; r < m.Rows(); r++ {
		for c := 0; c < m.Cols(); c++ {
			tile := m.Tile(core.Pos(r, c))
			dst.Set(offsetX+c, hudHeight+r, tile.Rune(), cellKind(tile))
		}
	}
	if state != fsm.GameOver {
		dst.Set(offsetX+s.player.Col, hudHeight+s.player.Row, playerRune, core.CellPlayer)
	}

	if banner, ok := banners[state]; ok {
		dst.DrawTextCentered(hudHeight+m.Rows()+1, banner, core.CellBanner)
	}
}

// statsLine is the second HUD row.
func (s *Session) statsLine() string {
	st := s.Stats()
	return fmt.Sprintf(" Pos: %s  |  Moves: %d  |  Respawns: %d", s.Player(), st.Moves, st.Respawns)
}

func cellKind(t tilemap.TileType) core.CellKind {
	switch t {
	case tilemap.Path:
		return core.CellPath
	case tilemap.Trap:
		return core.CellTrap
	default:
		return core.CellWall
	}
}
