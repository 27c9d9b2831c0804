// gridstate runs grid arcade sessions driven by a game-phase state machine.
//
// Usage:
//
//	gridstate list              - List modes and levels
//	gridstate play [mode]       - Play a mode (menu when no mode is given)
//	gridstate sim               - Replay an event script headlessly
//	gridstate map [level]       - Show a level and query walkability
//	gridstate history [id]      - Show journaled sessions
//	gridstate serve             - Start SSH server for remote play
//
// Global flags:
//
//	--fps <rate>         - Set tick rate (default from config: 60)
//	--config <path>      - Use a custom config file
//	--db <path>          - Set journal database path
//	--log-level <level>  - debug, info, warn or error
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	// Import modes to register them
	_ "github.com/vovakirdan/gridstate/internal/modes/classic"
	_ "github.com/vovakirdan/gridstate/internal/modes/mousetrap"
)

var (
	// Global flags
	flagFPS      int
	flagConfig   string
	flagDBPath   string
	flagLogLevel string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "gridstate",
	Short: "gridstate - grid arcade sessions in your terminal",
	Long: `gridstate runs maze sessions whose game phases (LevelInit, Playing,
Paused, LifeLost, GameOver, ...) are driven by a small state machine.

Available commands:
  list     - Show modes and levels
  play     - Play a mode
  sim      - Replay machine events without a terminal UI
  map      - Inspect a level and query walkable tiles
  history  - Show journaled sessions and transitions
  serve    - Start SSH server for remote play

Examples:
  gridstate list
  gridstate play classic --difficulty easy
  gridstate sim --events u,p,u,c,u
  gridstate map box --at 1,1 --at 0,0
  gridstate serve --ssh :2222`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 0, "Tick rate (frames per second, 0 = from config)")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "", "Path to journal database (default from config)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(simCmd)
	rootCmd.AddCommand(mapCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(serveCmd)
}
