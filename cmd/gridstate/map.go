package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/gridstate/internal/core"
	"github.com/vovakirdan/gridstate/internal/levels"
	"github.com/vovakirdan/gridstate/internal/tilemap"
)

var (
	flagAt      []string
	flagMapYAML bool
)

var mapCmd = &cobra.Command{
	Use:   "map [level]",
	Short: "Show a level and query walkable tiles",
	Long: `Print a level's layout and answer walkability queries.
Positions outside the grid are reported as not walkable.

Examples:
  gridstate map
  gridstate map box --at 1,1 --at 0,0 --at 5,5
  gridstate map ./my-level.yaml --at "(2,3)"
  gridstate map maze --yaml > my-maze.yaml`,
	Args: cobra.MaximumNArgs(1),
	Run:  runMap,
}

func init() {
	mapCmd.Flags().StringArrayVar(&flagAt, "at", []string{"1,1", "0,0", "5,5"}, "Position row,col to query (repeatable)")
	mapCmd.Flags().BoolVar(&flagMapYAML, "yaml", false, "Print the level as a YAML level file and exit")
}

func runMap(_ *cobra.Command, args []string) {
	ref := "box"
	if len(args) == 1 {
		ref = args[0]
	}

	level, err := levels.Resolve(ref)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if flagMapYAML {
		data, err := levels.MarshalYAML(level)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		os.Stdout.Write(data)
		return
	}

	fmt.Printf("%s (%s) %dx%d, spawn %s\n", level.Name, level.ID, level.Map.Cols(), level.Map.Rows(), level.Spawn)
	fmt.Println()
	for _, line := range level.Map.Layout() {
		fmt.Printf("  %s\n", line)
	}
	fmt.Println()

	for _, raw := range flagAt {
		pos, err := core.ParsePosition(raw)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		tile := "out of bounds"
		if level.Map.InBounds(pos) {
			tile = level.Map.Tile(pos).String()
		}
		fmt.Printf("  walkable%s = %t  (%s)\n", pos, level.Map.IsWalkable(pos), tile)
	}

	if traps := level.Map.Positions(tilemap.Trap); len(traps) > 0 {
		fmt.Println()
		fmt.Printf("  traps: %v\n", traps)
	}
}
