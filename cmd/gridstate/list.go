package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/gridstate/internal/levels"
	"github.com/vovakirdan/gridstate/internal/registry"
)

var flagLevelsDir string

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List modes and levels",
	Long:  `Shows the registered modes and the available levels.`,
	Run:   runList,
}

func init() {
	listCmd.Flags().StringVar(&flagLevelsDir, "levels", "", "Directory of level YAML files (default: built-in levels)")
}

func runList(_ *cobra.Command, _ []string) {
	modes := registry.List()

	fmt.Println("Modes:")
	fmt.Println()
	if len(modes) == 0 {
		fmt.Println("  No modes available.")
	} else {
		maxIDLen := 2
		for _, m := range modes {
			maxIDLen = max(maxIDLen, len(m.ID))
		}
		fmt.Printf("  %-*s  %-10s  %-17s  %-5s  %-8s  %s\n", maxIDLen, "ID", "Variant", "Policy", "Lives", "Level", "Title")
		fmt.Printf("  %-*s  %-10s  %-17s  %-5s  %-8s  %s\n", maxIDLen, "--", "-------", "------", "-----", "-----", "-----")
		for _, m := range modes {
			fmt.Printf("  %-*s  %-10s  %-17s  %-5d  %-8s  %s\n", maxIDLen, m.ID, m.Variant, m.Policy, m.Lives, m.Level, m.Title)
		}
	}

	all, err := levels.NewLoader(flagLevelsDir).LoadAll()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading levels: %v\n", err)
		os.Exit(1)
	}

	fmt.Println()
	fmt.Println("Levels:")
	fmt.Println()
	for _, l := range all {
		fmt.Printf("  %-8s  %-12s  %dx%d  spawn %s\n", l.ID, l.Name, l.Map.Cols(), l.Map.Rows(), l.Spawn)
	}

	fmt.Println()
	fmt.Println("Run 'gridstate play <mode> --level <level>' to play.")
}
