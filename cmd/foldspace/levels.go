package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/foldspace/internal/level"
)

var levelsCmd = &cobra.Command{
	Use:   "levels",
	Short: "List available levels",
	Long:  `Shows every level found in the levels directory.`,
	Run:   runLevels,
}

func runLevels(cmd *cobra.Command, args []string) {
	levels, err := level.NewLoader(flagLevelsDir).LoadAll()
	if err != nil {
		fmt.Printf("Error scanning %s: %v\n", flagLevelsDir, err)
		return
	}

	if len(levels) == 0 {
		fmt.Printf("No levels found in %s.\n", flagLevelsDir)
		return
	}

	fmt.Println("Available levels:")
	fmt.Println()

	maxIDLen := 2 // "ID" header
	for _, l := range levels {
		if len(l.ID) > maxIDLen {
			maxIDLen = len(l.ID)
		}
	}

	fmt.Printf("  %-*s  %-20s  %-7s  %s\n", maxIDLen, "ID", "Name", "Grid", "Difficulty")
	fmt.Printf("  %-*s  %-20s  %-7s  %s\n", maxIDLen, "--", "----", "----", "----------")
	for _, l := range levels {
		fmt.Printf("  %-*s  %-20s  %dx%d      %d\n", maxIDLen, l.ID, l.Name, l.Width, l.Height, l.Difficulty)
	}

	fmt.Println()
	fmt.Println("Run 'foldspace play <id>' to play a level.")
}
