package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/foldspace/internal/storage"
)

var sessionsLimit int

var sessionsCmd = &cobra.Command{
	Use:   "sessions",
	Short: "List saved sessions",
	Long:  `Shows the most recent play sessions stored in the sessions database.`,
	Run:   runSessions,
}

func init() {
	sessionsCmd.Flags().IntVarP(&sessionsLimit, "limit", "n", 10, "Number of sessions to show")
}

func runSessions(cmd *cobra.Command, args []string) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening sessions database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	entries, err := store.RecentSessions(sessionsLimit)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if len(entries) == 0 {
		fmt.Println("No saved sessions yet. Play a level first!")
		return
	}

	fmt.Println("Recent sessions:")
	fmt.Println()
	fmt.Printf("  %-36s  %-20s  %-5s  %s\n", "Session", "Level", "Folds", "Started")
	fmt.Printf("  %-36s  %-20s  %-5s  %s\n", "-------", "-----", "-----", "-------")
	for _, e := range entries {
		fmt.Printf("  %-36s  %-20s  %-5d  %s\n",
			e.ID, e.LevelID, e.Folds, e.CreatedAt.Format("2006-01-02 15:04"))
	}

	fmt.Println()
	fmt.Println("Run 'foldspace replay <session>' to replay one.")
}
