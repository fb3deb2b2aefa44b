// foldspace is a grid puzzle about folding space: pick two anchors, the
// strip between them vanishes and the far side of the grid collapses onto
// the near side, merging cells across the seam.
//
// Usage:
//
//	foldspace play <level>        - Play a level interactively
//	foldspace levels              - List available levels
//	foldspace validate <dir|file> - Validate level files
//	foldspace replay <session>    - Replay a saved session
//	foldspace sessions            - List saved sessions
//	foldspace serve               - Start SSH server for remote play
//
// Global flags:
//
//	--levels <dir>  - Levels directory (default: ./levels)
//	--db <path>     - Sessions database path (default: ~/.foldspace/sessions.db)
//	--config <path> - Custom config YAML
//	--verbose       - Enable debug logging
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/foldspace/internal/fold"
)

var (
	// Global flags
	flagLevelsDir string
	flagDBPath    string
	flagConfig    string
	flagVerbose   bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "foldspace",
	Short: "Foldspace - fold the grid to reach the goal",
	Long: `Foldspace is a terminal puzzle game built on a space-folding engine:
select two anchor cells and the space between them is removed, collapsing
the grid so the anchors coincide. Cells crossed by a cut line split into
polygon fragments; cells landing on each other merge. Every fold can be
undone as long as no later fold touched its cells.

Available commands:
  play      - Play a level interactively
  levels    - List available levels
  validate  - Validate level files
  replay    - Replay a saved session against its level
  sessions  - List saved sessions
  serve     - Start SSH server for remote play

Examples:
  foldspace play levels/campaign/01_first_fold.json
  foldspace validate levels/campaign
  foldspace replay 2f3a...-uuid
  foldspace serve --ssh :23235`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logger := log.NewWithOptions(os.Stderr, log.Options{
			ReportTimestamp: true,
			Prefix:          "foldspace",
		})
		if flagVerbose {
			logger.SetLevel(log.DebugLevel)
		} else {
			logger.SetLevel(log.WarnLevel)
		}
		fold.SetLogger(logger)
	},
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().StringVar(&flagLevelsDir, "levels", "levels", "Path to levels directory")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.foldspace/sessions.db", "Path to sessions database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom config YAML")
	rootCmd.PersistentFlags().BoolVar(&flagVerbose, "verbose", false, "Enable debug logging")

	// Add subcommands
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(levelsCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(replayCmd)
	rootCmd.AddCommand(sessionsCmd)
	rootCmd.AddCommand(serveCmd)
}
