package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/foldspace/internal/config"
	"github.com/vovakirdan/foldspace/internal/level"
	"github.com/vovakirdan/foldspace/internal/platform/tui"
	"github.com/vovakirdan/foldspace/internal/storage"
)

var playCmd = &cobra.Command{
	Use:   "play <level>",
	Short: "Play a level",
	Long: `Play the given level. The argument is either a level file path or a
level ID from the levels directory.

Controls:
  Arrows/hjkl - Move fold cursor
  WASD        - Walk the player
  Enter/Space - Set anchor / execute fold
  Esc         - Cancel pending anchor
  U           - Undo last fold
  R           - Restart level
  Q/Ctrl+C    - Quit

Examples:
  foldspace play levels/campaign/01_first_fold.json
  foldspace play first_fold --levels ./levels`,
	Args: cobra.ExactArgs(1),
	Run:  runPlay,
}

func runPlay(cmd *cobra.Command, args []string) {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		fmt.Fprintln(os.Stderr, "Error: play requires an interactive terminal")
		os.Exit(1)
	}

	cfg, err := config.Load(flagConfig)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	lvl, err := resolveLevel(args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if report := level.Validate(lvl); !report.Valid() {
		fmt.Fprintf(os.Stderr, "Error: level %s is invalid:\n", lvl.ID)
		for _, e := range report.Errors {
			fmt.Fprintf(os.Stderr, "  - %s\n", e)
		}
		os.Exit(1)
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open sessions database: %v\n", err)
		// Continue without persistence - the game still works
		store = nil
	}

	runErr := tui.Run(lvl, cfg, store)

	if store != nil {
		store.Close()
	}
	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
}

// resolveLevel loads a level by file path, or by ID from the levels dir.
func resolveLevel(arg string) (*level.Level, error) {
	if _, err := os.Stat(arg); err == nil {
		return level.LoadFile(arg)
	}

	levels, err := level.NewLoader(flagLevelsDir).LoadAll()
	if err != nil {
		return nil, fmt.Errorf("cannot scan levels directory %s: %w", flagLevelsDir, err)
	}
	for _, lvl := range levels {
		if lvl.ID == arg {
			return lvl, nil
		}
	}
	return nil, fmt.Errorf("no level %q found (run 'foldspace levels')", arg)
}
