package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/foldspace/internal/config"
	"github.com/vovakirdan/foldspace/internal/fold"
	"github.com/vovakirdan/foldspace/internal/platform/tui"
	"github.com/vovakirdan/foldspace/internal/storage"
)

var replayCmd = &cobra.Command{
	Use:   "replay <session-id>",
	Short: "Replay a saved session",
	Long: `Replay every fold of a saved session against its level from scratch
and print the resulting grid. The session id comes from 'foldspace sessions'.

Examples:
  foldspace replay 2f3a0c1e-...
  foldspace replay 2f3a0c1e-... --levels ./levels`,
	Args: cobra.ExactArgs(1),
	Run:  runReplay,
}

func runReplay(cmd *cobra.Command, args []string) {
	sessionID := args[0]

	cfg, err := config.Load(flagConfig)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening sessions database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	levelID, playerStart, err := store.SessionLevel(sessionID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	steps, err := store.SessionSteps(sessionID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	lvl, err := resolveLevel(levelID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	engineCfg := fold.EngineConfig{
		AxisSnapDegrees:       cfg.Engine.AxisSnapDegrees,
		NearDegenerateDegrees: cfg.Engine.NearDegenerateDegrees,
	}
	player := fold.NewPlayer(playerStart)
	engine, err := fold.Replay(lvl.NewGrid(cfg.Grid.CellSize), player, engineCfg, steps)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Session:  %s\n", sessionID)
	fmt.Printf("Level:    %s (%s)\n", lvl.Name, lvl.ID)
	fmt.Printf("Folds:    %d\n", len(steps))
	fmt.Println()
	for i, st := range steps {
		fmt.Printf("  %2d. (%d,%d) -> (%d,%d)\n",
			i+1, st.Anchor1.X, st.Anchor1.Y, st.Anchor2.X, st.Anchor2.Y)
	}
	fmt.Println()

	pos := player.Coordinate()
	fmt.Println(tui.RenderGrid(engine.Grid(), pos, pos, nil, cfg.UI.ShowSeams))
	fmt.Println()
	fmt.Printf("Player at (%d,%d), %d cells remain, area %.2f\n",
		pos.X, pos.Y, engine.Grid().Len(), engine.Grid().TotalArea())
}
