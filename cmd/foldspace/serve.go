package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/foldspace/internal/config"
	"github.com/vovakirdan/foldspace/internal/platform/tui"
)

var (
	serveAddress     string
	serveHostKey     string
	serveIdleTimeout time.Duration
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start SSH server for remote play",
	Long: `Start an SSH server so others can play over the network. Each
connection gets its own engine and session; grids are never shared.

Connect with:
  ssh -p 23235 <host>

Examples:
  foldspace serve
  foldspace serve --ssh :2222 --levels ./levels`,
	Run: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveAddress, "ssh", ":23235", "SSH listen address")
	serveCmd.Flags().StringVar(&serveHostKey, "host-key", "", "Path to SSH host key (auto-generated if empty)")
	serveCmd.Flags().DurationVar(&serveIdleTimeout, "idle-timeout", 30*time.Minute, "Idle connection timeout")
}

func runServe(cmd *cobra.Command, args []string) {
	appCfg, err := config.Load(flagConfig)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	server, err := tui.NewSSHServer(tui.SSHServerConfig{
		Address:     serveAddress,
		HostKeyPath: serveHostKey,
		DBPath:      flagDBPath,
		LevelsDir:   flagLevelsDir,
		IdleTimeout: serveIdleTimeout,
	}, appCfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating SSH server: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Foldspace SSH server listening on %s\n", server.Addr())
	fmt.Println("Press Ctrl+C to stop.")

	if err := server.ListenAndServe(); err != nil {
		fmt.Fprintf(os.Stderr, "Server error: %v\n", err)
		os.Exit(1)
	}
}
