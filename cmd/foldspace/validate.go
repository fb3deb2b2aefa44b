package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/foldspace/internal/level"
)

var validateCmd = &cobra.Command{
	Use:   "validate <dir|file>...",
	Short: "Validate level files",
	Long: `Validate the structure of one or more level files: JSON syntax,
required fields, grid bounds, player start position and goal presence.

Exits non-zero if any level is invalid.

Examples:
  foldspace validate levels/campaign
  foldspace validate levels/campaign/01_first_fold.json`,
	Args: cobra.MinimumNArgs(1),
	Run:  runValidate,
}

func runValidate(cmd *cobra.Command, args []string) {
	var paths []string
	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		if info.IsDir() {
			entries, globErr := collectLevelFiles(arg)
			if globErr != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", globErr)
				os.Exit(1)
			}
			paths = append(paths, entries...)
		} else {
			paths = append(paths, arg)
		}
	}

	if len(paths) == 0 {
		fmt.Fprintln(os.Stderr, "Error: no level files found")
		os.Exit(1)
	}

	fmt.Printf("Found %d level files\n\n", len(paths))

	valid, invalid, warnings := 0, 0, 0
	for _, path := range paths {
		fmt.Printf("Validating: %s\n", filepath.Base(path))
		fmt.Println(strings.Repeat("-", 60))

		lvl, err := level.LoadFile(path)
		if err != nil {
			fmt.Println("  Status: [INVALID]")
			fmt.Printf("  Errors:\n    - %v\n\n", err)
			invalid++
			continue
		}

		fmt.Printf("  ID: %s\n", lvl.ID)
		fmt.Printf("  Name: %s\n", lvl.Name)
		fmt.Printf("  Grid: %dx%d\n", lvl.Width, lvl.Height)
		fmt.Printf("  Difficulty: %d\n", lvl.Difficulty)

		report := level.Validate(lvl)
		if report.Valid() {
			fmt.Println("  Status: [VALID]")
			valid++
		} else {
			fmt.Println("  Status: [INVALID]")
			invalid++
		}
		if len(report.Errors) > 0 {
			fmt.Println("  Errors:")
			for _, e := range report.Errors {
				fmt.Printf("    - %s\n", e)
			}
		}
		if len(report.Warnings) > 0 {
			fmt.Println("  Warnings:")
			for _, w := range report.Warnings {
				fmt.Printf("    - %s\n", w)
			}
			warnings += len(report.Warnings)
		}
		fmt.Println()
	}

	fmt.Println(strings.Repeat("=", 60))
	fmt.Println("VALIDATION SUMMARY")
	fmt.Println(strings.Repeat("=", 60))
	fmt.Printf("Total levels: %d\n", len(paths))
	fmt.Printf("Valid levels: %d\n", valid)
	fmt.Printf("Invalid levels: %d\n", invalid)
	fmt.Printf("Total warnings: %d\n\n", warnings)

	if invalid > 0 {
		fmt.Println("Some levels have errors")
		os.Exit(1)
	}
	fmt.Println("All levels are valid!")
}

func collectLevelFiles(dir string) ([]string, error) {
	var paths []string
	err := filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		switch strings.ToLower(filepath.Ext(path)) {
		case ".json", ".yaml", ".yml":
			paths = append(paths, path)
		}
		return nil
	})
	return paths, err
}
