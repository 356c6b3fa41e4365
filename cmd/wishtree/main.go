package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/lixenwraith/wishtree/config"
)

var (
	configPath string
	debugLog   bool
	seed       int64
)

var rootCmd = &cobra.Command{
	Use:   "wishtree",
	Short: "Interactive holiday tree scene",
	Long: `wishtree - an interactive 3D holiday tree in the terminal

Photos orbit the tree, hand gestures switch between tree and galaxy
layouts, and a wish launches a glowing trail that winds down the tree.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", config.DefaultPath, "Tuning file (TOML)")
	rootCmd.PersistentFlags().BoolVar(&debugLog, "debug", false, "Write logs to logs/wishtree.log")
	rootCmd.PersistentFlags().Int64Var(&seed, "seed", 0, "Layout seed, 0 keeps the tuning value")
}

// loadTuning resolves, loads and applies command-line overrides
func loadTuning() (config.Tuning, string, error) {
	path, err := config.ResolvePath(configPath)
	if err != nil {
		return config.Default(), "", err
	}
	t, err := config.Load(path)
	if err != nil {
		// Malformed files fall back to defaults
		fmt.Fprintf(os.Stderr, "wishtree: %v (using defaults)\n", err)
	}
	if seed != 0 {
		t.Scene.Seed = seed
	}
	return t, path, nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
