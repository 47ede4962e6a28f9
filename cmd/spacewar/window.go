package main

import (
	"github.com/spf13/cobra"

	"github.com/vovakirdan/spacewar/internal/config"
	"github.com/vovakirdan/spacewar/internal/platform/desktop"
)

var flagScale float64

var windowCmd = &cobra.Command{
	Use:   "window",
	Short: "Play in a desktop window",
	Long: `Open spacewar in a native window.

Controls:
  Arrows/WASD   - Move
  Space         - Fire
  Mouse/touch   - Drag the ship, fires automatically
  P             - Pause
  R/Enter/click - Restart (after game over)

Examples:
  spacewar window
  spacewar window --scale 2
  spacewar window --difficulty hard`,
	Args: cobra.NoArgs,
	Run:  runWindow,
}

func init() {
	windowCmd.Flags().Float64Var(&flagScale, "scale", 1.5, "Window scale over the 380x500 field")
}

func runWindow(_ *cobra.Command, _ []string) {
	preset, err := config.ParsePreset(flagDifficulty)
	if err != nil {
		fail("%v", err)
	}
	cfg, err := loadConfig(flagConfig, preset)
	if err != nil {
		fail("cannot load config: %v", err)
	}

	opts := desktop.Options{
		Difficulty: string(preset),
		Seed:       flagSeed,
		Logger:     logger.WithPrefix("session"),
		Scale:      flagScale,
	}
	if !flagNoAudio {
		engine, player := startAudio()
		defer engine.Close()
		opts.Audio = player
	}
	if store := openStore(); store != nil {
		defer store.Close()
		opts.Store = store
	}

	if err := desktop.Run(cfg, opts); err != nil {
		logger.Error("window closed", "error", err)
	}
}
