package main

import (
	"github.com/spf13/cobra"

	"github.com/vovakirdan/spacewar/internal/config"
	"github.com/vovakirdan/spacewar/internal/platform/tui"
)

var (
	flagConfig     string
	flagDifficulty string
	flagNoAudio    bool
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play in the terminal",
	Long: `Start a game of spacewar in the terminal.

Controls:
  Arrows/WASD  - Move
  Space        - Fire
  P            - Pause
  R            - Restart (after game over)
  Ctrl+S       - Screenshot
  Q/Ctrl+C     - Quit

Difficulty options:
  easy   - Slower spawns and enemies
  normal - Default tier table
  hard   - Faster spawns and enemies
  fixed  - No progression, stays on the first tier

Examples:
  spacewar play
  spacewar play --difficulty easy
  spacewar play --config ./my-spacewar.yaml
  spacewar play --fps 30 --no-audio`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func init() {
	for _, c := range []*cobra.Command{playCmd, menuCmd, windowCmd} {
		c.Flags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
		c.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
		c.Flags().BoolVar(&flagNoAudio, "no-audio", false, "Disable sound")
	}
}

func runPlay(_ *cobra.Command, _ []string) {
	preset, err := config.ParsePreset(flagDifficulty)
	if err != nil {
		fail("%v", err)
	}

	game, err := gameFactory(flagConfig)(preset)
	if err != nil {
		fail("cannot load config: %v", err)
	}

	opts := tui.Options{Difficulty: string(preset), Screenshots: true}
	if !flagNoAudio {
		engine, player := startAudio()
		defer engine.Close()
		opts.Audio = player
	}

	store := openStore()
	if store != nil {
		defer store.Close()
		opts.Store = store
	}

	if err := tui.Run(game, runtimeConfig(), opts); err != nil {
		logger.Error("game stopped", "error", err)
	}
}
