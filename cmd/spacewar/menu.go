package main

import (
	"github.com/spf13/cobra"

	"github.com/vovakirdan/spacewar/internal/config"
	"github.com/vovakirdan/spacewar/internal/platform/tui"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start spacewar with a menu",
	Long: `Start spacewar in interactive menu mode.

Pick a difficulty with Left/Right, start a game, browse the scoreboard
or read the controls. After a game you return to the menu.

Controls:
  Up/Down/j/k      - Navigate menu
  Left/Right/h/l   - Change difficulty
  Enter/Space      - Select
  Q                - Quit

Examples:
  spacewar menu
  spacewar menu --fps 30
  spacewar menu --db ./scores.db`,
	Args: cobra.NoArgs,
	Run:  runMenu,
}

func runMenu(_ *cobra.Command, _ []string) {
	preset, err := config.ParsePreset(flagDifficulty)
	if err != nil {
		fail("%v", err)
	}

	opts := tui.Options{Difficulty: string(preset), Screenshots: true}
	if !flagNoAudio {
		engine, player := startAudio()
		defer engine.Close()
		opts.Audio = player
	}

	var store tui.Store
	if s := openStore(); s != nil {
		defer s.Close()
		store = s
	}

	if err := tui.RunSession(store, gameFactory(flagConfig), runtimeConfig(), opts); err != nil {
		logger.Error("menu stopped", "error", err)
	}
}
