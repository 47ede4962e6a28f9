package main

import (
	"fmt"
	"os"

	"golang.org/x/term"

	"github.com/vovakirdan/spacewar/internal/audio"
	"github.com/vovakirdan/spacewar/internal/config"
	"github.com/vovakirdan/spacewar/internal/core"
	"github.com/vovakirdan/spacewar/internal/games/spacewar"
	"github.com/vovakirdan/spacewar/internal/platform/tui"
	"github.com/vovakirdan/spacewar/internal/storage"
)

// loadConfig reads the game config and applies a difficulty preset.
func loadConfig(path string, preset config.DifficultyPreset) (config.SpacewarConfig, error) {
	cfg, err := config.LoadSpacewar(path)
	if err != nil {
		return cfg, err
	}
	config.ApplySpacewarPreset(&cfg, preset)
	return cfg, nil
}

// gameFactory builds terminal games from the config at path.
func gameFactory(path string) tui.GameFactory {
	return func(preset config.DifficultyPreset) (tui.Game, error) {
		cfg, err := loadConfig(path, preset)
		if err != nil {
			return nil, err
		}
		return spacewar.New(cfg, logger.WithPrefix("session")), nil
	}
}

// runtimeConfig sizes the screen from the controlling terminal.
func runtimeConfig() core.RuntimeConfig {
	cfg := core.DefaultConfig()
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		cfg.ScreenW = w
		cfg.ScreenH = h
	}
	cfg.TickRate = flagFPS
	cfg.Seed = flagSeed
	return cfg
}

// openStore opens the score database. Failures are logged and the game
// continues without persistence.
func openStore() *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open scores database", "error", err)
		return nil
	}
	return store
}

// startAudio brings up the audio engine. It always returns a usable engine;
// without a backend it stays silent.
func startAudio() (*audio.Engine, *audio.Player) {
	engine := audio.NewEngine(audio.LoadConfig(), logger.WithPrefix("audio"))
	if err := engine.Start(); err != nil {
		logger.Warn("audio disabled", "error", err)
	}
	if backend := engine.Backend(); backend != "" {
		logger.Debug("audio backend", "name", backend)
	}
	return engine, audio.NewPlayer(engine)
}

func fail(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}
