package config

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"gopkg.in/yaml.v3"
)

const configFileName = "spacewar.yaml"

// LoadSpacewar loads the spacewar configuration.
// Search order: customPath -> ~/.spacewar/configs/spacewar.yaml -> ./configs/spacewar.yaml -> embedded default.
// Files may be partial; missing keys keep their default values.
func LoadSpacewar(customPath string) (SpacewarConfig, error) {
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return SpacewarConfig{}, fmt.Errorf("config: cannot read %s: %w", customPath, err)
		}
		cfg, err := parse(data)
		if err != nil {
			return SpacewarConfig{}, fmt.Errorf("config: cannot parse %s: %w", customPath, err)
		}
		if err := cfg.Validate(); err != nil {
			return SpacewarConfig{}, err
		}
		return cfg, nil
	}

	if userCfgPath := userConfigPath(configFileName); userCfgPath != "" {
		if cfg, ok := tryLoad(userCfgPath); ok {
			return cfg, nil
		}
	}

	if cfg, ok := tryLoad(filepath.Join("configs", configFileName)); ok {
		return cfg, nil
	}

	cfg, err := parse(defaultSpacewarYAML)
	if err != nil || cfg.Validate() != nil {
		return DefaultSpacewarConfig(), nil
	}
	return cfg, nil
}

// tryLoad reads an optional config file. Broken files are skipped.
func tryLoad(path string) (SpacewarConfig, bool) {
	data, err := os.ReadFile(path)
	if err != nil {
		return SpacewarConfig{}, false
	}
	cfg, err := parse(data)
	if err != nil || cfg.Validate() != nil {
		return SpacewarConfig{}, false
	}
	return cfg, true
}

func parse(data []byte) (SpacewarConfig, error) {
	cfg := DefaultSpacewarConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return SpacewarConfig{}, err
	}
	return cfg, nil
}

// UserConfigPath returns where LoadSpacewar looks for the user's config file,
// or empty if the home directory is unknown.
func UserConfigPath() string {
	return userConfigPath(configFileName)
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".spacewar", "configs", filename)
}

// Validate checks the values the simulation cannot fall back from.
func (c SpacewarConfig) Validate() error {
	if c.Viewport.Width <= 0 || c.Viewport.Height <= 0 {
		return fmt.Errorf("config: viewport must be positive, got %vx%v", c.Viewport.Width, c.Viewport.Height)
	}
	if len(c.Difficulty.Tiers) == 0 {
		return fmt.Errorf("config: difficulty.tiers must not be empty")
	}
	for i, t := range c.Difficulty.Tiers {
		if t.SpawnIntervalMs <= 0 {
			return fmt.Errorf("config: tier %d: spawn_interval_ms must be positive", i)
		}
		if len(t.Roster) == 0 {
			return fmt.Errorf("config: tier %d: roster must not be empty", i)
		}
		if i > 0 && t.GameTimeMs < c.Difficulty.Tiers[i-1].GameTimeMs {
			return fmt.Errorf("config: tier %d: game_time_ms %v is before tier %d", i, t.GameTimeMs, i-1)
		}
	}
	if c.Simulation.FrameMs <= 0 {
		return fmt.Errorf("config: simulation.frame_ms must be positive")
	}
	if c.Simulation.MaxFramesPerTick <= 0 {
		return fmt.Errorf("config: simulation.max_frames_per_tick must be positive")
	}
	if c.Phases.NormalMs <= 0 || c.Phases.RushMs <= 0 {
		return fmt.Errorf("config: phase durations must be positive")
	}
	for _, name := range c.Formation.Layouts {
		if !slices.Contains(FormationLayouts, name) {
			return fmt.Errorf("config: formation: unknown layout %q", name)
		}
	}
	return nil
}
