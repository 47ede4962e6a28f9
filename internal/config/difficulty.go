package config

import (
	"fmt"
	"strings"
)

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// presetScale is how a preset stretches the tier table.
type presetScale struct {
	interval float64
	speed    float64
}

var presetScales = map[DifficultyPreset]presetScale{
	DifficultyEasy:   {interval: 1.25, speed: 0.85},
	DifficultyNormal: {interval: 1.0, speed: 1.0},
	DifficultyHard:   {interval: 0.8, speed: 1.15},
	DifficultyFixed:  {interval: 1.0, speed: 1.0},
}

// ParsePreset converts a flag value into a preset.
// An empty string selects normal.
func ParsePreset(s string) (DifficultyPreset, error) {
	if s == "" {
		return DifficultyNormal, nil
	}
	p := DifficultyPreset(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := presetScales[p]; !ok {
		return "", fmt.Errorf("config: unknown difficulty %q (want easy, normal, hard or fixed)", s)
	}
	return p, nil
}

// IsFixedPreset returns true if the preset disables progression.
func IsFixedPreset(preset DifficultyPreset) bool {
	return preset == DifficultyFixed
}

// ApplySpacewarPreset modifies the difficulty table based on a preset.
// Fixed keeps only the first tier so the game never escalates.
func ApplySpacewarPreset(cfg *SpacewarConfig, preset DifficultyPreset) {
	scale, ok := presetScales[preset]
	if !ok {
		return
	}

	tiers := make([]TierConfig, 0, len(cfg.Difficulty.Tiers))
	for _, t := range cfg.Difficulty.Tiers {
		t.Roster = append([]string(nil), t.Roster...)
		t.SpawnIntervalMs *= scale.interval
		t.SpeedMultiplier *= scale.speed
		tiers = append(tiers, t)
	}
	if IsFixedPreset(preset) && len(tiers) > 1 {
		tiers = tiers[:1]
	}
	cfg.Difficulty.Tiers = tiers
}
