package config

import (
	_ "embed"
)

//go:embed defaults/spacewar.yaml
var defaultSpacewarYAML []byte

// DefaultSpacewarConfig returns the hardcoded spacewar configuration.
// It mirrors defaults/spacewar.yaml and is used when the embedded file cannot be parsed.
func DefaultSpacewarConfig() SpacewarConfig {
	return SpacewarConfig{
		Viewport: ViewportConfig{Width: 380, Height: 500},
		Player: PlayerConfig{
			Width:   32,
			Height:  32,
			Speed:   5,
			SpawnDY: 50,
		},
		Bullet: BulletConfig{
			Width:   8,
			Height:  8,
			Speed:   8,
			OffsetX: 12,
		},
		Enemies: EnemiesConfig{
			Basic:   EnemyKindConfig{Width: 32, Height: 32, HP: 1, Score: 10, SpeedFactor: 1.0},
			Fast:    EnemyKindConfig{Width: 32, Height: 32, HP: 1, Score: 30, SpeedFactor: 1.3},
			Armored: EnemyKindConfig{Width: 32, Height: 32, HP: 3, Score: 30, SpeedFactor: 0.8},
			FastMotion: FastMotionConfig{
				HorizontalFactor:  0.5,
				OscillationChance: 0.5,
				AmplitudeMin:      10,
				AmplitudeMax:      25,
				OscSpeedMin:       0.01,
				OscSpeedMax:       0.03,
				TimeOffsetMax:     100,
			},
		},
		Explosion: ExplosionConfig{Radius: 20, Frames: 20},
		Phases: PhasesConfig{
			NormalMs:            20000,
			RushMs:              15000,
			WarningPeriodMs:     200,
			RushIntervalFactor:  0.7,
			RushSpecialFactor:   1.5,
			RushSpawnSpeedBoost: 1.5,
		},
		Formation: FormationConfig{
			EntryLine:     100,
			SpeedFactor:   0.5,
			SpecialChance: 0.3,
			Layouts:       []string{"triangle", "grid", "v-shape", "wave"},
		},
		Difficulty: DifficultyConfig{
			Tiers: []TierConfig{
				{GameTimeMs: 0, SpawnIntervalMs: 1500, Roster: []string{"basic"}, SpeedMultiplier: 2.9, SpecialChance: 0.3},
				{GameTimeMs: 30000, SpawnIntervalMs: 1300, Roster: []string{"basic", "fast"}, SpeedMultiplier: 3.4, SpecialChance: 0.3},
				{GameTimeMs: 60000, SpawnIntervalMs: 1100, Roster: []string{"basic", "fast", "armored"}, SpeedMultiplier: 4.2, SpecialChance: 0.3},
				{GameTimeMs: 120000, SpawnIntervalMs: 900, Roster: []string{"basic", "fast", "armored"}, SpeedMultiplier: 5.1, SpecialChance: 0.3},
			},
			CoefficientPeriodMs: 60000,
		},
		Simulation: SimulationConfig{
			FrameMs:          1000.0 / 60.0,
			MaxFramesPerTick: 4,
		},
		Ambience: AmbienceConfig{Stars: 100, ColoredChance: 0.1},
		Fire:     FireConfig{TouchIntervalMs: 300},
	}
}

// GetDefaultYAML returns the embedded default YAML for spacewar.
func GetDefaultYAML() []byte {
	return defaultSpacewarYAML
}
