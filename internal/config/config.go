// Package config provides YAML-based game configuration loading and
// difficulty presets for spacewar.
package config

// SpacewarConfig contains all tunables of the simulation.
// Distances are viewport pixels, speeds are pixels per 60 Hz frame and
// durations are milliseconds.
type SpacewarConfig struct {
	Viewport   ViewportConfig   `yaml:"viewport"`
	Player     PlayerConfig     `yaml:"player"`
	Bullet     BulletConfig     `yaml:"bullet"`
	Enemies    EnemiesConfig    `yaml:"enemies"`
	Explosion  ExplosionConfig  `yaml:"explosion"`
	Phases     PhasesConfig     `yaml:"phases"`
	Formation  FormationConfig  `yaml:"formation"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
	Simulation SimulationConfig `yaml:"simulation"`
	Ambience   AmbienceConfig   `yaml:"ambience"`
	Fire       FireConfig       `yaml:"fire"`
}

// ViewportConfig is the fixed playfield size.
type ViewportConfig struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// PlayerConfig defines the player's ship.
type PlayerConfig struct {
	Width   float64 `yaml:"width"`
	Height  float64 `yaml:"height"`
	Speed   float64 `yaml:"speed"`
	SpawnDY float64 `yaml:"spawn_dy"` // Distance of the spawn point above the bottom edge
}

// BulletConfig defines player bullets.
type BulletConfig struct {
	Width   float64 `yaml:"width"`
	Height  float64 `yaml:"height"`
	Speed   float64 `yaml:"speed"`
	OffsetX float64 `yaml:"offset_x"` // Horizontal offset from the player's left edge
}

// EnemyKindConfig holds per-kind enemy stats.
type EnemyKindConfig struct {
	Width       float64 `yaml:"width"`
	Height      float64 `yaml:"height"`
	HP          int     `yaml:"hp"`
	Score       int     `yaml:"score"`
	SpeedFactor float64 `yaml:"speed_factor"`
}

// FastMotionConfig holds the random ranges fast enemies draw from at spawn.
type FastMotionConfig struct {
	HorizontalFactor  float64 `yaml:"horizontal_factor"`
	OscillationChance float64 `yaml:"oscillation_chance"`
	AmplitudeMin      float64 `yaml:"amplitude_min"`
	AmplitudeMax      float64 `yaml:"amplitude_max"`
	OscSpeedMin       float64 `yaml:"osc_speed_min"`
	OscSpeedMax       float64 `yaml:"osc_speed_max"`
	TimeOffsetMax     float64 `yaml:"time_offset_max"`
}

// EnemiesConfig groups the enemy kinds.
type EnemiesConfig struct {
	Basic      EnemyKindConfig  `yaml:"basic"`
	Fast       EnemyKindConfig  `yaml:"fast"`
	Armored    EnemyKindConfig  `yaml:"armored"`
	FastMotion FastMotionConfig `yaml:"fast_motion"`
}

// ExplosionConfig defines the visual explosion lifetime.
type ExplosionConfig struct {
	Radius float64 `yaml:"radius"`
	Frames int     `yaml:"frames"`
}

// PhasesConfig defines phase durations and rush modifiers.
type PhasesConfig struct {
	NormalMs            float64 `yaml:"normal_ms"`
	RushMs              float64 `yaml:"rush_ms"`
	WarningPeriodMs     float64 `yaml:"warning_period_ms"`
	RushIntervalFactor  float64 `yaml:"rush_interval_factor"`
	RushSpecialFactor   float64 `yaml:"rush_special_factor"`
	RushSpawnSpeedBoost float64 `yaml:"rush_spawn_speed_boost"`
}

// FormationConfig defines formation entry behavior.
type FormationConfig struct {
	EntryLine     float64  `yaml:"entry_line"`
	SpeedFactor   float64  `yaml:"speed_factor"`
	SpecialChance float64  `yaml:"special_chance"`
	Layouts       []string `yaml:"layouts"`
}

// FormationLayouts lists the layout names formation.layouts accepts.
var FormationLayouts = []string{"triangle", "grid", "v-shape", "wave"}

// TierConfig is one row of the difficulty table.
type TierConfig struct {
	GameTimeMs      float64  `yaml:"game_time_ms"`
	SpawnIntervalMs float64  `yaml:"spawn_interval_ms"`
	Roster          []string `yaml:"roster"`
	SpeedMultiplier float64  `yaml:"speed_multiplier"`
	SpecialChance   float64  `yaml:"special_chance"`
}

// DifficultyConfig defines the time-based difficulty progression.
type DifficultyConfig struct {
	Tiers               []TierConfig `yaml:"tiers"`
	CoefficientPeriodMs float64      `yaml:"coefficient_period_ms"`
}

// SimulationConfig controls delta to frame conversion.
type SimulationConfig struct {
	FrameMs          float64 `yaml:"frame_ms"`
	MaxFramesPerTick float64 `yaml:"max_frames_per_tick"`
}

// AmbienceConfig controls the starfield.
type AmbienceConfig struct {
	Stars         int     `yaml:"stars"`
	ColoredChance float64 `yaml:"colored_chance"`
}

// FireConfig controls host-side fire rate limiting.
type FireConfig struct {
	TouchIntervalMs float64 `yaml:"touch_interval_ms"`
}
