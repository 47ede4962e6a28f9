package spacewar

import (
	"math"
	"math/rand"
	"strings"

	"github.com/vovakirdan/spacewar/internal/config"
	"github.com/vovakirdan/spacewar/internal/core"
)

// EnemyKind tags an enemy variant.
type EnemyKind int

const (
	KindBasic EnemyKind = iota
	KindFast
	KindArmored
)

func (k EnemyKind) String() string {
	switch k {
	case KindBasic:
		return "basic"
	case KindFast:
		return "fast"
	case KindArmored:
		return "armored"
	default:
		return "unknown"
	}
}

// ParseKind converts a roster tag into a kind.
// Unknown tags report false and map to KindBasic.
func ParseKind(tag string) (EnemyKind, bool) {
	switch strings.ToLower(strings.TrimSpace(tag)) {
	case "basic":
		return KindBasic, true
	case "fast":
		return KindFast, true
	case "armored":
		return KindArmored, true
	default:
		return KindBasic, false
	}
}

// MotionPattern is the lateral movement a fast enemy picks at spawn.
type MotionPattern int

const (
	PatternSweep  MotionPattern = iota // bounce between the side walls
	PatternSine                        // sinusoid driven by the enemy's own y
	PatternSpiral                      // sin/cos perturbation driven by session time
)

const patternCount = 3

// Enemy is a single tagged record for every enemy variant.
// Fields after Kind-independent stats are only meaningful for KindFast.
type Enemy struct {
	core.Rect
	Kind           EnemyKind
	Speed          float64
	FormationSpeed float64
	HP             int
	MaxHP          int
	ScoreValue     int
	IsFormation    bool

	Pattern             MotionPattern
	Direction           float64
	HorizontalSpeed     float64
	VerticalOscillation bool
	OscAmplitude        float64
	OscSpeed            float64
	TimeOffset          float64
}

// kindStats returns the configured stats for a kind, falling back to basic.
func kindStats(cfg config.EnemiesConfig, kind EnemyKind) config.EnemyKindConfig {
	switch kind {
	case KindFast:
		return cfg.Fast
	case KindArmored:
		return cfg.Armored
	default:
		return cfg.Basic
	}
}

// NewEnemy creates an enemy of the given kind at (x, y).
// baseSpeed is the difficulty speed before the per-kind factor is applied.
// rng is only consumed for fast enemies.
func NewEnemy(cfg config.EnemiesConfig, kind EnemyKind, x, y, baseSpeed float64, rng *rand.Rand) Enemy {
	if kind != KindFast && kind != KindArmored {
		kind = KindBasic
	}
	stats := kindStats(cfg, kind)
	speed := baseSpeed * stats.SpeedFactor

	e := Enemy{
		Rect:           core.NewRect(x, y, stats.Width, stats.Height),
		Kind:           kind,
		Speed:          speed,
		FormationSpeed: speed * 0.5,
		HP:             stats.HP,
		MaxHP:          stats.HP,
		ScoreValue:     stats.Score,
	}
	if e.HP <= 0 {
		e.HP, e.MaxHP = 1, 1
	}

	if kind == KindFast {
		m := cfg.FastMotion
		e.Direction = 1
		if rng.Float64() > 0.5 {
			e.Direction = -1
		}
		e.HorizontalSpeed = speed * m.HorizontalFactor
		e.VerticalOscillation = rng.Float64() < m.OscillationChance
		e.OscAmplitude = m.AmplitudeMin + rng.Float64()*(m.AmplitudeMax-m.AmplitudeMin)
		e.OscSpeed = m.OscSpeedMin + rng.Float64()*(m.OscSpeedMax-m.OscSpeedMin)
		e.TimeOffset = rng.Float64() * m.TimeOffsetMax
		e.Pattern = MotionPattern(rng.Intn(patternCount))
	}
	return e
}

// advanceEnemy moves an enemy by the given number of frames.
// elapsedMs is the session clock used by the time-driven patterns.
func advanceEnemy(e *Enemy, frames, elapsedMs, viewportW, entryLine float64) {
	if e.IsFormation && e.Y < entryLine {
		e.Y += e.FormationSpeed * frames
		return
	}

	e.Y += e.Speed * frames
	if e.Kind != KindFast {
		return
	}

	maxX := viewportW - e.W
	switch e.Pattern {
	case PatternSweep:
		e.X += e.HorizontalSpeed * e.Direction * frames
		if e.X <= 0 || e.X >= maxX {
			e.Direction = -e.Direction
		}
	case PatternSine:
		e.X += math.Sin((e.Y+e.TimeOffset)*0.05) * 2 * frames
		e.X = core.ClampF(e.X, 0, maxX)
	case PatternSpiral:
		t := (elapsedMs + e.TimeOffset) * 0.01
		e.X += math.Sin(t) * 2 * frames
		e.Y += math.Cos(t) * 0.5 * frames
		e.X = core.ClampF(e.X, 0, maxX)
	}

	if e.VerticalOscillation {
		e.Y += math.Sin((elapsedMs+e.TimeOffset)*e.OscSpeed) * 0.7 * frames
	}
}
