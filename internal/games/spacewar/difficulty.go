package spacewar

import (
	"math"
	"math/rand"

	"github.com/vovakirdan/spacewar/internal/config"
)

// Tier is one difficulty bracket keyed by elapsed session time.
type Tier struct {
	GameTimeMs      float64
	SpawnIntervalMs float64
	Roster          []EnemyKind
	SpeedMultiplier float64
	SpecialChance   float64
}

// Settings is the derived difficulty for a moment of the session.
type Settings struct {
	SpawnIntervalMs       float64
	Roster                []EnemyKind
	SpeedMultiplier       float64
	SpecialChance         float64
	DifficultyCoefficient float64
	TierIndex             int
}

// Controller maps session time and phase to spawn settings.
// It holds no mutable state; Compute is a pure function of its inputs.
type Controller struct {
	tiers               []Tier
	rushInterval        float64
	rushSpecial         float64
	coefficientPeriodMs float64
}

// NewController builds a controller from the configured tier table.
// Unknown roster tags become KindBasic. An empty table gets a single
// basic tier so Compute always has something to select.
func NewController(cfg config.SpacewarConfig) *Controller {
	c := &Controller{
		rushInterval:        cfg.Phases.RushIntervalFactor,
		rushSpecial:         cfg.Phases.RushSpecialFactor,
		coefficientPeriodMs: cfg.Difficulty.CoefficientPeriodMs,
	}
	if c.coefficientPeriodMs <= 0 {
		c.coefficientPeriodMs = 60000
	}

	for _, tc := range cfg.Difficulty.Tiers {
		t := Tier{
			GameTimeMs:      tc.GameTimeMs,
			SpawnIntervalMs: tc.SpawnIntervalMs,
			SpeedMultiplier: tc.SpeedMultiplier,
			SpecialChance:   tc.SpecialChance,
		}
		for _, tag := range tc.Roster {
			kind, _ := ParseKind(tag)
			t.Roster = append(t.Roster, kind)
		}
		if len(t.Roster) == 0 {
			t.Roster = []EnemyKind{KindBasic}
		}
		c.tiers = append(c.tiers, t)
	}
	if len(c.tiers) == 0 {
		c.tiers = []Tier{{SpawnIntervalMs: 1500, Roster: []EnemyKind{KindBasic}, SpeedMultiplier: 2.9, SpecialChance: 0.3}}
	}
	return c
}

// Tiers returns the tier table.
func (c *Controller) Tiers() []Tier {
	return c.tiers
}

// Compute returns the settings for the given moment.
// score is part of the signature but does not influence the result.
func (c *Controller) Compute(score int, phase Phase, elapsedMs float64) Settings {
	idx := 0
	for i, t := range c.tiers {
		if t.GameTimeMs <= elapsedMs {
			idx = i
		}
	}
	tier := c.tiers[idx]

	s := Settings{
		SpawnIntervalMs: tier.SpawnIntervalMs,
		Roster:          tier.Roster,
		SpeedMultiplier: tier.SpeedMultiplier,
		SpecialChance:   tier.SpecialChance,
		TierIndex:       idx,
	}
	if phase == PhaseRush {
		s.SpawnIntervalMs *= c.rushInterval
		s.SpecialChance *= c.rushSpecial
	}
	s.DifficultyCoefficient = 1 + math.Sqrt(math.Max(elapsedMs, 0)/c.coefficientPeriodMs)
	return s
}

// PickKind selects an enemy kind from a roster.
// The first entry is the basic kind; the rest are specials picked uniformly
// when a draw falls below specialChance.
func PickKind(roster []EnemyKind, specialChance float64, rng *rand.Rand) EnemyKind {
	if len(roster) == 0 {
		return KindBasic
	}
	if len(roster) == 1 || rng.Float64() >= specialChance {
		return roster[0]
	}
	specials := roster[1:]
	return specials[rng.Intn(len(specials))]
}
